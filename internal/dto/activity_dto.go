package dto

import (
	"time"

	"github.com/raffleworks/raffle-api/internal/models"
)

// ActivityCreateRequest describes the payload for creating a raffle activity.
type ActivityCreateRequest struct {
	Name          string                 `json:"name" validate:"required,min=1,max=100"`
	Description   string                 `json:"description" validate:"omitempty,max=500"`
	ThemeType     string                 `json:"theme_type" validate:"omitempty,oneof=wheel sphere"`
	ThemeSettings map[string]interface{} `json:"theme_settings"`
}

// ActivityUpdateRequest describes the payload for updating an activity.
// The ID must match the path parameter it is submitted against.
type ActivityUpdateRequest struct {
	ID            uint                   `json:"id" validate:"required"`
	Name          *string                `json:"name" validate:"omitempty,min=1,max=100"`
	Description   *string                `json:"description" validate:"omitempty,max=500"`
	ThemeType     *string                `json:"theme_type" validate:"omitempty,oneof=wheel sphere"`
	ThemeSettings map[string]interface{} `json:"theme_settings"`
	Status        *int                   `json:"status" validate:"omitempty,oneof=0 1 2"`
}

// ActivityResponse is the serialized representation returned to API clients.
type ActivityResponse struct {
	ID            uint                   `json:"id"`
	Name          string                 `json:"name"`
	Description   string                 `json:"description"`
	ThemeType     string                 `json:"theme_type"`
	ThemeSettings map[string]interface{} `json:"theme_settings,omitempty"`
	Status        int                    `json:"status"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
	Prizes        []PrizeResponse        `json:"prizes,omitempty"`
	Participants  []ParticipantResponse  `json:"participants,omitempty"`
}

// NewActivityResponse converts a model into a DTO.
func NewActivityResponse(model models.Activity) ActivityResponse {
	response := ActivityResponse{
		ID:            model.ID,
		Name:          model.Name,
		Description:   model.Description,
		ThemeType:     model.ThemeType,
		ThemeSettings: model.ThemeSettings,
		Status:        model.Status,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}

	if len(model.Prizes) > 0 {
		response.Prizes = NewPrizeResponseSlice(model.Prizes)
	}
	if len(model.Participants) > 0 {
		response.Participants = NewParticipantResponseSlice(model.Participants)
	}

	return response
}

// NewActivityResponseSlice converts a slice of models into DTOs.
func NewActivityResponseSlice(activities []models.Activity) []ActivityResponse {
	responses := make([]ActivityResponse, 0, len(activities))
	for _, activity := range activities {
		responses = append(responses, NewActivityResponse(activity))
	}

	return responses
}
