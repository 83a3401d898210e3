package dto

import (
	"time"

	"github.com/raffleworks/raffle-api/internal/models"
)

// PrizeCreateRequest describes the payload for adding a prize to an activity.
type PrizeCreateRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Level    int    `json:"level" validate:"omitempty,min=1"`
	Quantity int    `json:"quantity" validate:"omitempty,min=1"`
	ImageURL string `json:"image_url" validate:"omitempty,max=500"`
}

// PrizeUpdateRequest describes the payload for updating a prize. ID and
// ActivityID must match the path parameters they are submitted against.
type PrizeUpdateRequest struct {
	ID         uint    `json:"id" validate:"required"`
	ActivityID uint    `json:"activity_id" validate:"required"`
	Name       *string `json:"name" validate:"omitempty,min=1,max=100"`
	Level      *int    `json:"level" validate:"omitempty,min=1"`
	Quantity   *int    `json:"quantity" validate:"omitempty,min=1"`
	ImageURL   *string `json:"image_url" validate:"omitempty,max=500"`
}

// PrizeResponse is the serialized representation returned to API clients.
type PrizeResponse struct {
	ID                uint      `json:"id"`
	ActivityID        uint      `json:"activity_id"`
	Name              string    `json:"name"`
	Level             int       `json:"level"`
	Quantity          int       `json:"quantity"`
	RemainingQuantity int       `json:"remaining_quantity"`
	ImageURL          string    `json:"image_url"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// NewPrizeResponse converts a model into a DTO.
func NewPrizeResponse(model models.Prize) PrizeResponse {
	return PrizeResponse{
		ID:                model.ID,
		ActivityID:        model.ActivityID,
		Name:              model.Name,
		Level:             model.Level,
		Quantity:          model.Quantity,
		RemainingQuantity: model.RemainingQuantity,
		ImageURL:          model.ImageURL,
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
	}
}

// NewPrizeResponseSlice converts a slice of models into DTOs.
func NewPrizeResponseSlice(prizes []models.Prize) []PrizeResponse {
	responses := make([]PrizeResponse, 0, len(prizes))
	for _, prize := range prizes {
		responses = append(responses, NewPrizeResponse(prize))
	}

	return responses
}
