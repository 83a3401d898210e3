package dto

import (
	"time"

	"github.com/raffleworks/raffle-api/internal/models"
)

// ParticipantCreateRequest describes the payload for entering one participant.
type ParticipantCreateRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=100"`
	Code       string `json:"code" validate:"omitempty,max=50"`
	Department string `json:"department" validate:"omitempty,max=100"`
}

// ParticipantImportRequest describes a bulk participant import payload.
type ParticipantImportRequest struct {
	Participants []ParticipantCreateRequest `json:"participants" validate:"required,min=1,dive"`
}

// ParticipantImportResult reports how many rows a bulk import inserted.
type ParticipantImportResult struct {
	Imported int `json:"imported"`
}

// ParticipantClearResult reports how many rows a bulk delete removed.
type ParticipantClearResult struct {
	Deleted int `json:"deleted"`
}

// ParticipantResponse is the serialized representation returned to API clients.
type ParticipantResponse struct {
	ID         uint      `json:"id"`
	ActivityID uint      `json:"activity_id"`
	Name       string    `json:"name"`
	Code       string    `json:"code"`
	Department string    `json:"department"`
	IsWinner   bool      `json:"is_winner"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewParticipantResponse converts a model into a DTO.
func NewParticipantResponse(model models.Participant) ParticipantResponse {
	return ParticipantResponse{
		ID:         model.ID,
		ActivityID: model.ActivityID,
		Name:       model.Name,
		Code:       model.Code,
		Department: model.Department,
		IsWinner:   model.IsWinner,
		CreatedAt:  model.CreatedAt,
	}
}

// NewParticipantResponseSlice converts a slice of models into DTOs.
func NewParticipantResponseSlice(participants []models.Participant) []ParticipantResponse {
	responses := make([]ParticipantResponse, 0, len(participants))
	for _, participant := range participants {
		responses = append(responses, NewParticipantResponse(participant))
	}

	return responses
}
