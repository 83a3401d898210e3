package dto

import (
	"time"

	"github.com/raffleworks/raffle-api/internal/models"
)

// DrawRequest describes the payload for executing a prize draw.
// Count and Round default to 1 when omitted; JSON cannot distinguish an
// omitted field from an explicit 0, so a zero value always means the
// default. Count is range-checked by the draw engine itself so a rejected
// value reports through the engine's error taxonomy rather than as a
// validation failure.
type DrawRequest struct {
	ActivityID uint `json:"activity_id" validate:"required"`
	PrizeID    uint `json:"prize_id" validate:"required"`
	Count      int  `json:"count"`
	Round      int  `json:"round"`
}

// WinnerInfo identifies one drawn participant, in selection order.
type WinnerInfo struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Code       string `json:"code,omitempty"`
	Department string `json:"department,omitempty"`
}

// DrawResult is the outcome of a successful draw: the prize after its
// inventory decrement and the selected winners.
type DrawResult struct {
	Prize   PrizeResponse `json:"prize"`
	Winners []WinnerInfo  `json:"winners"`
}

// WinnerRecordResponse is a winner audit entry expanded with its participant and prize.
type WinnerRecordResponse struct {
	ID          uint                `json:"id"`
	ActivityID  uint                `json:"activity_id"`
	Round       int                 `json:"round"`
	WonAt       time.Time           `json:"won_at"`
	Participant ParticipantResponse `json:"participant"`
	Prize       PrizeResponse       `json:"prize"`
}

// ResetResult reports the outcome of an activity reset.
type ResetResult struct {
	RecordsCleared int    `json:"records_cleared"`
	Message        string `json:"message"`
}

// ActivityStats aggregates read-side counters for one activity.
type ActivityStats struct {
	TotalParticipants     int `json:"total_participants"`
	AvailableParticipants int `json:"available_participants"`
	TotalPrizes           int `json:"total_prizes"`
	RemainingPrizes       int `json:"remaining_prizes"`
	TotalWinners          int `json:"total_winners"`
}

// RoundInfo carries the next unused round number for an activity.
type RoundInfo struct {
	NextRound int `json:"next_round"`
}

// NewWinnerInfo converts a participant into its draw result projection.
func NewWinnerInfo(model models.Participant) WinnerInfo {
	return WinnerInfo{
		ID:         model.ID,
		Name:       model.Name,
		Code:       model.Code,
		Department: model.Department,
	}
}

// NewWinnerRecordResponse converts a model into a DTO.
func NewWinnerRecordResponse(model models.WinnerRecord) WinnerRecordResponse {
	return WinnerRecordResponse{
		ID:          model.ID,
		ActivityID:  model.ActivityID,
		Round:       model.Round,
		WonAt:       model.WonAt,
		Participant: NewParticipantResponse(model.Participant),
		Prize:       NewPrizeResponse(model.Prize),
	}
}

// NewWinnerRecordResponseSlice converts a slice of models into DTOs.
func NewWinnerRecordResponseSlice(records []models.WinnerRecord) []WinnerRecordResponse {
	responses := make([]WinnerRecordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, NewWinnerRecordResponse(record))
	}

	return responses
}
