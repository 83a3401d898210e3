package models

import "time"

// WinnerRecord is an append-only audit entry produced by a committed draw.
// Records are only ever removed in bulk by an activity reset. A participant
// or prize referenced by a record cannot be deleted while the record exists;
// the repositories enforce that restriction explicitly.
type WinnerRecord struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ActivityID    uint      `gorm:"not null;index" json:"activity_id"`
	ParticipantID uint      `gorm:"not null;index" json:"participant_id"`
	PrizeID       uint      `gorm:"not null;index" json:"prize_id"`
	Round         int       `gorm:"not null;default:1" json:"round"`
	WonAt         time.Time `gorm:"not null" json:"won_at"`

	Participant Participant `json:"participant"`
	Prize       Prize       `json:"prize"`
}
