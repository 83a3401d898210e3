package models

import "time"

// Participant is a person entered into one activity's draws.
//
// IsWinner is owned by the draw engine: it is initialized false at creation,
// set true only when a draw commits, and cleared only by a reset. The CRUD
// surface never writes it.
type Participant struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ActivityID uint      `gorm:"not null;index" json:"activity_id"`
	Name       string    `gorm:"size:100;not null" json:"name"`
	Code       string    `gorm:"size:50" json:"code"`
	Department string    `gorm:"size:100" json:"department"`
	IsWinner   bool      `gorm:"not null;default:false" json:"is_winner"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	WinnerRecords []WinnerRecord `json:"-"`
}
