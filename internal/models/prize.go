package models

import "time"

// Prize is a draw inventory item scoped to a single activity.
//
// Quantity is the immutable baseline set at creation; RemainingQuantity is
// the only field the draw engine mutates and always satisfies
// 0 <= RemainingQuantity <= Quantity.
type Prize struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	ActivityID        uint      `gorm:"not null;index" json:"activity_id"`
	Name              string    `gorm:"size:100;not null" json:"name"`
	Level             int       `gorm:"not null;default:1" json:"level"`
	Quantity          int       `gorm:"not null;default:1" json:"quantity"`
	RemainingQuantity int       `gorm:"not null;default:1" json:"remaining_quantity"`
	ImageURL          string    `gorm:"size:500" json:"image_url"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	WinnerRecords []WinnerRecord `json:"-"`
}

// Awarded reports how many units of this prize have been drawn so far.
func (p Prize) Awarded() int {
	return p.Quantity - p.RemainingQuantity
}
