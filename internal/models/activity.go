package models

import (
	"time"

	"gorm.io/datatypes"
)

// Activity lifecycle states. Advisory only: the draw engine never gates on them.
const (
	ActivityStatusNotStarted = 0
	ActivityStatusInProgress = 1
	ActivityStatusFinished   = 2
)

// Default draw screen theme assigned when an activity is created without one.
const DefaultThemeType = "wheel"

// Activity is a raffle event owning prizes, participants and winner records.
type Activity struct {
	ID            uint              `gorm:"primaryKey" json:"id"`
	Name          string            `gorm:"size:100;not null" json:"name"`
	Description   string            `gorm:"size:500" json:"description"`
	ThemeType     string            `gorm:"size:50;not null;default:wheel" json:"theme_type"`
	ThemeSettings datatypes.JSONMap `gorm:"type:json" json:"theme_settings"`
	Status        int               `gorm:"not null;default:0" json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`

	Prizes        []Prize        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"prizes,omitempty"`
	Participants  []Participant  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"participants,omitempty"`
	WinnerRecords []WinnerRecord `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
