package models

import (
	"time"
)

// MoodEntry is a daily wellbeing check-in.
type MoodEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Mood      string    `gorm:"size:32;not null" json:"mood"` // e.g. great, good, okay, low, stressed
	Note      string    `gorm:"size:500" json:"note"`
	CreatedAt time.Time `json:"created_at"`
}
