package models

import (
	"time"
)

// Wellness resource types.
const (
	ResourceArticle = "article"
	ResourceVideo   = "video"
	ResourceHotline = "hotline"
	ResourceService = "service"
)

type WellnessResource struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Type        string    `gorm:"size:32;not null;index" json:"type"`
	Description string    `gorm:"type:text" json:"description"`
	URL         string    `json:"url"`
	Phone       string    `gorm:"size:32" json:"phone"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
