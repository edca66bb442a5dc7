package models

import (
	"time"
)

// AdminGrant marks a user as an administrator. Admin status is the union of
// this grant set and the IsAdmin flag on User; both are written together so
// neither can drift.
type AdminGrant struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	GrantedBy *uint     `json:"granted_by"` // Null for seeded or self-healed grants
	CreatedAt time.Time `json:"created_at"`
}
