package models

import (
	"time"
)

// Moderation statuses. Every post starts as pending and is only visible in
// the public feed once an administrator approves it.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusDeclined = "declined"
)

// ValidStatus reports whether s is one of the three moderation statuses.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusApproved || s == StatusDeclined
}

type Post struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Pid         string `gorm:"uniqueIndex;size:36;not null" json:"pid"`
	UserID      *uint  `gorm:"index" json:"user_id"` // Nullable: legacy rows predate the user mapping
	User        *User  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Content     string `gorm:"type:text;not null" json:"content"`
	IsAnonymous bool   `gorm:"default:false" json:"is_anonymous"`
	Status      string `gorm:"size:16;not null;default:'pending';index" json:"status"`
	// Approved is a derived legacy column. Status is authoritative; this is
	// kept in sync on every status write and never read for visibility.
	Approved  bool      `gorm:"default:false" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 非数据库字段，查询时批量填充
	LikeCount    int `gorm:"-" json:"like_count"`
	CommentCount int `gorm:"-" json:"comment_count"`
}
