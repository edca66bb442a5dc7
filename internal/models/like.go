package models

import (
	"time"
)

// Like 点赞模型 - 每个用户对一篇帖子至多一条记录
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_like_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;index;uniqueIndex:idx_like_user_post" json:"post_id"`
	Post      Post      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
