package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"campuswell/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommentView is a comment with its author resolved for display.
type CommentView struct {
	ID         uint      `json:"id"`
	PostID     uint      `json:"post_id"`
	AuthorName string    `json:"author_name"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// EngagementService tracks likes and comments on posts.
type EngagementService struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewEngagementService(gdb *gorm.DB, timeout time.Duration) *EngagementService {
	return &EngagementService{db: gdb, timeout: timeout}
}

// ToggleLike flips the like state for (post, user) and returns the new state
// plus the fresh count. Delete-first, then an insert guarded by the
// composite unique index: concurrent toggles from the same user can never
// leave two rows behind.
func (s *EngagementService) ToggleLike(ctx context.Context, user *models.User, postID uint) (liked bool, count int64, err error) {
	if user == nil {
		return false, 0, fmt.Errorf("%w: no authenticated user", ErrIdentity)
	}

	gdb, cancel := scoped(ctx, s.db, s.timeout)
	defer cancel()

	var post models.Post
	if err := gdb.First(&post, postID).Error; err != nil {
		return false, 0, storeErr(err)
	}

	err = gdb.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND post_id = ?", user.ID, postID).Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			liked = false
			return nil
		}

		like := models.Like{UserID: user.ID, PostID: postID}
		ins := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&like)
		if ins.Error != nil {
			return ins.Error
		}
		// RowsAffected == 0 means a concurrent request inserted first; the
		// like exists either way.
		liked = true
		return nil
	})
	if err != nil {
		return false, 0, storeErr(err)
	}

	count, err = s.CountLikes(ctx, postID)
	if err != nil {
		return liked, 0, err
	}

	invalidateFeedCache()
	return liked, count, nil
}

// AddComment appends an immutable comment to a post.
func (s *EngagementService) AddComment(ctx context.Context, user *models.User, postID uint, content string) (*models.Comment, error) {
	if user == nil {
		return nil, fmt.Errorf("%w: no authenticated user", ErrIdentity)
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: comment content is empty", ErrValidation)
	}

	gdb, cancel := scoped(ctx, s.db, s.timeout)
	defer cancel()

	var post models.Post
	if err := gdb.First(&post, postID).Error; err != nil {
		return nil, storeErr(err)
	}

	comment := models.Comment{
		PostID:  post.ID,
		UserID:  user.ID,
		Content: content,
	}
	if err := gdb.Create(&comment).Error; err != nil {
		return nil, storeErr(err)
	}

	invalidateFeedCache()
	return &comment, nil
}

// ListComments returns a post's comments oldest first.
func (s *EngagementService) ListComments(ctx context.Context, postID uint) ([]CommentView, error) {
	gdb, cancel := scoped(ctx, s.db, s.timeout)
	defer cancel()

	var post models.Post
	if err := gdb.First(&post, postID).Error; err != nil {
		return nil, storeErr(err)
	}

	var comments []models.Comment
	if err := gdb.Preload("User").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		return nil, storeErr(err)
	}

	views := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		name := c.User.DisplayName()
		if name == "" {
			name = UnknownAuthor
		}
		views = append(views, CommentView{
			ID:         c.ID,
			PostID:     c.PostID,
			AuthorName: name,
			Content:    c.Content,
			CreatedAt:  c.CreatedAt,
		})
	}
	return views, nil
}

func (s *EngagementService) CountLikes(ctx context.Context, postID uint) (int64, error) {
	gdb, cancel := scoped(ctx, s.db, s.timeout)
	defer cancel()

	var count int64
	if err := gdb.Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, storeErr(err)
	}
	return count, nil
}

func (s *EngagementService) CountComments(ctx context.Context, postID uint) (int64, error) {
	gdb, cancel := scoped(ctx, s.db, s.timeout)
	defer cancel()

	var count int64
	if err := gdb.Model(&models.Comment{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, storeErr(err)
	}
	return count, nil
}
