package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"campuswell/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ModerationService owns the post lifecycle: submission, the
// pending/approved/declined status machine, and the authorization rules
// around editing and deletion.
type ModerationService struct {
	db      *gorm.DB
	timeout time.Duration
	// adminPrefix enables the legacy auto-grant rule for usernames with
	// this prefix. Empty disables it.
	adminPrefix string
}

func NewModerationService(gdb *gorm.DB, timeout time.Duration, adminPrefix string) *ModerationService {
	return &ModerationService{db: gdb, timeout: timeout, adminPrefix: adminPrefix}
}

// SubmitPost stores a new post awaiting review. The author is always
// recorded, even for anonymous posts; anonymity only affects display.
func (s *ModerationService) SubmitPost(ctx context.Context, author *models.User, content string, anonymous bool) (*models.Post, error) {
	if author == nil {
		return nil, fmt.Errorf("%w: no authenticated author", ErrIdentity)
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: post content is empty", ErrValidation)
	}

	gdb, cancel := scoped(ctx, s.db, s.timeout)
	defer cancel()

	post := models.Post{
		Pid:         uuid.NewString(),
		UserID:      &author.ID,
		Content:     content,
		IsAnonymous: anonymous,
		Status:      models.StatusPending,
	}
	if err := gdb.Create(&post).Error; err != nil {
		return nil, storeErr(err)
	}

	invalidateFeedCache()
	return &post, nil
}

// SetStatus moves a post to any of the three statuses. Admin-only; there is
// no transition guard beyond the status set itself and no terminal state.
func (s *ModerationService) SetStatus(ctx context.Context, actor *models.User, postID uint, status string) (*models.Post, error) {
	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	admin, err := s.IsAdministrator(ctx, actor)
	if err != nil {
		return nil, err
	}
	if !admin {
		return nil, fmt.Errorf("%w: moderation requires an administrator", ErrAuthorization)
	}

	gdb, cancel := scoped(ctx, s.db, s.timeout)
	defer cancel()

	var post models.Post
	if err := gdb.First(&post, postID).Error; err != nil {
		return nil, storeErr(err)
	}

	post.Status = status
	post.Approved = status == models.StatusApproved // derived legacy column
	if err := gdb.Model(&post).Updates(map[string]interface{}{
		"status":   post.Status,
		"approved": post.Approved,
	}).Error; err != nil {
		return nil, storeErr(err)
	}

	invalidateFeedCache()
	return &post, nil
}

// IsAdministrator reports admin status: an AdminGrant row, the IsAdmin flag,
// or (when enabled) the legacy username-prefix rule. A prefix-only match is
// persisted as a real grant so the prefix check becomes unnecessary.
func (s *ModerationService) IsAdministrator(ctx context.Context, user *models.User) (bool, error) {
	if user == nil {
		return false, nil
	}

	gdb, cancel := scoped(ctx, s.db, s.timeout)
	defer cancel()

	var count int64
	if err := gdb.Model(&models.AdminGrant{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
		return false, storeErr(err)
	}
	if count > 0 {
		return true, nil
	}
	if user.IsAdmin {
		return true, nil
	}

	if s.adminPrefix != "" && strings.HasPrefix(user.Username, s.adminPrefix) {
		if err := s.persistGrant(gdb, user.ID, nil); err != nil {
			return false, err
		}
		return true, nil
	}

	return false, nil
}

// GrantAdmin promotes a user. Admin-only. Grant row and flag are written in
// one transaction so the two mechanisms stay consistent.
func (s *ModerationService) GrantAdmin(ctx context.Context, actor *models.User, userID uint) error {
	admin, err := s.IsAdministrator(ctx, actor)
	if err != nil {
		return err
	}
	if !admin {
		return fmt.Errorf("%w: granting admin requires an administrator", ErrAuthorization)
	}

	gdb, cancel := scoped(ctx, s.db, s.timeout)
	defer cancel()

	var user models.User
	if err := gdb.First(&user, userID).Error; err != nil {
		return storeErr(err)
	}

	return s.persistGrant(gdb, userID, &actor.ID)
}

// persistGrant is idempotent: re-inserting an existing grant is a no-op.
func (s *ModerationService) persistGrant(gdb *gorm.DB, userID uint, grantedBy *uint) error {
	err := gdb.Transaction(func(tx *gorm.DB) error {
		grant := models.AdminGrant{UserID: userID, GrantedBy: grantedBy}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).Create(&grant).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).Update("is_admin", true).Error
	})
	return storeErr(err)
}

// EditPost updates a post's content. Only the author may edit; admins can
// moderate but not rewrite other people's words.
func (s *ModerationService) EditPost(ctx context.Context, actor *models.User, postID uint, content string) (*models.Post, error) {
	if actor == nil {
		return nil, fmt.Errorf("%w: no authenticated user", ErrIdentity)
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: post content is empty", ErrValidation)
	}

	gdb, cancel := scoped(ctx, s.db, s.timeout)
	defer cancel()

	var post models.Post
	if err := gdb.First(&post, postID).Error; err != nil {
		return nil, storeErr(err)
	}
	if post.UserID == nil || *post.UserID != actor.ID {
		return nil, fmt.Errorf("%w: only the author may edit a post", ErrAuthorization)
	}

	post.Content = content
	if err := gdb.Model(&post).Update("content", content).Error; err != nil {
		return nil, storeErr(err)
	}

	invalidateFeedCache()
	return &post, nil
}

// DeletePost removes a post and cascades its likes and comments. Permitted
// for the author or an administrator.
func (s *ModerationService) DeletePost(ctx context.Context, actor *models.User, postID uint) error {
	if actor == nil {
		return fmt.Errorf("%w: no authenticated user", ErrIdentity)
	}

	gdb, cancel := scoped(ctx, s.db, s.timeout)
	defer cancel()

	var post models.Post
	if err := gdb.First(&post, postID).Error; err != nil {
		return storeErr(err)
	}

	owner := post.UserID != nil && *post.UserID == actor.ID
	if !owner {
		admin, err := s.IsAdministrator(ctx, actor)
		if err != nil {
			return err
		}
		if !admin {
			return fmt.Errorf("%w: only the author or an administrator may delete a post", ErrAuthorization)
		}
	}

	err := gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
	if err != nil {
		return storeErr(err)
	}

	invalidateFeedCache()
	return nil
}
