package services

import (
	"context"
	"fmt"
	"time"

	"campuswell/internal/models"
	"campuswell/internal/utils"

	"gorm.io/gorm"
)

const feedPerPage = 30

// AnonymousAuthor is shown whenever a post hides its author.
const AnonymousAuthor = "Anonymous"

// UnknownAuthor is shown when the author record can no longer be resolved.
const UnknownAuthor = "Unknown"

// PostView is a post as presented in the feed: engagement counts filled in
// and the author identity already resolved per the display rules.
type PostView struct {
	ID           uint      `json:"id"`
	Pid          string    `json:"pid"`
	Content      string    `json:"content"`
	ContentHTML  string    `json:"content_html"`
	IsAnonymous  bool      `json:"is_anonymous"`
	Status       string    `json:"status"`
	AuthorName   string    `json:"author_name"`
	LikeCount    int       `json:"like_count"`
	CommentCount int       `json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// FeedService composes visible posts, engagement counts, and author display
// rules into feed pages.
type FeedService struct {
	db         *gorm.DB
	moderation *ModerationService
	timeout    time.Duration
}

func NewFeedService(gdb *gorm.DB, moderation *ModerationService, timeout time.Duration) *FeedService {
	return &FeedService{db: gdb, moderation: moderation, timeout: timeout}
}

func feedCacheKey(page int) string {
	return fmt.Sprintf("feed:approved:page:%d", page)
}

// invalidateFeedCache drops the cached first page of the public feed. Only
// that page is ever cached.
func invalidateFeedCache() {
	utils.GetCache().Delete(feedCacheKey(1))
}

// ListVisible returns one feed page, newest first. Non-administrators only
// ever see approved posts; administrators may filter by any status, or pass
// an empty filter for everything.
func (s *FeedService) ListVisible(ctx context.Context, viewer *models.User, statusFilter string, page int) ([]PostView, error) {
	if page < 1 {
		page = 1
	}
	if statusFilter != "" && !models.ValidStatus(statusFilter) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, statusFilter)
	}

	admin, err := s.moderation.IsAdministrator(ctx, viewer)
	if err != nil {
		return nil, err
	}

	if !admin {
		if statusFilter != "" && statusFilter != models.StatusApproved {
			return nil, fmt.Errorf("%w: only approved posts are visible", ErrAuthorization)
		}
		statusFilter = models.StatusApproved

		// Only the first page is cached; invalidateFeedCache drops a single
		// key, so deeper pages must always hit the store.
		if page == 1 {
			if cached := utils.GetCache().Get(feedCacheKey(page)); cached != nil {
				if views, ok := cached.([]PostView); ok {
					return views, nil
				}
			}
		}
	}

	gdb, cancel := scoped(ctx, s.db, s.timeout)
	defer cancel()

	query := gdb.Model(&models.Post{}).Preload("User")
	if statusFilter != "" {
		query = query.Where("status = ?", statusFilter)
	}

	var posts []models.Post
	if err := query.
		Order("created_at DESC").
		Limit(feedPerPage).
		Offset((page - 1) * feedPerPage).
		Find(&posts).Error; err != nil {
		return nil, storeErr(err)
	}

	if err := fillEngagementCounts(gdb, posts); err != nil {
		return nil, err
	}

	views := make([]PostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, assemblePostView(p))
	}

	if !admin && page == 1 {
		utils.GetCache().Set(feedCacheKey(page), views, 1*time.Minute)
	}
	return views, nil
}

// ViewOf re-reads a single post and assembles it the same way the feed does,
// so handlers never hand the raw model to a client.
func (s *FeedService) ViewOf(ctx context.Context, postID uint) (PostView, error) {
	gdb, cancel := scoped(ctx, s.db, s.timeout)
	defer cancel()

	var post models.Post
	if err := gdb.Preload("User").First(&post, postID).Error; err != nil {
		return PostView{}, storeErr(err)
	}

	posts := []models.Post{post}
	if err := fillEngagementCounts(gdb, posts); err != nil {
		return PostView{}, err
	}
	return assemblePostView(posts[0]), nil
}

// assemblePostView applies the author display rules: anonymous posts never
// expose the author to any viewer, deleted authors show as Unknown.
func assemblePostView(p models.Post) PostView {
	author := UnknownAuthor
	if p.IsAnonymous {
		author = AnonymousAuthor
	} else if p.User != nil {
		author = p.User.DisplayName()
	}

	return PostView{
		ID:           p.ID,
		Pid:          p.Pid,
		Content:      p.Content,
		ContentHTML:  utils.RenderMarkdown(p.Content),
		IsAnonymous:  p.IsAnonymous,
		Status:       p.Status,
		AuthorName:   author,
		LikeCount:    p.LikeCount,
		CommentCount: p.CommentCount,
		CreatedAt:    p.CreatedAt,
	}
}

// fillEngagementCounts batch-fills like and comment counts for a page of
// posts with two grouped queries instead of 2n lookups.
func fillEngagementCounts(gdb *gorm.DB, posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	type countRow struct {
		PostID uint
		Count  int
	}

	var likeRows []countRow
	if err := gdb.Model(&models.Like{}).
		Select("post_id, COUNT(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&likeRows).Error; err != nil {
		return storeErr(err)
	}

	var commentRows []countRow
	if err := gdb.Model(&models.Comment{}).
		Select("post_id, COUNT(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&commentRows).Error; err != nil {
		return storeErr(err)
	}

	likes := make(map[uint]int, len(likeRows))
	for _, r := range likeRows {
		likes[r.PostID] = r.Count
	}
	comments := make(map[uint]int, len(commentRows))
	for _, r := range commentRows {
		comments[r.PostID] = r.Count
	}

	for i := range posts {
		posts[i].LikeCount = likes[posts[i].ID]
		posts[i].CommentCount = comments[posts[i].ID]
	}
	return nil
}
