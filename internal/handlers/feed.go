package handlers

import (
	"net/http"

	"campuswell/internal/middleware"
	"campuswell/internal/services"
	"campuswell/internal/utils"

	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	feed       *services.FeedService
	moderation *services.ModerationService
	engagement *services.EngagementService
}

func NewFeedHandler(feed *services.FeedService, moderation *services.ModerationService, engagement *services.EngagementService) *FeedHandler {
	return &FeedHandler{feed: feed, moderation: moderation, engagement: engagement}
}

// List serves the feed. Visibility is viewer-dependent: non-admins only ever
// get approved posts, admins may filter by status.
func (h *FeedHandler) List(c *gin.Context) {
	viewer := middleware.CurrentUser(c)

	page := utils.StringToInt(c.DefaultQuery("page", "1"))
	status := c.Query("status")

	posts, err := h.feed.ListVisible(c.Request.Context(), viewer, status, page)
	if err != nil {
		Fail(c, err)
		return
	}

	OK(c, gin.H{"posts": posts, "page": page})
}

type createPostRequest struct {
	Content     string `json:"content"`
	IsAnonymous bool   `json:"is_anonymous"`
}

func (h *FeedHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailMsg(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	post, err := h.moderation.SubmitPost(c.Request.Context(), user, req.Content, req.IsAnonymous)
	if err != nil {
		Fail(c, err)
		return
	}

	view, err := h.feed.ViewOf(c.Request.Context(), post.ID)
	if err != nil {
		Fail(c, err)
		return
	}

	OK(c, gin.H{"post": view, "message": "Post submitted for approval"})
}

type editPostRequest struct {
	Content string `json:"content"`
}

func (h *FeedHandler) Edit(c *gin.Context) {
	user := middleware.CurrentUser(c)
	postID := utils.StringToUint(c.Param("id"))

	var req editPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailMsg(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	post, err := h.moderation.EditPost(c.Request.Context(), user, postID, req.Content)
	if err != nil {
		Fail(c, err)
		return
	}

	view, err := h.feed.ViewOf(c.Request.Context(), post.ID)
	if err != nil {
		Fail(c, err)
		return
	}

	OK(c, gin.H{"post": view})
}

func (h *FeedHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)
	postID := utils.StringToUint(c.Param("id"))

	if err := h.moderation.DeletePost(c.Request.Context(), user, postID); err != nil {
		Fail(c, err)
		return
	}

	OK(c, gin.H{"message": "Post deleted"})
}

func (h *FeedHandler) ToggleLike(c *gin.Context) {
	user := middleware.CurrentUser(c)
	postID := utils.StringToUint(c.Param("id"))

	liked, count, err := h.engagement.ToggleLike(c.Request.Context(), user, postID)
	if err != nil {
		Fail(c, err)
		return
	}

	OK(c, gin.H{"liked": liked, "likes": count})
}

func (h *FeedHandler) ListComments(c *gin.Context) {
	postID := utils.StringToUint(c.Param("id"))

	comments, err := h.engagement.ListComments(c.Request.Context(), postID)
	if err != nil {
		Fail(c, err)
		return
	}

	OK(c, gin.H{"comments": comments})
}

type createCommentRequest struct {
	Content string `json:"content"`
}

func (h *FeedHandler) CreateComment(c *gin.Context) {
	user := middleware.CurrentUser(c)
	postID := utils.StringToUint(c.Param("id"))

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailMsg(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	comment, err := h.engagement.AddComment(c.Request.Context(), user, postID, req.Content)
	if err != nil {
		Fail(c, err)
		return
	}

	OK(c, gin.H{"comment": comment})
}
