package handlers

import (
	"net/http"

	"campuswell/internal/db"
	"campuswell/internal/middleware"
	"campuswell/internal/models"
	"campuswell/internal/services"
	"campuswell/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminHandler serves the moderation queue and user management. All routes
// sit behind the AdminRequired middleware.
type AdminHandler struct {
	moderation *services.ModerationService
	feed       *services.FeedService
}

func NewAdminHandler(moderation *services.ModerationService, feed *services.FeedService) *AdminHandler {
	return &AdminHandler{moderation: moderation, feed: feed}
}

// ListPosts returns posts of any status for the moderation queue.
func (h *AdminHandler) ListPosts(c *gin.Context) {
	viewer := middleware.CurrentUser(c)
	page := utils.StringToInt(c.DefaultQuery("page", "1"))

	posts, err := h.feed.ListVisible(c.Request.Context(), viewer, c.Query("status"), page)
	if err != nil {
		Fail(c, err)
		return
	}

	OK(c, gin.H{"posts": posts, "page": page})
}

type setStatusRequest struct {
	Status string `json:"status"`
}

// SetStatus applies one of the moderation transitions. Any status may follow
// any other; pending is not terminal in either direction.
func (h *AdminHandler) SetStatus(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	postID := utils.StringToUint(c.Param("id"))

	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailMsg(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	post, err := h.moderation.SetStatus(c.Request.Context(), actor, postID, req.Status)
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

func (h *AdminHandler) DeletePost(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	postID := utils.StringToUint(c.Param("id"))

	if err := h.moderation.DeletePost(c.Request.Context(), actor, postID); err != nil {
		Fail(c, err)
		return
	}

	OK(c, gin.H{"message": "Post deleted"})
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	var users []models.User
	if err := db.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		FailMsg(c, http.StatusInternalServerError, "Failed to load users")
		return
	}

	OK(c, gin.H{"users": users})
}

// DeleteUser hard-deletes a user and everything they own.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	userID := utils.StringToUint(c.Param("id"))

	if actor.ID == userID {
		FailMsg(c, http.StatusBadRequest, "Cannot delete your own account")
		return
	}

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		FailMsg(c, http.StatusNotFound, "User not found")
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&models.Like{}, &models.Comment{}, &models.Post{},
			&models.Journal{}, &models.MoodEntry{}, &models.AdminGrant{},
		} {
			if err := tx.Where("user_id = ?", userID).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		FailMsg(c, http.StatusInternalServerError, "Failed to delete user")
		return
	}

	OK(c, gin.H{"message": "User deleted"})
}

func (h *AdminHandler) GrantAdmin(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	userID := utils.StringToUint(c.Param("id"))

	if err := h.moderation.GrantAdmin(c.Request.Context(), actor, userID); err != nil {
		Fail(c, err)
		return
	}

	OK(c, gin.H{"message": "Admin granted"})
}
