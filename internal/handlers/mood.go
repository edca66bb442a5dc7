package handlers

import (
	"net/http"
	"strings"

	"campuswell/internal/db"
	"campuswell/internal/middleware"
	"campuswell/internal/models"

	"github.com/gin-gonic/gin"
)

type MoodHandler struct{}

func NewMoodHandler() *MoodHandler {
	return &MoodHandler{}
}

func (h *MoodHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var moods []models.MoodEntry
	if err := db.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Limit(90).
		Find(&moods).Error; err != nil {
		FailMsg(c, http.StatusInternalServerError, "Failed to load moods")
		return
	}

	OK(c, gin.H{"moods": moods})
}

type moodRequest struct {
	Mood string `json:"mood"`
	Note string `json:"note"`
}

func (h *MoodHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req moodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailMsg(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Mood) == "" {
		FailMsg(c, http.StatusBadRequest, "Mood is required")
		return
	}

	entry := models.MoodEntry{
		UserID: user.ID,
		Mood:   strings.TrimSpace(req.Mood),
		Note:   strings.TrimSpace(req.Note),
	}
	if err := db.DB.Create(&entry).Error; err != nil {
		FailMsg(c, http.StatusInternalServerError, "Failed to save mood")
		return
	}

	OK(c, gin.H{"mood": entry})
}
