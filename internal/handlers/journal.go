package handlers

import (
	"net/http"
	"strings"

	"campuswell/internal/db"
	"campuswell/internal/middleware"
	"campuswell/internal/models"
	"campuswell/internal/utils"

	"github.com/gin-gonic/gin"
)

// JournalHandler 私人日记 CRUD，全部操作限定在作者自己的记录上
type JournalHandler struct{}

func NewJournalHandler() *JournalHandler {
	return &JournalHandler{}
}

func (h *JournalHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var journals []models.Journal
	if err := db.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&journals).Error; err != nil {
		FailMsg(c, http.StatusInternalServerError, "Failed to load journals")
		return
	}

	OK(c, gin.H{"journals": journals})
}

type journalRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (h *JournalHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req journalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailMsg(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		FailMsg(c, http.StatusBadRequest, "Content is required")
		return
	}

	journal := models.Journal{
		UserID:  user.ID,
		Title:   strings.TrimSpace(req.Title),
		Content: req.Content,
	}
	if journal.Title == "" {
		journal.Title = "Untitled"
	}
	if err := db.DB.Create(&journal).Error; err != nil {
		FailMsg(c, http.StatusInternalServerError, "Failed to create journal")
		return
	}

	OK(c, gin.H{"journal": journal})
}

func (h *JournalHandler) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)
	journalID := utils.StringToUint(c.Param("id"))

	var req journalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailMsg(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	var journal models.Journal
	if err := db.DB.Where("id = ? AND user_id = ?", journalID, user.ID).First(&journal).Error; err != nil {
		FailMsg(c, http.StatusNotFound, "Journal not found")
		return
	}

	updates := map[string]interface{}{}
	if strings.TrimSpace(req.Title) != "" {
		updates["title"] = strings.TrimSpace(req.Title)
	}
	if strings.TrimSpace(req.Content) != "" {
		updates["content"] = req.Content
	}
	if len(updates) == 0 {
		FailMsg(c, http.StatusBadRequest, "Nothing to update")
		return
	}

	if err := db.DB.Model(&journal).Updates(updates).Error; err != nil {
		FailMsg(c, http.StatusInternalServerError, "Failed to update journal")
		return
	}

	OK(c, gin.H{"journal": journal})
}

func (h *JournalHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)
	journalID := utils.StringToUint(c.Param("id"))

	res := db.DB.Where("id = ? AND user_id = ?", journalID, user.ID).Delete(&models.Journal{})
	if res.Error != nil {
		FailMsg(c, http.StatusInternalServerError, "Failed to delete journal")
		return
	}
	if res.RowsAffected == 0 {
		FailMsg(c, http.StatusNotFound, "Journal not found")
		return
	}

	OK(c, gin.H{"message": "Journal deleted"})
}
