package handlers

import (
	"net/http"

	"campuswell/internal/db"
	"campuswell/internal/models"

	"github.com/gin-gonic/gin"
)

type ResourceHandler struct{}

func NewResourceHandler() *ResourceHandler {
	return &ResourceHandler{}
}

// List serves the public resource directory with an optional substring
// search over name/description and a type filter.
func (h *ResourceHandler) List(c *gin.Context) {
	search := c.Query("search")
	resourceType := c.Query("type")

	query := db.DB.Model(&models.WellnessResource{})
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", like, like)
	}
	if resourceType != "" {
		query = query.Where("type = ?", resourceType)
	}

	var resources []models.WellnessResource
	if err := query.Order("created_at DESC").Find(&resources).Error; err != nil {
		// Read-path degradation: an empty directory beats a dead page.
		OK(c, gin.H{"resources": []models.WellnessResource{}})
		return
	}

	OK(c, gin.H{"resources": resources})
}

func (h *ResourceHandler) Hotlines(c *gin.Context) {
	var hotlines []models.WellnessResource
	if err := db.DB.Where("type = ?", models.ResourceHotline).
		Order("name ASC").
		Find(&hotlines).Error; err != nil {
		OK(c, gin.H{"hotlines": []models.WellnessResource{}})
		return
	}

	OK(c, gin.H{"hotlines": hotlines})
}

type resourceRequest struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Phone       string `json:"phone"`
}

// Create is admin-only (enforced by the route group).
func (h *ResourceHandler) Create(c *gin.Context) {
	var req resourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailMsg(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" || req.Type == "" {
		FailMsg(c, http.StatusBadRequest, "Name and type are required")
		return
	}

	resource := models.WellnessResource{
		Name:        req.Name,
		Type:        req.Type,
		Description: req.Description,
		URL:         req.URL,
		Phone:       req.Phone,
	}
	if err := db.DB.Create(&resource).Error; err != nil {
		FailMsg(c, http.StatusInternalServerError, "Failed to create resource")
		return
	}

	OK(c, gin.H{"resource": resource})
}

func (h *ResourceHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var resource models.WellnessResource
	if err := db.DB.First(&resource, id).Error; err != nil {
		FailMsg(c, http.StatusNotFound, "Resource not found")
		return
	}

	var req resourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailMsg(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Type != "" {
		updates["type"] = req.Type
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.URL != "" {
		updates["url"] = req.URL
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&resource).Updates(updates).Error; err != nil {
			FailMsg(c, http.StatusInternalServerError, "Failed to update resource")
			return
		}
	}

	OK(c, gin.H{"resource": resource})
}

func (h *ResourceHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := db.DB.Delete(&models.WellnessResource{}, id).Error; err != nil {
		FailMsg(c, http.StatusInternalServerError, "Failed to delete resource")
		return
	}

	OK(c, gin.H{"message": "Resource deleted"})
}
