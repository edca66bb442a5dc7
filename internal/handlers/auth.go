package handlers

import (
	"errors"
	"net/http"
	"strings"

	"campuswell/internal/db"
	"campuswell/internal/middleware"
	"campuswell/internal/models"
	"campuswell/internal/services"
	"campuswell/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthHandler struct {
	identity *services.IdentityService
}

func NewAuthHandler(identity *services.IdentityService) *AuthHandler {
	return &AuthHandler{identity: identity}
}

type signupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"full_name"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailMsg(c, http.StatusBadRequest, "Username, email and password are required")
		return
	}
	if len(req.Password) < 6 {
		FailMsg(c, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		FailMsg(c, http.StatusInternalServerError, "Internal error")
		return
	}

	user := models.User{
		Username: strings.TrimSpace(req.Username),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		FullName: strings.TrimSpace(req.FullName),
		Password: hash,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			FailMsg(c, http.StatusConflict, "Email or username already registered")
			return
		}
		Fail(c, services.StoreError(err))
		return
	}

	OK(c, gin.H{"user": user})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailMsg(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	var user models.User
	if err := db.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error; err != nil {
		FailMsg(c, http.StatusUnauthorized, "Incorrect email or password")
		return
	}
	if !utils.CheckPasswordHash(req.Password, user.Password) {
		FailMsg(c, http.StatusUnauthorized, "Incorrect email or password")
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	if err := session.Save(); err != nil {
		FailMsg(c, http.StatusInternalServerError, "Internal error")
		return
	}

	OK(c, gin.H{"user": user})
}

type ssoRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

// SSOLogin accepts an identity already verified by the campus SSO gateway
// and maps it to the canonical user, creating one on first contact.
func (h *AuthHandler) SSOLogin(c *gin.Context) {
	var req ssoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailMsg(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.identity.Resolve(c.Request.Context(), req.Email, req.Username, req.FullName)
	if err != nil {
		Fail(c, err)
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	if err := session.Save(); err != nil {
		FailMsg(c, http.StatusInternalServerError, "Internal error")
		return
	}

	OK(c, gin.H{"user": user})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	OK(c, nil)
}

func (h *AuthHandler) Me(c *gin.Context) {
	OK(c, gin.H{"user": middleware.CurrentUser(c)})
}

type profileRequest struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailMsg(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	updates := map[string]interface{}{}
	if v := strings.TrimSpace(req.Username); v != "" {
		updates["username"] = v
	}
	if v := strings.TrimSpace(req.FullName); v != "" {
		updates["full_name"] = v
	}
	if len(updates) == 0 {
		FailMsg(c, http.StatusBadRequest, "Nothing to update")
		return
	}

	if err := db.DB.Model(user).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			FailMsg(c, http.StatusConflict, "Username already taken")
			return
		}
		Fail(c, services.StoreError(err))
		return
	}

	OK(c, gin.H{"user": user})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailMsg(c, http.StatusBadRequest, "All fields are required")
		return
	}
	if req.NewPassword != req.ConfirmPassword {
		FailMsg(c, http.StatusBadRequest, "New passwords do not match")
		return
	}
	if len(req.NewPassword) < 6 {
		FailMsg(c, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}
	if !utils.CheckPasswordHash(req.CurrentPassword, user.Password) {
		FailMsg(c, http.StatusBadRequest, "Current password is incorrect")
		return
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		FailMsg(c, http.StatusInternalServerError, "Internal error")
		return
	}
	if err := db.DB.Model(user).Update("password", hash).Error; err != nil {
		FailMsg(c, http.StatusInternalServerError, "Failed to update password")
		return
	}

	OK(c, gin.H{"message": "Password updated successfully"})
}
