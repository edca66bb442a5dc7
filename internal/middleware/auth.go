package middleware

import (
	"net/http"

	"campuswell/internal/db"
	"campuswell/internal/models"
	"campuswell/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const CheckUserKey = "user"

// LoadUser resolves the session to a User row and sets it on the context.
// The session carries only the user id; the database row is the single
// source of truth for everything else.
func LoadUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get("user_id")

		if userID != nil {
			var user models.User
			if err := db.DB.First(&user, userID).Error; err == nil {
				c.Set(CheckUserKey, &user)
			}
		}
		c.Next()
	}
}

// AuthRequired rejects requests without a resolved user.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CheckUserKey); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Not authenticated",
			})
			return
		}
		c.Next()
	}
}

// AdminRequired rejects non-administrators. Runs after LoadUser.
func AdminRequired(moderation *services.ModerationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Not authenticated",
			})
			return
		}

		admin, err := moderation.IsAdministrator(c.Request.Context(), user)
		if err != nil {
			c.AbortWithStatusJSON(services.HTTPStatus(err), gin.H{
				"success": false,
				"error":   "Unauthorized",
			})
			return
		}
		if !admin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   "Unauthorized",
			})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user LoadUser attached, or nil.
func CurrentUser(c *gin.Context) *models.User {
	if u, exists := c.Get(CheckUserKey); exists {
		return u.(*models.User)
	}
	return nil
}
