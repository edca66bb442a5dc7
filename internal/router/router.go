package router

import (
	"campuswell/internal/config"
	"campuswell/internal/db"
	"campuswell/internal/handlers"
	"campuswell/internal/middleware"
	"campuswell/internal/services"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, cfg *config.Config) {
	// Services
	identity := services.NewIdentityService(db.DB, cfg.QueryTimeout)
	moderation := services.NewModerationService(db.DB, cfg.QueryTimeout, cfg.AdminUsernamePrefix)
	engagement := services.NewEngagementService(db.DB, cfg.QueryTimeout)
	feed := services.NewFeedService(db.DB, moderation, cfg.QueryTimeout)

	// Handlers
	authHandler := handlers.NewAuthHandler(identity)
	feedHandler := handlers.NewFeedHandler(feed, moderation, engagement)
	journalHandler := handlers.NewJournalHandler()
	moodHandler := handlers.NewMoodHandler()
	resourceHandler := handlers.NewResourceHandler()
	adminHandler := handlers.NewAdminHandler(moderation, feed)

	// Public routes
	r.POST("/signup", authHandler.Signup)
	r.POST("/login", authHandler.Login)
	r.POST("/sso", authHandler.SSOLogin)
	r.POST("/logout", authHandler.Logout)

	api := r.Group("/api")
	{
		// Feed reads are public; visibility rules handle the rest
		api.GET("/posts", feedHandler.List)
		api.GET("/posts/:id/comments", feedHandler.ListComments)

		api.GET("/resources", resourceHandler.List)
		api.GET("/resources/hotlines", resourceHandler.Hotlines)
	}

	// Protected routes
	authorized := r.Group("/api")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/me", authHandler.Me)
		authorized.POST("/me", authHandler.UpdateProfile)
		authorized.POST("/me/password", authHandler.ChangePassword)

		authorized.POST("/posts", feedHandler.Create)
		authorized.PATCH("/posts/:id", feedHandler.Edit)
		authorized.DELETE("/posts/:id", feedHandler.Delete)
		authorized.POST("/posts/:id/like", feedHandler.ToggleLike)
		authorized.POST("/posts/:id/comments", feedHandler.CreateComment)

		authorized.GET("/journals", journalHandler.List)
		authorized.POST("/journals", journalHandler.Create)
		authorized.POST("/journals/:id", journalHandler.Update)
		authorized.DELETE("/journals/:id", journalHandler.Delete)

		authorized.GET("/moods", moodHandler.List)
		authorized.POST("/moods", moodHandler.Create)
	}

	// Admin routes
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired(moderation))
	{
		admin.GET("/posts", adminHandler.ListPosts)
		admin.POST("/posts/:id/status", adminHandler.SetStatus)
		admin.DELETE("/posts/:id", adminHandler.DeletePost)

		admin.GET("/users", adminHandler.ListUsers)
		admin.DELETE("/users/:id", adminHandler.DeleteUser)
		admin.POST("/users/:id/admin", adminHandler.GrantAdmin)

		admin.POST("/resources", resourceHandler.Create)
		admin.POST("/resources/:id", resourceHandler.Update)
		admin.DELETE("/resources/:id", resourceHandler.Delete)
	}
}
