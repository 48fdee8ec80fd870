package api

import (
	"net/http"

	"friend-scheduler-backend/internal/auth/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *Handler) {
	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.GET("/providers", h.authHandler.Providers)
			auth.GET("/:provider/login", h.authHandler.Login)
			auth.GET("/:provider/callback", h.authHandler.Callback)
			auth.POST("/:provider/callback", h.authHandler.Callback) // Apple posts its callback
			auth.GET("/me", delivery.AuthMiddleware(h.authUsecase), h.authHandler.Me)
			auth.POST("/refresh", h.authHandler.RefreshToken)
			auth.POST("/logout", h.authHandler.Logout)
		}

		// Device token routes (protected)
		devices := api.Group("/devices")
		devices.Use(delivery.AuthMiddleware(h.authUsecase))
		{
			devices.POST("/register", h.authHandler.RegisterDevice)
			devices.DELETE("/:token", h.authHandler.UnregisterDevice)
		}

		// Friend routes (protected)
		friends := api.Group("/friends")
		friends.Use(delivery.AuthMiddleware(h.authUsecase))
		{
			friends.GET("", h.friendshipHandler.GetFriends)
			friends.GET("/close", h.friendshipHandler.GetCloseFriends)
			friends.GET("/requests", h.friendshipHandler.GetPendingRequests)
			friends.GET("/stats", h.friendshipHandler.GetStats)
			friends.POST("/add", h.friendshipHandler.AddFriend)
			friends.PUT("/:friendId/accept", h.friendshipHandler.AcceptRequest)
			friends.PUT("/:friendId/reject", h.friendshipHandler.RejectRequest)
			friends.PUT("/:friendId/toggle-close", h.friendshipHandler.ToggleCloseFriend)
		}

		// Meeting routes (protected)
		meetings := api.Group("/meetings")
		meetings.Use(delivery.AuthMiddleware(h.authUsecase))
		{
			meetings.GET("/upcoming", h.meetingHandler.GetUpcoming)
			meetings.GET("/range", h.meetingHandler.GetByRange)
			meetings.POST("", h.meetingHandler.Create)
			meetings.PUT("/:id/status", h.meetingHandler.UpdateStatus)
			meetings.DELETE("/:id", h.meetingHandler.Delete)
		}

		// Calendar routes (protected) - Google Calendar pass-through
		cal := api.Group("/calendar")
		cal.Use(delivery.AuthMiddleware(h.authUsecase))
		{
			cal.GET("/events/upcoming", h.calendarHandler.GetUpcomingEvents)
			cal.GET("/events/range", h.calendarHandler.GetEventsByRange)
		}
	}
}
