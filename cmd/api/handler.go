package api

import (
	authDelivery "friend-scheduler-backend/internal/auth/delivery"
	authUsecase "friend-scheduler-backend/internal/auth/usecase"
	calendarDelivery "friend-scheduler-backend/internal/calendar/delivery"
	friendshipDelivery "friend-scheduler-backend/internal/friendship/delivery"
	friendshipUsecase "friend-scheduler-backend/internal/friendship/usecase"
	meetingDelivery "friend-scheduler-backend/internal/meeting/delivery"
	meetingUsecase "friend-scheduler-backend/internal/meeting/usecase"
	"friend-scheduler-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authUsecase       authUsecase.AuthUsecase
	authHandler       *authDelivery.AuthHandler
	friendshipHandler *friendshipDelivery.FriendshipHandler
	meetingHandler    *meetingDelivery.MeetingHandler
	calendarHandler   *calendarDelivery.CalendarHandler
	config            *config.Config
}

func NewHandler(
	authUc authUsecase.AuthUsecase,
	friendshipUc friendshipUsecase.FriendshipUsecase,
	meetingUc meetingUsecase.MeetingUsecase,
	calendarHandler *calendarDelivery.CalendarHandler,
	cfg *config.Config,
) *Handler {
	return &Handler{
		authUsecase:       authUc,
		authHandler:       authDelivery.NewAuthHandler(authUc, cfg.FrontendURL),
		friendshipHandler: friendshipDelivery.NewFriendshipHandler(friendshipUc),
		meetingHandler:    meetingDelivery.NewMeetingHandler(meetingUc),
		calendarHandler:   calendarHandler,
		config:            cfg,
	}
}

func (h *Handler) Start(addr string) error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Setup routes
	SetupRoutes(r, h)

	return r.Run(addr)
}
