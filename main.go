package main

import (
	"log"

	"friend-scheduler-backend/cmd/api"
	authdomain "friend-scheduler-backend/internal/auth/domain"
	authProvider "friend-scheduler-backend/internal/auth/provider"
	authRepo "friend-scheduler-backend/internal/auth/repository"
	authUsecase "friend-scheduler-backend/internal/auth/usecase"
	calendarDelivery "friend-scheduler-backend/internal/calendar/delivery"
	friendshipdomain "friend-scheduler-backend/internal/friendship/domain"
	friendshipRepo "friend-scheduler-backend/internal/friendship/repository"
	friendshipUsecase "friend-scheduler-backend/internal/friendship/usecase"
	meetingdomain "friend-scheduler-backend/internal/meeting/domain"
	meetingRepo "friend-scheduler-backend/internal/meeting/repository"
	meetingUsecase "friend-scheduler-backend/internal/meeting/usecase"
	"friend-scheduler-backend/internal/notification"
	"friend-scheduler-backend/pkg/calendar"
	"friend-scheduler-backend/pkg/config"
	"friend-scheduler-backend/pkg/database"
	"friend-scheduler-backend/pkg/fcm"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&authdomain.User{}, &authdomain.RefreshToken{}, &authdomain.DeviceToken{}, &friendshipdomain.Friendship{}, &meetingdomain.Meeting{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	userRepo := authRepo.NewUserRepository(db)
	deviceTokenRepo := authRepo.NewDeviceTokenRepository(db)
	friendshipRepository := friendshipRepo.NewGormFriendshipRepository(db)
	meetingRepository := meetingRepo.NewGormMeetingRepository(db)

	// Assemble identity providers. A malformed Apple key is fatal here, not
	// at login time.
	registry, err := authProvider.NewRegistry(cfg)
	if err != nil {
		log.Fatal("Failed to build provider registry:", err)
	}
	log.Printf("[Auth] Registered providers: %v", registry.IDs())

	// Initialize FCM client (optional, pushes are disabled without it)
	var fcmClient *fcm.Client
	if cfg.FirebaseCredentials != "" {
		fcmClient, err = fcm.NewClient(cfg.FirebaseCredentials)
		if err != nil {
			log.Printf("[WARN] Failed to initialize FCM client (push notifications disabled): %v", err)
		}
	} else {
		log.Println("[WARN] No Firebase credentials configured, push notifications disabled")
	}
	notifier := notification.NewService(fcmClient, deviceTokenRepo)

	// Initialize Google Calendar service
	calendarService := calendar.NewService(cfg.GoogleClientID, cfg.GoogleClientSecret)

	// Initialize use cases (dependency injection)
	authUsecaseInstance := authUsecase.NewAuthUsecase(userRepo, deviceTokenRepo, registry, cfg)
	friendshipUsecaseInstance := friendshipUsecase.NewFriendshipUsecase(friendshipRepository, userRepo, notifier)
	meetingUsecaseInstance := meetingUsecase.NewMeetingUsecase(meetingRepository, userRepo, notifier)

	calendarHandler := calendarDelivery.NewCalendarHandler(calendarService, userRepo)

	// Initialize HTTP handler
	handler := api.NewHandler(authUsecaseInstance, friendshipUsecaseInstance, meetingUsecaseInstance, calendarHandler, cfg)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
