package notification

import (
	"context"
	"fmt"
	"log"
	"time"

	authrepo "friend-scheduler-backend/internal/auth/repository"
	"friend-scheduler-backend/pkg/fcm"
)

// Service fans push notifications out to a user's registered devices.
// Notification delivery is best-effort: failures are logged, never returned,
// so a push outage cannot fail the triggering request.
type Service struct {
	fcmClient *fcm.Client
	tokenRepo authrepo.DeviceTokenRepository
}

// NewService creates a notification service. fcmClient may be nil when
// Firebase is not configured; the service then silently drops all sends.
func NewService(fcmClient *fcm.Client, tokenRepo authrepo.DeviceTokenRepository) *Service {
	return &Service{
		fcmClient: fcmClient,
		tokenRepo: tokenRepo,
	}
}

func (s *Service) NotifyFriendRequest(ctx context.Context, toUserID uint, fromName string) {
	s.sendToUser(ctx, toUserID, fcm.NotificationData{
		Title: "New friend request",
		Body:  fmt.Sprintf("%s wants to be your friend", fromName),
		Data:  map[string]string{"type": "friend_request"},
	})
}

func (s *Service) NotifyFriendAccepted(ctx context.Context, toUserID uint, byName string) {
	s.sendToUser(ctx, toUserID, fcm.NotificationData{
		Title: "Friend request accepted",
		Body:  fmt.Sprintf("%s accepted your friend request", byName),
		Data:  map[string]string{"type": "friend_accepted"},
	})
}

func (s *Service) NotifyMeetingInvite(ctx context.Context, toUserID uint, organizerName, title string, start time.Time) {
	s.sendToUser(ctx, toUserID, fcm.NotificationData{
		Title: "New meeting invite",
		Body:  fmt.Sprintf("%s invited you to %q on %s", organizerName, title, start.Format("Jan 2 15:04")),
		Data:  map[string]string{"type": "meeting_invite"},
	})
}

func (s *Service) sendToUser(ctx context.Context, userID uint, notification fcm.NotificationData) {
	if s == nil || s.fcmClient == nil {
		return
	}

	tokens, err := s.tokenRepo.GetTokensByUserID(userID)
	if err != nil {
		log.Printf("[Notification] Failed to load device tokens for user %d: %v", userID, err)
		return
	}

	for _, t := range tokens {
		if err := s.fcmClient.SendToDevice(ctx, t.Token, notification); err != nil {
			log.Printf("[Notification] Send to user %d failed: %v", userID, err)
		}
	}
}
