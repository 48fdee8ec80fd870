package notification

import (
	"context"
	"testing"
	"time"

	authdomain "friend-scheduler-backend/internal/auth/domain"
)

type failingTokenRepo struct{}

func (failingTokenRepo) SaveToken(uint, string, string) error { return nil }
func (failingTokenRepo) GetTokensByUserID(uint) ([]authdomain.DeviceToken, error) {
	panic("must not be reached when fcm is disabled")
}
func (failingTokenRepo) DeleteToken(string) error        { return nil }
func (failingTokenRepo) DeleteTokensByUserID(uint) error { return nil }

func TestNotifyWithoutFCMIsNoOp(t *testing.T) {
	svc := NewService(nil, failingTokenRepo{})

	svc.NotifyFriendRequest(context.Background(), 1, "Alice")
	svc.NotifyFriendAccepted(context.Background(), 1, "Bob")
	svc.NotifyMeetingInvite(context.Background(), 1, "Alice", "Coffee", time.Now())
}
