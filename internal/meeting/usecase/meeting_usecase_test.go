package usecase

import (
	"context"
	"testing"
	"time"

	authdomain "friend-scheduler-backend/internal/auth/domain"
	authrepo "friend-scheduler-backend/internal/auth/repository"
	"friend-scheduler-backend/internal/meeting/domain"
	"friend-scheduler-backend/internal/meeting/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type recordingNotifier struct {
	invites []uint
}

func (n *recordingNotifier) NotifyMeetingInvite(_ context.Context, toUserID uint, _, _ string, _ time.Time) {
	n.invites = append(n.invites, toUserID)
}

type fixture struct {
	usecase  MeetingUsecase
	userRepo authrepo.UserRepository
	notifier *recordingNotifier
	alice    *authdomain.User
	bob      *authdomain.User
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&authdomain.User{}, &domain.Meeting{}))

	userRepo := authrepo.NewUserRepository(db)
	notifier := &recordingNotifier{}
	uc := NewMeetingUsecase(repository.NewGormMeetingRepository(db), userRepo, notifier)

	f := &fixture{usecase: uc, userRepo: userRepo, notifier: notifier}
	f.alice = f.createUser(t, "alice@example.com", "Alice")
	f.bob = f.createUser(t, "bob@example.com", "Bob")
	return f
}

func (f *fixture) createUser(t *testing.T, email, name string) *authdomain.User {
	t.Helper()
	user, err := f.userRepo.UpsertIdentity(&authdomain.OAuthLogin{
		Email:    email,
		Name:     name,
		Provider: "google",
		OAuthID:  email,
	})
	require.NoError(t, err)
	return user
}

func TestCreateMeeting(t *testing.T) {
	f := setupFixture(t)
	start := time.Now().Add(24 * time.Hour)

	meeting, err := f.usecase.Create(context.Background(), f.alice.ID, f.bob.ID,
		"Coffee", "Catch up", "Cafe Central", start, start.Add(time.Hour))
	require.NoError(t, err)

	assert.NotZero(t, meeting.ID)
	assert.Equal(t, "Coffee", meeting.Title)
	assert.Equal(t, "scheduled", meeting.Status)
	assert.Equal(t, f.alice.ID, meeting.Organizer.ID)
	assert.Equal(t, "Alice", meeting.Organizer.Name)
	assert.Equal(t, f.bob.ID, meeting.Friend.ID)

	assert.Equal(t, []uint{f.bob.ID}, f.notifier.invites)
}

func TestCreateMeetingRejectsInvertedTimes(t *testing.T) {
	f := setupFixture(t)
	start := time.Now().Add(24 * time.Hour)

	_, err := f.usecase.Create(context.Background(), f.alice.ID, f.bob.ID,
		"Coffee", "", "", start, start.Add(-time.Hour))
	assert.ErrorIs(t, err, ErrInvalidTimes)

	_, err = f.usecase.Create(context.Background(), f.alice.ID, f.bob.ID,
		"Coffee", "", "", start, start)
	assert.ErrorIs(t, err, ErrInvalidTimes)
}

func TestCreateMeetingRejectsUnknownFriend(t *testing.T) {
	f := setupFixture(t)
	start := time.Now().Add(24 * time.Hour)

	_, err := f.usecase.Create(context.Background(), f.alice.ID, 999,
		"Coffee", "", "", start, start.Add(time.Hour))
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetUpcomingSkipsPastMeetings(t *testing.T) {
	f := setupFixture(t)

	past := time.Now().Add(-48 * time.Hour)
	_, err := f.usecase.Create(context.Background(), f.alice.ID, f.bob.ID,
		"Old", "", "", past, past.Add(time.Hour))
	require.NoError(t, err)

	future := time.Now().Add(48 * time.Hour)
	_, err = f.usecase.Create(context.Background(), f.alice.ID, f.bob.ID,
		"New", "", "", future, future.Add(time.Hour))
	require.NoError(t, err)

	upcoming, err := f.usecase.GetUpcoming(f.alice.ID)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, "New", upcoming[0].Title)

	// the invitee sees the same meeting
	upcoming, err = f.usecase.GetUpcoming(f.bob.ID)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
}

func TestGetByRange(t *testing.T) {
	f := setupFixture(t)
	base := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)

	for i, title := range []string{"Mon", "Wed", "Fri"} {
		start := base.Add(time.Duration(i*2*24) * time.Hour)
		_, err := f.usecase.Create(context.Background(), f.alice.ID, f.bob.ID,
			title, "", "", start, start.Add(time.Hour))
		require.NoError(t, err)
	}

	// window covers Mon and Wed only
	meetings, err := f.usecase.GetByRange(f.alice.ID, base, base.Add(3*24*time.Hour))
	require.NoError(t, err)
	require.Len(t, meetings, 2)
	assert.Equal(t, "Mon", meetings[0].Title)
	assert.Equal(t, "Wed", meetings[1].Title)
}

func TestUpdateStatus(t *testing.T) {
	f := setupFixture(t)
	start := time.Now().Add(24 * time.Hour)

	meeting, err := f.usecase.Create(context.Background(), f.alice.ID, f.bob.ID,
		"Coffee", "", "", start, start.Add(time.Hour))
	require.NoError(t, err)

	updated, err := f.usecase.UpdateStatus(f.bob.ID, meeting.ID, "confirmed")
	require.NoError(t, err)
	assert.Equal(t, "confirmed", updated.Status)

	_, err = f.usecase.UpdateStatus(f.alice.ID, meeting.ID, "postponed")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = f.usecase.UpdateStatus(999, meeting.ID, "cancelled")
	assert.ErrorIs(t, err, ErrNotParticipant)

	_, err = f.usecase.UpdateStatus(f.alice.ID, 999, "cancelled")
	assert.ErrorIs(t, err, ErrMeetingNotFound)
}

func TestDeleteMeeting(t *testing.T) {
	f := setupFixture(t)
	start := time.Now().Add(24 * time.Hour)

	meeting, err := f.usecase.Create(context.Background(), f.alice.ID, f.bob.ID,
		"Coffee", "", "", start, start.Add(time.Hour))
	require.NoError(t, err)

	err = f.usecase.Delete(999, meeting.ID)
	assert.ErrorIs(t, err, ErrNotParticipant)

	require.NoError(t, f.usecase.Delete(f.alice.ID, meeting.ID))

	err = f.usecase.Delete(f.alice.ID, meeting.ID)
	assert.ErrorIs(t, err, ErrMeetingNotFound)
}
