package usecase

import (
	"context"
	"testing"

	authdomain "friend-scheduler-backend/internal/auth/domain"
	authrepo "friend-scheduler-backend/internal/auth/repository"
	"friend-scheduler-backend/internal/friendship/domain"
	"friend-scheduler-backend/internal/friendship/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type recordingNotifier struct {
	requests []uint
	accepts  []uint
}

func (n *recordingNotifier) NotifyFriendRequest(_ context.Context, toUserID uint, _ string) {
	n.requests = append(n.requests, toUserID)
}

func (n *recordingNotifier) NotifyFriendAccepted(_ context.Context, toUserID uint, _ string) {
	n.accepts = append(n.accepts, toUserID)
}

type fixture struct {
	usecase  FriendshipUsecase
	userRepo authrepo.UserRepository
	notifier *recordingNotifier
	alice    *authdomain.User
	bob      *authdomain.User
	carol    *authdomain.User
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&authdomain.User{}, &domain.Friendship{}))

	userRepo := authrepo.NewUserRepository(db)
	notifier := &recordingNotifier{}
	uc := NewFriendshipUsecase(repository.NewGormFriendshipRepository(db), userRepo, notifier)

	f := &fixture{usecase: uc, userRepo: userRepo, notifier: notifier}
	f.alice = f.createUser(t, "alice@example.com", "Alice")
	f.bob = f.createUser(t, "bob@example.com", "Bob")
	f.carol = f.createUser(t, "carol@example.com", "Carol")
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

func TestAddFriendCreatesPendingRequest(t *testing.T) {
	f := setupFixture(t)

	require.NoError(t, f.usecase.AddFriend(context.Background(), f.alice.ID, "bob@example.com"))

	pending, err := f.usecase.GetPendingRequests(f.bob.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, f.alice.ID, pending[0].ID)
	assert.Equal(t, "Alice", pending[0].Name)

	assert.Equal(t, []uint{f.bob.ID}, f.notifier.requests)
}

func TestAddFriendRejectsSelf(t *testing.T) {
	f := setupFixture(t)

	err := f.usecase.AddFriend(context.Background(), f.alice.ID, "alice@example.com")
	assert.ErrorIs(t, err, ErrSelfFriendship)
}

func TestAddFriendRejectsUnknownEmail(t *testing.T) {
	f := setupFixture(t)

	err := f.usecase.AddFriend(context.Background(), f.alice.ID, "nobody@example.com")
	assert.ErrorIs(t, err, ErrFriendNotFound)
}

func TestAddFriendRejectsDuplicateEitherDirection(t *testing.T) {
	f := setupFixture(t)

	require.NoError(t, f.usecase.AddFriend(context.Background(), f.alice.ID, "bob@example.com"))

	err := f.usecase.AddFriend(context.Background(), f.alice.ID, "bob@example.com")
	assert.ErrorIs(t, err, ErrAlreadyFriends)

	err = f.usecase.AddFriend(context.Background(), f.bob.ID, "alice@example.com")
	assert.ErrorIs(t, err, ErrAlreadyFriends)
}

func TestAcceptRequest(t *testing.T) {
	f := setupFixture(t)

	require.NoError(t, f.usecase.AddFriend(context.Background(), f.alice.ID, "bob@example.com"))
	require.NoError(t, f.usecase.AcceptRequest(context.Background(), f.bob.ID, f.alice.ID))

	friends, err := f.usecase.GetFriends(f.alice.ID)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, f.bob.ID, friends[0].ID)

	friends, err = f.usecase.GetFriends(f.bob.ID)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, f.alice.ID, friends[0].ID)

	assert.Equal(t, []uint{f.alice.ID}, f.notifier.accepts)
}

func TestAcceptRequestOnlyAddresseeCanAccept(t *testing.T) {
	f := setupFixture(t)

	require.NoError(t, f.usecase.AddFriend(context.Background(), f.alice.ID, "bob@example.com"))

	err := f.usecase.AcceptRequest(context.Background(), f.alice.ID, f.bob.ID)
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestRejectRequest(t *testing.T) {
	f := setupFixture(t)

	require.NoError(t, f.usecase.AddFriend(context.Background(), f.alice.ID, "bob@example.com"))
	require.NoError(t, f.usecase.RejectRequest(f.bob.ID, f.alice.ID))

	pending, err := f.usecase.GetPendingRequests(f.bob.ID)
	require.NoError(t, err)
	assert.Empty(t, pending)

	friends, err := f.usecase.GetFriends(f.alice.ID)
	require.NoError(t, err)
	assert.Empty(t, friends)
}

func TestToggleCloseFriend(t *testing.T) {
	f := setupFixture(t)

	require.NoError(t, f.usecase.AddFriend(context.Background(), f.alice.ID, "bob@example.com"))
	require.NoError(t, f.usecase.AcceptRequest(context.Background(), f.bob.ID, f.alice.ID))

	require.NoError(t, f.usecase.ToggleCloseFriend(f.alice.ID, f.bob.ID))

	closeFriends, err := f.usecase.GetCloseFriends(f.alice.ID)
	require.NoError(t, err)
	require.Len(t, closeFriends, 1)
	assert.True(t, closeFriends[0].IsClose)

	require.NoError(t, f.usecase.ToggleCloseFriend(f.alice.ID, f.bob.ID))

	closeFriends, err = f.usecase.GetCloseFriends(f.alice.ID)
	require.NoError(t, err)
	assert.Empty(t, closeFriends)
}

func TestGetStats(t *testing.T) {
	f := setupFixture(t)

	// alice and bob friends, marked close; carol has a pending request to alice
	require.NoError(t, f.usecase.AddFriend(context.Background(), f.alice.ID, "bob@example.com"))
	require.NoError(t, f.usecase.AcceptRequest(context.Background(), f.bob.ID, f.alice.ID))
	require.NoError(t, f.usecase.ToggleCloseFriend(f.alice.ID, f.bob.ID))
	require.NoError(t, f.usecase.AddFriend(context.Background(), f.carol.ID, "alice@example.com"))

	stats, err := f.usecase.GetStats(f.alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalFriends)
	assert.Equal(t, int64(1), stats.CloseFriends)
	assert.Equal(t, int64(1), stats.PendingRequests)

	stats, err = f.usecase.GetStats(f.carol.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalFriends)
	assert.Equal(t, int64(0), stats.PendingRequests)
}
