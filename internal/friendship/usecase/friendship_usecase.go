package usecase

import (
	"context"
	"errors"

	authrepo "friend-scheduler-backend/internal/auth/repository"
	"friend-scheduler-backend/internal/friendship/domain"
	"friend-scheduler-backend/internal/friendship/dto"
	"friend-scheduler-backend/internal/friendship/repository"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrFriendNotFound  = errors.New("friend not found")
	ErrSelfFriendship  = errors.New("cannot add yourself as a friend")
	ErrAlreadyFriends  = errors.New("friendship already exists")
	ErrRequestNotFound = errors.New("friend request not found")
)

// Notifier pushes friend-graph events to the other participant's devices.
// Implementations must tolerate missing device tokens.
type Notifier interface {
	NotifyFriendRequest(ctx context.Context, toUserID uint, fromName string)
	NotifyFriendAccepted(ctx context.Context, toUserID uint, byName string)
}

// FriendshipUsecase holds the friend graph business rules
type FriendshipUsecase interface {
	GetFriends(userID uint) ([]dto.FriendResponse, error)
	GetCloseFriends(userID uint) ([]dto.FriendResponse, error)
	GetPendingRequests(userID uint) ([]dto.FriendResponse, error)
	GetStats(userID uint) (*domain.Stats, error)
	AddFriend(ctx context.Context, userID uint, friendEmail string) error
	AcceptRequest(ctx context.Context, userID, friendID uint) error
	RejectRequest(userID, friendID uint) error
	ToggleCloseFriend(userID, friendID uint) error
}

type friendshipUsecase struct {
	friendshipRepo repository.FriendshipRepository
	userRepo       authrepo.UserRepository
	notifier       Notifier
}

// NewFriendshipUsecase creates a new friendshipUsecase. notifier may be nil
// when push notifications are disabled.
func NewFriendshipUsecase(friendshipRepo repository.FriendshipRepository, userRepo authrepo.UserRepository, notifier Notifier) FriendshipUsecase {
	return &friendshipUsecase{
		friendshipRepo: friendshipRepo,
		userRepo:       userRepo,
		notifier:       notifier,
	}
}

func (u *friendshipUsecase) GetFriends(userID uint) ([]dto.FriendResponse, error) {
	friendships, err := u.friendshipRepo.FindAcceptedByUser(userID)
	if err != nil {
		return nil, err
	}
	return u.toFriendResponses(userID, friendships)
}

func (u *friendshipUsecase) GetCloseFriends(userID uint) ([]dto.FriendResponse, error) {
	friendships, err := u.friendshipRepo.FindCloseByUser(userID)
	if err != nil {
		return nil, err
	}
	return u.toFriendResponses(userID, friendships)
}

func (u *friendshipUsecase) GetPendingRequests(userID uint) ([]dto.FriendResponse, error) {
	friendships, err := u.friendshipRepo.FindPendingRequestsFor(userID)
	if err != nil {
		return nil, err
	}
	return u.toFriendResponses(userID, friendships)
}

func (u *friendshipUsecase) GetStats(userID uint) (*domain.Stats, error) {
	friendships, err := u.friendshipRepo.FindAllByUser(userID)
	if err != nil {
		return nil, err
	}

	stats := &domain.Stats{}
	for _, f := range friendships {
		switch {
		case f.Status == domain.StatusAccepted && f.IsCloseFriend:
			stats.TotalFriends++
			stats.CloseFriends++
		case f.Status == domain.StatusAccepted:
			stats.TotalFriends++
		case f.Status == domain.StatusPending && f.FriendID == userID:
			stats.PendingRequests++
		}
	}
	return stats, nil
}

func (u *friendshipUsecase) AddFriend(ctx context.Context, userID uint, friendEmail string) error {
	user, err := u.userRepo.FindByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	friend, err := u.userRepo.FindByEmail(friendEmail)
	if err != nil {
		return err
	}
	if friend == nil {
		return ErrFriendNotFound
	}

	if user.ID == friend.ID {
		return ErrSelfFriendship
	}

	existing, err := u.friendshipRepo.FindBetween(user.ID, friend.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrAlreadyFriends
	}

	if err := u.friendshipRepo.Create(&domain.Friendship{
		UserID:   user.ID,
		FriendID: friend.ID,
	}); err != nil {
		return err
	}

	if u.notifier != nil {
		u.notifier.NotifyFriendRequest(ctx, friend.ID, user.Name)
	}
	return nil
}

// AcceptRequest flips the inbound request from friendID to userID to
// accepted. Only the addressee can accept.
func (u *friendshipUsecase) AcceptRequest(ctx context.Context, userID, friendID uint) error {
	friendship, err := u.friendshipRepo.FindDirected(friendID, userID)
	if err != nil {
		return err
	}
	if friendship == nil {
		return ErrRequestNotFound
	}

	friendship.Status = domain.StatusAccepted
	if err := u.friendshipRepo.Update(friendship); err != nil {
		return err
	}

	if u.notifier != nil {
		user, err := u.userRepo.FindByID(userID)
		if err == nil && user != nil {
			u.notifier.NotifyFriendAccepted(ctx, friendID, user.Name)
		}
	}
	return nil
}

func (u *friendshipUsecase) RejectRequest(userID, friendID uint) error {
	friendship, err := u.friendshipRepo.FindDirected(friendID, userID)
	if err != nil {
		return err
	}
	if friendship == nil {
		return ErrRequestNotFound
	}

	friendship.Status = domain.StatusRejected
	return u.friendshipRepo.Update(friendship)
}

func (u *friendshipUsecase) ToggleCloseFriend(userID, friendID uint) error {
	friendship, err := u.friendshipRepo.FindBetween(userID, friendID)
	if err != nil {
		return err
	}
	if friendship == nil {
		return ErrRequestNotFound
	}

	friendship.IsCloseFriend = !friendship.IsCloseFriend
	return u.friendshipRepo.Update(friendship)
}

func (u *friendshipUsecase) toFriendResponses(userID uint, friendships []*domain.Friendship) ([]dto.FriendResponse, error) {
	responses := make([]dto.FriendResponse, 0, len(friendships))
	for _, f := range friendships {
		friend, err := u.userRepo.FindByID(f.OtherSide(userID))
		if err != nil {
			return nil, err
		}
		if friend == nil {
			// Dangling edge, e.g. a deleted account. Skip it.
			continue
		}
		responses = append(responses, dto.FriendResponse{
			ID:        friend.ID,
			Name:      friend.Name,
			Email:     friend.Email,
			IsClose:   f.IsCloseFriend,
			CreatedAt: f.CreatedAt,
		})
	}
	return responses, nil
}
