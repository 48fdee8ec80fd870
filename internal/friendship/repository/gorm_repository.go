package repository

import (
	"errors"
	"time"

	"friend-scheduler-backend/internal/friendship/domain"

	"gorm.io/gorm"
)

// gormFriendshipRepository implements FriendshipRepository using GORM
type gormFriendshipRepository struct {
	db *gorm.DB
}

// NewGormFriendshipRepository creates a new GORM-based FriendshipRepository
func NewGormFriendshipRepository(db *gorm.DB) FriendshipRepository {
	return &gormFriendshipRepository{db: db}
}

func (r *gormFriendshipRepository) Create(friendship *domain.Friendship) error {
	if friendship.Status == "" {
		friendship.Status = domain.StatusPending
	}
	friendship.CreatedAt = time.Now()
	friendship.UpdatedAt = time.Now()
	return r.db.Create(friendship).Error
}

func (r *gormFriendshipRepository) Update(friendship *domain.Friendship) error {
	friendship.UpdatedAt = time.Now()
	return r.db.Save(friendship).Error
}

func (r *gormFriendshipRepository) FindBetween(userID, friendID uint) (*domain.Friendship, error) {
	var friendship domain.Friendship
	err := r.db.Where(
		"(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
		userID, friendID, friendID, userID,
	).First(&friendship).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &friendship, nil
}

func (r *gormFriendshipRepository) FindDirected(userID, friendID uint) (*domain.Friendship, error) {
	var friendship domain.Friendship
	err := r.db.Where("user_id = ? AND friend_id = ?", userID, friendID).First(&friendship).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &friendship, nil
}

func (r *gormFriendshipRepository) FindAcceptedByUser(userID uint) ([]*domain.Friendship, error) {
	var friendships []*domain.Friendship
	err := r.db.Where(
		"(user_id = ? OR friend_id = ?) AND status = ?",
		userID, userID, domain.StatusAccepted,
	).Find(&friendships).Error
	return friendships, err
}

func (r *gormFriendshipRepository) FindCloseByUser(userID uint) ([]*domain.Friendship, error) {
	var friendships []*domain.Friendship
	err := r.db.Where(
		"(user_id = ? OR friend_id = ?) AND status = ? AND is_close_friend = ?",
		userID, userID, domain.StatusAccepted, true,
	).Find(&friendships).Error
	return friendships, err
}

func (r *gormFriendshipRepository) FindPendingRequestsFor(userID uint) ([]*domain.Friendship, error) {
	var friendships []*domain.Friendship
	err := r.db.Where(
		"friend_id = ? AND status = ?",
		userID, domain.StatusPending,
	).Find(&friendships).Error
	return friendships, err
}

func (r *gormFriendshipRepository) FindAllByUser(userID uint) ([]*domain.Friendship, error) {
	var friendships []*domain.Friendship
	err := r.db.Where("user_id = ? OR friend_id = ?", userID, userID).Find(&friendships).Error
	return friendships, err
}
