package repository

import "friend-scheduler-backend/internal/friendship/domain"

// FriendshipRepository defines the interface for friend graph data access
type FriendshipRepository interface {
	// Create inserts a new pending friendship edge
	Create(friendship *domain.Friendship) error

	// Update updates an existing friendship
	Update(friendship *domain.Friendship) error

	// FindBetween returns the edge between two users in either direction
	FindBetween(userID, friendID uint) (*domain.Friendship, error)

	// FindDirected returns the edge requested by userID towards friendID
	FindDirected(userID, friendID uint) (*domain.Friendship, error)

	// FindAcceptedByUser returns accepted friendships touching the user
	FindAcceptedByUser(userID uint) ([]*domain.Friendship, error)

	// FindCloseByUser returns accepted close friendships touching the user
	FindCloseByUser(userID uint) ([]*domain.Friendship, error)

	// FindPendingRequestsFor returns pending requests addressed to the user
	FindPendingRequestsFor(userID uint) ([]*domain.Friendship, error)

	// FindAllByUser returns every friendship touching the user
	FindAllByUser(userID uint) ([]*domain.Friendship, error)
}
