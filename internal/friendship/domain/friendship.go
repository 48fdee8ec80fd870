package domain

import "time"

// FriendshipStatus represents the state of a friend request
type FriendshipStatus string

const (
	StatusPending  FriendshipStatus = "pending"
	StatusAccepted FriendshipStatus = "accepted"
	StatusRejected FriendshipStatus = "rejected"
)

// Friendship is one edge of the friend graph. UserID is the requester,
// FriendID the addressee; a pair has at most one row in either direction.
type Friendship struct {
	ID            uint             `json:"id" gorm:"primaryKey"`
	UserID        uint             `json:"user_id" gorm:"index;not null"`
	FriendID      uint             `json:"friend_id" gorm:"index;not null"`
	Status        FriendshipStatus `json:"status" gorm:"default:pending"`
	IsCloseFriend bool             `json:"is_close_friend" gorm:"default:false"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// OtherSide returns the participant that is not userID.
func (f *Friendship) OtherSide(userID uint) uint {
	if f.UserID == userID {
		return f.FriendID
	}
	return f.UserID
}

// Stats summarizes a user's friend graph for the dashboard.
type Stats struct {
	TotalFriends    int64 `json:"totalFriends"`
	CloseFriends    int64 `json:"closeFriends"`
	PendingRequests int64 `json:"pendingRequests"`
}
