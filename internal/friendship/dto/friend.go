package dto

import "time"

// FriendResponse is one entry in a friend listing. CreatedAt is the
// friendship's creation time, not the friend's signup time.
type FriendResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	IsClose   bool      `json:"is_close"`
	CreatedAt time.Time `json:"created_at"`
}

type AddFriendRequest struct {
	Email string `json:"email" binding:"required,email"`
}
