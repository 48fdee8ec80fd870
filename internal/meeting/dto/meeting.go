package dto

import (
	"time"

	authdto "friend-scheduler-backend/internal/auth/dto"
)

type CreateMeetingRequest struct {
	FriendID    uint   `json:"friend_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Location    string `json:"location"`
	StartTime   string `json:"start_time" binding:"required"`
	EndTime     string `json:"end_time" binding:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// MeetingResponse embeds both participants' public profiles so clients
// don't need follow-up lookups.
type MeetingResponse struct {
	ID          uint                 `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description,omitempty"`
	StartTime   time.Time            `json:"start_time"`
	EndTime     time.Time            `json:"end_time"`
	Location    string               `json:"location,omitempty"`
	Organizer   authdto.UserResponse `json:"organizer"`
	Friend      authdto.UserResponse `json:"friend"`
	Status      string               `json:"status"`
	CreatedAt   time.Time            `json:"created_at"`
}
