package domain

import "time"

// MeetingStatus represents the current state of a meeting
type MeetingStatus string

const (
	StatusScheduled MeetingStatus = "scheduled"
	StatusConfirmed MeetingStatus = "confirmed"
	StatusCancelled MeetingStatus = "cancelled"
)

// Valid reports whether s is a known meeting status.
func (s MeetingStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// Meeting is a planned get-together between an organizer and one friend.
type Meeting struct {
	ID          uint          `json:"id" gorm:"primaryKey"`
	Title       string        `json:"title" gorm:"not null"`
	Description string        `json:"description,omitempty"`
	StartTime   time.Time     `json:"start_time" gorm:"index;not null"`
	EndTime     time.Time     `json:"end_time" gorm:"not null"`
	Location    string        `json:"location,omitempty"`
	OrganizerID uint          `json:"organizer_id" gorm:"index;not null"`
	FriendID    uint          `json:"friend_id" gorm:"index;not null"`
	Status      MeetingStatus `json:"status" gorm:"default:scheduled"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
