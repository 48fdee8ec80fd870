package repository

import (
	"time"

	"friend-scheduler-backend/internal/meeting/domain"
)

// MeetingRepository defines the interface for meeting data access
type MeetingRepository interface {
	// Create creates a new meeting
	Create(meeting *domain.Meeting) error

	// FindByID finds a meeting by its ID
	FindByID(id uint) (*domain.Meeting, error)

	// FindUpcomingByUser returns meetings starting at or after now where the
	// user is organizer or invitee, soonest first
	FindUpcomingByUser(userID uint, now time.Time) ([]*domain.Meeting, error)

	// FindByUserAndRange returns meetings starting within [start, end),
	// soonest first
	FindByUserAndRange(userID uint, start, end time.Time) ([]*domain.Meeting, error)

	// Update updates an existing meeting
	Update(meeting *domain.Meeting) error

	// Delete deletes a meeting by ID
	Delete(id uint) error
}
