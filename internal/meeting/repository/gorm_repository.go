package repository

import (
	"errors"
	"time"

	"friend-scheduler-backend/internal/meeting/domain"

	"gorm.io/gorm"
)

// gormMeetingRepository implements MeetingRepository using GORM
type gormMeetingRepository struct {
	db *gorm.DB
}

// NewGormMeetingRepository creates a new GORM-based MeetingRepository
func NewGormMeetingRepository(db *gorm.DB) MeetingRepository {
	return &gormMeetingRepository{db: db}
}

func (r *gormMeetingRepository) Create(meeting *domain.Meeting) error {
	if meeting.Status == "" {
		meeting.Status = domain.StatusScheduled
	}
	meeting.CreatedAt = time.Now()
	meeting.UpdatedAt = time.Now()
	return r.db.Create(meeting).Error
}

func (r *gormMeetingRepository) FindByID(id uint) (*domain.Meeting, error) {
	var meeting domain.Meeting
	err := r.db.Where("id = ?", id).First(&meeting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &meeting, nil
}

func (r *gormMeetingRepository) FindUpcomingByUser(userID uint, now time.Time) ([]*domain.Meeting, error) {
	var meetings []*domain.Meeting
	err := r.db.Where(
		"(organizer_id = ? OR friend_id = ?) AND start_time >= ?",
		userID, userID, now,
	).Order("start_time ASC").Find(&meetings).Error
	return meetings, err
}

func (r *gormMeetingRepository) FindByUserAndRange(userID uint, start, end time.Time) ([]*domain.Meeting, error) {
	var meetings []*domain.Meeting
	err := r.db.Where(
		"(organizer_id = ? OR friend_id = ?) AND start_time >= ? AND start_time < ?",
		userID, userID, start, end,
	).Order("start_time ASC").Find(&meetings).Error
	return meetings, err
}

func (r *gormMeetingRepository) Update(meeting *domain.Meeting) error {
	meeting.UpdatedAt = time.Now()
	return r.db.Save(meeting).Error
}

func (r *gormMeetingRepository) Delete(id uint) error {
	return r.db.Delete(&domain.Meeting{}, "id = ?", id).Error
}
