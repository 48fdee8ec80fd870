package usecase

import (
	"context"
	"errors"
	"time"

	authdto "friend-scheduler-backend/internal/auth/dto"
	authrepo "friend-scheduler-backend/internal/auth/repository"
	"friend-scheduler-backend/internal/meeting/domain"
	"friend-scheduler-backend/internal/meeting/dto"
	"friend-scheduler-backend/internal/meeting/repository"
)

var (
	ErrMeetingNotFound = errors.New("meeting not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidStatus   = errors.New("invalid meeting status")
	ErrInvalidTimes    = errors.New("end time must be after start time")
	ErrNotParticipant  = errors.New("not a participant of this meeting")
)

// Notifier pushes meeting events to the invitee's devices.
type Notifier interface {
	NotifyMeetingInvite(ctx context.Context, toUserID uint, organizerName, title string, start time.Time)
}

// MeetingUsecase holds the meeting business rules
type MeetingUsecase interface {
	GetUpcoming(userID uint) ([]dto.MeetingResponse, error)
	GetByRange(userID uint, start, end time.Time) ([]dto.MeetingResponse, error)
	Create(ctx context.Context, organizerID, friendID uint, title, description, location string, start, end time.Time) (*dto.MeetingResponse, error)
	UpdateStatus(userID, meetingID uint, status string) (*dto.MeetingResponse, error)
	Delete(userID, meetingID uint) error
}

type meetingUsecase struct {
	meetingRepo repository.MeetingRepository
	userRepo    authrepo.UserRepository
	notifier    Notifier
}

// NewMeetingUsecase creates a new meetingUsecase. notifier may be nil when
// push notifications are disabled.
func NewMeetingUsecase(meetingRepo repository.MeetingRepository, userRepo authrepo.UserRepository, notifier Notifier) MeetingUsecase {
	return &meetingUsecase{
		meetingRepo: meetingRepo,
		userRepo:    userRepo,
		notifier:    notifier,
	}
}

func (u *meetingUsecase) GetUpcoming(userID uint) ([]dto.MeetingResponse, error) {
	meetings, err := u.meetingRepo.FindUpcomingByUser(userID, time.Now())
	if err != nil {
		return nil, err
	}
	return u.toResponses(meetings)
}

func (u *meetingUsecase) GetByRange(userID uint, start, end time.Time) ([]dto.MeetingResponse, error) {
	meetings, err := u.meetingRepo.FindByUserAndRange(userID, start, end)
	if err != nil {
		return nil, err
	}
	return u.toResponses(meetings)
}

func (u *meetingUsecase) Create(ctx context.Context, organizerID, friendID uint, title, description, location string, start, end time.Time) (*dto.MeetingResponse, error) {
	if !end.After(start) {
		return nil, ErrInvalidTimes
	}

	organizer, err := u.userRepo.FindByID(organizerID)
	if err != nil {
		return nil, err
	}
	if organizer == nil {
		return nil, ErrUserNotFound
	}

	friend, err := u.userRepo.FindByID(friendID)
	if err != nil {
		return nil, err
	}
	if friend == nil {
		return nil, ErrUserNotFound
	}

	meeting := &domain.Meeting{
		Title:       title,
		Description: description,
		StartTime:   start,
		EndTime:     end,
		Location:    location,
		OrganizerID: organizer.ID,
		FriendID:    friend.ID,
	}
	if err := u.meetingRepo.Create(meeting); err != nil {
		return nil, err
	}

	if u.notifier != nil {
		u.notifier.NotifyMeetingInvite(ctx, friend.ID, organizer.Name, meeting.Title, meeting.StartTime)
	}

	response, err := u.toResponse(meeting)
	if err != nil {
		return nil, err
	}
	return response, nil
}

func (u *meetingUsecase) UpdateStatus(userID, meetingID uint, status string) (*dto.MeetingResponse, error) {
	newStatus := domain.MeetingStatus(status)
	if !newStatus.Valid() {
		return nil, ErrInvalidStatus
	}

	meeting, err := u.meetingRepo.FindByID(meetingID)
	if err != nil {
		return nil, err
	}
	if meeting == nil {
		return nil, ErrMeetingNotFound
	}
	if meeting.OrganizerID != userID && meeting.FriendID != userID {
		return nil, ErrNotParticipant
	}

	meeting.Status = newStatus
	if err := u.meetingRepo.Update(meeting); err != nil {
		return nil, err
	}

	return u.toResponse(meeting)
}

func (u *meetingUsecase) Delete(userID, meetingID uint) error {
	meeting, err := u.meetingRepo.FindByID(meetingID)
	if err != nil {
		return err
	}
	if meeting == nil {
		return ErrMeetingNotFound
	}
	if meeting.OrganizerID != userID && meeting.FriendID != userID {
		return ErrNotParticipant
	}

	return u.meetingRepo.Delete(meeting.ID)
}

func (u *meetingUsecase) toResponses(meetings []*domain.Meeting) ([]dto.MeetingResponse, error) {
	responses := make([]dto.MeetingResponse, 0, len(meetings))
	for _, m := range meetings {
		response, err := u.toResponse(m)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *response)
	}
	return responses, nil
}

func (u *meetingUsecase) toResponse(meeting *domain.Meeting) (*dto.MeetingResponse, error) {
	organizer, err := u.userRepo.FindByID(meeting.OrganizerID)
	if err != nil {
		return nil, err
	}
	friend, err := u.userRepo.FindByID(meeting.FriendID)
	if err != nil {
		return nil, err
	}

	response := &dto.MeetingResponse{
		ID:          meeting.ID,
		Title:       meeting.Title,
		Description: meeting.Description,
		StartTime:   meeting.StartTime,
		EndTime:     meeting.EndTime,
		Location:    meeting.Location,
		Status:      string(meeting.Status),
		CreatedAt:   meeting.CreatedAt,
	}
	if organizer != nil {
		response.Organizer = authdto.NewUserResponse(organizer)
	}
	if friend != nil {
		response.Friend = authdto.NewUserResponse(friend)
	}
	return response, nil
}
