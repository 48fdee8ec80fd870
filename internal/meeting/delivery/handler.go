package delivery

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"friend-scheduler-backend/internal/meeting/dto"
	"friend-scheduler-backend/internal/meeting/usecase"

	"github.com/gin-gonic/gin"
)

// MeetingHandler handles meeting-related HTTP requests
type MeetingHandler struct {
	meetingUsecase usecase.MeetingUsecase
}

// NewMeetingHandler creates a new MeetingHandler
func NewMeetingHandler(meetingUsecase usecase.MeetingUsecase) *MeetingHandler {
	return &MeetingHandler{
		meetingUsecase: meetingUsecase,
	}
}

// GetUpcoming returns the user's upcoming meetings, soonest first
// GET /api/meetings/upcoming
func (h *MeetingHandler) GetUpcoming(c *gin.Context) {
	userID := c.GetUint("userID")

	meetings, err := h.meetingUsecase.GetUpcoming(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, meetings)
}

// GetByRange returns meetings starting inside the requested window
// GET /api/meetings/range?startDate=...&endDate=...
func (h *MeetingHandler) GetByRange(c *gin.Context) {
	userID := c.GetUint("userID")

	start, err := parseTime(c.Query("startDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid startDate"})
		return
	}
	end, err := parseTime(c.Query("endDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid endDate"})
		return
	}

	meetings, err := h.meetingUsecase.GetByRange(userID, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, meetings)
}

// Create creates a meeting with one friend
// POST /api/meetings
func (h *MeetingHandler) Create(c *gin.Context) {
	userID := c.GetUint("userID")

	var req dto.CreateMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, err := parseTime(req.StartTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_time"})
		return
	}
	end, err := parseTime(req.EndTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_time"})
		return
	}

	meeting, err := h.meetingUsecase.Create(c.Request.Context(), userID, req.FriendID, req.Title, req.Description, req.Location, start, end)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, meeting)
}

// UpdateStatus updates a meeting's status
// PUT /api/meetings/:id/status
func (h *MeetingHandler) UpdateStatus(c *gin.Context) {
	userID := c.GetUint("userID")
	meetingID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meeting id"})
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meeting, err := h.meetingUsecase.UpdateStatus(userID, meetingID, req.Status)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, meeting)
}

// Delete deletes a meeting
// DELETE /api/meetings/:id
func (h *MeetingHandler) Delete(c *gin.Context) {
	userID := c.GetUint("userID")
	meetingID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meeting id"})
		return
	}

	if err := h.meetingUsecase.Delete(userID, meetingID); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Meeting deleted successfully"})
}

func (h *MeetingHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrMeetingNotFound), errors.Is(err, usecase.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrNotParticipant):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrInvalidStatus), errors.Is(err, usecase.ErrInvalidTimes):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// parseTime accepts RFC3339 or a bare local datetime, matching what the
// mobile client sends.
func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05", s)
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	return uint(id), err
}
