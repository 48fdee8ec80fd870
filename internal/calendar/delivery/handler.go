package delivery

import (
	"net/http"
	"strconv"
	"time"

	authdomain "friend-scheduler-backend/internal/auth/domain"
	authrepo "friend-scheduler-backend/internal/auth/repository"
	"friend-scheduler-backend/pkg/calendar"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
)

// CalendarHandler passes Google Calendar queries through with the
// authenticated user's stored tokens.
type CalendarHandler struct {
	calendarService *calendar.Service
	userRepo        authrepo.UserRepository
}

// NewCalendarHandler creates a new CalendarHandler
func NewCalendarHandler(calendarService *calendar.Service, userRepo authrepo.UserRepository) *CalendarHandler {
	return &CalendarHandler{
		calendarService: calendarService,
		userRepo:        userRepo,
	}
}

// GetUpcomingEvents returns the user's next Google Calendar events
// GET /api/calendar/events/upcoming?maxResults=10
func (h *CalendarHandler) GetUpcomingEvents(c *gin.Context) {
	user, ok := h.googleUser(c)
	if !ok {
		return
	}

	maxResults, err := strconv.ParseInt(c.DefaultQuery("maxResults", "10"), 10, 64)
	if err != nil || maxResults <= 0 {
		maxResults = 10
	}

	events, err := h.calendarService.UpcomingEvents(c.Request.Context(), user.AccessToken, user.RefreshToken, maxResults, h.persistToken(user))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"count":  len(events),
	})
}

// GetEventsByRange returns Google Calendar events within a window
// GET /api/calendar/events/range?startDate=...&endDate=...
func (h *CalendarHandler) GetEventsByRange(c *gin.Context) {
	user, ok := h.googleUser(c)
	if !ok {
		return
	}

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

	events, err := h.calendarService.EventsInRange(c.Request.Context(), user.AccessToken, user.RefreshToken, start, end, h.persistToken(user))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events":    events,
		"count":     len(events),
		"startDate": c.Query("startDate"),
		"endDate":   c.Query("endDate"),
	})
}

// googleUser pulls the authenticated user and checks calendar access is
// possible: only Google logins carry a usable calendar token.
func (h *CalendarHandler) googleUser(c *gin.Context) (*authdomain.User, bool) {
	user, ok := c.MustGet("user").(*authdomain.User)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return nil, false
	}
	if user.AccessToken == "" || user.OAuthProvider != "google" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user does not have Google calendar access"})
		return nil, false
	}
	return user, true
}

// persistToken stores a rotated access token back on the user row.
func (h *CalendarHandler) persistToken(user *authdomain.User) calendar.TokenUpdateFunc {
	return func(token *oauth2.Token) error {
		user.AccessToken = token.AccessToken
		if token.RefreshToken != "" {
			user.RefreshToken = token.RefreshToken
		}
		return h.userRepo.Update(user)
	}
}

func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05", s)
}
