package calendar

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// TokenUpdateFunc is a callback invoked when the token source rotated the
// user's access token, so callers can persist the new one.
type TokenUpdateFunc func(*oauth2.Token) error

type Service struct {
	clientID     string
	clientSecret string
}

type notifyTokenSource struct {
	src      oauth2.TokenSource
	current  *oauth2.Token
	callback TokenUpdateFunc
}

func (s *notifyTokenSource) Token() (*oauth2.Token, error) {
	t, err := s.src.Token()
	if err != nil {
		return nil, err
	}
	if s.callback != nil && s.current.AccessToken != t.AccessToken {
		s.current = t
		if err := s.callback(t); err != nil {
			log.Printf("[Calendar] Failed to persist refreshed token: %v", err)
		}
	}
	return t, nil
}

func NewService(clientID, clientSecret string) *Service {
	return &Service{
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

// calendarService creates a Calendar API client backed by the user's tokens
func (s *Service) calendarService(ctx context.Context, accessToken, refreshToken string, onTokenRefresh TokenUpdateFunc) (*calendar.Service, error) {
	token := &oauth2.Token{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
	}

	// Only force refresh if we have a refresh token
	if refreshToken != "" {
		token.Expiry = time.Now()
	}

	config := &oauth2.Config{
		ClientID:     s.clientID,
		ClientSecret: s.clientSecret,
		Endpoint:     google.Endpoint,
	}

	tokenSource := config.TokenSource(ctx, token)

	// Wrap token source to detect refreshes
	wrappedSource := &notifyTokenSource{
		src:      tokenSource,
		current:  token,
		callback: onTokenRefresh,
	}

	client := oauth2.NewClient(ctx, wrappedSource)

	srv, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Calendar service: %w", err)
	}

	return srv, nil
}

// UpcomingEvents lists the next events on the user's primary calendar.
func (s *Service) UpcomingEvents(ctx context.Context, accessToken, refreshToken string, maxResults int64, onTokenRefresh TokenUpdateFunc) ([]*calendar.Event, error) {
	srv, err := s.calendarService(ctx, accessToken, refreshToken, onTokenRefresh)
	if err != nil {
		return nil, err
	}

	events, err := srv.Events.List("primary").
		TimeMin(time.Now().Format(time.RFC3339)).
		MaxResults(maxResults).
		OrderBy("startTime").
		SingleEvents(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve events: %w", err)
	}

	return events.Items, nil
}

// EventsInRange lists primary-calendar events within [start, end].
func (s *Service) EventsInRange(ctx context.Context, accessToken, refreshToken string, start, end time.Time, onTokenRefresh TokenUpdateFunc) ([]*calendar.Event, error) {
	srv, err := s.calendarService(ctx, accessToken, refreshToken, onTokenRefresh)
	if err != nil {
		return nil, err
	}

	events, err := srv.Events.List("primary").
		TimeMin(start.Format(time.RFC3339)).
		TimeMax(end.Format(time.RFC3339)).
		OrderBy("startTime").
		SingleEvents(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve events: %w", err)
	}

	return events.Items, nil
}
