package delivery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	authdomain "friend-scheduler-backend/internal/auth/domain"
	authdto "friend-scheduler-backend/internal/auth/dto"
	"friend-scheduler-backend/internal/auth/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubAuthUsecase struct {
	user   *authdomain.User
	tokens *authdto.TokenResponse
}

func (s *stubAuthUsecase) Providers() []string { return []string{"google"} }
func (s *stubAuthUsecase) AuthCodeURL(string, string) (string, error) {
	return "", usecase.ErrUnknownProvider
}
func (s *stubAuthUsecase) CompleteLogin(context.Context, string, string, url.Values) (*authdto.TokenResponse, error) {
	if s.tokens != nil {
		return s.tokens, nil
	}
	return nil, usecase.ErrUnknownProvider
}
func (s *stubAuthUsecase) ValidateToken(token string) (*authdomain.User, error) {
	if token == "valid-token" && s.user != nil {
		return s.user, nil
	}
	return nil, usecase.ErrInvalidToken
}
func (s *stubAuthUsecase) RefreshToken(string) (*authdto.TokenResponse, error) {
	return nil, usecase.ErrInvalidToken
}
func (s *stubAuthUsecase) Logout(string) error                       { return nil }
func (s *stubAuthUsecase) RegisterDevice(uint, string, string) error { return nil }
func (s *stubAuthUsecase) UnregisterDevice(string) error             { return nil }

func middlewareRouter(uc usecase.AuthUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(uc), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": c.GetUint("userID")})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	uc := &stubAuthUsecase{user: &authdomain.User{ID: 42, Email: "jane@example.com"}}
	r := middlewareRouter(uc)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic dXNlcjpwYXNz", http.StatusUnauthorized},
		{"malformed", "Bearer", http.StatusUnauthorized},
		{"invalid token", "Bearer garbage", http.StatusUnauthorized},
		{"valid token", "Bearer valid-token", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
