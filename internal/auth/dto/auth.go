package dto

import (
	"time"

	authdomain "friend-scheduler-backend/internal/auth/domain"
)

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type RegisterDeviceRequest struct {
	Token      string `json:"token" binding:"required"`
	DeviceInfo string `json:"device_info"`
}

type TokenResponse struct {
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
	User         *authdomain.User `json:"user"`
}

type ProvidersResponse struct {
	Providers []string `json:"providers"`
}

// UserResponse is the public projection of a user, shared by the friends and
// meetings payloads.
type UserResponse struct {
	ID                uint      `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	OAuthProvider     string    `json:"oauth_provider"`
	ProfilePictureURL string    `json:"profile_picture_url,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

func NewUserResponse(user *authdomain.User) UserResponse {
	return UserResponse{
		ID:                user.ID,
		Name:              user.Name,
		Email:             user.Email,
		OAuthProvider:     user.OAuthProvider,
		ProfilePictureURL: user.ProfilePictureURL,
		CreatedAt:         user.CreatedAt,
	}
}
