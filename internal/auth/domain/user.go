package domain

import "time"

// User is the identity record. Email is the sole de-duplication key across
// providers: at most one row per email, no matter how many provider
// identities map to it. The newest login always wins the linkage fields.
type User struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	Email             string    `json:"email" gorm:"uniqueIndex;not null"`
	Name              string    `json:"name"`
	OAuthProvider     string    `json:"oauth_provider"` // "google" or "apple"
	OAuthID           string    `json:"oauth_id"`
	AccessToken       string    `json:"-"`
	RefreshToken      string    `json:"-"`
	ProfilePictureURL string    `json:"profile_picture_url,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// OAuthLogin carries the outcome of one completed provider login: the
// normalized identity plus the linkage fields to persist.
type OAuthLogin struct {
	Email             string
	Name              string
	ProfilePictureURL string
	Provider          string
	OAuthID           string
	AccessToken       string
	RefreshToken      string
}

type RefreshToken struct {
	Token     string    `json:"token"`
	UserID    uint      `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}
