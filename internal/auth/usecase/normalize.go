package usecase

import (
	"strings"

	"friend-scheduler-backend/internal/auth/provider"
)

// appleFallbackName is used when Apple supplies neither a name nor an email.
const appleFallbackName = "Apple User"

// Identity is the canonical result of claim normalization, independent of
// which provider produced the claims.
type Identity struct {
	Email      string
	Name       string
	PictureURL string
}

// NormalizeClaims reduces provider-specific claim shapes to a canonical
// identity. Missing optional profile fields are defaulted, never errors: a
// login must not fail because a provider omitted a display name.
//
// Apple only sends the structured first/last name on the user's very first
// consent, and never supplies a profile picture. When no usable name
// remains, fall back to the email local-part, then a fixed placeholder.
func NormalizeClaims(providerID string, claims *provider.Claims) Identity {
	if providerID == "apple" {
		name := strings.TrimSpace(strings.TrimSpace(claims.GivenName) + " " + strings.TrimSpace(claims.FamilyName))
		if name == "" {
			name = strings.TrimSpace(claims.Name)
		}
		if name == "" {
			if claims.Email != "" {
				name = strings.SplitN(claims.Email, "@", 2)[0]
			} else {
				name = appleFallbackName
			}
		}
		return Identity{
			Email: claims.Email,
			Name:  name,
		}
	}

	return Identity{
		Email:      claims.Email,
		Name:       claims.Name,
		PictureURL: claims.Picture,
	}
}
