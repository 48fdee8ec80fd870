package usecase

import (
	"testing"

	"friend-scheduler-backend/internal/auth/provider"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeClaims(t *testing.T) {
	tests := []struct {
		name       string
		providerID string
		claims     provider.Claims
		want       Identity
	}{
		{
			name:       "google passes name and picture through",
			providerID: "google",
			claims: provider.Claims{
				Subject: "109876",
				Email:   "jane@example.com",
				Name:    "Jane Doe",
				Picture: "https://lh3.example.com/jane.jpg",
			},
			want: Identity{
				Email:      "jane@example.com",
				Name:       "Jane Doe",
				PictureURL: "https://lh3.example.com/jane.jpg",
			},
		},
		{
			name:       "apple structured name on first consent",
			providerID: "apple",
			claims: provider.Claims{
				Subject:    "000123.abc",
				Email:      "jane@example.com",
				GivenName:  "Jane",
				FamilyName: "Doe",
			},
			want: Identity{
				Email: "jane@example.com",
				Name:  "Jane Doe",
			},
		},
		{
			name:       "apple first name only",
			providerID: "apple",
			claims: provider.Claims{
				Subject:   "000123.abc",
				Email:     "jane@example.com",
				GivenName: "Jane",
			},
			want: Identity{
				Email: "jane@example.com",
				Name:  "Jane",
			},
		},
		{
			name:       "apple missing name falls back to email local-part",
			providerID: "apple",
			claims: provider.Claims{
				Subject: "000123.abc",
				Email:   "new.user@example.com",
			},
			want: Identity{
				Email: "new.user@example.com",
				Name:  "new.user",
			},
		},
		{
			name:       "apple whitespace name falls back to email local-part",
			providerID: "apple",
			claims: provider.Claims{
				Subject:    "000123.abc",
				Email:      "new.user@example.com",
				GivenName:  "  ",
				FamilyName: " ",
			},
			want: Identity{
				Email: "new.user@example.com",
				Name:  "new.user",
			},
		},
		{
			name:       "apple missing name and email uses placeholder",
			providerID: "apple",
			claims: provider.Claims{
				Subject: "000123.abc",
			},
			want: Identity{
				Name: "Apple User",
			},
		},
		{
			name:       "apple never carries a picture",
			providerID: "apple",
			claims: provider.Claims{
				Subject:   "000123.abc",
				Email:     "jane@example.com",
				GivenName: "Jane",
				Picture:   "https://should.be/ignored.jpg",
			},
			want: Identity{
				Email: "jane@example.com",
				Name:  "Jane",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeClaims(tt.providerID, &tt.claims)
			assert.Equal(t, tt.want, got)
		})
	}
}
