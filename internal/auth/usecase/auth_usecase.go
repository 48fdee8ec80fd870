package usecase

import (
	"context"
	"errors"
	"net/url"
	"time"

	authdomain "friend-scheduler-backend/internal/auth/domain"
	authdto "friend-scheduler-backend/internal/auth/dto"
	"friend-scheduler-backend/internal/auth/provider"
	"friend-scheduler-backend/internal/auth/repository"
	"friend-scheduler-backend/pkg/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrUnknownProvider = errors.New("unknown provider")
	ErrInvalidToken    = errors.New("invalid token")
)

// AuthUsecase covers the OAuth login flow and the session token lifecycle
type AuthUsecase interface {
	Providers() []string
	AuthCodeURL(providerID, state string) (string, error)
	CompleteLogin(ctx context.Context, providerID, code string, form url.Values) (*authdto.TokenResponse, error)
	ValidateToken(tokenString string) (*authdomain.User, error)
	RefreshToken(refreshToken string) (*authdto.TokenResponse, error)
	Logout(refreshToken string) error
	RegisterDevice(userID uint, token, deviceInfo string) error
	UnregisterDevice(token string) error
}

// authUsecase implements AuthUsecase interface
type authUsecase struct {
	userRepo   repository.UserRepository
	deviceRepo repository.DeviceTokenRepository
	registry   *provider.Registry
	config     *config.Config
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(userRepo repository.UserRepository, deviceRepo repository.DeviceTokenRepository, registry *provider.Registry, cfg *config.Config) AuthUsecase {
	return &authUsecase{
		userRepo:   userRepo,
		deviceRepo: deviceRepo,
		registry:   registry,
		config:     cfg,
	}
}

func (u *authUsecase) Providers() []string {
	return u.registry.IDs()
}

func (u *authUsecase) AuthCodeURL(providerID, state string) (string, error) {
	p, ok := u.registry.Lookup(providerID)
	if !ok {
		return "", ErrUnknownProvider
	}
	return p.AuthCodeURL(state), nil
}

// CompleteLogin finishes a provider callback: exchange the code, normalize
// the claims, upsert the user row and issue session tokens. The upsert is a
// side effect of every login; the newest login always wins the stored
// provider linkage for the email.
func (u *authUsecase) CompleteLogin(ctx context.Context, providerID, code string, form url.Values) (*authdto.TokenResponse, error) {
	p, ok := u.registry.Lookup(providerID)
	if !ok {
		return nil, ErrUnknownProvider
	}

	claims, token, err := p.Exchange(ctx, code, form)
	if err != nil {
		return nil, err
	}

	identity := NormalizeClaims(providerID, claims)

	user, err := u.userRepo.UpsertIdentity(&authdomain.OAuthLogin{
		Email:             identity.Email,
		Name:              identity.Name,
		ProfilePictureURL: identity.PictureURL,
		Provider:          providerID,
		OAuthID:           claims.Subject,
		AccessToken:       token.AccessToken,
		RefreshToken:      token.RefreshToken,
	})
	if err != nil {
		return nil, err
	}

	return u.generateTokens(user)
}

func (u *authUsecase) RefreshToken(refreshToken string) (*authdto.TokenResponse, error) {
	// Verify refresh token
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		return []byte(u.config.JWTSecret), nil
	})

	if err != nil || !token.Valid {
		return nil, errors.New("invalid refresh token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	// Check if token exists in repository
	storedToken, err := u.userRepo.FindRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	if storedToken == nil || storedToken.ExpiresAt.Before(time.Now()) {
		return nil, errors.New("refresh token expired")
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	user, err := u.userRepo.FindByID(uint(userID))
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, errors.New("user not found")
	}

	return u.generateTokens(user)
}

func (u *authUsecase) Logout(refreshToken string) error {
	return u.userRepo.DeleteRefreshToken(refreshToken)
}

func (u *authUsecase) RegisterDevice(userID uint, token, deviceInfo string) error {
	return u.deviceRepo.SaveToken(userID, token, deviceInfo)
}

func (u *authUsecase) UnregisterDevice(token string) error {
	return u.deviceRepo.DeleteToken(token)
}

func (u *authUsecase) generateTokens(user *authdomain.User) (*authdto.TokenResponse, error) {
	// Generate access token
	accessToken, err := u.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	// Generate refresh token
	refreshToken, err := u.generateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	// Store refresh token
	refreshTokenEntity := &authdomain.RefreshToken{
		Token:     refreshToken,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(u.config.JWTRefreshExpiry),
	}
	if err := u.userRepo.SaveRefreshToken(refreshTokenEntity); err != nil {
		return nil, err
	}

	return &authdto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

func (u *authUsecase) generateAccessToken(user *authdomain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(u.config.JWTAccessExpiry).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(u.config.JWTSecret))
}

func (u *authUsecase) generateRefreshToken(user *authdomain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"token_id": uuid.New().String(),
		"exp":      time.Now().Add(u.config.JWTRefreshExpiry).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(u.config.JWTSecret))
}

func (u *authUsecase) ValidateToken(tokenString string) (*authdomain.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(u.config.JWTSecret), nil
	})

	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, ErrInvalidToken
	}

	user, err := u.userRepo.FindByID(uint(userID))
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, errors.New("user not found")
	}

	return user, nil
}
