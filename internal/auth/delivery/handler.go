package delivery

import (
	"errors"
	"log"
	"net/http"
	"net/url"

	authdomain "friend-scheduler-backend/internal/auth/domain"
	authdto "friend-scheduler-backend/internal/auth/dto"
	"friend-scheduler-backend/internal/auth/repository"
	"friend-scheduler-backend/internal/auth/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const stateCookie = "oauth_state"

// AuthHandler handles login, OAuth callbacks and session routes
type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	frontendURL string
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authUsecase usecase.AuthUsecase, frontendURL string) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		frontendURL: frontendURL,
	}
}

// Providers lists the identity providers available for login
// GET /api/auth/providers
func (h *AuthHandler) Providers(c *gin.Context) {
	c.JSON(http.StatusOK, authdto.ProvidersResponse{Providers: h.authUsecase.Providers()})
}

// Login redirects the browser to the provider's authorization endpoint
// GET /api/auth/:provider/login
func (h *AuthHandler) Login(c *gin.Context) {
	providerID := c.Param("provider")

	state := uuid.New().String()
	authURL, err := h.authUsecase.AuthCodeURL(providerID, state)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown provider"})
		return
	}

	// Apple's callback is a cross-site POST, so the state cookie must be
	// SameSite=None to survive the round trip.
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(stateCookie, state, 600, "/", "", true, true)
	c.Redirect(http.StatusFound, authURL)
}

// Callback completes the authorization-code flow. Google calls back with a
// GET, Apple with a form POST; both carry code and state.
// GET|POST /api/auth/:provider/callback
func (h *AuthHandler) Callback(c *gin.Context) {
	providerID := c.Param("provider")

	form := c.Request.URL.Query()
	if c.Request.Method == http.MethodPost {
		if err := c.Request.ParseForm(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid callback form"})
			return
		}
		form = c.Request.PostForm
	}

	state := form.Get("state")
	cookieState, err := c.Cookie(stateCookie)
	if err != nil || state == "" || state != cookieState {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "state mismatch"})
		return
	}
	// Clear with the same SameSite mode the cookie was set with, or some
	// browsers keep the original until expiry.
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(stateCookie, "", -1, "/", "", true, true)

	code := form.Get("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing authorization code"})
		return
	}

	tokens, err := h.authUsecase.CompleteLogin(c.Request.Context(), providerID, code, form)
	if err != nil {
		if errors.Is(err, repository.ErrIdentityConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": "login conflict, please retry"})
			return
		}
		log.Printf("[Auth] %s login failed: %v", providerID, err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "login failed"})
		return
	}

	// Hand the session to the frontend via redirect fragment.
	redirect := h.frontendURL + "/#" + url.Values{
		"access_token":  {tokens.AccessToken},
		"refresh_token": {tokens.RefreshToken},
	}.Encode()
	c.Redirect(http.StatusFound, redirect)
}

// Me returns the authenticated user
// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := c.MustGet("user").(*authdomain.User)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// RefreshToken exchanges a valid refresh token for a new token pair
// POST /api/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req authdto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tokens, err := h.authUsecase.RefreshToken(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, tokens)
}

// Logout invalidates the supplied refresh token
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	var req authdto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authUsecase.Logout(req.RefreshToken); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// RegisterDevice stores an FCM device token for the authenticated user
// POST /api/devices/register
func (h *AuthHandler) RegisterDevice(c *gin.Context) {
	userID := c.GetUint("userID")

	var req authdto.RegisterDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authUsecase.RegisterDevice(userID, req.Token, req.DeviceInfo); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "device registered"})
}

// UnregisterDevice removes an FCM device token
// DELETE /api/devices/:token
func (h *AuthHandler) UnregisterDevice(c *gin.Context) {
	token := c.Param("token")

	if err := h.authUsecase.UnregisterDevice(token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "device unregistered"})
}
