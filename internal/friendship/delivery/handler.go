package delivery

import (
	"errors"
	"net/http"
	"strconv"

	"friend-scheduler-backend/internal/friendship/dto"
	"friend-scheduler-backend/internal/friendship/usecase"

	"github.com/gin-gonic/gin"
)

// FriendshipHandler handles friend-graph HTTP requests
type FriendshipHandler struct {
	friendshipUsecase usecase.FriendshipUsecase
}

// NewFriendshipHandler creates a new FriendshipHandler
func NewFriendshipHandler(friendshipUsecase usecase.FriendshipUsecase) *FriendshipHandler {
	return &FriendshipHandler{
		friendshipUsecase: friendshipUsecase,
	}
}

// GetFriends returns the authenticated user's accepted friends
// GET /api/friends
func (h *FriendshipHandler) GetFriends(c *gin.Context) {
	userID := c.GetUint("userID")

	friends, err := h.friendshipUsecase.GetFriends(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, friends)
}

// GetCloseFriends returns only friends marked close
// GET /api/friends/close
func (h *FriendshipHandler) GetCloseFriends(c *gin.Context) {
	userID := c.GetUint("userID")

	friends, err := h.friendshipUsecase.GetCloseFriends(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, friends)
}

// GetPendingRequests returns friend requests addressed to the user
// GET /api/friends/requests
func (h *FriendshipHandler) GetPendingRequests(c *gin.Context) {
	userID := c.GetUint("userID")

	requests, err := h.friendshipUsecase.GetPendingRequests(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, requests)
}

// GetStats returns dashboard counters for the user's friend graph
// GET /api/friends/stats
func (h *FriendshipHandler) GetStats(c *gin.Context) {
	userID := c.GetUint("userID")

	stats, err := h.friendshipUsecase.GetStats(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// AddFriend sends a friend request by email
// POST /api/friends/add
func (h *FriendshipHandler) AddFriend(c *gin.Context) {
	userID := c.GetUint("userID")

	var req dto.AddFriendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.friendshipUsecase.AddFriend(c.Request.Context(), userID, req.Email); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Friend request sent successfully"})
}

// AcceptRequest accepts a pending inbound friend request
// PUT /api/friends/:friendId/accept
func (h *FriendshipHandler) AcceptRequest(c *gin.Context) {
	userID := c.GetUint("userID")
	friendID, err := parseID(c.Param("friendId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid friend id"})
		return
	}

	if err := h.friendshipUsecase.AcceptRequest(c.Request.Context(), userID, friendID); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Friend request accepted"})
}

// RejectRequest rejects a pending inbound friend request
// PUT /api/friends/:friendId/reject
func (h *FriendshipHandler) RejectRequest(c *gin.Context) {
	userID := c.GetUint("userID")
	friendID, err := parseID(c.Param("friendId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid friend id"})
		return
	}

	if err := h.friendshipUsecase.RejectRequest(userID, friendID); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Friend request rejected"})
}

// ToggleCloseFriend flips the close-friend flag on an existing friendship
// PUT /api/friends/:friendId/toggle-close
func (h *FriendshipHandler) ToggleCloseFriend(c *gin.Context) {
	userID := c.GetUint("userID")
	friendID, err := parseID(c.Param("friendId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid friend id"})
		return
	}

	if err := h.friendshipUsecase.ToggleCloseFriend(userID, friendID); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Close friend status updated"})
}

func (h *FriendshipHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrFriendNotFound),
		errors.Is(err, usecase.ErrUserNotFound),
		errors.Is(err, usecase.ErrRequestNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrSelfFriendship),
		errors.Is(err, usecase.ErrAlreadyFriends):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	return uint(id), err
}
