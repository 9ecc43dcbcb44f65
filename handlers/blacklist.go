package handlers

import (
	"net/http"
	"time"

	"trimly/middleware/ratelimit"
	"trimly/models"
	"trimly/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BlacklistHandler is the operator surface for the IP blacklist. These
// endpoints are administrative and off the hot path.
type BlacklistHandler struct {
	Store ratelimit.Store
}

// NewBlacklistHandler constructs a BlacklistHandler.
func NewBlacklistHandler(store ratelimit.Store) *BlacklistHandler {
	return &BlacklistHandler{Store: store}
}

// List returns the currently active blacklist entries.
func (h *BlacklistHandler) List(c *gin.Context) {
	entries, err := h.Store.ListBlacklist(c.Request.Context(), time.Now())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "failed to list blacklist")
		return
	}
	if entries == nil {
		entries = []models.BlacklistEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// Add manually blacklists an IP for the given number of minutes.
func (h *BlacklistHandler) Add(c *gin.Context) {
	var input struct {
		IP              string `json:"ip" binding:"required"`
		DurationMinutes int    `json:"durationMinutes" binding:"required"`
		Reason          string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	if input.Reason == "" {
		input.Reason = "manually blacklisted by operator"
	}

	now := time.Now()
	entry := models.BlacklistEntry{
		IP:            input.IP,
		BlacklistedAt: now,
		ExpiresAt:     now.Add(time.Duration(input.DurationMinutes) * time.Minute),
		Reason:        input.Reason,
	}
	if err := h.Store.Blacklist(c.Request.Context(), entry); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "failed to store blacklist entry")
		return
	}
	utils.SecurityEvent("ip_blacklisted_manually", zap.String("ip", input.IP), zap.Time("expiresAt", entry.ExpiresAt))
	c.JSON(http.StatusCreated, entry)
}

// Remove lifts a blacklist entry before its expiry.
func (h *BlacklistHandler) Remove(c *gin.Context) {
	ip := c.Param("ip")
	if err := h.Store.RemoveBlacklist(c.Request.Context(), ip); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "failed to remove blacklist entry")
		return
	}
	utils.SecurityEvent("ip_blacklist_removed", zap.String("ip", ip))
	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}
