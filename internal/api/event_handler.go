package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"superservice-backend/internal/core"
	"superservice-backend/internal/models"
)

// EventHandler receives push deliveries of platform triggers: user creation
// and scheduler ticks.
type EventHandler struct {
	profileService   core.ProfileService
	heartbeatService core.HeartbeatService
	logger           *zap.Logger
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(ps core.ProfileService, hs core.HeartbeatService, logger *zap.Logger) *EventHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventHandler{profileService: ps, heartbeatService: hs, logger: logger}
}

// UserCreated handles POST /events/users.created. A failed store write
// answers 500 so the delivering platform decides whether to redeliver.
func (h *EventHandler) UserCreated(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unable to read request body"})
		return
	}

	event, err := models.DecodeAuthEvent(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid user event", Details: err.Error()})
		return
	}

	if _, err := h.profileService.HandleUserCreated(c.Request.Context(), event); err != nil {
		if errors.Is(err, core.ErrInvalidEvent) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid user event", Details: err.Error()})
			return
		}
		h.logger.Error("Failed to write user profile", zap.String("uid", event.UID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to write user profile"})
		return
	}
	c.Status(http.StatusNoContent)
}

// Heartbeat handles POST /tasks/heartbeat, the HTTP scheduler target.
func (h *EventHandler) Heartbeat(c *gin.Context) {
	if err := h.heartbeatService.Beat(c.Request.Context(), "http"); err != nil {
		h.logger.Error("Heartbeat failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Heartbeat failed"})
		return
	}
	c.Status(http.StatusNoContent)
}
