package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	notificationapp "github.com/esquire/backend/internal/application/notification"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SSEMessage represents a message to be sent to SSE clients
type SSEMessage struct {
	Event string `json:"event"`
	Data  string `json:"data"`
	ID    string `json:"id,omitempty"`
}

// NotificationSSEHandler streams notifications to connected clients over
// Server-Sent Events.
type NotificationSSEHandler struct {
	BaseHandler
	hub       *notificationapp.Hub
	logger    *zap.Logger
	heartbeat time.Duration
}

// NotificationSSEOption is a functional option for configuring the handler
type NotificationSSEOption func(*NotificationSSEHandler)

// WithSSELogger sets the logger for the handler
func WithSSELogger(logger *zap.Logger) NotificationSSEOption {
	return func(h *NotificationSSEHandler) {
		h.logger = logger
	}
}

// WithSSEHeartbeat sets the heartbeat interval
func WithSSEHeartbeat(interval time.Duration) NotificationSSEOption {
	return func(h *NotificationSSEHandler) {
		if interval > 0 {
			h.heartbeat = interval
		}
	}
}

// NewNotificationSSEHandler creates a new SSE handler backed by the hub
func NewNotificationSSEHandler(hub *notificationapp.Hub, opts ...NotificationSSEOption) *NotificationSSEHandler {
	h := &NotificationSSEHandler{
		hub:       hub,
		logger:    zap.NewNop(),
		heartbeat: 30 * time.Second,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Stream holds the connection open and pushes the caller's notifications as
// they arrive. Heartbeats keep intermediaries from closing the idle stream.
func (h *NotificationSSEHandler) Stream(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	// Set SSE headers
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	sub := h.hub.Subscribe(userID)
	defer h.hub.Unsubscribe(sub)

	h.logger.Info("SSE client connected", zap.String("user_id", userID.String()))

	// Send initial connection event
	h.sendEvent(c.Writer, SSEMessage{
		Event: "connected",
		Data:  fmt.Sprintf(`{"timestamp":%d}`, time.Now().Unix()),
	})
	c.Writer.Flush()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	reqCtx := c.Request.Context()

	for {
		select {
		case <-reqCtx.Done():
			h.logger.Info("SSE client disconnected", zap.String("user_id", userID.String()))
			return
		case <-ticker.C:
			h.sendEvent(c.Writer, SSEMessage{
				Event: "heartbeat",
				Data:  fmt.Sprintf(`{"timestamp":%d}`, time.Now().Unix()),
			})
			c.Writer.Flush()
		case n, ok := <-sub.C:
			if !ok {
				// Hub shut down
				return
			}
			data, err := json.Marshal(notificationapp.NewView(n))
			if err != nil {
				h.logger.Error("Failed to marshal notification event", zap.Error(err))
				continue
			}
			h.sendEvent(c.Writer, SSEMessage{
				Event: "notification",
				Data:  string(data),
				ID:    n.ID.String(),
			})
			c.Writer.Flush()
		}
	}
}

// sendEvent writes an SSE event to the response writer
func (h *NotificationSSEHandler) sendEvent(w io.Writer, msg SSEMessage) {
	if msg.Event != "" {
		fmt.Fprintf(w, "event: %s\n", msg.Event)
	}
	if msg.ID != "" {
		fmt.Fprintf(w, "id: %s\n", msg.ID)
	}
	fmt.Fprintf(w, "data: %s\n\n", msg.Data)
}
