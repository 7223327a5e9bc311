package notification

import (
	"sync"

	"github.com/esquire/backend/internal/domain/notification"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultSubscriptionBuffer = 16

// Subscription is one live listener for a user's notifications. Messages are
// delivered on C; the channel is closed when the hub shuts down.
type Subscription struct {
	C      chan *notification.Notification
	userID uuid.UUID
}

// Hub routes notifications to per-user subscriptions. Publishing never
// blocks; a subscriber whose buffer is full misses the message and is
// expected to reconcile via the list endpoint.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[uuid.UUID]map[*Subscription]struct{}
	bufferSize  int
	closed      bool
	logger      *zap.Logger
}

// HubOption is a functional option for configuring the hub
type HubOption func(*Hub)

// WithHubLogger sets the logger for the hub
func WithHubLogger(logger *zap.Logger) HubOption {
	return func(h *Hub) {
		h.logger = logger
	}
}

// WithHubBufferSize sets the per-subscription channel buffer
func WithHubBufferSize(size int) HubOption {
	return func(h *Hub) {
		if size > 0 {
			h.bufferSize = size
		}
	}
}

// NewHub creates a new notification hub
func NewHub(opts ...HubOption) *Hub {
	h := &Hub{
		subscribers: make(map[uuid.UUID]map[*Subscription]struct{}),
		bufferSize:  defaultSubscriptionBuffer,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Subscribe registers a listener for the user's notifications
func (h *Hub) Subscribe(userID uuid.UUID) *Subscription {
	sub := &Subscription{
		C:      make(chan *notification.Notification, h.bufferSize),
		userID: userID,
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(sub.C)
		return sub
	}
	if h.subscribers[userID] == nil {
		h.subscribers[userID] = make(map[*Subscription]struct{})
	}
	h.subscribers[userID][sub] = struct{}{}
	return sub
}

// Unsubscribe removes the listener and closes its channel
func (h *Hub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.subscribers[sub.userID]
	if !ok {
		return
	}
	if _, ok := subs[sub]; !ok {
		return
	}
	delete(subs, sub)
	if len(subs) == 0 {
		delete(h.subscribers, sub.userID)
	}
	close(sub.C)
}

// Publish delivers the notification to all of the user's subscriptions
// without blocking.
func (h *Hub) Publish(userID uuid.UUID, n *notification.Notification) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return
	}

	for sub := range h.subscribers[userID] {
		select {
		case sub.C <- n:
		default:
			h.logger.Warn("Subscriber buffer full, dropping notification",
				zap.String("user_id", userID.String()),
				zap.String("notification_id", n.ID.String()))
		}
	}
}

// SubscriberCount returns the number of live subscriptions for the user
func (h *Hub) SubscriberCount(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[userID])
}

// Close shuts the hub down and closes every subscription channel
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for _, subs := range h.subscribers {
		for sub := range subs {
			close(sub.C)
		}
	}
	h.subscribers = make(map[uuid.UUID]map[*Subscription]struct{})
}

var _ notification.Broadcaster = (*Hub)(nil)
