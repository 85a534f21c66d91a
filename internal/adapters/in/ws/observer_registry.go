package ws

import (
	"context"
	"log/slog"
	"sync"

	"fulfillment/internal/core/domain/model/kernel"
)

// ObserverRegistry tracks the monitor channels of connected customers. A customer may hold
// several channels at once, one per open tab or device.
type ObserverRegistry struct {
	mu       sync.Mutex
	channels map[kernel.UUID]map[Channel]struct{}
	logger   *slog.Logger
}

func NewObserverRegistry(logger *slog.Logger) *ObserverRegistry {
	return &ObserverRegistry{
		channels: make(map[kernel.UUID]map[Channel]struct{}),
		logger:   logger.With("component", "observer_registry"),
	}
}

func (r *ObserverRegistry) Register(userID kernel.UUID, channel Channel) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.channels[userID]
	if !ok {
		set = make(map[Channel]struct{})
		r.channels[userID] = set
	}
	set[channel] = struct{}{}
}

// Unregister removes exactly the given channel; other channels of the same user stay registered.
func (r *ObserverRegistry) Unregister(userID kernel.UUID, channel Channel) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.channels[userID]
	if !ok {
		return false
	}
	if _, ok = set[channel]; !ok {
		return false
	}
	delete(set, channel)
	if len(set) == 0 {
		delete(r.channels, userID)
	}
	return true
}

// Connected reports how many channels the user holds.
func (r *ObserverRegistry) Connected(userID kernel.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.channels[userID])
}

// Push sends msg to every channel of the user and reports whether at least one accepted it.
// Send failures are logged and swallowed.
func (r *ObserverRegistry) Push(ctx context.Context, userID kernel.UUID, msg any) bool {
	r.mu.Lock()
	targets := make([]Channel, 0, len(r.channels[userID]))
	for channel := range r.channels[userID] {
		targets = append(targets, channel)
	}
	r.mu.Unlock()

	if len(targets) == 0 {
		r.logger.DebugContext(ctx, "observer not connected", "user_id", userID.String())
		return false
	}

	delivered := false
	for _, channel := range targets {
		if err := channel.Send(msg); err != nil {
			r.logger.WarnContext(ctx, "push to observer failed", "user_id", userID.String(), "error", err)
			continue
		}
		delivered = true
	}
	return delivered
}

// NotifyOrderUpdate implements ports.Notifier.
func (r *ObserverRegistry) NotifyOrderUpdate(ctx context.Context, customerID kernel.UUID) bool {
	return r.Push(ctx, customerID, typedMessage{Type: messageOrderUpdate})
}
