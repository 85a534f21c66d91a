package ws

import (
	"log/slog"
	"sync"

	"fulfillment/internal/core/domain/model/kernel"
)

// VehicleSession is the live connection of one authenticated vehicle.
type VehicleSession struct {
	vehicleID kernel.UUID
	channel   Channel
	wake      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

func newVehicleSession(vehicleID kernel.UUID, channel Channel) *VehicleSession {
	return &VehicleSession{
		vehicleID: vehicleID,
		channel:   channel,
		wake:      make(chan struct{}, 1),
		done:      make(chan struct{}),
	}
}

func (s *VehicleSession) VehicleID() kernel.UUID {
	return s.vehicleID
}

// Wake asks the session goroutine for a dispatch pass. Pending wakes coalesce.
func (s *VehicleSession) Wake() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Close ends the session and its connection. Safe to call more than once.
func (s *VehicleSession) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		_ = s.channel.Close()
	})
}

func (s *VehicleSession) Done() <-chan struct{} {
	return s.done
}

// VehicleRegistry holds at most one session per vehicle. A newer session for the same vehicle
// supersedes the older one, which is closed.
type VehicleRegistry struct {
	mu       sync.Mutex
	sessions map[kernel.UUID]*VehicleSession
	logger   *slog.Logger
}

func NewVehicleRegistry(logger *slog.Logger) *VehicleRegistry {
	return &VehicleRegistry{
		sessions: make(map[kernel.UUID]*VehicleSession),
		logger:   logger.With("component", "vehicle_registry"),
	}
}

// Register stores the session and returns the one it superseded, already closed, or nil.
func (r *VehicleRegistry) Register(session *VehicleSession) *VehicleSession {
	r.mu.Lock()
	previous := r.sessions[session.vehicleID]
	r.sessions[session.vehicleID] = session
	r.mu.Unlock()

	if previous != nil && previous != session {
		previous.Close()
		r.logger.Info("vehicle session superseded", "vehicle_id", session.vehicleID.String())
		return previous
	}
	return nil
}

// Unregister removes the session only if it is still the current one for its vehicle.
func (r *VehicleRegistry) Unregister(session *VehicleSession) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sessions[session.vehicleID] != session {
		return false
	}
	delete(r.sessions, session.vehicleID)
	return true
}

func (r *VehicleRegistry) Session(vehicleID kernel.UUID) (*VehicleSession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[vehicleID]
	return session, ok
}

func (r *VehicleRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// WakeAll requests a dispatch pass from every connected vehicle and returns how many were woken.
func (r *VehicleRegistry) WakeAll() int {
	r.mu.Lock()
	sessions := make([]*VehicleSession, 0, len(r.sessions))
	for _, session := range r.sessions {
		sessions = append(sessions, session)
	}
	r.mu.Unlock()

	for _, session := range sessions {
		session.Wake()
	}
	return len(sessions)
}
