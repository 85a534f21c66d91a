package ws

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	mu      sync.Mutex
	sent    []any
	sendErr error
	closed  bool
}

func (c *fakeChannel) Send(msg any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sendErr != nil {
		return c.sendErr
	}
	c.sent = append(c.sent, msg)
	return nil
}

func (c *fakeChannel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeChannel) messages() []any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]any(nil), c.sent...)
}

func (c *fakeChannel) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestObserverRegistry_PushToAbsentUser(t *testing.T) {
	registry := NewObserverRegistry(discardLogger())

	assert.False(t, registry.NotifyOrderUpdate(context.Background(), kernel.NewUUID()))
}

func TestObserverRegistry_PushReachesEveryChannelOfUser(t *testing.T) {
	registry := NewObserverRegistry(discardLogger())
	userID := kernel.NewUUID()
	phone, laptop, stranger := &fakeChannel{}, &fakeChannel{}, &fakeChannel{}

	registry.Register(userID, phone)
	registry.Register(userID, laptop)
	registry.Register(kernel.NewUUID(), stranger)

	require.True(t, registry.NotifyOrderUpdate(context.Background(), userID))

	assert.Equal(t, []any{typedMessage{Type: messageOrderUpdate}}, phone.messages())
	assert.Equal(t, []any{typedMessage{Type: messageOrderUpdate}}, laptop.messages())
	assert.Empty(t, stranger.messages())
}

func TestObserverRegistry_UnregisterRemovesOnlyThatChannel(t *testing.T) {
	registry := NewObserverRegistry(discardLogger())
	userID := kernel.NewUUID()
	first, second := &fakeChannel{}, &fakeChannel{}

	registry.Register(userID, first)
	registry.Register(userID, second)

	assert.True(t, registry.Unregister(userID, first))
	assert.False(t, registry.Unregister(userID, first))
	assert.Equal(t, 1, registry.Connected(userID))

	require.True(t, registry.NotifyOrderUpdate(context.Background(), userID))
	assert.Empty(t, first.messages())
	assert.Len(t, second.messages(), 1)

	assert.True(t, registry.Unregister(userID, second))
	assert.Equal(t, 0, registry.Connected(userID))
	assert.False(t, registry.Unregister(kernel.NewUUID(), second))
}

func TestObserverRegistry_SendFailureIsSwallowed(t *testing.T) {
	registry := NewObserverRegistry(discardLogger())
	userID := kernel.NewUUID()
	broken := &fakeChannel{sendErr: errors.New("broken pipe")}
	healthy := &fakeChannel{}

	registry.Register(userID, broken)
	assert.False(t, registry.NotifyOrderUpdate(context.Background(), userID))

	registry.Register(userID, healthy)
	assert.True(t, registry.NotifyOrderUpdate(context.Background(), userID))
	assert.Len(t, healthy.messages(), 1)
}

func TestVehicleRegistry_NewSessionSupersedesOld(t *testing.T) {
	registry := NewVehicleRegistry(discardLogger())
	vehicleID := kernel.NewUUID()
	oldChannel, newChannel := &fakeChannel{}, &fakeChannel{}
	oldSession := newVehicleSession(vehicleID, oldChannel)
	newSession := newVehicleSession(vehicleID, newChannel)

	assert.Nil(t, registry.Register(oldSession))
	assert.Same(t, oldSession, registry.Register(newSession))

	assert.True(t, oldChannel.isClosed())
	assert.False(t, newChannel.isClosed())
	select {
	case <-oldSession.Done():
	default:
		t.Fatal("superseded session must be done")
	}

	current, ok := registry.Session(vehicleID)
	require.True(t, ok)
	assert.Same(t, newSession, current)

	assert.False(t, registry.Unregister(oldSession))
	assert.Equal(t, 1, registry.Len())
	assert.True(t, registry.Unregister(newSession))
	assert.Equal(t, 0, registry.Len())
}

func TestVehicleRegistry_WakeAllCoalesces(t *testing.T) {
	registry := NewVehicleRegistry(discardLogger())
	first := newVehicleSession(kernel.NewUUID(), &fakeChannel{})
	second := newVehicleSession(kernel.NewUUID(), &fakeChannel{})
	registry.Register(first)
	registry.Register(second)

	assert.Equal(t, 2, registry.WakeAll())
	assert.Equal(t, 2, registry.WakeAll())

	assert.Len(t, first.wake, 1)
	assert.Len(t, second.wake, 1)
}

func TestVehicleSession_CloseIsIdempotent(t *testing.T) {
	channel := &fakeChannel{}
	session := newVehicleSession(kernel.NewUUID(), channel)

	session.Close()
	session.Close()

	assert.True(t, channel.isClosed())
}
