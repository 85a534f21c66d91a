package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"fulfillment/internal/adapters/in/auth"

	"golang.org/x/net/websocket"
)

type TokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

type observerHello struct {
	Token string `json:"token"`
}

// ObserverHandler serves /ws/monitor.
type ObserverHandler struct {
	registry *ObserverRegistry
	verifier TokenVerifier

	handshakeTimeout time.Duration
	writeTimeout     time.Duration
	logger           *slog.Logger
}

func NewObserverHandler(registry *ObserverRegistry, verifier TokenVerifier, logger *slog.Logger) *ObserverHandler {
	return &ObserverHandler{
		registry:         registry,
		verifier:         verifier,
		handshakeTimeout: DefaultHandshakeTimeout,
		writeTimeout:     DefaultWriteTimeout,
		logger:           logger.With("component", "observer_session"),
	}
}

func (h *ObserverHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	websocket.Handler(h.serve).ServeHTTP(w, r)
}

func (h *ObserverHandler) serve(conn *websocket.Conn) {
	defer func() {
		_ = conn.Close()
	}()

	ctx := conn.Request().Context()
	decoder := json.NewDecoder(conn)

	var hello observerHello
	_ = conn.SetReadDeadline(time.Now().Add(h.handshakeTimeout))
	if err := decoder.Decode(&hello); err != nil {
		h.logger.DebugContext(ctx, "observer handshake not received", "error", err)
		return
	}
	_ = conn.SetReadDeadline(time.Time{})

	identity, err := h.verifier.Verify(hello.Token)
	if err != nil {
		h.logger.WarnContext(ctx, "observer handshake rejected",
			"remote", conn.Request().RemoteAddr, "error", err)
		return
	}

	channel := newPeer(conn, h.writeTimeout)
	h.registry.Register(identity.UserID, channel)
	defer h.registry.Unregister(identity.UserID, channel)

	if err = channel.Send(typedMessage{Type: messageAuthenticated}); err != nil {
		return
	}

	// Inbound frames carry nothing; reading only detects the disconnect.
	for {
		var ignored json.RawMessage
		if err = decoder.Decode(&ignored); err != nil {
			return
		}
	}
}
