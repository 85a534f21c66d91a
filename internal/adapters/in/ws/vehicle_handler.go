package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/vehicle"
	"fulfillment/internal/pkg/errs"

	"golang.org/x/net/websocket"
)

const (
	DefaultHandshakeTimeout = 10 * time.Second
	DefaultWriteTimeout     = 5 * time.Second

	// frameBacklog bounds the frames read while the session goroutine is busy. A vehicle
	// that overruns it is disconnected so the reader never stops watching the connection.
	frameBacklog = 16
)

type VehicleAuthenticator interface {
	Handle(ctx context.Context, vehicleID kernel.UUID, secret string) error
}

type TelemetryReporter interface {
	Handle(ctx context.Context, cmd commands.ReportTelemetryCommand) error
}

type OrderDispatcher interface {
	Handle(ctx context.Context, cmd commands.DispatchOrdersCommand) (commands.DispatchResult, error)
}

// vehicleFrame is both the handshake and the telemetry frame.
type vehicleFrame struct {
	ID     string   `json:"id,omitempty"`
	Secret string   `json:"secret,omitempty"`
	Status string   `json:"status,omitempty"`
	Lat    *float64 `json:"lat,omitempty"`
	Lon    *float64 `json:"lon,omitempty"`
}

func (f vehicleFrame) hasTelemetry() bool {
	return f.Status != "" || f.Lat != nil || f.Lon != nil
}

// VehicleHandler serves /ws/deliver. Each connection is one session goroutine which also
// runs the dispatch passes, so a slow planner only blocks that vehicle. A separate reader
// goroutine watches the connection and ends the session as soon as it drops, which also
// cancels a dispatch pass still in flight.
type VehicleHandler struct {
	registry      *VehicleRegistry
	authenticator VehicleAuthenticator
	telemetry     TelemetryReporter
	dispatcher    OrderDispatcher

	handshakeTimeout time.Duration
	writeTimeout     time.Duration
	logger           *slog.Logger
}

func NewVehicleHandler(
	registry *VehicleRegistry,
	authenticator VehicleAuthenticator,
	telemetry TelemetryReporter,
	dispatcher OrderDispatcher,
	logger *slog.Logger,
) *VehicleHandler {
	return &VehicleHandler{
		registry:         registry,
		authenticator:    authenticator,
		telemetry:        telemetry,
		dispatcher:       dispatcher,
		handshakeTimeout: DefaultHandshakeTimeout,
		writeTimeout:     DefaultWriteTimeout,
		logger:           logger.With("component", "vehicle_session"),
	}
}

func (h *VehicleHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	websocket.Handler(h.serve).ServeHTTP(w, r)
}

func (h *VehicleHandler) serve(conn *websocket.Conn) {
	defer func() {
		_ = conn.Close()
	}()

	ctx := conn.Request().Context()
	decoder := json.NewDecoder(conn)

	hello, vehicleID, err := h.handshake(ctx, conn, decoder)
	if err != nil {
		h.logger.WarnContext(ctx, "vehicle handshake rejected",
			"remote", conn.Request().RemoteAddr, "error", err)
		return
	}

	session := newVehicleSession(vehicleID, newPeer(conn, h.writeTimeout))
	h.registry.Register(session)
	defer func() {
		h.end(session)
		h.logger.InfoContext(ctx, "vehicle disconnected", "vehicle_id", vehicleID.String())
	}()

	// The hijacked request context outlives the connection; tie work to the session instead.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-session.Done():
			cancel()
		case <-ctx.Done():
		}
	}()

	h.logger.InfoContext(ctx, "vehicle connected", "vehicle_id", vehicleID.String())
	if err = session.channel.Send(typedMessage{Type: messageAuthenticated}); err != nil {
		return
	}

	frames := make(chan vehicleFrame, frameBacklog)
	go h.read(ctx, decoder, session, frames)

	h.handleFrame(ctx, session, hello)
	for {
		select {
		case <-ctx.Done():
			return
		case <-session.Done():
			return
		case frame, ok := <-frames:
			if !ok {
				return
			}
			h.handleFrame(ctx, session, frame)
		case <-session.wake:
			h.dispatch(ctx, session)
		}
	}
}

func (h *VehicleHandler) handshake(
	ctx context.Context,
	conn *websocket.Conn,
	decoder *json.Decoder,
) (vehicleFrame, kernel.UUID, error) {
	var hello vehicleFrame

	_ = conn.SetReadDeadline(time.Now().Add(h.handshakeTimeout))
	if err := decoder.Decode(&hello); err != nil {
		return vehicleFrame{}, kernel.UUID{}, fmt.Errorf("%w: read handshake: %w", errs.ErrAuthFailed, err)
	}
	_ = conn.SetReadDeadline(time.Time{})

	vehicleID, err := kernel.UUIDFromString(hello.ID)
	if err != nil {
		return vehicleFrame{}, kernel.UUID{}, fmt.Errorf("%w: %w", errs.ErrAuthFailed, err)
	}
	if err = h.authenticator.Handle(ctx, vehicleID, hello.Secret); err != nil {
		return vehicleFrame{}, kernel.UUID{}, err
	}

	hello.ID, hello.Secret = "", ""
	return hello, vehicleID, nil
}

// read forwards inbound frames to the session goroutine. When the connection fails it ends
// the session right away, without waiting for the session goroutine.
func (h *VehicleHandler) read(ctx context.Context, decoder *json.Decoder, session *VehicleSession, frames chan<- vehicleFrame) {
	defer close(frames)
	defer h.end(session)

	for {
		var frame vehicleFrame
		if err := decoder.Decode(&frame); err != nil {
			if !errors.Is(err, io.EOF) {
				h.logger.DebugContext(ctx, "vehicle read failed",
					"vehicle_id", session.vehicleID.String(), "error", err)
			}
			return
		}

		select {
		case <-session.Done():
			return
		case frames <- frame:
		default:
			h.logger.WarnContext(ctx, "vehicle frame backlog full, closing session",
				"vehicle_id", session.vehicleID.String())
			return
		}
	}
}

// end deregisters the session and closes its connection. Safe to call more than once.
func (h *VehicleHandler) end(session *VehicleSession) {
	h.registry.Unregister(session)
	session.Close()
}

func (h *VehicleHandler) handleFrame(ctx context.Context, session *VehicleSession, frame vehicleFrame) {
	if frame.hasTelemetry() {
		if err := h.report(ctx, session, frame); err != nil {
			h.logger.WarnContext(ctx, "telemetry rejected",
				"vehicle_id", session.vehicleID.String(), "error", err)
			_ = session.channel.Send(errorMessage{Type: messageError, Message: err.Error()})
		}
	}
	h.dispatch(ctx, session)
}

func (h *VehicleHandler) report(ctx context.Context, session *VehicleSession, frame vehicleFrame) error {
	if frame.Lat == nil || frame.Lon == nil {
		return errs.NewValueIsRequiredError("lat and lon")
	}

	status, err := vehicle.StatusFromString(frame.Status)
	if err != nil {
		return err
	}
	location, err := kernel.NewGeoLocation(*frame.Lat, *frame.Lon)
	if err != nil {
		return err
	}

	cmd, err := commands.NewReportTelemetryCommand(session.vehicleID, status, location)
	if err != nil {
		return err
	}
	return h.telemetry.Handle(ctx, cmd)
}

// dispatch runs one dispatch pass and tells the vehicle which orders it took.
// Failures leave the session idle; the next frame or wake retries. A pass cut short by the
// session ending is dropped without a log at error level.
func (h *VehicleHandler) dispatch(ctx context.Context, session *VehicleSession) {
	cmd, err := commands.NewDispatchOrdersCommand(session.vehicleID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to build dispatch command", "error", err)
		return
	}

	result, err := h.dispatcher.Handle(ctx, cmd)
	if err != nil && ctx.Err() != nil {
		h.logger.DebugContext(ctx, "dispatch abandoned, session ended",
			"vehicle_id", session.vehicleID.String(), "error", err)
		return
	}
	if errors.Is(err, errs.ErrRouteUnavailable) {
		h.logger.InfoContext(ctx, "dispatch deferred, routes unavailable",
			"vehicle_id", session.vehicleID.String())
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "dispatch failed",
			"vehicle_id", session.vehicleID.String(), "error", err)
		return
	}
	if len(result.ShippedOrderIDs) == 0 {
		return
	}

	ids := make([]string, 0, len(result.ShippedOrderIDs))
	for _, id := range result.ShippedOrderIDs {
		ids = append(ids, id.String())
	}
	if err = session.channel.Send(assignmentMessage{Type: messageAssignment, OrderIDs: ids}); err != nil {
		h.logger.WarnContext(ctx, "failed to send assignment",
			"vehicle_id", session.vehicleID.String(), "error", err)
	}
}
