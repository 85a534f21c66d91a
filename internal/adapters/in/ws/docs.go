// Package ws serves the two long-lived websocket channels of the coordinator.
//
// /ws/deliver is opened by delivery vehicles. The first frame is {"id", "secret"}; a failed
// handshake closes the connection without touching any state. Every later frame may carry
// telemetry {"status", "lat", "lon"} and triggers a dispatch pass while the vehicle is READY.
//
// /ws/monitor is opened by customers. The first frame is {"token"}; afterwards the server pushes
// {"type": "orderUpdate"} whenever one of the customer's orders changes.
//
// Both registries are mutex-guarded maps and every session removes itself on disconnect.
package ws
