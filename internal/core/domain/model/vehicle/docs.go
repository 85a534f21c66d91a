// Package vehicle provides the delivery Vehicle aggregate.
//
// A vehicle connects over a session channel, proves its identity with a secret
// (stored as a bcrypt hash), reports telemetry, and is handed routes while Ready.
// After a route is assigned it switches to Delivering until it reports Ready again.
package vehicle
