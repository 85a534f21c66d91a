// Package kernel provides the shared value objects of the fulfillment domain.
//
// The package includes:
//   - UUID: identifier for orders, items, vehicles and users
//   - GeoLocation: a validated latitude/longitude pair
//   - Destination: a delivery address with its geographic position
//
// Zero values of these types are invalid; construct them through the New* functions.
// All of them are immutable and safe for concurrent use.
package kernel
