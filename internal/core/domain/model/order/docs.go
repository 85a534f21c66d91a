// Package order holds the Order aggregate: a confirmed purchase with immutable line
// snapshots that moves through AWAITING_DISPATCH, SHIPPED and DELIVERED, or is CANCELED
// before it ships.
//
// Key business rules:
//   - an order is created only after every line was reserved in the inventory ledger
//   - shipments heavier than MaxShipmentWeightOz are rejected
//   - the vehicle and route polyline are present exactly while the order is shipped or delivered
//   - only orders awaiting dispatch can be canceled
package order
