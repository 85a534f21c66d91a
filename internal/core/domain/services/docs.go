// Package services holds domain services that span aggregates.
//
// The package includes:
//   - RouteAssigner: turns awaiting orders into planner stops and applies planned
//     routes back onto those orders for a Ready vehicle
package services
