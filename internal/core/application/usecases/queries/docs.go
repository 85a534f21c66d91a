// Package queries holds the read side of the fulfillment core. Handlers read straight from
// the database into response structs and never load aggregates.
package queries
