// Package entity holds loaded entities, their tiles and the store that swaps
// whole generations of tiles atomically.
package entity
