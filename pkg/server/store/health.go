package store

import "context"

// HealthStore provides health check operations
type HealthStore interface {
	// Ping verifies database connectivity
	Ping(ctx context.Context) error
}
