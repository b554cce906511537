package oracle

import (
	"context"
	"database/sql"

	"github.com/rta-apps/pta-archiving-backend/pkg/server/store"
)

// Ensure HealthStore implements store.HealthStore
var _ store.HealthStore = (*HealthStore)(nil)

// HealthStore implements store.HealthStore against the shared Oracle schema
type HealthStore struct {
	db *sql.DB
}

// NewHealthStore creates a new HealthStore
func NewHealthStore(db *sql.DB) *HealthStore {
	return &HealthStore{db: db}
}

// Ping verifies database connectivity with a round trip, not just a
// pooled-connection check.
func (s *HealthStore) Ping(ctx context.Context) error {
	var one int
	return s.db.QueryRowContext(ctx, `SELECT 1 FROM DUAL`).Scan(&one)
}
