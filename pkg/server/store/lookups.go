package store

import (
	"context"

	"github.com/rta-apps/pta-archiving-backend/pkg/model"
)

// LookupsStore abstracts the reference tables behind the form dropdowns
type LookupsStore interface {
	// Statuses lists the enabled employee statuses.
	Statuses(ctx context.Context) ([]model.Status, error)

	// DocumentTypes lists the enabled document types, split into the full
	// list and the subset that carries an expiry date.
	DocumentTypes(ctx context.Context) (model.DocumentTypes, error)

	// Legislations lists the enabled legislations ordered by name.
	Legislations(ctx context.Context) ([]model.Legislation, error)
}
