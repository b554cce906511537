package store

import (
	"context"
	"errors"

	"github.com/rta-apps/pta-archiving-backend/pkg/model"
)

// ErrUserNotFound is returned when no PEOPLE record matches the username
var ErrUserNotFound = errors.New("user not found")

// ErrNoSecurityLevel is returned when a user exists but has no security
// level assigned
var ErrNoSecurityLevel = errors.New("no security level assigned")

// ErrLevelNotFound is returned when a named security level doesn't exist
var ErrLevelNotFound = errors.New("security level not found")

// UsersStore abstracts application user authorization operations.
// Authentication itself happens against the DMS; this store only resolves
// what an authenticated user is allowed to do.
type UsersStore interface {
	// SecurityLevel resolves a username to its security level name.
	// Returns ErrUserNotFound if there is no matching PEOPLE record.
	// Returns ErrNoSecurityLevel if the user has no level assigned.
	SecurityLevel(ctx context.Context, username string) (string, error)

	// GrantSecurityLevel assigns a named security level to a user,
	// replacing any existing assignment.
	// Returns ErrUserNotFound or ErrLevelNotFound.
	GrantSecurityLevel(ctx context.Context, username, levelName string) error

	// Levels lists all security levels.
	Levels(ctx context.Context) ([]model.SecurityLevel, error)
}
