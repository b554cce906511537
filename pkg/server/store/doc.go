// Package store provides storage abstractions for the archiving server.
//
// This package defines interfaces for database operations, allowing the
// server endpoints to be decoupled from the specific database implementation.
// This enables easier testing with mocks and potential support for different
// storage backends.
//
// # Available Stores
//
//   - UsersStore: security level lookup and assignment
//   - EmployeesStore: archive records, documents and bulk import
//   - HREmployeesStore: read-only HR master data
//   - LookupsStore: statuses, document types and legislations
//   - HealthStore: connectivity checks
//
// # Usage
//
//	users := oracle.NewUsersStore(db)
//	level, err := users.SecurityLevel(ctx, "jsmith")
//	if err != nil {
//	    if errors.Is(err, store.ErrUserNotFound) {
//	        // Handle not found
//	    }
//	}
package store
