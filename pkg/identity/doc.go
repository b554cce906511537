// Package identity provides authenticated identity management for requests.
//
// This package separates the concept of an authenticated identity from the
// raw session token parsing. An Identity combines session claims (username,
// security level, document service ticket) with request-specific context.
//
// # Basic Usage
//
//	// Build identity from session claims
//	id := &identity.Identity{
//		Username:      claims.Username,
//		SecurityLevel: claims.SecurityLevel,
//		DST:           claims.DST,
//	}
//
//	// Add request context
//	id.WithRemoteIP(clientIP)
//
//	// Store in request context
//	ctx = identity.Set(ctx, id)
//
//	// Retrieve from context
//	id, ok := identity.Get(ctx)
//
// # Security Levels
//
// Security levels come from the PEOPLE lookup tables in the archive
// database, not from the session itself. An identity whose level is
// "Editor" may create, update and delete archives; every other level is
// read-only.
package identity
