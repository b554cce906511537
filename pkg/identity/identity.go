package identity

import (
	"context"
	"net"
	"time"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

const (
	// Key is the context key for Identity.
	Key ContextKey = "identity"

	// SecurityLevelEditor grants write access to archives and documents.
	SecurityLevelEditor = "Editor"
)

// Identity represents the authenticated identity for a request.
// It combines session claims with request-specific context.
type Identity struct {
	// Session claims
	Username      string
	SecurityLevel string
	IssuedAt      time.Time
	ExpiresAt     time.Time

	// DST is the document management service ticket obtained at login.
	// Document uploads and downloads run under this ticket.
	DST string

	// Request context
	RemoteIP net.IP
}

// WithRemoteIP sets the remote IP address.
func (i *Identity) WithRemoteIP(ip net.IP) *Identity {
	i.RemoteIP = ip
	return i
}

// IsEditor returns true if the identity may modify archives.
func (i *Identity) IsEditor() bool {
	return i.SecurityLevel == SecurityLevelEditor
}

// Get retrieves Identity from context.
func Get(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(Key).(*Identity)
	return id, ok
}

// Set stores Identity in context.
func Set(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, Key, id)
}
