// Package audit provides audit logging for archive operations.
//
// This package implements structured audit logging for security-relevant
// operations such as login attempts, archive changes, and document access.
//
// # Event Types
//
// The package defines event types for various operations:
//
//   - Login and logout events (success/failure)
//   - Archive create and update events
//   - Document fetch events
//   - Bulk import and export events
//
// # Usage
//
//	audit.Log(audit.LoginEvent{Username: username, ClientIP: ip, Success: true})
//
// Audit events are logged in RFC5424 syslog format suitable for security
// monitoring and compliance requirements.
package audit
