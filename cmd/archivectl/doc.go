// Package main provides archivectl, the control tool for the HR archiving backend.
//
// The backend bridges the archiving front-end with the HR Oracle database and
// the OpenText document management system: employees are archived with their
// scanned documents, the documents live in the DMS, and the metadata lives in
// Oracle.
//
// # Architecture
//
// The backend is organized into several packages:
//
//   - pkg/server: HTTP server, CORS and session middleware
//   - pkg/server/endpoints: REST API endpoint handlers
//   - pkg/server/store: store interfaces and the Oracle implementation
//   - pkg/dms: SOAP client for the OpenText DMS
//   - pkg/importer: spreadsheet parsing and bulk archiving
//   - pkg/identity: the authenticated user attached to each request
//   - pkg/model: database row and payload types
//   - pkg/audit: audit logging
//   - pkg/config: configuration management
//   - pkg/db: Oracle connection utilities
//
// # Quick Start
//
// The server is run via the archivectl CLI:
//
//	# Check the Oracle and DMS connections
//	archivectl db ping
//	archivectl dms ping
//
//	# Grant a user access to the application
//	archivectl user grant jsmith Editor
//
//	# Start the server
//	archivectl server
//
// # Environment Variables
//
//   - DB_HOST, DB_PORT, DB_SERVICE_NAME, DB_USERNAME, DB_PASSWORD: Oracle connection
//   - WSDL_URL, DMS_USER, DMS_PASSWORD, DMS_LIBRARY, DMS_LOGIN_CONTEXT: DMS connection
//   - SECRET_KEY: session cookie signing key
//   - SESSION_LIFETIME_DAYS: session cookie lifetime (default: 60)
//   - CORS_ALLOWED_ORIGINS: comma-separated allowed origins (default: *)
//   - LOG_LEVEL: log level (trace, debug, info, warn, error)
//   - PORT, BIND_ADDRESS: server listen address (default: 0.0.0.0:5006)
//
// Values may also come from a config file; see "archivectl configuration show".
package main
