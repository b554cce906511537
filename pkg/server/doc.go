// Package server provides the HTTP server for the archiving API.
//
// This package implements the backend that the archiving front-end talks
// to. It uses gorilla/mux for routing, wraps the router in recovery, CORS
// and access-log middleware from gorilla/handlers, and authenticates
// requests with a signed session cookie.
//
// # Server Setup
//
//	srv := server.NewServer(users, employees, hr, lookups, health,
//	    dmsClient, sessions, cfg, logger)
//	endpoints.RegisterAll(srv)
//	if err := srv.Start(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Components
//
// The Server struct holds:
//
//   - the store interfaces backed by the Oracle schema
//   - DMS: the document management client used for uploads and downloads
//   - Sessions: issues and validates the session cookie
//   - Router: HTTP request router
//
// # Endpoints
//
// API endpoints are registered via the endpoints subpackage:
//
//	endpoints.RegisterAll(srv)
//
// This registers the full API surface, including:
//
//   - /api/auth/pta-login - DMS-backed login
//   - /api/employees - archive list, create, details, update
//   - /api/employees/bulk-upload - spreadsheet import
//   - /api/employees/export - CSV export
//   - /api/hr_employees - unarchived employee picker
//   - /api/document/{docnumber} - document download from the DMS
package server
