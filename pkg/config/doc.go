// Package config provides configuration management for the archiving backend.
//
// This package handles loading and validating server configuration from
// environment variables and an optional configuration file.
//
// # Configuration Sources
//
// Configuration is loaded from:
//
//   - Environment variables (primary)
//   - Configuration file archive.yml (optional)
//
// # Key Configuration Options
//
//   - DB_HOST, DB_PORT, DB_SERVICE_NAME: Oracle connection
//   - DB_USERNAME, DB_PASSWORD: Oracle credentials
//   - WSDL_URL: Document management service WSDL address
//   - DMS_USER, DMS_PASSWORD: Document management service account
//   - SECRET_KEY: Session token signing key
//   - PORT, HTTP_PLATFORM_PORT: Server listen port
//   - LOG_LEVEL: Logging verbosity
package config
