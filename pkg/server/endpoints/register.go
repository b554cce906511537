package endpoints

import (
	"github.com/rta-apps/pta-archiving-backend/pkg/server"
)

// RegisterAll registers every API endpoint on the server.
func RegisterAll(srv *server.Server) {
	RegisterAuthEndpoints(srv)
	RegisterHealthEndpoint(srv)
	RegisterDashboardEndpoint(srv)
	RegisterEmployeesEndpoints(srv)
	RegisterBulkUploadEndpoint(srv)
	RegisterExportEndpoint(srv)
	RegisterHREndpoints(srv)
	RegisterLookupsEndpoints(srv)
	RegisterDocumentsEndpoint(srv)
}
