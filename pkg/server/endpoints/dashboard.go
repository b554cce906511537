package endpoints

import (
	"net/http"

	"github.com/rta-apps/pta-archiving-backend/pkg/server"
	"github.com/rta-apps/pta-archiving-backend/pkg/server/store"
)

// RegisterDashboardEndpoint registers the dashboard counters endpoint.
func RegisterDashboardEndpoint(s *server.Server) {
	s.Router.HandleFunc("/api/dashboard_counts",
		handleDashboardCounts(s.EmployeesStore)).Methods("GET")
}

func handleDashboardCounts(employees store.EmployeesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counts, err := employees.DashboardCounts(r.Context())
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondWithJSON(w, http.StatusOK, counts)
	}
}
