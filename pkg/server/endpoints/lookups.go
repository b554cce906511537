package endpoints

import (
	"net/http"

	"github.com/rta-apps/pta-archiving-backend/pkg/model"
	"github.com/rta-apps/pta-archiving-backend/pkg/server"
	"github.com/rta-apps/pta-archiving-backend/pkg/server/store"
)

// RegisterLookupsEndpoints registers the reference-table endpoints behind
// the archive form dropdowns.
func RegisterLookupsEndpoints(s *server.Server) {
	lookups := s.LookupsStore

	s.Router.HandleFunc("/api/statuses", handleStatuses(lookups)).Methods("GET")
	s.Router.HandleFunc("/api/document_types", handleDocumentTypes(lookups)).Methods("GET")
	s.Router.HandleFunc("/api/legislations", handleLegislations(lookups)).Methods("GET")
}

func handleStatuses(lookups store.LookupsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		statuses, err := lookups.Statuses(r.Context())
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if statuses == nil {
			statuses = []model.Status{}
		}
		respondWithJSON(w, http.StatusOK, map[string]interface{}{"employee_status": statuses})
	}
}

func handleDocumentTypes(lookups store.LookupsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		types, err := lookups.DocumentTypes(r.Context())
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondWithJSON(w, http.StatusOK, types)
	}
}

func handleLegislations(lookups store.LookupsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		legislations, err := lookups.Legislations(r.Context())
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if legislations == nil {
			legislations = []model.Legislation{}
		}
		respondWithJSON(w, http.StatusOK, legislations)
	}
}
