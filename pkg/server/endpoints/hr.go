package endpoints

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/rta-apps/pta-archiving-backend/pkg/model"
	"github.com/rta-apps/pta-archiving-backend/pkg/server"
	"github.com/rta-apps/pta-archiving-backend/pkg/server/store"
)

// RegisterHREndpoints registers the unarchived-employee picker endpoints.
func RegisterHREndpoints(s *server.Server) {
	hr := s.HRStore

	s.Router.HandleFunc("/api/hr_employees", handleHRList(hr)).Methods("GET")
	s.Router.HandleFunc("/api/hr_employees/{employee_id:[0-9]+}", handleHRDetails(hr)).Methods("GET")
}

func handleHRList(hr store.HREmployeesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		search := r.URL.Query().Get("search")
		page := queryInt(r, "page", 1)

		employees, total, err := hr.List(r.Context(), search, page)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if employees == nil {
			employees = []model.HREmployee{}
		}

		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"employees": employees,
			"hasMore":   page*store.HRPageSize < total,
		})
	}
}

func handleHRDetails(hr store.HREmployeesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		employeeID, err := strconv.ParseInt(mux.Vars(r)["employee_id"], 10, 64)
		if err != nil {
			respondWithError(w, http.StatusNotFound, "Not found")
			return
		}

		details, err := hr.Get(r.Context(), employeeID)
		if err != nil {
			if errors.Is(err, store.ErrHREmployeeNotFound) {
				respondWithError(w, http.StatusNotFound, "Not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondWithJSON(w, http.StatusOK, details)
	}
}
