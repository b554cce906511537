package endpoints

import (
	"encoding/csv"
	"io"
	"net/http"

	"github.com/rta-apps/pta-archiving-backend/pkg/audit"
	"github.com/rta-apps/pta-archiving-backend/pkg/identity"
	"github.com/rta-apps/pta-archiving-backend/pkg/model"
	"github.com/rta-apps/pta-archiving-backend/pkg/server"
	"github.com/rta-apps/pta-archiving-backend/pkg/server/store"
)

// exportHeaders mirror the dashboard table columns.
var exportHeaders = []string{
	"EmpNo", "FullName_EN", "FullName_AR", "Department", "Section",
	"Status_EN", "Status_AR", "Warrant_Status", "Card_Status", "Card_Expiry",
}

// RegisterExportEndpoint registers the archive CSV export.
func RegisterExportEndpoint(s *server.Server) {
	s.Router.HandleFunc("/api/employees/export",
		handleExport(s.EmployeesStore)).Methods("GET")
}

// handleExport downloads every archive row matching the dashboard
// filters as CSV.
func handleExport(employees store.EmployeesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := store.Filter{
			Search:     r.URL.Query().Get("search"),
			Status:     r.URL.Query().Get("status"),
			FilterType: r.URL.Query().Get("filter_type"),
			Page:       1,
			PageSize:   0, // no pagination, export everything that matches
		}

		rows, _, err := employees.List(r.Context(), filter)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if len(rows) == 0 {
			respondWithError(w, http.StatusNotFound, "No data to export for this filter")
			return
		}

		if id, ok := identity.Get(r.Context()); ok {
			audit.Log(audit.ExportEvent{
				Username: id.Username,
				ClientIP: clientIP(id),
				Rows:     len(rows),
			})
		}

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", "attachment;filename=employee_export.csv")
		_ = WriteArchiveCSV(w, rows)
	}
}

// WriteArchiveCSV writes rows in the dashboard export column layout.
// archivectl export shares it with the HTTP handler.
func WriteArchiveCSV(w io.Writer, rows []model.ArchivedEmployee) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	if err := cw.Write(exportHeaders); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(exportRow(row)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func exportRow(emp model.ArchivedEmployee) []string {
	return []string{
		deref(emp.EmpNo),
		deref(emp.FullNameEN),
		deref(emp.FullNameAR),
		deref(emp.Department),
		deref(emp.Section),
		deref(emp.StatusEN),
		deref(emp.StatusAR),
		emp.WarrantStatus,
		emp.CardStatus,
		emp.CardExpiry,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
