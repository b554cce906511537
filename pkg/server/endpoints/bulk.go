package endpoints

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rta-apps/pta-archiving-backend/pkg/audit"
	"github.com/rta-apps/pta-archiving-backend/pkg/identity"
	"github.com/rta-apps/pta-archiving-backend/pkg/importer"
	"github.com/rta-apps/pta-archiving-backend/pkg/server"
	"github.com/rta-apps/pta-archiving-backend/pkg/server/middleware"
	"github.com/rta-apps/pta-archiving-backend/pkg/server/store"
)

// RegisterBulkUploadEndpoint registers the spreadsheet bulk archive.
func RegisterBulkUploadEndpoint(s *server.Server) {
	s.Router.Handle("/api/employees/bulk-upload",
		middleware.RequireEditor(handleBulkUpload(s.EmployeesStore, s.Logger))).Methods("POST")
}

// handleBulkUpload parses an uploaded .xlsx or .csv and archives every
// row all-or-nothing. Row failures come back as a 422 with the per-row
// errors; the whole transaction is rolled back.
func handleBulkUpload(employees store.EmployeesStore, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			respondWithError(w, http.StatusBadRequest, "No file part")
			return
		}
		files := r.MultipartForm.File["file"]
		if len(files) == 0 {
			respondWithError(w, http.StatusBadRequest, "No file part")
			return
		}
		header := files[0]
		if header.Filename == "" {
			respondWithError(w, http.StatusBadRequest, "No selected file")
			return
		}

		file, err := header.Open()
		if err != nil {
			respondWithError(w, http.StatusInternalServerError,
				"An error occurred during file processing: "+err.Error())
			return
		}
		defer file.Close()

		rows, err := importer.ParseFile(header.Filename, file)
		if err != nil {
			respondParseError(w, header.Filename, err)
			return
		}
		if len(rows) == 0 {
			respondWithError(w, http.StatusBadRequest, "No data found in the file.")
			return
		}

		result, err := employees.BulkArchive(r.Context(), rows)
		if err != nil {
			logger.Error().Err(err).Str("file", header.Filename).Msg("bulk archive failed")
			result = store.BulkResult{
				Failed: len(rows),
				Errors: []string{"An unexpected transaction error occurred: " + err.Error()},
			}
		}

		id, _ := identity.Get(r.Context())

		if result.Failed > 0 {
			if id != nil {
				audit.Log(audit.ImportEvent{
					Username: id.Username,
					ClientIP: clientIP(id),
					Filename: header.Filename,
					Added:    result.Added,
					Failed:   result.Failed,
				})
			}
			respondWithJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
				"message": fmt.Sprintf("Bulk add finished. %d added, %d failed.", result.Added, result.Failed),
				"errors":  result.Errors,
			})
			return
		}

		if id != nil {
			audit.Log(audit.ImportEvent{
				Username: id.Username,
				ClientIP: clientIP(id),
				Filename: header.Filename,
				Added:    result.Added,
				Success:  true,
			})
		}
		respondWithJSON(w, http.StatusCreated, map[string]interface{}{
			"message": fmt.Sprintf("Successfully added %d employees.", result.Added),
		})
	}
}

func respondParseError(w http.ResponseWriter, filename string, err error) {
	expected := strings.Join(importer.ExpectedHeaders, ", ")
	switch {
	case errors.Is(err, importer.ErrUnsupportedType):
		respondWithError(w, http.StatusBadRequest,
			"Invalid file type. Please upload a .xlsx or .csv file.")
	case errors.Is(err, importer.ErrMissingHeaders) && strings.HasSuffix(filename, ".xlsx"):
		respondWithError(w, http.StatusBadRequest,
			"Invalid Excel format. Missing one or more headers. Expected: "+expected)
	case errors.Is(err, importer.ErrMissingHeaders):
		respondWithError(w, http.StatusBadRequest,
			"Invalid CSV format. Missing one or more headers. Expected: "+expected)
	default:
		respondWithError(w, http.StatusInternalServerError,
			"An error occurred during file processing: "+err.Error())
	}
}
