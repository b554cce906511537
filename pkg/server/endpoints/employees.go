package endpoints

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/rta-apps/pta-archiving-backend/pkg/audit"
	"github.com/rta-apps/pta-archiving-backend/pkg/identity"
	"github.com/rta-apps/pta-archiving-backend/pkg/model"
	"github.com/rta-apps/pta-archiving-backend/pkg/server"
	"github.com/rta-apps/pta-archiving-backend/pkg/server/middleware"
	"github.com/rta-apps/pta-archiving-backend/pkg/server/store"
)

const maxUploadMemory = 32 << 20

// RegisterEmployeesEndpoints registers the archive list, details, create
// and update endpoints. Mutations are gated on the Editor level.
func RegisterEmployeesEndpoints(s *server.Server) {
	employees := s.EmployeesStore
	logger := s.Logger

	s.Router.HandleFunc("/api/employees",
		handleEmployeesList(employees)).Methods("GET")
	s.Router.Handle("/api/employees",
		middleware.RequireEditor(handleCreateEmployee(employees, logger))).Methods("POST")
	s.Router.HandleFunc("/api/employees/{archive_id:[0-9]+}",
		handleEmployeeDetails(employees)).Methods("GET")
	s.Router.Handle("/api/employees/{archive_id:[0-9]+}",
		middleware.RequireEditor(handleUpdateEmployee(employees, logger))).Methods("PUT")
}

func handleEmployeesList(employees store.EmployeesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := store.Filter{
			Search:     r.URL.Query().Get("search"),
			Status:     r.URL.Query().Get("status"),
			FilterType: r.URL.Query().Get("filter_type"),
			Page:       queryInt(r, "page", 1),
			PageSize:   queryInt(r, "page_size", 20),
		}

		rows, total, err := employees.List(r.Context(), filter)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if rows == nil {
			rows = []model.ArchivedEmployee{}
		}

		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"employees":       rows,
			"total_employees": total,
			"total_pages":     totalPages(total, filter.PageSize),
		})
	}
}

// totalPages guards the page-size-zero case that the export path uses.
func totalPages(total, pageSize int) int {
	if pageSize <= 0 {
		if total > 0 {
			return 1
		}
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

func handleEmployeeDetails(employees store.EmployeesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		archiveID, err := strconv.ParseInt(mux.Vars(r)["archive_id"], 10, 64)
		if err != nil {
			respondWithError(w, http.StatusNotFound, "Not found")
			return
		}

		details, err := employees.Get(r.Context(), archiveID)
		if err != nil {
			if errors.Is(err, store.ErrArchiveNotFound) {
				respondWithError(w, http.StatusNotFound, "Not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondWithJSON(w, http.StatusOK, details)
	}
}

// handleCreateEmployee archives an employee from a multipart form:
// an employee_data JSON field plus indexed new_documents file parts.
// Uploads run under the caller's own DMS ticket.
func handleCreateEmployee(employees store.EmployeesStore, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.Get(r.Context())
		if !ok || id.DST == "" {
			respondWithError(w, http.StatusUnauthorized, "Unauthorized or session expired")
			return
		}

		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		var payload store.ArchivePayload
		if err := json.Unmarshal([]byte(r.FormValue("employee_data")), &payload); err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		docs, closeDocs, err := collectNewDocuments(r)
		defer closeDocs()
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		if err := employees.Create(r.Context(), id.DST, id.Username, payload, docs); err != nil {
			logger.Error().Err(err).Int64("employee", payload.EmployeeID).Msg("archive create failed")
			audit.Log(audit.ArchiveEvent{
				Username:      id.Username,
				ClientIP:      clientIP(id),
				EmpNo:         payload.EmployeeNumber,
				Operation:     "create",
				DocumentCount: len(docs),
				ErrorMessage:  err.Error(),
			})
			respondWithError(w, http.StatusInternalServerError, createErrorMessage(err))
			return
		}

		audit.Log(audit.ArchiveEvent{
			Username:      id.Username,
			ClientIP:      clientIP(id),
			EmpNo:         payload.EmployeeNumber,
			Operation:     "create",
			DocumentCount: len(docs),
			Success:       true,
		})
		respondWithJSON(w, http.StatusCreated, map[string]interface{}{
			"message": "Employee and documents archived successfully.",
		})
	}
}

// handleUpdateEmployee rewrites an archive record from the same multipart
// shape as create, plus deleted_documents and updated_documents JSON
// fields.
func handleUpdateEmployee(employees store.EmployeesStore, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.Get(r.Context())
		if !ok || id.DST == "" {
			respondWithError(w, http.StatusUnauthorized, "Unauthorized or session expired")
			return
		}

		archiveID, err := strconv.ParseInt(mux.Vars(r)["archive_id"], 10, 64)
		if err != nil {
			respondWithError(w, http.StatusNotFound, "Not found")
			return
		}

		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		var payload store.ArchivePayload
		if err := json.Unmarshal([]byte(r.FormValue("employee_data")), &payload); err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		var deletedIDs []int64
		if err := json.Unmarshal([]byte(formValueDefault(r, "deleted_documents", "[]")), &deletedIDs); err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		var updatedDocs []store.UpdatedDocument
		if err := json.Unmarshal([]byte(formValueDefault(r, "updated_documents", "[]")), &updatedDocs); err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		docs, closeDocs, err := collectNewDocuments(r)
		defer closeDocs()
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		err = employees.Update(r.Context(), id.DST, id.Username, archiveID, payload, docs, deletedIDs, updatedDocs)
		if err != nil {
			logger.Error().Err(err).Int64("archive", archiveID).Msg("archive update failed")
			audit.Log(audit.ArchiveEvent{
				Username:      id.Username,
				ClientIP:      clientIP(id),
				ArchiveID:     archiveID,
				EmpNo:         payload.EmployeeNumber,
				Operation:     "update",
				DocumentCount: len(docs),
				ErrorMessage:  err.Error(),
			})
			respondWithError(w, http.StatusInternalServerError, updateErrorMessage(err))
			return
		}

		audit.Log(audit.ArchiveEvent{
			Username:      id.Username,
			ClientIP:      clientIP(id),
			ArchiveID:     archiveID,
			EmpNo:         payload.EmployeeNumber,
			Operation:     "update",
			DocumentCount: len(docs),
			Success:       true,
		})
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"message": "Employee archive updated successfully.",
		})
	}
}

// collectNewDocuments walks the indexed new_documents form parts. The
// returned cleanup closes every opened file and is safe to call on the
// error path too.
func collectNewDocuments(r *http.Request) ([]store.NewDocument, func(), error) {
	var docs []store.NewDocument
	var open []multipart.File
	cleanup := func() {
		for _, f := range open {
			_ = f.Close()
		}
	}

	for i := 0; ; i++ {
		files := r.MultipartForm.File[fmt.Sprintf("new_documents[%d][file]", i)]
		if len(files) == 0 {
			break
		}

		file, err := files[0].Open()
		if err != nil {
			return nil, cleanup, err
		}
		open = append(open, file)

		docTypeID, err := strconv.ParseInt(r.FormValue(fmt.Sprintf("new_documents[%d][doc_type_id]", i)), 10, 64)
		if err != nil {
			return nil, cleanup, fmt.Errorf("document %d has no valid doc_type_id: %w", i, err)
		}

		var legislationIDs []int64
		for _, raw := range r.MultipartForm.Value[fmt.Sprintf("new_documents[%d][legislation_ids][]", i)] {
			legID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return nil, cleanup, fmt.Errorf("document %d has a non-numeric legislation id: %w", i, err)
			}
			legislationIDs = append(legislationIDs, legID)
		}

		docs = append(docs, store.NewDocument{
			File:           file,
			Filename:       files[0].Filename,
			DocTypeID:      docTypeID,
			DocTypeName:    r.FormValue(fmt.Sprintf("new_documents[%d][doc_type_name]", i)),
			Expiry:         r.FormValue(fmt.Sprintf("new_documents[%d][expiry]", i)),
			LegislationIDs: legislationIDs,
		})
	}
	return docs, cleanup, nil
}

func formValueDefault(r *http.Request, name, def string) string {
	if vs, ok := r.MultipartForm.Value[name]; ok && len(vs) > 0 {
		return vs[0]
	}
	return def
}

func createErrorMessage(err error) string {
	var uploadErr *store.UploadError
	switch {
	case errors.Is(err, store.ErrAlreadyArchived):
		return "This employee is already in the archive."
	case errors.Is(err, store.ErrDuplicateDocType):
		return "Transaction failed: Cannot add the same document type twice."
	case errors.As(err, &uploadErr):
		return "Transaction failed: Failed to upload " + uploadErr.DocTypeName
	default:
		return "Transaction failed: " + err.Error()
	}
}

func updateErrorMessage(err error) string {
	var typeExists *store.DocTypeExistsError
	var uploadErr *store.UploadError
	switch {
	case errors.As(err, &typeExists):
		return fmt.Sprintf("Update transaction failed: Document type '%s' already exists for this employee.", typeExists.Name)
	case errors.As(err, &uploadErr):
		return "Update transaction failed: Failed to upload new document " + uploadErr.DocTypeName
	default:
		return "Update transaction failed: " + err.Error()
	}
}
