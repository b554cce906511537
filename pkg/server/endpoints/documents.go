package endpoints

import (
	"errors"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/rta-apps/pta-archiving-backend/pkg/audit"
	"github.com/rta-apps/pta-archiving-backend/pkg/dms"
	"github.com/rta-apps/pta-archiving-backend/pkg/identity"
	"github.com/rta-apps/pta-archiving-backend/pkg/server"
)

// RegisterDocumentsEndpoint registers the document download endpoint.
func RegisterDocumentsEndpoint(s *server.Server) {
	s.Router.HandleFunc("/api/document/{docnumber:[0-9]+}",
		handleDocumentDownload(s.DMS, s.Logger)).Methods("GET")
}

// handleDocumentDownload streams a document out of the DMS under the
// caller's own ticket, so DMS-side access control still applies.
func handleDocumentDownload(dmsService dms.Service, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.Get(r.Context())
		if !ok || id.DST == "" {
			respondWithError(w, http.StatusUnauthorized, "Unauthorized or session expired")
			return
		}

		docNumber := mux.Vars(r)["docnumber"]
		content, filename, err := dmsService.FetchDocument(r.Context(), id.DST, docNumber)
		if err != nil {
			if !errors.Is(err, dms.ErrDocumentNotFound) {
				logger.Error().Err(err).Str("document", docNumber).Msg("document fetch failed")
			}
			audit.Log(audit.DocumentFetchEvent{
				Username:     id.Username,
				ClientIP:     clientIP(id),
				DocNumber:    docNumber,
				ErrorMessage: err.Error(),
			})
			respondWithError(w, http.StatusNotFound, "Document not found or could not be retrieved from DMS.")
			return
		}

		audit.Log(audit.DocumentFetchEvent{
			Username:  id.Username,
			ClientIP:  clientIP(id),
			DocNumber: docNumber,
			Filename:  filename,
			Success:   true,
		})

		w.Header().Set("Content-Type", contentTypeFor(filename, content))
		w.Header().Set("Content-Disposition", "inline; filename="+filename)
		_, _ = w.Write(content)
	}
}

// contentTypeFor resolves the response type from the filename extension
// first, then from the content itself. mimetype falls back to
// application/octet-stream on its own.
func contentTypeFor(filename string, content []byte) string {
	if byExt := mime.TypeByExtension(filepath.Ext(filename)); byExt != "" {
		return byExt
	}
	return mimetype.Detect(content).String()
}
