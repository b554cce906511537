package endpoints

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"

	"github.com/rta-apps/pta-archiving-backend/pkg/identity"
)

func respondWithError(w http.ResponseWriter, code int, payload interface{}) {
	respondWithJSON(w, code, map[string]interface{}{"error": payload})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// queryInt reads an integer query parameter, falling back to def when
// the parameter is missing or not a number.
func queryInt(r *http.Request, name string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return def
	}
	return v
}

// remoteIP extracts the client address without the port, for audit events
// on routes that run before the session middleware sets an identity.
func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// clientIP renders the session identity's address for audit events.
func clientIP(id *identity.Identity) string {
	if id.RemoteIP == nil {
		return ""
	}
	return id.RemoteIP.String()
}
