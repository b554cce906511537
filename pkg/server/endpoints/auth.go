package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/rta-apps/pta-archiving-backend/pkg/audit"
	"github.com/rta-apps/pta-archiving-backend/pkg/dms"
	"github.com/rta-apps/pta-archiving-backend/pkg/identity"
	"github.com/rta-apps/pta-archiving-backend/pkg/model"
	"github.com/rta-apps/pta-archiving-backend/pkg/server"
	"github.com/rta-apps/pta-archiving-backend/pkg/server/middleware"
	"github.com/rta-apps/pta-archiving-backend/pkg/server/store"
)

// RegisterAuthEndpoints registers login, current-user and logout.
func RegisterAuthEndpoints(s *server.Server) {
	s.Router.HandleFunc("/api/auth/pta-login",
		handleLogin(s.DMS, s.UsersStore, s.Sessions, s.Logger)).Methods("POST")
	s.Router.HandleFunc("/api/auth/pta-user",
		handleCurrentUser(s.UsersStore, s.Sessions)).Methods("GET")
	s.Router.HandleFunc("/api/auth/logout",
		handleLogout(s.Sessions)).Methods("POST")
}

// handleLogin authenticates against the DMS, resolves the application
// security level and issues the session cookie. The DMS ticket rides in
// the session so later uploads and downloads run as the user.
func handleLogin(dmsService dms.Service, users store.UsersStore, sessions *middleware.SessionAuthenticator, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Username == "" || body.Password == "" {
			respondWithError(w, http.StatusBadRequest, "Username and password are required")
			return
		}

		dst, err := dmsService.Login(r.Context(), body.Username, body.Password)
		if err != nil {
			if !errors.Is(err, dms.ErrInvalidCredentials) {
				logger.Error().Err(err).Str("user", body.Username).Msg("DMS login failed")
			}
			audit.Log(audit.LoginEvent{
				Username:     body.Username,
				ClientIP:     remoteIP(r),
				ErrorMessage: "DMS rejected credentials",
			})
			respondWithError(w, http.StatusUnauthorized, "Invalid DMS credentials")
			return
		}

		level, err := users.SecurityLevel(r.Context(), body.Username)
		if err != nil {
			if !errors.Is(err, store.ErrUserNotFound) && !errors.Is(err, store.ErrNoSecurityLevel) {
				logger.Error().Err(err).Str("user", body.Username).Msg("security level lookup failed")
			}
			audit.Log(audit.LoginEvent{
				Username:     body.Username,
				ClientIP:     remoteIP(r),
				ErrorMessage: "no security level assigned",
			})
			respondWithError(w, http.StatusUnauthorized, "User not authorized for this application")
			return
		}

		user := model.User{Username: body.Username, SecurityLevel: level}
		err = sessions.Issue(w, &identity.Identity{
			Username:      user.Username,
			SecurityLevel: user.SecurityLevel,
			DST:           dst,
		})
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		audit.Log(audit.LoginEvent{Username: body.Username, ClientIP: remoteIP(r), Success: true})
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"message": "Login successful",
			"user":    user,
		})
	}
}

// handleCurrentUser re-reads the user from the database so a revoked
// security level takes effect before the cookie expires, then refreshes
// the cookie.
func handleCurrentUser(users store.UsersStore, sessions *middleware.SessionAuthenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := sessions.Parse(r)
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		level, err := users.SecurityLevel(r.Context(), id.Username)
		if err != nil {
			sessions.Clear(w)
			respondWithError(w, http.StatusUnauthorized, "User not found")
			return
		}

		id.SecurityLevel = level
		if err := sessions.Issue(w, id); err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"user": model.User{Username: id.Username, SecurityLevel: level},
		})
	}
}

func handleLogout(sessions *middleware.SessionAuthenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if id, err := sessions.Parse(r); err == nil {
			audit.Log(audit.LogoutEvent{Username: id.Username, ClientIP: remoteIP(r)})
		}
		sessions.Clear(w)
		respondWithJSON(w, http.StatusOK, map[string]interface{}{"message": "Logout successful"})
	}
}
