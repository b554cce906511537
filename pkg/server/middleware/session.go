package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rta-apps/pta-archiving-backend/pkg/config"
	"github.com/rta-apps/pta-archiving-backend/pkg/identity"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "session"

// publicPaths are reachable without a session. The auth handlers manage
// the cookie themselves, and health must answer before login.
var publicPaths = map[string]bool{
	"/api/auth/pta-login": true,
	"/api/auth/pta-user":  true,
	"/api/auth/logout":    true,
	"/api/health":         true,
}

// sessionClaims is the JWT payload stored in the session cookie.
type sessionClaims struct {
	Username      string `json:"username"`
	SecurityLevel string `json:"security_level"`
	DST           string `json:"dst,omitempty"`
	jwt.RegisteredClaims
}

// SessionAuthenticator issues and validates signed session cookies.
type SessionAuthenticator struct {
	secret   []byte
	lifetime time.Duration
	secure   bool
}

// NewSessionAuthenticator creates a SessionAuthenticator from session config.
func NewSessionAuthenticator(cfg config.Session) *SessionAuthenticator {
	return &SessionAuthenticator{
		secret:   []byte(cfg.SecretKey),
		lifetime: time.Duration(cfg.LifetimeDays) * 24 * time.Hour,
		secure:   cfg.SecureCookie,
	}
}

// Issue signs a token for id and sets it as the session cookie on w.
func (s *SessionAuthenticator) Issue(w http.ResponseWriter, id *identity.Identity) error {
	now := time.Now()
	claims := sessionClaims{
		Username:      id.Username,
		SecurityLevel: id.SecurityLevel,
		DST:           id.DST,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.lifetime / time.Second),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear expires the session cookie on w.
func (s *SessionAuthenticator) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Parse validates the session cookie on r and returns the identity it
// carries. Expired or tampered tokens fail validation.
func (s *SessionAuthenticator) Parse(r *http.Request) (*identity.Identity, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return nil, err
	}

	var claims sessionClaims
	_, err = jwt.ParseWithClaims(
		cookie.Value,
		&claims,
		func(*jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{"HS256"}),
	)
	if err != nil {
		return nil, err
	}

	id := &identity.Identity{
		Username:      claims.Username,
		SecurityLevel: claims.SecurityLevel,
		DST:           claims.DST,
	}
	if claims.IssuedAt != nil {
		id.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		id.ExpiresAt = claims.ExpiresAt.Time
	}
	return id, nil
}

// Middleware rejects requests lacking a valid session cookie, except on
// the public paths. On success the identity is stored in the request
// context for handlers downstream.
func (s *SessionAuthenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if publicPaths[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}

		id, err := s.Parse(r)
		if err != nil {
			writeAuthError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		if host, _, splitErr := net.SplitHostPort(r.RemoteAddr); splitErr == nil {
			id = id.WithRemoteIP(net.ParseIP(host))
		}

		next.ServeHTTP(w, r.WithContext(identity.Set(r.Context(), id)))
	})
}

// RequireEditor wraps handlers that modify archive data. Identities
// below the Editor security level are refused.
func RequireEditor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.Get(r.Context())
		if !ok || !id.IsEditor() {
			writeAuthError(w, http.StatusForbidden, "Editor access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
