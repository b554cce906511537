package server

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/rta-apps/pta-archiving-backend/pkg/config"
	"github.com/rta-apps/pta-archiving-backend/pkg/dms"
	"github.com/rta-apps/pta-archiving-backend/pkg/server/middleware"
	"github.com/rta-apps/pta-archiving-backend/pkg/server/store"
)

// Server wires the stores, the DMS client and the session layer into an
// HTTP server. Endpoints register themselves on Router.
type Server struct {
	UsersStore     store.UsersStore
	EmployeesStore store.EmployeesStore
	HRStore        store.HREmployeesStore
	LookupsStore   store.LookupsStore
	HealthStore    store.HealthStore
	DMS            dms.Service
	Sessions       *middleware.SessionAuthenticator
	Config         *config.Config
	Router         *mux.Router
	Logger         zerolog.Logger

	srv *http.Server
}

func NewServer(
	usersStore store.UsersStore,
	employeesStore store.EmployeesStore,
	hrStore store.HREmployeesStore,
	lookupsStore store.LookupsStore,
	healthStore store.HealthStore,
	dmsService dms.Service,
	sessions *middleware.SessionAuthenticator,
	cfg *config.Config,
	logger zerolog.Logger,
) *Server {

	router := mux.NewRouter().UseEncodedPath()

	corsOptions := []handlers.CORSOption{
		handlers.AllowedMethods([]string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodDelete, http.MethodOptions,
		}),
		handlers.AllowedHeaders([]string{"Content-Type", "X-Requested-With"}),
		// The front-end reads download filenames from this header.
		handlers.ExposedHeaders([]string{"Content-Disposition"}),
		handlers.AllowCredentials(),
	}
	if allowAnyOrigin(cfg.CORSAllowedOrigins) {
		// Credentialed requests refuse a literal "*", so the wildcard
		// echoes the request origin instead.
		corsOptions = append(corsOptions,
			handlers.AllowedOriginValidator(func(string) bool { return true }))
	} else {
		corsOptions = append(corsOptions,
			handlers.AllowedOrigins(cfg.CORSAllowedOrigins))
	}

	handler := sessions.Middleware(router)
	handler = handlers.LoggingHandler(os.Stdout, handler)
	handler = handlers.CORS(corsOptions...)(handler)
	handler = handlers.RecoveryHandler()(handler)

	srv := &http.Server{
		Handler: handler,
		Addr:    cfg.ListenAddr(),
		// Good practice: enforce timeouts for servers you create!
		// Writes get longer: document downloads stream through here.
		WriteTimeout: 60 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	return &Server{
		UsersStore:     usersStore,
		EmployeesStore: employeesStore,
		HRStore:        hrStore,
		LookupsStore:   lookupsStore,
		HealthStore:    healthStore,
		DMS:            dmsService,
		Sessions:       sessions,
		Config:         cfg,
		Router:         router,
		Logger:         logger.With().Str("component", "server").Logger(),
		srv:            srv,
	}
}

// Start begins serving and blocks until the listener fails or Shutdown
// is called.
func (s *Server) Start() error {
	s.Logger.Info().Str("addr", s.srv.Addr).Msg("listening")
	return s.srv.ListenAndServe()
}

// Shutdown stops accepting connections and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func allowAnyOrigin(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
