// internal/httpserver/server.go
//
// HTTP server wiring for the memory buttons game.
// Responsibilities:
//   - Router + middleware (request IDs, request log, metrics, panic recovery, CORS).
//     Forwarding headers are honored only when TRUST_PROXY is set.
//   - Browser client: "/" and "/static/*" from the embedded assets.
//   - Game transport (optional auth): GET /ws upgrades to a websocket session.
//   - JSON API (timeout-bounded): /health, /api, /auth/*, /stats/me, /rounds/mine, /daily/*.
//   - Prometheus scrape endpoint: /metrics.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - /ws sits outside the request timeout; a session lives as long as the socket.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/robalobadob/memory-buttons/assets"
	"github.com/robalobadob/memory-buttons/internal/common/clock"
	"github.com/robalobadob/memory-buttons/internal/config"
	"github.com/robalobadob/memory-buttons/internal/i18n"
	"github.com/robalobadob/memory-buttons/internal/session"
	"github.com/robalobadob/memory-buttons/internal/store"
)

const (
	apiTimeout      = 10 * time.Second
	authRateLimit   = 20
	authRateWindow  = time.Minute
	recentRoundsMax = 50
	leaderboardSize = 20
)

// Deps are the collaborators a Server routes to.
type Deps struct {
	Config   *config.Config   // required
	Store    store.Store      // required
	Sessions *session.Manager // required
	I18n     *i18n.Bundle     // required
	Clock    clock.Clock      // defaults to the system clock
	Web      fs.FS            // defaults to the embedded client
}

// Server bundles router, persistence and the session manager.
type Server struct {
	r        *chi.Mux
	http     *http.Server
	base     context.Context // parent of every request context
	stop     context.CancelFunc
	cfg      *config.Config
	store    store.Store
	sessions *session.Manager
	i18n     *i18n.Bundle
	clock    clock.Clock
	web      fs.FS
	upgrader websocket.Upgrader

	authLimiter *limiter
}

// New constructs a Server, installs middleware, and registers routes.
func New(d Deps) *Server {
	s := &Server{
		r:        chi.NewRouter(),
		cfg:      d.Config,
		store:    d.Store,
		sessions: d.Sessions,
		i18n:     d.I18n,
		clock:    d.Clock,
		web:      d.Web,
	}
	if s.clock == nil {
		s.clock = &clock.DefaultClock{}
	}
	if s.web == nil {
		s.web = assets.Web()
	}
	s.upgrader = websocket.Upgrader{CheckOrigin: s.checkOrigin}
	s.authLimiter = newLimiter(authRateLimit, authRateWindow, s.clock.Now)
	s.base, s.stop = context.WithCancel(context.Background())
	s.http = &http.Server{
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return s.base },
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID) // add X-Request-ID
	if s.cfg.TrustProxy {
		s.r.Use(chimw.RealIP) // set RemoteAddr from X-Forwarded-For etc.
	}
	s.r.Use(requestLogger)
	s.r.Use(countRequests)
	s.r.Use(chimw.Recoverer)
	s.r.Use(s.cors)

	// --- browser client ---
	s.r.Get("/", s.handleIndex)
	s.r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(s.web))))

	// --- diagnostics ---
	s.r.Handle("/metrics", promhttp.Handler())

	// Game socket, OPTIONAL AUTH (guests can play)
	s.r.With(s.withOptionalAuth()).Get("/ws", s.handleWS)

	// JSON API
	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(apiTimeout))
		r.Use(jsonContentType)

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"ok":true}`))
		})
		r.Get("/api", s.handleAPIInfo)

		s.mountAuthRoutes(r)
		s.mountDaily(r.With(s.withOptionalAuth()))
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Start begins serving HTTP on addr and blocks until Shutdown.
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown ends open game sessions, stops accepting connections and waits
// for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.stop()
	return s.http.Shutdown(ctx)
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- handlers ------------------------------------

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := fs.ReadFile(s.web, "index.html")
	if err != nil {
		http.Error(w, "client missing", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

func (s *Server) handleAPIInfo(w http.ResponseWriter, r *http.Request) {
	langs := []string{}
	for _, t := range s.i18n.Languages() {
		langs = append(langs, t.String())
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"service":    "memory-buttons",
		"endpoints":  []string{"/health", "GET /ws", "/auth/*", "/stats/me", "/rounds/mine", "/daily/today", "/daily/leaderboard", "/metrics"},
		"languages":  langs,
		"maxButtons": s.cfg.MaxButtons,
		"sessions":   s.sessions.Active(),
	})
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// writeError writes {"error": code} with status.
func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}
