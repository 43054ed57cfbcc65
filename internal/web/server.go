// Package web serves the Leadlift pages over HTTP.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/leadlift/leadlift-web/internal/backend"
	"github.com/leadlift/leadlift-web/internal/config"
	"github.com/leadlift/leadlift-web/internal/guard"
	"github.com/leadlift/leadlift-web/internal/models"
	"github.com/leadlift/leadlift-web/internal/monitoring"
	"github.com/leadlift/leadlift-web/internal/views"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	g "maragu.dev/gomponents"
)

// Server owns the router and the collaborators every handler needs
type Server struct {
	config     *config.Config
	api        backend.API
	monitoring *monitoring.Service
	guard      *guard.Guard
	router     *mux.Router
}

// NewServer wires the routes. The guard runs in front of the router so
// unknown paths under a protected prefix are gated too.
func NewServer(cfg *config.Config, api backend.API, monitoringService *monitoring.Service) *Server {
	var validator guard.TokenValidator = guard.Presence{}
	if cfg.GuardMode == config.GuardModeJWT {
		validator = guard.JWT{Secret: []byte(cfg.JWTSecret)}
	}

	s := &Server{
		config:     cfg,
		api:        api,
		monitoring: monitoringService,
		guard: guard.New(cfg.SessionCookie, cfg.ProtectedPaths, cfg.UnauthRedirect, validator).
			WithRecorder(monitoringService),
		router: mux.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router

	r.HandleFunc("/", s.handleHome).Methods(http.MethodGet)
	r.HandleFunc("/about", s.handleAbout).Methods(http.MethodGet)
	r.HandleFunc("/auth", s.handleAuth).Methods(http.MethodGet)
	r.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodGet)
	r.HandleFunc("/auth/logout", s.handleLogout).Methods(http.MethodPost)
	r.HandleFunc("/search", s.handleSearch).Methods(http.MethodGet)
	r.HandleFunc("/businesses/{id}", s.handleBusiness).Methods(http.MethodGet)
	r.HandleFunc("/businesses/{id}/sections/{section}", s.handleSection).Methods(http.MethodGet)

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/metrics", s.handleMetrics).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(s.handleNotFound)
}

// Handler returns the fully wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	return requestLogger(s.guard.Middleware(s.router))
}

func (s *Server) token(r *http.Request) string {
	cookie, err := r.Cookie(s.config.SessionCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// currentUser resolves the header identity. Any failure renders signed out.
func (s *Server) currentUser(ctx context.Context, token string) *models.User {
	user, err := s.api.CurrentUser(ctx, token)
	if err != nil {
		if !errors.Is(err, backend.ErrUnauthorized) {
			logrus.Debugf("Current user lookup failed: %v", err)
		}
		return nil
	}
	return user
}

// settle runs the header identity lookup and every given load concurrently
// and returns once all of them finished. Loads never fail the group, so one
// unit's error cannot cancel or blank a sibling.
func (s *Server) settle(r *http.Request, title string, loads ...func(ctx context.Context)) views.Chrome {
	ctx := r.Context()
	chrome := views.Chrome{Title: title, Path: r.URL.Path}

	var group errgroup.Group
	group.Go(func() error {
		chrome.User = s.currentUser(ctx, s.token(r))
		return nil
	})
	for _, load := range loads {
		load := load
		group.Go(func() error {
			load(ctx)
			return nil
		})
	}
	_ = group.Wait()

	return chrome
}

func render(w http.ResponseWriter, status int, node g.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := node.Render(w); err != nil {
		logrus.Errorf("Failed to render page: %v", err)
	}
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	render(w, http.StatusOK, views.HomePage(s.settle(r, "")))
}

func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	render(w, http.StatusOK, views.AboutPage(s.settle(r, "About")))
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	render(w, http.StatusNotFound, views.NotFoundPage(s.settle(r, "Not Found")))
}

type healthResponse struct {
	Status         string     `json:"status"`
	Timestamp      string     `json:"timestamp"`
	BackendHealthy bool       `json:"backend_healthy"`
	LastProbe      *time.Time `json:"last_probe,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
	}
	healthy, lastProbe := s.monitoring.BackendHealthy()
	resp.BackendHealthy = healthy
	if !lastProbe.IsZero() {
		resp.LastProbe = &lastProbe
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logrus.Errorf("Failed to write health response: %v", err)
	}
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(s.monitoring.GetMetrics()))
}

func (s *Server) backendLoginURL() string {
	return strings.TrimRight(s.config.BackendPublicURL, "/") + "/auth/login"
}
