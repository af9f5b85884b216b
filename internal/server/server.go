// Package server is the feedback collection endpoint the wizard submits to.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/innobee/feedback/internal/logging"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultAddr matches the port the wizard's default API URL points at.
	DefaultAddr = ":5050"

	maxRequestBytes = 64 << 10
	shutdownTimeout = 5 * time.Second
)

// DefaultAllowedOrigins are the local dev origins allowed by CORS.
var DefaultAllowedOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"}

// Config holds the endpoint settings.
type Config struct {
	Addr           string
	AllowedOrigins []string
}

// Server serves POST /api/feedback and GET /health. Stored entries are
// never served back.
type Server struct {
	cfg        Config
	store      Store
	normalizer *Normalizer
	mux        *http.ServeMux
	srv        *http.Server
	now        func() time.Time
}

// New creates a server backed by store.
func New(cfg Config, store Store) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.AllowedOrigins == nil {
		cfg.AllowedOrigins = DefaultAllowedOrigins
	}
	s := &Server{
		cfg:        cfg,
		store:      store,
		normalizer: NewNormalizer(),
		mux:        http.NewServeMux(),
		now:        time.Now,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/api/feedback", s.handleFeedback)
}

// Handler returns the root handler with CORS applied.
func (s *Server) Handler() http.Handler {
	return s.cors(s.mux)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.srv = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logging.Info("Server: listening on %s", ln.Addr())
		if err := s.srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	// Stops the listener when ctx ends or Serve fails.
	g.Go(func() error {
		<-gctx.Done()
		logging.Info("Server: shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.createFeedback(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) createFeedback(w http.ResponseWriter, r *http.Request) {
	if !isJSON(r.Header.Get("Content-Type")) {
		writeFieldError(w, http.StatusBadRequest, reject("body", "Content-Type must be application/json"))
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err != nil {
		writeFieldError(w, http.StatusBadRequest, reject("body", "Request body must be a JSON object"))
		return
	}

	sub, err := s.normalizer.Normalize(body)
	if err != nil {
		var fe *FieldError
		if errors.As(err, &fe) {
			logging.Warn("Server: rejected feedback: %v", fe)
			writeFieldError(w, http.StatusBadRequest, fe)
			return
		}
		writeFieldError(w, http.StatusBadRequest, reject("body", err.Error()))
		return
	}

	entry := Entry{
		Rating:        sub.Rating,
		Opinion:       sub.Opinion,
		ResearchOptIn: sub.ResearchOptIn,
		Email:         sub.Email,
		CreatedAt:     s.now().UTC(),
		IP:            clientIP(r),
		UserAgent:     r.UserAgent(),
	}

	id, err := s.store.Insert(r.Context(), entry)
	if err != nil {
		logging.Error("Server: failed to store feedback: %v", err)
		writeFieldError(w, http.StatusInternalServerError,
			reject("server", "Failed to save feedback. Please try again later."))
		return
	}

	logging.Info("Server: feedback %s accepted (rating=%d, optin=%s)", id, entry.Rating, entry.ResearchOptIn)
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Feedback accepted", "id": id})
}

// cors allows the configured origins and answers preflight requests.
func (s *Server) cors(next http.Handler) http.Handler {
	allowed := make(map[string]bool, len(s.cfg.AllowedOrigins))
	for _, o := range s.cfg.AllowedOrigins {
		allowed[strings.TrimRight(o, "/")] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && strings.HasPrefix(r.URL.Path, "/api/") && allowed[origin] {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Add("Vary", "Origin")
			h.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func isJSON(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeFieldError(w http.ResponseWriter, status int, fe *FieldError) {
	writeJSON(w, status, map[string]string{"error": fe.Message, "field": fe.Field})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeFieldError(w, http.StatusMethodNotAllowed, reject("method", "Method not allowed"))
}
