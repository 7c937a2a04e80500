package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/morispolanco/recamazon/internal/logging"
	"github.com/morispolanco/recamazon/internal/metrics"
	"github.com/morispolanco/recamazon/internal/pipeline"
	"github.com/morispolanco/recamazon/internal/report"
	"github.com/morispolanco/recamazon/internal/services"
)

const maxRequestBytes = 64 << 10

// Analyzer runs one pipeline per query.
type Analyzer interface {
	Run(ctx context.Context, query string) (pipeline.Result, error)
	Catalog() string
}

// Options configures a Server.
type Options struct {
	Bind string
	// APIToken, when set, is required as a bearer token on /api/*.
	APIToken string
	// Warning is shown on the page and refuses analysis when set, e.g. for
	// a missing API key.
	Warning string
	Logger  *slog.Logger
}

// Server serves the browser form and the JSON API.
type Server struct {
	analyzer Analyzer
	opts     Options
	logger   *slog.Logger
	page     *pageRenderer

	listener net.Listener
	server   *http.Server
}

// New builds a server around analyzer.
func New(analyzer Analyzer, opts Options) (*Server, error) {
	if analyzer == nil {
		return nil, services.Wrap(services.ErrConfiguration, "web", "new server", "analyzer required", nil)
	}
	page, err := newPageRenderer()
	if err != nil {
		return nil, err
	}
	opts.Bind = strings.TrimSpace(opts.Bind)
	s := &Server{
		analyzer: analyzer,
		opts:     opts,
		logger:   logging.NewComponentLogger(opts.Logger, "web"),
		page:     page,
	}
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		// Each request may wait on four sequential completions.
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// Handler returns the routing table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/analyze", authMiddleware(s.opts.APIToken, s.handleAnalyze))
	mux.HandleFunc("/api/health", authMiddleware(s.opts.APIToken, s.handleHealth))
	mux.Handle("/metrics", metrics.Handler())
	return mux
}

// Start listens on the configured bind address and serves until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.opts.Bind)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "web", "listen", s.opts.Bind, err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("web server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	s.logger.Info("web server listening",
		logging.String(logging.FieldEventType, "server_start"),
		logging.String("address", listener.Addr().String()),
		logging.String("catalog", s.analyzer.Catalog()),
		logging.Bool("api_auth", s.opts.APIToken != ""),
	)
	return nil
}

// Addr returns the bound address once Start has succeeded.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop shuts the server down, waiting up to five seconds for requests.
func (s *Server) Stop() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.server.Shutdown(shutdownCtx)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	view := pageView{Labels: report.LabelsFor(s.analyzer.Catalog()), Warning: s.opts.Warning}

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		s.renderPage(w, http.StatusOK, view)
	case http.MethodPost:
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
		if err := r.ParseForm(); err != nil {
			view.Error = "Could not read the submitted form."
			s.renderPage(w, http.StatusBadRequest, view)
			return
		}
		view.Query = strings.TrimSpace(r.PostFormValue("query"))
		if view.Warning != "" {
			s.renderPage(w, http.StatusServiceUnavailable, view)
			return
		}
		if view.Query == "" {
			view.Error = "Please enter a search term."
			s.renderPage(w, http.StatusBadRequest, view)
			return
		}
		result, err := s.analyzer.Run(r.Context(), view.Query)
		if err != nil {
			view.Error = err.Error()
			s.renderPage(w, statusFor(err), view)
			return
		}
		view.setResult(result)
		s.renderPage(w, http.StatusOK, view)
	default:
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

type analyzeRequest struct {
	Query string `json:"query"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.opts.Warning != "" {
		s.writeError(w, http.StatusServiceUnavailable, s.opts.Warning)
		return
	}
	var req analyzeRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err := decoder.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			s.writeError(w, http.StatusBadRequest, "request body required")
			return
		}
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		s.writeError(w, http.StatusBadRequest, "query required")
		return
	}

	result, err := s.analyzer.Run(r.Context(), req.Query)
	if err != nil {
		s.writeError(w, statusFor(err), err.Error())
		return
	}
	encoded, err := report.EncodeJSON(result)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, encoded)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrConfiguration):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) renderPage(w http.ResponseWriter, status int, view pageView) {
	body, err := s.page.render(view)
	if err != nil {
		s.logger.Error("failed to render page", logging.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
