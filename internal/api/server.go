package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"searchai/internal/logging"
	"searchai/internal/services"
	"searchai/internal/store"
	"searchai/internal/workflow"
)

const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 500
	shutdownTimeout     = 5 * time.Second
)

// Runner executes one pipeline run.
type Runner interface {
	Run(ctx context.Context, req workflow.Request) (*workflow.Outcome, error)
}

// Records is the read-only store surface used by the query endpoints.
type Records interface {
	Ping(ctx context.Context) error
	History(ctx context.Context, limit int) ([]store.Query, error)
	GetQuery(ctx context.Context, id string) (*store.Query, error)
	Results(ctx context.Context, queryID string) ([]store.SearchResult, error)
	Documents(ctx context.Context, queryID string) ([]store.Document, error)
}

// Server serves the HTTP API.
type Server struct {
	bind    string
	runner  Runner
	records Records
	logger  *slog.Logger

	listener net.Listener
	server   *http.Server
}

// NewServer builds a server bound to bind once Start is called.
func NewServer(bind string, runner Runner, records Records, logger *slog.Logger) (*Server, error) {
	if runner == nil || records == nil {
		return nil, errors.New("api server requires a runner and records")
	}
	bind = strings.TrimSpace(bind)
	if bind == "" {
		return nil, errors.New("api bind address is empty")
	}
	s := &Server{
		bind:    bind,
		runner:  runner,
		records: records,
		logger:  logging.NewComponentLogger(logger, "api"),
	}
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s, nil
}

// Handler returns the routed handler. Submissions run the whole pipeline, so
// no write timeout is imposed beyond the per-stage limits.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/health", s.handleHealth)
	r.Route("/api/v1/queries", func(r chi.Router) {
		r.Post("/", s.handleSubmit)
		r.Get("/", s.handleHistory)
		r.Get("/{id}", s.handleQuery)
	})
	return r
}

// Start listens on the bind address and serves until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	s.logger.Info("api server listening",
		logging.String(logging.FieldEventType, "api_listening"),
		logging.String("address", listener.Addr().String()),
	)
	if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("api serve: %w", err)
	}
	return nil
}

// Addr returns the bound address once Start is listening.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop shuts the server down, waiting briefly for in-flight requests.
func (s *Server) Stop() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	_ = s.server.Shutdown(shutdownCtx)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		ctx := services.WithRequestID(r.Context(), middleware.GetReqID(r.Context()))
		next.ServeHTTP(ww, r.WithContext(ctx))
		logging.WithContext(ctx, s.logger).Debug("http request",
			logging.String(logging.FieldEventType, "http_request"),
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.Int("status", ww.Status()),
			logging.Duration("duration", time.Since(start)),
		)
	})
}
