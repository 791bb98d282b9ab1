// Package server exposes the analysis engine over a small JSON HTTP API.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/josephgoksu/RepoWing/internal/analyzer"
	"github.com/josephgoksu/RepoWing/internal/memory"
	"github.com/josephgoksu/RepoWing/internal/source"
	"github.com/josephgoksu/RepoWing/internal/task"
)

var validate = validator.New()

// Engine abstracts the analysis operations the API serves.
type Engine interface {
	Analyze(ctx context.Context, repo source.RepoID) (*analyzer.AnalysisReport, error)
	CompareTasks(ctx context.Context, repo source.RepoID, phases []task.Phase) ([]analyzer.PhaseMatch, error)
}

// Config wires a Server.
type Config struct {
	Port    int
	Origins []string
	Version string
	Engine  Engine
	Store   memory.ReportStore // optional; nil disables history
	Logger  *slog.Logger
}

type Server struct {
	engine  Engine
	store   memory.ReportStore
	origins map[string]struct{}
	version string
	logger  *slog.Logger
	server  *http.Server
}

func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	origins := make(map[string]struct{}, len(cfg.Origins))
	for _, o := range cfg.Origins {
		origins[o] = struct{}{}
	}

	s := &Server{
		engine:  cfg.Engine,
		store:   cfg.Store,
		origins: origins,
		version: cfg.Version,
		logger:  logger,
	}

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.registerRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Addr is the listen address.
func (s *Server) Addr() string {
	return s.server.Addr
}

func (s *Server) Start(wg *sync.WaitGroup, errChan chan<- error) {
	wg.Add(1)
	go func() {
		defer wg.Done()

		s.logger.Info("API server listening", "addr", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
