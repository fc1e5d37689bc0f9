// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/poiesic/cinematch/config"
	"github.com/poiesic/cinematch/core"
	"github.com/poiesic/cinematch/metrics"
	"github.com/poiesic/cinematch/recommend"
)

// Engine is the part of recommend.Engine the server needs.
type Engine interface {
	RecommendWithMonitor(ctx context.Context, query string, topN int, monitor recommend.Monitor) ([]core.Result, error)
}

// Server serves recommendations over HTTP.
type Server struct {
	engine      Engine
	cfg         config.ServerConfig
	model       string
	entries     int
	defaultTopN int
	maxTopN     int
	metrics     *metrics.Metrics
	logger      *slog.Logger
	handler     http.Handler
}

// Option configures a Server.
type Option func(*Server) error

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithConfig sets listen address, timeouts, CORS origins and rate limits.
func WithConfig(cfg config.ServerConfig) Option {
	return func(s *Server) error {
		s.cfg = cfg
		return nil
	}
}

// WithCatalogueInfo sets the model name and entry count reported by /health.
func WithCatalogueInfo(model string, entries int) Option {
	return func(s *Server) error {
		s.model = model
		s.entries = entries
		return nil
	}
}

// WithTopN sets the row count used when a request omits top_n, and the
// largest count a request may ask for. Larger requests are clamped.
func WithTopN(defaultTopN, maxTopN int) Option {
	return func(s *Server) error {
		if defaultTopN < 1 || maxTopN < 1 {
			return ErrInvalidTopN
		}
		s.defaultTopN = defaultTopN
		s.maxTopN = max(defaultTopN, maxTopN)
		return nil
	}
}

// WithMetrics records every recommendation and mounts /metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) error {
		s.metrics = m
		return nil
	}
}

// New creates a server for engine.
func New(engine Engine, opts ...Option) (*Server, error) {
	if engine == nil {
		return nil, ErrEngineRequired
	}

	defaults := config.Default()
	s := &Server{
		engine:      engine,
		cfg:         defaults.Server,
		defaultTopN: defaults.Recommend.TopN,
		maxTopN:     defaults.Recommend.MaxTopN,
		logger:      slog.Default().With("component", "http"),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	s.handler = s.routes()
	return s, nil
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		if s.cfg.RateLimit > 0 {
			r.Use(httprate.LimitByIP(s.cfg.RateLimit, s.cfg.RateWindow))
		}
		r.Use(chimiddleware.Timeout(s.cfg.RequestTimeout))
		r.Post("/recommend", s.handleRecommend)
	})

	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler())
	}

	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}
