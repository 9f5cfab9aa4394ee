package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	v1 "github.com/salesdash-lab/salesdash/internal/api/v1"
)

type Server struct {
	Engine *gin.Engine
	Addr   string

	db              HealthChecker
	dataset         DatasetReporter
	shutdownTimeout time.Duration
}

// HealthChecker is an interface for components that can report their health status.
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// DatasetReporter describes the state of the one-time dataset load.
type DatasetReporter interface {
	Describe() v1.DatasetStatus
}

// Options configure the HTTP server.
type Options struct {
	Addr            string
	Mode            string // debug | release
	MaxBodyBytes    int64
	ShutdownTimeout time.Duration
}

// New builds the gin engine. db may be nil when no database is configured.
func New(opts Options, dataset DatasetReporter, db HealthChecker) *Server {
	if dataset == nil {
		panic("server: dataset reporter must not be nil")
	}

	if opts.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 5 * time.Second
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	if opts.MaxBodyBytes > 0 {
		r.Use(limitBody(opts.MaxBodyBytes))
	}

	s := &Server{
		Engine:          r,
		Addr:            opts.Addr,
		db:              db,
		dataset:         dataset,
		shutdownTimeout: opts.ShutdownTimeout,
	}

	r.GET("/health", s.healthHandler)

	return s
}

func limitBody(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		}
		c.Next()
	}
}

// healthHandler reports liveness. A loading or failed dataset does not make
// the process unhealthy; it is reported in the body.
func (s *Server) healthHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	dataset := s.dataset.Describe()

	if s.db != nil {
		if err := s.db.PingContext(ctx); err != nil {
			slog.Error("[Server] Health check failed: database unreachable", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"error":   "database unreachable",
				"dataset": dataset.Status,
			})
			return
		}
	}

	body := gin.H{
		"status":  "healthy",
		"dataset": dataset.Status,
	}
	if dataset.DatasetID != "" {
		body["dataset_id"] = dataset.DatasetID
	}
	if s.db != nil {
		body["database"] = "connected"
	}
	c.JSON(http.StatusOK, body)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Addr,
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("[Server] Starting HTTP server", "address", s.Addr)

	go func() {
		<-ctx.Done()
		slog.Info("[Server] Stopping HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("[Server] HTTP server forced to shutdown", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
