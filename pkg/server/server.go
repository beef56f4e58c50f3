package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/telekom/logmail/pkg/metrics"
	"github.com/telekom/logmail/pkg/version"
)

const readHeaderTimeout = 10 * time.Second

// ReadinessFunc reports whether the notification pipeline is live.
type ReadinessFunc func() bool

type Server struct {
	gin   *gin.Engine
	http  *http.Server
	log   *zap.SugaredLogger
	ready ReadinessFunc
}

func NewServer(log *zap.Logger, addr string, debug bool, ready ReadinessFunc) *Server {
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}
	if ready == nil {
		ready = func() bool { return true }
	}

	engine := gin.New()
	engine.Use(
		ginzap.Ginzap(log, time.RFC3339, true),
		ginzap.RecoveryWithZap(log, true),
	)

	s := &Server{
		gin:   engine,
		log:   log.Sugar().Named("server"),
		ready: ready,
	}
	s.http = &http.Server{
		Addr:              addr,
		Handler:           engine,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	engine.GET("/metrics", gin.WrapH(metrics.MetricsHandler()))
	engine.GET("/healthz", s.healthz)
	engine.GET("/readyz", s.readyz)
	engine.GET("/version", s.version)

	return s
}

// Handler returns the HTTP handler, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.gin
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	s.log.Infow("Starting HTTP server", "address", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Stopping HTTP server")
	return s.http.Shutdown(ctx)
}

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) readyz(c *gin.Context) {
	if !s.ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "mail handler not installed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func (s *Server) version(c *gin.Context) {
	c.JSON(http.StatusOK, version.GetBuildInfo())
}
