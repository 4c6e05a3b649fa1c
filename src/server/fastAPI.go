package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"progress-report-bot/src/interfaces"
	"progress-report-bot/src/logger"
	"progress-report-bot/src/models"

	"github.com/gin-gonic/gin"
)

const LivenessText = "Progress Report Bot is running."

// -----------------------------------------------------------------------------
// OpsServer serves liveness, health and metrics. It never touches the gate
// beyond reading it.
// -----------------------------------------------------------------------------

type OpsServer struct {
	Config  *models.MConfig
	Logger  *logger.Logger
	engine  *gin.Engine
	gate    interfaces.IGateStatus
	metrics http.Handler
	started time.Time
	httpSrv *http.Server
}

// -----------------------------------------------------------------------------
// Constructor
// -----------------------------------------------------------------------------

func NewOpsServer(cfg *models.MConfig, gate interfaces.IGateStatus, metrics http.Handler, log *logger.Logger) *OpsServer {
	if cfg.LogLevel != "DEBUG" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &OpsServer{
		Config:  cfg,
		Logger:  log,
		engine:  engine,
		gate:    gate,
		metrics: metrics,
		started: time.Now(),
	}
	s.httpSrv = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	s.setupRoutes()
	return s
}

// -----------------------------------------------------------------------------
// Route Setup
// -----------------------------------------------------------------------------

func (s *OpsServer) setupRoutes() {
	s.engine.GET("/", s.getLiveness)
	s.engine.GET("/api/health", s.getHealth)
	if s.metrics != nil {
		s.engine.GET("/metrics", gin.WrapH(s.metrics))
	}
}

// Handler exposes the router, mainly for tests.
func (s *OpsServer) Handler() http.Handler {
	return s.engine
}

// -----------------------------------------------------------------------------
// Server Lifecycle
// -----------------------------------------------------------------------------

// Start listens on the configured address and blocks serving until Stop is
// called. A Stop that runs first makes Start return nil without serving.
func (s *OpsServer) Start() error {
	ln, err := net.Listen("tcp", s.httpSrv.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// -----------------------------------------------------------------------------

// Serve serves on ln until Stop is called. ln is closed on return.
func (s *OpsServer) Serve(ln net.Listener) error {
	s.Logger.Info("Web server listening on %s", ln.Addr())

	if err := s.httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// -----------------------------------------------------------------------------

func (s *OpsServer) Stop(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

// -----------------------------------------------------------------------------
// Route Handlers
// -----------------------------------------------------------------------------

func (s *OpsServer) getLiveness(c *gin.Context) {
	c.String(http.StatusOK, LivenessText)
}

// -----------------------------------------------------------------------------

func (s *OpsServer) getHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"busy":           s.gate.Busy(),
		"render_mode":    s.Config.StatsAPI.RenderMode,
		"uptime_seconds": int64(time.Since(s.started).Seconds()),
	})
}
