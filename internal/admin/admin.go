// Package admin implements the optional HTTP admin surface from
// spec.md §13: a stats endpoint, a health check, and a forced flush.
// Construction and graceful shutdown are grounded on the teacher's
// internal/server.Server (gin.New, gin.ReleaseMode, http.Server with
// Shutdown(ctx) for graceful stop); the rate limiting, rule engine,
// and IP-filtering middleware it wraps around those concerns have no
// home here since the admin surface has no untrusted traffic model.
package admin

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ironlog/ironlog/internal/applog"
	"github.com/ironlog/ironlog/internal/engine"
)

// Engine is the subset of *engine.Engine the admin surface depends on.
type Engine interface {
	Stats() engine.Stats
	Flush() error
}

// Server exposes GET /stats, GET /healthz and POST /flush over the
// configured engine.
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	eng        Engine
	applog     *applog.Logger
}

// Config configures the admin HTTP listener.
type Config struct {
	Host string
	Port int
}

// NewServer builds a Server wrapping eng. Panics if eng is nil, matching
// the teacher's NewServer dependency validation.
func NewServer(eng Engine, cfg Config) *Server {
	if eng == nil {
		panic("admin: Engine dependency cannot be nil")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	s := &Server{
		router: router,
		eng:    eng,
		applog: applog.Get(),
	}

	router.GET("/healthz", s.handleHealth)
	router.GET("/stats", s.handleStats)
	router.POST("/flush", s.handleFlush)

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return s
}

// Router exposes the underlying gin.Engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.eng.Stats())
}

func (s *Server) handleFlush(c *gin.Context) {
	if err := s.eng.Flush(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "flushed"})
}

// Start begins serving and blocks until the listener stops.
func (s *Server) Start() error {
	s.applog.Info("Starting admin server on %s", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
