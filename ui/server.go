package ui

import (
	"log"
	"net/http"

	"datadeck/app"
	"datadeck/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Server hosts the analysis endpoint. It shares no mutable state across
// requests, so replicas behind a load balancer need no coordination.
type Server struct {
	cfg     *config.Config
	service *app.PresentationService
	router  *gin.Engine
}

// NewServer wires routes and middleware.
func NewServer(cfg *config.Config, service *app.PresentationService) *Server {
	gin.SetMode(cfg.Server.GinMode)

	s := &Server{
		cfg:     cfg,
		service: service,
		router:  gin.New(),
	}
	s.router.Use(gin.Recovery())
	s.router.Use(requestIDMiddleware())
	s.router.Use(corsMiddleware())
	s.router.MaxMultipartMemory = cfg.Upload.MaxFileSize

	s.router.GET("/api/health", s.handleHealth)
	s.router.POST("/api/analyze", s.handleAnalyze)
	return s
}

// Run blocks serving HTTP on the configured port.
func (s *Server) Run() error {
	addr := ":" + s.cfg.Server.Port
	log.Printf("[Server] listening on %s", addr)
	return s.router.Run(addr)
}

// Router exposes the handler for tests.
func (s *Server) Router() http.Handler { return s.router }

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
