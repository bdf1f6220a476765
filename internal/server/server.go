// Package server assembles the gin router and HTTP server.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pawclick/clicker-api/internal/config"
	"github.com/pawclick/clicker-api/internal/handlers"
	"github.com/pawclick/clicker-api/internal/logger"
	"go.uber.org/zap"
)

// New builds the HTTP server around a configured router.
func New(cfg *config.Config, common *handlers.CommonServices) *http.Server {
	return &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           NewRouter(cfg, common),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// NewRouter wires middleware and routes.
func NewRouter(cfg *config.Config, common *handlers.CommonServices) *gin.Engine {
	if cfg.Stage == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(configureCORS(cfg))
	router.Use(requestIDMiddleware())
	router.Use(requestLoggingMiddleware())

	sessionHandler := handlers.NewSessionHandler(common)
	gameHandler := handlers.NewGameHandler(common)

	router.GET("/health", common.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/wallet/connect", sessionHandler.ConnectWallet)
		v1.POST("/wallet/disconnect", sessionHandler.DisconnectWallet)

		v1.GET("/session", sessionHandler.GetSession)
		v1.POST("/session", sessionHandler.CreateSession)
		v1.DELETE("/session", sessionHandler.RevokeSession)

		v1.POST("/click", gameHandler.Click)
		v1.POST("/reset", gameHandler.Reset)

		v1.GET("/stats", gameHandler.Stats)
		v1.GET("/leaderboard", gameHandler.Leaderboard)
		v1.GET("/rank", gameHandler.Rank)
	}

	return router
}

// configureCORS returns a configured CORS middleware
func configureCORS(cfg *config.Config) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"}
	return cors.New(corsConfig)
}

// requestIDMiddleware tags every request for log correlation.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("requestID", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

func requestLoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		requestID, _ := c.Get("requestID")
		logger.Info("Request handled",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.Any("request_id", requestID),
		)
	}
}

// Shutdown drains the server with a bounded grace period.
func Shutdown(srv *http.Server, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return srv.Shutdown(ctx)
}
