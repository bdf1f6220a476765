// Package handlers exposes the game and session operations over HTTP.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pawclick/clicker-api/internal/game"
	"github.com/pawclick/clicker-api/internal/logger"
	"go.uber.org/zap"
)

// CommonServices holds the dependencies shared across handlers.
type CommonServices struct {
	facade *game.Facade
	logger *zap.Logger
}

// CommonServicesConfig contains all dependencies needed to create CommonServices.
type CommonServicesConfig struct {
	Facade *game.Facade
	Logger *zap.Logger
}

// NewCommonServices creates a new instance of CommonServices.
func NewCommonServices(config CommonServicesConfig) *CommonServices {
	if config.Logger == nil {
		config.Logger = logger.Log
	}
	return &CommonServices{
		facade: config.Facade,
		logger: config.Logger,
	}
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// SuccessResponse represents a standard success response
type SuccessResponse struct {
	Message string `json:"message"`
}

// sendError logs the failure with request context and writes the error
// envelope.
func sendError(c *gin.Context, statusCode int, message string, err error) {
	requestID := ""
	if id, exists := c.Get("requestID"); exists {
		requestID, _ = id.(string)
	}

	logger.Error(message,
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.String("request_id", requestID),
	)

	c.JSON(statusCode, ErrorResponse{
		Error:     message,
		RequestID: requestID,
	})
}

// sendSuccess is a helper function that sends a success response
func sendSuccess(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// sendSuccessMessage sends a plain message envelope
func sendSuccessMessage(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, SuccessResponse{Message: message})
}

// HealthCheck reports liveness.
func (s *CommonServices) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
