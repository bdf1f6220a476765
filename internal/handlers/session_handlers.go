package handlers

import (
	"errors"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/pawclick/clicker-api/internal/session"
)

// SessionHandler manages the wallet connection and session lifecycle
// endpoints.
type SessionHandler struct {
	common *CommonServices
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(common *CommonServices) *SessionHandler {
	return &SessionHandler{common: common}
}

// ConnectWalletRequest is the body for POST /wallet/connect.
type ConnectWalletRequest struct {
	Address string `json:"address" binding:"required"`
}

// ConnectWallet switches the active wallet. Any session for the previous
// wallet is torn down; a cached session for the new one is restored.
func (h *SessionHandler) ConnectWallet(c *gin.Context) {
	var req ConnectWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if !common.IsHexAddress(req.Address) {
		sendError(c, http.StatusBadRequest, "Invalid wallet address", nil)
		return
	}

	if err := h.common.facade.Connect(c.Request.Context(), common.HexToAddress(req.Address)); err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to connect wallet", err)
		return
	}
	sendSuccess(c, http.StatusOK, h.common.facade.Session())
}

// DisconnectWallet clears the active wallet and its session state.
func (h *SessionHandler) DisconnectWallet(c *gin.Context) {
	if err := h.common.facade.Disconnect(c.Request.Context()); err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to disconnect wallet", err)
		return
	}
	sendSuccessMessage(c, http.StatusOK, "wallet disconnected")
}

// GetSession reports the current session snapshot.
func (h *SessionHandler) GetSession(c *gin.Context) {
	sendSuccess(c, http.StatusOK, h.common.facade.Session())
}

// CreateSession establishes a new delegated session for the connected
// wallet.
func (h *SessionHandler) CreateSession(c *gin.Context) {
	rec, err := h.common.facade.CreateSession(c.Request.Context())
	switch {
	case errors.Is(err, session.ErrCreationInProgress):
		sendError(c, http.StatusConflict, "Session creation already in progress", err)
		return
	case errors.Is(err, session.ErrCreationFailed):
		sendError(c, http.StatusBadGateway, "Session creation failed", err)
		return
	case err != nil:
		sendError(c, http.StatusInternalServerError, "Session creation failed", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"sessionHash": rec.PolicyHash,
		"expiresAt":   rec.ExpiresAtMillis,
		"createdAt":   rec.CreatedAtMillis,
	})
}

// RevokeSession revokes the active session. Local state is cleared even
// when the wallet provider rejects the revocation; that case still reports
// the upstream failure.
func (h *SessionHandler) RevokeSession(c *gin.Context) {
	err := h.common.facade.RevokeSession(c.Request.Context())
	if errors.Is(err, session.ErrRevocationFailed) {
		sendError(c, http.StatusBadGateway, "Provider revocation failed; local session cleared", err)
		return
	}
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to revoke session", err)
		return
	}
	sendSuccessMessage(c, http.StatusOK, "session revoked")
}
