package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pawclick/clicker-api/internal/executor"
	"github.com/pawclick/clicker-api/internal/game"
	"github.com/pawclick/clicker-api/internal/session"
)

// GameHandler serves the click-game endpoints.
type GameHandler struct {
	common *CommonServices
}

// NewGameHandler creates a new GameHandler.
func NewGameHandler(common *CommonServices) *GameHandler {
	return &GameHandler{common: common}
}

// Click submits a click transaction. With ?wait=true the response is held
// until the transaction is mined.
func (h *GameHandler) Click(c *gin.Context) {
	handle, err := h.common.facade.Click(c.Request.Context())
	if err != nil {
		h.sendExecutionError(c, "Click failed", err)
		return
	}
	h.respondWithHandle(c, handle)
}

// Reset clears the leaderboard; contract-owner only.
func (h *GameHandler) Reset(c *gin.Context) {
	handle, err := h.common.facade.Reset(c.Request.Context())
	if err != nil {
		if errors.Is(err, game.ErrNotContractOwner) {
			sendError(c, http.StatusForbidden, "Only the contract owner can reset", err)
			return
		}
		h.sendExecutionError(c, "Reset failed", err)
		return
	}
	h.respondWithHandle(c, handle)
}

func (h *GameHandler) respondWithHandle(c *gin.Context, handle *executor.TransactionHandle) {
	if c.Query("wait") == "true" {
		if err := h.common.facade.Confirm(c.Request.Context(), handle); err != nil {
			sendError(c, http.StatusBadGateway, "Failed to confirm transaction", err)
			return
		}
		sendSuccess(c, http.StatusOK, handle)
		return
	}
	sendSuccess(c, http.StatusAccepted, handle)
}

func (h *GameHandler) sendExecutionError(c *gin.Context, message string, err error) {
	switch {
	case errors.Is(err, session.ErrNoValidSession):
		sendError(c, http.StatusConflict, "No valid session", err)
	case errors.Is(err, session.ErrExecutionFailed):
		sendError(c, http.StatusBadGateway, message, err)
	default:
		sendError(c, http.StatusInternalServerError, message, err)
	}
}

// Stats reports the cached click counters. ?refresh=true re-reads the
// chain first.
func (h *GameHandler) Stats(c *gin.Context) {
	if c.Query("refresh") == "true" {
		if err := h.common.facade.RefreshTotals(c.Request.Context()); err != nil {
			sendError(c, http.StatusBadGateway, "Failed to read counters", err)
			return
		}
	}
	sendSuccess(c, http.StatusOK, h.common.facade.Totals())
}

// Leaderboard reads the ranked top players.
func (h *GameHandler) Leaderboard(c *gin.Context) {
	entries, err := h.common.facade.Leaderboard(c.Request.Context())
	if err != nil {
		sendError(c, http.StatusBadGateway, "Failed to read leaderboard", err)
		return
	}
	sendSuccess(c, http.StatusOK, gin.H{"entries": entries})
}

// Rank reports the connected player's rank and score.
func (h *GameHandler) Rank(c *gin.Context) {
	rank, score, totalUsers, err := h.common.facade.Rank(c.Request.Context())
	if err != nil {
		if errors.Is(err, game.ErrNoWallet) {
			sendError(c, http.StatusConflict, "No wallet connected", err)
			return
		}
		sendError(c, http.StatusBadGateway, "Failed to read rank", err)
		return
	}
	sendSuccess(c, http.StatusOK, gin.H{
		"rank":       rank.String(),
		"score":      score.String(),
		"totalUsers": totalUsers.String(),
	})
}
