package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/gridiron-sim/internal/engine"
	"github.com/stitts-dev/gridiron-sim/internal/models"
	"github.com/stitts-dev/gridiron-sim/internal/services"
	"github.com/stitts-dev/gridiron-sim/internal/websocket"
	"github.com/stitts-dev/gridiron-sim/pkg/config"
)

// SimulationHandler handles game simulation endpoints
type SimulationHandler struct {
	orchestrator *engine.Orchestrator
	batch        *services.BatchSimulator
	store        *services.ResultStore
	cache        *services.CacheService
	wsHub        *websocket.Hub
	config       *config.Config
	logger       *logrus.Logger
}

// NewSimulationHandler creates a new simulation handler
func NewSimulationHandler(
	orchestrator *engine.Orchestrator,
	batch *services.BatchSimulator,
	store *services.ResultStore,
	cache *services.CacheService,
	wsHub *websocket.Hub,
	cfg *config.Config,
	logger *logrus.Logger,
) *SimulationHandler {
	return &SimulationHandler{
		orchestrator: orchestrator,
		batch:        batch,
		store:        store,
		cache:        cache,
		wsHub:        wsHub,
		config:       cfg,
		logger:       logger,
	}
}

// SimulateGame runs one game synchronously and returns the full result
func (h *SimulationHandler) SimulateGame(c *gin.Context) {
	var req models.SimulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "Invalid request format",
			Code:  "INVALID_REQUEST",
			Details: map[string]string{
				"validation_error": err.Error(),
			},
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.config.SimulationTimeout)
	defer cancel()

	result, err := h.orchestrator.SimulateGame(ctx, req, h.wsHub)
	if err != nil {
		h.logger.WithError(err).Error("Simulation failed")
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error: err.Error(),
			Code:  "SIMULATION_FAILED",
		})
		return
	}

	if h.store != nil {
		if err := h.store.SaveResult(ctx, result, req.HomeTeam.TeamID, req.AwayTeam.TeamID); err != nil {
			// Persistence failures degrade, not fail: the caller still gets
			// the result
			h.logger.WithError(err).Warn("Failed to persist game result")
		}
	}
	if err := h.cache.Set(ctx, services.GameResultCacheKey(result.GameID.String()), result); err != nil {
		h.logger.WithError(err).Warn("Failed to cache game result")
	}

	c.JSON(http.StatusOK, result)
}

// SimulateBatch runs a seed sweep of the same matchup
func (h *SimulationHandler) SimulateBatch(c *gin.Context) {
	var req models.BatchSimulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "Invalid request format",
			Code:  "INVALID_REQUEST",
			Details: map[string]string{
				"validation_error": err.Error(),
			},
		})
		return
	}

	// Batches get a generous multiple of the single-game timeout
	timeout := h.config.SimulationTimeout * 10
	ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
	defer cancel()

	start := time.Now()
	result, err := h.batch.Run(ctx, req)
	if err != nil {
		h.logger.WithError(err).Error("Batch simulation failed")
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error: err.Error(),
			Code:  "BATCH_FAILED",
		})
		return
	}

	if err := h.cache.Set(ctx, services.BatchResultCacheKey(result.SimulationID), result); err != nil {
		h.logger.WithError(err).Warn("Failed to cache batch result")
	}

	h.logger.WithFields(logrus.Fields{
		"num_games": result.NumGames,
		"duration":  time.Since(start),
	}).Info("Batch simulation served")

	c.JSON(http.StatusOK, result)
}

// GetGame returns a persisted game with its play-by-play
func (h *SimulationHandler) GetGame(c *gin.Context) {
	idParam := c.Param("id")
	gameID, err := uuid.Parse(idParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "Invalid game ID",
			Code:  "INVALID_GAME_ID",
		})
		return
	}

	ctx := c.Request.Context()

	// Cache first
	var cached models.GameResult
	if err := h.cache.Get(ctx, services.GameResultCacheKey(idParam), &cached); err == nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	if h.store == nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: "Game not found",
			Code:  "GAME_NOT_FOUND",
		})
		return
	}

	record, err := h.store.GetResult(ctx, gameID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: "Game not found",
			Code:  "GAME_NOT_FOUND",
		})
		return
	}
	plays, err := h.store.GetPlays(ctx, gameID)
	if err != nil {
		h.logger.WithError(err).Warn("Failed to load play-by-play")
	}

	c.JSON(http.StatusOK, gin.H{
		"game":  record,
		"plays": plays,
	})
}
