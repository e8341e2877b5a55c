package services

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/gridiron-sim/internal/archetype"
	"github.com/stitts-dev/gridiron-sim/internal/engine"
	"github.com/stitts-dev/gridiron-sim/internal/models"
)

func batchTeam(id string, rating float64) models.TeamConfig {
	return models.TeamConfig{
		TeamID:             id,
		Name:               id,
		OffensiveArchetype: "balanced",
		DefensiveArchetype: "balanced",
		Ratings: models.TeamRatings{
			QBAccuracy: rating, QBArmStrength: rating, QBAwareness: rating,
			WRRouteRunning: rating, WRCatching: rating, WRSpeed: rating,
			RBVision: rating, RBPower: rating, RBSpeed: rating, RBCarrying: rating, RBPassProtect: rating,
			OLPassBlock: rating, OLRunBlock: rating,
			DLPassRush: rating, DLRunDefense: rating,
			LBCoverage: rating, LBRunDefense: rating,
			DBCoverage: rating, DBPress: rating, DBBallSkills: rating,
			KickerLeg: rating, KickerAccuracy: rating, PunterLeg: rating,
		},
	}
}

func batchSimulator(t *testing.T, maxGames int) *BatchSimulator {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	orchestrator := engine.NewOrchestrator(archetype.Default(), log)
	return NewBatchSimulator(orchestrator, 2, maxGames, log)
}

func TestBatchRun_AggregatesOutcomes(t *testing.T) {
	s := batchSimulator(t, 100)

	result, err := s.Run(context.Background(), models.BatchSimulationRequest{
		HomeTeam: batchTeam("HOME", 78),
		AwayTeam: batchTeam("AWAY", 72),
		NumGames: 8,
		BaseSeed: 100,
		Options:  models.DefaultSimulationOptions(),
	})
	require.NoError(t, err)

	assert.Equal(t, 8, result.NumGames)
	assert.Equal(t, 8, result.Wins["HOME"]+result.Wins["AWAY"]+result.Ties)
	assert.Greater(t, result.MeanScores["HOME"], 0.0)
	assert.Greater(t, result.MeanTotalPlays, 40.0)
	assert.GreaterOrEqual(t, result.ScoreStdDev["HOME"], 0.0)
	assert.NotEmpty(t, result.SimulationID)
}

func TestBatchRun_DeterministicForSameBaseSeed(t *testing.T) {
	s := batchSimulator(t, 100)

	req := models.BatchSimulationRequest{
		HomeTeam: batchTeam("HOME", 75),
		AwayTeam: batchTeam("AWAY", 75),
		NumGames: 4,
		BaseSeed: 2000,
		Options:  models.DefaultSimulationOptions(),
	}

	first, err := s.Run(context.Background(), req)
	require.NoError(t, err)
	second, err := s.Run(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.Wins, second.Wins)
	assert.Equal(t, first.MeanScores, second.MeanScores)
	assert.Equal(t, first.MeanTotalPlays, second.MeanTotalPlays)
}

func TestBatchRun_RejectsBadCounts(t *testing.T) {
	s := batchSimulator(t, 10)

	req := models.BatchSimulationRequest{
		HomeTeam: batchTeam("HOME", 75),
		AwayTeam: batchTeam("AWAY", 75),
		Options:  models.DefaultSimulationOptions(),
	}

	req.NumGames = 0
	_, err := s.Run(context.Background(), req)
	require.Error(t, err)

	req.NumGames = 11
	_, err = s.Run(context.Background(), req)
	require.Error(t, err)
}

func TestBatchRun_PropagatesWorkerErrors(t *testing.T) {
	s := batchSimulator(t, 100)

	req := models.BatchSimulationRequest{
		HomeTeam: batchTeam("", 75), // missing team id fails per-game validation
		AwayTeam: batchTeam("AWAY", 75),
		NumGames: 4,
		BaseSeed: 1,
		Options:  models.DefaultSimulationOptions(),
	}

	_, err := s.Run(context.Background(), req)
	require.Error(t, err)
}
