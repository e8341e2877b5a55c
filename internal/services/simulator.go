package services

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/stitts-dev/gridiron-sim/internal/engine"
	"github.com/stitts-dev/gridiron-sim/internal/models"
	"github.com/stitts-dev/gridiron-sim/pkg/logger"
)

// BatchSimulator fans a seed sweep across a worker pool and aggregates the
// distribution of outcomes.
type BatchSimulator struct {
	orchestrator *engine.Orchestrator
	workers      int
	maxGames     int
	logger       *logrus.Logger
}

func NewBatchSimulator(orchestrator *engine.Orchestrator, workers, maxGames int, log *logrus.Logger) *BatchSimulator {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if maxGames <= 0 {
		maxGames = 10000
	}
	return &BatchSimulator{
		orchestrator: orchestrator,
		workers:      workers,
		maxGames:     maxGames,
		logger:       log,
	}
}

// Run simulates the same matchup across sequential seeds. Games are
// independent, so workers share nothing but the job channel.
func (s *BatchSimulator) Run(ctx context.Context, req models.BatchSimulationRequest) (*models.BatchSimulationResult, error) {
	if req.NumGames <= 0 {
		return nil, fmt.Errorf("num_games must be positive, got %d", req.NumGames)
	}
	if req.NumGames > s.maxGames {
		return nil, fmt.Errorf("num_games %d exceeds limit %d", req.NumGames, s.maxGames)
	}

	simulationID := uuid.New().String()
	log := logger.WithSimulation(simulationID, req.NumGames)
	start := time.Now()

	seeds := make(chan int64, req.NumGames)
	results := make(chan *models.GameResult, req.NumGames)
	errs := make(chan error, s.workers)

	var wg sync.WaitGroup
	for w := 0; w < s.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for seed := range seeds {
				opts := req.Options
				opts.Seed = seed
				// Per-play detail is dropped in batch mode to keep memory flat
				opts.IncludePlayByPlay = false

				result, err := s.orchestrator.SimulateGame(ctx, models.SimulationRequest{
					HomeTeam: req.HomeTeam,
					AwayTeam: req.AwayTeam,
					Options:  opts,
				})
				if err != nil {
					select {
					case errs <- err:
					default:
					}
					return
				}
				results <- result
			}
		}()
	}

	for i := 0; i < req.NumGames; i++ {
		seeds <- req.BaseSeed + int64(i)
	}
	close(seeds)

	wg.Wait()
	close(results)
	close(errs)

	if err := <-errs; err != nil {
		return nil, fmt.Errorf("batch simulation failed: %w", err)
	}

	homeID := req.HomeTeam.TeamID
	awayID := req.AwayTeam.TeamID

	agg := &models.BatchSimulationResult{
		SimulationID: simulationID,
		Wins:         map[string]int{homeID: 0, awayID: 0},
		MeanScores:   map[string]float64{},
		ScoreStdDev:  map[string]float64{},
		CreatedAt:    time.Now().UTC(),
	}

	homeScores := make([]float64, 0, req.NumGames)
	awayScores := make([]float64, 0, req.NumGames)
	totalPlays := make([]float64, 0, req.NumGames)

	for result := range results {
		agg.NumGames++
		homeScores = append(homeScores, float64(result.FinalScores[homeID]))
		awayScores = append(awayScores, float64(result.FinalScores[awayID]))
		totalPlays = append(totalPlays, float64(result.TotalPlays))
		switch result.Winner {
		case homeID:
			agg.Wins[homeID]++
		case awayID:
			agg.Wins[awayID]++
		default:
			agg.Ties++
		}
		if result.Overtime {
			agg.OvertimeGames++
		}
	}

	agg.MeanScores[homeID] = stat.Mean(homeScores, nil)
	agg.MeanScores[awayID] = stat.Mean(awayScores, nil)
	agg.ScoreStdDev[homeID] = stat.StdDev(homeScores, nil)
	agg.ScoreStdDev[awayID] = stat.StdDev(awayScores, nil)
	agg.MeanTotalPlays = stat.Mean(totalPlays, nil)
	agg.ExecutionTime = time.Since(start)

	log.WithFields(logrus.Fields{
		"home_wins": agg.Wins[homeID],
		"away_wins": agg.Wins[awayID],
		"ties":      agg.Ties,
		"duration":  agg.ExecutionTime,
	}).Info("Batch simulation complete")

	return agg, nil
}
