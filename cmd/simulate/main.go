package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/gridiron-sim/internal/archetype"
	"github.com/stitts-dev/gridiron-sim/internal/engine"
	"github.com/stitts-dev/gridiron-sim/internal/models"
	"github.com/stitts-dev/gridiron-sim/internal/services"
	"github.com/stitts-dev/gridiron-sim/pkg/logger"
)

// matchupFile is the on-disk input: two team configs
type matchupFile struct {
	HomeTeam models.TeamConfig `json:"home_team"`
	AwayTeam models.TeamConfig `json:"away_team"`
}

func main() {
	var (
		matchupPath  = flag.String("matchup", "", "path to a JSON file with home_team and away_team configs")
		numGames     = flag.Int("games", 1, "number of games to simulate")
		seed         = flag.Int64("seed", 1, "base seed; game i uses seed+i")
		workers      = flag.Int("workers", runtime.NumCPU(), "worker pool size for batch runs")
		archetypeDir = flag.String("archetypes", "", "directory holding archetypes.yaml overrides")
		playByPlay   = flag.Bool("pbp", false, "include play-by-play in single-game output")
		logLevel     = flag.String("log-level", "warn", "log level")
	)
	flag.Parse()

	log := logger.InitLogger(*logLevel, false)

	if *matchupPath == "" {
		fmt.Fprintln(os.Stderr, "usage: simulate -matchup teams.json [-games N] [-seed N]")
		os.Exit(2)
	}

	data, err := os.ReadFile(*matchupPath)
	if err != nil {
		log.Fatalf("Failed to read matchup file: %v", err)
	}
	var matchup matchupFile
	if err := json.Unmarshal(data, &matchup); err != nil {
		log.Fatalf("Failed to parse matchup file: %v", err)
	}

	archetypes, err := archetype.Load(*archetypeDir, log)
	if err != nil {
		log.Fatalf("Failed to load archetype config: %v", err)
	}
	orchestrator := engine.NewOrchestrator(archetypes, log)

	opts := models.DefaultSimulationOptions()
	opts.Seed = *seed
	opts.IncludePlayByPlay = *playByPlay

	ctx := context.Background()

	if *numGames <= 1 {
		result, err := orchestrator.SimulateGame(ctx, models.SimulationRequest{
			HomeTeam: matchup.HomeTeam,
			AwayTeam: matchup.AwayTeam,
			Options:  opts,
		})
		if err != nil {
			log.Fatalf("Simulation failed: %v", err)
		}
		emit(log, result)
		return
	}

	batch := services.NewBatchSimulator(orchestrator, *workers, *numGames, log)
	result, err := batch.Run(ctx, models.BatchSimulationRequest{
		HomeTeam: matchup.HomeTeam,
		AwayTeam: matchup.AwayTeam,
		NumGames: *numGames,
		BaseSeed: *seed,
		Options:  opts,
	})
	if err != nil {
		log.Fatalf("Batch simulation failed: %v", err)
	}
	emit(log, result)
}

func emit(log *logrus.Logger, v interface{}) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal output: %v", err)
	}
	fmt.Println(string(out))
}
