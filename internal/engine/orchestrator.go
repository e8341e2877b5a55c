package engine

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/gridiron-sim/internal/archetype"
	"github.com/stitts-dev/gridiron-sim/internal/engine/clockstrategy"
	"github.com/stitts-dev/gridiron-sim/internal/engine/matchup"
	"github.com/stitts-dev/gridiron-sim/internal/engine/personnel"
	"github.com/stitts-dev/gridiron-sim/internal/engine/playcall"
	"github.com/stitts-dev/gridiron-sim/internal/engine/statemanager"
	"github.com/stitts-dev/gridiron-sim/internal/engine/transition"
	"github.com/stitts-dev/gridiron-sim/internal/models"
	"github.com/stitts-dev/gridiron-sim/pkg/logger"
)

// overtime allots two timeouts per team
const overtimeTimeouts = 2

// Orchestrator drives one game from coin toss to final whistle. All
// randomness flows through per-play local sources, so the same seed and
// matchup always replays the same game.
type Orchestrator struct {
	cfg      *archetype.Config
	decider  *playcall.Decider
	matchup  *matchup.Engine
	registry *clockstrategy.Registry
	logger   *logrus.Logger
}

// NewOrchestrator wires the engine components around a validated archetype
// configuration
func NewOrchestrator(cfg *archetype.Config, log *logrus.Logger) *Orchestrator {
	return &Orchestrator{
		cfg:      cfg,
		decider:  playcall.NewDecider(cfg, log),
		matchup:  matchup.NewEngine(cfg, log),
		registry: clockstrategy.NewRegistry(cfg, log),
		logger:   log,
	}
}

// SimulateGame runs one full game. Extra sinks (websocket broadcasters,
// persistence writers) receive every audit entry as it is applied. The
// context is checked between plays; cancellation aborts the game.
func (o *Orchestrator) SimulateGame(ctx context.Context, req models.SimulationRequest, extraSinks ...statemanager.AuditSink) (*models.GameResult, error) {
	if err := req.HomeTeam.Validate(); err != nil {
		return nil, fmt.Errorf("home team invalid: %w", err)
	}
	if err := req.AwayTeam.Validate(); err != nil {
		return nil, fmt.Errorf("away team invalid: %w", err)
	}

	opts := req.Options
	if opts.MaxPlays <= 0 {
		opts.MaxPlays = models.DefaultSimulationOptions().MaxPlays
	}
	if opts.KickoffReturnSpot <= 0 || opts.KickoffReturnSpot >= 100 {
		opts.KickoffReturnSpot = models.DefaultSimulationOptions().KickoffReturnSpot
	}

	gameID := uuid.New()
	log := logger.WithGameContext(gameID.String(), req.HomeTeam.TeamID, req.AwayTeam.TeamID)

	// Opening coin toss
	tossRNG := playRNG(opts.Seed, 0)
	receiver := req.HomeTeam.TeamID
	if tossRNG.Float64() < 0.5 {
		receiver = req.AwayTeam.TeamID
	}
	openingReceiver := receiver

	state := models.NewGameState(gameID, req.HomeTeam.TeamID, req.AwayTeam.TeamID, receiver)

	coordinator := transition.NewCoordinator(o.registry, opts.KickoffReturnSpot)
	manager := statemanager.NewManager(coordinator, log)

	var playByPlay []*models.AuditEntry
	violationCodes := make(map[string]bool)
	manager.AddSink(statemanager.AuditFunc(func(entry *models.AuditEntry) {
		if opts.IncludePlayByPlay {
			playByPlay = append(playByPlay, entry)
		}
		for _, v := range entry.Violations {
			violationCodes[v.Code] = true
		}
	}))

	stats := newStatsAccumulator(req.HomeTeam.TeamID, req.AwayTeam.TeamID)
	manager.AddSink(stats)
	for _, sink := range extraSinks {
		manager.AddSink(sink)
	}

	// Fatigue is game-local, so each game gets its own selector
	selector := personnel.NewSelector(o.logger)

	teams := map[string]models.TeamConfig{
		req.HomeTeam.TeamID: req.HomeTeam,
		req.AwayTeam.TeamID: req.AwayTeam,
	}

	totalSeconds := 0
	gameOver := false

	for !gameOver && state.PlayNumber < opts.MaxPlays {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("simulation cancelled at play %d: %w", state.PlayNumber, err)
		}

		offense := teams[state.Field.PossessionTeamID]
		defense := teams[state.Field.DefensiveTeamID]
		rng := playRNG(opts.Seed, state.PlayNumber+1)

		gctx := o.buildContext(state, offense, defense)

		playType, kickContext := o.choosePlay(state, offense, gctx, rng)
		pkg := selector.Select(offense, defense, playType, state.Field, gctx, rng)

		result := o.matchup.Resolve(matchup.PlayRequest{
			PlayType:    playType,
			KickContext: kickContext,
			Personnel:   pkg,
			Field:       state.Field,
			Context:     gctx,
		}, rng)

		entry, err := manager.ProcessPlay(result, state, gctx)
		if err != nil {
			return nil, fmt.Errorf("game halted at play %d: %w", state.PlayNumber+1, err)
		}
		selector.ApplyFatigue(pkg, playType)
		totalSeconds += entry.TimeElapsed

		switch {
		case entry.Transition.Clock.HalfEnded:
			o.beginSecondHalf(state, openingReceiver)
		case entry.Transition.Clock.RegulationEnded:
			gameOver = o.endPeriod(state, opts, tossRNG, log)
		case state.Clock.Overtime && entry.Transition.Score.ScoreOccurred:
			// Sudden death: any overtime score ends it
			gameOver = true
		}
	}

	if state.PlayNumber >= opts.MaxPlays {
		log.WithField("max_plays", opts.MaxPlays).Warn("Play cap reached, ending game")
	}

	result := &models.GameResult{
		GameID: gameID,
		FinalScores: map[string]int{
			req.HomeTeam.TeamID: state.Scoreboard[req.HomeTeam.TeamID],
			req.AwayTeam.TeamID: state.Scoreboard[req.AwayTeam.TeamID],
		},
		TotalPlays:          state.PlayNumber,
		TotalSeconds:        totalSeconds,
		Overtime:            state.Clock.Overtime,
		HadValidationErrors: len(violationCodes) > 0,
		PlayByPlay:          playByPlay,
		TeamStats:           stats.Stats(),
		Seed:                opts.Seed,
		CompletedAt:         time.Now().UTC(),
	}
	for code := range violationCodes {
		result.ViolationCodes = append(result.ViolationCodes, code)
	}

	home := state.Scoreboard[req.HomeTeam.TeamID]
	away := state.Scoreboard[req.AwayTeam.TeamID]
	switch {
	case home > away:
		result.Winner = req.HomeTeam.TeamID
	case away > home:
		result.Winner = req.AwayTeam.TeamID
	}

	log.WithFields(logrus.Fields{
		"home_score":  home,
		"away_score":  away,
		"total_plays": result.TotalPlays,
		"overtime":    result.Overtime,
	}).Info("Game complete")

	return result, nil
}

// choosePlay picks the next snap. Pending kickoffs and conversions preempt
// the play caller.
func (o *Orchestrator) choosePlay(state *models.GameState, offense models.TeamConfig, gctx models.GameContext, rng *rand.Rand) (models.PlayType, models.KickContext) {
	if state.KickoffPending {
		return models.PlayTypeKickoff, models.KickContextKickoff
	}
	if state.ConversionPending {
		if o.goForTwo(offense, state) {
			return models.PlayTypeTwoPoint, models.KickContextTwoPoint
		}
		return models.PlayTypeExtraPoint, models.KickContextExtraPoint
	}

	playType := o.decider.Decide(offense.OffensiveArchetype, gctx.DefensiveArchetype, state.Field, gctx, rng)
	switch playType {
	case models.PlayTypeFieldGoal:
		return playType, models.KickContextFieldGoal
	default:
		return playType, models.KickContextNone
	}
}

// goForTwo is the conversion chart: deficits that a successful two-point
// try turns into a tie or one-score game. Aggressive coaches consult the
// chart from the second half on, everyone else in the fourth quarter.
func (o *Orchestrator) goForTwo(offense models.TeamConfig, state *models.GameState) bool {
	chart := map[int]bool{-2: true, -5: true, -10: true, -16: true, -18: true, 1: true, 5: true}
	diff := state.ScoreDifferential()
	if !chart[diff] {
		return false
	}
	_, resolved := o.cfg.ResolveCoach(offense.OffensiveArchetype)
	if resolved == archetype.Aggressive {
		return state.Clock.Quarter >= 3
	}
	return state.Clock.Quarter >= models.RegulationQuarters
}

// buildContext assembles the situational snapshot handed to the play
// caller, personnel selector and clock strategies
func (o *Orchestrator) buildContext(state *models.GameState, offense, defense models.TeamConfig) models.GameContext {
	coach, _ := o.cfg.ResolveCoach(offense.OffensiveArchetype)
	diff := state.ScoreDifferential()

	noHuddle := false
	if diff < 0 &&
		(state.Clock.Quarter == 2 || state.Clock.Quarter >= models.RegulationQuarters) &&
		state.Clock.SecondsRemaining <= coach.UrgencyThreshold {
		noHuddle = true
	}
	// High-tempo offenses hurry up whenever the fourth quarter is close
	if coach.TempoPreference >= 0.8 && diff <= 0 &&
		state.Clock.Quarter >= models.RegulationQuarters && state.Clock.SecondsRemaining <= 300 {
		noHuddle = true
	}

	return models.GameContext{
		OffensiveArchetype: offense.OffensiveArchetype,
		DefensiveArchetype: defense.DefensiveArchetype,
		Quarter:            state.Clock.Quarter,
		SecondsRemaining:   state.Clock.SecondsRemaining,
		ScoreDifferential:  diff,
		Down:               state.Field.Down,
		YardsToGo:          state.Field.YardsToGo,
		FieldPosition:      state.Field.FieldPosition,
		NoHuddle:           noHuddle,
	}
}

// beginSecondHalf resets timeouts and schedules the kickoff to the team
// that kicked off to open the game
func (o *Orchestrator) beginSecondHalf(state *models.GameState, openingReceiver string) {
	receiver := state.Opponent(openingReceiver)
	kicking := openingReceiver

	state.Clock.TimeoutsRemaining[state.HomeTeamID] = models.TimeoutsPerHalf
	state.Clock.TimeoutsRemaining[state.AwayTeamID] = models.TimeoutsPerHalf

	state.Field = models.FieldState{
		FieldPosition:    35,
		Down:             1,
		YardsToGo:        10,
		PossessionTeamID: kicking,
		DefensiveTeamID:  receiver,
	}
	state.Possession = kicking
	state.KickoffPending = true
	state.KickoffReceiver = receiver
	state.ConversionPending = false
	state.SafetyKickPending = false
}

// endPeriod handles regulation or overtime expiry. Returns true when the
// game is over.
func (o *Orchestrator) endPeriod(state *models.GameState, opts models.SimulationOptions, tossRNG *rand.Rand, log *logrus.Entry) bool {
	home := state.Scoreboard[state.HomeTeamID]
	away := state.Scoreboard[state.AwayTeamID]

	if state.Clock.Overtime {
		return true
	}
	if home != away || !opts.OvertimeEnabled {
		return true
	}

	// Fresh coin toss for the overtime kickoff
	receiver := state.HomeTeamID
	if tossRNG.Float64() < 0.5 {
		receiver = state.AwayTeamID
	}
	kicking := state.Opponent(receiver)

	state.Clock.Overtime = true
	state.Clock.Quarter = models.OvertimeQuarter
	state.Clock.SecondsRemaining = models.SecondsPerOvertime
	state.Clock.TimeoutsRemaining[state.HomeTeamID] = overtimeTimeouts
	state.Clock.TimeoutsRemaining[state.AwayTeamID] = overtimeTimeouts

	state.Field = models.FieldState{
		FieldPosition:    35,
		Down:             1,
		YardsToGo:        10,
		PossessionTeamID: kicking,
		DefensiveTeamID:  receiver,
	}
	state.Possession = kicking
	state.KickoffPending = true
	state.KickoffReceiver = receiver
	state.ConversionPending = false
	state.SafetyKickPending = false

	log.WithField("receiver", receiver).Info("Regulation ended tied, starting overtime")
	return false
}
