package transition

import (
	"github.com/stitts-dev/gridiron-sim/internal/engine/clockstrategy"
	"github.com/stitts-dev/gridiron-sim/internal/models"
)

// ClockCalculator turns a strategy's elapsed-seconds figure into a clock
// transition: remaining time, quarter movement, the two-minute warning and
// late-game defensive timeouts.
type ClockCalculator struct {
	registry *clockstrategy.Registry
}

// NewClockCalculator wires the calculator to the strategy registry
func NewClockCalculator(registry *clockstrategy.Registry) *ClockCalculator {
	return &ClockCalculator{registry: registry}
}

// trailing-defense timeout window
const (
	timeoutWindowSeconds = 180
	timeoutClockRunoff   = 12
)

// Calculate builds the clock transition for one play
func (c *ClockCalculator) Calculate(play models.PlayResult, state *models.GameState, gctx models.GameContext, offenseArchetype string) models.ClockTransition {
	strategy := c.registry.Resolve(offenseArchetype)
	elapsed := strategy.TimeElapsed(play, gctx)

	pre := state.Clock.SecondsRemaining
	clockStops := stopsClock(play)

	transition := models.ClockTransition{
		NewQuarter:   state.Clock.Quarter,
		ClockStopped: clockStops,
	}

	// A trailing defense burns a timeout to freeze a running clock late in
	// the fourth quarter. The snap itself still costs a shortened runoff.
	if !clockStops &&
		state.Clock.Quarter >= models.RegulationQuarters &&
		pre < timeoutWindowSeconds {
		defense := state.Field.DefensiveTeamID
		defDeficit := state.Scoreboard[state.Field.PossessionTeamID] - state.Scoreboard[defense]
		if defDeficit > 0 && state.Clock.TimeoutsRemaining[defense] > 0 {
			if elapsed > timeoutClockRunoff {
				elapsed = timeoutClockRunoff
			}
			transition.TimeoutUsed = true
			transition.TimeoutTeam = defense
			transition.ClockStopped = true
		}
	}

	remaining := pre - elapsed
	if remaining < 0 {
		remaining = 0
	}

	// Two-minute warning: the first play that reaches or crosses 2:00 in
	// the second or fourth quarter stops the clock at the whistle
	if (state.Clock.Quarter == 2 || state.Clock.Quarter == models.RegulationQuarters) &&
		!state.Clock.TwoMinuteWarningConsumed[state.Clock.Half()] &&
		pre > 120 && remaining <= 120 {
		transition.TwoMinuteWarning = true
		transition.ClockStopped = true
	}

	transition.SecondsElapsed = elapsed
	transition.NewSecondsRemaining = remaining

	if remaining == 0 {
		transition.ClockStopped = true
		switch {
		case state.Clock.Overtime:
			// Overtime expiry ends the game; the orchestrator reads
			// RegulationEnded plus the overtime flag
			transition.RegulationEnded = true
		case state.Clock.Quarter == models.RegulationQuarters:
			transition.RegulationEnded = true
		default:
			transition.QuarterAdvanced = true
			transition.NewQuarter = state.Clock.Quarter + 1
			transition.NewSecondsRemaining = models.SecondsPerQuarter
			if state.Clock.Quarter == 2 {
				transition.HalfEnded = true
			}
		}
	}

	return transition
}

// stopsClock reports whether the play outcome stops the game clock at the
// whistle
func stopsClock(play models.PlayResult) bool {
	if play.StopsClock {
		return true
	}
	if play.IsScore || play.ChangesPossession() {
		return true
	}
	switch play.Outcome {
	case models.OutcomeIncompletion, models.OutcomeOutOfBounds, models.OutcomePenalty:
		return true
	}
	switch play.PlayType {
	case models.PlayTypeSpike, models.PlayTypeKickoff:
		return true
	}
	return false
}
