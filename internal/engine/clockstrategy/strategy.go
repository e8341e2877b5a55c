package clockstrategy

import (
	"github.com/stitts-dev/gridiron-sim/internal/archetype"
	"github.com/stitts-dev/gridiron-sim/internal/models"
)

// Strategy computes the seconds one play consumes. Implementations are
// stateless; all context arrives via parameters.
type Strategy interface {
	TimeElapsed(play models.PlayResult, gctx models.GameContext) int
}

const (
	minPlaySeconds = 8
	maxPlaySeconds = 45
)

// baseSeconds is the league-wide time table by play type and outcome.
// Incompletions stop the clock, so their cost is snap-to-whistle plus
// reset only.
func baseSeconds(play models.PlayResult) float64 {
	switch play.PlayType {
	case models.PlayTypeRun:
		return 38
	case models.PlayTypePass:
		if play.Outcome == models.OutcomeIncompletion {
			return 13.5
		}
		return 18
	case models.PlayTypePunt, models.PlayTypeFieldGoal, models.PlayTypeExtraPoint,
		models.PlayTypeKickoff, models.PlayTypeTwoPoint:
		return 15
	case models.PlayTypeKneel:
		return 40
	case models.PlayTypeSpike:
		return 3
	}
	return 25
}

// situationalAdjust applies the stackable context adjustments shared by
// every archetype
func situationalAdjust(seconds float64, gctx models.GameContext) float64 {
	// Score differential
	switch {
	case gctx.ScoreDifferential > 14:
		seconds += 5
	case gctx.ScoreDifferential >= 7:
		seconds += 3
	case gctx.ScoreDifferential < -14:
		seconds -= 4
	case gctx.ScoreDifferential <= -7:
		seconds -= 2
	}

	// Late-game clock pressure
	if gctx.Quarter >= models.RegulationQuarters && gctx.SecondsRemaining < 120 {
		if gctx.ScoreDifferential > 0 {
			seconds += 3
		} else if gctx.ScoreDifferential < 0 {
			seconds -= 3
		}
	}

	// Down and distance
	if gctx.Down == 3 && gctx.YardsToGo >= 8 {
		seconds -= 1
	}
	if gctx.Down == 4 {
		seconds += 2
	}

	// Field position
	if gctx.FieldPosition >= 90 {
		seconds += 4
	} else if gctx.FieldPosition >= 80 {
		seconds += 2
	}

	return seconds
}

func clampSeconds(seconds float64) int {
	if seconds < minPlaySeconds {
		return minPlaySeconds
	}
	if seconds > maxPlaySeconds {
		return maxPlaySeconds
	}
	return int(seconds + 0.5)
}

// archetypeStrategy applies one coach's clock profile on top of the base
// table
type archetypeStrategy struct {
	profile archetype.ClockProfile
}

// NewArchetypeStrategy builds a strategy from a coach's clock profile
func NewArchetypeStrategy(profile archetype.ClockProfile) Strategy {
	return &archetypeStrategy{profile: profile}
}

func (s *archetypeStrategy) TimeElapsed(play models.PlayResult, gctx models.GameContext) int {
	seconds := baseSeconds(play) + s.profile.BaseAdjust

	switch play.PlayType {
	case models.PlayTypeRun:
		seconds += s.profile.RunAdjust
	case models.PlayTypePass:
		seconds += s.profile.PassAdjust
	}

	if gctx.NoHuddle {
		seconds += s.profile.NoHuddleAdjust
	}
	if gctx.Down >= 3 {
		seconds += s.profile.CriticalDownAdjust
	}
	if gctx.Down == 4 {
		seconds += s.profile.FourthDownAdjust
	}

	seconds = situationalAdjust(seconds, gctx)
	return clampSeconds(seconds)
}

// placeholderStrategy is the last rung of the fallback chain: base table
// and situational adjustments only
type placeholderStrategy struct{}

func (placeholderStrategy) TimeElapsed(play models.PlayResult, gctx models.GameContext) int {
	return clampSeconds(situationalAdjust(baseSeconds(play), gctx))
}
