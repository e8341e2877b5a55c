package matchup

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/gridiron-sim/internal/archetype"
	"github.com/stitts-dev/gridiron-sim/internal/models"
)

// Engine resolves a play call into a numerical outcome from the matchup
// of player ratings and situational modifiers. It never returns an error:
// outputs are best-effort within documented ranges and the transition
// validator is the single guard downstream.
type Engine struct {
	cfg    *archetype.Config
	logger *logrus.Logger
}

func NewEngine(cfg *archetype.Config, logger *logrus.Logger) *Engine {
	return &Engine{cfg: cfg, logger: logger}
}

// PlayRequest carries everything the matchup engine needs for one snap.
// KickContext is authoritative for kick plays; field position is never
// used to reclassify a kick.
type PlayRequest struct {
	PlayType    models.PlayType
	KickContext models.KickContext
	Personnel   *models.PersonnelPackage
	Field       models.FieldState
	Context     models.GameContext
}

// Resolve produces the immutable play result
func (e *Engine) Resolve(req PlayRequest, rng *rand.Rand) models.PlayResult {
	switch req.PlayType {
	case models.PlayTypeRun:
		return e.resolveRun(req, rng)
	case models.PlayTypePass:
		return e.resolvePass(req, rng)
	case models.PlayTypePunt:
		return e.resolvePunt(req, rng)
	case models.PlayTypeFieldGoal, models.PlayTypeExtraPoint:
		return e.resolvePlaceKick(req, rng)
	case models.PlayTypeKickoff:
		return e.resolveKickoff(req, rng)
	case models.PlayTypeTwoPoint:
		return e.resolveTwoPoint(req, rng)
	case models.PlayTypeKneel:
		return models.PlayResult{
			PlayType:    models.PlayTypeKneel,
			Outcome:     models.OutcomeGain,
			YardsGained: -1,
			Formation:   models.FormationVictory,
			Description: "QB kneel",
		}
	case models.PlayTypeSpike:
		return models.PlayResult{
			PlayType:    models.PlayTypeSpike,
			Outcome:     models.OutcomeIncompletion,
			YardsGained: 0,
			StopsClock:  true,
			Formation:   models.FormationShotgun,
			Description: "spike to stop the clock",
		}
	}

	e.logger.WithField("play_type", req.PlayType).Warn("Unknown play type, resolving as no-gain run")
	return models.PlayResult{
		PlayType:    models.PlayTypeRun,
		Outcome:     models.OutcomeGain,
		YardsGained: 0,
		Description: "no gain",
	}
}

// attributeMean averages the named attributes, normalized to [0, 1]
func attributeMean(ratings models.TeamRatings, names []string) float64 {
	if len(names) == 0 {
		return 0.6
	}
	sum := 0.0
	for _, name := range names {
		sum += ratings.Attribute(name)
	}
	return sum / float64(len(names)) / 100.0
}

func (e *Engine) formationModifier(formation string) float64 {
	if mod, ok := e.cfg.FormationModifiers[formation]; ok {
		return mod
	}
	return 1.0
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// uniformRange draws uniformly from [lo, hi)
func uniformRange(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func yardLine(fieldPosition int) string {
	if fieldPosition <= 50 {
		return fmt.Sprintf("own %d", fieldPosition)
	}
	return fmt.Sprintf("opponent %d", 100-fieldPosition)
}
