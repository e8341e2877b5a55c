package transition

import (
	"github.com/stitts-dev/gridiron-sim/internal/engine/clockstrategy"
	"github.com/stitts-dev/gridiron-sim/internal/models"
)

// Coordinator runs the five transition calculators in a fixed order and
// assembles the composite transition. Field first, then possession (which
// reads the field result), then score, clock and special situations.
type Coordinator struct {
	field      *FieldCalculator
	possession *PossessionCalculator
	score      *ScoreCalculator
	clock      *ClockCalculator
	special    *SpecialSituationsCalculator
}

// NewCoordinator wires the calculators. kickoffReturnSpot is the yard line
// (offense perspective) where a post-score drive starts.
func NewCoordinator(registry *clockstrategy.Registry, kickoffReturnSpot int) *Coordinator {
	return &Coordinator{
		field:      &FieldCalculator{kickoffReturnSpot: kickoffReturnSpot},
		possession: &PossessionCalculator{},
		score:      &ScoreCalculator{},
		clock:      NewClockCalculator(registry),
		special:    &SpecialSituationsCalculator{kickoffReturnSpot: kickoffReturnSpot},
	}
}

// Calculate produces the full transition for one play. The state is read
// only; nothing mutates until the applicator runs.
func (c *Coordinator) Calculate(play models.PlayResult, state *models.GameState, gctx models.GameContext) models.Transition {
	fieldTr := c.field.Calculate(play, state)
	return models.Transition{
		Field:      fieldTr,
		Possession: c.possession.Calculate(play, state, fieldTr),
		Score:      c.score.Calculate(play, state),
		Clock:      c.clock.Calculate(play, state, gctx, gctx.OffensiveArchetype),
		Special:    c.special.Calculate(play, state),
	}
}
