package playcall

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/gridiron-sim/internal/archetype"
	"github.com/stitts-dev/gridiron-sim/internal/models"
)

// Decider chooses the offensive play type from archetype probabilities
// with situational reweighting. It never fails: unknown situations fall
// back to the 1st-and-10 base vector.
type Decider struct {
	cfg    *archetype.Config
	logger *logrus.Logger
}

func NewDecider(cfg *archetype.Config, logger *logrus.Logger) *Decider {
	return &Decider{cfg: cfg, logger: logger}
}

// Decide picks a play type for the current snap
func (d *Decider) Decide(offArchetypeID, defArchetypeID string, field models.FieldState, gctx models.GameContext, rng *rand.Rand) models.PlayType {
	coach, resolved := d.cfg.ResolveCoach(offArchetypeID)
	if resolved != offArchetypeID {
		d.logger.WithFields(logrus.Fields{
			"requested": offArchetypeID,
			"resolved":  resolved,
		}).Debug("Offensive archetype resolved through fallback chain")
	}

	// Clock-killing and clock-saving calls preempt the probability model
	if playType, ok := d.clockManagementCall(coach, field, gctx); ok {
		return playType
	}

	if field.Down == 4 {
		return d.fourthDownPolicy(coach, field, gctx)
	}

	situation := models.ClassifySituation(field)
	weights := d.baseWeights(situation)

	// Offensive archetype: multiplicative, renormalized
	for playType, mod := range coach.PlayTypeModifiers {
		if _, ok := weights[playType]; ok {
			weights[playType] *= mod
		}
	}

	// Defensive archetype: counter-tendency at lesser weight
	_, defResolved := d.cfg.ResolveCoach(defArchetypeID)
	if counter, ok := d.cfg.DefensiveCounter[defResolved]; ok {
		for playType, mod := range counter {
			if _, ok := weights[playType]; ok {
				// Halve the distance from 1.0 to keep the defense a nudge
				weights[playType] *= 1 + (mod-1)*0.5
			}
		}
	}

	applyContextDeltas(weights, gctx)

	return weightedSelect(weights, rng)
}

// baseWeights copies the balance-table row for a situation. Before 4th
// down only scrimmage plays are candidates.
func (d *Decider) baseWeights(situation models.Situation) map[models.PlayType]float64 {
	row, ok := d.cfg.BalanceTable[situation]
	if !ok {
		row = d.cfg.BalanceTable[models.SituationFirstAndTen]
	}
	weights := make(map[models.PlayType]float64, len(row))
	for playType, p := range row {
		if playType == models.PlayTypePunt || playType == models.PlayTypeFieldGoal {
			continue
		}
		weights[playType] = p
	}
	if len(weights) == 0 {
		weights[models.PlayTypeRun] = 0.5
		weights[models.PlayTypePass] = 0.5
	}
	return weights
}

// fourthDownPolicy is the hard rule: long distance punts, short distance
// goes for it on the ground, the middle band kicks when in range.
// Archetype thresholds shift the bands.
func (d *Decider) fourthDownPolicy(coach archetype.CoachArchetype, field models.FieldState, gctx models.GameContext) models.PlayType {
	distance := field.YardsToGo

	// Desperation: trailing in the final two minutes there is no punt
	desperate := gctx.Quarter >= models.RegulationQuarters &&
		gctx.SecondsRemaining < 120 && gctx.ScoreDifferential < 0

	switch {
	case distance <= coach.FourthDownGoThreshold:
		if distance <= 2 {
			return models.PlayTypeRun
		}
		if desperate {
			return models.PlayTypePass
		}
		return models.PlayTypeRun
	case distance > coach.FourthDownPuntThreshold:
		if desperate {
			return models.PlayTypePass
		}
		return models.PlayTypePunt
	default:
		if field.FieldPosition >= coach.FieldGoalRangePosition {
			// A field goal only helps when within one score of its value
			if desperate && gctx.ScoreDifferential < -3 {
				return models.PlayTypePass
			}
			return models.PlayTypeFieldGoal
		}
		if desperate {
			return models.PlayTypePass
		}
		return models.PlayTypePunt
	}
}

// clockManagementCall emits kneels and spikes when the scoreboard and
// clock demand them
func (d *Decider) clockManagementCall(coach archetype.CoachArchetype, field models.FieldState, gctx models.GameContext) (models.PlayType, bool) {
	if gctx.Quarter >= models.RegulationQuarters && gctx.ScoreDifferential > 0 && field.Down < 4 {
		// Each kneel burns roughly a full play clock
		kneelsAvailable := 4 - field.Down
		if gctx.SecondsRemaining <= kneelsAvailable*42 {
			return models.PlayTypeKneel, true
		}
	}
	if gctx.ScoreDifferential < 0 && field.Down <= 2 &&
		(gctx.Quarter == 2 || gctx.Quarter >= models.RegulationQuarters) &&
		gctx.SecondsRemaining <= 25 && gctx.SecondsRemaining > 3 {
		return models.PlayTypeSpike, true
	}
	return "", false
}

// applyContextDeltas adds the small situational probability deltas for
// score differential, quarter, time remaining and field position
func applyContextDeltas(weights map[models.PlayType]float64, gctx models.GameContext) {
	shift := func(from, to models.PlayType, delta float64) {
		if _, ok := weights[from]; !ok {
			return
		}
		if _, ok := weights[to]; !ok {
			return
		}
		moved := weights[from] * delta
		weights[from] -= moved
		weights[to] += moved
	}

	// Score differential
	switch {
	case gctx.ScoreDifferential > 14:
		shift(models.PlayTypePass, models.PlayTypeRun, 0.25)
	case gctx.ScoreDifferential > 7:
		shift(models.PlayTypePass, models.PlayTypeRun, 0.12)
	case gctx.ScoreDifferential < -14:
		shift(models.PlayTypeRun, models.PlayTypePass, 0.35)
	case gctx.ScoreDifferential < -7:
		shift(models.PlayTypeRun, models.PlayTypePass, 0.18)
	}

	// Quarter and clock: late and behind means throwing
	if gctx.Quarter >= models.RegulationQuarters && gctx.SecondsRemaining < 300 {
		if gctx.ScoreDifferential < 0 {
			shift(models.PlayTypeRun, models.PlayTypePass, 0.30)
		} else if gctx.ScoreDifferential > 0 {
			shift(models.PlayTypePass, models.PlayTypeRun, 0.30)
		}
	}

	// Field position: backed up offenses keep it on the ground
	if gctx.FieldPosition < 10 {
		shift(models.PlayTypePass, models.PlayTypeRun, 0.10)
	}
}

// weightedSelect draws a play type proportionally to weight. A
// degenerate table returns a run.
func weightedSelect(weights map[models.PlayType]float64, rng *rand.Rand) models.PlayType {
	// Stable iteration order for reproducibility
	order := []models.PlayType{
		models.PlayTypeRun,
		models.PlayTypePass,
		models.PlayTypePunt,
		models.PlayTypeFieldGoal,
		models.PlayTypeKneel,
		models.PlayTypeSpike,
	}

	total := 0.0
	for _, playType := range order {
		if w, ok := weights[playType]; ok && w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return models.PlayTypeRun
	}

	roll := rng.Float64() * total
	for _, playType := range order {
		w, ok := weights[playType]
		if !ok || w <= 0 {
			continue
		}
		roll -= w
		if roll < 0 {
			return playType
		}
	}
	return models.PlayTypeRun
}
