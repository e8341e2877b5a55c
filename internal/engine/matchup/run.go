package matchup

import (
	"fmt"
	"math/rand"

	"github.com/stitts-dev/gridiron-sim/internal/archetype"
	"github.com/stitts-dev/gridiron-sim/internal/models"
)

// classifyRunConcept maps formation and situation to a run design
func classifyRunConcept(formation string, situation models.Situation, field models.FieldState, rng *rand.Rand) archetype.RunConcept {
	if formation == models.FormationGoalLine || (situation == models.SituationGoalToGo && field.YardsToGo <= 2) {
		return archetype.GoalLinePower
	}

	switch formation {
	case models.FormationIForm:
		return archetype.PowerRun
	case models.FormationShotgun, models.FormationShotgunSpread:
		// Runs from spread looks are draws or stretch plays
		if rng.Float64() < 0.45 {
			return archetype.Draw
		}
		return archetype.OutsideZone
	}

	if rng.Float64() < 0.6 {
		return archetype.InsideZone
	}
	return archetype.OutsideZone
}

func (e *Engine) resolveRun(req PlayRequest, rng *rand.Rand) models.PlayResult {
	situation := models.ClassifySituation(req.Field)
	concept := classifyRunConcept(req.Personnel.Formation, situation, req.Field, rng)
	matrix := e.cfg.RunConcepts[concept]

	offense := req.Personnel.Offense
	defense := req.Personnel.Defense

	rbEff := attributeMean(offense, matrix.RBAttributes)

	// Blocking is the offensive line against the front, weighted by the
	// concept's modifiers
	dlRating := defense.DLRunDefense*0.7 + defense.LBRunDefense*0.3
	blockEff := (offense.OLRunBlock * matrix.OLModifier) / (dlRating * matrix.DLModifier)

	combined := (0.5*rbEff + 0.5*blockEff) * e.formationModifier(req.Personnel.Formation)

	yards := matrix.BaseYards * combined * uniformRange(rng, 0.7, 1.0+0.3*matrix.Variance)

	// Situational adjustments
	if req.Field.FieldPosition < 20 {
		yards -= 1
	}
	if situation == models.SituationGoalToGo && req.Field.YardsToGo <= 2 {
		yards += 1
	}

	// Stuffed runs lose ground
	if rng.Float64() < 0.12 {
		yards = -uniformRange(rng, 0.5, 3.5)
	}

	yardsGained := int(yards + 0.5)
	if yards < 0 {
		yardsGained = int(yards - 0.5)
	}

	result := models.PlayResult{
		PlayType:      models.PlayTypeRun,
		Outcome:       models.OutcomeGain,
		YardsGained:   yardsGained,
		Formation:     req.Personnel.Formation,
		DefensiveCall: req.Personnel.DefensiveCall,
	}

	// Ball security roll before anything else can happen
	fumbleChance := (1 - offense.RBCarrying/100) * (1 - offense.RBCarrying/100) * 0.02
	if rng.Float64() < fumbleChance {
		if rng.Float64() < 0.5 {
			result.Outcome = models.OutcomeFumbleLost
			result.IsTurnover = true
			result.StopsClock = true
			result.Description = fmt.Sprintf("%s run, FUMBLE lost after %d yards", concept, yardsGained)
			return result
		}
		result.Outcome = models.OutcomeFumbleRecovered
		result.Description = fmt.Sprintf("%s run, fumble recovered by offense after %d yards", concept, yardsGained)
		return result
	}

	finalPosition := req.Field.FieldPosition + yardsGained
	switch {
	case finalPosition >= 100:
		result.YardsGained = req.Field.DistanceToGoal()
		result.Outcome = models.OutcomeTouchdown
		result.IsScore = true
		result.PointsScored = models.ScoreTypeTouchdown.Points()
		result.StopsClock = true
		result.Description = fmt.Sprintf("%s run for %d yards, TOUCHDOWN", concept, result.YardsGained)
	case finalPosition <= 0:
		result.YardsGained = -req.Field.FieldPosition
		result.Outcome = models.OutcomeSafety
		result.IsScore = true
		result.PointsScored = models.ScoreTypeSafety.Points()
		result.StopsClock = true
		result.Description = fmt.Sprintf("%s run tackled in the end zone, SAFETY", concept)
	default:
		if result.YardsGained >= req.Field.YardsToGo {
			result.FirstDownAchieved = true
		}
		// Runners reach the sideline occasionally
		if rng.Float64() < 0.08 {
			result.Outcome = models.OutcomeOutOfBounds
			result.StopsClock = true
		}
		result.Description = fmt.Sprintf("%s run for %d yards to the %s", concept, result.YardsGained, yardLine(clampInt(finalPosition, 0, 100)))
	}

	return result
}
