package matchup

import (
	"fmt"
	"math/rand"

	"github.com/stitts-dev/gridiron-sim/internal/archetype"
	"github.com/stitts-dev/gridiron-sim/internal/models"
)

// Completion weights per the pass matrix: quarterback, receiver,
// protection, coverage
const (
	weightQB         = 0.4
	weightWR         = 0.3
	weightProtection = 0.2
	weightCoverage   = 0.1
)

// classifyRouteConcept maps formation and situation to a pass design
func classifyRouteConcept(formation string, situation models.Situation, field models.FieldState, rng *rand.Rand) archetype.RouteConcept {
	// Play action lives on early downs from run-first looks
	if (formation == models.FormationIForm || formation == models.FormationSingleback) &&
		field.Down <= 2 && rng.Float64() < 0.35 {
		return archetype.PlayAction
	}

	if rng.Float64() < 0.12 {
		return archetype.Screens
	}

	switch situation {
	case models.SituationSecondShort, models.SituationThirdShort, models.SituationFourthShort, models.SituationGoalToGo:
		return archetype.QuickGame
	case models.SituationSecondLong, models.SituationThirdLong, models.SituationFourthLong:
		if formation == models.FormationShotgunSpread && rng.Float64() < 0.45 {
			return archetype.Vertical
		}
		return archetype.Intermediate
	case models.SituationRedZone:
		if rng.Float64() < 0.5 {
			return archetype.QuickGame
		}
		return archetype.Intermediate
	}

	roll := rng.Float64()
	switch {
	case roll < 0.40:
		return archetype.QuickGame
	case roll < 0.80:
		return archetype.Intermediate
	default:
		return archetype.Vertical
	}
}

func (e *Engine) resolvePass(req PlayRequest, rng *rand.Rand) models.PlayResult {
	situation := models.ClassifySituation(req.Field)
	concept := classifyRouteConcept(req.Personnel.Formation, situation, req.Field, rng)
	matrix := e.cfg.RouteConcepts[concept]
	coverage := req.Personnel.DefensiveCall

	offense := req.Personnel.Offense
	defense := req.Personnel.Defense

	qbEff := attributeMean(offense, matrix.QBAttributes)
	wrEff := attributeMean(offense, matrix.WRAttributes)
	protEff := (offense.OLPassBlock + 0.3*offense.RBPassProtect) / (defense.DLPassRush * 1.2)

	coverageRating := defense.DBCoverage*0.75 + defense.LBCoverage*0.25
	covEff := coverageRating * matrix.VsCoverage(coverage) / 100

	combinedEff := qbEff*weightQB + wrEff*weightWR + protEff*weightProtection - covEff*weightCoverage

	completionProb := combinedEff * e.formationModifier(req.Personnel.Formation)
	// Anchor the concept's base completion: league-average effectiveness
	// lands on the matrix value
	completionProb += matrix.BaseCompletion - 0.62

	// Adjustments
	if req.Field.Down == 3 && req.Field.YardsToGo <= 5 {
		completionProb += 0.08
	}
	if coverage == models.CoverageBlitz && concept != archetype.QuickGame {
		completionProb *= 0.70
	}
	completionProb = clampFloat(completionProb, 0.05, 0.97)

	result := models.PlayResult{
		PlayType:      models.PlayTypePass,
		Formation:     req.Personnel.Formation,
		DefensiveCall: coverage,
	}

	// Pressure first: the sack roll precedes the throw
	sackProb := clampFloat(0.07-0.04*protEff, 0.02, 0.20)
	if coverage == models.CoverageBlitz {
		sackProb *= 1.6
	}
	if rng.Float64() < sackProb {
		result.Outcome = models.OutcomeSack
		result.YardsGained = -int(uniformRange(rng, 3, 11))
		result.Description = fmt.Sprintf("sacked for %d yards", result.YardsGained)
		return result
	}

	// Interception
	intProb := 0.025 * (1 - qbEff)
	if coverage == models.CoverageZone {
		intProb *= 1.0 + defense.DBBallSkills/200
	}
	if rng.Float64() < intProb {
		result.Outcome = models.OutcomeInterception
		result.IsTurnover = true
		result.StopsClock = true
		result.YardsGained = 0
		result.Description = fmt.Sprintf("%s pass INTERCEPTED vs %s coverage", concept, coverage)
		return result
	}

	// Red-zone touchdown floor: a defended end zone still gives up the
	// occasional jump ball
	if situation == models.SituationRedZone && rng.Float64() < 0.05 {
		result.Outcome = models.OutcomeTouchdown
		result.YardsGained = req.Field.DistanceToGoal()
		result.IsScore = true
		result.PointsScored = models.ScoreTypeTouchdown.Points()
		result.StopsClock = true
		result.Description = fmt.Sprintf("%s pass for %d yards, TOUCHDOWN", concept, result.YardsGained)
		return result
	}

	if rng.Float64() >= completionProb {
		result.Outcome = models.OutcomeIncompletion
		result.YardsGained = 0
		result.StopsClock = true
		result.Description = fmt.Sprintf("%s pass incomplete vs %s coverage", concept, coverage)
		return result
	}

	yards := matrix.BaseYards * (0.6 + 0.8*combinedEff) * uniformRange(rng, 0.6, 1.4)
	if situation == models.SituationRedZone {
		// The compressed field shortens everything
		yards *= 0.85
	}
	yardsGained := int(yards + 0.5)
	if yardsGained < 0 {
		yardsGained = 0
	}

	if yardsGained >= req.Field.DistanceToGoal() {
		result.Outcome = models.OutcomeTouchdown
		result.YardsGained = req.Field.DistanceToGoal()
		result.IsScore = true
		result.PointsScored = models.ScoreTypeTouchdown.Points()
		result.StopsClock = true
		result.Description = fmt.Sprintf("%s pass for %d yards, TOUCHDOWN", concept, result.YardsGained)
		return result
	}

	result.Outcome = models.OutcomeGain
	result.YardsGained = yardsGained
	if yardsGained >= req.Field.YardsToGo {
		result.FirstDownAchieved = true
	}
	// Completions toward the sideline stop the clock
	if rng.Float64() < 0.22 {
		result.Outcome = models.OutcomeOutOfBounds
		result.StopsClock = true
	}
	result.Description = fmt.Sprintf("%s pass complete for %d yards vs %s", concept, yardsGained, coverage)
	return result
}
