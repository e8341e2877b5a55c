package matchup

import (
	"fmt"
	"math/rand"

	xrand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/stitts-dev/gridiron-sim/internal/models"
)

const (
	puntMeanYards   = 42.0
	puntStdDevYards = 8.0
	snapHoldYards   = 17 // snap plus hold distance added to a field-goal attempt
)

// puntDistribution builds the gross punt distance distribution, seeded
// from the play RNG so results stay reproducible
func puntDistribution(rng *rand.Rand, punterLeg float64) distuv.Normal {
	return distuv.Normal{
		Mu:    puntMeanYards + (punterLeg-75)/10,
		Sigma: puntStdDevYards,
		Src:   xrand.NewSource(rng.Uint64()),
	}
}

func (e *Engine) resolvePunt(req PlayRequest, rng *rand.Rand) models.PlayResult {
	result := models.PlayResult{
		PlayType:      models.PlayTypePunt,
		Formation:     models.FormationSpecialTeams,
		DefensiveCall: req.Personnel.DefensiveCall,
		StopsClock:    true,
	}

	// Blocked punts are rare but catastrophic
	if rng.Float64() < 0.008 {
		result.Outcome = models.OutcomePuntBlocked
		result.YardsGained = -8
		result.IsTurnover = true
		result.Description = "punt BLOCKED"
		return result
	}

	dist := puntDistribution(rng, req.Personnel.Offense.PunterLeg)
	gross := dist.Rand()
	gross = clampFloat(gross, 20, 70)

	// Coverage quality eats into the return
	returnYards := uniformRange(rng, 0, 14) - (req.Personnel.Offense.DBCoverage-60)/10
	if returnYards < 0 {
		returnYards = 0
	}

	// Muff: the returner puts it on the ground and the kicking team
	// falls on it
	if rng.Float64() < 0.012 {
		result.Outcome = models.OutcomeFumbleRecovered
		result.YardsGained = int(gross)
		result.Description = fmt.Sprintf("punt of %d yards MUFFED, recovered by the kicking team", int(gross))
		return result
	}

	net := int(gross - returnYards)
	result.Outcome = models.OutcomePuntDowned
	result.YardsGained = net
	result.Description = fmt.Sprintf("punt %d yards net", net)
	return result
}

// fieldGoalProbability returns the success chance for an attempt of the
// given distance in yards
func fieldGoalProbability(distance int, kickerAccuracy float64) float64 {
	var base float64
	switch {
	case distance < 35:
		base = 0.95
	case distance <= 45:
		base = 0.85
	case distance <= 55:
		base = 0.65
	default:
		base = 0.35
	}
	return clampFloat(base+(kickerAccuracy-75)/500, 0.05, 0.99)
}

// resolvePlaceKick handles field goals and extra points. The kick context
// tag is authoritative: an attempt from the opponent 1 stays a field goal
// when tagged field_goal.
func (e *Engine) resolvePlaceKick(req PlayRequest, rng *rand.Rand) models.PlayResult {
	result := models.PlayResult{
		PlayType:      req.PlayType,
		KickContext:   req.KickContext,
		Formation:     models.FormationSpecialTeams,
		DefensiveCall: req.Personnel.DefensiveCall,
		StopsClock:    true,
	}

	if req.KickContext == models.KickContextExtraPoint {
		prob := clampFloat(0.95+(req.Personnel.Offense.KickerAccuracy-75)/1000, 0.80, 0.99)
		if rng.Float64() < prob {
			result.Outcome = models.OutcomeExtraPointGood
			result.IsScore = true
			result.PointsScored = models.ScoreTypeExtraPoint.Points()
			result.Description = "extra point is good"
		} else {
			result.Outcome = models.OutcomeExtraPointMissed
			result.Description = "extra point MISSED"
		}
		return result
	}

	distance := req.Field.DistanceToGoal() + snapHoldYards
	prob := fieldGoalProbability(distance, req.Personnel.Offense.KickerAccuracy)

	if rng.Float64() < prob {
		result.Outcome = models.OutcomeFieldGoalGood
		result.IsScore = true
		result.PointsScored = models.ScoreTypeFieldGoal.Points()
		result.Description = fmt.Sprintf("%d-yard field goal is GOOD", distance)
	} else {
		result.Outcome = models.OutcomeFieldGoalMissed
		result.Description = fmt.Sprintf("%d-yard field goal is NO GOOD", distance)
	}
	return result
}

// resolveKickoff covers opening/half kickoffs and post-safety free kicks.
// YardsGained carries the receiving team's starting field position.
func (e *Engine) resolveKickoff(req PlayRequest, rng *rand.Rand) models.PlayResult {
	result := models.PlayResult{
		PlayType:      models.PlayTypeKickoff,
		KickContext:   req.KickContext,
		Formation:     models.FormationSpecialTeams,
		Outcome:       models.OutcomeKickReturn,
		StopsClock:    true,
	}

	if req.KickContext == models.KickContextSafetyKick {
		// Free kick from the 20 gives the return team a longer runway
		result.YardsGained = 25 + rng.Intn(11)
		result.Description = fmt.Sprintf("free kick returned to the %d", result.YardsGained)
		return result
	}

	if rng.Float64() < 0.65 {
		result.YardsGained = 25
		result.Description = "kickoff, touchback"
		return result
	}

	// Occasional long return
	if rng.Float64() < 0.03 {
		result.YardsGained = 50 + rng.Intn(30)
		result.Description = fmt.Sprintf("kickoff returned deep to the %d", result.YardsGained)
		return result
	}

	result.YardsGained = 15 + rng.Intn(21)
	result.Description = fmt.Sprintf("kickoff returned to the %d", result.YardsGained)
	return result
}

// resolveTwoPoint runs the conversion as a compressed scrimmage play from
// the two-yard line
func (e *Engine) resolveTwoPoint(req PlayRequest, rng *rand.Rand) models.PlayResult {
	result := models.PlayResult{
		PlayType:      models.PlayTypeTwoPoint,
		KickContext:   models.KickContextTwoPoint,
		Formation:     models.FormationGoalLine,
		DefensiveCall: req.Personnel.DefensiveCall,
		StopsClock:    true,
	}

	offense := req.Personnel.Offense
	defense := req.Personnel.Defense

	var successProb float64
	if rng.Float64() < 0.5 {
		// Power run at the goal line
		eff := (0.5*attributeMean(offense, []string{"rb_power"}) +
			0.5*offense.OLRunBlock/defense.DLRunDefense)
		successProb = clampFloat(0.30+0.30*eff, 0.25, 0.65)
		result.Description = "two-point run attempt"
	} else {
		qbEff := attributeMean(offense, []string{"qb_accuracy", "qb_awareness"})
		covEff := defense.DBCoverage / 100
		successProb = clampFloat(0.35+0.45*qbEff-0.25*covEff, 0.25, 0.65)
		result.Description = "two-point pass attempt"
	}

	if rng.Float64() < successProb {
		result.Outcome = models.OutcomeTwoPointGood
		result.IsScore = true
		result.PointsScored = models.ScoreTypeTwoPoint.Points()
		result.Description += ", GOOD"
	} else {
		result.Outcome = models.OutcomeTwoPointFailed
		result.Description += ", no good"
	}
	return result
}
