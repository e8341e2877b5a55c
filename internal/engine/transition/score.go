package transition

import (
	"github.com/stitts-dev/gridiron-sim/internal/models"
)

// ScoreCalculator routes a play outcome to the correct scoring rule. The
// resulting transition carries exactly the schema fields the applicator
// consumes; nothing is recalculated downstream.
type ScoreCalculator struct{}

// Calculate builds the score transition
func (c *ScoreCalculator) Calculate(play models.PlayResult, state *models.GameState) models.ScoreTransition {
	homeScore := state.Scoreboard[state.HomeTeamID]
	awayScore := state.Scoreboard[state.AwayTeamID]

	transition := models.ScoreTransition{
		HomeScore: homeScore,
		AwayScore: awayScore,
	}

	var scoreType models.ScoreType
	scoringTeam := state.Field.PossessionTeamID

	switch play.Outcome {
	case models.OutcomeTouchdown:
		scoreType = models.ScoreTypeTouchdown
	case models.OutcomeFieldGoalGood:
		scoreType = models.ScoreTypeFieldGoal
	case models.OutcomeExtraPointGood:
		scoreType = models.ScoreTypeExtraPoint
	case models.OutcomeTwoPointGood:
		scoreType = models.ScoreTypeTwoPoint
	case models.OutcomeSafety:
		scoreType = models.ScoreTypeSafety
		scoringTeam = state.Field.DefensiveTeamID
	default:
		return transition
	}

	points := scoreType.Points()
	transition.ScoreOccurred = true
	transition.ScoreType = scoreType
	transition.PointsScored = points
	transition.ScoringTeam = scoringTeam

	if scoringTeam == state.HomeTeamID {
		transition.HomeScore += points
	} else {
		transition.AwayScore += points
	}

	return transition
}
