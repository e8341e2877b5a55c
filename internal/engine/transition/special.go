package transition

import (
	"github.com/stitts-dev/gridiron-sim/internal/models"
)

// SpecialSituationsCalculator handles the resets that follow scores: the
// conversion attempt after a touchdown, and the kickoff reset that places
// the next drive at the return spot after a completed score.
type SpecialSituationsCalculator struct {
	kickoffReturnSpot int
}

// Calculate builds the special-situation transition
func (c *SpecialSituationsCalculator) Calculate(play models.PlayResult, state *models.GameState) models.SpecialSituationTransition {
	transition := models.SpecialSituationTransition{}

	if play.PlayType == models.PlayTypeKickoff {
		transition.KickoffConsumed = true
	}

	switch play.Outcome {
	case models.OutcomeTouchdown:
		// The scoring team keeps the ball for one untimed conversion
		// attempt; the kickoff reset waits for its result
		transition.ConversionPending = true

	case models.OutcomeFieldGoalGood:
		transition.KickoffReset = true
		transition.ReceivingTeam = state.Field.DefensiveTeamID
		transition.ResetFieldPosition = c.kickoffReturnSpot

	case models.OutcomeExtraPointGood, models.OutcomeExtraPointMissed,
		models.OutcomeTwoPointGood, models.OutcomeTwoPointFailed:
		// Conversion resolved either way, kickoff to the opponent
		transition.KickoffReset = true
		transition.ReceivingTeam = state.Field.DefensiveTeamID
		transition.ResetFieldPosition = c.kickoffReturnSpot

	case models.OutcomeSafety:
		// The conceding offense free-kicks; the scoring defense receives
		transition.KickoffReset = true
		transition.SafetyKick = true
		transition.ReceivingTeam = state.Field.DefensiveTeamID
		transition.ResetFieldPosition = c.kickoffReturnSpot
	}

	return transition
}
