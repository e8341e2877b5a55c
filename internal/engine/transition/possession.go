package transition

import (
	"github.com/stitts-dev/gridiron-sim/internal/models"
)

// PossessionCalculator decides who holds the ball after the play. It
// consumes the field transition so a converted fourth down can never be
// misread as a turnover on downs.
type PossessionCalculator struct{}

// Calculate builds the possession transition
func (c *PossessionCalculator) Calculate(play models.PlayResult, state *models.GameState, field models.FieldTransition) models.PossessionTransition {
	offense := state.Field.PossessionTeamID
	defense := state.Field.DefensiveTeamID

	// A first down keeps the ball, full stop. This guard runs before the
	// fourth-down evaluation.
	if field.FirstDownAchieved {
		return models.PossessionTransition{
			PossessionChanged: false,
			NewPossessionTeam: offense,
			NewDefensiveTeam:  defense,
		}
	}

	// Touchdowns retain possession for the conversion attempt
	if field.Situation == models.PostPlayTouchdown {
		return models.PossessionTransition{
			PossessionChanged: false,
			NewPossessionTeam: offense,
			NewDefensiveTeam:  defense,
		}
	}

	// Safety: the conceding offense free-kicks, the scoring defense
	// receives
	if field.Situation == models.PostPlaySafety {
		return models.PossessionTransition{
			PossessionChanged: true,
			NewPossessionTeam: defense,
			NewDefensiveTeam:  offense,
		}
	}

	// Conversion attempts and made kicks hand the ball over via the
	// kickoff reset
	switch play.Outcome {
	case models.OutcomeFieldGoalGood, models.OutcomeExtraPointGood, models.OutcomeExtraPointMissed,
		models.OutcomeTwoPointGood, models.OutcomeTwoPointFailed:
		return models.PossessionTransition{
			PossessionChanged: true,
			NewPossessionTeam: defense,
			NewDefensiveTeam:  offense,
		}
	}

	if possessionFlips(play, state) {
		return models.PossessionTransition{
			PossessionChanged: true,
			NewPossessionTeam: defense,
			NewDefensiveTeam:  offense,
		}
	}

	return models.PossessionTransition{
		PossessionChanged: false,
		NewPossessionTeam: offense,
		NewDefensiveTeam:  defense,
	}
}
