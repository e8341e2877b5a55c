package transition

import (
	"github.com/stitts-dev/gridiron-sim/internal/models"
)

// FieldCalculator produces the post-play down-and-distance. Pure function
// of the play result and pre-play state.
type FieldCalculator struct {
	kickoffReturnSpot int
}

// missedFGProtectedSpot is the best field position the defense is
// guaranteed after a missed kick (spot-of-kick rule with the modern
// inside-the-20 protection)
const missedFGProtectedSpot = 20

// firstDownAchieved reports whether a scrimmage play moved the chains.
// Kicks, scores and turnovers never award a first down here.
func firstDownAchieved(play models.PlayResult, state *models.GameState) bool {
	if play.PlayType.IsKick() || play.PlayType == models.PlayTypeTwoPoint {
		return false
	}
	if play.IsScore || play.ChangesPossession() {
		return false
	}
	return play.YardsGained >= state.Field.YardsToGo
}

// possessionFlips reports whether the ball changes hands after the play:
// either the outcome itself is a turnover/kick-away, or a failed fourth
// down turns it over on downs
func possessionFlips(play models.PlayResult, state *models.GameState) bool {
	if play.ChangesPossession() {
		return true
	}
	if state.Field.Down == 4 &&
		!firstDownAchieved(play, state) &&
		!play.IsScore &&
		play.PlayType != models.PlayTypePunt &&
		play.PlayType != models.PlayTypeFieldGoal &&
		play.PlayType != models.PlayTypeExtraPoint &&
		play.PlayType != models.PlayTypeTwoPoint {
		return true
	}
	return false
}

// Calculate builds the field transition. Positions in the result are from
// the perspective of the team that will possess the ball after the play.
func (c *FieldCalculator) Calculate(play models.PlayResult, state *models.GameState) models.FieldTransition {
	field := state.Field

	switch play.Outcome {
	case models.OutcomeTouchdown:
		return models.FieldTransition{
			NewFieldPosition:  100,
			NewDown:           1,
			NewYardsToGo:      0,
			FirstDownAchieved: false,
			Situation:         models.PostPlayTouchdown,
		}

	case models.OutcomeSafety:
		return models.FieldTransition{
			NewFieldPosition: c.kickoffReturnSpot,
			NewDown:          1,
			NewYardsToGo:     models.GoalLineYardsToGo(c.kickoffReturnSpot),
			Situation:        models.PostPlaySafety,
		}

	case models.OutcomeInterception, models.OutcomeFumbleLost:
		spot := clamp(field.FieldPosition+play.YardsGained, 1, 99)
		newPos := 100 - spot
		return models.FieldTransition{
			NewFieldPosition: newPos,
			NewDown:          1,
			NewYardsToGo:     models.GoalLineYardsToGo(newPos),
			Situation:        models.PostPlayNormal,
		}

	case models.OutcomePuntDowned:
		spot := field.FieldPosition + play.YardsGained
		newPos := 100 - spot
		if spot >= 100 {
			// Touchback
			newPos = 20
		}
		newPos = clamp(newPos, 1, 99)
		return models.FieldTransition{
			NewFieldPosition: newPos,
			NewDown:          1,
			NewYardsToGo:     models.GoalLineYardsToGo(newPos),
			Situation:        models.PostPlayNormal,
		}

	case models.OutcomePuntBlocked:
		spot := clamp(field.FieldPosition+play.YardsGained, 1, 99)
		newPos := 100 - spot
		return models.FieldTransition{
			NewFieldPosition: newPos,
			NewDown:          1,
			NewYardsToGo:     models.GoalLineYardsToGo(newPos),
			Situation:        models.PostPlayNormal,
		}

	case models.OutcomeFieldGoalMissed:
		kickSpot := field.FieldPosition - 7
		newPos := 100 - kickSpot
		if newPos < missedFGProtectedSpot {
			newPos = missedFGProtectedSpot
		}
		newPos = clamp(newPos, 1, 99)
		return models.FieldTransition{
			NewFieldPosition: newPos,
			NewDown:          1,
			NewYardsToGo:     models.GoalLineYardsToGo(newPos),
			Situation:        models.PostPlayNormal,
		}

	case models.OutcomeFieldGoalGood, models.OutcomeExtraPointGood, models.OutcomeExtraPointMissed,
		models.OutcomeTwoPointGood, models.OutcomeTwoPointFailed:
		// The kickoff reset supersedes these values; they are written for
		// consistency with the special-situations transition
		return models.FieldTransition{
			NewFieldPosition: c.kickoffReturnSpot,
			NewDown:          1,
			NewYardsToGo:     models.GoalLineYardsToGo(c.kickoffReturnSpot),
			Situation:        models.PostPlayNormal,
		}

	case models.OutcomeKickReturn:
		newPos := clamp(play.YardsGained, 1, 99)
		return models.FieldTransition{
			NewFieldPosition: newPos,
			NewDown:          1,
			NewYardsToGo:     models.GoalLineYardsToGo(newPos),
			Situation:        models.PostPlayNormal,
		}
	}

	// Muffed punt recovered by the kicking team: fresh set of downs at
	// the recovery spot
	if play.PlayType == models.PlayTypePunt && play.Outcome == models.OutcomeFumbleRecovered {
		newPos := clamp(field.FieldPosition+play.YardsGained, 1, 99)
		return models.FieldTransition{
			NewFieldPosition:  newPos,
			NewDown:           1,
			NewYardsToGo:      models.GoalLineYardsToGo(newPos),
			FirstDownAchieved: true,
			Situation:         models.PostPlayNormal,
		}
	}

	// Scrimmage plays: gains, sacks, incompletions, kneels, spikes
	raw := clamp(field.FieldPosition+play.YardsGained, 1, 99)

	if state.Field.Down == 4 && possessionFlips(play, state) {
		// Turnover on downs at the spot
		newPos := 100 - raw
		newPos = clamp(newPos, 1, 99)
		return models.FieldTransition{
			NewFieldPosition: newPos,
			NewDown:          1,
			NewYardsToGo:     models.GoalLineYardsToGo(newPos),
			Situation:        models.PostPlayNormal,
		}
	}

	if firstDownAchieved(play, state) {
		return models.FieldTransition{
			NewFieldPosition:  raw,
			NewDown:           1,
			NewYardsToGo:      models.GoalLineYardsToGo(raw),
			FirstDownAchieved: true,
			Situation:         models.PostPlayNormal,
		}
	}

	yardsToGo := field.YardsToGo - play.YardsGained
	if yardsToGo > 100-raw {
		yardsToGo = 100 - raw
	}
	if yardsToGo < 1 {
		yardsToGo = 1
	}
	return models.FieldTransition{
		NewFieldPosition: raw,
		NewDown:          field.Down + 1,
		NewYardsToGo:     yardsToGo,
		Situation:        models.PostPlayNormal,
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
