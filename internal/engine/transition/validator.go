package transition

import (
	"fmt"

	"github.com/stitts-dev/gridiron-sim/internal/models"
)

// Validator checks a calculated transition against the rule set before the
// applicator touches state. It never mutates anything; it only reports.
// Rule codes are stable identifiers recorded in the audit log.
type Validator struct{}

// Validate returns every rule violation found in the transition. An empty
// slice means the transition is safe to apply.
func (v *Validator) Validate(t models.Transition, play models.PlayResult, state *models.GameState) []models.Violation {
	var violations []models.Violation

	add := func(code, format string, args ...interface{}) {
		violations = append(violations, models.Violation{
			Code:    code,
			Message: fmt.Sprintf(format, args...),
		})
	}

	// Field rules
	if t.Field.NewFieldPosition < 0 || t.Field.NewFieldPosition > 100 {
		add("FIELD.001", "field position %d outside [0,100]", t.Field.NewFieldPosition)
	}
	if t.Field.Situation == models.PostPlayNormal {
		if t.Field.NewYardsToGo < 1 {
			add("FIELD.004", "yards to go %d below 1", t.Field.NewYardsToGo)
		} else if t.Field.NewYardsToGo > 100-t.Field.NewFieldPosition {
			add("FIELD.004", "yards to go %d exceeds distance to goal %d",
				t.Field.NewYardsToGo, 100-t.Field.NewFieldPosition)
		}
	}

	// Down rules
	if t.Field.NewDown < 1 || t.Field.NewDown > 4 {
		add("DOWN.001", "down %d outside [1,4]", t.Field.NewDown)
	}
	if t.Field.NewDown == 1 &&
		!t.Field.FirstDownAchieved &&
		!t.Possession.PossessionChanged &&
		!t.Special.KickoffReset &&
		t.Field.Situation == models.PostPlayNormal &&
		play.PlayType != models.PlayTypeKickoff {
		add("DOWN.005", "down reset to 1 without a first down, possession change or score")
	}

	// Possession rules
	if t.Possession.NewPossessionTeam == t.Possession.NewDefensiveTeam {
		add("POSS.001", "possession and defensive team are both %s", t.Possession.NewPossessionTeam)
	} else if !knownTeam(state, t.Possession.NewPossessionTeam) || !knownTeam(state, t.Possession.NewDefensiveTeam) {
		add("POSS.001", "possession transition names a team not in this game")
	}

	// Score rules
	if t.Score.ScoreOccurred {
		if t.Score.PointsScored != t.Score.ScoreType.Points() {
			add("SCORE.001", "%s worth %d points recorded as %d",
				t.Score.ScoreType, t.Score.ScoreType.Points(), t.Score.PointsScored)
		}
		if t.Score.HomeScore < state.Scoreboard[state.HomeTeamID] ||
			t.Score.AwayScore < state.Scoreboard[state.AwayTeamID] {
			add("SCORE.001", "scoreboard decreased")
		}
	} else if t.Score.HomeScore != state.Scoreboard[state.HomeTeamID] ||
		t.Score.AwayScore != state.Scoreboard[state.AwayTeamID] {
		add("SCORE.001", "scoreboard changed without a score")
	}

	// Clock rules
	if t.Clock.NewSecondsRemaining < 0 {
		add("CLOCK.001", "seconds remaining negative: %d", t.Clock.NewSecondsRemaining)
	}
	if t.Clock.NewSecondsRemaining > models.SecondsPerQuarter {
		add("CLOCK.001", "seconds remaining %d exceeds quarter length", t.Clock.NewSecondsRemaining)
	}
	if t.Clock.SecondsElapsed < 0 {
		add("CLOCK.001", "seconds elapsed negative: %d", t.Clock.SecondsElapsed)
	}

	// Cross-component rules. A fourth-down snap that neither moved the
	// chains nor scored is a turnover on downs; punts and field goals
	// resolve possession on their own terms.
	if state.Field.Down == 4 &&
		!t.Field.FirstDownAchieved &&
		!play.IsScore &&
		play.PlayType != models.PlayTypePunt &&
		play.PlayType != models.PlayTypeFieldGoal &&
		!t.Possession.PossessionChanged {
		add("CROSS.004", "failed fourth down did not turn the ball over")
	}
	if t.Field.FirstDownAchieved && !t.Score.ScoreOccurred && t.Possession.PossessionChanged {
		add("CROSS.005", "first down awarded on a play that changed possession")
	}

	if t.Field.Situation == models.PostPlayTouchdown {
		if !t.Score.ScoreOccurred || t.Score.ScoreType != models.ScoreTypeTouchdown {
			add("CROSS.006", "touchdown field situation without a touchdown score")
		}
		if t.Possession.PossessionChanged {
			add("CROSS.006", "possession flipped on a touchdown before the conversion")
		}
	}
	if t.Field.Situation == models.PostPlaySafety &&
		(!t.Score.ScoreOccurred || t.Score.ScoreType != models.ScoreTypeSafety) {
		add("CROSS.006", "safety field situation without a safety score")
	}

	if t.Special.KickoffReset && !t.Possession.PossessionChanged {
		add("CROSS.007", "kickoff reset without a possession change")
	}
	if t.Special.ConversionPending && t.Possession.PossessionChanged {
		add("CROSS.007", "conversion pending but possession changed")
	}
	if t.Special.KickoffReset && t.Special.ConversionPending {
		add("CROSS.007", "kickoff reset and conversion pending on the same play")
	}

	return violations
}

func knownTeam(state *models.GameState, teamID string) bool {
	return teamID == state.HomeTeamID || teamID == state.AwayTeamID
}
