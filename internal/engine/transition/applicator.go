package transition

import (
	"fmt"

	"github.com/stitts-dev/gridiron-sim/internal/models"
)

// conversion attempts snap from the two-yard line
const (
	conversionSpot      = 98
	conversionYardsToGo = 2
)

// Applicator is the single writer of game state. It applies a validated
// transition in a fixed order, then checks the state invariants; any
// failure rolls the state back to the pre-play snapshot.
type Applicator struct{}

// Apply mutates the state from the transition. On panic or invariant
// failure the state is restored and an error returned; the state is never
// left half-applied.
func (a *Applicator) Apply(t models.Transition, state *models.GameState) (err error) {
	snapshot := state.Snapshot()

	defer func() {
		if r := recover(); r != nil {
			state.Restore(snapshot)
			err = fmt.Errorf("transition application panicked: %v", r)
		}
	}()

	// Possession
	state.Field.PossessionTeamID = t.Possession.NewPossessionTeam
	state.Field.DefensiveTeamID = t.Possession.NewDefensiveTeam
	state.Possession = t.Possession.NewPossessionTeam

	// Field. A kickoff reset or pending conversion overrides the normal
	// down-and-distance update.
	switch {
	case t.Special.KickoffReset:
		state.Field.PossessionTeamID = t.Special.ReceivingTeam
		state.Field.DefensiveTeamID = state.Opponent(t.Special.ReceivingTeam)
		state.Possession = t.Special.ReceivingTeam
		state.Field.FieldPosition = t.Special.ResetFieldPosition
		state.Field.Down = 1
		state.Field.YardsToGo = models.GoalLineYardsToGo(t.Special.ResetFieldPosition)
	case t.Special.ConversionPending:
		state.Field.FieldPosition = conversionSpot
		state.Field.Down = 1
		state.Field.YardsToGo = conversionYardsToGo
	default:
		state.Field.FieldPosition = t.Field.NewFieldPosition
		state.Field.Down = t.Field.NewDown
		state.Field.YardsToGo = t.Field.NewYardsToGo
	}

	// Score
	state.Scoreboard[state.HomeTeamID] = t.Score.HomeScore
	state.Scoreboard[state.AwayTeamID] = t.Score.AwayScore

	// Clock
	state.Clock.SecondsRemaining = t.Clock.NewSecondsRemaining
	state.Clock.Quarter = t.Clock.NewQuarter
	if t.Clock.TwoMinuteWarning {
		state.Clock.TwoMinuteWarningConsumed[state.Clock.Half()] = true
	}
	if t.Clock.TimeoutUsed && state.Clock.TimeoutsRemaining[t.Clock.TimeoutTeam] > 0 {
		state.Clock.TimeoutsRemaining[t.Clock.TimeoutTeam]--
	}

	// Special flags consumed by the orchestrator's scheduler
	if t.Special.KickoffConsumed {
		state.KickoffPending = false
		state.KickoffReceiver = ""
	}
	state.ConversionPending = t.Special.ConversionPending
	state.SafetyKickPending = t.Special.SafetyKick

	state.PlayNumber++

	if verr := state.Validate(); verr != nil {
		state.Restore(snapshot)
		return fmt.Errorf("post-apply state invalid: %w", verr)
	}
	return nil
}
