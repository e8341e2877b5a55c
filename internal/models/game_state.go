package models

import (
	"fmt"

	"github.com/google/uuid"
)

const (
	SecondsPerQuarter  = 900
	SecondsPerOvertime = 600
	RegulationQuarters = 4
	OvertimeQuarter    = 5
	TimeoutsPerHalf    = 3
)

// FieldState is the down-and-distance picture from the perspective of the
// possessing team: 0 is the offense's own goal line, 100 the opponent end
// zone.
type FieldState struct {
	FieldPosition    int    `json:"field_position"`
	Down             int    `json:"down"`
	YardsToGo        int    `json:"yards_to_go"`
	PossessionTeamID string `json:"possession_team_id"`
	DefensiveTeamID  string `json:"defensive_team_id"`
}

// DistanceToGoal returns yards between the ball and the opponent goal line
func (f FieldState) DistanceToGoal() int {
	return 100 - f.FieldPosition
}

// Clock tracks quarter and time state for one game
type Clock struct {
	Quarter                  int             `json:"quarter"`
	SecondsRemaining         int             `json:"seconds_remaining"`
	Overtime                 bool            `json:"overtime"`
	TwoMinuteWarningConsumed map[int]bool    `json:"two_minute_warning_consumed"` // keyed by half (1, 2)
	TimeoutsRemaining        map[string]int  `json:"timeouts_remaining"`
}

// Half returns the current half (1 or 2); overtime counts as the second half
func (c Clock) Half() int {
	if c.Quarter <= 2 {
		return 1
	}
	return 2
}

// GameState is the aggregate state of one in-progress game. It is created
// at kickoff and mutated only through the transition applicator.
type GameState struct {
	GameID     uuid.UUID      `json:"game_id"`
	Field      FieldState     `json:"field"`
	Clock      Clock          `json:"clock"`
	Scoreboard map[string]int `json:"scoreboard"`
	Possession string         `json:"possession"`

	HomeTeamID string `json:"home_team_id"`
	AwayTeamID string `json:"away_team_id"`

	// Flags set by the special-situations calculator and consumed by the
	// orchestrator when scheduling the next play.
	KickoffPending    bool   `json:"kickoff_pending"`
	KickoffReceiver   string `json:"kickoff_receiver"`
	SafetyKickPending bool   `json:"safety_kick_pending"`
	ConversionPending bool   `json:"conversion_pending"`

	PlayNumber int `json:"play_number"`
}

// NewGameState builds the pre-kickoff state for a game. The receiving team
// is decided by the orchestrator's opening coin toss.
func NewGameState(gameID uuid.UUID, homeTeamID, awayTeamID, receivingTeamID string) *GameState {
	kicking := homeTeamID
	if receivingTeamID == homeTeamID {
		kicking = awayTeamID
	}
	return &GameState{
		GameID: gameID,
		Field: FieldState{
			FieldPosition:    35,
			Down:             1,
			YardsToGo:        10,
			PossessionTeamID: kicking,
			DefensiveTeamID:  receivingTeamID,
		},
		Clock: Clock{
			Quarter:                  1,
			SecondsRemaining:         SecondsPerQuarter,
			TwoMinuteWarningConsumed: map[int]bool{1: false, 2: false},
			TimeoutsRemaining: map[string]int{
				homeTeamID: TimeoutsPerHalf,
				awayTeamID: TimeoutsPerHalf,
			},
		},
		Scoreboard:      map[string]int{homeTeamID: 0, awayTeamID: 0},
		Possession:      kicking,
		HomeTeamID:      homeTeamID,
		AwayTeamID:      awayTeamID,
		KickoffPending:  true,
		KickoffReceiver: receivingTeamID,
	}
}

// Opponent returns the other team id
func (g *GameState) Opponent(teamID string) string {
	if teamID == g.HomeTeamID {
		return g.AwayTeamID
	}
	return g.HomeTeamID
}

// ScoreDifferential returns the possessing team's score minus the
// defense's score
func (g *GameState) ScoreDifferential() int {
	return g.Scoreboard[g.Field.PossessionTeamID] - g.Scoreboard[g.Field.DefensiveTeamID]
}

// Snapshot returns a deep copy used for rollback and audit records
func (g *GameState) Snapshot() *GameState {
	cp := *g
	cp.Scoreboard = make(map[string]int, len(g.Scoreboard))
	for k, v := range g.Scoreboard {
		cp.Scoreboard[k] = v
	}
	cp.Clock.TwoMinuteWarningConsumed = make(map[int]bool, len(g.Clock.TwoMinuteWarningConsumed))
	for k, v := range g.Clock.TwoMinuteWarningConsumed {
		cp.Clock.TwoMinuteWarningConsumed[k] = v
	}
	cp.Clock.TimeoutsRemaining = make(map[string]int, len(g.Clock.TimeoutsRemaining))
	for k, v := range g.Clock.TimeoutsRemaining {
		cp.Clock.TimeoutsRemaining[k] = v
	}
	return &cp
}

// Restore copies a snapshot back into the receiver in place
func (g *GameState) Restore(snapshot *GameState) {
	restored := snapshot.Snapshot()
	*g = *restored
}

// Validate checks the universal state invariants. Used by the applicator
// as a post-condition and by tests after every play.
func (g *GameState) Validate() error {
	if g.Field.FieldPosition < 0 || g.Field.FieldPosition > 100 {
		return fmt.Errorf("field position out of range: %d", g.Field.FieldPosition)
	}
	if g.Field.Down < 1 || g.Field.Down > 4 {
		return fmt.Errorf("down out of range: %d", g.Field.Down)
	}
	if g.Field.YardsToGo > g.Field.DistanceToGoal() {
		return fmt.Errorf("yards to go %d exceeds distance to goal %d", g.Field.YardsToGo, g.Field.DistanceToGoal())
	}
	if g.Clock.SecondsRemaining < 0 {
		return fmt.Errorf("seconds remaining negative: %d", g.Clock.SecondsRemaining)
	}
	if g.Field.PossessionTeamID == g.Field.DefensiveTeamID {
		return fmt.Errorf("possession and defensive team are both %s", g.Field.PossessionTeamID)
	}
	return nil
}

// GoalLineYardsToGo applies the goal-line rule: a fresh set of downs is
// ten yards unless the goal line is closer. Never hardcode 10.
func GoalLineYardsToGo(fieldPosition int) int {
	remaining := 100 - fieldPosition
	if remaining < 10 {
		return remaining
	}
	return 10
}
