package models

// PlayResult is the immutable outcome record produced by the matchup
// engine. The clock strategy fills TimeElapsed before the state manager
// processes the play.
type PlayResult struct {
	PlayType    PlayType    `json:"play_type"`
	KickContext KickContext `json:"kick_context,omitempty"`
	Outcome     Outcome     `json:"outcome"`
	YardsGained int         `json:"yards_gained"`

	IsScore           bool `json:"is_score"`
	PointsScored      int  `json:"points_scored"`
	IsTurnover        bool `json:"is_turnover"`
	FirstDownAchieved bool `json:"first_down_achieved"`
	StopsClock        bool `json:"stops_clock"`

	TimeElapsed int `json:"time_elapsed"`

	// Context
	Formation     string `json:"formation,omitempty"`
	DefensiveCall string `json:"defensive_call,omitempty"`
	PrimaryPlayer string `json:"primary_player,omitempty"`
	Tackler       string `json:"tackler,omitempty"`
	Description   string `json:"description,omitempty"`
}

// ChangesPossession reports whether the outcome itself hands the ball to
// the defense. Turnover on downs is decided by the possession calculator,
// not here.
func (p PlayResult) ChangesPossession() bool {
	switch p.Outcome {
	case OutcomeInterception, OutcomeFumbleLost, OutcomePuntDowned, OutcomePuntBlocked,
		OutcomeFieldGoalMissed, OutcomeKickReturn:
		return true
	}
	return false
}
