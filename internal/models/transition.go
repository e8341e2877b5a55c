package models

// PostPlaySituation classifies what the field calculator saw at the end
// of the play
type PostPlaySituation string

const (
	PostPlayNormal    PostPlaySituation = "normal"
	PostPlayTouchdown PostPlaySituation = "touchdown"
	PostPlaySafety    PostPlaySituation = "safety"
)

// FieldTransition describes the post-play down-and-distance. Positions are
// expressed from the perspective of the team that will possess the ball
// after the play.
type FieldTransition struct {
	NewFieldPosition  int               `json:"new_field_position"`
	NewDown           int               `json:"new_down"`
	NewYardsToGo      int               `json:"new_yards_to_go"`
	FirstDownAchieved bool              `json:"first_down_achieved"`
	Situation         PostPlaySituation `json:"situation"`
}

// PossessionTransition describes who has the ball after the play
type PossessionTransition struct {
	PossessionChanged bool   `json:"possession_changed"`
	NewPossessionTeam string `json:"new_possession_team"`
	NewDefensiveTeam  string `json:"new_defensive_team"`
}

// ScoreTransition routes a scoring outcome to the scoreboard. Exactly
// these fields; the applicator consumes them without recalculation.
type ScoreTransition struct {
	ScoreOccurred bool      `json:"score_occurred"`
	ScoreType     ScoreType `json:"score_type"`
	PointsScored  int       `json:"points_scored"`
	ScoringTeam   string    `json:"scoring_team"`
	HomeScore     int       `json:"home_score"`
	AwayScore     int       `json:"away_score"`
}

// ClockTransition describes time consumption and quarter movement
type ClockTransition struct {
	SecondsElapsed      int  `json:"seconds_elapsed"`
	NewSecondsRemaining int  `json:"new_seconds_remaining"`
	NewQuarter          int  `json:"new_quarter"`
	QuarterAdvanced     bool `json:"quarter_advanced"`
	HalfEnded           bool `json:"half_ended"`
	RegulationEnded     bool `json:"regulation_ended"`
	ClockStopped        bool `json:"clock_stopped"`
	TwoMinuteWarning    bool `json:"two_minute_warning"`
	TimeoutUsed         bool `json:"timeout_used"`
	TimeoutTeam         string `json:"timeout_team,omitempty"`
}

// SpecialSituationTransition covers post-score resets. When KickoffReset
// is set the applicator skips the normal field update and applies the
// reset directly.
type SpecialSituationTransition struct {
	KickoffReset      bool   `json:"kickoff_reset"`
	ReceivingTeam     string `json:"receiving_team,omitempty"`
	ResetFieldPosition int   `json:"reset_field_position,omitempty"`
	SafetyKick        bool   `json:"safety_kick"`
	ConversionPending bool   `json:"conversion_pending"`
	KickoffConsumed   bool   `json:"kickoff_consumed"`
}

// Transition is the composite pre-application description of all deltas
// one play produces. Pure data; created by the calculators, checked by the
// validator, consumed by the applicator, then recorded in the audit log.
type Transition struct {
	Field      FieldTransition            `json:"field"`
	Possession PossessionTransition       `json:"possession"`
	Score      ScoreTransition            `json:"score"`
	Clock      ClockTransition            `json:"clock"`
	Special    SpecialSituationTransition `json:"special"`
}

// Violation is a single validator rule failure
type Violation struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	return v.Code + ": " + v.Message
}
