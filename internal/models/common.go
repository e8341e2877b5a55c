package models

import "time"

// PlayType represents the offensive play call
type PlayType string

const (
	PlayTypeRun        PlayType = "run"
	PlayTypePass       PlayType = "pass"
	PlayTypePunt       PlayType = "punt"
	PlayTypeFieldGoal  PlayType = "field_goal"
	PlayTypeExtraPoint PlayType = "extra_point"
	PlayTypeTwoPoint   PlayType = "two_point"
	PlayTypeKickoff    PlayType = "kickoff"
	PlayTypeKneel      PlayType = "kneel"
	PlayTypeSpike      PlayType = "spike"
)

// IsKick reports whether the play is resolved by the kicking model
func (p PlayType) IsKick() bool {
	switch p {
	case PlayTypePunt, PlayTypeFieldGoal, PlayTypeExtraPoint, PlayTypeKickoff:
		return true
	}
	return false
}

// KickContext disambiguates kick plays. A field-goal attempt from the
// opponent 1 must never be reclassified as an extra point, so the caller
// always passes the tag explicitly rather than relying on field position.
type KickContext string

const (
	KickContextNone       KickContext = ""
	KickContextFieldGoal  KickContext = "field_goal"
	KickContextExtraPoint KickContext = "extra_point"
	KickContextTwoPoint   KickContext = "two_point"
	KickContextKickoff    KickContext = "kickoff"
	KickContextSafetyKick KickContext = "safety_kick"
)

// Outcome represents the resolved result of a play
type Outcome string

const (
	OutcomeGain             Outcome = "gain"
	OutcomeIncompletion     Outcome = "incompletion"
	OutcomeSack             Outcome = "sack"
	OutcomeInterception     Outcome = "interception"
	OutcomeFumbleLost       Outcome = "fumble_lost"
	OutcomeFumbleRecovered  Outcome = "fumble_recovered_offense"
	OutcomeTouchdown        Outcome = "touchdown"
	OutcomeFieldGoalGood    Outcome = "field_goal_good"
	OutcomeFieldGoalMissed  Outcome = "field_goal_missed"
	OutcomeExtraPointGood   Outcome = "extra_point_good"
	OutcomeExtraPointMissed Outcome = "extra_point_missed"
	OutcomeTwoPointGood     Outcome = "two_point_good"
	OutcomeTwoPointFailed   Outcome = "two_point_failed"
	OutcomePuntDowned       Outcome = "punt_downed"
	OutcomePuntBlocked      Outcome = "punt_blocked"
	OutcomeKickReturn       Outcome = "kick_return"
	OutcomeSafety           Outcome = "safety"
	OutcomeTurnoverOnDowns  Outcome = "turnover_on_downs"
	OutcomePenalty          Outcome = "penalty"
	OutcomeOutOfBounds      Outcome = "out_of_bounds"
)

// ScoreType identifies how points were scored
type ScoreType string

const (
	ScoreTypeNone       ScoreType = ""
	ScoreTypeTouchdown  ScoreType = "touchdown"
	ScoreTypeFieldGoal  ScoreType = "field_goal"
	ScoreTypeSafety     ScoreType = "safety"
	ScoreTypeExtraPoint ScoreType = "extra_point"
	ScoreTypeTwoPoint   ScoreType = "two_point"
)

// Points returns the point value for a score type
func (s ScoreType) Points() int {
	switch s {
	case ScoreTypeTouchdown:
		return 6
	case ScoreTypeFieldGoal:
		return 3
	case ScoreTypeSafety:
		return 2
	case ScoreTypeExtraPoint:
		return 1
	case ScoreTypeTwoPoint:
		return 2
	}
	return 0
}

// Situation classifies down-and-distance context for play calling,
// personnel and matchup lookups
type Situation string

const (
	SituationFirstAndTen  Situation = "1st_and_10"
	SituationSecondShort  Situation = "2nd_short"
	SituationSecondMedium Situation = "2nd_medium"
	SituationSecondLong   Situation = "2nd_long"
	SituationThirdShort   Situation = "3rd_short"
	SituationThirdMedium  Situation = "3rd_medium"
	SituationThirdLong    Situation = "3rd_long"
	SituationFourthShort  Situation = "4th_short"
	SituationFourthMedium Situation = "4th_medium"
	SituationFourthLong   Situation = "4th_long"
	SituationGoalToGo     Situation = "goal_to_go"
	SituationRedZone      Situation = "red_zone"
)

// ClassifySituation buckets a field state into a play-calling situation.
// Goal-to-go and red zone take precedence over pure down-and-distance.
func ClassifySituation(field FieldState) Situation {
	if field.YardsToGo >= 100-field.FieldPosition && field.FieldPosition >= 90 {
		return SituationGoalToGo
	}
	if field.FieldPosition >= 80 {
		return SituationRedZone
	}

	switch field.Down {
	case 1:
		return SituationFirstAndTen
	case 2:
		switch {
		case field.YardsToGo <= 3:
			return SituationSecondShort
		case field.YardsToGo <= 7:
			return SituationSecondMedium
		default:
			return SituationSecondLong
		}
	case 3:
		switch {
		case field.YardsToGo <= 3:
			return SituationThirdShort
		case field.YardsToGo <= 7:
			return SituationThirdMedium
		default:
			return SituationThirdLong
		}
	case 4:
		switch {
		case field.YardsToGo <= 3:
			return SituationFourthShort
		case field.YardsToGo <= 8:
			return SituationFourthMedium
		default:
			return SituationFourthLong
		}
	}
	return SituationFirstAndTen
}

// GameContext carries the situational inputs consumed by the clock
// strategies and play caller. All context arrives by value; strategies
// hold no state between calls.
type GameContext struct {
	OffensiveArchetype string `json:"offensive_archetype"`
	DefensiveArchetype string `json:"defensive_archetype"`
	Quarter            int    `json:"quarter"`
	SecondsRemaining   int    `json:"seconds_remaining"`
	ScoreDifferential  int    `json:"score_differential"` // offense minus defense
	Down               int    `json:"down"`
	YardsToGo          int    `json:"yards_to_go"`
	FieldPosition      int    `json:"field_position"`
	NoHuddle           bool   `json:"no_huddle"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error   string            `json:"error"`
	Code    string            `json:"code"`
	Details map[string]string `json:"details,omitempty"`
}

// HealthStatus represents the health status of the service
type HealthStatus struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}
