package models

import (
	"time"

	"github.com/google/uuid"
)

// AuditEntry is the per-play immutable record of input, transition,
// output and any validation violations.
type AuditEntry struct {
	GameID       uuid.UUID   `json:"game_id"`
	PlayNumber   int         `json:"play_number"`
	PreState     *GameState  `json:"pre_state"`
	Play         PlayResult  `json:"play"`
	Transition   Transition  `json:"transition"`
	PostState    *GameState  `json:"post_state"`
	Violations   []Violation `json:"violations,omitempty"`
	TimeElapsed  int         `json:"time_elapsed"`
	FallbackUsed bool        `json:"fallback_used"`
	RecordedAt   time.Time   `json:"recorded_at"`
}

// TeamStats is the per-team statistical line accumulated from the audit
// stream
type TeamStats struct {
	TotalYards           int `json:"total_yards"`
	RushYards            int `json:"rush_yards"`
	PassYards            int `json:"pass_yards"`
	Turnovers            int `json:"turnovers"`
	FirstDowns           int `json:"first_downs"`
	ThirdDownAttempts    int `json:"third_down_attempts"`
	ThirdDownConversions int `json:"third_down_conversions"`
	FourthDownAttempts   int `json:"fourth_down_attempts"`
	FourthDownConversions int `json:"fourth_down_conversions"`
	TimeOfPossession     int `json:"time_of_possession"` // seconds
	Plays                int `json:"plays"`
	Sacks                int `json:"sacks_allowed"`
}

// GameResult is the final output of one simulated game
type GameResult struct {
	GameID              uuid.UUID             `json:"game_id"`
	Winner              string                `json:"winner"` // empty on a tie
	FinalScores         map[string]int        `json:"final_scores"`
	TotalPlays          int                   `json:"total_plays"`
	TotalSeconds        int                   `json:"total_seconds"`
	Overtime            bool                  `json:"overtime"`
	HadValidationErrors bool                  `json:"had_validation_errors"`
	ViolationCodes      []string              `json:"violation_codes,omitempty"`
	PlayByPlay          []*AuditEntry         `json:"play_by_play,omitempty"`
	TeamStats           map[string]*TeamStats `json:"team_stats"`
	Seed                int64                 `json:"seed"`
	CompletedAt         time.Time             `json:"completed_at"`
}

// SimulationOptions tunes a single game run
type SimulationOptions struct {
	Seed              int64 `json:"seed"`
	OvertimeEnabled   bool  `json:"overtime_enabled"`
	KickoffReturnSpot int   `json:"kickoff_return_spot"`
	MaxPlays          int   `json:"max_plays"`
	IncludePlayByPlay bool  `json:"include_play_by_play"`
}

// DefaultSimulationOptions returns the standard rule set
func DefaultSimulationOptions() SimulationOptions {
	return SimulationOptions{
		Seed:              1,
		OvertimeEnabled:   true,
		KickoffReturnSpot: 25,
		MaxPlays:          240,
		IncludePlayByPlay: true,
	}
}

// SimulationRequest is the external input for one game
type SimulationRequest struct {
	HomeTeam TeamConfig        `json:"home_team"`
	AwayTeam TeamConfig        `json:"away_team"`
	Options  SimulationOptions `json:"options"`
}

// BatchSimulationRequest runs the same matchup across many seeds
type BatchSimulationRequest struct {
	HomeTeam TeamConfig        `json:"home_team"`
	AwayTeam TeamConfig        `json:"away_team"`
	NumGames int               `json:"num_games"`
	BaseSeed int64             `json:"base_seed"`
	Options  SimulationOptions `json:"options"`
}

// BatchSimulationResult aggregates a seed sweep
type BatchSimulationResult struct {
	SimulationID   string             `json:"simulation_id"`
	NumGames       int                `json:"num_games"`
	Wins           map[string]int     `json:"wins"`
	Ties           int                `json:"ties"`
	MeanScores     map[string]float64 `json:"mean_scores"`
	ScoreStdDev    map[string]float64 `json:"score_std_dev"`
	MeanTotalPlays float64            `json:"mean_total_plays"`
	OvertimeGames  int                `json:"overtime_games"`
	ExecutionTime  time.Duration      `json:"execution_time"`
	CreatedAt      time.Time          `json:"created_at"`
}
