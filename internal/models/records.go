package models

import (
	"time"

	"github.com/google/uuid"
)

// GameRecord is the persisted row for a completed game. Team stats are
// serialized JSON in a text column.
type GameRecord struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	HomeTeamID          string    `gorm:"index" json:"home_team_id"`
	AwayTeamID          string    `gorm:"index" json:"away_team_id"`
	HomeScore           int       `json:"home_score"`
	AwayScore           int       `json:"away_score"`
	Winner              string    `json:"winner"`
	TotalPlays          int       `json:"total_plays"`
	TotalSeconds        int       `json:"total_seconds"`
	Overtime            bool      `json:"overtime"`
	HadValidationErrors bool      `json:"had_validation_errors"`
	Seed                int64     `json:"seed"`
	TeamStatsJSON       string    `gorm:"type:text" json:"-"`
	CreatedAt           time.Time `json:"created_at"`
}

func (GameRecord) TableName() string {
	return "game_results"
}

// PlayRecord is one persisted play-by-play row
type PlayRecord struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	GameID      uuid.UUID `gorm:"type:uuid;index" json:"game_id"`
	PlayNumber  int       `json:"play_number"`
	PlayType    string    `json:"play_type"`
	Outcome     string    `json:"outcome"`
	YardsGained int       `json:"yards_gained"`
	Description string    `json:"description"`
	EntryJSON   string    `gorm:"type:text" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

func (PlayRecord) TableName() string {
	return "game_plays"
}
