package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"gorm.io/gorm"

	"github.com/stitts-dev/gridiron-sim/internal/models"
)

// ResultStore persists completed games behind a circuit breaker so a
// database outage degrades persistence instead of failing simulations.
type ResultStore struct {
	db      *gorm.DB
	breaker *gobreaker.CircuitBreaker
	logger  *logrus.Entry
}

// NewResultStore wires the store. failureThreshold is the consecutive
// failure count that opens the breaker.
func NewResultStore(db *gorm.DB, failureThreshold int, logger *logrus.Entry) *ResultStore {
	if failureThreshold <= 0 {
		failureThreshold = 5
	}
	settings := gobreaker.Settings{
		Name:        "result-store",
		MaxRequests: 3,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(failureThreshold)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Result store circuit breaker state change")
		},
	}
	return &ResultStore{
		db:      db,
		breaker: gobreaker.NewCircuitBreaker(settings),
		logger:  logger,
	}
}

// Migrate creates the result tables
func (s *ResultStore) Migrate() error {
	return s.db.AutoMigrate(&models.GameRecord{}, &models.PlayRecord{})
}

// SaveResult writes the game record and its play-by-play rows in one
// transaction
func (s *ResultStore) SaveResult(ctx context.Context, result *models.GameResult, homeTeamID, awayTeamID string) error {
	_, err := s.breaker.Execute(func() (interface{}, error) {
		statsJSON, merr := json.Marshal(result.TeamStats)
		if merr != nil {
			return nil, fmt.Errorf("failed to marshal team stats: %w", merr)
		}

		record := models.GameRecord{
			ID:                  result.GameID,
			HomeTeamID:          homeTeamID,
			AwayTeamID:          awayTeamID,
			HomeScore:           result.FinalScores[homeTeamID],
			AwayScore:           result.FinalScores[awayTeamID],
			Winner:              result.Winner,
			TotalPlays:          result.TotalPlays,
			TotalSeconds:        result.TotalSeconds,
			Overtime:            result.Overtime,
			HadValidationErrors: result.HadValidationErrors,
			Seed:                result.Seed,
			TeamStatsJSON:       string(statsJSON),
			CreatedAt:           result.CompletedAt,
		}

		return nil, s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&record).Error; err != nil {
				return fmt.Errorf("failed to save game record: %w", err)
			}
			if len(result.PlayByPlay) == 0 {
				return nil
			}
			plays := make([]models.PlayRecord, 0, len(result.PlayByPlay))
			for _, entry := range result.PlayByPlay {
				entryJSON, merr := json.Marshal(entry)
				if merr != nil {
					return fmt.Errorf("failed to marshal play %d: %w", entry.PlayNumber, merr)
				}
				plays = append(plays, models.PlayRecord{
					GameID:      result.GameID,
					PlayNumber:  entry.PlayNumber,
					PlayType:    string(entry.Play.PlayType),
					Outcome:     string(entry.Play.Outcome),
					YardsGained: entry.Play.YardsGained,
					Description: entry.Play.Description,
					EntryJSON:   string(entryJSON),
					CreatedAt:   entry.RecordedAt,
				})
			}
			if err := tx.CreateInBatches(plays, 100).Error; err != nil {
				return fmt.Errorf("failed to save play records: %w", err)
			}
			return nil
		})
	})
	return err
}

// GetResult loads a persisted game record
func (s *ResultStore) GetResult(ctx context.Context, gameID uuid.UUID) (*models.GameRecord, error) {
	value, err := s.breaker.Execute(func() (interface{}, error) {
		var record models.GameRecord
		if err := s.db.WithContext(ctx).First(&record, "id = ?", gameID).Error; err != nil {
			return nil, err
		}
		return &record, nil
	})
	if err != nil {
		return nil, err
	}
	return value.(*models.GameRecord), nil
}

// GetPlays loads the play-by-play rows for one game in play order
func (s *ResultStore) GetPlays(ctx context.Context, gameID uuid.UUID) ([]models.PlayRecord, error) {
	value, err := s.breaker.Execute(func() (interface{}, error) {
		var plays []models.PlayRecord
		if err := s.db.WithContext(ctx).
			Where("game_id = ?", gameID).
			Order("play_number asc").
			Find(&plays).Error; err != nil {
			return nil, err
		}
		return plays, nil
	})
	if err != nil {
		return nil, err
	}
	return value.([]models.PlayRecord), nil
}
