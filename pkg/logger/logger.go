package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var Logger *logrus.Logger

// InitLogger initializes the structured logger with proper configuration
func InitLogger(logLevel string, isDevelopment bool) *logrus.Logger {
	log := logrus.New()

	// Override with environment if not provided
	if logLevel == "" {
		logLevel = os.Getenv("LOG_LEVEL")
		if logLevel == "" {
			if isDevelopment {
				logLevel = "debug"
			} else {
				logLevel = "info"
			}
		}
	}

	if level, err := logrus.ParseLevel(strings.ToLower(logLevel)); err == nil {
		log.SetLevel(level)
	} else {
		log.SetLevel(logrus.InfoLevel)
		log.WithField("invalid_level", logLevel).Warn("Invalid LOG_LEVEL, using INFO")
	}

	// Set formatter based on environment
	if !isDevelopment || strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
			ForceColors:     true,
		})
	}

	log.SetOutput(os.Stdout)

	Logger = log

	return log
}

// GetLogger returns the global logger instance
func GetLogger() *logrus.Logger {
	if Logger == nil {
		return InitLogger("info", false)
	}
	return Logger
}

// WithService creates a logger with service context
func WithService(serviceName string) *logrus.Entry {
	return GetLogger().WithField("service", serviceName)
}

// WithGame creates a logger with game context
func WithGame(gameID string) *logrus.Entry {
	return GetLogger().WithField("game_id", gameID)
}

// WithGameContext creates a logger with full game context
func WithGameContext(gameID, homeTeam, awayTeam string) *logrus.Entry {
	return GetLogger().WithFields(logrus.Fields{
		"game_id":   gameID,
		"home_team": homeTeam,
		"away_team": awayTeam,
	})
}

// WithPlay creates a logger with per-play context
func WithPlay(gameID string, playNumber int) *logrus.Entry {
	return GetLogger().WithFields(logrus.Fields{
		"game_id":     gameID,
		"play_number": playNumber,
	})
}

// WithSimulation creates a logger with batch simulation context
func WithSimulation(simulationID string, numGames int) *logrus.Entry {
	return GetLogger().WithFields(logrus.Fields{
		"simulation_id": simulationID,
		"num_games":     numGames,
	})
}
