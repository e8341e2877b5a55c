package archetype

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/stitts-dev/gridiron-sim/internal/models"
)

// fileOverrides mirrors the designer-editable YAML shape. Only present
// sections override the compiled defaults.
type fileOverrides struct {
	Coaches       map[string]CoachArchetype          `mapstructure:"coaches"`
	Aliases       map[string]string                  `mapstructure:"aliases"`
	BalanceTable  map[string]map[string]float64      `mapstructure:"balance_table"`
	RunConcepts   map[string]RunConceptMatrix        `mapstructure:"run_concepts"`
	RouteConcepts map[string]RouteConceptMatrix      `mapstructure:"route_concepts"`
	Formations    map[string]float64                 `mapstructure:"formation_modifiers"`
}

// Load builds the archetype configuration: compiled defaults merged with
// an optional archetypes.yaml in dir. A missing file is fine; a malformed
// one is a fatal configuration error.
func Load(dir string, log *logrus.Logger) (*Config, error) {
	cfg := Default()

	if dir == "" {
		log.Debug("No archetype directory configured, using compiled defaults")
		return cfg, nil
	}

	path := filepath.Join(dir, "archetypes.yaml")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.WithField("path", path).Debug("No archetype overrides found, using compiled defaults")
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read archetype config %s: %w", path, err)
	}

	var overrides fileOverrides
	if err := v.Unmarshal(&overrides); err != nil {
		return nil, fmt.Errorf("failed to parse archetype config %s: %w", path, err)
	}

	merge(cfg, overrides)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("archetype config %s invalid after merge: %w", path, err)
	}

	log.WithFields(logrus.Fields{
		"path":           path,
		"coaches":        len(overrides.Coaches),
		"run_concepts":   len(overrides.RunConcepts),
		"route_concepts": len(overrides.RouteConcepts),
	}).Info("Loaded archetype overrides")

	return cfg, nil
}

func merge(cfg *Config, overrides fileOverrides) {
	for name, coach := range overrides.Coaches {
		if coach.Name == "" {
			coach.Name = name
		}
		cfg.Coaches[name] = coach
	}
	for alias, target := range overrides.Aliases {
		cfg.Aliases[alias] = target
	}
	for situation, probs := range overrides.BalanceTable {
		row := make(map[models.PlayType]float64, len(probs))
		for playType, p := range probs {
			row[models.PlayType(playType)] = p
		}
		cfg.BalanceTable[models.Situation(situation)] = row
	}
	for name, matrix := range overrides.RunConcepts {
		cfg.RunConcepts[RunConcept(name)] = matrix
	}
	for name, matrix := range overrides.RouteConcepts {
		cfg.RouteConcepts[RouteConcept(name)] = matrix
	}
	for formation, mod := range overrides.Formations {
		cfg.FormationModifiers[formation] = mod
	}
}
