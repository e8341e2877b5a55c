package clockstrategy

import (
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/gridiron-sim/internal/archetype"
)

// Registry maps archetype ids to clock strategies. Resolution walks the
// fallback chain: exact id, alias, balanced, hard-coded placeholder.
type Registry struct {
	strategies map[string]Strategy
	aliases    map[string]string
	fallback   Strategy
	logger     *logrus.Logger
}

// NewRegistry builds strategies for every configured coach archetype
func NewRegistry(cfg *archetype.Config, logger *logrus.Logger) *Registry {
	strategies := make(map[string]Strategy, len(cfg.Coaches))
	for name, coach := range cfg.Coaches {
		strategies[name] = NewArchetypeStrategy(coach.Clock)
	}
	return &Registry{
		strategies: strategies,
		aliases:    cfg.Aliases,
		fallback:   placeholderStrategy{},
		logger:     logger,
	}
}

// Resolve returns the strategy for an archetype id, never nil
func (r *Registry) Resolve(archetypeID string) Strategy {
	if s, ok := r.strategies[archetypeID]; ok {
		return s
	}
	if alias, ok := r.aliases[archetypeID]; ok {
		if s, ok := r.strategies[alias]; ok {
			r.logger.WithFields(logrus.Fields{
				"requested": archetypeID,
				"alias":     alias,
			}).Debug("Clock strategy resolved through alias")
			return s
		}
	}
	if s, ok := r.strategies[archetype.Balanced]; ok {
		r.logger.WithField("requested", archetypeID).Warn("Unknown clock archetype, using balanced")
		return s
	}
	r.logger.WithField("requested", archetypeID).Warn("No balanced clock strategy registered, using placeholder")
	return r.fallback
}

// Register adds or replaces a strategy, used by tests and custom setups
func (r *Registry) Register(archetypeID string, s Strategy) {
	r.strategies[archetypeID] = s
}
