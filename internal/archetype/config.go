package archetype

import (
	"fmt"

	"github.com/stitts-dev/gridiron-sim/internal/models"
)

// Coaching archetype identifiers form a closed vocabulary. Unknown values
// fall back to balanced through the alias chain.
const (
	RunHeavy     = "run_heavy"
	Balanced     = "balanced"
	AirRaid      = "air_raid"
	WestCoast    = "west_coast"
	Conservative = "conservative"
	Aggressive   = "aggressive"
)

// RunConcept is a specific run design with a known attribute profile
type RunConcept string

const (
	PowerRun      RunConcept = "power_run"
	InsideZone    RunConcept = "inside_zone"
	OutsideZone   RunConcept = "outside_zone"
	Draw          RunConcept = "draw"
	GoalLinePower RunConcept = "goal_line_power"
)

// RouteConcept is a specific pass design
type RouteConcept string

const (
	QuickGame    RouteConcept = "quick_game"
	Intermediate RouteConcept = "intermediate"
	Vertical     RouteConcept = "vertical"
	Screens      RouteConcept = "screens"
	PlayAction   RouteConcept = "play_action"
)

// ClockProfile holds the additive second adjustments one coaching
// archetype applies on top of the base time table
type ClockProfile struct {
	BaseAdjust         float64 `mapstructure:"base_adjust"`
	RunAdjust          float64 `mapstructure:"run_adjust"`
	PassAdjust         float64 `mapstructure:"pass_adjust"`
	NoHuddleAdjust     float64 `mapstructure:"no_huddle_adjust"`
	CriticalDownAdjust float64 `mapstructure:"critical_down_adjust"`
	FourthDownAdjust   float64 `mapstructure:"fourth_down_adjust"`
}

// CoachArchetype parameterizes both play selection and clock management
// for one coaching philosophy
type CoachArchetype struct {
	Name                  string  `mapstructure:"name"`
	Philosophy            string  `mapstructure:"philosophy"`
	TempoPreference       float64 `mapstructure:"tempo_preference"` // 0 slow .. 1 fast
	UrgencyThreshold      int     `mapstructure:"urgency_threshold"` // seconds left that trigger hurry-up
	TimeoutAggressiveness float64 `mapstructure:"timeout_aggressiveness"`

	// Multiplicative play-call modifiers, renormalized after application
	PlayTypeModifiers map[models.PlayType]float64 `mapstructure:"play_type_modifiers"`

	Clock ClockProfile `mapstructure:"clock"`

	// Fourth-down policy thresholds. The hard rule: distance above the
	// punt threshold punts, at or below the go threshold runs, otherwise
	// field goal inside FG range else punt.
	FourthDownGoThreshold   int `mapstructure:"fourth_down_go_threshold"`
	FourthDownPuntThreshold int `mapstructure:"fourth_down_punt_threshold"`
	FieldGoalRangePosition  int `mapstructure:"field_goal_range_position"`
}

// RunConceptMatrix holds the parameters for one run concept
type RunConceptMatrix struct {
	RBAttributes []string `mapstructure:"rb_attributes"`
	BaseYards    float64  `mapstructure:"base_yards"`
	OLModifier   float64  `mapstructure:"ol_modifier"`
	DLModifier   float64  `mapstructure:"dl_modifier"`
	Variance     float64  `mapstructure:"variance"`
}

// RouteConceptMatrix holds the parameters for one route concept,
// including per-coverage modifiers
type RouteConceptMatrix struct {
	BaseCompletion float64  `mapstructure:"base_completion"`
	BaseYards      float64  `mapstructure:"base_yards"`
	QBAttributes   []string `mapstructure:"qb_attributes"`
	WRAttributes   []string `mapstructure:"wr_attributes"`
	VsMan          float64  `mapstructure:"vs_man"`
	VsZone         float64  `mapstructure:"vs_zone"`
	VsBlitz        float64  `mapstructure:"vs_blitz"`
	VsPrevent      float64  `mapstructure:"vs_prevent"`
	Variance       float64  `mapstructure:"variance"`
}

// VsCoverage returns the concept modifier against a defensive call
func (m RouteConceptMatrix) VsCoverage(coverage string) float64 {
	switch coverage {
	case models.CoverageMan:
		return m.VsMan
	case models.CoverageZone:
		return m.VsZone
	case models.CoverageBlitz:
		return m.VsBlitz
	case models.CoveragePrevent:
		return m.VsPrevent
	}
	return 1.0
}

// Config is the full read-only archetype configuration. Loaded once at
// engine construction and shared safely across concurrent games.
type Config struct {
	Coaches map[string]CoachArchetype
	Aliases map[string]string

	// League-wide play-call balance table keyed by situation
	BalanceTable map[models.Situation]map[models.PlayType]float64

	// Counter-tendency modifiers applied for the defensive archetype at
	// lesser weight than the offensive modifiers
	DefensiveCounter map[string]map[models.PlayType]float64

	RunConcepts   map[RunConcept]RunConceptMatrix
	RouteConcepts map[RouteConcept]RouteConceptMatrix

	// Effectiveness multipliers by offensive formation
	FormationModifiers map[string]float64
}

// ResolveCoach walks the fallback chain: exact id, alias, balanced. The
// returned name reports which entry actually served the lookup.
func (c *Config) ResolveCoach(id string) (CoachArchetype, string) {
	if coach, ok := c.Coaches[id]; ok {
		return coach, id
	}
	if alias, ok := c.Aliases[id]; ok {
		if coach, ok := c.Coaches[alias]; ok {
			return coach, alias
		}
	}
	return c.Coaches[Balanced], Balanced
}

// Validate checks the configuration at engine start. Any failure here is
// fatal: the engine never starts a game on a broken table.
func (c *Config) Validate() error {
	if _, ok := c.Coaches[Balanced]; !ok {
		return fmt.Errorf("archetype config missing required %q coach", Balanced)
	}
	if len(c.BalanceTable) == 0 {
		return fmt.Errorf("archetype config has empty balance table")
	}
	for situation, probs := range c.BalanceTable {
		total := 0.0
		for playType, p := range probs {
			if p < 0 {
				return fmt.Errorf("balance table %s/%s has negative probability %f", situation, playType, p)
			}
			total += p
		}
		if total <= 0 {
			return fmt.Errorf("balance table %s sums to zero", situation)
		}
	}
	required := []RunConcept{PowerRun, InsideZone, OutsideZone, Draw, GoalLinePower}
	for _, concept := range required {
		matrix, ok := c.RunConcepts[concept]
		if !ok {
			return fmt.Errorf("run concept %q missing", concept)
		}
		if len(matrix.RBAttributes) == 0 {
			return fmt.Errorf("run concept %q has no rb attributes", concept)
		}
		if matrix.BaseYards <= 0 {
			return fmt.Errorf("run concept %q has non-positive base yards", concept)
		}
	}
	requiredRoutes := []RouteConcept{QuickGame, Intermediate, Vertical, Screens, PlayAction}
	for _, concept := range requiredRoutes {
		matrix, ok := c.RouteConcepts[concept]
		if !ok {
			return fmt.Errorf("route concept %q missing", concept)
		}
		if matrix.BaseCompletion <= 0 || matrix.BaseCompletion > 1 {
			return fmt.Errorf("route concept %q base completion out of range: %f", concept, matrix.BaseCompletion)
		}
		if len(matrix.QBAttributes) == 0 || len(matrix.WRAttributes) == 0 {
			return fmt.Errorf("route concept %q missing attribute lists", concept)
		}
	}
	return nil
}
