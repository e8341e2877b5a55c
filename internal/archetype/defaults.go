package archetype

import "github.com/stitts-dev/gridiron-sim/internal/models"

// Default returns the compiled-in archetype tables. Designer overrides
// loaded from YAML are merged on top of these.
func Default() *Config {
	return &Config{
		Coaches: defaultCoaches(),
		Aliases: map[string]string{
			"ground_and_pound": RunHeavy,
			"smashmouth":       RunHeavy,
			"spread":           AirRaid,
			"vertical":         AirRaid,
			"pro_style":        WestCoast,
			"short_passing":    WestCoast,
			"riverboat":        Aggressive,
			"clock_control":    Conservative,
			"default":          Balanced,
		},
		BalanceTable:       defaultBalanceTable(),
		DefensiveCounter:   defaultDefensiveCounter(),
		RunConcepts:        defaultRunConcepts(),
		RouteConcepts:      defaultRouteConcepts(),
		FormationModifiers: defaultFormationModifiers(),
	}
}

func defaultCoaches() map[string]CoachArchetype {
	return map[string]CoachArchetype{
		RunHeavy: {
			Name:                  RunHeavy,
			Philosophy:            "establish the run",
			TempoPreference:       0.25,
			UrgencyThreshold:      180,
			TimeoutAggressiveness: 0.4,
			PlayTypeModifiers: map[models.PlayType]float64{
				models.PlayTypeRun:  1.35,
				models.PlayTypePass: 0.75,
			},
			Clock: ClockProfile{
				BaseAdjust: 4,
				RunAdjust:  2,
			},
			FourthDownGoThreshold:   3,
			FourthDownPuntThreshold: 8,
			FieldGoalRangePosition:  65,
		},
		Balanced: {
			Name:                  Balanced,
			Philosophy:            "take what the defense gives",
			TempoPreference:       0.5,
			UrgencyThreshold:      180,
			TimeoutAggressiveness: 0.5,
			PlayTypeModifiers:     map[models.PlayType]float64{},
			Clock:                 ClockProfile{},
			FourthDownGoThreshold:   3,
			FourthDownPuntThreshold: 8,
			FieldGoalRangePosition:  65,
		},
		AirRaid: {
			Name:                  AirRaid,
			Philosophy:            "throw it until they stop it",
			TempoPreference:       0.9,
			UrgencyThreshold:      240,
			TimeoutAggressiveness: 0.7,
			PlayTypeModifiers: map[models.PlayType]float64{
				models.PlayTypeRun:  0.65,
				models.PlayTypePass: 1.40,
			},
			Clock: ClockProfile{
				BaseAdjust:     -3,
				PassAdjust:     -2,
				NoHuddleAdjust: -5,
			},
			FourthDownGoThreshold:   3,
			FourthDownPuntThreshold: 8,
			FieldGoalRangePosition:  65,
		},
		WestCoast: {
			Name:                  WestCoast,
			Philosophy:            "rhythm and timing",
			TempoPreference:       0.6,
			UrgencyThreshold:      180,
			TimeoutAggressiveness: 0.5,
			PlayTypeModifiers: map[models.PlayType]float64{
				models.PlayTypeRun:  0.9,
				models.PlayTypePass: 1.15,
			},
			Clock: ClockProfile{
				BaseAdjust: -1,
				PassAdjust: -1,
			},
			FourthDownGoThreshold:   3,
			FourthDownPuntThreshold: 8,
			FieldGoalRangePosition:  65,
		},
		Conservative: {
			Name:                  Conservative,
			Philosophy:            "field position and ball security",
			TempoPreference:       0.3,
			UrgencyThreshold:      150,
			TimeoutAggressiveness: 0.3,
			PlayTypeModifiers: map[models.PlayType]float64{
				models.PlayTypeRun:  1.15,
				models.PlayTypePass: 0.9,
				models.PlayTypePunt: 1.2,
			},
			Clock: ClockProfile{
				BaseAdjust:         2,
				CriticalDownAdjust: 1,
			},
			FourthDownGoThreshold:   2,
			FourthDownPuntThreshold: 6,
			FieldGoalRangePosition:  62,
		},
		Aggressive: {
			Name:                  Aggressive,
			Philosophy:            "keep the foot on the gas",
			TempoPreference:       0.8,
			UrgencyThreshold:      210,
			TimeoutAggressiveness: 0.8,
			PlayTypeModifiers: map[models.PlayType]float64{
				models.PlayTypeRun:  0.95,
				models.PlayTypePass: 1.15,
				models.PlayTypePunt: 0.7,
			},
			Clock: ClockProfile{
				BaseAdjust:       -2,
				FourthDownAdjust: 1,
			},
			// Aggressive coaches go for it in spots others kick from
			FourthDownGoThreshold:   5,
			FourthDownPuntThreshold: 10,
			FieldGoalRangePosition:  60,
		},
	}
}

// League-wide base probability vectors over play types keyed by
// situation. Fourth downs are dominated by the hard policy in the play
// caller; these rows only matter when the policy delegates.
func defaultBalanceTable() map[models.Situation]map[models.PlayType]float64 {
	return map[models.Situation]map[models.PlayType]float64{
		models.SituationFirstAndTen: {
			models.PlayTypeRun:  0.48,
			models.PlayTypePass: 0.52,
		},
		models.SituationSecondShort: {
			models.PlayTypeRun:  0.62,
			models.PlayTypePass: 0.38,
		},
		models.SituationSecondMedium: {
			models.PlayTypeRun:  0.45,
			models.PlayTypePass: 0.55,
		},
		models.SituationSecondLong: {
			models.PlayTypeRun:  0.28,
			models.PlayTypePass: 0.72,
		},
		models.SituationThirdShort: {
			models.PlayTypeRun:  0.58,
			models.PlayTypePass: 0.42,
		},
		models.SituationThirdMedium: {
			models.PlayTypeRun:  0.22,
			models.PlayTypePass: 0.78,
		},
		models.SituationThirdLong: {
			models.PlayTypeRun:  0.10,
			models.PlayTypePass: 0.90,
		},
		models.SituationFourthShort: {
			models.PlayTypeRun:       0.45,
			models.PlayTypePass:      0.15,
			models.PlayTypePunt:      0.25,
			models.PlayTypeFieldGoal: 0.15,
		},
		models.SituationFourthMedium: {
			models.PlayTypeRun:       0.05,
			models.PlayTypePass:      0.15,
			models.PlayTypePunt:      0.50,
			models.PlayTypeFieldGoal: 0.30,
		},
		models.SituationFourthLong: {
			models.PlayTypeRun:       0.02,
			models.PlayTypePass:      0.08,
			models.PlayTypePunt:      0.75,
			models.PlayTypeFieldGoal: 0.15,
		},
		models.SituationGoalToGo: {
			models.PlayTypeRun:  0.55,
			models.PlayTypePass: 0.45,
		},
		models.SituationRedZone: {
			models.PlayTypeRun:  0.46,
			models.PlayTypePass: 0.54,
		},
	}
}

// Counter-tendency weights for the defensive archetype. Values sit close
// to 1.0; the defense nudges the offense off its preference rather than
// dictating the call.
func defaultDefensiveCounter() map[string]map[models.PlayType]float64 {
	return map[string]map[models.PlayType]float64{
		RunHeavy: {
			// A run-stuffing front discourages runs slightly
			models.PlayTypeRun:  0.92,
			models.PlayTypePass: 1.06,
		},
		Balanced: {},
		AirRaid: {
			models.PlayTypeRun:  1.05,
			models.PlayTypePass: 0.95,
		},
		WestCoast: {
			models.PlayTypePass: 0.97,
		},
		Conservative: {
			models.PlayTypeRun:  1.04,
			models.PlayTypePass: 0.96,
		},
		Aggressive: {
			// Heavy pressure pushes offenses toward quick runs
			models.PlayTypeRun:  1.06,
			models.PlayTypePass: 0.94,
		},
	}
}

func defaultRunConcepts() map[RunConcept]RunConceptMatrix {
	return map[RunConcept]RunConceptMatrix{
		PowerRun: {
			RBAttributes: []string{"rb_power", "rb_vision"},
			BaseYards:    4.2,
			OLModifier:   1.10,
			DLModifier:   1.05,
			Variance:     0.6,
		},
		InsideZone: {
			RBAttributes: []string{"rb_vision", "rb_speed"},
			BaseYards:    4.5,
			OLModifier:   1.00,
			DLModifier:   1.00,
			Variance:     0.8,
		},
		OutsideZone: {
			RBAttributes: []string{"rb_speed", "rb_vision"},
			BaseYards:    4.8,
			OLModifier:   0.95,
			DLModifier:   0.95,
			Variance:     1.1,
		},
		Draw: {
			RBAttributes: []string{"rb_vision", "rb_speed"},
			BaseYards:    5.2,
			OLModifier:   0.90,
			DLModifier:   1.10,
			Variance:     1.3,
		},
		GoalLinePower: {
			RBAttributes: []string{"rb_power"},
			BaseYards:    2.0,
			OLModifier:   1.20,
			DLModifier:   1.15,
			Variance:     0.4,
		},
	}
}

func defaultRouteConcepts() map[RouteConcept]RouteConceptMatrix {
	return map[RouteConcept]RouteConceptMatrix{
		QuickGame: {
			BaseCompletion: 0.72,
			BaseYards:      6.0,
			QBAttributes:   []string{"qb_accuracy", "qb_awareness"},
			WRAttributes:   []string{"wr_route_running", "wr_catching"},
			VsMan:          0.95,
			VsZone:         1.05,
			VsBlitz:        1.10,
			VsPrevent:      1.15,
			Variance:       0.5,
		},
		Intermediate: {
			BaseCompletion: 0.62,
			BaseYards:      11.0,
			QBAttributes:   []string{"qb_accuracy", "qb_arm_strength"},
			WRAttributes:   []string{"wr_route_running", "wr_catching"},
			VsMan:          1.00,
			VsZone:         0.95,
			VsBlitz:        0.90,
			VsPrevent:      1.10,
			Variance:       0.8,
		},
		Vertical: {
			BaseCompletion: 0.42,
			BaseYards:      24.0,
			QBAttributes:   []string{"qb_arm_strength", "qb_accuracy"},
			WRAttributes:   []string{"wr_speed", "wr_catching"},
			VsMan:          1.05,
			VsZone:         0.90,
			VsBlitz:        1.10,
			VsPrevent:      0.70,
			Variance:       1.4,
		},
		Screens: {
			BaseCompletion: 0.78,
			BaseYards:      5.5,
			QBAttributes:   []string{"qb_awareness"},
			WRAttributes:   []string{"wr_catching", "wr_speed"},
			VsMan:          1.00,
			VsZone:         0.95,
			VsBlitz:        1.25,
			VsPrevent:      0.90,
			Variance:       1.2,
		},
		PlayAction: {
			BaseCompletion: 0.60,
			BaseYards:      13.5,
			QBAttributes:   []string{"qb_accuracy", "qb_arm_strength"},
			WRAttributes:   []string{"wr_route_running", "wr_speed"},
			VsMan:          1.10,
			VsZone:         1.00,
			VsBlitz:        0.85,
			VsPrevent:      0.95,
			Variance:       1.0,
		},
	}
}

func defaultFormationModifiers() map[string]float64 {
	return map[string]float64{
		models.FormationGoalLine:      0.95,
		models.FormationIForm:         1.00,
		models.FormationSingleback:    1.00,
		models.FormationShotgun:       1.02,
		models.FormationShotgunSpread: 1.05,
		models.FormationSpecialTeams:  1.00,
		models.FormationVictory:       1.00,
	}
}
