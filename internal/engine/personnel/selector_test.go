package personnel

import (
	"math/rand"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/gridiron-sim/internal/models"
)

func testSelector() *Selector {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	return NewSelector(log)
}

func teamConfig(id string, rating float64) models.TeamConfig {
	return models.TeamConfig{
		TeamID:             id,
		Name:               id,
		OffensiveArchetype: "balanced",
		DefensiveArchetype: "balanced",
		Ratings: models.TeamRatings{
			QBAccuracy: rating, QBArmStrength: rating, QBAwareness: rating,
			WRRouteRunning: rating, WRCatching: rating, WRSpeed: rating,
			RBVision: rating, RBPower: rating, RBSpeed: rating, RBCarrying: rating, RBPassProtect: rating,
			OLPassBlock: rating, OLRunBlock: rating,
			DLPassRush: rating, DLRunDefense: rating,
			LBCoverage: rating, LBRunDefense: rating,
			DBCoverage: rating, DBPress: rating, DBBallSkills: rating,
			KickerLeg: rating, KickerAccuracy: rating, PunterLeg: rating,
		},
	}
}

func fieldState(down, yardsToGo, position int) models.FieldState {
	return models.FieldState{
		FieldPosition:    position,
		Down:             down,
		YardsToGo:        yardsToGo,
		PossessionTeamID: "HOME",
		DefensiveTeamID:  "AWAY",
	}
}

func TestChooseFormation_Mapping(t *testing.T) {
	cases := []struct {
		name     string
		playType models.PlayType
		field    models.FieldState
		want     string
	}{
		{"punt uses special teams", models.PlayTypePunt, fieldState(4, 10, 30), models.FormationSpecialTeams},
		{"kneel uses victory", models.PlayTypeKneel, fieldState(1, 10, 40), models.FormationVictory},
		{"spike uses shotgun", models.PlayTypeSpike, fieldState(1, 10, 60), models.FormationShotgun},
		{"two point uses goal line", models.PlayTypeTwoPoint, fieldState(1, 2, 98), models.FormationGoalLine},
		{"goal line run", models.PlayTypeRun, fieldState(1, 5, 95), models.FormationGoalLine},
		{"short yardage run", models.PlayTypeRun, fieldState(3, 1, 45), models.FormationIForm},
		{"long yardage pass", models.PlayTypePass, fieldState(3, 9, 45), models.FormationShotgunSpread},
		{"standard run", models.PlayTypeRun, fieldState(1, 10, 40), models.FormationSingleback},
		{"standard pass", models.PlayTypePass, fieldState(2, 5, 40), models.FormationShotgun},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			situation := models.ClassifySituation(tc.field)
			assert.Equal(t, tc.want, chooseFormation(tc.playType, situation, tc.field))
		})
	}
}

func TestSelect_BuildsPackage(t *testing.T) {
	s := testSelector()
	rng := rand.New(rand.NewSource(5))

	field := fieldState(1, 10, 40)
	gctx := models.GameContext{Quarter: 1, SecondsRemaining: 800, Down: 1, YardsToGo: 10, FieldPosition: 40}
	pkg := s.Select(teamConfig("HOME", 80), teamConfig("AWAY", 70), models.PlayTypeRun, field, gctx, rng)

	require.NotNil(t, pkg)
	assert.Equal(t, "HOME", pkg.OffenseTeamID)
	assert.Equal(t, "AWAY", pkg.DefenseTeamID)
	assert.Equal(t, models.FormationSingleback, pkg.Formation)
	assert.Contains(t, []string{
		models.CoverageMan, models.CoverageZone, models.CoverageBlitz, models.CoveragePrevent,
	}, pkg.DefensiveCall)
	assert.Equal(t, 80.0, pkg.Offense.QBAccuracy)
	assert.Equal(t, 70.0, pkg.Defense.DLPassRush)
}

func TestApplyFatigue_AccumulatesAndCaps(t *testing.T) {
	s := testSelector()
	home := teamConfig("HOME", 80)
	away := teamConfig("AWAY", 80)
	field := fieldState(1, 10, 40)
	gctx := models.GameContext{Quarter: 1, SecondsRemaining: 800}

	fresh := s.Select(home, away, models.PlayTypeRun, field, gctx, rand.New(rand.NewSource(1)))
	assert.Equal(t, 80.0, fresh.Offense.RBSpeed)

	for i := 0; i < 30; i++ {
		s.ApplyFatigue(fresh, models.PlayTypeRun)
	}
	tired := s.Select(home, away, models.PlayTypeRun, field, gctx, rand.New(rand.NewSource(1)))
	assert.Less(t, tired.Offense.RBSpeed, 80.0)
	assert.Equal(t, 80.0, tired.Defense.RBSpeed, "fatigue is per team")

	// The cap keeps a long game from cratering the ratings
	for i := 0; i < 500; i++ {
		s.ApplyFatigue(fresh, models.PlayTypeRun)
	}
	capped := s.Select(home, away, models.PlayTypeRun, field, gctx, rand.New(rand.NewSource(1)))
	assert.InDelta(t, 80.0*0.92, capped.Offense.RBSpeed, 0.001)

	s.Reset()
	reset := s.Select(home, away, models.PlayTypeRun, field, gctx, rand.New(rand.NewSource(1)))
	assert.Equal(t, 80.0, reset.Offense.RBSpeed)
}

func fullRoster() []models.Player {
	roster := []models.Player{
		{ID: "qb1", Position: "QB", Attributes: map[string]float64{"qb_accuracy": 90}},
		{ID: "qb2", Position: "QB", Attributes: map[string]float64{"qb_accuracy": 70}},
		{ID: "rb1", Position: "RB", Attributes: map[string]float64{"rb_speed": 85}},
		{ID: "rb2", Position: "RB", Attributes: map[string]float64{"rb_power": 82}},
		{ID: "wr1", Position: "WR", Attributes: map[string]float64{"wr_speed": 88}},
		{ID: "wr2", Position: "WR", Attributes: map[string]float64{"wr_catching": 84}},
		{ID: "wr3", Position: "WR", Attributes: map[string]float64{"wr_route_running": 83}},
		{ID: "te1", Position: "TE", Attributes: map[string]float64{"wr_catching": 78}},
		{ID: "te2", Position: "TE", Attributes: map[string]float64{"ol_run_block": 76}},
		{ID: "k1", Position: "K", Attributes: map[string]float64{"kicker_accuracy": 86}},
		{ID: "p1", Position: "P", Attributes: map[string]float64{"punter_leg": 81}},
	}
	for i := 1; i <= 5; i++ {
		roster = append(roster, models.Player{
			ID:         "ol" + string(rune('0'+i)),
			Position:   "OL",
			Attributes: map[string]float64{"ol_pass_block": 77},
		})
	}
	for i := 1; i <= 3; i++ {
		roster = append(roster, models.Player{
			ID:         "lb" + string(rune('0'+i)),
			Position:   "LB",
			Attributes: map[string]float64{"lb_run_defense": 79},
		})
	}
	return roster
}

func TestSelectUnit_VariesByPlayType(t *testing.T) {
	s := testSelector()
	home := teamConfig("HOME", 80)
	home.Roster = fullRoster()
	away := teamConfig("AWAY", 75)
	field := fieldState(1, 10, 40)
	gctx := models.GameContext{Quarter: 1, SecondsRemaining: 800}

	pass := s.Select(home, away, models.PlayTypePass, field, gctx, rand.New(rand.NewSource(1)))
	punt := s.Select(home, away, models.PlayTypePunt, fieldState(4, 10, 30), gctx, rand.New(rand.NewSource(2)))
	kick := s.Select(home, away, models.PlayTypeFieldGoal, fieldState(4, 5, 70), gctx, rand.New(rand.NewSource(3)))

	require.Len(t, pass.OffensePlayers, 11)
	assert.Contains(t, pass.OffensePlayers, "qb1")
	assert.Contains(t, pass.OffensePlayers, "wr3", "pass personnel fields three receivers")
	assert.NotContains(t, pass.OffensePlayers, "p1")
	assert.NotContains(t, pass.OffensePlayers, "k1")

	assert.Contains(t, punt.OffensePlayers, "p1")
	assert.NotContains(t, punt.OffensePlayers, "qb1")
	assert.NotEqual(t, pass.OffensePlayers, punt.OffensePlayers)

	assert.Contains(t, kick.OffensePlayers, "k1")
	assert.NotContains(t, kick.OffensePlayers, "p1")
}

func TestApplyFatigue_ChargesSelectedPlayers(t *testing.T) {
	s := testSelector()
	home := teamConfig("HOME", 80)
	home.Roster = fullRoster()
	away := teamConfig("AWAY", 75)
	field := fieldState(1, 10, 40)
	gctx := models.GameContext{Quarter: 1, SecondsRemaining: 800}

	pkg := s.Select(home, away, models.PlayTypePass, field, gctx, rand.New(rand.NewSource(1)))
	require.Contains(t, pkg.OffensePlayers, "qb1", "the starter takes the snap")
	require.NotContains(t, pkg.OffensePlayers, "qb2", "the backup watches from the sideline")
	assert.Equal(t, 80.0, pkg.Offense.QBAccuracy)

	for i := 0; i < 200; i++ {
		s.ApplyFatigue(pkg, models.PlayTypeRun)
	}

	// Only the selected starter is worn down: 90*(1-0.08) averaged with a
	// fresh 70
	worn := s.Select(home, away, models.PlayTypePass, field, gctx, rand.New(rand.NewSource(1)))
	assert.InDelta(t, (90*0.92+70)/2, worn.Offense.QBAccuracy, 0.001)
}

func TestRoster_BaselineFatigueApplies(t *testing.T) {
	s := testSelector()
	home := teamConfig("HOME", 80)
	home.Roster = []models.Player{
		{ID: "qb1", Position: "QB", Fatigue: 0.5, Attributes: map[string]float64{"qb_accuracy": 90}},
	}
	away := teamConfig("AWAY", 75)

	pkg := s.Select(home, away, models.PlayTypePass, fieldState(1, 10, 40),
		models.GameContext{Quarter: 1, SecondsRemaining: 800}, rand.New(rand.NewSource(1)))
	assert.InDelta(t, 45.0, pkg.Offense.QBAccuracy, 0.001, "a player entering half-spent contributes half strength")
}

func TestChooseDefensiveCall_Distribution(t *testing.T) {
	s := testSelector()
	gctx := models.GameContext{Quarter: 1, SecondsRemaining: 800}

	count := func(arch string, situation models.Situation, coverage string) int {
		n := 0
		for seed := int64(0); seed < 500; seed++ {
			rng := rand.New(rand.NewSource(seed))
			if s.chooseDefensiveCall(arch, models.PlayTypePass, situation, gctx, rng) == coverage {
				n++
			}
		}
		return n
	}

	aggressiveBlitz := count("aggressive", models.SituationFirstAndTen, models.CoverageBlitz)
	conservativeBlitz := count("conservative", models.SituationFirstAndTen, models.CoverageBlitz)
	assert.Greater(t, aggressiveBlitz, conservativeBlitz)

	// Third and long draws extra pressure
	baseBlitz := count("balanced", models.SituationFirstAndTen, models.CoverageBlitz)
	longBlitz := count("balanced", models.SituationThirdLong, models.CoverageBlitz)
	assert.Greater(t, longBlitz, baseBlitz)
}

func TestChooseDefensiveCall_ProtectsLateLead(t *testing.T) {
	s := testSelector()

	// Offense trailing by two scores late: defense sits deep
	gctx := models.GameContext{Quarter: 4, SecondsRemaining: 120, ScoreDifferential: -10}
	for seed := int64(0); seed < 100; seed++ {
		rng := rand.New(rand.NewSource(seed))
		call := s.chooseDefensiveCall("aggressive", models.PlayTypePass, models.SituationFirstAndTen, gctx, rng)
		assert.Contains(t, []string{models.CoveragePrevent, models.CoverageZone}, call)
	}
}

func TestRosterMode_AggregatesAttributes(t *testing.T) {
	s := testSelector()
	home := teamConfig("HOME", 80)
	home.Roster = []models.Player{
		{ID: "qb1", Position: "QB", Attributes: map[string]float64{"qb_accuracy": 90}},
		{ID: "qb2", Position: "QB", Attributes: map[string]float64{"qb_accuracy": 70}},
		{ID: "rb1", Position: "RB", Attributes: map[string]float64{"rb_speed": 88}},
	}

	field := fieldState(1, 10, 40)
	gctx := models.GameContext{Quarter: 1, SecondsRemaining: 800}
	pkg := s.Select(home, teamConfig("AWAY", 75), models.PlayTypeRun, field, gctx, rand.New(rand.NewSource(3)))

	assert.Equal(t, 80.0, pkg.Offense.QBAccuracy, "roster average replaces the team bundle")
	assert.Equal(t, 88.0, pkg.Offense.RBSpeed)
	assert.Equal(t, 60.0, pkg.Offense.OLRunBlock, "missing attributes fall back to replacement level")
	assert.Len(t, pkg.OffensePlayers, 3)
}
