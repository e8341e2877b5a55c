package matchup

import (
	"math/rand"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/gridiron-sim/internal/archetype"
	"github.com/stitts-dev/gridiron-sim/internal/models"
)

func flatRatings(v float64) models.TeamRatings {
	return models.TeamRatings{
		QBAccuracy: v, QBArmStrength: v, QBAwareness: v,
		WRRouteRunning: v, WRCatching: v, WRSpeed: v,
		RBVision: v, RBPower: v, RBSpeed: v, RBCarrying: v, RBPassProtect: v,
		OLPassBlock: v, OLRunBlock: v,
		DLPassRush: v, DLRunDefense: v,
		LBCoverage: v, LBRunDefense: v,
		DBCoverage: v, DBPress: v, DBBallSkills: v,
		KickerLeg: v, KickerAccuracy: v, PunterLeg: v,
	}
}

func testEngine() *Engine {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	return NewEngine(archetype.Default(), log)
}

func testRequest(playType models.PlayType, fieldPos int) PlayRequest {
	return PlayRequest{
		PlayType: playType,
		Personnel: &models.PersonnelPackage{
			Formation:     models.FormationSingleback,
			DefensiveCall: models.CoverageZone,
			Offense:       flatRatings(75),
			Defense:       flatRatings(75),
			OffenseTeamID: "HOME",
			DefenseTeamID: "AWAY",
		},
		Field: models.FieldState{
			FieldPosition:    fieldPos,
			Down:             1,
			YardsToGo:        10,
			PossessionTeamID: "HOME",
			DefensiveTeamID:  "AWAY",
		},
		Context: models.GameContext{Quarter: 1, SecondsRemaining: 800, Down: 1, YardsToGo: 10, FieldPosition: fieldPos},
	}
}

func TestResolve_KneelAndSpike(t *testing.T) {
	e := testEngine()
	rng := rand.New(rand.NewSource(1))

	kneel := e.Resolve(testRequest(models.PlayTypeKneel, 50), rng)
	assert.Equal(t, models.OutcomeGain, kneel.Outcome)
	assert.Equal(t, -1, kneel.YardsGained)

	spike := e.Resolve(testRequest(models.PlayTypeSpike, 50), rng)
	assert.Equal(t, models.OutcomeIncompletion, spike.Outcome)
	assert.True(t, spike.StopsClock)
	assert.Equal(t, 0, spike.YardsGained)
}

func TestResolveRun_BoundedOutcomes(t *testing.T) {
	e := testEngine()

	validOutcomes := map[models.Outcome]bool{
		models.OutcomeGain:            true,
		models.OutcomeTouchdown:       true,
		models.OutcomeSafety:          true,
		models.OutcomeFumbleLost:      true,
		models.OutcomeFumbleRecovered: true,
		models.OutcomeOutOfBounds:     true,
	}

	for seed := int64(0); seed < 300; seed++ {
		rng := rand.New(rand.NewSource(seed))
		result := e.Resolve(testRequest(models.PlayTypeRun, 45), rng)
		require.True(t, validOutcomes[result.Outcome], "unexpected run outcome %s", result.Outcome)
		assert.GreaterOrEqual(t, result.YardsGained, -12)
		assert.LessOrEqual(t, result.YardsGained, 55, "position 45 caps the gain at the goal line")
		if result.Outcome == models.OutcomeTouchdown {
			assert.Equal(t, 55, result.YardsGained)
			assert.True(t, result.IsScore)
		}
	}
}

func TestResolvePass_BoundedOutcomes(t *testing.T) {
	e := testEngine()

	validOutcomes := map[models.Outcome]bool{
		models.OutcomeGain:         true,
		models.OutcomeIncompletion: true,
		models.OutcomeSack:         true,
		models.OutcomeInterception: true,
		models.OutcomeTouchdown:    true,
		models.OutcomeOutOfBounds:  true,
		models.OutcomeSafety:       true,
	}

	completions := 0
	for seed := int64(0); seed < 500; seed++ {
		rng := rand.New(rand.NewSource(seed))
		result := e.Resolve(testRequest(models.PlayTypePass, 40), rng)
		require.True(t, validOutcomes[result.Outcome], "unexpected pass outcome %s", result.Outcome)
		if result.Outcome == models.OutcomeGain || result.Outcome == models.OutcomeOutOfBounds || result.Outcome == models.OutcomeTouchdown {
			completions++
		}
		if result.Outcome == models.OutcomeIncompletion {
			assert.Equal(t, 0, result.YardsGained)
			assert.True(t, result.StopsClock)
		}
	}
	// Average teams complete a civilized share of their throws
	assert.Greater(t, completions, 150)
	assert.Less(t, completions, 450)
}

func TestResolvePlaceKick_ContextIsAuthoritative(t *testing.T) {
	e := testEngine()

	// A field goal from the opponent 1 stays a field goal
	req := testRequest(models.PlayTypeFieldGoal, 99)
	req.KickContext = models.KickContextFieldGoal
	rng := rand.New(rand.NewSource(2))
	result := e.Resolve(req, rng)
	assert.Contains(t, []models.Outcome{models.OutcomeFieldGoalGood, models.OutcomeFieldGoalMissed}, result.Outcome)

	// An extra point resolves as an extra point regardless of the spot
	req = testRequest(models.PlayTypeExtraPoint, 98)
	req.KickContext = models.KickContextExtraPoint
	result = e.Resolve(req, rng)
	assert.Contains(t, []models.Outcome{models.OutcomeExtraPointGood, models.OutcomeExtraPointMissed}, result.Outcome)
}

func TestFieldGoalProbability_FallsWithDistance(t *testing.T) {
	short := fieldGoalProbability(25, 75)
	mid := fieldGoalProbability(43, 75)
	long := fieldGoalProbability(52, 75)
	bomb := fieldGoalProbability(60, 75)

	assert.Greater(t, short, mid)
	assert.Greater(t, mid, long)
	assert.Greater(t, long, bomb)
	assert.GreaterOrEqual(t, bomb, 0.05)
	assert.LessOrEqual(t, short, 0.99)
}

func TestResolveKickoff_StartingPositions(t *testing.T) {
	e := testEngine()

	touchbacks := 0
	for seed := int64(0); seed < 200; seed++ {
		rng := rand.New(rand.NewSource(seed))
		req := testRequest(models.PlayTypeKickoff, 35)
		req.KickContext = models.KickContextKickoff
		result := e.Resolve(req, rng)

		require.Equal(t, models.OutcomeKickReturn, result.Outcome)
		assert.GreaterOrEqual(t, result.YardsGained, 15)
		assert.LessOrEqual(t, result.YardsGained, 99)
		if result.YardsGained == 25 {
			touchbacks++
		}
	}
	assert.Greater(t, touchbacks, 80, "touchbacks dominate modern kickoffs")

	// Free kicks give the receiving team a longer runway
	rng := rand.New(rand.NewSource(9))
	req := testRequest(models.PlayTypeKickoff, 20)
	req.KickContext = models.KickContextSafetyKick
	result := e.Resolve(req, rng)
	assert.GreaterOrEqual(t, result.YardsGained, 25)
	assert.LessOrEqual(t, result.YardsGained, 35)
}

func TestResolvePunt_NetDistance(t *testing.T) {
	e := testEngine()

	for seed := int64(0); seed < 200; seed++ {
		rng := rand.New(rand.NewSource(seed))
		result := e.Resolve(testRequest(models.PlayTypePunt, 30), rng)
		switch result.Outcome {
		case models.OutcomePuntDowned:
			assert.GreaterOrEqual(t, result.YardsGained, 5)
			assert.LessOrEqual(t, result.YardsGained, 70)
		case models.OutcomePuntBlocked:
			assert.True(t, result.IsTurnover)
		case models.OutcomeFumbleRecovered:
			assert.Greater(t, result.YardsGained, 0)
		default:
			t.Fatalf("unexpected punt outcome %s", result.Outcome)
		}
	}
}

func TestResolveTwoPoint_BoundedSuccess(t *testing.T) {
	e := testEngine()

	good := 0
	for seed := int64(0); seed < 400; seed++ {
		rng := rand.New(rand.NewSource(seed))
		req := testRequest(models.PlayTypeTwoPoint, 98)
		req.KickContext = models.KickContextTwoPoint
		result := e.Resolve(req, rng)
		require.Contains(t, []models.Outcome{models.OutcomeTwoPointGood, models.OutcomeTwoPointFailed}, result.Outcome)
		if result.Outcome == models.OutcomeTwoPointGood {
			good++
		}
	}
	// Success probability is clamped to [0.25, 0.65]
	assert.Greater(t, good, 60)
	assert.Less(t, good, 300)
}
