package playcall

import (
	"math/rand"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/stitts-dev/gridiron-sim/internal/archetype"
	"github.com/stitts-dev/gridiron-sim/internal/models"
)

func testDecider() *Decider {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	return NewDecider(archetype.Default(), log)
}

func fieldAt(down, yardsToGo, position int) models.FieldState {
	return models.FieldState{
		FieldPosition:    position,
		Down:             down,
		YardsToGo:        yardsToGo,
		PossessionTeamID: "HOME",
		DefensiveTeamID:  "AWAY",
	}
}

func TestDecide_FourthAndLongPunts(t *testing.T) {
	d := testDecider()
	rng := rand.New(rand.NewSource(1))

	gctx := models.GameContext{Quarter: 2, SecondsRemaining: 600, Down: 4, YardsToGo: 12, FieldPosition: 30}
	playType := d.Decide("balanced", "balanced", fieldAt(4, 12, 30), gctx, rng)
	assert.Equal(t, models.PlayTypePunt, playType)
}

func TestDecide_FourthAndShortGoes(t *testing.T) {
	d := testDecider()
	rng := rand.New(rand.NewSource(1))

	gctx := models.GameContext{Quarter: 2, SecondsRemaining: 600, Down: 4, YardsToGo: 1, FieldPosition: 55}
	playType := d.Decide("aggressive", "balanced", fieldAt(4, 1, 55), gctx, rng)
	assert.Equal(t, models.PlayTypeRun, playType)
}

func TestDecide_FourthMidRangeKicksInRange(t *testing.T) {
	d := testDecider()
	rng := rand.New(rand.NewSource(1))

	// 4th and 6 from the opponent 30: inside balanced field-goal range
	gctx := models.GameContext{Quarter: 2, SecondsRemaining: 600, Down: 4, YardsToGo: 6, FieldPosition: 70}
	playType := d.Decide("balanced", "balanced", fieldAt(4, 6, 70), gctx, rng)
	assert.Equal(t, models.PlayTypeFieldGoal, playType)

	// Same distance from their own 40: out of range, punt
	gctx.FieldPosition = 40
	playType = d.Decide("balanced", "balanced", fieldAt(4, 6, 40), gctx, rng)
	assert.Equal(t, models.PlayTypePunt, playType)
}

func TestDecide_DesperationOverridesPunt(t *testing.T) {
	d := testDecider()
	rng := rand.New(rand.NewSource(1))

	// Trailing inside two minutes there is no punt
	gctx := models.GameContext{Quarter: 4, SecondsRemaining: 90, ScoreDifferential: -10, Down: 4, YardsToGo: 12, FieldPosition: 30}
	playType := d.Decide("balanced", "balanced", fieldAt(4, 12, 30), gctx, rng)
	assert.Equal(t, models.PlayTypePass, playType)
}

func TestDecide_KneelsOutTheClock(t *testing.T) {
	d := testDecider()
	rng := rand.New(rand.NewSource(1))

	gctx := models.GameContext{Quarter: 4, SecondsRemaining: 60, ScoreDifferential: 3, Down: 1, YardsToGo: 10, FieldPosition: 40}
	playType := d.Decide("balanced", "balanced", fieldAt(1, 10, 40), gctx, rng)
	assert.Equal(t, models.PlayTypeKneel, playType)

	// Too much time left to kneel it out from 1st down
	gctx.SecondsRemaining = 200
	playType = d.Decide("balanced", "balanced", fieldAt(1, 10, 40), gctx, rng)
	assert.NotEqual(t, models.PlayTypeKneel, playType)
}

func TestDecide_SpikesToStopTheClock(t *testing.T) {
	d := testDecider()
	rng := rand.New(rand.NewSource(1))

	gctx := models.GameContext{Quarter: 4, SecondsRemaining: 15, ScoreDifferential: -4, Down: 1, YardsToGo: 10, FieldPosition: 60}
	playType := d.Decide("balanced", "balanced", fieldAt(1, 10, 60), gctx, rng)
	assert.Equal(t, models.PlayTypeSpike, playType)
}

func TestDecide_ScrimmageDownsOnlyRunOrPass(t *testing.T) {
	d := testDecider()

	for seed := int64(0); seed < 200; seed++ {
		rng := rand.New(rand.NewSource(seed))
		gctx := models.GameContext{Quarter: 1, SecondsRemaining: 700, Down: 2, YardsToGo: 6, FieldPosition: 45}
		playType := d.Decide("balanced", "balanced", fieldAt(2, 6, 45), gctx, rng)
		assert.Contains(t, []models.PlayType{models.PlayTypeRun, models.PlayTypePass}, playType)
	}
}

func TestDecide_ArchetypeTendenciesShowUp(t *testing.T) {
	d := testDecider()

	countPasses := func(offArch string) int {
		passes := 0
		for seed := int64(0); seed < 400; seed++ {
			rng := rand.New(rand.NewSource(seed))
			gctx := models.GameContext{Quarter: 1, SecondsRemaining: 700, Down: 1, YardsToGo: 10, FieldPosition: 40}
			if d.Decide(offArch, "balanced", fieldAt(1, 10, 40), gctx, rng) == models.PlayTypePass {
				passes++
			}
		}
		return passes
	}

	airRaid := countPasses("air_raid")
	runHeavy := countPasses("run_heavy")
	assert.Greater(t, airRaid, runHeavy, "air raid throws more than run heavy on identical downs")
}

func TestDecide_UnknownArchetypeFallsBack(t *testing.T) {
	d := testDecider()
	rng := rand.New(rand.NewSource(1))

	gctx := models.GameContext{Quarter: 1, SecondsRemaining: 700, Down: 1, YardsToGo: 10, FieldPosition: 40}
	playType := d.Decide("genius_ball", "mystery", fieldAt(1, 10, 40), gctx, rng)
	assert.Contains(t, []models.PlayType{models.PlayTypeRun, models.PlayTypePass}, playType)
}
