package personnel

import (
	"math/rand"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/gridiron-sim/internal/models"
)

// Selector picks formations and on-field personnel for each play. In
// team-rating mode the package wraps the aggregate bundles; roster mode
// derives the bundle from the eleven selected players. The selector owns
// per-team fatigue, decremented after every play, never during selection.
type Selector struct {
	mu            sync.Mutex
	teamFatigue   map[string]float64
	playerFatigue map[string]float64
	logger        *logrus.Logger
}

// fatigueCap keeps a long game from cratering the ratings
const fatigueCap = 0.08

func NewSelector(logger *logrus.Logger) *Selector {
	return &Selector{
		teamFatigue:   make(map[string]float64),
		playerFatigue: make(map[string]float64),
		logger:        logger,
	}
}

// Select builds the personnel package for one play
func (s *Selector) Select(offense, defense models.TeamConfig, playType models.PlayType, field models.FieldState, gctx models.GameContext, rng *rand.Rand) *models.PersonnelPackage {
	situation := models.ClassifySituation(field)
	formation := chooseFormation(playType, situation, field)
	defensiveCall := s.chooseDefensiveCall(defense.DefensiveArchetype, playType, situation, gctx, rng)

	pkg := &models.PersonnelPackage{
		Formation:     formation,
		DefensiveCall: defensiveCall,
		Offense:       s.effectiveRatings(offense),
		Defense:       s.effectiveRatings(defense),
		OffenseTeamID: offense.TeamID,
		DefenseTeamID: defense.TeamID,
	}

	if len(offense.Roster) > 0 {
		pkg.OffensePlayers = selectUnit(offense.Roster, offensiveNeeds(playType))
	}
	if len(defense.Roster) > 0 {
		pkg.DefensePlayers = selectUnit(defense.Roster, defensiveNeeds(playType))
	}

	return pkg
}

// ApplyFatigue charges the snap to the offense: the team bundle and, in
// roster mode, each player who was on the field for it
func (s *Selector) ApplyFatigue(pkg *models.PersonnelPackage, playType models.PlayType) {
	increment := 0.0008
	if playType == models.PlayTypeRun {
		increment = 0.0012
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.teamFatigue[pkg.OffenseTeamID] = capFatigue(s.teamFatigue[pkg.OffenseTeamID] + increment)
	for _, playerID := range pkg.OffensePlayers {
		s.playerFatigue[playerID] = capFatigue(s.playerFatigue[playerID] + increment)
	}
}

func capFatigue(f float64) float64 {
	if f > fatigueCap {
		return fatigueCap
	}
	return f
}

// Reset clears accumulated fatigue, called between games
func (s *Selector) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teamFatigue = make(map[string]float64)
	s.playerFatigue = make(map[string]float64)
}

func (s *Selector) effectiveRatings(team models.TeamConfig) models.TeamRatings {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(team.Roster) > 0 {
		return s.aggregateRosterLocked(team.Roster)
	}

	factor := 1.0 - s.teamFatigue[team.TeamID]
	if factor >= 1.0 {
		return team.Ratings
	}
	return team.Ratings.Scaled(factor)
}

// chooseFormation maps (playType, situation, field) to a formation
func chooseFormation(playType models.PlayType, situation models.Situation, field models.FieldState) string {
	switch playType {
	case models.PlayTypePunt, models.PlayTypeFieldGoal, models.PlayTypeExtraPoint, models.PlayTypeKickoff:
		return models.FormationSpecialTeams
	case models.PlayTypeKneel:
		return models.FormationVictory
	case models.PlayTypeSpike:
		return models.FormationShotgun
	case models.PlayTypeTwoPoint:
		return models.FormationGoalLine
	}

	if field.FieldPosition >= 90 {
		return models.FormationGoalLine
	}

	switch situation {
	case models.SituationSecondShort, models.SituationThirdShort, models.SituationFourthShort:
		if playType == models.PlayTypeRun {
			return models.FormationIForm
		}
		return models.FormationSingleback
	case models.SituationSecondLong, models.SituationThirdLong, models.SituationFourthLong:
		if playType == models.PlayTypePass {
			return models.FormationShotgunSpread
		}
		return models.FormationShotgun
	case models.SituationGoalToGo:
		return models.FormationGoalLine
	}

	if playType == models.PlayTypePass {
		return models.FormationShotgun
	}
	return models.FormationSingleback
}

// chooseDefensiveCall picks the coverage shell from the defensive
// archetype and situation
func (s *Selector) chooseDefensiveCall(defArchetype string, playType models.PlayType, situation models.Situation, gctx models.GameContext, rng *rand.Rand) string {
	// Protect a late lead with deep coverage
	if gctx.Quarter >= models.RegulationQuarters && gctx.SecondsRemaining < 240 && gctx.ScoreDifferential < -7 {
		// Offense is trailing, so the defense is leading
		if rng.Float64() < 0.6 {
			return models.CoveragePrevent
		}
		return models.CoverageZone
	}

	blitzChance := 0.15
	manChance := 0.35
	switch defArchetype {
	case "aggressive":
		blitzChance = 0.35
		manChance = 0.40
	case "conservative":
		blitzChance = 0.06
		manChance = 0.25
	}

	switch situation {
	case models.SituationThirdLong, models.SituationFourthLong:
		blitzChance += 0.12
	case models.SituationThirdShort, models.SituationFourthShort, models.SituationGoalToGo:
		manChance += 0.15
	}

	roll := rng.Float64()
	switch {
	case roll < blitzChance:
		return models.CoverageBlitz
	case roll < blitzChance+manChance:
		return models.CoverageMan
	default:
		return models.CoverageZone
	}
}

// positionNeed asks for count players at one position
type positionNeed struct {
	position string
	count    int
}

// offensiveNeeds is the personnel grouping fielded for each play type
func offensiveNeeds(playType models.PlayType) []positionNeed {
	switch playType {
	case models.PlayTypePunt:
		return []positionNeed{{"P", 1}, {"OL", 5}, {"TE", 2}, {"LB", 3}}
	case models.PlayTypeFieldGoal, models.PlayTypeExtraPoint, models.PlayTypeKickoff:
		return []positionNeed{{"K", 1}, {"OL", 5}, {"TE", 2}, {"LB", 3}}
	case models.PlayTypePass, models.PlayTypeSpike:
		return []positionNeed{{"QB", 1}, {"RB", 1}, {"WR", 3}, {"TE", 1}, {"OL", 5}}
	case models.PlayTypeTwoPoint:
		return []positionNeed{{"QB", 1}, {"RB", 2}, {"TE", 3}, {"OL", 5}}
	default:
		// Base run personnel, also used for kneels
		return []positionNeed{{"QB", 1}, {"RB", 2}, {"WR", 1}, {"TE", 2}, {"OL", 5}}
	}
}

func defensiveNeeds(playType models.PlayType) []positionNeed {
	switch playType {
	case models.PlayTypePass, models.PlayTypeSpike:
		// Nickel
		return []positionNeed{{"DL", 4}, {"LB", 2}, {"DB", 5}}
	case models.PlayTypePunt, models.PlayTypeFieldGoal, models.PlayTypeExtraPoint, models.PlayTypeKickoff:
		return []positionNeed{{"DL", 3}, {"LB", 4}, {"DB", 4}}
	default:
		return []positionNeed{{"DL", 4}, {"LB", 3}, {"DB", 4}}
	}
}

// selectUnit fills the needs in order from the roster's position groups,
// then pads thin rosters with whoever remains until eleven are fielded
func selectUnit(roster []models.Player, needs []positionNeed) []string {
	selected := make([]string, 0, 11)
	used := make(map[string]bool, 11)

	for _, need := range needs {
		taken := 0
		for _, p := range roster {
			if taken == need.count || len(selected) == 11 {
				break
			}
			if used[p.ID] || p.Position != need.position {
				continue
			}
			selected = append(selected, p.ID)
			used[p.ID] = true
			taken++
		}
	}
	for _, p := range roster {
		if len(selected) == 11 {
			break
		}
		if !used[p.ID] {
			selected = append(selected, p.ID)
			used[p.ID] = true
		}
	}
	return selected
}

// aggregateRosterLocked folds individual attributes into the team bundle.
// Player.Fatigue carries the pre-game baseline; in-game accrual lives in
// the selector's per-player map. Caller holds s.mu.
func (s *Selector) aggregateRosterLocked(roster []models.Player) models.TeamRatings {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, p := range roster {
		freshness := 1 - p.Fatigue - s.playerFatigue[p.ID]
		if freshness < 0 {
			freshness = 0
		}
		for name, value := range p.Attributes {
			sums[name] += value * freshness
			counts[name]++
		}
	}
	avg := func(name string) float64 {
		if counts[name] == 0 {
			return 60
		}
		return sums[name] / float64(counts[name])
	}
	return models.TeamRatings{
		QBAccuracy:     avg("qb_accuracy"),
		QBArmStrength:  avg("qb_arm_strength"),
		QBAwareness:    avg("qb_awareness"),
		WRRouteRunning: avg("wr_route_running"),
		WRCatching:     avg("wr_catching"),
		WRSpeed:        avg("wr_speed"),
		RBVision:       avg("rb_vision"),
		RBPower:        avg("rb_power"),
		RBSpeed:        avg("rb_speed"),
		RBCarrying:     avg("rb_carrying"),
		RBPassProtect:  avg("rb_pass_protect"),
		OLPassBlock:    avg("ol_pass_block"),
		OLRunBlock:     avg("ol_run_block"),
		DLPassRush:     avg("dl_pass_rush"),
		DLRunDefense:   avg("dl_run_defense"),
		LBCoverage:     avg("lb_coverage"),
		LBRunDefense:   avg("lb_run_defense"),
		DBCoverage:     avg("db_coverage"),
		DBPress:        avg("db_press"),
		DBBallSkills:   avg("db_ball_skills"),
		KickerLeg:      avg("kicker_leg"),
		KickerAccuracy: avg("kicker_accuracy"),
		PunterLeg:      avg("punter_leg"),
	}
}
