package models

import "fmt"

// TeamRatings is the aggregate rating bundle for one team, on a 0-100
// scale. When a full roster is supplied the ratings are derived from the
// eleven selected players; otherwise the bundle is used directly
// (team-rating mode).
type TeamRatings struct {
	QBAccuracy    float64 `json:"qb_accuracy"`
	QBArmStrength float64 `json:"qb_arm_strength"`
	QBAwareness   float64 `json:"qb_awareness"`

	WRRouteRunning float64 `json:"wr_route_running"`
	WRCatching     float64 `json:"wr_catching"`
	WRSpeed        float64 `json:"wr_speed"`

	RBVision      float64 `json:"rb_vision"`
	RBPower       float64 `json:"rb_power"`
	RBSpeed       float64 `json:"rb_speed"`
	RBCarrying    float64 `json:"rb_carrying"`
	RBPassProtect float64 `json:"rb_pass_protect"`

	OLPassBlock float64 `json:"ol_pass_block"`
	OLRunBlock  float64 `json:"ol_run_block"`

	DLPassRush   float64 `json:"dl_pass_rush"`
	DLRunDefense float64 `json:"dl_run_defense"`

	LBCoverage   float64 `json:"lb_coverage"`
	LBRunDefense float64 `json:"lb_run_defense"`

	DBCoverage   float64 `json:"db_coverage"`
	DBPress      float64 `json:"db_press"`
	DBBallSkills float64 `json:"db_ball_skills"`

	KickerLeg      float64 `json:"kicker_leg"`
	KickerAccuracy float64 `json:"kicker_accuracy"`
	PunterLeg      float64 `json:"punter_leg"`
}

// Attribute resolves a named attribute as used by the run and route
// concept matrices. Unknown names resolve to a league-average 60 so a
// misconfigured matrix degrades instead of failing mid-game.
func (r TeamRatings) Attribute(name string) float64 {
	switch name {
	case "qb_accuracy":
		return r.QBAccuracy
	case "qb_arm_strength":
		return r.QBArmStrength
	case "qb_awareness":
		return r.QBAwareness
	case "wr_route_running":
		return r.WRRouteRunning
	case "wr_catching":
		return r.WRCatching
	case "wr_speed":
		return r.WRSpeed
	case "rb_vision":
		return r.RBVision
	case "rb_power":
		return r.RBPower
	case "rb_speed":
		return r.RBSpeed
	case "rb_carrying":
		return r.RBCarrying
	case "rb_pass_protect":
		return r.RBPassProtect
	case "ol_pass_block":
		return r.OLPassBlock
	case "ol_run_block":
		return r.OLRunBlock
	case "dl_pass_rush":
		return r.DLPassRush
	case "dl_run_defense":
		return r.DLRunDefense
	case "lb_coverage":
		return r.LBCoverage
	case "lb_run_defense":
		return r.LBRunDefense
	case "db_coverage":
		return r.DBCoverage
	case "db_press":
		return r.DBPress
	case "db_ball_skills":
		return r.DBBallSkills
	case "kicker_leg":
		return r.KickerLeg
	case "kicker_accuracy":
		return r.KickerAccuracy
	case "punter_leg":
		return r.PunterLeg
	}
	return 60
}

// Scaled returns a copy of the ratings with every attribute multiplied by
// factor, clamped to [0, 100]. Used by the personnel selector to apply
// fatigue.
func (r TeamRatings) Scaled(factor float64) TeamRatings {
	scale := func(v float64) float64 {
		v *= factor
		if v < 0 {
			return 0
		}
		if v > 100 {
			return 100
		}
		return v
	}
	r.QBAccuracy = scale(r.QBAccuracy)
	r.QBArmStrength = scale(r.QBArmStrength)
	r.QBAwareness = scale(r.QBAwareness)
	r.WRRouteRunning = scale(r.WRRouteRunning)
	r.WRCatching = scale(r.WRCatching)
	r.WRSpeed = scale(r.WRSpeed)
	r.RBVision = scale(r.RBVision)
	r.RBPower = scale(r.RBPower)
	r.RBSpeed = scale(r.RBSpeed)
	r.RBCarrying = scale(r.RBCarrying)
	r.RBPassProtect = scale(r.RBPassProtect)
	r.OLPassBlock = scale(r.OLPassBlock)
	r.OLRunBlock = scale(r.OLRunBlock)
	r.DLPassRush = scale(r.DLPassRush)
	r.DLRunDefense = scale(r.DLRunDefense)
	r.LBCoverage = scale(r.LBCoverage)
	r.LBRunDefense = scale(r.LBRunDefense)
	r.DBCoverage = scale(r.DBCoverage)
	r.DBPress = scale(r.DBPress)
	r.DBBallSkills = scale(r.DBBallSkills)
	return r
}

// Player is an individual roster entry. Attributes use the same names the
// concept matrices reference.
type Player struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Position   string             `json:"position"`
	Attributes map[string]float64 `json:"attributes"`
	Fatigue    float64            `json:"fatigue"`
}

// TeamConfig is the immutable per-team input read at game start
type TeamConfig struct {
	TeamID             string      `json:"team_id"`
	Name               string      `json:"name"`
	OffensiveArchetype string      `json:"offensive_archetype"`
	DefensiveArchetype string      `json:"defensive_archetype"`
	Ratings            TeamRatings `json:"ratings"`
	Roster             []Player    `json:"roster,omitempty"`
}

// Validate checks a team config at game start. Rating problems are fatal
// per the configuration error contract.
func (t TeamConfig) Validate() error {
	if t.TeamID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Ratings == (TeamRatings{}) && len(t.Roster) == 0 {
		return fmt.Errorf("team %s: either ratings or roster must be provided", t.TeamID)
	}
	return nil
}

// PersonnelPackage is the ephemeral on-field selection for one play. In
// team-rating mode the player lists are empty and the rating bundles carry
// everything the matchup engine needs.
type PersonnelPackage struct {
	Formation       string      `json:"formation"`
	DefensiveCall   string      `json:"defensive_call"`
	Offense         TeamRatings `json:"offense"`
	Defense         TeamRatings `json:"defense"`
	OffensePlayers  []string    `json:"offense_players,omitempty"`
	DefensePlayers  []string    `json:"defense_players,omitempty"`
	OffenseTeamID   string      `json:"offense_team_id"`
	DefenseTeamID   string      `json:"defense_team_id"`
}

// Formations
const (
	FormationGoalLine      = "goal_line"
	FormationIForm         = "i_formation"
	FormationSingleback    = "singleback"
	FormationShotgun       = "shotgun"
	FormationShotgunSpread = "shotgun_spread"
	FormationSpecialTeams  = "special_teams"
	FormationVictory       = "victory"
)

// Defensive calls as classified by the pass matrix
const (
	CoverageMan     = "man"
	CoverageZone    = "zone"
	CoverageBlitz   = "blitz"
	CoveragePrevent = "prevent"
)
