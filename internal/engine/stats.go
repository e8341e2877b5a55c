package engine

import (
	"github.com/stitts-dev/gridiron-sim/internal/models"
)

// statsAccumulator folds the audit stream into per-team stat lines. It
// implements the state manager's audit sink.
type statsAccumulator struct {
	stats map[string]*models.TeamStats
}

func newStatsAccumulator(homeTeamID, awayTeamID string) *statsAccumulator {
	return &statsAccumulator{
		stats: map[string]*models.TeamStats{
			homeTeamID: {},
			awayTeamID: {},
		},
	}
}

// Record folds one play into the possessing team's line
func (a *statsAccumulator) Record(entry *models.AuditEntry) {
	offense := entry.PreState.Field.PossessionTeamID
	line, ok := a.stats[offense]
	if !ok {
		return
	}

	line.TimeOfPossession += entry.TimeElapsed

	play := entry.Play
	if play.PlayType == models.PlayTypeKickoff {
		return
	}
	line.Plays++

	switch play.PlayType {
	case models.PlayTypeRun, models.PlayTypeKneel:
		line.RushYards += play.YardsGained
		line.TotalYards += play.YardsGained
	case models.PlayTypePass:
		line.PassYards += play.YardsGained
		line.TotalYards += play.YardsGained
		if play.Outcome == models.OutcomeSack {
			line.Sacks++
		}
	}

	switch play.Outcome {
	case models.OutcomeInterception, models.OutcomeFumbleLost:
		line.Turnovers++
	}

	if entry.Transition.Field.FirstDownAchieved {
		line.FirstDowns++
	}

	switch entry.PreState.Field.Down {
	case 3:
		line.ThirdDownAttempts++
		if entry.Transition.Field.FirstDownAchieved || play.Outcome == models.OutcomeTouchdown {
			line.ThirdDownConversions++
		}
	case 4:
		if play.PlayType == models.PlayTypeRun || play.PlayType == models.PlayTypePass {
			line.FourthDownAttempts++
			if entry.Transition.Field.FirstDownAchieved || play.Outcome == models.OutcomeTouchdown {
				line.FourthDownConversions++
			}
		}
	}
}

// Stats returns the accumulated lines
func (a *statsAccumulator) Stats() map[string]*models.TeamStats {
	return a.stats
}
