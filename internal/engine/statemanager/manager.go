package statemanager

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/gridiron-sim/internal/engine/transition"
	"github.com/stitts-dev/gridiron-sim/internal/models"
)

// AuditSink receives the per-play audit record. The orchestrator registers
// the play-by-play collector and the websocket broadcaster here.
type AuditSink interface {
	Record(entry *models.AuditEntry)
}

// AuditFunc adapts a function to the AuditSink interface
type AuditFunc func(entry *models.AuditEntry)

func (f AuditFunc) Record(entry *models.AuditEntry) { f(entry) }

// the safe fallback is a no-gain run with a fixed runoff
const fallbackRunoffSeconds = 20

// TransitionSource produces the composite transition for one play. In
// production this is the transition coordinator.
type TransitionSource interface {
	Calculate(play models.PlayResult, state *models.GameState, gctx models.GameContext) models.Transition
}

// Manager owns the calculate -> validate -> apply pipeline for one game.
// It is the only component allowed to hand a transition to the applicator.
type Manager struct {
	coordinator TransitionSource
	validator   *transition.Validator
	applicator  *transition.Applicator
	sinks       []AuditSink
	logger      *logrus.Entry
}

// NewManager builds a state manager around a wired coordinator
func NewManager(coordinator TransitionSource, logger *logrus.Entry) *Manager {
	return &Manager{
		coordinator: coordinator,
		validator:   &transition.Validator{},
		applicator:  &transition.Applicator{},
		logger:      logger,
	}
}

// AddSink registers an audit sink. Sinks run synchronously in registration
// order after each applied play.
func (m *Manager) AddSink(sink AuditSink) {
	m.sinks = append(m.sinks, sink)
}

// ProcessPlay runs one play result through the full pipeline. When the
// calculated transition fails validation, the play is replaced by a safe
// fallback (no gain, fixed clock runoff) and retried once; a second
// failure stops the game with an error.
func (m *Manager) ProcessPlay(play models.PlayResult, state *models.GameState, gctx models.GameContext) (*models.AuditEntry, error) {
	entry, err := m.attempt(play, state, gctx, nil, false)
	if err == nil {
		return entry, nil
	}

	m.logger.WithFields(logrus.Fields{
		"play_number": state.PlayNumber + 1,
		"play_type":   play.PlayType,
		"outcome":     play.Outcome,
		"error":       err.Error(),
	}).Warn("Transition rejected, retrying with safe fallback play")

	var carried []models.Violation
	if entry != nil {
		carried = entry.Violations
	}
	fallback := models.PlayResult{
		PlayType:    models.PlayTypeRun,
		Outcome:     models.OutcomeGain,
		YardsGained: 0,
		Description: "fallback: no gain",
	}
	entry, ferr := m.attempt(fallback, state, gctx, carried, true)
	if ferr != nil {
		return nil, fmt.Errorf("fallback play also rejected: %w", ferr)
	}
	return entry, nil
}

// attempt runs calculate/validate/apply once and records the audit entry
// on success. carriedViolations preserves the original play's violations
// on the fallback entry.
func (m *Manager) attempt(play models.PlayResult, state *models.GameState, gctx models.GameContext, carriedViolations []models.Violation, fallback bool) (*models.AuditEntry, error) {
	pre := state.Snapshot()
	t := m.coordinator.Calculate(play, state, gctx)
	if fallback {
		// clock strategies are bypassed for the fallback play
		t.Clock = fallbackClock(state)
	}

	violations := m.validator.Validate(t, play, state)
	if len(violations) > 0 {
		return &models.AuditEntry{
			GameID:     state.GameID,
			PlayNumber: state.PlayNumber + 1,
			PreState:   pre,
			Play:       play,
			Transition: t,
			Violations: violations,
			RecordedAt: time.Now().UTC(),
		}, fmt.Errorf("transition failed validation: %v", violations[0])
	}

	if err := m.applicator.Apply(t, state); err != nil {
		return nil, err
	}

	entry := &models.AuditEntry{
		GameID:       state.GameID,
		PlayNumber:   state.PlayNumber,
		PreState:     pre,
		Play:         play,
		Transition:   t,
		PostState:    state.Snapshot(),
		Violations:   carriedViolations,
		TimeElapsed:  t.Clock.SecondsElapsed,
		FallbackUsed: fallback,
		RecordedAt:   time.Now().UTC(),
	}
	for _, sink := range m.sinks {
		sink.Record(entry)
	}
	return entry, nil
}

// fallbackClock charges the fixed runoff and handles quarter movement the
// same way the normal clock calculator does
func fallbackClock(state *models.GameState) models.ClockTransition {
	remaining := state.Clock.SecondsRemaining - fallbackRunoffSeconds
	if remaining < 0 {
		remaining = 0
	}
	t := models.ClockTransition{
		SecondsElapsed:      fallbackRunoffSeconds,
		NewSecondsRemaining: remaining,
		NewQuarter:          state.Clock.Quarter,
	}
	if remaining == 0 {
		t.ClockStopped = true
		switch {
		case state.Clock.Overtime || state.Clock.Quarter == models.RegulationQuarters:
			t.RegulationEnded = true
		default:
			t.QuarterAdvanced = true
			t.NewQuarter = state.Clock.Quarter + 1
			t.NewSecondsRemaining = models.SecondsPerQuarter
			if state.Clock.Quarter == 2 {
				t.HalfEnded = true
			}
		}
	}
	return t
}
