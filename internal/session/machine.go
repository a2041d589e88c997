// Package session owns the live brewing session: the step-progression
// state machine, the actor loop that is its single writer, and the
// display-state projection the UI renders.
package session

import (
	"time"

	"brewflow/internal/domain"
	"brewflow/internal/logger"
)

// Machine is the step-progression state machine. It is not safe for
// concurrent use on purpose: exactly one goroutine (the Runner) owns it,
// so no locks are needed or wanted.
//
// The plan is frozen before the machine sees it and is shared, not
// copied. Restart rewinds the cursor over the same plan.
type Machine struct {
	plan  *domain.BrewPlan
	clock domain.Clock
	log   *logger.Logger

	idx   int
	phase domain.Phase

	// Step countdown. counting is true iff the current step is actively
	// counting down; remaining is meaningless otherwise.
	remaining  time.Duration
	counting   bool
	lastTickAt time.Time

	// Session clock. startedAt is set exactly once per session, by the
	// first timed action, and cleared only by restart. Elapsed time is
	// recomputed from the wall clock on every read so suspension can
	// never make it drift.
	startedAt  time.Time
	finishedAt time.Time
}

// NewMachine creates a machine positioned before the first step.
func NewMachine(plan *domain.BrewPlan, clock domain.Clock, log *logger.Logger) *Machine {
	return &Machine{
		plan:  plan,
		clock: clock,
		log:   log.Named("machine"),
		phase: domain.PhaseNotStarted,
	}
}

// Plan returns the frozen plan the session runs against.
func (m *Machine) Plan() *domain.BrewPlan { return m.plan }

// Phase returns the current phase.
func (m *Machine) Phase() domain.Phase { return m.phase }

// StepIndex returns the current step cursor.
func (m *Machine) StepIndex() int { return m.idx }

// CurrentStep returns the step under the cursor, or nil once completed.
func (m *Machine) CurrentStep() *domain.ScaledStep {
	if m.phase == domain.PhaseCompleted || m.idx >= m.plan.Len() {
		return nil
	}
	return m.plan.Step(m.idx)
}

// Remaining returns the step countdown and whether one is active.
func (m *Machine) Remaining() (time.Duration, bool) {
	return m.remaining, m.counting
}

// Elapsed returns the session clock and whether it has started. While the
// session runs this is now minus startedAt; once completed it freezes at
// the completion instant.
func (m *Machine) Elapsed() (time.Duration, bool) {
	if m.startedAt.IsZero() {
		return 0, false
	}
	if !m.finishedAt.IsZero() {
		return m.finishedAt.Sub(m.startedAt), true
	}
	return m.clock.Now().Sub(m.startedAt), true
}

// Apply dispatches a state intent. Intents that are invalid for the
// current phase are ignored and logged, never errors: the machine is
// total over every (phase, intent) pair. Returns whether state changed.
func (m *Machine) Apply(in domain.Intent) bool {
	switch in.Type {
	case domain.IntentStart:
		return m.start()
	case domain.IntentConfirmPour:
		return m.confirmPour()
	case domain.IntentNext:
		return m.next()
	case domain.IntentRestart:
		return m.restart()
	default:
		m.log.Debug("intent %s not a machine intent, ignored", in.Type)
		return false
	}
}

// start enters the first (or post-restart) step.
func (m *Machine) start() bool {
	if m.phase != domain.PhaseNotStarted {
		m.log.Debug("start ignored in phase %s", m.phase)
		return false
	}
	m.enterStep()
	return true
}

// confirmPour releases a bloom step's deferred countdown: the session
// clock starts (if unset) and the countdown begins, simultaneously.
func (m *Machine) confirmPour() bool {
	if m.phase != domain.PhaseAwaitingPour {
		m.log.Debug("confirm-pour ignored in phase %s", m.phase)
		return false
	}
	step := m.CurrentStep()
	m.phase = domain.PhaseActive
	m.startClock()
	m.startCountdown(step.Duration)
	m.log.Debug("pour confirmed, bloom countdown %s", step.Duration)
	return true
}

// next advances past the current step, entering the following one
// immediately, or completes the session on the last step.
//
// Valid from StepReady for every kind, and from Active for pour steps,
// whose completion is a manual confirmation rather than a countdown.
func (m *Machine) next() bool {
	ready := m.phase == domain.PhaseStepReady
	if !ready && m.phase == domain.PhaseActive {
		if step := m.CurrentStep(); step != nil && step.Kind == domain.StepPour {
			ready = true
		}
	}
	if !ready {
		m.log.Debug("next ignored in phase %s", m.phase)
		return false
	}

	m.stopCountdown()

	if m.idx+1 >= m.plan.Len() {
		m.phase = domain.PhaseCompleted
		if !m.startedAt.IsZero() {
			m.finishedAt = m.clock.Now()
		}
		m.log.Info("session completed after %d steps", m.plan.Len())
		return true
	}

	m.idx++
	m.phase = domain.PhaseNotStarted
	m.enterStep()
	return true
}

// restart rewinds to the first step of the same frozen plan. The cursor,
// countdown, and session clock all reset; confirmation is the boundary's
// responsibility, not ours.
func (m *Machine) restart() bool {
	m.idx = 0
	m.phase = domain.PhaseNotStarted
	m.stopCountdown()
	m.startedAt = time.Time{}
	m.finishedAt = time.Time{}
	m.log.Info("session restarted")
	return true
}

// Tick advances the countdown, if one is active, by the wall time since
// the previous tick. Crossing zero parks the step at StepReady; the tick
// loop keeps running only so the elapsed clock display stays current.
func (m *Machine) Tick(now time.Time) bool {
	if !m.counting || m.phase != domain.PhaseActive {
		return false
	}

	delta := now.Sub(m.lastTickAt)
	m.lastTickAt = now
	if delta < 0 {
		return false
	}

	m.remaining -= delta
	if m.remaining <= 0 {
		m.remaining = 0
		m.counting = false
		m.phase = domain.PhaseStepReady
		m.log.Debug("countdown finished for step %d", m.idx)
	}
	return true
}

// ResumeAt re-anchors a paused countdown so the paused gap is not
// deducted from the remaining time.
func (m *Machine) ResumeAt(now time.Time) {
	if m.counting {
		m.lastTickAt = now
	}
}

// enterStep applies the step-kind entry table from NotStarted.
func (m *Machine) enterStep() {
	step := m.plan.Step(m.idx)
	switch step.Kind {
	case domain.StepPreparation, domain.StepAgitate:
		m.phase = domain.PhaseStepReady
	case domain.StepBloom:
		// Countdown deferred until the user confirms the pour.
		m.phase = domain.PhaseAwaitingPour
	case domain.StepPour:
		// Milestone-tracked: no countdown, the user confirms completion.
		m.phase = domain.PhaseActive
		m.startClock()
	case domain.StepWait:
		m.phase = domain.PhaseActive
		m.startClock()
		m.startCountdown(step.Duration)
	}
	m.log.Debug("entered step %d/%d (%s) phase=%s", m.idx+1, m.plan.Len(), step.Kind, m.phase)
}

func (m *Machine) startClock() {
	if m.startedAt.IsZero() {
		m.startedAt = m.clock.Now()
	}
}

// startCountdown arms the step countdown. A missing or zero duration
// fails safe: the step is immediately ready to advance instead of
// leaving the session stuck.
func (m *Machine) startCountdown(d time.Duration) {
	if d <= 0 {
		m.counting = false
		m.remaining = 0
		m.phase = domain.PhaseStepReady
		m.log.Warn("step %d has no usable duration, marking ready", m.idx)
		return
	}
	m.remaining = d
	m.counting = true
	m.lastTickAt = m.clock.Now()
}

func (m *Machine) stopCountdown() {
	m.counting = false
	m.remaining = 0
}
