package session

import (
	"fmt"
	"math"
	"time"

	"brewflow/internal/domain"
)

// Snapshot is the display-state projection: everything the UI renders,
// pre-formatted, so the consuming view holds no business logic.
type Snapshot struct {
	SessionID  string
	RecipeName string
	StepIndex  int // 0-based
	StepCount  int
	Phase      domain.Phase
	Kind       domain.StepKind

	Instruction   string
	WaterLine     string // "Water: 197 g total", "" for dry steps
	CountdownText string // "0:32", "" when no countdown is active
	ElapsedText   string // "1:05", "" before the session clock starts
	MilestoneText string // "target 1:15", pour steps only

	ReadyToAdvance bool
	AwaitingPour   bool
	Paused         bool
	Completed      bool
	Warnings       []string
}

// Snapshot projects the machine's current state. paused is owned by the
// runner, which knows whether the tick loop is stopped.
func (m *Machine) Snapshot(sessionID string, paused bool) Snapshot {
	snap := Snapshot{
		SessionID:  sessionID,
		RecipeName: m.plan.RecipeName,
		StepIndex:  m.idx,
		StepCount:  m.plan.Len(),
		Phase:      m.phase,
		Paused:     paused,
		Completed:  m.phase == domain.PhaseCompleted,
	}
	for _, w := range m.plan.Warnings {
		snap.Warnings = append(snap.Warnings, w.Message)
	}

	if elapsed, ok := m.Elapsed(); ok {
		snap.ElapsedText = formatClock(elapsed)
	}

	step := m.CurrentStep()
	if step == nil {
		snap.Instruction = fmt.Sprintf("Brew complete. %.0f g in the cup.", m.plan.TotalWater)
		return snap
	}

	snap.Kind = step.Kind
	snap.Instruction = step.Instruction
	snap.AwaitingPour = m.phase == domain.PhaseAwaitingPour
	snap.ReadyToAdvance = m.phase == domain.PhaseStepReady ||
		(m.phase == domain.PhaseActive && step.Kind == domain.StepPour)

	if step.WaterGrams > 0 {
		if step.IsCumulative {
			snap.WaterLine = fmt.Sprintf("Water: %.0f g total", step.WaterGrams)
		} else {
			snap.WaterLine = fmt.Sprintf("Water: %.0f g", step.WaterGrams)
		}
	}

	if remaining, ok := m.Remaining(); ok {
		snap.CountdownText = formatClock(ceilSecond(remaining))
	}

	if step.Kind == domain.StepPour && step.TargetElapsed > 0 {
		snap.MilestoneText = fmt.Sprintf("target %s", formatClock(step.TargetElapsed))
	}

	return snap
}

// formatClock renders a duration as m:ss for the session display.
func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// ceilSecond rounds a countdown up to whole seconds so the display never
// shows 0:00 while time is still left.
func ceilSecond(d time.Duration) time.Duration {
	return time.Duration(math.Ceil(d.Seconds())) * time.Second
}
