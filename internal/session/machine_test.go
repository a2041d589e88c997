package session

import (
	"testing"
	"time"

	"brewflow/internal/domain"
	"brewflow/internal/logger"
)

// fakeClock is a manually advanced clock for deterministic timer tests.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

// testPlan is the canonical pour-over shape: preparation, bloom, pour, wait.
func testPlan() *domain.BrewPlan {
	return &domain.BrewPlan{
		RecipeID:   "v60-test",
		RecipeName: "V60 Test",
		Method:     domain.MethodV60,
		Dose:       20,
		Yield:      333,
		TotalWater: 333,
		Steps: []domain.ScaledStep{
			{Index: 0, Kind: domain.StepPreparation, Instruction: "Rinse the filter."},
			{Index: 1, Kind: domain.StepBloom, Instruction: "Pour 60 g to bloom.", WaterGrams: 60, Duration: 45 * time.Second},
			{Index: 2, Kind: domain.StepPour, Instruction: "Pour up to 333 g.", WaterGrams: 333, IsCumulative: true, TargetElapsed: 105 * time.Second},
			{Index: 3, Kind: domain.StepWait, Instruction: "Wait for the drawdown.", Duration: 60 * time.Second},
		},
	}
}

func planOf(kinds ...domain.StepKind) *domain.BrewPlan {
	p := &domain.BrewPlan{RecipeID: "kinds", RecipeName: "Kinds"}
	for i, k := range kinds {
		step := domain.ScaledStep{Index: i, Kind: k}
		switch k {
		case domain.StepBloom, domain.StepWait:
			step.Duration = 30 * time.Second
		case domain.StepPour:
			step.TargetElapsed = 60 * time.Second
		}
		p.Steps = append(p.Steps, step)
	}
	return p
}

func setupMachine(t *testing.T, p *domain.BrewPlan) (*Machine, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	m := NewMachine(p, clock, logger.New(logger.LevelOff, nil))
	return m, clock
}

func (m *Machine) apply(t *testing.T, kind domain.IntentType) {
	t.Helper()
	m.Apply(domain.Intent{Type: kind})
}

func TestEntryTable(t *testing.T) {
	tests := []struct {
		kind      domain.StepKind
		wantPhase domain.Phase
		wantClock bool
		wantCount bool
	}{
		{domain.StepPreparation, domain.PhaseStepReady, false, false},
		{domain.StepBloom, domain.PhaseAwaitingPour, false, false},
		{domain.StepPour, domain.PhaseActive, true, false},
		{domain.StepWait, domain.PhaseActive, true, true},
		{domain.StepAgitate, domain.PhaseStepReady, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			m, _ := setupMachine(t, planOf(tt.kind))
			m.apply(t, domain.IntentStart)

			if m.Phase() != tt.wantPhase {
				t.Fatalf("phase = %s, want %s", m.Phase(), tt.wantPhase)
			}
			if _, ok := m.Elapsed(); ok != tt.wantClock {
				t.Fatalf("session clock started = %v, want %v", ok, tt.wantClock)
			}
			if _, ok := m.Remaining(); ok != tt.wantCount {
				t.Fatalf("countdown active = %v, want %v", ok, tt.wantCount)
			}
		})
	}
}

func TestPreparationToBloomToCountdown(t *testing.T) {
	// next on an untimed preparation immediately lands in the bloom's
	// AwaitingPourConfirmation; confirm-pour starts the countdown and the
	// session clock simultaneously.
	m, _ := setupMachine(t, testPlan())
	m.apply(t, domain.IntentStart)

	if m.Phase() != domain.PhaseStepReady {
		t.Fatalf("preparation phase = %s, want step_ready", m.Phase())
	}

	m.apply(t, domain.IntentNext)
	if m.StepIndex() != 1 || m.Phase() != domain.PhaseAwaitingPour {
		t.Fatalf("after next: step %d phase %s, want step 1 awaiting_pour", m.StepIndex(), m.Phase())
	}
	if _, ok := m.Elapsed(); ok {
		t.Fatal("session clock must not start before the pour is confirmed")
	}

	m.apply(t, domain.IntentConfirmPour)
	if m.Phase() != domain.PhaseActive {
		t.Fatalf("after confirm-pour: phase %s, want active", m.Phase())
	}
	remaining, counting := m.Remaining()
	if !counting || remaining != 45*time.Second {
		t.Fatalf("countdown = %v (%v), want 45s running", remaining, counting)
	}
	if _, ok := m.Elapsed(); !ok {
		t.Fatal("session clock must start with the confirmed pour")
	}
}

func TestCountdownReachesStepReady(t *testing.T) {
	m, clock := setupMachine(t, testPlan())
	m.apply(t, domain.IntentStart)
	m.apply(t, domain.IntentNext)        // into bloom
	m.apply(t, domain.IntentConfirmPour) // countdown 45s

	clock.advance(44 * time.Second)
	m.Tick(clock.Now())
	if m.Phase() != domain.PhaseActive {
		t.Fatalf("phase = %s with 1s left, want active", m.Phase())
	}
	remaining, counting := m.Remaining()
	if !counting || remaining != 1*time.Second {
		t.Fatalf("remaining = %v (%v), want 1s running", remaining, counting)
	}

	clock.advance(2 * time.Second)
	m.Tick(clock.Now())
	if m.Phase() != domain.PhaseStepReady {
		t.Fatalf("phase = %s after zero-crossing, want step_ready", m.Phase())
	}
	if _, counting := m.Remaining(); counting {
		t.Fatal("countdown must stop at step_ready")
	}
}

func TestPourAdvancesManually(t *testing.T) {
	// Pour steps never count down: the machine stays active, tracking the
	// milestone, until the user confirms with next.
	m, clock := setupMachine(t, planOf(domain.StepPour, domain.StepWait))
	m.apply(t, domain.IntentStart)

	if _, counting := m.Remaining(); counting {
		t.Fatal("pour steps must not carry a countdown")
	}

	clock.advance(2 * time.Minute) // well past the milestone
	m.Tick(clock.Now())
	if m.Phase() != domain.PhaseActive {
		t.Fatalf("phase = %s, pour stays active until confirmed", m.Phase())
	}

	m.apply(t, domain.IntentNext)
	if m.StepIndex() != 1 || m.Phase() != domain.PhaseActive {
		t.Fatalf("after manual confirm: step %d phase %s, want step 1 active", m.StepIndex(), m.Phase())
	}
}

func TestFinalStepCompletesAndFreezesClock(t *testing.T) {
	m, clock := setupMachine(t, planOf(domain.StepWait))
	m.apply(t, domain.IntentStart)

	clock.advance(31 * time.Second)
	m.Tick(clock.Now())
	if m.Phase() != domain.PhaseStepReady {
		t.Fatalf("phase = %s, want step_ready", m.Phase())
	}

	m.apply(t, domain.IntentNext)
	if m.Phase() != domain.PhaseCompleted {
		t.Fatalf("phase = %s, want completed", m.Phase())
	}

	frozen, ok := m.Elapsed()
	if !ok {
		t.Fatal("elapsed must survive completion")
	}
	clock.advance(10 * time.Minute)
	later, _ := m.Elapsed()
	if later != frozen {
		t.Fatalf("elapsed moved after completion: %v -> %v", frozen, later)
	}
}

func TestRestartFromEveryPhase(t *testing.T) {
	reach := map[string]func(m *Machine, clock *fakeClock){
		"not_started": func(m *Machine, clock *fakeClock) {},
		"step_ready": func(m *Machine, clock *fakeClock) {
			m.Apply(domain.Intent{Type: domain.IntentStart})
		},
		"awaiting_pour": func(m *Machine, clock *fakeClock) {
			m.Apply(domain.Intent{Type: domain.IntentStart})
			m.Apply(domain.Intent{Type: domain.IntentNext})
		},
		"active": func(m *Machine, clock *fakeClock) {
			m.Apply(domain.Intent{Type: domain.IntentStart})
			m.Apply(domain.Intent{Type: domain.IntentNext})
			m.Apply(domain.Intent{Type: domain.IntentConfirmPour})
		},
		"completed": func(m *Machine, clock *fakeClock) {
			m.Apply(domain.Intent{Type: domain.IntentStart})
			m.Apply(domain.Intent{Type: domain.IntentNext})
			m.Apply(domain.Intent{Type: domain.IntentConfirmPour})
			clock.advance(time.Minute)
			m.Tick(clock.Now())
			m.Apply(domain.Intent{Type: domain.IntentNext}) // pour
			m.Apply(domain.Intent{Type: domain.IntentNext}) // wait -> ?
			clock.advance(2 * time.Minute)
			m.Tick(clock.Now())
			m.Apply(domain.Intent{Type: domain.IntentNext})
		},
	}

	for name, setup := range reach {
		t.Run(name, func(t *testing.T) {
			m, clock := setupMachine(t, testPlan())
			setup(m, clock)

			m.apply(t, domain.IntentRestart)

			if m.StepIndex() != 0 {
				t.Fatalf("step index = %d, want 0", m.StepIndex())
			}
			if m.Phase() != domain.PhaseNotStarted {
				t.Fatalf("phase = %s, want not_started", m.Phase())
			}
			if _, counting := m.Remaining(); counting {
				t.Fatal("countdown must be cleared by restart")
			}
			if _, ok := m.Elapsed(); ok {
				t.Fatal("session clock must be cleared by restart")
			}
		})
	}
}

func TestInvalidIntentsAreNoOps(t *testing.T) {
	// Every intent in every phase either transitions per the table or
	// does nothing; the machine is total.
	intents := []domain.IntentType{
		domain.IntentStart, domain.IntentConfirmPour, domain.IntentNext,
		domain.IntentPause, domain.IntentResume, domain.IntentExit,
		domain.IntentStatus, domain.IntentHelp, domain.IntentUnknown,
	}

	m, _ := setupMachine(t, testPlan())
	m.apply(t, domain.IntentStart) // preparation: step_ready

	// confirm-pour is invalid outside awaiting_pour.
	if m.Apply(domain.Intent{Type: domain.IntentConfirmPour}) {
		t.Fatal("confirm-pour must be a no-op in step_ready")
	}
	// start is invalid once entered.
	if m.Apply(domain.Intent{Type: domain.IntentStart}) {
		t.Fatal("start must be a no-op outside not_started")
	}

	// No combination may panic or corrupt the cursor.
	for _, in := range intents {
		m.Apply(domain.Intent{Type: in})
		if idx := m.StepIndex(); idx < 0 || idx >= m.Plan().Len() && m.Phase() != domain.PhaseCompleted {
			t.Fatalf("cursor out of range after %s: %d", in, idx)
		}
	}
}

func TestNextIgnoredMidCountdown(t *testing.T) {
	m, clock := setupMachine(t, testPlan())
	m.apply(t, domain.IntentStart)
	m.apply(t, domain.IntentNext)
	m.apply(t, domain.IntentConfirmPour)

	clock.advance(10 * time.Second)
	m.Tick(clock.Now())

	if m.Apply(domain.Intent{Type: domain.IntentNext}) {
		t.Fatal("next must be a no-op while a bloom countdown runs")
	}
	if m.StepIndex() != 1 {
		t.Fatalf("cursor moved to %d during countdown", m.StepIndex())
	}
}

func TestElapsedMonotonic(t *testing.T) {
	m, clock := setupMachine(t, planOf(domain.StepWait))
	m.apply(t, domain.IntentStart)

	var previous time.Duration
	for i := 0; i < 50; i++ {
		clock.advance(137 * time.Millisecond)
		elapsed, ok := m.Elapsed()
		if !ok {
			t.Fatal("elapsed must be readable once the clock started")
		}
		if elapsed < previous {
			t.Fatalf("elapsed decreased: %v -> %v", previous, elapsed)
		}
		previous = elapsed
	}
}

func TestZeroDurationWaitFailsSafe(t *testing.T) {
	p := planOf(domain.StepWait)
	p.Steps[0].Duration = 0

	m, _ := setupMachine(t, p)
	m.apply(t, domain.IntentStart)

	if m.Phase() != domain.PhaseStepReady {
		t.Fatalf("phase = %s, want step_ready for an unusable duration", m.Phase())
	}
}

func TestResumeReanchorsCountdown(t *testing.T) {
	m, clock := setupMachine(t, testPlan())
	m.apply(t, domain.IntentStart)
	m.apply(t, domain.IntentNext)
	m.apply(t, domain.IntentConfirmPour)

	clock.advance(10 * time.Second)
	m.Tick(clock.Now())

	// A paused gap must not be deducted once ticks resume.
	clock.advance(5 * time.Minute)
	m.ResumeAt(clock.Now())
	clock.advance(1 * time.Second)
	m.Tick(clock.Now())

	remaining, counting := m.Remaining()
	if !counting || remaining != 34*time.Second {
		t.Fatalf("remaining = %v (%v), want 34s after 11s of counted time", remaining, counting)
	}
}
