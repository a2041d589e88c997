package session

import (
	"context"
	"testing"
	"time"

	"brewflow/internal/domain"
	"brewflow/internal/logger"
	"brewflow/internal/tick"
)

// runnerPlan uses durations short enough to elapse inside a test run.
func runnerPlan() *domain.BrewPlan {
	return &domain.BrewPlan{
		RecipeID:   "v60-test",
		RecipeName: "V60 Test",
		Method:     domain.MethodV60,
		Dose:       20,
		Yield:      333,
		TotalWater: 333,
		Steps: []domain.ScaledStep{
			{Index: 0, Kind: domain.StepPreparation, Instruction: "Rinse the filter."},
			{Index: 1, Kind: domain.StepBloom, Instruction: "Pour to bloom.", WaterGrams: 60, Duration: 40 * time.Millisecond},
			{Index: 2, Kind: domain.StepWait, Instruction: "Drawdown.", Duration: 40 * time.Millisecond},
		},
	}
}

func startRunner(t *testing.T, plan *domain.BrewPlan) *Runner {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	sched := tick.New(5*time.Millisecond, log)
	r := NewRunner(plan, domain.RealClock{}, sched, log)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go r.Run(ctx)
	return r
}

// waitFor polls the runner's snapshot stream until cond holds or the
// deadline passes.
func waitFor(t *testing.T, r *Runner, what string, cond func(Snapshot) bool) Snapshot {
	t.Helper()
	deadline := time.After(2 * time.Second)
	var last Snapshot
	for {
		select {
		case snap := <-r.Updates():
			last = snap
			if cond(snap) {
				return snap
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s; last snapshot: step %d phase %s",
				what, last.StepIndex, last.Phase)
		}
	}
}

func TestRunnerHappyPath(t *testing.T) {
	r := startRunner(t, runnerPlan())

	snap := waitFor(t, r, "first step ready", func(s Snapshot) bool {
		return s.StepIndex == 0 && s.ReadyToAdvance
	})
	if snap.ElapsedText != "" {
		t.Fatalf("session clock visible before any timed action: %q", snap.ElapsedText)
	}

	r.Dispatch(domain.Intent{Type: domain.IntentNext})
	waitFor(t, r, "bloom awaiting pour", func(s Snapshot) bool {
		return s.StepIndex == 1 && s.AwaitingPour
	})

	r.Dispatch(domain.Intent{Type: domain.IntentConfirmPour})
	waitFor(t, r, "bloom countdown to finish", func(s Snapshot) bool {
		return s.StepIndex == 1 && s.ReadyToAdvance
	})

	r.Dispatch(domain.Intent{Type: domain.IntentNext})
	waitFor(t, r, "drawdown to finish", func(s Snapshot) bool {
		return s.StepIndex == 2 && s.ReadyToAdvance
	})

	r.Dispatch(domain.Intent{Type: domain.IntentNext})
	snap = waitFor(t, r, "completion", func(s Snapshot) bool { return s.Completed })
	if snap.ElapsedText == "" {
		t.Fatal("completed snapshot must carry the final brew time")
	}

	r.Dispatch(domain.Intent{Type: domain.IntentExit})
	select {
	case <-r.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not tear down after exit")
	}
}

func TestRunnerPauseStopsCountdown(t *testing.T) {
	plan := runnerPlan()
	plan.Steps[1].Duration = 500 * time.Millisecond
	r := startRunner(t, plan)

	waitFor(t, r, "first step ready", func(s Snapshot) bool { return s.ReadyToAdvance })
	r.Dispatch(domain.Intent{Type: domain.IntentNext})
	waitFor(t, r, "awaiting pour", func(s Snapshot) bool { return s.AwaitingPour })
	r.Dispatch(domain.Intent{Type: domain.IntentConfirmPour})
	waitFor(t, r, "countdown running", func(s Snapshot) bool { return s.CountdownText != "" })

	r.Dispatch(domain.Intent{Type: domain.IntentPause})
	snap := waitFor(t, r, "paused snapshot", func(s Snapshot) bool { return s.Paused })
	frozen := snap.CountdownText

	// No ticks arrive while paused, so the countdown cannot move.
	time.Sleep(100 * time.Millisecond)
	r.Dispatch(domain.Intent{Type: domain.IntentStatus})
	snap = waitFor(t, r, "status while paused", func(s Snapshot) bool { return s.Paused })
	if snap.CountdownText != frozen {
		t.Fatalf("countdown moved while paused: %q -> %q", frozen, snap.CountdownText)
	}

	r.Dispatch(domain.Intent{Type: domain.IntentResume})
	waitFor(t, r, "countdown to finish after resume", func(s Snapshot) bool {
		return s.StepIndex == 1 && s.ReadyToAdvance
	})
}

func TestRunnerRestartReentersFirstStep(t *testing.T) {
	r := startRunner(t, runnerPlan())

	waitFor(t, r, "first step ready", func(s Snapshot) bool { return s.ReadyToAdvance })
	r.Dispatch(domain.Intent{Type: domain.IntentNext})
	waitFor(t, r, "awaiting pour", func(s Snapshot) bool { return s.AwaitingPour })
	r.Dispatch(domain.Intent{Type: domain.IntentConfirmPour})
	waitFor(t, r, "session clock running", func(s Snapshot) bool { return s.ElapsedText != "" })

	r.Dispatch(domain.Intent{Type: domain.IntentRestart})
	snap := waitFor(t, r, "restart to land on step one", func(s Snapshot) bool {
		return s.StepIndex == 0 && s.ReadyToAdvance
	})
	if snap.ElapsedText != "" {
		t.Fatalf("session clock survived restart: %q", snap.ElapsedText)
	}
	if snap.CountdownText != "" {
		t.Fatalf("countdown survived restart: %q", snap.CountdownText)
	}
}

func TestRunnerContextCancellation(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	sched := tick.New(5*time.Millisecond, log)
	r := NewRunner(runnerPlan(), domain.RealClock{}, sched, log)

	ctx, cancel := context.WithCancel(context.Background())
	go r.Run(ctx)

	waitFor(t, r, "first snapshot", func(s Snapshot) bool { return true })
	cancel()

	select {
	case <-r.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not observe cancellation")
	}
	if sched.Running() {
		t.Fatal("scheduler left running after teardown")
	}
}

func TestRunnerLogRequestCarriesPlanValues(t *testing.T) {
	r := startRunner(t, runnerPlan())

	waitFor(t, r, "first step ready", func(s Snapshot) bool { return s.ReadyToAdvance })
	r.Dispatch(domain.Intent{Type: domain.IntentNext})
	waitFor(t, r, "awaiting pour", func(s Snapshot) bool { return s.AwaitingPour })
	r.Dispatch(domain.Intent{Type: domain.IntentConfirmPour})
	waitFor(t, r, "bloom done", func(s Snapshot) bool { return s.StepIndex == 1 && s.ReadyToAdvance })
	r.Dispatch(domain.Intent{Type: domain.IntentNext})
	waitFor(t, r, "drawdown done", func(s Snapshot) bool { return s.StepIndex == 2 && s.ReadyToAdvance })
	r.Dispatch(domain.Intent{Type: domain.IntentNext})
	waitFor(t, r, "completion", func(s Snapshot) bool { return s.Completed })

	req := r.LogRequest(4, "fruity", "slightly fast drawdown")
	if req.RecipeID != "v60-test" || req.Method != domain.MethodV60 {
		t.Fatalf("log request recipe = %s/%s", req.RecipeID, req.Method)
	}
	if req.Dose != 20 || req.Yield != 333 {
		t.Fatalf("log request dose/yield = %v/%v", req.Dose, req.Yield)
	}
	if req.BrewTime <= 0 {
		t.Fatalf("log request brew time = %v, want > 0", req.BrewTime)
	}
	if req.Rating != 4 || req.Tag != "fruity" {
		t.Fatalf("log request rating/tag = %d/%q", req.Rating, req.Tag)
	}
}
