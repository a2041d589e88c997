package plan

import (
	"errors"
	"strings"
	"testing"
	"time"

	"brewflow/internal/domain"
)

func v60Snapshot() *domain.RecipeSnapshot {
	return &domain.RecipeSnapshot{
		ID:         "v60-test",
		Name:       "V60 Test",
		Method:     domain.MethodV60,
		Dose:       15,
		Yield:      250,
		WaterTempC: 93,
		GrindLabel: "medium-fine",
		Steps: []domain.StepTemplate{
			{Kind: domain.StepPreparation, Label: "Rinse the filter"},
			{Kind: domain.StepBloom, Label: "Bloom", DurationSeconds: 45, HasWater: true},
			{Kind: domain.StepPour, Label: "First pour", TargetElapsedSeconds: 75, HasWater: true, IsCumulative: true},
			{Kind: domain.StepPour, Label: "Second pour", TargetElapsedSeconds: 105, HasWater: true, IsCumulative: true},
			{Kind: domain.StepWait, Label: "Drawdown", DurationSeconds: 60},
		},
	}
}

func scaledResult() domain.ScaledResult {
	return domain.ScaledResult{
		Dose:         20,
		Yield:        333,
		Ratio:        16.65,
		BloomWater:   60,
		WaterTempC:   93,
		GrindLabel:   "medium-fine",
		WaterTargets: []float64{60, 197, 333},
	}
}

func TestBuildNoSteps(t *testing.T) {
	snapshot := v60Snapshot()
	snapshot.Steps = nil

	_, err := Build(snapshot, scaledResult())
	if !errors.Is(err, domain.ErrNoSteps) {
		t.Fatalf("expected ErrNoSteps, got %v", err)
	}
}

func TestBuildWaterTargetMismatch(t *testing.T) {
	scaled := scaledResult()
	scaled.WaterTargets = []float64{60, 333} // one target short

	_, err := Build(v60Snapshot(), scaled)
	if !errors.Is(err, domain.ErrWaterTargetMismatch) {
		t.Fatalf("expected ErrWaterTargetMismatch, got %v", err)
	}
}

func TestBuildTimerConflict(t *testing.T) {
	snapshot := v60Snapshot()
	snapshot.Steps[1].TargetElapsedSeconds = 30 // bloom now claims both

	_, err := Build(snapshot, scaledResult())
	if !errors.Is(err, domain.ErrStepTimerConflict) {
		t.Fatalf("expected ErrStepTimerConflict, got %v", err)
	}
}

func TestBuildResolvesSteps(t *testing.T) {
	p, err := Build(v60Snapshot(), scaledResult())
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if p.Len() != 5 {
		t.Fatalf("expected 5 steps, got %d", p.Len())
	}
	if p.TotalWater != 333 {
		t.Fatalf("total water = %v, want 333", p.TotalWater)
	}

	bloom := p.Step(1)
	if bloom.WaterGrams != 60 {
		t.Fatalf("bloom water = %v, want 60", bloom.WaterGrams)
	}
	if bloom.Duration != 45*time.Second {
		t.Fatalf("bloom duration = %v, want 45s", bloom.Duration)
	}
	if bloom.TargetElapsed != 0 {
		t.Fatalf("bloom must not carry a milestone, got %v", bloom.TargetElapsed)
	}

	first := p.Step(2)
	if first.WaterGrams != 197 {
		t.Fatalf("first pour target = %v, want 197", first.WaterGrams)
	}
	if first.TargetElapsed != 75*time.Second {
		t.Fatalf("first pour milestone = %v, want 75s", first.TargetElapsed)
	}
	if first.Duration != 0 {
		t.Fatalf("pour must not carry a countdown, got %v", first.Duration)
	}

	second := p.Step(3)
	if second.WaterGrams != 333 {
		t.Fatalf("second pour target = %v, want 333", second.WaterGrams)
	}

	wait := p.Step(4)
	if wait.Duration != 60*time.Second {
		t.Fatalf("wait duration = %v, want 60s", wait.Duration)
	}
	if wait.WaterGrams != 0 {
		t.Fatalf("wait pours no water, got %v", wait.WaterGrams)
	}
}

func TestInstructionsUseScaledValues(t *testing.T) {
	p, err := Build(v60Snapshot(), scaledResult())
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	tests := []struct {
		step int
		want string
	}{
		{0, "20.0 g"}, // preparation quotes the scaled dose
		{1, "Pour 60 g of water to bloom, then wait 45s."},
		{2, "Pour up to 197 g total by 1:15 on the clock."},
		{3, "Pour up to 333 g total by 1:45 on the clock."},
		{4, "Wait 1:00 for the drawdown."},
	}

	for _, tt := range tests {
		got := p.Step(tt.step).Instruction
		if !strings.Contains(got, tt.want) {
			t.Fatalf("step %d instruction %q does not contain %q", tt.step, got, tt.want)
		}
	}
}

func TestIncrementalWaterStep(t *testing.T) {
	snapshot := v60Snapshot()
	// Second pour shown as an increment instead of a running total.
	snapshot.Steps[3].IsCumulative = false

	p, err := Build(snapshot, scaledResult())
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	second := p.Step(3)
	if second.WaterGrams != 136 {
		t.Fatalf("incremental pour = %v, want 136 (333 - 197)", second.WaterGrams)
	}
	if !strings.Contains(second.Instruction, "Pour 136 g of water") {
		t.Fatalf("instruction %q should quote the increment", second.Instruction)
	}
}
