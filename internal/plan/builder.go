// Package plan builds the immutable step sequence a session runs against.
// Instruction text is regenerated from the scaled values at build time so
// it can never reference pre-scaling quantities.
package plan

import (
	"fmt"
	"time"

	"brewflow/internal/domain"
)

// Build merges the recipe's step templates with the scaling result into a
// frozen BrewPlan. Templates and resolved water targets are positionally
// aligned: each water-bearing template consumes the next target in order.
//
// Build fails before a session can start: an empty recipe, misaligned
// water targets, or a template claiming both a duration and a milestone
// are all fatal here, never later.
func Build(recipe *domain.RecipeSnapshot, scaled domain.ScaledResult) (*domain.BrewPlan, error) {
	if len(recipe.Steps) == 0 {
		return nil, fmt.Errorf("recipe %s: %w", recipe.ID, domain.ErrNoSteps)
	}

	waterSteps := 0
	for _, t := range recipe.Steps {
		if t.HasWater {
			waterSteps++
		}
	}
	if waterSteps != len(scaled.WaterTargets) {
		return nil, fmt.Errorf("recipe %s: %d water steps, %d targets: %w",
			recipe.ID, waterSteps, len(scaled.WaterTargets), domain.ErrWaterTargetMismatch)
	}

	p := &domain.BrewPlan{
		RecipeID:   recipe.ID,
		RecipeName: recipe.Name,
		Method:     recipe.Method,
		Dose:       scaled.Dose,
		Yield:      scaled.Yield,
		Ratio:      scaled.Ratio,
		WaterTempC: scaled.WaterTempC,
		GrindLabel: scaled.GrindLabel,
		TotalWater: scaled.Yield,
		Warnings:   scaled.Warnings,
		Steps:      make([]domain.ScaledStep, 0, len(recipe.Steps)),
	}

	next := 0            // next unconsumed water target
	var previous float64 // running cumulative total before this step
	for i, t := range recipe.Steps {
		if t.DurationSeconds > 0 && t.TargetElapsedSeconds > 0 {
			return nil, fmt.Errorf("recipe %s step %d (%s): %w",
				recipe.ID, i, t.Kind, domain.ErrStepTimerConflict)
		}

		step := domain.ScaledStep{
			Index:        i,
			Kind:         t.Kind,
			IsCumulative: t.IsCumulative,
		}

		var cumulative float64
		if t.HasWater {
			cumulative = scaled.WaterTargets[next]
			next++
			if t.IsCumulative {
				step.WaterGrams = cumulative
			} else {
				step.WaterGrams = cumulative - previous
			}
		}

		switch t.Kind {
		case domain.StepBloom, domain.StepWait:
			step.Duration = time.Duration(t.DurationSeconds) * time.Second
		case domain.StepPour:
			step.TargetElapsed = time.Duration(t.TargetElapsedSeconds) * time.Second
		case domain.StepPreparation, domain.StepAgitate:
			// untimed
		}

		step.Instruction = instructionFor(t, step, scaled)
		p.Steps = append(p.Steps, step)

		if t.HasWater {
			previous = cumulative
		}
	}

	return p, nil
}
