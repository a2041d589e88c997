package main

import (
	"context"
	"fmt"
	"time"

	"brewflow/internal/domain"
	"brewflow/internal/plan"
	"brewflow/internal/scaling"
)

// resolvePlan loads a recipe, applies the user's dose/yield edits, and
// builds the frozen brew plan. A --yield edit wins over --dose (last
// touched field is the one supplied); with neither flag the recipe
// defaults pass through the same scaling path.
func resolvePlan(ctx context.Context, app *appContext, src domain.RecipeSource, recipeID string, dose, yield float64) (*domain.BrewPlan, error) {
	snapshot, err := src.Get(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("recipe %q: %w", recipeID, err)
	}

	method, ok := app.cfg.MethodFor(snapshot.Method)
	if !ok {
		return nil, fmt.Errorf("no configuration for method %q", snapshot.Method)
	}
	// A recipe-specific bloom ratio overrides the method default.
	if snapshot.BloomRatio > 0 {
		method.BloomRatio = snapshot.BloomRatio
	}

	inputs := domain.ScaledInputs{
		Dose:       snapshot.Dose,
		Yield:      snapshot.Yield,
		LastEdited: domain.EditedDose,
	}
	if dose > 0 {
		inputs.Dose = dose
		inputs.LastEdited = domain.EditedDose
	}
	if yield > 0 {
		inputs.Yield = yield
		inputs.LastEdited = domain.EditedYield
	}

	scaled := scaling.Scale(snapshot, inputs, method)

	p, err := plan.Build(snapshot, scaled)
	if err != nil {
		return nil, fmt.Errorf("building plan: %w", err)
	}
	return p, nil
}

// planRows renders a plan's steps as table rows.
func planRows(p *domain.BrewPlan) [][]string {
	rows := make([][]string, 0, p.Len())
	for i := range p.Steps {
		step := p.Step(i)
		water := ""
		if step.WaterGrams > 0 {
			if step.IsCumulative {
				water = fmt.Sprintf("%.0f g total", step.WaterGrams)
			} else {
				water = fmt.Sprintf("%.0f g", step.WaterGrams)
			}
		}
		timing := ""
		switch {
		case step.Duration > 0:
			timing = step.Duration.String()
		case step.TargetElapsed > 0:
			timing = "by " + formatElapsed(step.TargetElapsed)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			step.Kind.String(),
			step.Instruction,
			water,
			timing,
		})
	}
	return rows
}

func formatElapsed(d time.Duration) string {
	total := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
