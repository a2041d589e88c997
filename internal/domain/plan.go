package domain

import "time"

// ScaledStep is one fully resolved step of a brew plan: regenerated
// instruction text, resolved water target, and either a countdown duration
// or a milestone on the session clock (never both).
type ScaledStep struct {
	Index         int
	Kind          StepKind
	Instruction   string
	WaterGrams    float64       // 0 if the step pours no water
	IsCumulative  bool
	Duration      time.Duration // bloom, wait only
	TargetElapsed time.Duration // pour only
}

// BrewPlan is the immutable, ordered step sequence a session runs against.
// Built once at session start; restart reuses it without rebuilding.
type BrewPlan struct {
	RecipeID   string
	RecipeName string
	Method     Method
	Dose       float64
	Yield      float64
	Ratio      float64
	WaterTempC float64
	GrindLabel string
	Steps      []ScaledStep
	TotalWater float64
	Warnings   []Warning
}

// Len returns the number of steps in the plan.
func (p *BrewPlan) Len() int { return len(p.Steps) }

// Step returns the step at index i. The caller guarantees 0 <= i < Len().
func (p *BrewPlan) Step(i int) *ScaledStep { return &p.Steps[i] }
