package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotFound = errors.New("not found")

	// ErrNoSteps is fatal to session start: a plan cannot be built from
	// a recipe with no step templates.
	ErrNoSteps = errors.New("recipe has no steps")

	// ErrWaterTargetMismatch means the recipe's water-bearing steps do
	// not line up with the scaling rule's resolved targets.
	ErrWaterTargetMismatch = errors.New("water targets do not align with steps")

	// ErrStepTimerConflict means a step template sets both a wait
	// duration and a milestone time. The two are mutually exclusive.
	ErrStepTimerConflict = errors.New("step sets both duration and milestone")

	ErrAlreadyExists = errors.New("already exists")
)
