package domain

// EditedField says which of the two user-editable quantities was touched
// last. Last-edited-wins: the other one is recomputed from the recipe's
// default ratio.
type EditedField int

const (
	EditedDose EditedField = iota
	EditedYield
)

// String returns a human-readable edited-field name.
func (f EditedField) String() string {
	switch f {
	case EditedDose:
		return "dose"
	case EditedYield:
		return "yield"
	default:
		return "unknown"
	}
}

// ScaledInputs carries the user's edits to a recipe before a session
// starts. Once a plan is built the inputs are frozen.
type ScaledInputs struct {
	Dose       float64
	Yield      float64
	WaterTempC float64
	GrindLabel string
	LastEdited EditedField
}

// WarningCode classifies an advisory scaling warning.
type WarningCode string

const (
	WarnDoseOutOfRange    WarningCode = "dose_out_of_range"
	WarnYieldOutOfRange   WarningCode = "yield_out_of_range"
	WarnRatioOutOfRange   WarningCode = "ratio_out_of_range"
	WarnTempOutOfRange    WarningCode = "temp_out_of_range"
	WarnBloomExceedsYield WarningCode = "bloom_exceeds_yield"
)

// Warning is advisory only. Scaling never fails; a degenerate input still
// produces a usable result plus warnings.
type Warning struct {
	Code    WarningCode
	Message string
}

// ScaledResult is the output of the scaling engine: final rounded dose and
// yield, the effective ratio, and the resolved cumulative water targets in
// step order (one per water-bearing step). The largest target always equals
// Yield exactly.
type ScaledResult struct {
	Dose         float64
	Yield        float64
	Ratio        float64
	BloomWater   float64
	WaterTempC   float64
	GrindLabel   string
	WaterTargets []float64
	Warnings     []Warning
}
