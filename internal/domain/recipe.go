// Package domain defines the core types and interfaces for the brewing
// assistant. All other packages depend on domain; domain depends on nothing.
package domain

// Method identifies a brew method. Scaling ranges and the step split rule
// are keyed by method, never hardcoded.
type Method string

const (
	MethodV60       Method = "v60"
	MethodAeroPress Method = "aeropress"
)

// RecipeSnapshot is the read-only recipe a session is built from. It is
// supplied by a RecipeSource and never mutated by the core.
type RecipeSnapshot struct {
	ID          string
	Name        string
	Description string
	Method      Method
	Dose        float64 // grams of coffee
	Yield       float64 // grams of brewed water, total
	WaterTempC  float64
	GrindLabel  string // "medium-fine", "coarse", ...
	BloomRatio  float64
	Steps       []StepTemplate
	Tags        []string
}

// Ratio returns the recipe's default water-to-coffee ratio.
func (r *RecipeSnapshot) Ratio() float64 {
	if r.Dose == 0 {
		return 0
	}
	return r.Yield / r.Dose
}

// RecipeSummary is a lightweight view of a recipe for listing.
type RecipeSummary struct {
	ID          string
	Name        string
	Method      Method
	Description string
	Tags        []string
}

// StepKind is the closed set of step categories. Every switch over it in
// the plan builder and the session machine is exhaustive, so adding a kind
// breaks compilation everywhere it matters.
type StepKind int

const (
	StepPreparation StepKind = iota
	StepBloom
	StepPour
	StepWait
	StepAgitate
)

// String returns a human-readable step kind.
func (k StepKind) String() string {
	switch k {
	case StepPreparation:
		return "preparation"
	case StepBloom:
		return "bloom"
	case StepPour:
		return "pour"
	case StepWait:
		return "wait"
	case StepAgitate:
		return "agitate"
	default:
		return "unknown"
	}
}

// StepTemplate describes one step of a recipe before scaling. Exactly one
// of DurationSeconds and TargetElapsedSeconds may be set: bloom and wait
// steps carry a counted-down duration, pour steps carry a milestone on the
// session clock. The two are distinct fields on purpose and must never be
// collapsed into one.
type StepTemplate struct {
	Kind                 StepKind
	Label                string // short action label, e.g. "Bloom", "First pour"
	Note                 string // extra freeform hint appended to the instruction
	DurationSeconds      int    // bloom, wait only
	TargetElapsedSeconds int    // pour only
	HasWater             bool   // step consumes one resolved water target
	IsCumulative         bool   // water target is a running total, not an increment
}
