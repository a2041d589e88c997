// Package scaling derives per-step quantities from a recipe's defaults and
// the user's edits. Scale is pure: no state, no I/O, identical inputs give
// identical outputs.
package scaling

import (
	"fmt"

	"brewflow/internal/config"
	"brewflow/internal/domain"
)

// Scale applies last-edited-wins scaling to the recipe defaults and
// resolves the method's cumulative water targets.
//
// Whichever of dose/yield the user touched last is held fixed and the
// other recomputed from the recipe's default ratio. The dose rounds to
// 0.1 g, yield and all water amounts to 1 g, ties away from zero.
//
// The split rule: bloom = bloomRatio x dose, the remainder divided evenly
// across the method's pours, each rounded independently, and the final
// cumulative target forced to equal the yield exactly so rounding residue
// never leaks into the finished cup.
func Scale(defaults *domain.RecipeSnapshot, in domain.ScaledInputs, method config.MethodConfig) domain.ScaledResult {
	ratio := defaults.Ratio()

	var dose, yield float64
	switch in.LastEdited {
	case domain.EditedYield:
		yield = in.Yield
		if ratio > 0 {
			dose = yield / ratio
		}
	default: // EditedDose
		dose = in.Dose
		yield = dose * ratio
	}

	dose = roundDose(dose)
	yield = roundWater(yield)

	tempC := in.WaterTempC
	if tempC == 0 {
		tempC = defaults.WaterTempC
	}
	grind := in.GrindLabel
	if grind == "" {
		grind = defaults.GrindLabel
	}

	res := domain.ScaledResult{
		Dose:       dose,
		Yield:      yield,
		WaterTempC: tempC,
		GrindLabel: grind,
	}
	if dose > 0 {
		res.Ratio = yield / dose
	}

	res.BloomWater, res.WaterTargets, res.Warnings = splitWater(dose, yield, method)
	res.Warnings = append(res.Warnings, rangeWarnings(res, method)...)
	return res
}

// splitWater resolves the cumulative water targets: bloom first, then the
// method's pours. Unless the bloom already consumes the whole yield, the
// final target is forced to the yield exactly, absorbing all rounding
// remainders into the last pour.
func splitWater(dose, yield float64, method config.MethodConfig) (float64, []float64, []domain.Warning) {
	var warnings []domain.Warning

	bloom := roundWater(method.BloomRatio * dose)
	remaining := yield - bloom
	if remaining < 0 {
		remaining = 0
	}
	if bloom >= yield {
		warnings = append(warnings, domain.Warning{
			Code: domain.WarnBloomExceedsYield,
			Message: fmt.Sprintf("bloom water (%.0f g) meets or exceeds total yield (%.0f g); pours reduced to zero",
				bloom, yield),
		})
	}

	pours := method.PourCount
	if pours < 1 {
		pours = 1
	}

	targets := make([]float64, 0, pours+1)
	targets = append(targets, bloom)

	share := roundWater(remaining / float64(pours))
	cumulative := bloom
	for i := 0; i < pours; i++ {
		if i == pours-1 {
			// Final pour lands on the yield exactly. In the degenerate
			// bloom >= yield case the running total never decreases.
			if yield > cumulative {
				cumulative = yield
			}
		} else {
			cumulative += share
		}
		targets = append(targets, cumulative)
	}

	return bloom, targets, warnings
}

// rangeWarnings checks the scaled values against the method's advisory
// bands. Warnings never block a brew.
func rangeWarnings(res domain.ScaledResult, method config.MethodConfig) []domain.Warning {
	var out []domain.Warning
	if !method.Dose.Contains(res.Dose) {
		out = append(out, domain.Warning{
			Code: domain.WarnDoseOutOfRange,
			Message: fmt.Sprintf("dose %.1f g outside recommended %.0f-%.0f g",
				res.Dose, method.Dose.Min, method.Dose.Max),
		})
	}
	if !method.Yield.Contains(res.Yield) {
		out = append(out, domain.Warning{
			Code: domain.WarnYieldOutOfRange,
			Message: fmt.Sprintf("yield %.0f g outside recommended %.0f-%.0f g",
				res.Yield, method.Yield.Min, method.Yield.Max),
		})
	}
	if !method.Ratio.Contains(res.Ratio) {
		out = append(out, domain.Warning{
			Code: domain.WarnRatioOutOfRange,
			Message: fmt.Sprintf("ratio 1:%.1f outside recommended 1:%.0f-1:%.0f",
				res.Ratio, method.Ratio.Min, method.Ratio.Max),
		})
	}
	if !method.TempC.Contains(res.WaterTempC) {
		out = append(out, domain.Warning{
			Code: domain.WarnTempOutOfRange,
			Message: fmt.Sprintf("water temperature %.0f C outside recommended %.0f-%.0f C",
				res.WaterTempC, method.TempC.Min, method.TempC.Max),
		})
	}
	return out
}
