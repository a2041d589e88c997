package scaling

import "math"

// RoundTo rounds v to the nearest multiple of step, breaking ties away
// from zero. Documented tie-break: 136.5 -> 137, -136.5 -> -137. Dose uses
// step 0.1, yield and water amounts use step 1.
func RoundTo(v, step float64) float64 {
	if step <= 0 {
		return v
	}
	scaled := v / step
	rounded := math.Copysign(math.Floor(math.Abs(scaled)+0.5), scaled)
	return rounded * step
}

// roundDose rounds a coffee dose to the nearest 0.1 gram. The extra
// division trims float residue like 20.700000000000003.
func roundDose(v float64) float64 {
	return RoundTo(v*10, 1) / 10
}

// roundWater rounds a water amount to the nearest gram.
func roundWater(v float64) float64 {
	return RoundTo(v, 1)
}
