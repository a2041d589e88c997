package plan

import (
	"fmt"
	"strings"
	"time"

	"brewflow/internal/domain"
)

// instructionFor renders the step instruction from the action verb and the
// resolved quantities. Freeform recipe text is never carried over verbatim
// with numbers in it; only the template's note survives, appended as-is.
func instructionFor(t domain.StepTemplate, step domain.ScaledStep, scaled domain.ScaledResult) string {
	var b strings.Builder

	switch t.Kind {
	case domain.StepPreparation:
		b.WriteString(labelOr(t, "Prepare the brewer"))
		fmt.Fprintf(&b, ". Grind %.1f g of coffee (%s)", scaled.Dose, scaled.GrindLabel)
		if scaled.WaterTempC > 0 {
			fmt.Fprintf(&b, ", water at %.0f C", scaled.WaterTempC)
		}
		b.WriteString(".")
	case domain.StepBloom:
		fmt.Fprintf(&b, "Pour %.0f g of water to bloom", step.WaterGrams)
		if step.Duration > 0 {
			fmt.Fprintf(&b, ", then wait %s", formatDuration(step.Duration))
		}
		b.WriteString(".")
	case domain.StepPour:
		if step.IsCumulative {
			fmt.Fprintf(&b, "Pour up to %.0f g total", step.WaterGrams)
		} else {
			fmt.Fprintf(&b, "Pour %.0f g of water", step.WaterGrams)
		}
		if step.TargetElapsed > 0 {
			fmt.Fprintf(&b, " by %s on the clock", formatDuration(step.TargetElapsed))
		}
		b.WriteString(".")
	case domain.StepWait:
		b.WriteString("Wait")
		if step.Duration > 0 {
			fmt.Fprintf(&b, " %s", formatDuration(step.Duration))
		}
		if t.Label != "" {
			fmt.Fprintf(&b, " for the %s", strings.ToLower(t.Label))
		}
		b.WriteString(".")
	case domain.StepAgitate:
		b.WriteString(labelOr(t, "Give the brewer a gentle swirl"))
		b.WriteString(".")
	}

	if t.Note != "" {
		b.WriteString(" ")
		b.WriteString(t.Note)
	}
	return b.String()
}

func labelOr(t domain.StepTemplate, fallback string) string {
	if t.Label != "" {
		return t.Label
	}
	return fallback
}

// formatDuration renders a duration as m:ss, or plain seconds under a
// minute ("45s", "1:30").
func formatDuration(d time.Duration) string {
	total := int(d.Round(time.Second).Seconds())
	if total < 60 {
		return fmt.Sprintf("%ds", total)
	}
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
