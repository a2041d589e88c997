package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"brewflow/internal/recipe"
)

func newScaleCommand(app *appContext) *cobra.Command {
	var dose, yield float64

	cmd := &cobra.Command{
		Use:   "scale <recipe-id>",
		Short: "Preview the scaled plan for a recipe without brewing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := recipe.NewMemorySource(app.log)

			p, err := resolvePlan(cmd.Context(), app, src, args[0], dose, yield)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s  --  %.1f g coffee (%s), %.0f g water (1:%.1f), %.0f C\n",
				p.RecipeName, p.Dose, p.GrindLabel, p.Yield, p.Ratio, p.WaterTempC)
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Kind", "Instruction", "Water", "Timing"},
				planRows(p),
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight},
			))
			for _, w := range p.Warnings {
				fmt.Fprintf(out, "warning: %s\n", w.Message)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&dose, "dose", 0, "coffee dose in grams (recomputes yield)")
	cmd.Flags().Float64Var(&yield, "yield", 0, "target yield in grams (recomputes dose)")
	return cmd
}
