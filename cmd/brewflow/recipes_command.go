package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"brewflow/internal/domain"
	"brewflow/internal/recipe"
)

func newRecipesCommand(app *appContext) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "recipes",
		Short: "List available brew recipes",
		RunE: func(cmd *cobra.Command, args []string) error {
			src := recipe.NewMemorySource(app.log)

			var (
				summaries []domain.RecipeSummary
				err       error
			)
			if query != "" {
				summaries, err = src.Search(cmd.Context(), query)
			} else {
				summaries, err = src.List(cmd.Context())
			}
			if err != nil {
				return fmt.Errorf("listing recipes: %w", err)
			}

			rows := make([][]string, 0, len(summaries))
			for _, s := range summaries {
				rows = append(rows, []string{s.ID, s.Name, string(s.Method), s.Description})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "Name", "Method", "Description"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&query, "search", "", "filter recipes by name, description, or tag")
	return cmd
}
