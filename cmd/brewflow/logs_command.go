package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"brewflow/internal/storage"
)

func newLogsCommand(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "logs",
		Short: "List saved brew logs",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.cfg.EnsureDirectories(); err != nil {
				return err
			}
			store, err := storage.OpenSQLite(app.cfg.DatabasePath(), app.log)
			if err != nil {
				return fmt.Errorf("opening brew log store: %w", err)
			}
			defer store.Close()

			entries, err := store.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing brew logs: %w", err)
			}

			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no brews logged yet")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{
					e.BrewedAt.Local().Format("2006-01-02 15:04"),
					e.RecipeName,
					fmt.Sprintf("%.1f g", e.Dose),
					fmt.Sprintf("%.0f g", e.Yield),
					formatElapsed(e.BrewTime),
					fmt.Sprintf("%d/5", e.Rating),
					e.Tag,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Brewed", "Recipe", "Dose", "Yield", "Time", "Rating", "Tag"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}
}
