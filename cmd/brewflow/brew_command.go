package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"brewflow/internal/conversation"
	"brewflow/internal/display"
	"brewflow/internal/domain"
	"brewflow/internal/recipe"
	"brewflow/internal/session"
	"brewflow/internal/storage"
	"brewflow/internal/tick"
)

func newBrewCommand(app *appContext) *cobra.Command {
	var dose, yield float64

	cmd := &cobra.Command{
		Use:   "brew <recipe-id>",
		Short: "Run a guided brewing session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := recipe.NewMemorySource(app.log)

			p, err := resolvePlan(cmd.Context(), app, src, args[0], dose, yield)
			if err != nil {
				return err
			}

			sched := tick.New(app.cfg.TickInterval(), app.log)
			runner := session.NewRunner(p, domain.RealClock{}, sched, app.log)
			parser := conversation.NewKeywordParser(app.log)

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			go runner.Run(ctx)

			completed, err := display.New(runner, parser).Run()
			if err != nil {
				return err
			}
			cancel()
			<-runner.Done()

			if !completed {
				fmt.Fprintln(cmd.OutOrStdout(), "brew abandoned, nothing logged")
				return nil
			}

			return captureOutcome(cmd, app, runner)
		},
	}

	cmd.Flags().Float64Var(&dose, "dose", 0, "coffee dose in grams (recomputes yield)")
	cmd.Flags().Float64Var(&yield, "yield", 0, "target yield in grams (recomputes dose)")
	return cmd
}

// captureOutcome prompts for the brew's rating, tag, and note, then hands
// the log request to the persistence collaborator.
func captureOutcome(cmd *cobra.Command, app *appContext, runner *session.Runner) error {
	out := cmd.OutOrStdout()
	reader := bufio.NewReader(os.Stdin)

	rating := promptRating(out, reader)
	fmt.Fprint(out, "tag (optional): ")
	tag, _ := reader.ReadString('\n')
	fmt.Fprint(out, "note (optional): ")
	note, _ := reader.ReadString('\n')

	req := runner.LogRequest(rating, strings.TrimSpace(tag), strings.TrimSpace(note))

	if err := app.cfg.EnsureDirectories(); err != nil {
		return err
	}
	store, err := storage.OpenSQLite(app.cfg.DatabasePath(), app.log)
	if err != nil {
		return fmt.Errorf("opening brew log store: %w", err)
	}
	defer store.Close()

	entry, err := store.Create(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("saving brew log: %w", err)
	}

	fmt.Fprintf(out, "logged %s: %s, rated %d/5, brew time %s\n",
		entry.ID[:8], entry.RecipeName, entry.Rating, formatElapsed(entry.BrewTime))
	return nil
}

func promptRating(out io.Writer, reader *bufio.Reader) int {
	for {
		fmt.Fprint(out, "rating 1-5: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return 3
		}
		rating, convErr := strconv.Atoi(strings.TrimSpace(line))
		if convErr == nil && rating >= 1 && rating <= 5 {
			return rating
		}
		fmt.Fprintln(out, "please enter a number from 1 to 5")
	}
}
