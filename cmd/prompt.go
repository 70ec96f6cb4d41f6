package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/kalpruh/enrol/internal/config"
	"github.com/kalpruh/enrol/internal/log"
	"github.com/kalpruh/enrol/internal/prompt"
	"github.com/kalpruh/enrol/internal/ui/markdown"
	"github.com/kalpruh/enrol/internal/wizard"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Register with line-by-line prompts",
	Long: `Ask the registration questions one at a time instead of opening the
full-screen wizard. Useful over slow links or in terminals without mouse
support.`,
	RunE: runPrompt,
}

func init() {
	rootCmd.AddCommand(promptCmd)
}

func runPrompt(cmd *cobra.Command, _ []string) error {
	defer closeLogs()

	if err := config.ValidateUI(cfg.UI); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	w, store, cleanup, err := newWizard(ctx, "enrol-prompt")
	if err != nil {
		return err
	}
	defer cleanup()

	md, err := markdown.New(80, cfg.UI.MarkdownStyle)
	if err != nil {
		log.Warn(log.CatUI, "Summary rendering disabled", "error", err)
		md = nil
	}

	flow := prompt.NewFlow(w, store.Current(), prompt.SurveyDriver{}, cmd.OutOrStdout(), md)
	status, err := flow.Run(ctx)
	switch {
	case errors.Is(err, prompt.ErrAborted):
		fmt.Fprintln(cmd.OutOrStdout(), "Registration cancelled")
		return nil
	case err != nil:
		return err
	}
	if status.State == wizard.StateSucceeded && status.ID != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Registration id: %s\n", status.ID)
	}
	return nil
}
