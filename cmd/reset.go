package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete quiz history and/or the mistake book",
	Long: `Delete stored learner data. Without --history or --mistakes both are
removed. The learner profile is kept. Requires --yes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		hist, _ := cmd.Flags().GetBool("history")
		mistakes, _ := cmd.Flags().GetBool("mistakes")
		if !hist && !mistakes {
			hist, mistakes = true, true
		}
		if !yes {
			return errors.New("refusing to delete data without --yes")
		}

		l, s, err := openLedger(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx, out := cmd.Context(), cmd.OutOrStdout()
		if hist {
			if err := l.ClearHistory(ctx); err != nil {
				return fmt.Errorf("clear history: %w", err)
			}
			fmt.Fprintln(out, "History cleared.")
		}
		if mistakes {
			if err := l.ClearMistakes(ctx); err != nil {
				return fmt.Errorf("clear mistakes: %w", err)
			}
			fmt.Fprintln(out, "Mistake book cleared.")
		}
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("history", false, "Delete quiz history")
	resetCmd.Flags().Bool("mistakes", false, "Delete the mistake book")
	resetCmd.Flags().BoolP("yes", "y", false, "Confirm deletion")
}
