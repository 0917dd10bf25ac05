package cmd

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/abhisek/reciteking/internal/questionbank"
)

var mistakesCmd = &cobra.Command{
	Use:   "mistakes",
	Short: "Inspect and manage the mistake book",
}

var mistakesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List questions in the mistake book",
	RunE: func(cmd *cobra.Command, args []string) error {
		l, s, err := openLedger(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		qs, err := l.Mistakes(cmd.Context())
		if err != nil {
			return fmt.Errorf("read mistakes: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(qs) == 0 {
			fmt.Fprintln(out, "The mistake book is empty.")
			return nil
		}

		for i, q := range qs {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "[%s]\n%s\n", q.ID, q.Prompt)
			fmt.Fprintf(out, "  Answer: %s. %s\n", q.Answer, q.Option(q.Answer))
		}
		return nil
	},
}

var mistakesRemoveCmd = &cobra.Command{
	Use:   "remove <question-id>",
	Short: "Remove a mastered question from the mistake book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, s, err := openLedger(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		id, out := args[0], cmd.OutOrStdout()
		qs, err := l.Mistakes(cmd.Context())
		if err != nil {
			return fmt.Errorf("read mistakes: %w", err)
		}
		if !slices.ContainsFunc(qs, func(q questionbank.Question) bool { return q.ID == id }) {
			fmt.Fprintf(out, "%s is not in the mistake book.\n", id)
			return nil
		}

		if err := l.RemoveMistake(cmd.Context(), id); err != nil {
			return fmt.Errorf("remove mistake: %w", err)
		}
		fmt.Fprintln(out, "Removed", id)
		return nil
	},
}

var mistakesClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the mistake book",
	RunE: func(cmd *cobra.Command, args []string) error {
		l, s, err := openLedger(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := l.ClearMistakes(cmd.Context()); err != nil {
			return fmt.Errorf("clear mistakes: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Mistake book cleared.")
		return nil
	},
}

func init() {
	mistakesCmd.AddCommand(mistakesListCmd)
	mistakesCmd.AddCommand(mistakesRemoveCmd)
	mistakesCmd.AddCommand(mistakesClearCmd)
}
