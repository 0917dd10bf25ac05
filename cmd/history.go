package cmd

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/reciteking/internal/screens/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past quiz sessions, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		l, s, err := openLedger(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		records, err := l.History(cmd.Context())
		if err != nil {
			return fmt.Errorf("read history: %w", err)
		}
		if len(records) == 0 {
			fmt.Println("No sessions recorded yet.")
			return nil
		}
		if limit > 0 && limit < len(records) {
			records = records[:limit]
		}

		fmt.Printf("%-16s  %-10s  %6s  %8s  %5s\n", "Time", "Book", "Score", "Correct", "Limit")
		fmt.Println(strings.Repeat("─", 54))
		for _, r := range records {
			fmt.Printf("%-16s  %s  %5d%%  %8s  %4ds\n",
				r.Timestamp.Local().Format("2006-01-02 15:04"),
				padWide(history.BookLabel(r.Book), 10),
				r.Score,
				fmt.Sprintf("%d/%d", r.CorrectCount, r.TotalQuestions),
				r.TimeLimit,
			)
		}
		return nil
	},
}

// padWide pads s to n terminal cells; CJK runes are two cells wide.
func padWide(s string, n int) string {
	if w := lipgloss.Width(s); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 0, "Number of sessions to show (0 = all)")
}
