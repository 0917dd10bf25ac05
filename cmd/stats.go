package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/reciteking/internal/ledger"
	"github.com/abhisek/reciteking/internal/questionbank"
	"github.com/abhisek/reciteking/internal/screens/history"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show a summary of your quiz history",
	RunE: func(cmd *cobra.Command, args []string) error {
		l, s, err := openLedger(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		records, err := l.History(ctx)
		if err != nil {
			return fmt.Errorf("read history: %w", err)
		}
		mistakes, err := l.Mistakes(ctx)
		if err != nil {
			return fmt.Errorf("read mistakes: %w", err)
		}

		if prefs, err := l.UserPrefs(ctx); err == nil && prefs != nil && prefs.Name != "" {
			fmt.Printf("Learner:        %s\n", prefs.Name)
		}
		fmt.Printf("Sessions:       %d\n", len(records))
		fmt.Printf("Mistake book:   %d\n", len(mistakes))
		if len(records) == 0 {
			return nil
		}

		sum := summarize(records)
		fmt.Printf("Last score:     %d%%\n", records[0].Score)
		fmt.Printf("Best score:     %d%%\n", sum.best)
		fmt.Printf("Average score:  %d%%\n", sum.average)
		fmt.Printf("Answered:       %d (%d correct)\n", sum.answered, sum.correct)

		fmt.Println()
		for _, b := range questionbank.AllBooks() {
			if n := sum.perBook[b]; n > 0 {
				fmt.Printf("%s  %d sessions\n", padWide(history.BookLabel(b), 10), n)
			}
		}
		return nil
	},
}

type historySummary struct {
	best     int
	average  int
	answered int
	correct  int
	perBook  map[questionbank.Book]int
}

func summarize(records []ledger.HistoryRecord) historySummary {
	sum := historySummary{perBook: make(map[questionbank.Book]int)}
	total := 0
	for _, r := range records {
		sum.best = max(sum.best, r.Score)
		sum.answered += r.TotalQuestions
		sum.correct += r.CorrectCount
		sum.perBook[r.Book]++
		total += r.Score
	}
	if len(records) > 0 {
		sum.average = (total + len(records)/2) / len(records)
	}
	return sum
}
