package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/reciteking/internal/questionbank"
	"github.com/abhisek/reciteking/internal/session"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a quiz straight away, skipping the setup screen",
	Example: `  reciteking play --book WorldHistory --chapters x1,x2 --count 5
  reciteking play --chapters all --time 60`,
	RunE: func(cmd *cobra.Command, args []string) error {
		book, _ := cmd.Flags().GetString("book")
		chapters, _ := cmd.Flags().GetString("chapters")
		count, _ := cmd.Flags().GetInt("count")
		timeLimit, _ := cmd.Flags().GetInt("time")

		b := questionbank.Book(book)
		if !b.Valid() {
			return fmt.Errorf("unknown book %q (want %s or %s)",
				book, questionbank.BookChineseHistory, questionbank.BookWorldHistory)
		}
		if count < 0 {
			return fmt.Errorf("--count must be 0 (all) or positive, got %d", count)
		}
		if timeLimit <= 0 {
			return fmt.Errorf("--time must be positive, got %d", timeLimit)
		}

		bank, err := loadBank(cmd)
		if err != nil {
			return err
		}

		sel := session.Selection{
			Book:          b,
			Chapters:      parseChapters(chapters, bank.ChapterIDs(b)),
			QuestionCount: count,
			TimeLimit:     timeLimit,
		}
		return runApp(cmd, bank, &sel)
	},
}

// parseChapters splits a comma list. Empty or "all" selects every chapter.
func parseChapters(s string, all []string) []string {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return all
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func init() {
	playCmd.Flags().String("book", string(questionbank.BookChineseHistory), "Textbook to practise (ChineseHistory or WorldHistory)")
	playCmd.Flags().String("chapters", "all", "Comma-separated chapter IDs, or \"all\"")
	playCmd.Flags().IntP("count", "n", session.DefaultQuestionCount, "Number of questions (0 = all)")
	playCmd.Flags().IntP("time", "t", session.DefaultTimeLimit, "Seconds per question")
}
