package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/reciteking/internal/ledger"
	"github.com/abhisek/reciteking/internal/questionbank"
	"github.com/abhisek/reciteking/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "reciteking",
	Short: "High-school history recitation quiz",
	Long: `Recite King (历史背书王): a terminal quiz for memorising high-school history.

Pick a textbook and chapters, answer timed multiple-choice questions, and
revisit everything you got wrong in the mistake book. Set GEMINI_API_KEY
(or OPENAI_API_KEY, ANTHROPIC_API_KEY, OPENROUTER_API_KEY) to enable the
AI tutor's explanations.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		bank, err := loadBank(cmd)
		if err != nil {
			return err
		}
		return runApp(cmd, bank, nil)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides RECITEKING_DB env var)")
	rootCmd.PersistentFlags().String("bank", "", "Path to a question bank JSON file (overrides RECITEKING_BANK env var)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(mistakesCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then RECITEKING_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// openLedger opens the store and wraps its document table in a Ledger.
// The caller closes the returned store.
func openLedger(cmd *cobra.Command) (*ledger.Ledger, *store.Store, error) {
	s, err := openStore(cmd)
	if err != nil {
		return nil, nil, err
	}
	return ledger.New(s.Documents()), s, nil
}

// loadBank loads the --bank file, then RECITEKING_BANK, then the built-in
// bank. A bad bank is a *questionbank.ConfigurationError and stops the program.
func loadBank(cmd *cobra.Command) (*questionbank.Bank, error) {
	p, _ := cmd.Flags().GetString("bank")
	if p == "" {
		p = os.Getenv("RECITEKING_BANK")
	}
	if p != "" {
		return questionbank.LoadFile(p)
	}
	return questionbank.LoadEmbedded()
}
