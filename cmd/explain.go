package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/reciteking/internal/explain"
	"github.com/abhisek/reciteking/internal/llm"
	"github.com/abhisek/reciteking/internal/questionbank"
)

var explainCmd = &cobra.Command{
	Use:   "explain <question-id>",
	Short: "Ask the AI tutor to explain a question",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bank, err := loadBank(cmd)
		if err != nil {
			return err
		}
		q, ok := bank.Get(args[0])
		if !ok {
			return fmt.Errorf("question %q not found", args[0])
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		provider, cfg, err := llm.NewProviderFromEnv(ctx, s.EventRepo())
		if err != nil {
			return fmt.Errorf("configure LLM provider: %w", err)
		}
		e := explain.New(nil)
		if provider != nil {
			e = explain.New(provider, explain.WithTimeout(cfg.Timeout))
		}

		fmt.Println(q.Prompt)
		for _, l := range questionbank.Labels() {
			fmt.Printf("  %s. %s\n", l, q.Option(l))
		}
		fmt.Println()
		fmt.Println(e.Explain(ctx, q))
		return nil
	},
}
