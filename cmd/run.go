package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/reciteking/internal/app"
	"github.com/abhisek/reciteking/internal/explain"
	"github.com/abhisek/reciteking/internal/ledger"
	"github.com/abhisek/reciteking/internal/llm"
	"github.com/abhisek/reciteking/internal/questionbank"
	"github.com/abhisek/reciteking/internal/screen"
	"github.com/abhisek/reciteking/internal/selfupdate"
	"github.com/abhisek/reciteking/internal/session"
)

const updateCheckTimeout = 1500 * time.Millisecond

// runApp opens the store, builds dependencies, and launches the TUI over
// bank. A non-nil sel skips the menus and starts a quiz straight away.
func runApp(cmd *cobra.Command, bank *questionbank.Bank, sel *session.Selection) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	svc := screen.Services{
		Bank:    bank,
		Builder: session.NewBuilder(bank),
		Ledger:  ledger.New(st.Documents()),
	}

	provider, cfg, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
	switch {
	case err != nil:
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "AI explanations will be unavailable.")
	case provider == nil:
		// No key set; the home screen shows how to enable the tutor.
	default:
		svc.Explainer = explain.New(provider, explain.WithTimeout(cfg.Timeout))
	}
	if svc.Explainer == nil {
		svc.Explainer = explain.New(nil)
	}

	opts := app.Options{
		Services:      svc,
		LatestVersion: latestVersion(ctx),
	}

	if sel != nil {
		questions, err := svc.Builder.Build(*sel)
		if err != nil {
			return err
		}
		if len(questions) == 0 {
			return fmt.Errorf("no questions match book %s chapters %v", sel.Book, sel.Chapters)
		}
		opts.Quiz = &app.QuizStart{Questions: questions, TimeLimit: sel.TimeLimit}
		opts.SkipWelcome = true
	}

	return app.Run(opts)
}

// latestVersion returns the newest release tag when it is newer than this
// build, or "" when up to date, offline or a development build.
func latestVersion(ctx context.Context) string {
	if os.Getenv("RECITEKING_NO_UPDATE_CHECK") != "" {
		return ""
	}
	ctx, cancel := context.WithTimeout(ctx, updateCheckTimeout)
	defer cancel()

	res, err := selfupdate.NewChecker(selfupdate.WithTimeout(updateCheckTimeout)).
		Check(ctx, &selfupdate.CheckInput{Version: version})
	if err != nil || !res.UpdateAvailable {
		return ""
	}
	return res.LatestVersion
}
