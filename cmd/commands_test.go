package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/reciteking/internal/ledger"
	"github.com/abhisek/reciteking/internal/questionbank"
	"github.com/abhisek/reciteking/internal/store"
)

// execute runs rootCmd with args and returns what it printed. Flags are
// reset afterwards since the command tree is package state.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// seedMistakes writes qs to the mistake book of a fresh database.
func seedMistakes(t *testing.T, qs ...questionbank.Question) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reciteking.db")
	s, err := store.Open(path)
	require.NoError(t, err)
	defer s.Close()
	require.NoError(t, ledger.New(s.Documents()).RecordMistakes(context.Background(), qs))
	return path
}

func mistakesIn(t *testing.T, path string) []questionbank.Question {
	t.Helper()
	s, err := store.Open(path)
	require.NoError(t, err)
	defer s.Close()
	qs, err := ledger.New(s.Documents()).Mistakes(context.Background())
	require.NoError(t, err)
	return qs
}

func mistake(id string) questionbank.Question {
	return questionbank.Question{
		ID:      id,
		Prompt:  "辛亥革命爆发于哪一年？",
		Options: [4]string{"1898年", "1911年", "1919年", "1921年"},
		Answer:  questionbank.LabelB,
		Book:    questionbank.BookChineseHistory,
		Chapter: "s8",
	}
}

func TestResetRequiresYes(t *testing.T) {
	path := seedMistakes(t, mistake("ChineseHistory-s8-2"))

	_, err := execute(t, "--db", path, "reset")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")
	assert.Len(t, mistakesIn(t, path), 1, "refused reset must not touch data")
}

func TestResetMistakesOnly(t *testing.T) {
	path := seedMistakes(t, mistake("ChineseHistory-s8-2"))

	out, err := execute(t, "--db", path, "reset", "--mistakes", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Mistake book cleared.")
	assert.NotContains(t, out, "History cleared.")
	assert.Empty(t, mistakesIn(t, path))
}

func TestMistakesRemove(t *testing.T) {
	path := seedMistakes(t, mistake("ChineseHistory-s8-2"), mistake("ChineseHistory-s8-3"))

	out, err := execute(t, "--db", path, "mistakes", "remove", "no-such-question")
	require.NoError(t, err)
	assert.Contains(t, out, "not in the mistake book")
	assert.Len(t, mistakesIn(t, path), 2)

	out, err = execute(t, "--db", path, "mistakes", "remove", "ChineseHistory-s8-2")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed ChineseHistory-s8-2")
	left := mistakesIn(t, path)
	require.Len(t, left, 1)
	assert.Equal(t, "ChineseHistory-s8-3", left[0].ID)
}

func TestMistakesList(t *testing.T) {
	path := seedMistakes(t, mistake("ChineseHistory-s8-2"))

	out, err := execute(t, "--db", path, "mistakes", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "[ChineseHistory-s8-2]")
	assert.Contains(t, out, "Answer: B. 1911年")

	empty := filepath.Join(t.TempDir(), "empty.db")
	out, err = execute(t, "--db", empty, "mistakes", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "The mistake book is empty.")
}

func TestBadBankStopsBeforeStartup(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.json")

	for _, args := range [][]string{
		{"--bank", missing},
		{"play", "--bank", missing, "--chapters", "s1"},
	} {
		dbPath := filepath.Join(t.TempDir(), "reciteking.db")
		_, err := execute(t, append([]string{"--db", dbPath}, args...)...)

		var cfgErr *questionbank.ConfigurationError
		require.ErrorAs(t, err, &cfgErr, "args %v", args)
		assert.Equal(t, missing, cfgErr.Source)
		assert.NoFileExists(t, dbPath, "the store is opened only after the bank loads")
	}
}
