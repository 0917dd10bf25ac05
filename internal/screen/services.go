package screen

import (
	"github.com/abhisek/reciteking/internal/explain"
	"github.com/abhisek/reciteking/internal/ledger"
	"github.com/abhisek/reciteking/internal/questionbank"
	"github.com/abhisek/reciteking/internal/session"
)

// Services bundles the dependencies screens share.
type Services struct {
	Bank      *questionbank.Bank
	Builder   *session.Builder
	Ledger    *ledger.Ledger
	Explainer *explain.Explainer
}
