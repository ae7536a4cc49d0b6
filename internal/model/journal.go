package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalLine is a single row of the general-ledger journal.
// AccountCode is the raw cell value and may list several codes.
type JournalLine struct {
	Row         int // 1-based source row, for diagnostics
	AccountCode string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Date        time.Time // zero when missing or unparsable
	HasDate     bool
}

// Movement is the period's debit and credit totals for one account.
type Movement struct {
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

// Add returns m with the line amounts added.
func (m Movement) Add(debit, credit decimal.Decimal) Movement {
	return Movement{Debit: m.Debit.Add(debit), Credit: m.Credit.Add(credit)}
}
