// Package balance turns opening balances and journal movements into ending
// balances under the normal-balance sign convention.
package balance

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/laporan/internal/diagnostics"
	"github.com/cleared-dev/laporan/internal/model"
)

// Resolve returns the ending balance of an account on side.
//
//	Debit:  opening + debit - credit
//	Credit: opening - debit + credit
//
// Any other side is treated as Debit; use a Resolver to choose the fallback.
func Resolve(side model.NormalSide, opening decimal.Decimal, m model.Movement) decimal.Decimal {
	if side == model.SideCredit {
		return opening.Sub(m.Debit).Add(m.Credit)
	}
	return opening.Add(m.Debit).Sub(m.Credit)
}

// Present signs an ending balance for a section that expects the given
// side. A contra account (side differs from expected) is shown negated.
func Present(side, expected model.NormalSide, ending decimal.Decimal) decimal.Decimal {
	if side == expected {
		return ending
	}
	return ending.Neg()
}

// Resolved is one account's balance after applying the journal.
type Resolved struct {
	Account  model.Account
	Side     model.NormalSide // effective side; the fallback when the chart gave none
	Opening  decimal.Decimal
	Movement model.Movement
	Ending   decimal.Decimal
}

// Resolver applies a fallback side to accounts whose normal side is
// unknown and reports each one.
type Resolver struct {
	Fallback model.NormalSide
	Warn     *diagnostics.Collector
}

// Side returns the side used for acct.
func (r Resolver) Side(acct model.Account) model.NormalSide {
	if acct.NormalSide != model.SideUnknown {
		return acct.NormalSide
	}
	if r.Fallback == model.SideCredit {
		return model.SideCredit
	}
	return model.SideDebit
}

// Resolve computes acct's ending balance.
func (r Resolver) Resolve(acct model.Account, opening decimal.Decimal, m model.Movement) Resolved {
	side := r.Side(acct)
	if acct.NormalSide == model.SideUnknown && !acct.Header && r.Warn != nil {
		r.Warn.Addf(diagnostics.KindUnknownNormalSide, "", 0, acct.Code,
			"normal balance side missing or unrecognized; treated as %s", side)
	}
	return Resolved{
		Account:  acct,
		Side:     side,
		Opening:  opening,
		Movement: m,
		Ending:   Resolve(side, opening, m),
	}
}

// ResolveAll resolves every account in order. Missing openings and
// movements count as zero.
func (r Resolver) ResolveAll(accounts []model.Account, opening map[string]decimal.Decimal, movements map[string]model.Movement) []Resolved {
	out := make([]Resolved, 0, len(accounts))
	for _, acct := range accounts {
		out = append(out, r.Resolve(acct, opening[acct.Code], movements[acct.Code]))
	}
	return out
}
