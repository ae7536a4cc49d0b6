package model

import "strings"

// NormalSide is the side on which an account's balance increases.
type NormalSide string

const (
	SideDebit   NormalSide = "debit"
	SideCredit  NormalSide = "credit"
	SideUnknown NormalSide = ""
)

// ReportKind says which statement an account is reported on.
type ReportKind string

const (
	ReportIncomeStatement ReportKind = "income_statement"
	ReportBalanceSheet    ReportKind = "balance_sheet"
	ReportUnknown         ReportKind = ""
)

// Account represents a row in the chart of accounts.
type Account struct {
	Code       string
	Name       string
	NormalSide NormalSide
	Report     ReportKind
	SubType    string // free-text sub-classification, e.g. "Beban Umum Administrasi"
	Header     bool   // display-only grouping row
}

// ParseNormalSide maps the spellings found in real charts onto a NormalSide.
// Unrecognized values return SideUnknown.
func ParseNormalSide(s string) NormalSide {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debit", "debet", "d", "dr":
		return SideDebit
	case "credit", "kredit", "k", "c", "cr":
		return SideCredit
	default:
		return SideUnknown
	}
}

// ParseReportKind matches a report label like "Laporan Laba Rugi" or "Neraca".
func ParseReportKind(s string) ReportKind {
	l := strings.ToLower(strings.TrimSpace(s))
	switch {
	case l == "":
		return ReportUnknown
	case strings.Contains(l, "laba rugi"), strings.Contains(l, "income"),
		strings.Contains(l, "profit"), strings.Contains(l, "loss"):
		return ReportIncomeStatement
	case strings.Contains(l, "posisi keuangan"), strings.Contains(l, "neraca"),
		strings.Contains(l, "balance"):
		return ReportBalanceSheet
	default:
		return ReportUnknown
	}
}

// IsHeaderKind reports whether an account_kind cell marks a display-only row.
func IsHeaderKind(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "header", "h", "induk", "judul", "group":
		return true
	}
	return false
}
