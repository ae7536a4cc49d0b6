package accounts

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/cleared-dev/laporan/internal/acctcode"
	"github.com/cleared-dev/laporan/internal/diagnostics"
	"github.com/cleared-dev/laporan/internal/model"
	"github.com/cleared-dev/laporan/internal/tabular"
)

// Canonical chart-of-accounts fields.
const (
	FieldCode       = "account_code"
	FieldName       = "account_name"
	FieldNormalSide = "normal_balance_side"
	FieldReport     = "report_assignment"
	FieldSubType    = "sub_classification"
	FieldKind       = "account_kind"
)

// Fields returns the chart columns with the given header synonyms.
// Only the account code is required.
func Fields(synonyms map[string][]string) []tabular.Field {
	return []tabular.Field{
		{Name: FieldCode, Synonyms: synonyms[FieldCode], Required: true},
		{Name: FieldName, Synonyms: synonyms[FieldName]},
		{Name: FieldNormalSide, Synonyms: synonyms[FieldNormalSide]},
		{Name: FieldReport, Synonyms: synonyms[FieldReport]},
		{Name: FieldSubType, Synonyms: synonyms[FieldSubType]},
		{Name: FieldKind, Synonyms: synonyms[FieldKind]},
	}
}

// ReadAccounts converts a chart-of-accounts table. Rows without a code are
// skipped; a repeated code keeps the first row and records a warning. A code
// that still holds one of the journal's list separators can never receive
// postings, so it is reported as code_separator.
func ReadAccounts(t *tabular.Table, synonyms map[string][]string, codes acctcode.Codec, warn *diagnostics.Collector) ([]model.Account, error) {
	cols, err := tabular.Resolve(t, Fields(synonyms))
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(t.Rows))
	var accounts []model.Account
	for i, row := range t.Rows {
		acct := UnmarshalAccount(cols, row, codes)
		if acct.Code == "" {
			continue
		}
		if seen[acct.Code] {
			warn.Addf(diagnostics.KindDuplicateAccount, t.Name, t.RowNumber(i), acct.Code, "account code listed more than once; first row kept")
			continue
		}
		if codes.HasSeparator(acct.Code) {
			warn.Addf(diagnostics.KindCodeSeparator, t.Name, t.RowNumber(i), acct.Code,
				"account code contains a list separator; journal cells naming it are split")
		}
		seen[acct.Code] = true
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

// UnmarshalAccount converts a table row to an Account.
func UnmarshalAccount(cols tabular.Columns, row []string, codes acctcode.Codec) model.Account {
	return model.Account{
		Code:       codes.Normalize(cols.Cell(row, FieldCode)),
		Name:       cols.Cell(row, FieldName),
		NormalSide: model.ParseNormalSide(cols.Cell(row, FieldNormalSide)),
		Report:     model.ParseReportKind(cols.Cell(row, FieldReport)),
		SubType:    cols.Cell(row, FieldSubType),
		Header:     model.IsHeaderKind(cols.Cell(row, FieldKind)),
	}
}

// templateHeader matches the column names of the upload form's COA.xlsx.
var templateHeader = []string{"kode_akun", "nama_akun", "posisi_normal_akun", "laporan", "sub_tipe_laporan", "tipe_akun"}

// WriteAccounts writes a chart of accounts as CSV using the Indonesian
// column names.
func WriteAccounts(w io.Writer, accounts []model.Account) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(templateHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, acct := range accounts {
		if err := cw.Write(MarshalAccount(acct)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalAccount converts an Account to a template row.
func MarshalAccount(acct model.Account) []string {
	kind := "detail"
	if acct.Header {
		kind = "header"
	}
	return []string{
		acct.Code,
		acct.Name,
		sideLabel(acct.NormalSide),
		reportLabel(acct.Report),
		acct.SubType,
		kind,
	}
}

func sideLabel(s model.NormalSide) string {
	switch s {
	case model.SideDebit:
		return "Debit"
	case model.SideCredit:
		return "Kredit"
	}
	return ""
}

func reportLabel(k model.ReportKind) string {
	switch k {
	case model.ReportIncomeStatement:
		return "Laporan Laba Rugi"
	case model.ReportBalanceSheet:
		return "Laporan Posisi Keuangan"
	}
	return ""
}
