package config

import "github.com/cleared-dev/laporan/internal/acctcode"

// Default returns a Config with the Indonesian report layout used by the
// upload form: Laporan Laba Rugi and Laporan Posisi Keuangan.
func Default(companyName string) *Config {
	return &Config{
		Company: CompanyConfig{Name: companyName},
		Sections: []SectionConfig{
			{Key: "revenue", Label: "Pendapatan", Report: "income_statement", Terms: []string{"pendapatan", "revenue"}},
			{Key: "operating_expense", Label: "Beban Umum Administrasi", Report: "income_statement", Terms: []string{"beban umum", "beban usaha", "beban operasional", "operating expense"}},
			{Key: "other_income", Label: "Pendapatan Luar Usaha", Report: "income_statement", Terms: []string{"pendapatan luar", "pendapatan lain", "other income"}},
			{Key: "other_expense", Label: "Beban Luar Usaha", Report: "income_statement", Terms: []string{"beban luar", "beban lain", "other expense"}},
			{Key: "assets", Label: "Aset", Report: "balance_sheet", Terms: []string{"aset", "asset", "aktiva"}},
			{Key: "liabilities", Label: "Kewajiban", Report: "balance_sheet", Terms: []string{"kewajiban", "liabilit", "utang"}},
			{Key: "equity", Label: "Ekuitas", Report: "balance_sheet", Terms: []string{"ekuitas", "equity", "modal"}},
		},
		Earnings: EarningsConfig{
			Code:  "3004",
			Label: "Laba (Rugi) Berjalan",
			Keywords: []string{
				"laba (rugi) berjalan", "laba berjalan", "laba tahun berjalan", "laba periode berjalan",
				"current earnings", "current year earnings", "current period profit", "profit for the period",
			},
			Exclude: []string{"ditahan", "retained"},
		},
		Columns: ColumnsConfig{
			Chart: map[string][]string{
				"account_code":        {"kode_akun", "kode", "no_akun", "nomor_akun", "code", "account"},
				"account_name":        {"nama_akun", "nama", "name", "account_title"},
				"normal_balance_side": {"posisi_normal_akun", "posisi_normal", "saldo_normal", "normal_balance", "normal_side"},
				"report_assignment":   {"laporan", "report", "statement"},
				"sub_classification":  {"sub_tipe_laporan", "sub_tipe", "kategori", "category"},
				"account_kind":        {"tipe_akun", "jenis_akun", "kind", "type"},
			},
			Opening: map[string][]string{
				"account_code":    {"kode_akun", "kode", "no_akun", "code", "account"},
				"opening_balance": {"saldo_awal", "saldo", "opening", "balance"},
			},
			Journal: map[string][]string{
				"account_code":  {"kode_akun", "kode", "no_akun", "code", "account"},
				"debit_amount":  {"debit", "debet", "dr"},
				"credit_amount": {"kredit", "credit", "cr"},
				"posting_date":  {"tanggal", "tgl", "date"},
			},
		},
		Policy: PolicyConfig{UnknownNormalSide: "debit", CodeSeparators: acctcode.DefaultSeparators},
		Format: FormatConfig{Locale: "id", Currency: "Rp"},
	}
}
