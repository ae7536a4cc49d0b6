package accounts

import "github.com/cleared-dev/laporan/internal/model"

// DefaultChart returns a small chart of accounts for a trading company,
// used by `laporan init` to seed the input templates.
func DefaultChart() []model.Account {
	const (
		is = model.ReportIncomeStatement
		bs = model.ReportBalanceSheet
		d  = model.SideDebit
		c  = model.SideCredit
	)
	return []model.Account{
		{Code: "1000", Name: "ASET", NormalSide: d, Report: bs, SubType: "Aset Lancar", Header: true},
		{Code: "1001", Name: "Kas", NormalSide: d, Report: bs, SubType: "Aset Lancar"},
		{Code: "1002", Name: "Bank", NormalSide: d, Report: bs, SubType: "Aset Lancar"},
		{Code: "1101", Name: "Piutang Usaha", NormalSide: d, Report: bs, SubType: "Aset Lancar"},
		{Code: "1501", Name: "Peralatan", NormalSide: d, Report: bs, SubType: "Aset Tetap"},
		{Code: "1502", Name: "Akumulasi Penyusutan Peralatan", NormalSide: c, Report: bs, SubType: "Aset Tetap"},
		{Code: "2001", Name: "Utang Usaha", NormalSide: c, Report: bs, SubType: "Kewajiban Lancar"},
		{Code: "2101", Name: "Utang Bank", NormalSide: c, Report: bs, SubType: "Kewajiban Jangka Panjang"},
		{Code: "3001", Name: "Modal Disetor", NormalSide: c, Report: bs, SubType: "Ekuitas"},
		{Code: "3002", Name: "Laba Ditahan", NormalSide: c, Report: bs, SubType: "Ekuitas"},
		{Code: "3004", Name: "Laba (Rugi) Berjalan", NormalSide: c, Report: bs, SubType: "Ekuitas"},
		{Code: "4001", Name: "Pendapatan Penjualan", NormalSide: c, Report: is, SubType: "Pendapatan"},
		{Code: "4002", Name: "Pendapatan Jasa", NormalSide: c, Report: is, SubType: "Pendapatan"},
		{Code: "5001", Name: "Beban Gaji", NormalSide: d, Report: is, SubType: "Beban Umum Administrasi"},
		{Code: "5002", Name: "Beban Sewa", NormalSide: d, Report: is, SubType: "Beban Umum Administrasi"},
		{Code: "5003", Name: "Beban Penyusutan", NormalSide: d, Report: is, SubType: "Beban Umum Administrasi"},
		{Code: "6001", Name: "Pendapatan Bunga", NormalSide: c, Report: is, SubType: "Pendapatan Luar Usaha"},
		{Code: "7001", Name: "Beban Bunga", NormalSide: d, Report: is, SubType: "Beban Luar Usaha"},
	}
}
