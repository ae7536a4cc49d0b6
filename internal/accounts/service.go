package accounts

import (
	"sort"

	"github.com/cleared-dev/laporan/internal/acctcode"
	"github.com/cleared-dev/laporan/internal/model"
)

// Service provides in-memory lookup over the chart of accounts.
type Service struct {
	accounts []model.Account
	byCode   map[string]model.Account
}

// NewService creates a Service from a slice of accounts, ordered by code.
func NewService(accounts []model.Account) *Service {
	sorted := make([]model.Account, len(accounts))
	copy(sorted, accounts)
	sort.SliceStable(sorted, func(i, j int) bool { return acctcode.Less(sorted[i].Code, sorted[j].Code) })

	byCode := make(map[string]model.Account, len(sorted))
	for _, a := range sorted {
		byCode[a.Code] = a
	}
	return &Service{accounts: sorted, byCode: byCode}
}

// All returns all accounts ordered by code.
func (s *Service) All() []model.Account {
	return s.accounts
}

// Get returns an account by code.
func (s *Service) Get(code string) (model.Account, bool) {
	a, ok := s.byCode[acctcode.Normalize(code)]
	return a, ok
}

// Exists reports whether an account code exists.
func (s *Service) Exists(code string) bool {
	_, ok := s.Get(code)
	return ok
}

// ByReport returns the accounts assigned to the given statement.
func (s *Service) ByReport(kind model.ReportKind) []model.Account {
	var result []model.Account
	for _, a := range s.accounts {
		if a.Report == kind {
			result = append(result, a)
		}
	}
	return result
}

// Len returns the number of accounts.
func (s *Service) Len() int {
	return len(s.accounts)
}
