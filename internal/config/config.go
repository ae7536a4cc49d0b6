package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/laporan/internal/acctcode"
)

// FileName is the conventional config file name.
const FileName = "laporan.yaml"

// Config represents the top-level laporan.yaml configuration.
type Config struct {
	Company  CompanyConfig   `yaml:"company"`
	Sections []SectionConfig `yaml:"sections" validate:"required,min=1,dive"`
	Earnings EarningsConfig  `yaml:"earnings"`
	Columns  ColumnsConfig   `yaml:"columns"`
	Policy   PolicyConfig    `yaml:"policy"`
	Format   FormatConfig    `yaml:"format"`
}

// CompanyConfig supplies the report heading.
type CompanyConfig struct {
	Name   string `yaml:"name"`
	Period string `yaml:"period"` // free-text label, e.g. "31 Desember 2025"
}

// SectionConfig is one report section and the sub-classification terms
// that select its accounts. Sections render in list order.
type SectionConfig struct {
	Key    string   `yaml:"key" validate:"required,oneof=revenue operating_expense other_income other_expense assets liabilities equity"`
	Label  string   `yaml:"label" validate:"required"`
	Report string   `yaml:"report" validate:"required,oneof=income_statement balance_sheet"`
	Terms  []string `yaml:"terms" validate:"required,min=1,dive,required"`
}

// EarningsConfig identifies the equity line that receives net income.
type EarningsConfig struct {
	Code     string   `yaml:"code" validate:"required"`
	Label    string   `yaml:"label" validate:"required"`
	Keywords []string `yaml:"keywords,omitempty"` // name matches, highest priority first
	// Exclude rules out lines whose names contain any of these terms even
	// when a keyword matches, so retained earnings are never overwritten.
	Exclude []string `yaml:"exclude,omitempty"`
}

// ColumnsConfig maps canonical field names to accepted header spellings,
// per input table.
type ColumnsConfig struct {
	Chart   map[string][]string `yaml:"chart,omitempty"`
	Opening map[string][]string `yaml:"opening,omitempty"`
	Journal map[string][]string `yaml:"journal,omitempty"`
}

// PolicyConfig holds accounting policy choices.
type PolicyConfig struct {
	// UnknownNormalSide is the formula used for accounts whose normal
	// balance side is blank or unrecognized.
	UnknownNormalSide string `yaml:"unknown_normal_side" validate:"required,oneof=debit credit"`
	// CodeSeparators are the characters that split one journal code cell
	// into several accounts.
	CodeSeparators string `yaml:"code_separators" validate:"required"`
}

// Codes returns the account code rules set by the policy.
func (c *Config) Codes() acctcode.Codec {
	return acctcode.Codec{Separators: c.Policy.CodeSeparators}
}

// FormatConfig controls number rendering.
type FormatConfig struct {
	Locale   string `yaml:"locale" validate:"required,bcp47_language_tag"`
	Currency string `yaml:"currency"`
}

// Load reads a laporan.yaml file from disk and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default("")
	// Lists in the file replace the defaults rather than merging into them.
	cfg.Sections = nil
	cfg.Earnings.Keywords = nil
	cfg.Earnings.Exclude = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	def := Default("")
	if len(cfg.Sections) == 0 {
		cfg.Sections = def.Sections
	}
	if len(cfg.Earnings.Keywords) == 0 {
		cfg.Earnings.Keywords = def.Earnings.Keywords
	}
	if len(cfg.Earnings.Exclude) == 0 {
		cfg.Earnings.Exclude = def.Earnings.Exclude
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	seen := make(map[string]bool, len(c.Sections))
	for _, s := range c.Sections {
		if seen[s.Key] {
			return fmt.Errorf("invalid config: section %q listed twice", s.Key)
		}
		seen[s.Key] = true
	}
	return nil
}
