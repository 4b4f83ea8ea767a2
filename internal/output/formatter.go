// Package output renders computation results for the CLI: a concise
// console payslip view and a JSON boundary document.
package output

import (
	"strings"

	"github.com/vetan/payroll-engine/internal/calculation"
)

// EmployeeResult gathers everything computed for one employee.
type EmployeeResult struct {
	Breakdown  calculation.TaxBreakdown      `json:"breakdown"`
	Comparison *calculation.RegimeComparison `json:"regime_comparison,omitempty"`
	Payout     *calculation.MonthlyPayout    `json:"payout,omitempty"`
}

// Result is the run-level output document.
type Result struct {
	Organization  string           `json:"organization"`
	FinancialYear string           `json:"financial_year"`
	Employees     []EmployeeResult `json:"employees"`
	Failures      []string         `json:"failures,omitempty"`
}

// Formatter defines a pluggable output formatter that returns a byte slice.
// Implementations should be pure (no side effects besides deterministic
// formatting).
type Formatter interface {
	Format(result *Result) ([]byte, error)
	// Name returns a short identifier for logging / debugging.
	Name() string
}

// builtInFormatters stores available formatters (extended incrementally).
var builtInFormatters = []Formatter{
	ConsoleFormatter{},
	JSONFormatter{},
}

// aliasMap provides user-friendly synonyms for format names.
var aliasMap = map[string]string{
	"text":        "console",
	"plain":       "console",
	"json-pretty": "json",
}

// NormalizeFormatName lowers and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if resolved, ok := aliasMap[n]; ok {
		return resolved
	}
	return n
}

// GetFormatterByName fetches a registered formatter, nil if unknown.
func GetFormatterByName(name string) Formatter {
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f
		}
	}
	return nil
}
