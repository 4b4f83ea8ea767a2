package output

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vetan/payroll-engine/internal/calculation"
	"github.com/vetan/payroll-engine/internal/domain"
	"github.com/vetan/payroll-engine/internal/regime"
	"github.com/vetan/payroll-engine/pkg/money"
)

func sampleResult(t *testing.T) *Result {
	t.Helper()
	record, err := calculation.NewTaxationRecord(calculation.TaxationInput{
		EmployeeID:    "EMP001",
		FinancialYear: "2023-24",
		Regime:        regime.NewNewRegime(),
		Profile:       domain.TaxpayerProfile{EmployeeID: "EMP001", Age: 30},
		Salary:        domain.SalaryIncome{Basic: money.MustNew(1200000)},
	})
	require.NoError(t, err)

	comparison, err := record.GetRegimeComparison()
	require.NoError(t, err)

	payout, err := record.GetMonthlyPayout(time.July, 2023,
		domain.Attendance{TotalDays: 30, WorkingDays: 28, LWPDays: 2}, nil)
	require.NoError(t, err)

	return &Result{
		Organization:  "Acme Industries",
		FinancialYear: "2023-24",
		Employees: []EmployeeResult{{
			Breakdown:  record.GetTaxBreakdown(),
			Comparison: &comparison,
			Payout:     &payout,
		}},
	}
}

func TestGetFormatterByName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"console", "console", "console"},
		{"json", "json", "json"},
		{"alias text", "text", "console"},
		{"alias json pretty", "JSON-Pretty", "json"},
		{"mixed case", "Console", "console"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := GetFormatterByName(tt.input)
			require.NotNil(t, f)
			assert.Equal(t, tt.expected, f.Name())
		})
	}

	assert.Nil(t, GetFormatterByName("xml"))
}

func TestJSONFormatter(t *testing.T) {
	data, err := JSONFormatter{}.Format(sampleResult(t))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "Acme Industries", decoded["organization"])

	employees, ok := decoded["employees"].([]any)
	require.True(t, ok)
	require.Len(t, employees, 1)
	emp := employees[0].(map[string]any)
	assert.Contains(t, emp, "breakdown")
	assert.Contains(t, emp, "regime_comparison")
	assert.Contains(t, emp, "payout")
}

func TestConsoleFormatter(t *testing.T) {
	data, err := ConsoleFormatter{}.Format(sampleResult(t))
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "Acme Industries")
	assert.Contains(t, out, "EMP001")
	assert.Contains(t, out, "TOTAL LIABILITY")
	assert.Contains(t, out, "NET PAY")
	assert.Contains(t, out, "Regimes:")
}

func TestConsoleFormatterReportsFailures(t *testing.T) {
	result := &Result{Organization: "Acme", FinancialYear: "2023-24",
		Failures: []string{"employee EMP009: attendance: working days 32 exceed total days 30"}}
	data, err := ConsoleFormatter{}.Format(result)
	require.NoError(t, err)
	assert.Contains(t, string(data), "EMP009")
}

func TestFormatterDeterministic(t *testing.T) {
	result := sampleResult(t)
	first, err := JSONFormatter{}.Format(result)
	require.NoError(t, err)
	second, err := JSONFormatter{}.Format(result)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
