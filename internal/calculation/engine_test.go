package calculation

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vetan/payroll-engine/internal/domain"
	"github.com/vetan/payroll-engine/internal/regime"
	"github.com/vetan/payroll-engine/pkg/money"
)

type recordingLogger struct {
	debugs []string
	warns  []string
}

func (l *recordingLogger) Debugf(format string, args ...any) {
	l.debugs = append(l.debugs, fmt.Sprintf(format, args...))
}
func (l *recordingLogger) Infof(format string, args ...any) {}
func (l *recordingLogger) Warnf(format string, args ...any) {
	l.warns = append(l.warns, fmt.Sprintf(format, args...))
}
func (l *recordingLogger) Errorf(format string, args ...any) {}

func validInput(id string) TaxationInput {
	return TaxationInput{
		EmployeeID:    id,
		FinancialYear: "2023-24",
		Regime:        regime.NewNewRegime(),
		Profile:       domain.TaxpayerProfile{EmployeeID: id, Age: 30},
		Salary:        domain.SalaryIncome{Basic: money.MustNew(900000)},
	}
}

func TestComputeTaxationsPartialFailure(t *testing.T) {
	engine := NewComputationEngine()
	logger := &recordingLogger{}
	engine.SetLogger(logger)

	bad := validInput("")
	inputs := []TaxationInput{validInput("EMP001"), bad, validInput("EMP003")}

	records, failures := engine.ComputeTaxations(inputs)
	require.Len(t, records, 2)
	require.Len(t, failures, 1)
	assert.Equal(t, "", failures[0].EmployeeID)
	assert.Equal(t, "EMP001", records[0].EmployeeID())
	assert.Equal(t, "EMP003", records[1].EmployeeID())
	assert.NotEmpty(t, logger.warns)
	assert.Len(t, logger.debugs, 2)
}

func TestComputePayoutsPartialFailure(t *testing.T) {
	engine := NewComputationEngine()
	att := domain.Attendance{TotalDays: 30, WorkingDays: 30}

	reqs := []PayoutRequest{
		{Input: validInput("EMP001"), Month: time.May, Year: 2023, Attendance: att},
		{Input: validInput("EMP002"), Month: time.May, Year: 2023,
			Attendance: domain.Attendance{TotalDays: 30, WorkingDays: 20, LWPDays: 25}},
		{Input: validInput("EMP003"), Month: time.May, Year: 2023, Attendance: att},
	}
	payouts, failures := engine.ComputePayouts(reqs)
	require.Len(t, payouts, 2)
	require.Len(t, failures, 1)
	assert.Equal(t, "EMP002", failures[0].EmployeeID)
	assert.Contains(t, failures[0].Error(), "EMP002")
}

func TestSetLoggerNilFallsBackToNop(t *testing.T) {
	engine := NewComputationEngine()
	engine.SetLogger(nil)
	require.NotNil(t, engine.Logger)

	_, err := engine.ComputeTaxation(validInput("EMP001"))
	assert.NoError(t, err)
}
