package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vetan/payroll-engine/pkg/money"
)

func TestTotalEarnings(t *testing.T) {
	s := SalaryIncome{
		Basic:             money.MustNew(600000),
		DearnessAllowance: money.MustNew(60000),
		HRAReceived:       money.MustNew(240000),
		Bonus:             money.MustNew(50000),
	}
	assert.Equal(t, "950000.00", s.TotalEarnings().String())

	// Employer contributions are not earnings paid to the employee.
	s.EmployerPF = money.MustNew(72000)
	s.EmployerNPS = money.MustNew(60000)
	assert.Equal(t, "950000.00", s.TotalEarnings().String())
}

func TestHRAExemption(t *testing.T) {
	s := SalaryIncome{
		Basic:       money.MustNew(600000),
		HRAReceived: money.MustNew(240000),
	}
	rent := money.MustNew(300000)

	// Metro: least of HRA received (240000), rent - 10% basic (240000),
	// 50% of basic (300000).
	metro := s.HRAExemption(rent, true)
	assert.Equal(t, "240000.00", metro.String())

	// Non-metro swaps the 50% leg for 40% (240000); rent excess still binds.
	nonMetro := s.HRAExemption(rent, false)
	assert.Equal(t, "240000.00", nonMetro.String())

	// Lower rent makes the rent-excess leg the binding one.
	lowRent := s.HRAExemption(money.MustNew(100000), true)
	assert.Equal(t, "40000.00", lowRent.String())
}

func TestHRAExemptionZeroCases(t *testing.T) {
	s := SalaryIncome{Basic: money.MustNew(600000), HRAReceived: money.MustNew(240000)}
	assert.True(t, s.HRAExemption(money.Zero(), true).IsZero())

	noHRA := SalaryIncome{Basic: money.MustNew(600000)}
	assert.True(t, noHRA.HRAExemption(money.MustNew(300000), true).IsZero())

	// Rent below 10% of basic+DA leaves nothing exempt.
	cheap := s.HRAExemption(money.MustNew(50000), true)
	assert.True(t, cheap.IsZero())
}
