package domain

import (
	"github.com/shopspring/decimal"

	"github.com/vetan/payroll-engine/pkg/money"
)

// SalaryIncome is the annual salary of one employee broken into its
// assigned components. Values are annual figures; the payout projection
// divides by twelve.
type SalaryIncome struct {
	Basic             money.Money `yaml:"basic" json:"basic"`
	DearnessAllowance money.Money `yaml:"dearness_allowance" json:"dearness_allowance"`
	HRAReceived       money.Money `yaml:"hra_received" json:"hra_received"`
	LTAReceived       money.Money `yaml:"lta_received" json:"lta_received"`
	SpecialAllowance  money.Money `yaml:"special_allowance" json:"special_allowance"`
	OtherAllowances   money.Money `yaml:"other_allowances" json:"other_allowances"`
	Bonus             money.Money `yaml:"bonus" json:"bonus"`
	Commission        money.Money `yaml:"commission" json:"commission"`

	// Employer-side retirement contributions. EmployerNPS is the
	// section 80CCD(2) amount, the one deduction both regimes honor.
	EmployerPF  money.Money `yaml:"employer_pf" json:"employer_pf"`
	EmployerNPS money.Money `yaml:"employer_nps" json:"employer_nps"`
}

// TotalEarnings sums every salary component paid to the employee.
func (s SalaryIncome) TotalEarnings() money.Money {
	return money.Sum(
		s.Basic, s.DearnessAllowance, s.HRAReceived, s.LTAReceived,
		s.SpecialAllowance, s.OtherAllowances, s.Bonus, s.Commission,
	)
}

// BasicPlusDA is the base for HRA exemption and accommodation perquisite
// valuation.
func (s SalaryIncome) BasicPlusDA() money.Money {
	return s.Basic.Add(s.DearnessAllowance)
}

// HRAExemption computes the exempt portion of HRA received as the least of
// actual HRA, rent paid less 10% of basic+DA, and 50% (metro) or 40%
// (non-metro) of basic+DA. The caller gates this on the regime: the new
// regime does not honor the exemption.
func (s SalaryIncome) HRAExemption(annualRentPaid money.Money, metro bool) money.Money {
	if annualRentPaid.IsZero() || s.HRAReceived.IsZero() {
		return money.Zero()
	}
	base := s.BasicPlusDA()
	rentExcess := annualRentPaid.SubClamped(base.Percentage(decimal.NewFromInt(10)))
	cityPct := decimal.NewFromInt(40)
	if metro {
		cityPct = decimal.NewFromInt(50)
	}
	return money.Min(s.HRAReceived, money.Min(rentExcess, base.Percentage(cityPct)))
}
