// Package domain holds the income, deduction and perquisite aggregates the
// tax engine computes over. Every monetary field is a money.Money; each
// aggregate is a flat record with roll-up methods and no hidden state.
package domain

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/vetan/payroll-engine/pkg/money"
)

// TaxpayerProfile carries the attributes that select statutory limits and
// exemptions for one employee.
type TaxpayerProfile struct {
	EmployeeID           string `yaml:"employee_id" json:"employee_id" validate:"required"`
	Age                  int    `yaml:"age" json:"age" validate:"gte=18,lte=100"`
	GovernmentEmployee   bool   `yaml:"government_employee" json:"government_employee"`
	DisabilityPercentage int    `yaml:"disability_percentage,omitempty" json:"disability_percentage,omitempty" validate:"gte=0,lte=100"`

	// Accommodation context for HRA exemption and perquisite valuation.
	MetroCity      bool        `yaml:"metro_city" json:"metro_city"`
	CityPopulation int64       `yaml:"city_population,omitempty" json:"city_population,omitempty" validate:"gte=0"`
	AnnualRentPaid money.Money `yaml:"annual_rent_paid,omitempty" json:"annual_rent_paid,omitempty"`
}

// SeniorCitizen reports whether the taxpayer is 60 or older.
func (p TaxpayerProfile) SeniorCitizen() bool { return p.Age >= 60 }

// SuperSeniorCitizen reports whether the taxpayer is 80 or older.
func (p TaxpayerProfile) SuperSeniorCitizen() bool { return p.Age >= 80 }

// Attendance summarizes one month of attendance for payout proration.
type Attendance struct {
	TotalDays   int `yaml:"total_days" json:"total_days" validate:"omitempty,gte=28,lte=31"`
	WorkingDays int `yaml:"working_days" json:"working_days" validate:"gte=0"`
	LWPDays     int `yaml:"lwp_days" json:"lwp_days" validate:"gte=0"`
}

// Validate checks the day-count relationships.
func (a Attendance) Validate() error {
	if a.WorkingDays > a.TotalDays {
		return fmt.Errorf("attendance: working days %d exceed total days %d", a.WorkingDays, a.TotalDays)
	}
	if a.LWPDays > a.WorkingDays {
		return fmt.Errorf("attendance: LWP days %d exceed working days %d", a.LWPDays, a.WorkingDays)
	}
	return nil
}

// EffectiveRatio returns (working - lwp) / total as a decimal fraction.
func (a Attendance) EffectiveRatio() decimal.Decimal {
	if a.TotalDays == 0 {
		return decimal.Zero
	}
	paid := decimal.NewFromInt(int64(a.WorkingDays - a.LWPDays))
	return paid.Div(decimal.NewFromInt(int64(a.TotalDays)))
}

var financialYearPattern = regexp.MustCompile(`^(\d{4})-(\d{2})$`)

// ValidateFinancialYear checks the "2023-24" form and that the second year
// follows the first.
func ValidateFinancialYear(fy string) error {
	m := financialYearPattern.FindStringSubmatch(fy)
	if m == nil {
		return fmt.Errorf("financial year %q must look like 2023-24", fy)
	}
	start, _ := strconv.Atoi(m[1])
	end, _ := strconv.Atoi(m[2])
	if (start+1)%100 != end {
		return fmt.Errorf("financial year %q must span consecutive years", fy)
	}
	return nil
}

// AssessmentYear derives the assessment year for a financial year, e.g.
// "2023-24" -> "2024-25".
func AssessmentYear(fy string) (string, error) {
	if err := ValidateFinancialYear(fy); err != nil {
		return "", err
	}
	m := financialYearPattern.FindStringSubmatch(fy)
	start, _ := strconv.Atoi(m[1])
	return fmt.Sprintf("%d-%02d", start+1, (start+2)%100), nil
}
