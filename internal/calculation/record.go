// Package calculation computes tax liability and monthly payouts from the
// domain aggregates. Every operation is a deterministic pure function of
// the record it is called on; records are immutable once built, and a
// regime change produces a new record rather than mutating one.
package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vetan/payroll-engine/internal/domain"
	"github.com/vetan/payroll-engine/internal/regime"
	"github.com/vetan/payroll-engine/pkg/money"
)

// TaxationInput bundles everything needed to build a TaxationRecord. The
// persistence layer supplies already-typed values; no parsing happens here.
type TaxationInput struct {
	EmployeeID    string
	FinancialYear string
	Regime        regime.TaxRegime
	Profile       domain.TaxpayerProfile
	Salary        domain.SalaryIncome
	Perquisites   domain.Perquisites
	Deductions    domain.TaxDeductions
	OtherIncome   domain.OtherIncome
	HouseProperty domain.HousePropertyIncome
	CapitalGains  domain.CapitalGainsIncome
	Retirement    domain.RetirementBenefits

	// Regimes optionally overrides the built-in policy tables per variant,
	// so the regime comparison uses the same overrides as the filed regime.
	Regimes map[regime.Variant]regime.TaxRegime
}

// TaxationRecord is the aggregate root for one employee's yearly tax
// computation.
type TaxationRecord struct {
	employeeID     string
	financialYear  string
	assessmentYear string
	regime         regime.TaxRegime
	profile        domain.TaxpayerProfile
	salary         domain.SalaryIncome
	perquisites    domain.Perquisites
	deductions     domain.TaxDeductions
	other          domain.OtherIncome
	house          domain.HousePropertyIncome
	gains          domain.CapitalGainsIncome
	retirement     domain.RetirementBenefits
	regimes        map[regime.Variant]regime.TaxRegime
}

// NewTaxationRecord validates the input and builds an immutable record.
func NewTaxationRecord(in TaxationInput) (*TaxationRecord, error) {
	if in.EmployeeID == "" {
		return nil, fmt.Errorf("taxation record: employee id is required")
	}
	ay, err := domain.AssessmentYear(in.FinancialYear)
	if err != nil {
		return nil, fmt.Errorf("taxation record: %w", err)
	}
	if err := in.Regime.Validate(); err != nil {
		return nil, fmt.Errorf("taxation record: %w", err)
	}
	for v, reg := range in.Regimes {
		if err := reg.Validate(); err != nil {
			return nil, fmt.Errorf("taxation record: regime %s: %w", v, err)
		}
	}
	return &TaxationRecord{
		employeeID:     in.EmployeeID,
		financialYear:  in.FinancialYear,
		assessmentYear: ay,
		regime:         in.Regime,
		profile:        in.Profile,
		salary:         in.Salary,
		perquisites:    in.Perquisites,
		deductions:     in.Deductions,
		other:          in.OtherIncome,
		house:          in.HouseProperty,
		gains:          in.CapitalGains,
		retirement:     in.Retirement,
		regimes:        in.Regimes,
	}, nil
}

// withRegime builds a parallel record sharing all data under a different
// regime. Used by the regime comparison.
func (r *TaxationRecord) withRegime(v regime.Variant) (*TaxationRecord, error) {
	reg, ok := r.regimes[v]
	if !ok {
		var err error
		reg, err = regime.ForVariant(v)
		if err != nil {
			return nil, err
		}
	}
	clone := *r
	clone.regime = reg
	return &clone, nil
}

// EmployeeID returns the employee identifier.
func (r *TaxationRecord) EmployeeID() string { return r.employeeID }

// FinancialYear returns the financial year ("2023-24").
func (r *TaxationRecord) FinancialYear() string { return r.financialYear }

// AssessmentYear returns the derived assessment year.
func (r *TaxationRecord) AssessmentYear() string { return r.assessmentYear }

// Regime returns the policy tables the record computes under.
func (r *TaxationRecord) Regime() regime.TaxRegime { return r.regime }

// Profile returns the taxpayer attributes.
func (r *TaxationRecord) Profile() domain.TaxpayerProfile { return r.profile }

// Salary returns the salary aggregate.
func (r *TaxationRecord) Salary() domain.SalaryIncome { return r.salary }

// GetTotalIncome sums income across every head before exemptions and
// deductions.
func (r *TaxationRecord) GetTotalIncome() money.Money {
	return money.Sum(
		r.salary.TotalEarnings(),
		r.perquisites.Total(r.salary.BasicPlusDA(), r.profile.CityPopulation),
		r.house.NetIncome(),
		r.other.Total(),
		r.gains.Total(),
		r.retirement.Total(),
	)
}

// GetTotalExemptions sums the exempt portions of income: HRA (old regime
// only) and retirement-benefit exemptions.
func (r *TaxationRecord) GetTotalExemptions() money.Money {
	total := r.retirement.TotalExemptions(r.profile.GovernmentEmployee)
	if r.regime.AllowsHRAExemption() {
		total = total.Add(r.salary.HRAExemption(r.profile.AnnualRentPaid, r.profile.MetroCity))
	}
	return total
}

// standardDeduction is the flat salary deduction, capped by actual salary.
func (r *TaxationRecord) standardDeduction() money.Money {
	if r.salary.TotalEarnings().IsZero() {
		return money.Zero()
	}
	limit, _ := money.NewFromDecimal(r.regime.StandardDeductionLimit())
	return money.Min(r.salary.TotalEarnings(), limit)
}

// GetTotalDeductions sums the standard deduction, the house-property loss
// set-off and the capped chapter VI-A sections the regime honors. Section
// gating happens inside TaxDeductions, at its boundary with the regime.
func (r *TaxationRecord) GetTotalDeductions() money.Money {
	return money.Sum(
		r.standardDeduction(),
		r.house.Loss(),
		r.deductions.TotalForRegime(r.regime, r.profile, r.salary.EmployerNPS),
	)
}

// GetTaxableIncome is total income less exemptions and deductions,
// clamped at zero.
func (r *TaxationRecord) GetTaxableIncome() money.Money {
	return r.GetTotalIncome().
		SubClamped(r.GetTotalExemptions()).
		SubClamped(r.GetTotalDeductions())
}

// specialIncome is the portion of taxable income carrying dedicated rates
// instead of slab rates.
func (r *TaxationRecord) specialIncome() money.Money {
	return r.gains.SpecialPortion().Add(r.other.SpecialPortion())
}

// slabIncome is taxable income excluding the separately-taxed portion.
func (r *TaxationRecord) slabIncome() money.Money {
	return r.GetTaxableIncome().SubClamped(r.specialIncome())
}

// GetTaxLiability returns the final tax payable: progressive slab tax
// plus special-income tax, less rebate 87A, plus surcharge and cess.
func (r *TaxationRecord) GetTaxLiability() money.Money {
	return r.liability().Total
}

// EffectiveRatePercent is liability as a percentage of total income.
func (r *TaxationRecord) EffectiveRatePercent() decimal.Decimal {
	income := r.GetTotalIncome()
	if income.IsZero() {
		return decimal.Zero
	}
	return r.GetTaxLiability().Amount().
		Div(income.Amount()).
		Mul(decimal.NewFromInt(100)).
		Round(2)
}
