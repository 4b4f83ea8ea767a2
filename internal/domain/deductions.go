package domain

import (
	"github.com/vetan/payroll-engine/internal/regime"
	"github.com/vetan/payroll-engine/pkg/money"
)

// Statutory section ceilings, FY 2023-24.
var (
	limit80C         = money.MustNew(150000)
	limit80D         = money.MustNew(25000)
	limit80DSenior   = money.MustNew(50000)
	limit80TTA       = money.MustNew(10000)
	limit80U         = money.MustNew(75000)
	limit80USevere   = money.MustNew(125000)
	limit80DDB       = money.MustNew(40000)
	limit80DDBSenior = money.MustNew(100000)
	limit80CCD1B     = money.MustNew(50000)
)

// TaxDeductions is the declared investment and expense record for one
// employee. Over-declaration is never rejected: each section roll-up caps
// at its statutory ceiling.
type TaxDeductions struct {
	// Section 80C.
	LifeInsurancePremium   money.Money `yaml:"life_insurance_premium" json:"life_insurance_premium"`
	PPFContribution        money.Money `yaml:"ppf_contribution" json:"ppf_contribution"`
	ELSSInvestment         money.Money `yaml:"elss_investment" json:"elss_investment"`
	HomeLoanPrincipal      money.Money `yaml:"home_loan_principal" json:"home_loan_principal"`
	ChildrenTuitionFees    money.Money `yaml:"children_tuition_fees" json:"children_tuition_fees"`
	NSCInvestment          money.Money `yaml:"nsc_investment" json:"nsc_investment"`
	EmployeePFContribution money.Money `yaml:"employee_pf_contribution" json:"employee_pf_contribution"`

	// Section 80D.
	HealthInsuranceSelf    money.Money `yaml:"health_insurance_self" json:"health_insurance_self"`
	HealthInsuranceParents money.Money `yaml:"health_insurance_parents" json:"health_insurance_parents"`
	PreventiveCheckup      money.Money `yaml:"preventive_checkup" json:"preventive_checkup"`

	// Single-field sections.
	SavingsAccountInterest money.Money `yaml:"savings_account_interest" json:"savings_account_interest"` // 80TTA
	MedicalTreatmentCost   money.Money `yaml:"medical_treatment_cost" json:"medical_treatment_cost"`     // 80DDB
	EducationLoanInterest  money.Money `yaml:"education_loan_interest" json:"education_loan_interest"`   // 80E
	Donations              money.Money `yaml:"donations" json:"donations"`                               // 80G
	NPSContribution        money.Money `yaml:"nps_contribution" json:"nps_contribution"`                 // 80CCD(1B)
}

// total80C sums the 80C investment fields before the cap.
func (d TaxDeductions) total80C() money.Money {
	return money.Sum(
		d.LifeInsurancePremium, d.PPFContribution, d.ELSSInvestment,
		d.HomeLoanPrincipal, d.ChildrenTuitionFees, d.NSCInvestment,
		d.EmployeePFContribution,
	)
}

// Calculate80CLimit returns the 80C deduction capped at 1,50,000.
func (d TaxDeductions) Calculate80CLimit() money.Money {
	return money.Min(d.total80C(), limit80C)
}

// Calculate80DLimit returns the health-insurance deduction capped at
// 50,000 for senior citizens, 25,000 otherwise.
func (d TaxDeductions) Calculate80DLimit(seniorCitizen bool) money.Money {
	sum := money.Sum(d.HealthInsuranceSelf, d.HealthInsuranceParents, d.PreventiveCheckup)
	if seniorCitizen {
		return money.Min(sum, limit80DSenior)
	}
	return money.Min(sum, limit80D)
}

// Calculate80TTALimit returns savings interest capped at 10,000.
func (d TaxDeductions) Calculate80TTALimit() money.Money {
	return money.Min(d.SavingsAccountInterest, limit80TTA)
}

// Calculate80ULimit returns the flat disability deduction: 1,25,000 at
// 80%+ disability, 75,000 at 40-79%, zero below 40%.
func (d TaxDeductions) Calculate80ULimit(disabilityPercentage int) money.Money {
	switch {
	case disabilityPercentage >= 80:
		return limit80USevere
	case disabilityPercentage >= 40:
		return limit80U
	default:
		return money.Zero()
	}
}

// Calculate80DDBLimit returns specified-disease treatment cost capped at
// 1,00,000 for senior citizens, 40,000 otherwise. The disability
// percentage is accepted alongside age for interface symmetry with 80U;
// the statutory ceiling depends on age alone.
func (d TaxDeductions) Calculate80DDBLimit(age, disabilityPercentage int) money.Money {
	_ = disabilityPercentage
	if age >= 60 {
		return money.Min(d.MedicalTreatmentCost, limit80DDBSenior)
	}
	return money.Min(d.MedicalTreatmentCost, limit80DDB)
}

// Calculate80ELimit returns education-loan interest; the section has no
// monetary ceiling.
func (d TaxDeductions) Calculate80ELimit() money.Money {
	return d.EducationLoanInterest
}

// Calculate80GLimit returns donations. Eligibility percentages per donee
// category are resolved upstream; the declared figure is already the
// deductible amount.
func (d TaxDeductions) Calculate80GLimit() money.Money {
	return d.Donations
}

// Calculate80CCD1BLimit returns the additional NPS deduction capped at 50,000.
func (d TaxDeductions) Calculate80CCD1BLimit() money.Money {
	return money.Min(d.NPSContribution, limit80CCD1B)
}

// SectionAmount returns the capped amount for one section code.
// employerNPS is the employer's 80CCD(2) contribution, which lives on
// SalaryIncome rather than the declaration record.
func (d TaxDeductions) SectionAmount(section regime.Section, profile TaxpayerProfile, employerNPS money.Money) money.Money {
	switch section {
	case regime.Section80C:
		return d.Calculate80CLimit()
	case regime.Section80D:
		return d.Calculate80DLimit(profile.SeniorCitizen())
	case regime.Section80TTA:
		return d.Calculate80TTALimit()
	case regime.Section80U:
		return d.Calculate80ULimit(profile.DisabilityPercentage)
	case regime.Section80DDB:
		return d.Calculate80DDBLimit(profile.Age, profile.DisabilityPercentage)
	case regime.Section80E:
		return d.Calculate80ELimit()
	case regime.Section80G:
		return d.Calculate80GLimit()
	case regime.Section80CCD1B:
		return d.Calculate80CCD1BLimit()
	case regime.Section80CCD2:
		return employerNPS
	default:
		return money.Zero()
	}
}

// TotalForRegime sums the capped section amounts for exactly the sections
// the regime honors. Regime gating lives here, at the deductions/regime
// boundary, so the aggregate root never needs to know section rules.
func (d TaxDeductions) TotalForRegime(r regime.TaxRegime, profile TaxpayerProfile, employerNPS money.Money) money.Money {
	total := money.Zero()
	for _, section := range r.AllowedDeductionSections() {
		total = total.Add(d.SectionAmount(section, profile, employerNPS))
	}
	return total
}
