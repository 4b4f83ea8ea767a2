package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/vetan/payroll-engine/internal/regime"
	"github.com/vetan/payroll-engine/pkg/money"
)

// IncomeBreakdown lists income per head.
type IncomeBreakdown struct {
	Salary             money.Money `json:"salary"`
	Perquisites        money.Money `json:"perquisites"`
	HouseProperty      money.Money `json:"house_property"`
	CapitalGains       money.Money `json:"capital_gains"`
	OtherSources       money.Money `json:"other_sources"`
	RetirementBenefits money.Money `json:"retirement_benefits"`
	Total              money.Money `json:"total"`
}

// ExemptionBreakdown lists the exempt portions of income.
type ExemptionBreakdown struct {
	HRA             money.Money `json:"hra"`
	Gratuity        money.Money `json:"gratuity"`
	LeaveEncashment money.Money `json:"leave_encashment"`
	CommutedPension money.Money `json:"commuted_pension"`
	VRS             money.Money `json:"vrs"`
	Total           money.Money `json:"total"`
}

// SectionDeduction is one chapter VI-A section line: what was claimed,
// what the cap allows, and whether the regime honors it.
type SectionDeduction struct {
	Section regime.Section `json:"section"`
	Allowed money.Money    `json:"allowed"`
	Honored bool           `json:"honored"`
}

// SpecialTaxBreakdown lists the separately-taxed income components.
type SpecialTaxBreakdown struct {
	STCGTax        money.Money `json:"stcg_tax"`
	LTCGTax        money.Money `json:"ltcg_tax"`
	SpeculativeTax money.Money `json:"speculative_tax"`
	DividendTax    money.Money `json:"dividend_tax"`
	Total          money.Money `json:"total"`
}

// TaxBreakdown is the full audit projection of a TaxationRecord: every
// intermediate figure from gross income to final liability. Producing it
// has no side effects.
type TaxBreakdown struct {
	EmployeeID     string         `json:"employee_id"`
	FinancialYear  string         `json:"financial_year"`
	AssessmentYear string         `json:"assessment_year"`
	Regime         regime.Variant `json:"regime"`

	Income            IncomeBreakdown    `json:"income"`
	Exemptions        ExemptionBreakdown `json:"exemptions"`
	StandardDeduction money.Money        `json:"standard_deduction"`
	HousePropertyLoss money.Money        `json:"house_property_loss"`
	Deductions        []SectionDeduction `json:"deductions"`
	TotalDeductions   money.Money        `json:"total_deductions"`

	TaxableIncome money.Money `json:"taxable_income"`
	SlabIncome    money.Money `json:"slab_income"`

	SlabStatements []SlabTaxStatement  `json:"slab_statements"`
	SlabTax        money.Money         `json:"slab_tax"`
	SpecialTax     SpecialTaxBreakdown `json:"special_tax"`
	Rebate87A      money.Money         `json:"rebate_87a"`
	SurchargeRate  decimal.Decimal     `json:"surcharge_rate_percent"`
	Surcharge      money.Money         `json:"surcharge"`
	Cess           money.Money         `json:"cess"`

	TotalLiability       money.Money     `json:"total_liability"`
	EffectiveRatePercent decimal.Decimal `json:"effective_rate_percent"`
}

// GetTaxBreakdown assembles the audit projection.
func (r *TaxationRecord) GetTaxBreakdown() TaxBreakdown {
	parts := r.liability()
	gov := r.profile.GovernmentEmployee

	hra := money.Zero()
	if r.regime.AllowsHRAExemption() {
		hra = r.salary.HRAExemption(r.profile.AnnualRentPaid, r.profile.MetroCity)
	}
	exemptions := ExemptionBreakdown{
		HRA:             hra,
		Gratuity:        r.retirement.GratuityExemption(gov),
		LeaveEncashment: r.retirement.LeaveEncashmentExemption(gov),
		CommutedPension: r.retirement.CommutedPensionExemption(gov),
		VRS:             r.retirement.VRSExemption(),
	}
	exemptions.Total = money.Sum(
		exemptions.HRA, exemptions.Gratuity, exemptions.LeaveEncashment,
		exemptions.CommutedPension, exemptions.VRS,
	)

	income := IncomeBreakdown{
		Salary:             r.salary.TotalEarnings(),
		Perquisites:        r.perquisites.Total(r.salary.BasicPlusDA(), r.profile.CityPopulation),
		HouseProperty:      r.house.NetIncome(),
		CapitalGains:       r.gains.Total(),
		OtherSources:       r.other.Total(),
		RetirementBenefits: r.retirement.Total(),
	}
	income.Total = r.GetTotalIncome()

	// Every section appears in the breakdown, honored or not, so a
	// reviewer can see what the chosen regime ignored.
	allSections := []regime.Section{
		regime.Section80C, regime.Section80D, regime.Section80TTA,
		regime.Section80U, regime.Section80DDB, regime.Section80E,
		regime.Section80G, regime.Section80CCD1B, regime.Section80CCD2,
	}
	sections := make([]SectionDeduction, 0, len(allSections))
	for _, s := range allSections {
		amount := r.deductions.SectionAmount(s, r.profile, r.salary.EmployerNPS)
		if amount.IsZero() {
			continue
		}
		sections = append(sections, SectionDeduction{
			Section: s,
			Allowed: amount,
			Honored: r.regime.AllowsSection(s),
		})
	}

	return TaxBreakdown{
		EmployeeID:     r.employeeID,
		FinancialYear:  r.financialYear,
		AssessmentYear: r.assessmentYear,
		Regime:         r.regime.Variant(),

		Income:            income,
		Exemptions:        exemptions,
		StandardDeduction: r.standardDeduction(),
		HousePropertyLoss: r.house.Loss(),
		Deductions:        sections,
		TotalDeductions:   r.GetTotalDeductions(),

		TaxableIncome: r.GetTaxableIncome(),
		SlabIncome:    parts.SlabIncome,

		SlabStatements: parts.SlabStatements,
		SlabTax:        parts.SlabTax,
		SpecialTax: SpecialTaxBreakdown{
			STCGTax:        parts.Special.STCGTax,
			LTCGTax:        parts.Special.LTCGTax,
			SpeculativeTax: parts.Special.SpeculativeTax,
			DividendTax:    parts.Special.DividendTax,
			Total:          parts.Special.total(),
		},
		Rebate87A:     parts.Rebate,
		SurchargeRate: parts.SurchargeRate,
		Surcharge:     parts.Surcharge,
		Cess:          parts.Cess,

		TotalLiability:       parts.Total,
		EffectiveRatePercent: r.EffectiveRatePercent(),
	}
}
