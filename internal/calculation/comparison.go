package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/vetan/payroll-engine/internal/regime"
	"github.com/vetan/payroll-engine/pkg/money"
)

// RegimeResult is one side of the old-vs-new comparison.
type RegimeResult struct {
	Variant              regime.Variant  `json:"variant"`
	TaxableIncome        money.Money     `json:"taxable_income"`
	TaxLiability         money.Money     `json:"tax_liability"`
	EffectiveRatePercent decimal.Decimal `json:"effective_rate_percent"`
}

// RegimeComparison is the side-by-side result of computing the same
// income and declaration data under both regimes.
type RegimeComparison struct {
	Old               RegimeResult   `json:"old"`
	New               RegimeResult   `json:"new"`
	RecommendedRegime regime.Variant `json:"recommended_regime"`
	AnnualSavings     money.Money    `json:"annual_savings"`
}

// GetRegimeComparison builds two full parallel records, one forced to
// each regime, sharing all income and declaration data, and recommends
// the regime with the strictly lower liability. On an exact tie the old
// regime wins; the tie-break is a policy choice, not an accident of
// comparison order.
func (r *TaxationRecord) GetRegimeComparison() (RegimeComparison, error) {
	oldRec, err := r.withRegime(regime.Old)
	if err != nil {
		return RegimeComparison{}, err
	}
	newRec, err := r.withRegime(regime.New)
	if err != nil {
		return RegimeComparison{}, err
	}

	oldResult := RegimeResult{
		Variant:              regime.Old,
		TaxableIncome:        oldRec.GetTaxableIncome(),
		TaxLiability:         oldRec.GetTaxLiability(),
		EffectiveRatePercent: oldRec.EffectiveRatePercent(),
	}
	newResult := RegimeResult{
		Variant:              regime.New,
		TaxableIncome:        newRec.GetTaxableIncome(),
		TaxLiability:         newRec.GetTaxLiability(),
		EffectiveRatePercent: newRec.EffectiveRatePercent(),
	}

	recommended := regime.Old
	lower, err := newResult.TaxLiability.LessThan(oldResult.TaxLiability)
	if err != nil {
		return RegimeComparison{}, err
	}
	if lower {
		recommended = regime.New
	}

	savings := money.Max(oldResult.TaxLiability, newResult.TaxLiability).
		SubClamped(money.Min(oldResult.TaxLiability, newResult.TaxLiability))

	return RegimeComparison{
		Old:               oldResult,
		New:               newResult,
		RecommendedRegime: recommended,
		AnnualSavings:     savings,
	}, nil
}
