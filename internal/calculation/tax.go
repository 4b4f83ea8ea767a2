package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/vetan/payroll-engine/internal/regime"
	"github.com/vetan/payroll-engine/pkg/money"
)

// Special-income rates, FY 2023-24.
var (
	rateSTCG111A      = decimal.NewFromInt(15)
	rateLTCG112A      = decimal.NewFromInt(10)
	rateSpeculative   = decimal.NewFromInt(30)
	rateDividend      = decimal.NewFromInt(10)
	ltcg112AExemption = money.MustNew(100000)
)

// SlabTaxStatement records the tax contributed by one bracket, for the
// breakdown.
type SlabTaxStatement struct {
	Lower         money.Money     `json:"lower"`
	Upper         *money.Money    `json:"upper,omitempty"`
	RatePercent   decimal.Decimal `json:"rate_percent"`
	TaxableAmount money.Money     `json:"taxable_amount"`
	Tax           money.Money     `json:"tax"`
}

// progressiveTax walks the slabs in order, taxing only the portion of
// income inside each bracket: for bracket [lo, hi) the taxable amount is
// clamp(income, lo, hi) - lo. The final bracket is unbounded.
func progressiveTax(income decimal.Decimal, slabs []regime.Slab) (decimal.Decimal, []SlabTaxStatement) {
	total := decimal.Zero
	statements := make([]SlabTaxStatement, 0, len(slabs))
	for _, slab := range slabs {
		clamped := income
		if clamped.LessThan(slab.Lower) {
			clamped = slab.Lower
		}
		if slab.Upper != nil && clamped.GreaterThan(*slab.Upper) {
			clamped = *slab.Upper
		}
		inBracket := clamped.Sub(slab.Lower)
		tax := inBracket.Mul(slab.Rate).Div(decimal.NewFromInt(100)).Round(2)
		total = total.Add(tax)

		stmt := SlabTaxStatement{
			Lower:         money.NewClamped(slab.Lower),
			RatePercent:   slab.Rate,
			TaxableAmount: money.NewClamped(inBracket),
			Tax:           money.NewClamped(tax),
		}
		if slab.Upper != nil {
			u := money.NewClamped(*slab.Upper)
			stmt.Upper = &u
		}
		statements = append(statements, stmt)
	}
	return total.Round(2), statements
}

// specialTaxParts carries the separately-taxed income components. These
// have statutory flat or partial rates and must never enter the slab walk.
type specialTaxParts struct {
	STCGTax        money.Money
	LTCGTax        money.Money
	SpeculativeTax money.Money
	DividendTax    money.Money
}

func (s specialTaxParts) total() money.Money {
	return money.Sum(s.STCGTax, s.LTCGTax, s.SpeculativeTax, s.DividendTax)
}

// taxOnSTCG taxes section 111A short-term gains at a flat 15%.
func (r *TaxationRecord) taxOnSTCG() money.Money {
	return r.gains.ShortTermGains111A.Percentage(rateSTCG111A)
}

// taxOnLTCG taxes section 112A long-term gains at 10% above the 1,00,000
// exemption.
func (r *TaxationRecord) taxOnLTCG() money.Money {
	return r.gains.LongTermGains112A.SubClamped(ltcg112AExemption).Percentage(rateLTCG112A)
}

// taxOnSpeculative taxes speculative income at a flat 30%.
func (r *TaxationRecord) taxOnSpeculative() money.Money {
	return r.other.SpeculativeIncome.Percentage(rateSpeculative)
}

// taxOnDividend taxes dividend income at a flat 10%.
func (r *TaxationRecord) taxOnDividend() money.Money {
	return r.other.DividendIncome.Percentage(rateDividend)
}

// liabilityParts holds every intermediate figure of the liability
// computation, shared by GetTaxLiability and the breakdown.
type liabilityParts struct {
	SlabIncome     money.Money
	SlabTax        money.Money
	SlabStatements []SlabTaxStatement
	Special        specialTaxParts
	BaseTax        money.Money
	Rebate         money.Money
	SurchargeRate  decimal.Decimal
	Surcharge      money.Money
	Cess           money.Money
	Total          money.Money
}

// liability computes the full tax pipeline: slab walk, special income,
// rebate 87A, surcharge selection, cess.
func (r *TaxationRecord) liability() liabilityParts {
	slabIncome := r.slabIncome()
	slabTaxDec, statements := progressiveTax(slabIncome.Amount(), r.regime.SlabsForAge(r.profile.Age))
	slabTax := money.NewClamped(slabTaxDec)

	special := specialTaxParts{
		STCGTax:        r.taxOnSTCG(),
		LTCGTax:        r.taxOnLTCG(),
		SpeculativeTax: r.taxOnSpeculative(),
		DividendTax:    r.taxOnDividend(),
	}

	baseTax := slabTax.Add(special.total())

	// Rebate 87A: available when taxable income does not exceed the
	// regime threshold; zeroes tax up to the rebate amount, before cess.
	rebate := money.Zero()
	if r.GetTaxableIncome().Amount().LessThanOrEqual(r.regime.Rebate87ALimit()) {
		rebateCap, _ := money.NewFromDecimal(r.regime.Rebate87AAmount())
		rebate = money.Min(baseTax, rebateCap)
	}
	afterRebate := baseTax.SubClamped(rebate)

	// Surcharge: one flat rate selected by the band containing taxable
	// income, applied to the post-rebate tax.
	surchargeRate := r.regime.SurchargeRate(r.GetTaxableIncome().Amount())
	surcharge := afterRebate.Percentage(surchargeRate)

	// Cess applies last, on tax less rebate plus surcharge.
	cess := afterRebate.Add(surcharge).Percentage(r.regime.CessRate())

	return liabilityParts{
		SlabIncome:     slabIncome,
		SlabTax:        slabTax,
		SlabStatements: statements,
		Special:        special,
		BaseTax:        baseTax,
		Rebate:         rebate,
		SurchargeRate:  surchargeRate,
		Surcharge:      surcharge,
		Cess:           cess,
		Total:          money.Sum(afterRebate, surcharge, cess),
	}
}
