package domain

import (
	"github.com/shopspring/decimal"

	"github.com/vetan/payroll-engine/pkg/money"
)

// OtherIncome is income from sources outside salary and property.
// Dividend and speculative income are taxed separately from the slab
// computation; the aggregate exposes them individually for that reason.
type OtherIncome struct {
	SavingsInterest      money.Money `yaml:"savings_interest" json:"savings_interest"`
	FixedDepositInterest money.Money `yaml:"fixed_deposit_interest" json:"fixed_deposit_interest"`
	DividendIncome       money.Money `yaml:"dividend_income" json:"dividend_income"`
	SpeculativeIncome    money.Money `yaml:"speculative_income" json:"speculative_income"`
	OtherSources         money.Money `yaml:"other_sources" json:"other_sources"`
}

// Total sums every other-income field.
func (o OtherIncome) Total() money.Money {
	return money.Sum(
		o.SavingsInterest, o.FixedDepositInterest, o.DividendIncome,
		o.SpeculativeIncome, o.OtherSources,
	)
}

// SlabPortion is the part of other income taxed at slab rates.
func (o OtherIncome) SlabPortion() money.Money {
	return money.Sum(o.SavingsInterest, o.FixedDepositInterest, o.OtherSources)
}

// SpecialPortion is the part taxed at dedicated rates.
func (o OtherIncome) SpecialPortion() money.Money {
	return o.DividendIncome.Add(o.SpeculativeIncome)
}

// houseLossSetOffCap limits the house-property loss usable against other
// heads in one year.
var houseLossSetOffCap = money.MustNew(200000)

// HousePropertyIncome is rental income from one let-out property.
type HousePropertyIncome struct {
	AnnualRentReceived money.Money `yaml:"annual_rent_received" json:"annual_rent_received"`
	MunicipalTaxesPaid money.Money `yaml:"municipal_taxes_paid" json:"municipal_taxes_paid"`
	HomeLoanInterest   money.Money `yaml:"home_loan_interest" json:"home_loan_interest"`
}

// netAnnualValue is rent received less municipal taxes, floored at zero.
func (h HousePropertyIncome) netAnnualValue() money.Money {
	return h.AnnualRentReceived.SubClamped(h.MunicipalTaxesPaid)
}

// NetIncome applies the 30% standard deduction on net annual value and
// subtracts home-loan interest, floored at zero. The shortfall, if any,
// is reported by Loss.
func (h HousePropertyIncome) NetIncome() money.Money {
	afterStandard := h.netAnnualValue().Percentage(decimal.NewFromInt(70))
	return afterStandard.SubClamped(h.HomeLoanInterest)
}

// Loss is the interest shortfall available for set-off against other
// heads, capped at 2,00,000.
func (h HousePropertyIncome) Loss() money.Money {
	afterStandard := h.netAnnualValue().Percentage(decimal.NewFromInt(70))
	loss := h.HomeLoanInterest.SubClamped(afterStandard)
	return money.Min(loss, houseLossSetOffCap)
}

// CapitalGainsIncome splits gains by holding period and by whether the
// concessional 111A/112A rates apply.
type CapitalGainsIncome struct {
	ShortTermGains111A  money.Money `yaml:"short_term_gains_111a" json:"short_term_gains_111a"`
	ShortTermGainsOther money.Money `yaml:"short_term_gains_other" json:"short_term_gains_other"`
	LongTermGains112A   money.Money `yaml:"long_term_gains_112a" json:"long_term_gains_112a"`
	LongTermGainsOther  money.Money `yaml:"long_term_gains_other" json:"long_term_gains_other"`
}

// Total sums all capital gains.
func (c CapitalGainsIncome) Total() money.Money {
	return money.Sum(c.ShortTermGains111A, c.ShortTermGainsOther, c.LongTermGains112A, c.LongTermGainsOther)
}

// SpecialPortion is the part taxed at the dedicated 111A/112A rates.
func (c CapitalGainsIncome) SpecialPortion() money.Money {
	return c.ShortTermGains111A.Add(c.LongTermGains112A)
}

// SlabPortion is the remainder, taxed with ordinary income.
func (c CapitalGainsIncome) SlabPortion() money.Money {
	return c.ShortTermGainsOther.Add(c.LongTermGainsOther)
}
