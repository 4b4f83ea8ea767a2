package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vetan/payroll-engine/pkg/money"
)

func TestOtherIncomePortions(t *testing.T) {
	o := OtherIncome{
		SavingsInterest:      money.MustNew(8000),
		FixedDepositInterest: money.MustNew(20000),
		DividendIncome:       money.MustNew(15000),
		SpeculativeIncome:    money.MustNew(10000),
		OtherSources:         money.MustNew(5000),
	}
	assert.Equal(t, "58000.00", o.Total().String())
	assert.Equal(t, "33000.00", o.SlabPortion().String())
	assert.Equal(t, "25000.00", o.SpecialPortion().String())
}

func TestHousePropertyNetIncome(t *testing.T) {
	h := HousePropertyIncome{
		AnnualRentReceived: money.MustNew(360000),
		MunicipalTaxesPaid: money.MustNew(10000),
		HomeLoanInterest:   money.MustNew(100000),
	}
	// NAV 350000, 30% standard deduction leaves 245000, less interest.
	assert.Equal(t, "145000.00", h.NetIncome().String())
	assert.True(t, h.Loss().IsZero())
}

func TestHousePropertyLossCapped(t *testing.T) {
	h := HousePropertyIncome{
		AnnualRentReceived: money.MustNew(120000),
		HomeLoanInterest:   money.MustNew(400000),
	}
	// 84000 after standard deduction, 400000 interest: loss 316000 caps at 200000.
	assert.True(t, h.NetIncome().IsZero())
	assert.Equal(t, "200000.00", h.Loss().String())
}

func TestCapitalGainsPortions(t *testing.T) {
	c := CapitalGainsIncome{
		ShortTermGains111A:  money.MustNew(50000),
		ShortTermGainsOther: money.MustNew(20000),
		LongTermGains112A:   money.MustNew(150000),
		LongTermGainsOther:  money.MustNew(30000),
	}
	assert.Equal(t, "250000.00", c.Total().String())
	assert.Equal(t, "200000.00", c.SpecialPortion().String())
	assert.Equal(t, "50000.00", c.SlabPortion().String())
}
