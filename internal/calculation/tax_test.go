package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vetan/payroll-engine/internal/domain"
	"github.com/vetan/payroll-engine/internal/regime"
	"github.com/vetan/payroll-engine/pkg/money"
)

func testRecord(t *testing.T, variant regime.Variant, mutate func(*TaxationInput)) *TaxationRecord {
	t.Helper()
	reg, err := regime.ForVariant(variant)
	require.NoError(t, err)
	in := TaxationInput{
		EmployeeID:    "EMP001",
		FinancialYear: "2023-24",
		Regime:        reg,
		Profile:       domain.TaxpayerProfile{EmployeeID: "EMP001", Age: 30},
	}
	if mutate != nil {
		mutate(&in)
	}
	record, err := NewTaxationRecord(in)
	require.NoError(t, err)
	return record
}

func TestProgressiveTaxBoundaries(t *testing.T) {
	slabs := regime.NewNewRegime().TaxSlabs()
	tests := []struct {
		name     string
		income   string
		expected string
	}{
		{"zero income", "0", "0"},
		{"at exemption boundary", "300000", "0"},
		{"just past exemption", "300000.01", "0"},
		{"at second boundary", "600000", "15000"},
		{"mid third bracket", "750000", "30000"},
		{"at third boundary", "900000", "45000"},
		{"top bracket", "2000000", "300000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tax, _ := progressiveTax(decimal.RequireFromString(tt.income), slabs)
			assert.True(t, tax.Equal(decimal.RequireFromString(tt.expected)), "got %s", tax)
		})
	}
}

func TestProgressiveTaxMonotonicAndLinearAtTop(t *testing.T) {
	slabs := regime.NewOldRegime().TaxSlabs()
	prev := decimal.Zero
	for _, income := range []int64{0, 100000, 250000, 250001, 400000, 500000, 500001, 900000, 1000000, 1000001, 5000000} {
		tax, _ := progressiveTax(decimal.NewFromInt(income), slabs)
		assert.True(t, tax.GreaterThanOrEqual(prev), "tax decreased at income %d", income)
		prev = tax
	}

	// Inside the unbounded bracket, delta tax is exactly rate * delta.
	atTwoM, _ := progressiveTax(decimal.NewFromInt(2000000), slabs)
	atTwoOneM, _ := progressiveTax(decimal.NewFromInt(2100000), slabs)
	assert.True(t, atTwoOneM.Sub(atTwoM).Equal(decimal.NewFromInt(30000)))
}

func TestProgressiveTaxStatements(t *testing.T) {
	_, statements := progressiveTax(decimal.NewFromInt(750000), regime.NewNewRegime().TaxSlabs())
	require.Len(t, statements, 6)
	assert.Equal(t, "15000.00", statements[1].Tax.String())
	assert.Equal(t, "15000.00", statements[2].Tax.String())
	assert.True(t, statements[3].Tax.IsZero())
}

func TestSpecialIncomeRates(t *testing.T) {
	record := testRecord(t, regime.New, func(in *TaxationInput) {
		in.CapitalGains = domain.CapitalGainsIncome{
			ShortTermGains111A: money.MustNew(100000),
			LongTermGains112A:  money.MustNew(300000),
		}
		in.OtherIncome = domain.OtherIncome{
			DividendIncome:    money.MustNew(100000),
			SpeculativeIncome: money.MustNew(50000),
		}
	})
	assert.Equal(t, "15000.00", record.taxOnSTCG().String())
	// 112A taxes only the gain above the one lakh exemption.
	assert.Equal(t, "20000.00", record.taxOnLTCG().String())
	assert.Equal(t, "10000.00", record.taxOnDividend().String())
	assert.Equal(t, "15000.00", record.taxOnSpeculative().String())
}

func TestTaxLiabilitySlabPlusSpecial(t *testing.T) {
	record := testRecord(t, regime.New, func(in *TaxationInput) {
		in.Salary = domain.SalaryIncome{Basic: money.MustNew(550000)}
		in.CapitalGains = domain.CapitalGainsIncome{
			ShortTermGains111A: money.MustNew(100000),
			LongTermGains112A:  money.MustNew(300000),
		}
		in.OtherIncome = domain.OtherIncome{DividendIncome: money.MustNew(100000)}
	})

	// Income 1050000, standard deduction 50000: taxable 1000000, of which
	// 500000 is special-rate income and 500000 walks the slabs.
	assert.Equal(t, "1000000.00", record.GetTaxableIncome().String())
	parts := record.liability()
	assert.Equal(t, "500000.00", parts.SlabIncome.String())
	assert.Equal(t, "10000.00", parts.SlabTax.String())
	assert.Equal(t, "45000.00", parts.Special.total().String())
	assert.True(t, parts.Rebate.IsZero())
	assert.Equal(t, "2200.00", parts.Cess.String())
	assert.Equal(t, "57200.00", parts.Total.String())
}

func TestRebate87ABoundary(t *testing.T) {
	// Taxable lands exactly on the 700000 threshold: full rebate.
	atLimit := testRecord(t, regime.New, func(in *TaxationInput) {
		in.Salary = domain.SalaryIncome{Basic: money.MustNew(750000)}
	})
	require.Equal(t, "700000.00", atLimit.GetTaxableIncome().String())
	assert.True(t, atLimit.GetTaxLiability().IsZero())

	// One rupee-cent past the threshold loses the rebate entirely.
	pastLimit := testRecord(t, regime.New, func(in *TaxationInput) {
		in.Salary = domain.SalaryIncome{Basic: money.MustNew(750000.01)}
	})
	require.Equal(t, "700000.01", pastLimit.GetTaxableIncome().String())
	assert.Equal(t, "26000.00", pastLimit.GetTaxLiability().String())
}

func TestRebate87AOldRegime(t *testing.T) {
	record := testRecord(t, regime.Old, func(in *TaxationInput) {
		in.Salary = domain.SalaryIncome{Basic: money.MustNew(550000)}
	})
	// Taxable 500000: slab tax 12500 is fully absorbed by the rebate.
	require.Equal(t, "500000.00", record.GetTaxableIncome().String())
	assert.True(t, record.GetTaxLiability().IsZero())
}

func TestRegimeGating80C(t *testing.T) {
	declare := func(in *TaxationInput) {
		in.Salary = domain.SalaryIncome{Basic: money.MustNew(1000000)}
		in.Deductions = domain.TaxDeductions{LifeInsurancePremium: money.MustNew(150000)}
	}
	old := testRecord(t, regime.Old, declare)
	assert.Equal(t, "800000.00", old.GetTaxableIncome().String())

	// The same declaration has zero effect under the new regime.
	niu := testRecord(t, regime.New, declare)
	assert.Equal(t, "950000.00", niu.GetTaxableIncome().String())
}

func TestHRAExemptionGatedByRegime(t *testing.T) {
	declare := func(in *TaxationInput) {
		in.Salary = domain.SalaryIncome{
			Basic:       money.MustNew(600000),
			HRAReceived: money.MustNew(240000),
		}
		in.Profile.MetroCity = true
		in.Profile.AnnualRentPaid = money.MustNew(300000)
	}
	old := testRecord(t, regime.Old, declare)
	assert.Equal(t, "240000.00", old.GetTotalExemptions().String())

	niu := testRecord(t, regime.New, declare)
	assert.True(t, niu.GetTotalExemptions().IsZero())
}

func TestSeniorCitizenExemptionOldRegime(t *testing.T) {
	senior := testRecord(t, regime.Old, func(in *TaxationInput) {
		in.Salary = domain.SalaryIncome{Basic: money.MustNew(350000)}
		in.Profile.Age = 65
	})
	// Taxable 300000 sits entirely inside the senior exemption.
	require.Equal(t, "300000.00", senior.GetTaxableIncome().String())
	assert.True(t, senior.GetTaxLiability().IsZero())
}

func TestSurchargeSelection(t *testing.T) {
	record := testRecord(t, regime.Old, func(in *TaxationInput) {
		in.Salary = domain.SalaryIncome{Basic: money.MustNew(7050000)}
	})
	parts := record.liability()
	// Taxable 7000000 lands in the 10% surcharge band.
	assert.True(t, parts.SurchargeRate.Equal(decimal.NewFromInt(10)))
	// Slab tax 1912500, surcharge 191250, cess on the sum.
	assert.Equal(t, "1912500.00", parts.SlabTax.String())
	assert.Equal(t, "191250.00", parts.Surcharge.String())
	assert.Equal(t, "84150.00", parts.Cess.String())
	assert.Equal(t, "2187900.00", parts.Total.String())
}

func TestRegimeComparison(t *testing.T) {
	record := testRecord(t, regime.Old, func(in *TaxationInput) {
		in.Salary = domain.SalaryIncome{Basic: money.MustNew(1200000)}
	})
	cmp, err := record.GetRegimeComparison()
	require.NoError(t, err)

	assert.Equal(t, "163800.00", cmp.Old.TaxLiability.String())
	assert.Equal(t, "85800.00", cmp.New.TaxLiability.String())
	assert.Equal(t, regime.New, cmp.RecommendedRegime)
	assert.Equal(t, "78000.00", cmp.AnnualSavings.String())
}

func TestRegimeComparisonTieFavorsOld(t *testing.T) {
	record := testRecord(t, regime.New, nil)
	cmp, err := record.GetRegimeComparison()
	require.NoError(t, err)

	assert.True(t, cmp.Old.TaxLiability.IsZero())
	assert.True(t, cmp.New.TaxLiability.IsZero())
	assert.Equal(t, regime.Old, cmp.RecommendedRegime)
	assert.True(t, cmp.AnnualSavings.IsZero())
}

func TestRegimeComparisonDeterministic(t *testing.T) {
	record := testRecord(t, regime.Old, func(in *TaxationInput) {
		in.Salary = domain.SalaryIncome{Basic: money.MustNew(987654.32)}
		in.Deductions = domain.TaxDeductions{PPFContribution: money.MustNew(100000)}
	})
	first, err := record.GetRegimeComparison()
	require.NoError(t, err)
	second, err := record.GetRegimeComparison()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEffectiveRatePercent(t *testing.T) {
	record := testRecord(t, regime.New, func(in *TaxationInput) {
		in.Salary = domain.SalaryIncome{Basic: money.MustNew(1250000)}
	})
	// Liability 93600 on income 1250000 is 7.49%.
	require.Equal(t, "93600.00", record.GetTaxLiability().String())
	assert.True(t, record.EffectiveRatePercent().Equal(decimal.NewFromFloat(7.49)))

	empty := testRecord(t, regime.New, nil)
	assert.True(t, empty.EffectiveRatePercent().IsZero())
}

func TestNewTaxationRecordValidation(t *testing.T) {
	reg := regime.NewOldRegime()
	_, err := NewTaxationRecord(TaxationInput{FinancialYear: "2023-24", Regime: reg})
	assert.Error(t, err)

	_, err = NewTaxationRecord(TaxationInput{EmployeeID: "E1", FinancialYear: "2023", Regime: reg})
	assert.Error(t, err)

	record, err := NewTaxationRecord(TaxationInput{EmployeeID: "E1", FinancialYear: "2023-24", Regime: reg})
	require.NoError(t, err)
	assert.Equal(t, "2024-25", record.AssessmentYear())
}
