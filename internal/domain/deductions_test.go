package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vetan/payroll-engine/internal/regime"
	"github.com/vetan/payroll-engine/pkg/money"
)

func TestCalculate80CLimitCaps(t *testing.T) {
	d := TaxDeductions{LifeInsurancePremium: money.MustNew(200000)}
	assert.Equal(t, "150000.00", d.Calculate80CLimit().String())

	d = TaxDeductions{
		PPFContribution: money.MustNew(50000),
		ELSSInvestment:  money.MustNew(60000),
	}
	assert.Equal(t, "110000.00", d.Calculate80CLimit().String())
}

func TestCalculate80DLimit(t *testing.T) {
	d := TaxDeductions{
		HealthInsuranceSelf:    money.MustNew(30000),
		HealthInsuranceParents: money.MustNew(40000),
	}
	assert.Equal(t, "25000.00", d.Calculate80DLimit(false).String())
	assert.Equal(t, "50000.00", d.Calculate80DLimit(true).String())
}

func TestCalculate80TTALimit(t *testing.T) {
	d := TaxDeductions{SavingsAccountInterest: money.MustNew(14000)}
	assert.Equal(t, "10000.00", d.Calculate80TTALimit().String())
}

func TestCalculate80ULimit(t *testing.T) {
	var d TaxDeductions
	tests := []struct {
		name       string
		disability int
		expected   string
	}{
		{"below threshold", 39, "0.00"},
		{"moderate disability", 40, "75000.00"},
		{"upper moderate", 79, "75000.00"},
		{"severe disability", 80, "125000.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, d.Calculate80ULimit(tt.disability).String())
		})
	}
}

func TestCalculate80DDBLimit(t *testing.T) {
	d := TaxDeductions{MedicalTreatmentCost: money.MustNew(120000)}
	// Ceiling depends on age alone.
	assert.Equal(t, "100000.00", d.Calculate80DDBLimit(65, 40).String())
	assert.Equal(t, "40000.00", d.Calculate80DDBLimit(45, 40).String())

	// Actual expense below the ceiling wins.
	d = TaxDeductions{MedicalTreatmentCost: money.MustNew(30000)}
	assert.Equal(t, "30000.00", d.Calculate80DDBLimit(65, 0).String())
}

func TestCalculate80CCD1BLimit(t *testing.T) {
	d := TaxDeductions{NPSContribution: money.MustNew(70000)}
	assert.Equal(t, "50000.00", d.Calculate80CCD1BLimit().String())
}

func TestSectionAmountEmployerNPS(t *testing.T) {
	var d TaxDeductions
	nps := money.MustNew(80000)
	got := d.SectionAmount(regime.Section80CCD2, TaxpayerProfile{Age: 30}, nps)
	assert.True(t, got.Equal(nps))
}

func TestTotalForRegimeGating(t *testing.T) {
	d := TaxDeductions{
		LifeInsurancePremium:   money.MustNew(150000),
		HealthInsuranceSelf:    money.MustNew(25000),
		SavingsAccountInterest: money.MustNew(10000),
	}
	profile := TaxpayerProfile{Age: 35}
	nps := money.MustNew(60000)

	old := d.TotalForRegime(regime.NewOldRegime(), profile, nps)
	assert.Equal(t, "245000.00", old.String())

	// The new regime honors only the employer NPS contribution.
	niu := d.TotalForRegime(regime.NewNewRegime(), profile, nps)
	assert.True(t, niu.Equal(nps))
}
