package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vetan/payroll-engine/pkg/money"
)

func TestRentFreeAccommodationValue(t *testing.T) {
	p := Perquisites{RentFreeAccommodation: true}
	base := money.MustNew(660000)

	tests := []struct {
		name       string
		population int64
		expected   string
	}{
		{"above four million", 5_000_000, "99000.00"},
		{"above one million", 2_000_000, "66000.00"},
		{"small city", 500_000, "49500.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, p.RentFreeAccommodationValue(base, tt.population).String())
		})
	}

	none := Perquisites{}
	assert.True(t, none.RentFreeAccommodationValue(base, 5_000_000).IsZero())
}

func TestCarPerquisiteValue(t *testing.T) {
	p := Perquisites{CarValue: money.MustNew(800000), CarPersonalUse: true}
	assert.Equal(t, "20000.00", p.CarPerquisiteValue().String())

	p.CarPersonalUse = false
	assert.Equal(t, "15000.00", p.CarPerquisiteValue().String())

	assert.True(t, Perquisites{}.CarPerquisiteValue().IsZero())
}

func TestESOPPerquisiteValue(t *testing.T) {
	p := Perquisites{
		ESOPFairMarketValue: money.MustNew(500),
		ESOPExercisePrice:   money.MustNew(200),
		ESOPShares:          100,
	}
	assert.Equal(t, "30000.00", p.ESOPPerquisiteValue().String())

	// Underwater options are worth nothing.
	p.ESOPExercisePrice = money.MustNew(600)
	assert.True(t, p.ESOPPerquisiteValue().IsZero())

	p.ESOPShares = 0
	assert.True(t, p.ESOPPerquisiteValue().IsZero())
}

func TestPerquisitesTotal(t *testing.T) {
	p := Perquisites{
		RentFreeAccommodation: true,
		CarValue:              money.MustNew(800000),
		CarPersonalUse:        true,
		OtherPerquisites:      money.MustNew(5000),
	}
	total := p.Total(money.MustNew(660000), 5_000_000)
	assert.Equal(t, "124000.00", total.String())
}
