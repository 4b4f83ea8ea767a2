package domain

import (
	"github.com/shopspring/decimal"

	"github.com/vetan/payroll-engine/pkg/money"
)

// Perquisites are the non-cash benefits an employer provides, valued per
// the statutory formulas. Valuations are pure functions of their inputs.
type Perquisites struct {
	// Rent-free accommodation: valued as a percentage of basic+DA keyed
	// by city population.
	RentFreeAccommodation bool `yaml:"rent_free_accommodation" json:"rent_free_accommodation"`

	// Employer-provided car.
	CarValue       money.Money `yaml:"car_value,omitempty" json:"car_value,omitempty"`
	CarPersonalUse bool        `yaml:"car_personal_use" json:"car_personal_use"`

	// ESOP exercise during the year.
	ESOPFairMarketValue money.Money `yaml:"esop_fair_market_value,omitempty" json:"esop_fair_market_value,omitempty"`
	ESOPExercisePrice   money.Money `yaml:"esop_exercise_price,omitempty" json:"esop_exercise_price,omitempty"`
	ESOPShares          int64       `yaml:"esop_shares,omitempty" json:"esop_shares,omitempty"`

	// Already-valued perquisites reported as-is (concessional loans,
	// club memberships and the like).
	OtherPerquisites money.Money `yaml:"other_perquisites,omitempty" json:"other_perquisites,omitempty"`
}

// Population tiers for accommodation valuation.
const (
	metroPopulation = 4_000_000
	largePopulation = 1_000_000
)

// RentFreeAccommodationValue values employer accommodation as 15% of
// basic+DA in cities above 4M people, 10% above 1M, and 7.5% otherwise.
func (p Perquisites) RentFreeAccommodationValue(basicPlusDA money.Money, cityPopulation int64) money.Money {
	if !p.RentFreeAccommodation {
		return money.Zero()
	}
	switch {
	case cityPopulation > metroPopulation:
		return basicPlusDA.Percentage(decimal.NewFromInt(15))
	case cityPopulation > largePopulation:
		return basicPlusDA.Percentage(decimal.NewFromInt(10))
	default:
		return basicPlusDA.Percentage(decimal.NewFromFloat(7.5))
	}
}

// CarPerquisiteValue values an employer car at 2.5% of car value when the
// employee has personal use, 1.875% for mixed official use.
func (p Perquisites) CarPerquisiteValue() money.Money {
	if p.CarValue.IsZero() {
		return money.Zero()
	}
	if p.CarPersonalUse {
		return p.CarValue.Percentage(decimal.NewFromFloat(2.5))
	}
	return p.CarValue.Percentage(decimal.NewFromFloat(1.875))
}

// ESOPPerquisiteValue is (fair market value - exercise price) * shares
// when FMV exceeds the exercise price, else zero.
func (p Perquisites) ESOPPerquisiteValue() money.Money {
	if p.ESOPShares <= 0 {
		return money.Zero()
	}
	gain := p.ESOPFairMarketValue.SubClamped(p.ESOPExercisePrice)
	return gain.Mul(decimal.NewFromInt(p.ESOPShares))
}

// Total sums every perquisite valuation for the year.
func (p Perquisites) Total(basicPlusDA money.Money, cityPopulation int64) money.Money {
	return money.Sum(
		p.RentFreeAccommodationValue(basicPlusDA, cityPopulation),
		p.CarPerquisiteValue(),
		p.ESOPPerquisiteValue(),
		p.OtherPerquisites,
	)
}
