// Package regime encodes the old and new Indian income-tax regimes as
// immutable policy tables for financial year 2023-24. A computation run is
// reproducible from (inputs, regime tables) alone; nothing here is mutable
// after construction.
package regime

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Variant identifies one of the two mutually exclusive tax regimes.
type Variant string

const (
	Old Variant = "old"
	New Variant = "new"
)

// Section is a statutory deduction-section code.
type Section string

const (
	Section80C     Section = "80C"
	Section80D     Section = "80D"
	Section80TTA   Section = "80TTA"
	Section80U     Section = "80U"
	Section80DDB   Section = "80DDB"
	Section80E     Section = "80E"
	Section80G     Section = "80G"
	Section80CCD1B Section = "80CCD(1B)"
	Section80CCD2  Section = "80CCD(2)"
)

// Slab is one progressive tax bracket. Upper is nil for the final,
// unbounded bracket. Rate is a percentage (5 means 5%).
type Slab struct {
	Lower decimal.Decimal  `yaml:"lower" json:"lower"`
	Upper *decimal.Decimal `yaml:"upper,omitempty" json:"upper,omitempty"`
	Rate  decimal.Decimal  `yaml:"rate" json:"rate"`
}

// SurchargeSlab maps a total-income band to a flat surcharge rate. Unlike
// tax slabs, exactly one surcharge slab applies: the one containing the
// income.
type SurchargeSlab struct {
	Lower decimal.Decimal  `yaml:"lower" json:"lower"`
	Upper *decimal.Decimal `yaml:"upper,omitempty" json:"upper,omitempty"`
	Rate  decimal.Decimal  `yaml:"rate" json:"rate"`
}

// TaxRegime is a pure-data policy table for one regime variant.
type TaxRegime struct {
	variant Variant

	basicExemptionLimit       decimal.Decimal
	seniorExemptionLimit      decimal.Decimal
	superSeniorExemptionLimit decimal.Decimal
	standardDeductionLimit    decimal.Decimal

	slabs          []Slab
	cessRate       decimal.Decimal
	surchargeSlabs []SurchargeSlab

	rebate87ALimit  decimal.Decimal
	rebate87AAmount decimal.Decimal

	allowedSections    map[Section]struct{}
	allowsHRAExemption bool
}

func upper(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// NewOldRegime returns the FY 2023-24 old-regime policy tables.
func NewOldRegime() TaxRegime {
	return TaxRegime{
		variant:                   Old,
		basicExemptionLimit:       decimal.NewFromInt(250000),
		seniorExemptionLimit:      decimal.NewFromInt(300000),
		superSeniorExemptionLimit: decimal.NewFromInt(500000),
		standardDeductionLimit:    decimal.NewFromInt(50000),
		slabs: []Slab{
			{Lower: decimal.Zero, Upper: upper(250000), Rate: decimal.Zero},
			{Lower: decimal.NewFromInt(250000), Upper: upper(500000), Rate: decimal.NewFromInt(5)},
			{Lower: decimal.NewFromInt(500000), Upper: upper(1000000), Rate: decimal.NewFromInt(20)},
			{Lower: decimal.NewFromInt(1000000), Upper: nil, Rate: decimal.NewFromInt(30)},
		},
		cessRate: decimal.NewFromInt(4),
		surchargeSlabs: []SurchargeSlab{
			{Lower: decimal.NewFromInt(5000000), Upper: upper(10000000), Rate: decimal.NewFromInt(10)},
			{Lower: decimal.NewFromInt(10000000), Upper: upper(20000000), Rate: decimal.NewFromInt(15)},
			{Lower: decimal.NewFromInt(20000000), Upper: upper(50000000), Rate: decimal.NewFromInt(25)},
			{Lower: decimal.NewFromInt(50000000), Upper: nil, Rate: decimal.NewFromInt(37)},
		},
		rebate87ALimit:  decimal.NewFromInt(500000),
		rebate87AAmount: decimal.NewFromInt(12500),
		allowedSections: sectionSet(
			Section80C, Section80D, Section80TTA, Section80U, Section80DDB,
			Section80E, Section80G, Section80CCD1B, Section80CCD2,
		),
		allowsHRAExemption: true,
	}
}

// NewNewRegime returns the FY 2023-24 new-regime policy tables. The new
// regime keeps the standard deduction and employer NPS contribution
// (80CCD(2)) but drops every other deduction and the HRA exemption. The
// top surcharge rate is capped at 25%.
func NewNewRegime() TaxRegime {
	return TaxRegime{
		variant:                   New,
		basicExemptionLimit:       decimal.NewFromInt(300000),
		seniorExemptionLimit:      decimal.NewFromInt(300000),
		superSeniorExemptionLimit: decimal.NewFromInt(300000),
		standardDeductionLimit:    decimal.NewFromInt(50000),
		slabs: []Slab{
			{Lower: decimal.Zero, Upper: upper(300000), Rate: decimal.Zero},
			{Lower: decimal.NewFromInt(300000), Upper: upper(600000), Rate: decimal.NewFromInt(5)},
			{Lower: decimal.NewFromInt(600000), Upper: upper(900000), Rate: decimal.NewFromInt(10)},
			{Lower: decimal.NewFromInt(900000), Upper: upper(1200000), Rate: decimal.NewFromInt(15)},
			{Lower: decimal.NewFromInt(1200000), Upper: upper(1500000), Rate: decimal.NewFromInt(20)},
			{Lower: decimal.NewFromInt(1500000), Upper: nil, Rate: decimal.NewFromInt(30)},
		},
		cessRate: decimal.NewFromInt(4),
		surchargeSlabs: []SurchargeSlab{
			{Lower: decimal.NewFromInt(5000000), Upper: upper(10000000), Rate: decimal.NewFromInt(10)},
			{Lower: decimal.NewFromInt(10000000), Upper: upper(20000000), Rate: decimal.NewFromInt(15)},
			{Lower: decimal.NewFromInt(20000000), Upper: nil, Rate: decimal.NewFromInt(25)},
		},
		rebate87ALimit:     decimal.NewFromInt(700000),
		rebate87AAmount:    decimal.NewFromInt(25000),
		allowedSections:    sectionSet(Section80CCD2),
		allowsHRAExemption: false,
	}
}

// ForVariant returns the built-in tables for a variant.
func ForVariant(v Variant) (TaxRegime, error) {
	switch v {
	case Old:
		return NewOldRegime(), nil
	case New:
		return NewNewRegime(), nil
	default:
		return TaxRegime{}, fmt.Errorf("regime: unknown variant %q", v)
	}
}

// Tables is the YAML shape for supplying a regime's policy tables
// explicitly, overriding the built-in year. A Tables value is complete,
// not a patch: every field is used as given.
type Tables struct {
	BasicExemptionLimit       decimal.Decimal `yaml:"basic_exemption_limit" json:"basic_exemption_limit"`
	SeniorExemptionLimit      decimal.Decimal `yaml:"senior_exemption_limit" json:"senior_exemption_limit"`
	SuperSeniorExemptionLimit decimal.Decimal `yaml:"super_senior_exemption_limit" json:"super_senior_exemption_limit"`
	StandardDeductionLimit    decimal.Decimal `yaml:"standard_deduction_limit" json:"standard_deduction_limit"`
	Slabs                     []Slab          `yaml:"slabs" json:"slabs"`
	CessRate                  decimal.Decimal `yaml:"cess_rate" json:"cess_rate"`
	SurchargeSlabs            []SurchargeSlab `yaml:"surcharge_slabs,omitempty" json:"surcharge_slabs,omitempty"`
	Rebate87ALimit            decimal.Decimal `yaml:"rebate_87a_limit" json:"rebate_87a_limit"`
	Rebate87AAmount           decimal.Decimal `yaml:"rebate_87a_amount" json:"rebate_87a_amount"`
	AllowedDeductionSections  []Section       `yaml:"allowed_deduction_sections,omitempty" json:"allowed_deduction_sections,omitempty"`
	AllowsHRAExemption        bool            `yaml:"allows_hra_exemption" json:"allows_hra_exemption"`
}

// FromTables builds a regime from explicit tables and checks the slab
// invariants before returning it.
func FromTables(v Variant, t Tables) (TaxRegime, error) {
	if v != Old && v != New {
		return TaxRegime{}, fmt.Errorf("regime: unknown variant %q", v)
	}
	r := TaxRegime{
		variant:                   v,
		basicExemptionLimit:       t.BasicExemptionLimit,
		seniorExemptionLimit:      t.SeniorExemptionLimit,
		superSeniorExemptionLimit: t.SuperSeniorExemptionLimit,
		standardDeductionLimit:    t.StandardDeductionLimit,
		slabs:                     append([]Slab(nil), t.Slabs...),
		cessRate:                  t.CessRate,
		surchargeSlabs:            append([]SurchargeSlab(nil), t.SurchargeSlabs...),
		rebate87ALimit:            t.Rebate87ALimit,
		rebate87AAmount:           t.Rebate87AAmount,
		allowedSections:           sectionSet(t.AllowedDeductionSections...),
		allowsHRAExemption:        t.AllowsHRAExemption,
	}
	if err := r.Validate(); err != nil {
		return TaxRegime{}, err
	}
	return r, nil
}

func sectionSet(sections ...Section) map[Section]struct{} {
	set := make(map[Section]struct{}, len(sections))
	for _, s := range sections {
		set[s] = struct{}{}
	}
	return set
}

// Variant returns the regime variant tag.
func (r TaxRegime) Variant() Variant {
	return r.variant
}

// TaxSlabs returns the ordered progressive tax slabs.
func (r TaxRegime) TaxSlabs() []Slab {
	out := make([]Slab, len(r.slabs))
	copy(out, r.slabs)
	return out
}

// SlabsForAge returns the tax slabs with the zero-rate bracket widened to
// the taxpayer's basic exemption limit. Only the old regime raises the
// limit for senior (60+) and super-senior (80+) taxpayers.
func (r TaxRegime) SlabsForAge(age int) []Slab {
	limit := r.BasicExemptionLimit(age)
	out := make([]Slab, 0, len(r.slabs))
	for _, s := range r.slabs {
		// Brackets fully below the exemption limit collapse into it.
		if s.Upper != nil && s.Upper.LessThanOrEqual(limit) {
			continue
		}
		adj := s
		if adj.Lower.LessThan(limit) {
			adj.Lower = limit
		}
		out = append(out, adj)
	}
	if len(out) == 0 {
		return out
	}
	// Re-anchor the exempt band as an explicit zero-rate bracket.
	head := Slab{Lower: decimal.Zero, Upper: &limit, Rate: decimal.Zero}
	if out[0].Rate.IsZero() {
		out[0] = Slab{Lower: decimal.Zero, Upper: out[0].Upper, Rate: decimal.Zero}
		return out
	}
	return append([]Slab{head}, out...)
}

// BasicExemptionLimit returns the zero-tax threshold for the given age.
func (r TaxRegime) BasicExemptionLimit(age int) decimal.Decimal {
	switch {
	case age >= 80:
		return r.superSeniorExemptionLimit
	case age >= 60:
		return r.seniorExemptionLimit
	default:
		return r.basicExemptionLimit
	}
}

// StandardDeductionLimit returns the flat salary standard deduction.
func (r TaxRegime) StandardDeductionLimit() decimal.Decimal {
	return r.standardDeductionLimit
}

// SurchargeSlabs returns the ordered surcharge bands.
func (r TaxRegime) SurchargeSlabs() []SurchargeSlab {
	out := make([]SurchargeSlab, len(r.surchargeSlabs))
	copy(out, r.surchargeSlabs)
	return out
}

// SurchargeRate selects the single surcharge rate for a total income: the
// rate of the band containing the income, zero below the first band. This
// is a selection, not a progressive integration.
func (r TaxRegime) SurchargeRate(totalIncome decimal.Decimal) decimal.Decimal {
	rate := decimal.Zero
	for _, s := range r.surchargeSlabs {
		if totalIncome.GreaterThan(s.Lower) && (s.Upper == nil || totalIncome.LessThanOrEqual(*s.Upper)) {
			rate = s.Rate
		}
	}
	return rate
}

// CessRate returns the flat health-and-education cess percentage.
func (r TaxRegime) CessRate() decimal.Decimal {
	return r.cessRate
}

// Rebate87ALimit returns the taxable-income ceiling for the section 87A rebate.
func (r TaxRegime) Rebate87ALimit() decimal.Decimal {
	return r.rebate87ALimit
}

// Rebate87AAmount returns the maximum section 87A rebate.
func (r TaxRegime) Rebate87AAmount() decimal.Decimal {
	return r.rebate87AAmount
}

// AllowedDeductionSections returns the sorted section codes this regime honors.
func (r TaxRegime) AllowedDeductionSections() []Section {
	out := make([]Section, 0, len(r.allowedSections))
	for s := range r.allowedSections {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AllowsSection reports whether a deduction section is honored.
func (r TaxRegime) AllowsSection(s Section) bool {
	_, ok := r.allowedSections[s]
	return ok
}

// Allows80C reports whether section 80C deductions are honored.
func (r TaxRegime) Allows80C() bool { return r.AllowsSection(Section80C) }

// Allows80D reports whether section 80D deductions are honored.
func (r TaxRegime) Allows80D() bool { return r.AllowsSection(Section80D) }

// AllowsHRAExemption reports whether the house-rent-allowance exemption applies.
func (r TaxRegime) AllowsHRAExemption() bool { return r.allowsHRAExemption }

// Validate checks the slab-table invariants: contiguous, non-overlapping,
// monotonically increasing brackets with an unbounded final bracket.
// Built-in tables satisfy this by construction; YAML-supplied overrides
// are checked before use.
func (r TaxRegime) Validate() error {
	if len(r.slabs) == 0 {
		return fmt.Errorf("regime %s: no tax slabs", r.variant)
	}
	if !r.slabs[0].Lower.IsZero() {
		return fmt.Errorf("regime %s: first slab must start at zero", r.variant)
	}
	for i, s := range r.slabs {
		last := i == len(r.slabs)-1
		if last {
			if s.Upper != nil {
				return fmt.Errorf("regime %s: final slab must be unbounded", r.variant)
			}
			continue
		}
		if s.Upper == nil {
			return fmt.Errorf("regime %s: slab %d is unbounded but not final", r.variant, i)
		}
		if s.Upper.LessThanOrEqual(s.Lower) {
			return fmt.Errorf("regime %s: slab %d upper bound %s not above lower bound %s", r.variant, i, s.Upper, s.Lower)
		}
		if !r.slabs[i+1].Lower.Equal(*s.Upper) {
			return fmt.Errorf("regime %s: slab %d and %d are not contiguous", r.variant, i, i+1)
		}
	}
	if r.cessRate.IsNegative() {
		return fmt.Errorf("regime %s: cess rate cannot be negative", r.variant)
	}
	return nil
}
