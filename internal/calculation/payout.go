package calculation

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vetan/payroll-engine/internal/domain"
	"github.com/vetan/payroll-engine/pkg/dateutil"
	"github.com/vetan/payroll-engine/pkg/money"
)

// PayoutStatus tags how a monthly payout was obtained.
type PayoutStatus string

const (
	// PayoutNotComputed marks a projection derived live from the annual
	// taxation record. Nothing has been persisted for the period.
	PayoutNotComputed PayoutStatus = "not_computed"

	// PayoutComputed marks a stored monthly record returned verbatim.
	PayoutComputed PayoutStatus = "computed"
)

// Statutory monthly deduction parameters.
var (
	epfRate        = decimal.NewFromFloat(12)
	epfWageCeiling = money.MustNew(15000)

	esiRate         = decimal.NewFromFloat(0.75)
	esiGrossCeiling = money.MustNew(21000)

	ptLowerThreshold = money.MustNew(10000)
	ptUpperThreshold = money.MustNew(15000)
	ptLowerAmount    = money.MustNew(150)
	ptUpperAmount    = money.MustNew(200)
)

// PayoutEarnings holds the attendance-scaled monthly earning components.
type PayoutEarnings struct {
	Basic             money.Money `json:"basic"`
	DearnessAllowance money.Money `json:"dearness_allowance"`
	HRA               money.Money `json:"hra"`
	LTA               money.Money `json:"lta"`
	SpecialAllowance  money.Money `json:"special_allowance"`
	OtherAllowances   money.Money `json:"other_allowances"`
	Bonus             money.Money `json:"bonus"`
	Commission        money.Money `json:"commission"`
}

// PayoutDeductions holds the statutory deductions recomputed on the scaled
// gross for the month.
type PayoutDeductions struct {
	EPF             money.Money `json:"epf"`
	ESI             money.Money `json:"esi"`
	ProfessionalTax money.Money `json:"professional_tax"`
	TDS             money.Money `json:"tds"`
	Total           money.Money `json:"total"`
}

// MonthlyPayout is the pro-rated pay figure for one employee and period.
type MonthlyPayout struct {
	EmployeeID     string            `json:"employee_id"`
	Month          time.Month        `json:"month"`
	Year           int               `json:"year"`
	Status         PayoutStatus      `json:"status"`
	Attendance     domain.Attendance `json:"attendance"`
	EffectiveRatio decimal.Decimal   `json:"effective_ratio"`
	Earnings       PayoutEarnings    `json:"earnings"`
	GrossPay       money.Money       `json:"gross_pay"`
	Deductions     PayoutDeductions  `json:"deductions"`
	NetPay         money.Money       `json:"net_pay"`
}

// monthlyShare scales an annual component to one month, then by the
// attendance ratio.
func monthlyShare(annual money.Money, ratio decimal.Decimal) money.Money {
	monthly, _ := annual.Div(decimal.NewFromInt(12))
	return monthly.Mul(ratio)
}

// epfDeduction is the employee EPF share: 12% of scaled basic, with the
// contribution base capped at the statutory wage ceiling.
func epfDeduction(scaledBasic money.Money) money.Money {
	return money.Min(scaledBasic, epfWageCeiling).Percentage(epfRate)
}

// esiDeduction applies only while the scaled gross stays within the ESI
// coverage ceiling.
func esiDeduction(scaledGross money.Money) money.Money {
	covered, err := scaledGross.LessThan(esiGrossCeiling)
	if err != nil || (!covered && !scaledGross.Equal(esiGrossCeiling)) {
		return money.Zero()
	}
	return scaledGross.Percentage(esiRate)
}

// professionalTax selects the slab amount by monthly gross.
func professionalTax(scaledGross money.Money) money.Money {
	above, err := scaledGross.GreaterThan(ptUpperThreshold)
	if err == nil && above {
		return ptUpperAmount
	}
	above, err = scaledGross.GreaterThan(ptLowerThreshold)
	if err == nil && above {
		return ptLowerAmount
	}
	return money.Zero()
}

// GetMonthlyPayout projects one month of pay from the annual record. When a
// stored record exists for the period the caller passes it in and it is
// returned verbatim; the read path never persists anything.
func (r *TaxationRecord) GetMonthlyPayout(month time.Month, year int, att domain.Attendance, stored *MonthlyPayout) (MonthlyPayout, error) {
	if stored != nil {
		out := *stored
		out.Status = PayoutComputed
		return out, nil
	}
	if month < time.January || month > time.December {
		return MonthlyPayout{}, fmt.Errorf("payout: invalid month %d", month)
	}
	if att.TotalDays == 0 {
		att.TotalDays = dateutil.DaysInMonth(year, month)
	}
	if err := att.Validate(); err != nil {
		return MonthlyPayout{}, fmt.Errorf("payout: %w", err)
	}

	ratio := att.EffectiveRatio()
	earnings := PayoutEarnings{
		Basic:             monthlyShare(r.salary.Basic, ratio),
		DearnessAllowance: monthlyShare(r.salary.DearnessAllowance, ratio),
		HRA:               monthlyShare(r.salary.HRAReceived, ratio),
		LTA:               monthlyShare(r.salary.LTAReceived, ratio),
		SpecialAllowance:  monthlyShare(r.salary.SpecialAllowance, ratio),
		OtherAllowances:   monthlyShare(r.salary.OtherAllowances, ratio),
		Bonus:             monthlyShare(r.salary.Bonus, ratio),
		Commission:        monthlyShare(r.salary.Commission, ratio),
	}
	gross := money.Sum(
		earnings.Basic, earnings.DearnessAllowance, earnings.HRA,
		earnings.LTA, earnings.SpecialAllowance, earnings.OtherAllowances,
		earnings.Bonus, earnings.Commission,
	)

	// Statutory deductions come off the post-ratio gross, never scaled
	// from pre-computed values: wage ceilings make them non-linear.
	tds, _ := r.GetTaxLiability().Div(decimal.NewFromInt(12))
	deductions := PayoutDeductions{
		EPF:             epfDeduction(earnings.Basic),
		ESI:             esiDeduction(gross),
		ProfessionalTax: professionalTax(gross),
		TDS:             tds,
	}
	deductions.Total = money.Sum(deductions.EPF, deductions.ESI, deductions.ProfessionalTax, deductions.TDS)

	return MonthlyPayout{
		EmployeeID:     r.employeeID,
		Month:          month,
		Year:           year,
		Status:         PayoutNotComputed,
		Attendance:     att,
		EffectiveRatio: ratio,
		Earnings:       earnings,
		GrossPay:       gross,
		Deductions:     deductions,
		NetPay:         gross.SubClamped(deductions.Total),
	}, nil
}
