package domain

import (
	"github.com/shopspring/decimal"

	"github.com/vetan/payroll-engine/pkg/money"
)

// Statutory exemption ceilings for retirement benefits, FY 2023-24.
var (
	gratuityExemptionCap = money.MustNew(2000000)
	leaveEncashmentCap   = money.MustNew(300000)
	vrsExemptionCap      = money.MustNew(500000)
)

// RetirementBenefits records terminal payouts received during the year.
// Government employees enjoy full exemption on gratuity, leave encashment
// and commuted pension; others get the capped statutory exemptions.
type RetirementBenefits struct {
	GratuityReceived        money.Money `yaml:"gratuity_received" json:"gratuity_received"`
	LeaveEncashmentReceived money.Money `yaml:"leave_encashment_received" json:"leave_encashment_received"`
	CommutedPension         money.Money `yaml:"commuted_pension" json:"commuted_pension"`
	VRSCompensation         money.Money `yaml:"vrs_compensation" json:"vrs_compensation"`

	// Inputs to the gratuity exemption formula.
	YearsOfService   int         `yaml:"years_of_service,omitempty" json:"years_of_service,omitempty"`
	LastDrawnMonthly money.Money `yaml:"last_drawn_monthly,omitempty" json:"last_drawn_monthly,omitempty"`
}

// Total sums every benefit received.
func (r RetirementBenefits) Total() money.Money {
	return money.Sum(r.GratuityReceived, r.LeaveEncashmentReceived, r.CommutedPension, r.VRSCompensation)
}

// GratuityExemption is the least of gratuity received, the 20,00,000
// statutory cap, and 15 days of last-drawn salary per year of service.
// Government employees are fully exempt.
func (r RetirementBenefits) GratuityExemption(governmentEmployee bool) money.Money {
	if r.GratuityReceived.IsZero() {
		return money.Zero()
	}
	if governmentEmployee {
		return r.GratuityReceived
	}
	// 15/26 of monthly salary per completed year of service.
	formulaCap := r.LastDrawnMonthly.
		Mul(decimal.NewFromInt(15)).
		Mul(decimal.NewFromInt(int64(r.YearsOfService)))
	formulaCap, _ = formulaCap.Div(decimal.NewFromInt(26))
	return money.Min(r.GratuityReceived, money.Min(gratuityExemptionCap, formulaCap))
}

// LeaveEncashmentExemption caps at 3,00,000 for non-government employees.
func (r RetirementBenefits) LeaveEncashmentExemption(governmentEmployee bool) money.Money {
	if governmentEmployee {
		return r.LeaveEncashmentReceived
	}
	return money.Min(r.LeaveEncashmentReceived, leaveEncashmentCap)
}

// CommutedPensionExemption: fully exempt for government employees, one
// third otherwise (employee also receiving gratuity).
func (r RetirementBenefits) CommutedPensionExemption(governmentEmployee bool) money.Money {
	if governmentEmployee {
		return r.CommutedPension
	}
	exempt, _ := r.CommutedPension.Div(decimal.NewFromInt(3))
	return exempt
}

// VRSExemption caps voluntary-retirement compensation at 5,00,000.
func (r RetirementBenefits) VRSExemption() money.Money {
	return money.Min(r.VRSCompensation, vrsExemptionCap)
}

// TotalExemptions sums the exempt portions of every benefit.
func (r RetirementBenefits) TotalExemptions(governmentEmployee bool) money.Money {
	return money.Sum(
		r.GratuityExemption(governmentEmployee),
		r.LeaveEncashmentExemption(governmentEmployee),
		r.CommutedPensionExemption(governmentEmployee),
		r.VRSExemption(),
	)
}
