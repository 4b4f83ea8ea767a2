package output

import (
	"bytes"
	"fmt"
)

// ConsoleFormatter renders a concise per-employee summary: tax breakdown,
// regime comparison and a payslip-style payout table.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(result *Result) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "PAYROLL COMPUTATION: %s (FY %s)\n", result.Organization, result.FinancialYear)
	fmt.Fprintln(&buf, "================================================")

	for _, emp := range result.Employees {
		b := emp.Breakdown
		fmt.Fprintf(&buf, "\nEmployee %s  regime=%s  AY %s\n", b.EmployeeID, b.Regime, b.AssessmentYear)
		fmt.Fprintf(&buf, "  Gross Income:      %s\n", b.Income.Total.Format())
		fmt.Fprintf(&buf, "  Exemptions:        %s\n", b.Exemptions.Total.Format())
		fmt.Fprintf(&buf, "  Deductions:        %s (standard %s)\n", b.TotalDeductions.Format(), b.StandardDeduction.Format())
		for _, d := range b.Deductions {
			mark := " "
			if !d.Honored {
				mark = "x"
			}
			fmt.Fprintf(&buf, "    [%s] %-10s %s\n", mark, d.Section, d.Allowed.Format())
		}
		fmt.Fprintf(&buf, "  Taxable Income:    %s\n", b.TaxableIncome.Format())
		for _, s := range b.SlabStatements {
			if s.TaxableAmount.IsZero() {
				continue
			}
			upper := "above"
			if s.Upper != nil {
				upper = s.Upper.Format()
			}
			fmt.Fprintf(&buf, "    slab %s to %s @%s%%: %s\n", s.Lower.Format(), upper, s.RatePercent, s.Tax.Format())
		}
		if !b.SpecialTax.Total.IsZero() {
			fmt.Fprintf(&buf, "  Special-rate Tax:  %s\n", b.SpecialTax.Total.Format())
		}
		if !b.Rebate87A.IsZero() {
			fmt.Fprintf(&buf, "  Rebate 87A:        -%s\n", b.Rebate87A.Format())
		}
		if !b.Surcharge.IsZero() {
			fmt.Fprintf(&buf, "  Surcharge @%s%%:    %s\n", b.SurchargeRate, b.Surcharge.Format())
		}
		fmt.Fprintf(&buf, "  Cess:              %s\n", b.Cess.Format())
		fmt.Fprintf(&buf, "  TOTAL LIABILITY:   %s  (effective %s%%)\n", b.TotalLiability.Format(), b.EffectiveRatePercent)

		if cmp := emp.Comparison; cmp != nil {
			fmt.Fprintf(&buf, "  Regimes: old=%s new=%s -> %s (saves %s)\n",
				cmp.Old.TaxLiability.Format(), cmp.New.TaxLiability.Format(),
				cmp.RecommendedRegime, cmp.AnnualSavings.Format())
		}

		if p := emp.Payout; p != nil {
			fmt.Fprintf(&buf, "  Payout %d-%02d [%s] ratio=%s\n", p.Year, int(p.Month), p.Status, p.EffectiveRatio)
			fmt.Fprintf(&buf, "    Gross: %s\n", p.GrossPay.Format())
			fmt.Fprintf(&buf, "    EPF %s  ESI %s  PT %s  TDS %s\n",
				p.Deductions.EPF.Format(), p.Deductions.ESI.Format(),
				p.Deductions.ProfessionalTax.Format(), p.Deductions.TDS.Format())
			fmt.Fprintf(&buf, "    NET PAY: %s\n", p.NetPay.Format())
		}
	}

	if len(result.Failures) > 0 {
		fmt.Fprintln(&buf, "\nFailures:")
		for _, f := range result.Failures {
			fmt.Fprintf(&buf, "  - %s\n", f)
		}
	}
	return buf.Bytes(), nil
}
