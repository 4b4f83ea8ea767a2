// Package dateutil provides the calendar helpers payroll periods need.
package dateutil

import (
	"fmt"
	"time"
)

// DaysInMonth returns the number of calendar days in a month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FinancialYearForDate returns the Indian financial year ("2023-24")
// containing the date. The financial year runs April through March.
func FinancialYearForDate(t time.Time) string {
	start := t.Year()
	if t.Month() < time.April {
		start--
	}
	return fmt.Sprintf("%d-%02d", start, (start+1)%100)
}

// MonthWithinFinancialYear reports whether a (year, month) period falls in
// the given financial year start year.
func MonthWithinFinancialYear(fyStartYear, year int, month time.Month) bool {
	if month >= time.April {
		return year == fyStartYear
	}
	return year == fyStartYear+1
}
