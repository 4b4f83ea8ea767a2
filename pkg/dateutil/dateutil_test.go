package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, DaysInMonth(2023, time.July))
	assert.Equal(t, 30, DaysInMonth(2023, time.April))
	assert.Equal(t, 28, DaysInMonth(2023, time.February))
	assert.Equal(t, 29, DaysInMonth(2024, time.February))
	assert.Equal(t, 31, DaysInMonth(2023, time.December))
}

func TestFinancialYearForDate(t *testing.T) {
	assert.Equal(t, "2023-24", FinancialYearForDate(time.Date(2023, time.April, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2023-24", FinancialYearForDate(time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-25", FinancialYearForDate(time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)))
}

func TestMonthWithinFinancialYear(t *testing.T) {
	assert.True(t, MonthWithinFinancialYear(2023, 2023, time.July))
	assert.True(t, MonthWithinFinancialYear(2023, 2024, time.February))
	assert.False(t, MonthWithinFinancialYear(2023, 2023, time.February))
	assert.False(t, MonthWithinFinancialYear(2023, 2024, time.July))
}
