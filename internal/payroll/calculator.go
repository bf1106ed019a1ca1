package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/dispatchly/dispatchly-backend/pkg/db/models"
	"github.com/dispatchly/dispatchly-backend/pkg/enums"
)

// Workers are paid on a six-day week.
var workDaysPerWeek = decimal.NewFromInt(6)

// DailyRate returns the per-day base rate for a weekly payment.
func DailyRate(weeklyPayment decimal.Decimal) decimal.Decimal {
	return weeklyPayment.Div(workDaysPerWeek)
}

// Multiplier maps an attendance kind to its pay multiplier. An unrecorded
// day never reaches this function; it contributes nothing, same as absence.
func Multiplier(kind enums.AttendanceKind) decimal.Decimal {
	switch kind {
	case enums.AttendanceFullDay:
		return decimal.NewFromInt(1)
	case enums.AttendanceDayAndNight:
		return decimal.NewFromFloat(1.5)
	case enums.AttendanceHalfDay:
		return decimal.NewFromFloat(0.5)
	default:
		return decimal.Zero
	}
}

// EarnedTotal sums attendance-derived earnings and rounds the total to two
// places. Rounding happens on the total, before any subtraction, so repeated
// small additions cannot drift the final balance.
func EarnedTotal(weeklyPayment decimal.Decimal, days []models.WorkerAttendance) decimal.Decimal {
	rate := DailyRate(weeklyPayment)
	total := decimal.Zero
	for _, day := range days {
		total = total.Add(rate.Mul(Multiplier(day.Kind)))
	}
	return total.Round(2)
}

// PaidTotal sums payments and rounds the total to two places.
func PaidTotal(payments []models.WorkerPayment) decimal.Decimal {
	total := decimal.Zero
	for _, payment := range payments {
		total = total.Add(payment.Amount)
	}
	return total.Round(2)
}

// Balance subtracts the rounded totals. Both inputs are re-rounded so the
// result is reproducible regardless of how callers built them.
func Balance(earned, paid decimal.Decimal) decimal.Decimal {
	return earned.Round(2).Sub(paid.Round(2))
}
