package payroll

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/dispatchly/dispatchly-backend/pkg/db/models"
	"github.com/dispatchly/dispatchly-backend/pkg/enums"
)

func TestDailyRate(t *testing.T) {
	rate := DailyRate(decimal.NewFromInt(600))
	if !rate.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected 100 got %s", rate)
	}
}

func TestMultiplier(t *testing.T) {
	cases := []struct {
		kind enums.AttendanceKind
		want string
	}{
		{enums.AttendanceFullDay, "1"},
		{enums.AttendanceDayAndNight, "1.5"},
		{enums.AttendanceHalfDay, "0.5"},
		{enums.AttendanceAbsence, "0"},
	}
	for _, tc := range cases {
		want, _ := decimal.NewFromString(tc.want)
		if got := Multiplier(tc.kind); !got.Equal(want) {
			t.Fatalf("%s: expected %s got %s", tc.kind, tc.want, got)
		}
	}
}

func TestEarnedTotalRoundsOnceOnTheTotal(t *testing.T) {
	// 100/6 per day; two full days sum to 33.3333... and must round to
	// 33.33, not the 33.34 that per-day rounding would produce.
	weekly := decimal.NewFromInt(100)
	days := []models.WorkerAttendance{
		{Kind: enums.AttendanceFullDay},
		{Kind: enums.AttendanceFullDay},
	}
	got := EarnedTotal(weekly, days)
	want, _ := decimal.NewFromString("33.33")
	if !got.Equal(want) {
		t.Fatalf("expected %s got %s", want, got)
	}
}

func TestEarnedTotalMixedWeek(t *testing.T) {
	weekly := decimal.NewFromInt(700)
	days := []models.WorkerAttendance{
		{Kind: enums.AttendanceFullDay},
		{Kind: enums.AttendanceDayAndNight},
		{Kind: enums.AttendanceHalfDay},
		{Kind: enums.AttendanceAbsence},
	}
	got := EarnedTotal(weekly, days)
	want, _ := decimal.NewFromString("350")
	if !got.Equal(want) {
		t.Fatalf("expected %s got %s", want, got)
	}
}

func TestBalanceSubtractsRoundedTotals(t *testing.T) {
	earned, _ := decimal.NewFromString("350.00")
	paid, _ := decimal.NewFromString("120.50")
	got := Balance(earned, paid)
	want, _ := decimal.NewFromString("229.50")
	if !got.Equal(want) {
		t.Fatalf("expected %s got %s", want, got)
	}
}

func TestBalanceAllowsOverpayment(t *testing.T) {
	got := Balance(decimal.NewFromInt(100), decimal.NewFromInt(150))
	if !got.Equal(decimal.NewFromInt(-50)) {
		t.Fatalf("expected -50 got %s", got)
	}
}

func TestEarnedTotalIsReproducible(t *testing.T) {
	weekly, _ := decimal.NewFromString("512.37")
	days := []models.WorkerAttendance{
		{Kind: enums.AttendanceFullDay},
		{Kind: enums.AttendanceHalfDay},
		{Kind: enums.AttendanceDayAndNight},
		{Kind: enums.AttendanceFullDay},
		{Kind: enums.AttendanceAbsence},
		{Kind: enums.AttendanceFullDay},
	}
	first := EarnedTotal(weekly, days)
	for i := 0; i < 100; i++ {
		if got := EarnedTotal(weekly, days); !got.Equal(first) {
			t.Fatalf("run %d diverged: %s vs %s", i, got, first)
		}
	}
}
