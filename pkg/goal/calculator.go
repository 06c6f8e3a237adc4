package goal

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// ProgressStatus tells how the hours worked so far compare with the monthly goal.
type ProgressStatus string

const (
	// NotSet means there is no usable goal to compare against.
	NotSet ProgressStatus = "NOT_SET"
	// Completed means the goal has been reached.
	Completed ProgressStatus = "COMPLETED"
	// Ahead means the hours worked are at or above the linear pace for the day.
	Ahead ProgressStatus = "AHEAD"
	// Behind means the hours worked are below the linear pace for the day.
	Behind ProgressStatus = "BEHIND"
)

// ProgressInput is everything needed to judge progress towards a monthly goal on a given day.
// A non-positive DaysInMonth is derived from Today.
type ProgressInput struct {
	Goal        Goal
	WorkedHours float64
	Today       time.Time
	DaysInMonth int
}

type Progress struct {
	Status        ProgressStatus
	DailyRequired float64
	PendingHours  float64
	ExpectedHours float64
	RemainingDays int
}

// DailyRequirement returns the hours per remaining day, today included, needed to reach the
// goal, rounded up to one decimal. The second result is false when no valid goal is configured.
func DailyRequirement(in ProgressInput) (float64, bool) {
	if !in.Goal.usable() {
		return 0, false
	}
	remaining := remainingDays(in)
	if remaining <= 0 {
		return 0, true
	}
	perDay := pendingHours(in).Div(decimal.NewFromInt(int64(remaining))).RoundCeil(1)
	return perDay.InexactFloat64(), true
}

// Status classifies progress towards the goal. It depends only on its input.
func Status(in ProgressInput) ProgressStatus {
	if !in.Goal.IsSet() {
		return NotSet
	}
	worked := workedHours(in)
	if worked.GreaterThanOrEqual(decimal.NewFromFloat(in.Goal.Hours)) {
		return Completed
	}
	if worked.GreaterThanOrEqual(expectedHours(in)) {
		return Ahead
	}
	return Behind
}

// Evaluate computes the status together with the figures it is based on.
func Evaluate(in ProgressInput) Progress {
	daily, ok := DailyRequirement(in)
	if !ok {
		return Progress{Status: NotSet, RemainingDays: max(remainingDays(in), 0)}
	}
	return Progress{
		Status:        Status(in),
		DailyRequired: daily,
		PendingHours:  pendingHours(in).InexactFloat64(),
		ExpectedHours: expectedHours(in).Round(2).InexactFloat64(),
		RemainingDays: max(remainingDays(in), 0),
	}
}

func daysInMonth(in ProgressInput) int {
	if in.DaysInMonth > 0 {
		return in.DaysInMonth
	}
	return time.Date(in.Today.Year(), in.Today.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func remainingDays(in ProgressInput) int {
	return daysInMonth(in) - in.Today.Day() + 1
}

// workedHours treats non-finite and negative input as nothing worked.
func workedHours(in ProgressInput) decimal.Decimal {
	if math.IsNaN(in.WorkedHours) || math.IsInf(in.WorkedHours, 0) || in.WorkedHours < 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(in.WorkedHours)
}

func pendingHours(in ProgressInput) decimal.Decimal {
	pending := decimal.NewFromFloat(in.Goal.Hours).Sub(workedHours(in))
	if pending.IsNegative() {
		return decimal.Zero
	}
	return pending
}

func expectedHours(in ProgressInput) decimal.Decimal {
	return decimal.NewFromFloat(in.Goal.Hours).
		Mul(decimal.NewFromInt(int64(in.Today.Day()))).
		Div(decimal.NewFromInt(int64(daysInMonth(in))))
}
