package goal

import (
	"math"
	"strings"

	"github.com/grafytimes/grafytimes/pkg/worklog"
	"github.com/shopspring/decimal"
)

// Goal is a parsed monthly hour target. Valid is false when no usable goal is configured.
type Goal struct {
	Hours float64
	Valid bool
}

// ParseGoal interprets a raw goal value. Blank, unparseable, negative and out of range values
// yield an invalid Goal.
func ParseGoal(raw string) Goal {
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || value.IsNegative() {
		return Goal{}
	}
	hours := value.InexactFloat64()
	if math.IsNaN(hours) || math.IsInf(hours, 0) {
		return Goal{}
	}
	return Goal{Hours: hours, Valid: true}
}

// usable reports whether the goal can take part in arithmetic.
func (g Goal) usable() bool {
	return g.Valid && !math.IsNaN(g.Hours) && !math.IsInf(g.Hours, 0) && g.Hours >= 0
}

// IsSet reports whether the goal is usable for progress tracking. A zero goal is not.
func (g Goal) IsSet() bool {
	return g.usable() && g.Hours > 0
}

// MonthlyGoal is the goal in effect for a month, with the raw value it was parsed from.
type MonthlyGoal struct {
	YearMonth worklog.YearMonth
	Raw       string
	Goal      Goal
}

// HoursOrZero returns the goal hours, or 0 when the goal is unset.
func (m MonthlyGoal) HoursOrZero() float64 {
	if !m.Goal.usable() {
		return 0
	}
	return m.Goal.Hours
}
