package worklog

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// YearMonth identifies a calendar month, e.g. 2024-06.
type YearMonth struct {
	Year  int
	Month time.Month
}

func YearMonthOf(date time.Time) YearMonth {
	return YearMonth{Year: date.Year(), Month: date.Month()}
}

// ParseYearMonth converts "YYYY-MM" to YearMonth.
func ParseYearMonth(s string) (YearMonth, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 2 || len(parts[0]) != 4 || len(parts[1]) != 2 {
		return YearMonth{}, fmt.Errorf("invalid year-month format: %q", s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return YearMonth{}, fmt.Errorf("invalid year: %w", err)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return YearMonth{}, fmt.Errorf("invalid month: %w", err)
	}
	if month < 1 || month > 12 {
		return YearMonth{}, fmt.Errorf("month out of range: %d", month)
	}
	return YearMonth{Year: year, Month: time.Month(month)}, nil
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

func (ym YearMonth) IsZero() bool {
	return ym.Year == 0 && ym.Month == 0
}

// FirstDay returns midnight UTC of the first day of the month.
func (ym YearMonth) FirstDay() time.Time {
	return time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, time.UTC)
}

// LastDay returns midnight UTC of the last day of the month.
func (ym YearMonth) LastDay() time.Time {
	return ym.FirstDay().AddDate(0, 1, -1)
}

func (ym YearMonth) DaysIn() int {
	return ym.LastDay().Day()
}

func (ym YearMonth) AddMonths(n int) YearMonth {
	return YearMonthOf(ym.FirstDay().AddDate(0, n, 0))
}

// Contains reports whether date falls within the month, judged by its calendar date.
func (ym YearMonth) Contains(date time.Time) bool {
	return date.Year() == ym.Year && date.Month() == ym.Month
}

func (ym YearMonth) Before(other YearMonth) bool {
	if ym.Year != other.Year {
		return ym.Year < other.Year
	}
	return ym.Month < other.Month
}

func (ym YearMonth) After(other YearMonth) bool {
	return other.Before(ym)
}
