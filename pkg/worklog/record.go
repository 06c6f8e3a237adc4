package worklog

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

var ErrInvalidRecord = errors.New("invalid work record")
var ErrRecordNotFound = errors.New("work record not found")

// WorkRecord is a single logged entry of service hours. Blank ActivityType and StudyId make it
// a generic entry.
type WorkRecord struct {
	Id           string
	Date         time.Time
	Hours        float64
	ActivityType string
	StudyId      string
}

// IsGeneric reports whether the record carries neither an activity nor a study.
func (r WorkRecord) IsGeneric() bool {
	return r.ActivityType == "" && r.StudyId == ""
}

// MaxDailyHours is the most hours a single record can hold.
const MaxDailyHours = 24

// Validate rejects records whose hours are not a number between 0 and MaxDailyHours or whose date is missing.
func (r WorkRecord) Validate() error {
	if r.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidRecord)
	}
	if math.IsNaN(r.Hours) || math.IsInf(r.Hours, 0) {
		return fmt.Errorf("%w: hours must be a finite number", ErrInvalidRecord)
	}
	if r.Hours < 0 {
		return fmt.Errorf("%w: hours must not be negative (%v)", ErrInvalidRecord, r.Hours)
	}
	if r.Hours > MaxDailyHours {
		return fmt.Errorf("%w: hours must not exceed %d (%v)", ErrInvalidRecord, MaxDailyHours, r.Hours)
	}
	return nil
}

// TotalHours sums the hours of all valid records.
func TotalHours(records []WorkRecord) float64 {
	total := decimal.Zero
	for _, r := range records {
		if r.Validate() != nil {
			continue
		}
		total = total.Add(decimal.NewFromFloat(r.Hours))
	}
	return total.InexactFloat64()
}

// HoursBetween converts a start/end time span into hours with one decimal, rounding
// to the nearest six minutes.
func HoursBetween(start, end time.Time) (float64, error) {
	if end.Before(start) {
		return 0, fmt.Errorf("%w: end time %s is before start time %s", ErrInvalidRecord,
			end.Format("15:04"), start.Format("15:04"))
	}
	minutes := int64(end.Sub(start) / time.Minute)
	tenths := decimal.NewFromInt(minutes).Div(decimal.NewFromInt(6)).Round(0)
	return tenths.Div(decimal.NewFromInt(10)).InexactFloat64(), nil
}
