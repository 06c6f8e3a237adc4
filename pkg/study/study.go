package study

import (
	"errors"
	"time"
)

var ErrStudyNotFound = errors.New("bible study not found")
var ErrInvalidStudy = errors.New("invalid bible study")

type BibleStudy struct {
	Id          string
	Name        string
	ContactInfo string
	CreatedAt   time.Time
	// LastVisitDate is the latest day a work record referenced the study, nil before the first visit.
	LastVisitDate *time.Time
	IsActive      bool
}
