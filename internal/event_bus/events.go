package event_bus

import "time"

const (
	WorkRecordSavedType EventType = "worklog.record.saved"
	StudyDeletedType    EventType = "study.deleted"
)

// WorkRecordSaved is published after a work record has been stored.
type WorkRecordSaved struct {
	Id           string
	Date         time.Time
	Hours        float64
	ActivityType string
	StudyId      string
}

// StudyDeleted is published after a bible study has been removed.
type StudyDeleted struct {
	Id string
}
