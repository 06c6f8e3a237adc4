package note

import (
	"errors"
	"time"
)

var ErrNoteNotFound = errors.New("note not found")
var ErrInvalidNote = errors.New("invalid note")

// Note is a free-form personal note, optionally tagged with an activity type.
type Note struct {
	Id           string
	Title        string
	Content      string
	ActivityType string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (n Note) IsEmpty() bool {
	return n.Title == "" && n.Content == ""
}
