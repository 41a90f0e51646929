package models

import "fmt"

// ReadingStatus is the enumerated state of a user's progress through a book.
// The snake_case strings below are the single canonical wire format; anything
// else is rejected at the boundary.
type ReadingStatus string

const (
	StatusToRead     ReadingStatus = "to_read"
	StatusInProgress ReadingStatus = "in_progress"
	StatusCompleted  ReadingStatus = "completed"
	StatusDropped    ReadingStatus = "dropped"
)

func ParseReadingStatus(s string) (ReadingStatus, error) {
	switch ReadingStatus(s) {
	case StatusToRead, StatusInProgress, StatusCompleted, StatusDropped:
		return ReadingStatus(s), nil
	}
	return "", fmt.Errorf("unknown reading status %q", s)
}
