package domain

import (
	"strings"
	"time"
)

// SubCategorySeparator joins a drill and where it was practised.
const SubCategorySeparator = " @ "

// PracticeLog is one logged practice session.
type PracticeLog struct {
	ID          string
	Date        string
	Category    Category
	SubCategory string
	Duration    int
	Location    string
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateRecordInput is the payload for creating a practice log.
type CreateRecordInput struct {
	Date        string
	Category    Category
	SubCategory string
	Duration    int
	Location    string
	Notes       string
}

// DrillSubCategory renders "<drill> @ <location>".
func DrillSubCategory(drill, location string) string {
	return drill + SubCategorySeparator + location
}

// ParseMinutes reads the leading integer of s after trimming whitespace.
// Anything unparseable, negative or out of range yields 0.
func ParseMinutes(s string) int {
	s = strings.TrimSpace(s)
	if s == "" || s[0] == '-' {
		return 0
	}
	s = strings.TrimPrefix(s, "+")

	n := 0
	for i := 0; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int(s[i]-'0')
		if n > maxMinutes {
			return 0
		}
	}
	return n
}

// maxMinutes caps parsing well below int overflow.
const maxMinutes = 1<<31 - 1

// Notices shown to the user after a submission attempt.
const (
	NoticeEmpty = "Please fill details"
	NoticeSaved = "Saved"
)

// SubmitResult reports the outcome of a submission. On failure Created
// still lists the records that were stored before the error.
type SubmitResult struct {
	Created []PracticeLog
	Notice  string
}
