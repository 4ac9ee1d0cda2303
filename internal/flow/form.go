package flow

import (
	"strings"

	"practice-log/internal/domain"
	"practice-log/internal/errors"
)

// DrillEntry is the raw text typed for one drill.
type DrillEntry struct {
	Drill    string
	Minutes  string
	Location string
}

// Empty reports whether nothing was typed for the drill.
func (e DrillEntry) Empty() bool {
	return strings.TrimSpace(e.Minutes) == "" && strings.TrimSpace(e.Location) == ""
}

// Form holds what the user typed. Drill categories use Drills; Fitness uses
// Exercises.
type Form struct {
	Date      string
	Category  domain.Category
	Drills    []DrillEntry
	Exercises []string
	// Notes is copied onto every record.
	Notes string
}

func newDrillForm(date string, c domain.Category, drills []string) *Form {
	f := &Form{Date: date, Category: c}
	for _, d := range drills {
		f.Drills = append(f.Drills, DrillEntry{Drill: d})
	}
	return f
}

func newFitnessForm(date string, lines int) *Form {
	return &Form{Date: date, Category: domain.Fitness, Exercises: make([]string, lines)}
}

// SetEntry fills minutes and location for a drill on the form.
func (f *Form) SetEntry(drill, minutes, location string) error {
	for i := range f.Drills {
		if f.Drills[i].Drill == drill {
			f.Drills[i].Minutes = minutes
			f.Drills[i].Location = location
			return nil
		}
	}
	return errors.NewInvalidInputError("drill", drill, "not on this form")
}

// SetExercise fills the i-th exercise line.
func (f *Form) SetExercise(i int, text string) error {
	if i < 0 || i >= len(f.Exercises) {
		return errors.NewInvalidInputError("exercise", i, "line out of range")
	}
	f.Exercises[i] = text
	return nil
}

// Entries returns one create input per non-empty entry in form order.
func (f *Form) Entries() []domain.CreateRecordInput {
	var inputs []domain.CreateRecordInput
	notes := strings.TrimSpace(f.Notes)

	for _, e := range f.Drills {
		if e.Empty() {
			continue
		}
		location := strings.TrimSpace(e.Location)
		inputs = append(inputs, domain.CreateRecordInput{
			Date:        f.Date,
			Category:    f.Category,
			SubCategory: domain.DrillSubCategory(e.Drill, location),
			Duration:    domain.ParseMinutes(e.Minutes),
			Location:    location,
			Notes:       notes,
		})
	}

	for _, line := range f.Exercises {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		inputs = append(inputs, domain.CreateRecordInput{
			Date:        f.Date,
			Category:    f.Category,
			SubCategory: line,
			Notes:       notes,
		})
	}
	return inputs
}

// IsEmpty reports whether the form has no non-empty entry.
func (f *Form) IsEmpty() bool {
	return len(f.Entries()) == 0
}
