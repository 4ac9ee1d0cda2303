// Package flow drives logging a practice session: pick a date, pick a
// category, optionally narrow to a drill, fill the form and submit.
package flow

import (
	"context"
	"time"

	"practice-log/internal/domain"
	"practice-log/internal/errors"
	"practice-log/internal/logging"
)

// State is a step of the logging flow.
type State int

const (
	PickingDate State = iota
	PickingCategory
	PickingSubCategory
	FillingForm
	Submitted
)

var stateNames = [...]string{"picking date", "picking category", "picking sub-category", "filling form", "submitted"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Submitter stores the entries of a completed form.
type Submitter interface {
	Submit(ctx context.Context, inputs []domain.CreateRecordInput) (*domain.SubmitResult, error)
}

// DefaultFitnessLines is the number of exercise lines on a Fitness form.
const DefaultFitnessLines = 5

// Options configures a Flow.
type Options struct {
	// DateFormat is a Go time layout for the stored date string.
	DateFormat   string
	FitnessLines int
}

// Flow is a single pass through the logging screens. It is not safe for
// concurrent use.
type Flow struct {
	opts     Options
	state    State
	date     string
	category domain.Category
	form     *Form
}

// New starts a flow in PickingDate.
func New(dateFormat string) *Flow {
	return NewWithOptions(Options{DateFormat: dateFormat})
}

// NewWithOptions starts a flow in PickingDate with explicit options.
func NewWithOptions(opts Options) *Flow {
	if opts.DateFormat == "" {
		opts.DateFormat = "1/2/2006"
	}
	if opts.FitnessLines <= 0 {
		opts.FitnessLines = DefaultFitnessLines
	}
	return &Flow{opts: opts, state: PickingDate}
}

// State returns the current step.
func (f *Flow) State() State { return f.state }

// Date returns the formatted date picked so far.
func (f *Flow) Date() string { return f.date }

// Category returns the category picked so far.
func (f *Flow) Category() domain.Category { return f.category }

func (f *Flow) expect(action string, want State) error {
	if f.state != want {
		return errors.NewInvalidStateError(action, f.state.String())
	}
	return nil
}

// PickDate records the session date and moves on to category selection.
func (f *Flow) PickDate(t time.Time) error {
	if err := f.expect("pick a date", PickingDate); err != nil {
		return err
	}
	if t.IsZero() {
		return errors.NewInvalidInputError("date", t, "date is required")
	}
	f.date = t.Format(f.opts.DateFormat)
	f.state = PickingCategory
	logging.Debug("flow date picked", "date", f.date)
	return nil
}

// PickCategory records the category. Drill categories go on to
// sub-category selection; Fitness goes straight to the form.
func (f *Flow) PickCategory(c domain.Category) error {
	if err := f.expect("pick a category", PickingCategory); err != nil {
		return err
	}
	if !c.IsValid() {
		return errors.NewInvalidInputError("category", c, "unknown category")
	}
	f.category = c
	if c.RequiresDrill() {
		f.state = PickingSubCategory
		return nil
	}
	f.form = newFitnessForm(f.date, f.opts.FitnessLines)
	f.state = FillingForm
	return nil
}

// PickDrill narrows the form to a single drill of the picked category.
func (f *Flow) PickDrill(name string) error {
	if err := f.expect("pick a drill", PickingSubCategory); err != nil {
		return err
	}
	if !domain.HasDrill(f.category, name) {
		return errors.NewInvalidInputError("drill", name, "not a "+f.category.String()+" drill")
	}
	f.form = newDrillForm(f.date, f.category, []string{name})
	f.state = FillingForm
	return nil
}

// AllDrills shows every drill of the picked category on the form.
func (f *Flow) AllDrills() error {
	if err := f.expect("show all drills", PickingSubCategory); err != nil {
		return err
	}
	f.form = newDrillForm(f.date, f.category, domain.Drills(f.category))
	f.state = FillingForm
	return nil
}

// Form returns the form being filled.
func (f *Flow) Form() (*Form, error) {
	if err := f.expect("fill the form", FillingForm); err != nil {
		return nil, err
	}
	return f.form, nil
}

// Submit hands the form's non-empty entries to s. The flow only advances
// to Submitted on success; on error the form stays editable.
func (f *Flow) Submit(ctx context.Context, s Submitter) (*domain.SubmitResult, error) {
	if err := f.expect("submit", FillingForm); err != nil {
		return nil, err
	}
	result, err := s.Submit(ctx, f.form.Entries())
	if err != nil {
		return result, err
	}
	f.state = Submitted
	return result, nil
}

// Reset starts over at PickingDate, e.g. to log another session.
func (f *Flow) Reset() {
	f.state = PickingDate
	f.date = ""
	f.category = ""
	f.form = nil
}
