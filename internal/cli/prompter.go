package cli

import (
	stderrors "errors"
	"fmt"
	"time"

	"github.com/charmbracelet/huh"

	"practice-log/internal/api"
	"practice-log/internal/calendar"
	"practice-log/internal/domain"
	"practice-log/internal/flow"
)

// ErrCancelled is returned by a Prompter when the user aborts a prompt.
var ErrCancelled = stderrors.New("cancelled")

// allDrills is the drill picker value that keeps every drill on the form.
const allDrills = ""

const (
	prevMonth = "<"
	nextMonth = ">"
)

// Prompter asks the user for each step of the logging flow
type Prompter interface {
	PickDate(month calendar.Month, today time.Time) (time.Time, error)
	PickCategory(categories []api.CategoryInfo) (domain.Category, error)
	// PickDrill returns a drill name, or "" for all drills.
	PickDrill(category domain.Category, drills []string) (string, error)
	FillForm(form *flow.Form) error
	Confirm(title string) (bool, error)
}

// HuhPrompter renders prompts as terminal forms
type HuhPrompter struct {
	theme *huh.Theme
}

// NewHuhPrompter creates the terminal prompter
func NewHuhPrompter() *HuhPrompter {
	return &HuhPrompter{theme: huh.ThemeDracula()}
}

func (p *HuhPrompter) run(groups ...*huh.Group) error {
	err := huh.NewForm(groups...).WithTheme(p.theme).Run()
	if stderrors.Is(err, huh.ErrUserAborted) {
		return ErrCancelled
	}
	return err
}

// PickDate offers the days of month, with entries to page to the
// neighbouring months.
func (p *HuhPrompter) PickDate(month calendar.Month, today time.Time) (time.Time, error) {
	for {
		options := []huh.Option[string]{huh.NewOption("« "+month.Prev().Title(), prevMonth)}
		value := pickerDefault(month, today)
		for _, cell := range month.Cells {
			date, ok := cell.Select(flagDateLayout)
			if !ok {
				continue
			}
			label := cell.Date.Format("Mon Jan 2")
			if sameDay(cell.Date, today) {
				label += " (today)"
			}
			options = append(options, huh.NewOption(label, date))
		}
		options = append(options, huh.NewOption(month.Next().Title()+" »", nextMonth))

		err := p.run(huh.NewGroup(
			huh.NewSelect[string]().
				Title(month.Title()).
				Options(options...).
				Height(12).
				Value(&value),
		))
		if err != nil {
			return time.Time{}, err
		}

		switch value {
		case prevMonth:
			month = month.Prev()
		case nextMonth:
			month = month.Next()
		default:
			return parseFlagDate(value)
		}
	}
}

func (p *HuhPrompter) PickCategory(categories []api.CategoryInfo) (domain.Category, error) {
	options := make([]huh.Option[domain.Category], 0, len(categories))
	for _, c := range categories {
		options = append(options, huh.NewOption(c.Category.String(), c.Category))
	}
	var picked domain.Category
	err := p.run(huh.NewGroup(
		huh.NewSelect[domain.Category]().
			Title("Category").
			Options(options...).
			Value(&picked),
	))
	return picked, err
}

func (p *HuhPrompter) PickDrill(category domain.Category, drills []string) (string, error) {
	options := []huh.Option[string]{huh.NewOption("All drills", allDrills)}
	for _, d := range drills {
		options = append(options, huh.NewOption(d, d))
	}
	picked := allDrills
	err := p.run(huh.NewGroup(
		huh.NewSelect[string]().
			Title(category.String()).
			Options(options...).
			Value(&picked),
	))
	return picked, err
}

// FillForm binds the inputs straight to the form fields.
func (p *HuhPrompter) FillForm(form *flow.Form) error {
	var fields []huh.Field
	for i := range form.Drills {
		entry := &form.Drills[i]
		fields = append(fields,
			huh.NewInput().
				Title(entry.Drill+" (minutes)").
				Description("Free text; anything but leading digits counts as 0.").
				Value(&entry.Minutes),
			huh.NewInput().
				Title(entry.Drill+" (location)").
				Value(&entry.Location),
		)
	}
	for i := range form.Exercises {
		fields = append(fields, huh.NewInput().
			Title(fmt.Sprintf("Exercise %d", i+1)).
			Placeholder("e.g. 20 pushups").
			Value(&form.Exercises[i]))
	}
	fields = append(fields, huh.NewText().
		Title("Notes").
		Value(&form.Notes))

	return p.run(huh.NewGroup(fields...).Title(form.Category.String() + " on " + form.Date))
}

func (p *HuhPrompter) Confirm(title string) (bool, error) {
	var ok bool
	err := p.run(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Value(&ok),
	))
	return ok, err
}

// pickerDefault is the day the date picker starts on: today when month
// holds it, otherwise the 1st.
func pickerDefault(month calendar.Month, today time.Time) string {
	inMonth := month.Contains(today)
	for _, cell := range month.Cells {
		date, ok := cell.Select(flagDateLayout)
		if ok && (!inMonth || sameDay(cell.Date, today)) {
			return date
		}
	}
	return ""
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}
