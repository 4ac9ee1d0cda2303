package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"practice-log/internal/domain"
	"practice-log/internal/errors"
	"practice-log/internal/flow"
)

// LogOptions are the non-interactive inputs of the log command. An empty
// Category selects the interactive prompts.
type LogOptions struct {
	Date      string
	Category  string
	Drill     string
	Entries   []string
	Exercises []string
	Notes     string
}

// LogCommand handles the log command
type LogCommand struct {
	app          *App
	errorHandler *ErrorHandler
	Options      LogOptions
}

// NewLogCommand creates a new log command handler
func NewLogCommand(app *App) *LogCommand {
	return &LogCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the log command
func (c *LogCommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return c.errorHandler.HandleSimple(errors.NewInvalidInputError("command", "log", "usage: pl log [--date YYYY-MM-DD] [--category C] [--drill D] [--entry mins,where]... [--exercise text]..."))
	}
	if c.Options.Category == "" {
		err := c.interactive(ctx)
		if stderrors.Is(err, ErrCancelled) {
			c.app.println("Cancelled.")
			return nil
		}
		return err
	}
	return c.fromFlags(ctx)
}

func (c *LogCommand) fromFlags(ctx context.Context) error {
	opts := c.Options
	f := c.app.businessAPI.NewLogFlow()

	date := c.app.businessAPI.Today()
	if opts.Date != "" {
		d, err := parseFlagDate(opts.Date)
		if err != nil {
			return c.errorHandler.HandleSimple(errors.NewInvalidInputError("date", opts.Date, "expected YYYY-MM-DD"))
		}
		date = d
	}
	if err := f.PickDate(date); err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	category, err := domain.ParseCategory(opts.Category)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}
	if err := f.PickCategory(category); err != nil {
		return c.errorHandler.HandleSimple(err)
	}
	if f.State() == flow.PickingSubCategory {
		if opts.Drill != "" {
			err = f.PickDrill(opts.Drill)
		} else {
			err = f.AllDrills()
		}
		if err != nil {
			return c.errorHandler.HandleSimple(err)
		}
	} else if opts.Drill != "" {
		return c.errorHandler.HandleSimple(errors.NewInvalidInputError("drill", opts.Drill, category.String()+" has no drills"))
	}

	form, err := f.Form()
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}
	if err := fillFormFromFlags(form, opts); err != nil {
		return c.errorHandler.HandleSimple(err)
	}
	return c.submit(ctx, f)
}

// fillFormFromFlags applies --entry values to the form's drills in order
// and --exercise values to its exercise lines.
func fillFormFromFlags(form *flow.Form, opts LogOptions) error {
	if len(opts.Entries) > len(form.Drills) {
		return errors.NewInvalidInputError("entry", len(opts.Entries),
			fmt.Sprintf("form has %d drill(s)", len(form.Drills)))
	}
	for i, raw := range opts.Entries {
		minutes, location, _ := strings.Cut(raw, ",")
		if err := form.SetEntry(form.Drills[i].Drill, minutes, location); err != nil {
			return err
		}
	}

	if len(opts.Exercises) > len(form.Exercises) {
		return errors.NewInvalidInputError("exercise", len(opts.Exercises),
			fmt.Sprintf("form has %d exercise line(s)", len(form.Exercises)))
	}
	for i, text := range opts.Exercises {
		if err := form.SetExercise(i, text); err != nil {
			return err
		}
	}

	form.Notes = opts.Notes
	return nil
}

func (c *LogCommand) interactive(ctx context.Context) error {
	api, prompter := c.app.businessAPI, c.app.prompter
	f := api.NewLogFlow()

	today := api.Today()
	date, err := prompter.PickDate(api.Calendar(today.Year(), int(today.Month())-1), today)
	if err != nil {
		return err
	}
	if err := f.PickDate(date); err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	category, err := prompter.PickCategory(api.Categories())
	if err != nil {
		return err
	}
	if err := f.PickCategory(category); err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	if f.State() == flow.PickingSubCategory {
		drill, err := prompter.PickDrill(category, domain.Drills(category))
		if err != nil {
			return err
		}
		if drill == allDrills {
			err = f.AllDrills()
		} else {
			err = f.PickDrill(drill)
		}
		if err != nil {
			return c.errorHandler.HandleSimple(err)
		}
	}

	form, err := f.Form()
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	// A failed submit leaves the flow on the form, so the user may edit
	// and send it again.
	for {
		if err := prompter.FillForm(form); err != nil {
			return err
		}
		submitErr := c.submit(ctx, f)
		if submitErr == nil {
			return nil
		}
		again, err := prompter.Confirm("Edit the form and try again?")
		if err != nil || !again {
			return submitErr
		}
	}
}

func (c *LogCommand) submit(ctx context.Context, f *flow.Flow) error {
	if form, err := f.Form(); err == nil && form.IsEmpty() {
		c.app.println(noticeStyle.Render(domain.NoticeEmpty))
		return c.errorHandler.HandleSimple(errors.NewValidationError(domain.NoticeEmpty, nil))
	}

	ctx, cancel := c.app.withTimeout(ctx)
	defer cancel()

	result, err := c.app.businessAPI.SubmitFlow(ctx, f)
	if err != nil {
		notice := c.errorHandler.Notice(err)
		if result != nil && result.Notice != "" {
			notice = result.Notice
		}
		c.app.println(noticeStyle.Render(notice))
		return c.errorHandler.Handle("save practice log", err)
	}

	c.app.println(result.Notice)
	for _, l := range result.Created {
		c.app.printf("  %s  %-9s %-40s %4d min  %s\n", l.Date, l.Category, l.SubCategory, l.Duration, l.ID)
	}
	return nil
}
