package cli

import (
	"context"
	"strings"

	"practice-log/internal/domain"
	"practice-log/internal/errors"
)

// EditOptions holds the fields to change. Nil leaves a field as stored.
type EditOptions struct {
	Date        *string
	SubCategory *string
	Minutes     *string
	Location    *string
	Notes       *string
}

// EditCommand handles the edit command
type EditCommand struct {
	app          *App
	errorHandler *ErrorHandler
	Options      EditOptions
}

// NewEditCommand creates a new edit command handler
func NewEditCommand(app *App) *EditCommand {
	return &EditCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute rewrites the chosen fields of one practice log
func (c *EditCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "edit", "usage: pl edit <id> [--date YYYY-MM-DD] [--sub-category S] [--minutes N] [--location L] [--notes N]")
	}
	id := args[0]

	current, err := c.app.businessAPI.GetRecord(ctx, id)
	if err != nil {
		return c.errorHandler.Handle("edit practice log", err)
	}

	input := domain.NewPracticeLogMapper().ToInput(*current)
	o := c.Options
	if o.Date != nil {
		d, err := parseFlagDate(*o.Date)
		if err != nil {
			return errors.NewInvalidInputError("date", *o.Date, "expected YYYY-MM-DD")
		}
		input.Date = d.Format(c.app.config.Time.DateFormat)
	}
	if o.SubCategory != nil {
		input.SubCategory = *o.SubCategory
	}
	if o.Minutes != nil {
		input.Duration = domain.ParseMinutes(*o.Minutes)
	}
	if o.Location != nil {
		input.Location = *o.Location
		// Drill sub-categories embed the location.
		if o.SubCategory == nil && input.Category.RequiresDrill() {
			drill, _, _ := strings.Cut(input.SubCategory, domain.SubCategorySeparator)
			input.SubCategory = domain.DrillSubCategory(drill, input.Location)
		}
	}
	if o.Notes != nil {
		input.Notes = *o.Notes
	}

	updated, err := c.app.businessAPI.UpdateRecord(ctx, id, input)
	if err != nil {
		return c.errorHandler.Handle("edit practice log", err)
	}
	c.app.println("Updated")
	printRecord(c.app, updated)
	return nil
}
