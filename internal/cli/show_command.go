package cli

import (
	"context"

	"practice-log/internal/domain"
	"practice-log/internal/errors"
)

// ShowCommand handles the show command
type ShowCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewShowCommand creates a new show command handler
func NewShowCommand(app *App) *ShowCommand {
	return &ShowCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute prints one practice log
func (c *ShowCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "show", "usage: pl show <id>")
	}
	log, err := c.app.businessAPI.GetRecord(ctx, args[0])
	if err != nil {
		return c.errorHandler.Handle("show practice log", err)
	}
	printRecord(c.app, log)
	return nil
}

func printRecord(app *App, l *domain.PracticeLog) {
	display := app.config.Time.DisplayFormat
	app.println(headingStyle.Render(l.Category.String() + ": " + l.SubCategory))
	app.printf("  ID:        %s\n", l.ID)
	app.printf("  Date:      %s\n", l.Date)
	app.printf("  Duration:  %d min\n", l.Duration)
	if l.Location != "" {
		app.printf("  Location:  %s\n", l.Location)
	}
	if l.Notes != "" {
		app.printf("  Notes:     %s\n", l.Notes)
	}
	app.printf("  Created:   %s\n", l.CreatedAt.Local().Format(display))
	app.printf("  Updated:   %s\n", l.UpdatedAt.Local().Format(display))
}
