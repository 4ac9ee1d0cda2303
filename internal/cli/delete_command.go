package cli

import (
	"context"
	stderrors "errors"

	"practice-log/internal/errors"
)

// DeleteCommand removes a practice log by ID.
type DeleteCommand struct {
	app          *App
	errorHandler *ErrorHandler

	// Yes skips the confirmation prompt.
	Yes bool
}

// NewDeleteCommand asks for confirmation unless Yes is set.
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute removes one practice log after confirming
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "delete", "usage: pl delete <id>")
	}
	id := args[0]

	log, err := c.app.businessAPI.GetRecord(ctx, id)
	if err != nil {
		return c.errorHandler.Handle("delete practice log", err)
	}

	if !c.Yes {
		printRecord(c.app, log)
		ok, err := c.app.prompter.Confirm("Delete this practice log? This cannot be undone.")
		if stderrors.Is(err, ErrCancelled) || (err == nil && !ok) {
			c.app.println("Delete cancelled.")
			return nil
		}
		if err != nil {
			return err
		}
	}

	if err := c.app.businessAPI.DeleteRecord(ctx, id); err != nil {
		return c.errorHandler.Handle("delete practice log", err)
	}
	c.app.printf("Deleted practice log %s\n", id)
	return nil
}
