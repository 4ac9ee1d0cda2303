package cli

import (
	"context"
	"strings"
)

// CategoriesCommand handles the categories command
type CategoriesCommand struct {
	app *App
}

// NewCategoriesCommand creates a new categories command handler
func NewCategoriesCommand(app *App) *CategoriesCommand {
	return &CategoriesCommand{app: app}
}

// Execute prints each category with its drills
func (c *CategoriesCommand) Execute(ctx context.Context, args []string) error {
	for _, info := range c.app.businessAPI.Categories() {
		c.app.println(headingStyle.Render(info.Category.String()))
		if len(info.Drills) == 0 {
			c.app.println("  (free-form exercises)")
			continue
		}
		c.app.println("  " + strings.Join(info.Drills, "\n  "))
	}
	return nil
}
