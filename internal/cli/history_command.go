package cli

import (
	"context"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"practice-log/internal/domain"
	"practice-log/internal/errors"
	"practice-log/internal/services"
)

const historyUnavailable = "history unavailable"

// HistoryCommand handles the history command
type HistoryCommand struct {
	app          *App
	errorHandler *ErrorHandler

	Category string
	// Date is YYYY-MM-DD.
	Date string
}

// NewHistoryCommand creates a new history command handler
func NewHistoryCommand(app *App) *HistoryCommand {
	return &HistoryCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute lists every practice log, newest first, then a per-category total
func (c *HistoryCommand) Execute(ctx context.Context, args []string) error {
	query, err := c.query()
	if err != nil {
		return err
	}

	result, err := c.app.businessAPI.GetHistory(ctx, query)
	if err != nil {
		c.app.println(noticeStyle.Render(historyUnavailable))
		return c.errorHandler.Handle("load history", err)
	}
	if result.Empty() {
		c.app.println("No practice logs yet.")
		return nil
	}

	c.app.println(c.renderLogs(result.Logs))
	c.app.println(headingStyle.Render("Totals"))
	for _, s := range result.Summary() {
		c.app.printf("  %-9s %3d session(s) %5d min\n", s.Category, s.Sessions, s.TotalMinutes)
	}
	return nil
}

func (c *HistoryCommand) query() (services.HistoryQuery, error) {
	var q services.HistoryQuery
	if c.Category != "" {
		category, err := domain.ParseCategory(c.Category)
		if err != nil {
			return q, err
		}
		q.Category = category
	}
	if c.Date != "" {
		d, err := parseFlagDate(c.Date)
		if err != nil {
			return q, errors.NewInvalidInputError("date", c.Date, "expected YYYY-MM-DD")
		}
		q.Date = d.Format(c.app.config.Time.DateFormat)
	}
	return q, nil
}

func (c *HistoryCommand) renderLogs(logs []domain.PracticeLog) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Logged", "Date", "Category", "Sub Category", "Min", "Notes").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headingStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	for _, l := range logs {
		t.Row(
			l.CreatedAt.Local().Format(c.app.config.Time.DisplayFormat),
			l.Date,
			l.Category.String(),
			l.SubCategory,
			strconv.Itoa(l.Duration),
			l.Notes,
		)
	}
	return t.String()
}
