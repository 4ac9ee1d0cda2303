package cli

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"practice-log/internal/calendar"
	"practice-log/internal/errors"
	"practice-log/internal/services"
)

var weekdayLabels = [7]string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

// CalendarCommand handles the calendar command
type CalendarCommand struct {
	app          *App
	errorHandler *ErrorHandler

	// Offset moves the shown month, e.g. -1 for the previous one.
	Offset int
	// Marks highlights days that already have practice logs.
	Marks bool
}

// NewCalendarCommand creates a new calendar command handler
func NewCalendarCommand(app *App) *CalendarCommand {
	return &CalendarCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute renders the month grid. args are [month] or [year month] with
// month counted from 1.
func (c *CalendarCommand) Execute(ctx context.Context, args []string) error {
	today := c.app.businessAPI.Today()
	year, month := today.Year(), int(today.Month())-1

	switch len(args) {
	case 0:
	case 1:
		m, err := parseMonthArg(args[0])
		if err != nil {
			return err
		}
		month = m
	case 2:
		y, err := strconv.Atoi(args[0])
		if err != nil || y < 1 {
			return errors.NewInvalidInputError("year", args[0], "must be a positive number")
		}
		m, err := parseMonthArg(args[1])
		if err != nil {
			return err
		}
		year, month = y, m
	default:
		return errors.NewInvalidInputError("command", "calendar", "usage: pl calendar [year] [month]")
	}

	year, month = calendar.Shift(year, month, c.Offset)
	grid := c.app.businessAPI.Calendar(year, month)

	var logged map[string]bool
	if c.Marks {
		logged = c.loggedDates(ctx)
	}
	c.app.println(renderMonth(grid, today, c.app.config.Time.DateFormat, logged))
	return nil
}

// loggedDates returns the record dates present in history. A failed read
// only drops the marks.
func (c *CalendarCommand) loggedDates(ctx context.Context) map[string]bool {
	result, err := c.app.businessAPI.GetHistory(ctx, services.HistoryQuery{})
	if err != nil {
		c.app.println(noticeStyle.Render(historyUnavailable))
		_ = c.errorHandler.Handle("load history", err)
		return nil
	}
	dates := make(map[string]bool, len(result.Logs))
	for _, l := range result.Logs {
		dates[l.Date] = true
	}
	return dates
}

func parseMonthArg(s string) (int, error) {
	m, err := strconv.Atoi(s)
	if err != nil || m < 1 || m > 12 {
		return 0, errors.NewInvalidInputError("month", s, "must be between 1 and 12")
	}
	return m - 1, nil
}

// renderMonth draws the grid in a box. dateFormat keys the logged set.
func renderMonth(m calendar.Month, today time.Time, dateFormat string, logged map[string]bool) string {
	var header strings.Builder
	for _, label := range weekdayLabels {
		header.WriteString(weekdayStyle.Render(label))
	}

	rows := []string{titleStyle.Render(m.Title()), header.String()}
	for _, week := range m.Weeks() {
		var row strings.Builder
		for _, cell := range week {
			row.WriteString(renderCell(cell, today, dateFormat, logged))
		}
		rows = append(rows, row.String())
	}
	return calendarBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func renderCell(cell calendar.Cell, today time.Time, dateFormat string, logged map[string]bool) string {
	if cell.Empty() {
		return dayStyle.Render("")
	}
	label := strconv.Itoa(cell.Day)
	switch {
	case sameDay(cell.Date, today):
		return todayStyle.Render(label)
	case logged[cell.Date.Format(dateFormat)]:
		return loggedStyle.Render(label)
	}
	return dayStyle.Render(label)
}
