package cli

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"practice-log/internal/domain"
	"practice-log/internal/errors"
	"practice-log/internal/services"
)

// exporter writes logs, newest first, to w.
type exporter func(w io.Writer, logs []domain.PracticeLog) error

var exporters = map[string]exporter{
	"csv":  exportCSV,
	"yaml": exportYAML,
}

func exportFormats() string {
	names := make([]string, 0, len(exporters))
	for name := range exporters {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// OutputCommand handles the export command
type OutputCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

func NewOutputCommand(app *App) *OutputCommand {
	return &OutputCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute expects a single format=<name> argument.
func (c *OutputCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("command", "export", "usage: pl export format=<"+exportFormats()+">")
	}
	name, ok := strings.CutPrefix(args[0], "format=")
	if !ok {
		return errors.NewInvalidInputError("format", args[0], "invalid format option")
	}
	export, ok := exporters[name]
	if !ok {
		return errors.NewInvalidInputError("format", name, "unsupported format, use one of "+exportFormats())
	}

	result, err := c.app.businessAPI.GetHistory(ctx, services.HistoryQuery{})
	if err != nil {
		return c.errorHandler.Handle("export practice logs", err)
	}
	if err := export(c.app.out, result.Logs); err != nil {
		return fmt.Errorf("write %s export: %w", name, err)
	}
	return nil
}

var csvHeader = []string{"ID", "Date", "Category", "Sub Category", "Duration (min)", "Location", "Notes", "Created At", "Updated At"}

func exportCSV(w io.Writer, logs []domain.PracticeLog) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, l := range logs {
		err := cw.Write([]string{
			l.ID,
			l.Date,
			l.Category.String(),
			l.SubCategory,
			strconv.Itoa(l.Duration),
			l.Location,
			l.Notes,
			l.CreatedAt.Format(time.RFC3339),
			l.UpdatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// yamlLog mirrors the API's PracticeLog field names.
type yamlLog struct {
	ID          string    `yaml:"id"`
	Date        string    `yaml:"date"`
	Category    string    `yaml:"category"`
	SubCategory string    `yaml:"subCategory"`
	Duration    int       `yaml:"duration"`
	Location    string    `yaml:"location,omitempty"`
	Notes       string    `yaml:"notes,omitempty"`
	CreatedAt   time.Time `yaml:"createdAt"`
	UpdatedAt   time.Time `yaml:"updatedAt"`
}

func exportYAML(w io.Writer, logs []domain.PracticeLog) error {
	out := make([]yamlLog, len(logs))
	for i, l := range logs {
		out[i] = yamlLog{
			ID:          l.ID,
			Date:        l.Date,
			Category:    l.Category.String(),
			SubCategory: l.SubCategory,
			Duration:    l.Duration,
			Location:    l.Location,
			Notes:       l.Notes,
			CreatedAt:   l.CreatedAt.UTC(),
			UpdatedAt:   l.UpdatedAt.UTC(),
		}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(map[string][]yamlLog{"practiceLogs": out}); err != nil {
		return err
	}
	return enc.Close()
}
