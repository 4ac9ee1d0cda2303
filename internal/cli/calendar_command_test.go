package cli

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"practice-log/internal/calendar"
	"practice-log/internal/repository"
)

func TestCalendarCommand_Execute(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		args   []string
		offset int
		want   []string
	}{
		{"should show a given month", []string{"2024", "2"}, 0, []string{"February 2024", "29", "Su", "Sa"}},
		{"should roll into the next year", []string{"2023", "12"}, 1, []string{"January 2024", "31"}},
		{"should roll into the previous year", []string{"2024", "1"}, -1, []string{"December 2023"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, out, _ := setupTestApp(t)
			cmd := NewCalendarCommand(app)
			cmd.Offset = tt.offset

			require.NoError(t, cmd.Execute(ctx, tt.args))
			for _, w := range tt.want {
				assert.Contains(t, out.String(), w)
			}
		})
	}

	t.Run("should default to the current month", func(t *testing.T) {
		app, out, _ := setupTestApp(t)

		require.NoError(t, NewCalendarCommand(app).Execute(ctx, nil))

		now := time.Now()
		assert.Contains(t, out.String(), now.Month().String())
	})

	t.Run("should reject out of range months", func(t *testing.T) {
		app, _, _ := setupTestApp(t)
		cmd := NewCalendarCommand(app)

		assert.Error(t, cmd.Execute(ctx, []string{"0"}))
		assert.Error(t, cmd.Execute(ctx, []string{"13"}))
		assert.Error(t, cmd.Execute(ctx, []string{"abc", "3"}))
		assert.Error(t, cmd.Execute(ctx, []string{"2024", "3", "1"}))
	})

	t.Run("should still render when marks cannot be loaded", func(t *testing.T) {
		app, out := setupFailingApp(t)
		cmd := NewCalendarCommand(app)
		cmd.Marks = true

		require.NoError(t, cmd.Execute(ctx, []string{"2024", "3"}))
		assert.Contains(t, out.String(), historyUnavailable)
		assert.Contains(t, out.String(), "March 2024")
	})

	t.Run("should load marks from history", func(t *testing.T) {
		app, out, store := setupTestApp(t)
		seed(t, store, &repository.Record{Date: recordDate(time.Now()), Category: "Fitness", SubCategory: "plank"})
		cmd := NewCalendarCommand(app)
		cmd.Marks = true

		require.NoError(t, cmd.Execute(ctx, nil))
		assert.NotContains(t, out.String(), historyUnavailable)
	})
}

func TestRenderMonth(t *testing.T) {
	m := calendar.BuildIn(2024, 1, time.UTC)
	today := time.Date(2024, 2, 14, 9, 0, 0, 0, time.UTC)

	out := renderMonth(m, today, "1/2/2006", map[string]bool{"2/3/2024": true})

	assert.Contains(t, out, "February 2024")
	for _, label := range weekdayLabels {
		assert.Contains(t, out, label)
	}
	// title, weekday header, five weeks, plus the two border lines
	assert.Len(t, strings.Split(out, "\n"), 2+len(m.Weeks())+2)
	assert.Contains(t, out, "29")
}

func TestParseMonthArg(t *testing.T) {
	m, err := parseMonthArg("1")
	require.NoError(t, err)
	assert.Equal(t, 0, m)

	m, err = parseMonthArg("12")
	require.NoError(t, err)
	assert.Equal(t, 11, m)

	_, err = parseMonthArg("-1")
	assert.Error(t, err)
}
