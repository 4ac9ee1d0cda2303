package cli

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"practice-log/internal/repository"
	"practice-log/internal/repository/memory"
)

func TestHistoryCommand_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("should list newest first with totals", func(t *testing.T) {
		// Arrange
		tick := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
		store := memory.NewWithClock(func() time.Time { tick = tick.Add(time.Minute); return tick })
		out := &strings.Builder{}
		app := NewAppWithStore(store, testConfig()).WithOutput(out)
		date := recordDate(daysAgo(2))
		seed(t, store,
			&repository.Record{Date: date, Category: "Batting", SubCategory: "Batting in nets @ Nets", Duration: 45},
			&repository.Record{Date: date, Category: "Fitness", SubCategory: "first-plank"},
			&repository.Record{Date: date, Category: "Batting", SubCategory: "Shadow practice @ Home", Duration: 15},
		)

		// Act
		err := NewHistoryCommand(app).Execute(ctx, nil)

		// Assert
		require.NoError(t, err)
		text := out.String()
		shadow := strings.Index(text, "Shadow practice")
		plank := strings.Index(text, "first-plank")
		nets := strings.Index(text, "Batting in nets")
		require.True(t, shadow >= 0 && plank >= 0 && nets >= 0, text)
		assert.Less(t, shadow, plank)
		assert.Less(t, plank, nets)
		assert.Contains(t, text, "Totals")
		assert.Regexp(t, `Batting\s+2 session\(s\)\s+60 min`, text)
	})

	t.Run("should filter by category and date", func(t *testing.T) {
		app, out, store := setupTestApp(t)
		day := daysAgo(3)
		seed(t, store,
			&repository.Record{Date: recordDate(day), Category: "Bowling", SubCategory: "Bowling drills @ Club", Duration: 20},
			&repository.Record{Date: recordDate(day), Category: "Fitness", SubCategory: "skipping"},
			&repository.Record{Date: recordDate(daysAgo(4)), Category: "Bowling", SubCategory: "Bowling in nets @ Club"},
		)
		cmd := NewHistoryCommand(app)
		cmd.Category = "bowling"
		cmd.Date = day.Format(flagDateLayout)

		require.NoError(t, cmd.Execute(ctx, nil))
		assert.Contains(t, out.String(), "Bowling drills")
		assert.NotContains(t, out.String(), "skipping")
		assert.NotContains(t, out.String(), "Bowling in nets")
	})

	t.Run("should say when nothing is logged", func(t *testing.T) {
		app, out, _ := setupTestApp(t)

		require.NoError(t, NewHistoryCommand(app).Execute(ctx, nil))
		assert.Contains(t, out.String(), "No practice logs yet.")
	})

	t.Run("should report history unavailable on a failed read", func(t *testing.T) {
		app, out := setupFailingApp(t)

		err := NewHistoryCommand(app).Execute(ctx, nil)

		require.Error(t, err)
		assert.Contains(t, out.String(), historyUnavailable)
		assert.Contains(t, err.Error(), "failed to load history")
	})

	t.Run("should reject bad filters", func(t *testing.T) {
		app, _, _ := setupTestApp(t)

		cmd := NewHistoryCommand(app)
		cmd.Category = "Swimming"
		assert.Error(t, cmd.Execute(ctx, nil))

		cmd = NewHistoryCommand(app)
		cmd.Date = "yesterday"
		assert.Error(t, cmd.Execute(ctx, nil))
	})
}
