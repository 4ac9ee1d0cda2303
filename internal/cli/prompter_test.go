package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"practice-log/internal/calendar"
)

func TestPickerDefault(t *testing.T) {
	feb := calendar.BuildIn(2024, 1, time.UTC)

	t.Run("should start on today inside its month", func(t *testing.T) {
		today := time.Date(2024, 2, 14, 9, 0, 0, 0, time.UTC)
		assert.Equal(t, "2024-02-14", pickerDefault(feb, today))
	})

	t.Run("should start on the 1st of another month", func(t *testing.T) {
		today := time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC)
		assert.Equal(t, "2024-02-01", pickerDefault(feb, today))
		assert.Equal(t, "2024-01-01", pickerDefault(feb.Prev(), today))
	})
}
