package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"practice-log/internal/config"
	"practice-log/internal/domain"
	"practice-log/internal/errors"
)

func today() string {
	return time.Now().Format("1/2/2006")
}

func validInput() domain.CreateRecordInput {
	return domain.CreateRecordInput{
		Date:        today(),
		Category:    domain.Batting,
		SubCategory: "Batting in nets @ Nets",
		Duration:    45,
		Location:    "Nets",
	}
}

func assertFieldError(t *testing.T, err error, field string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
	appErr, _ := errors.AsAppError(err)
	_, ok := appErr.GetContext(field)
	assert.True(t, ok, "expected an error on %s, got %v", field, err)
}

func TestRecordValidator_ValidateForCreation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.CreateRecordInput)
		field  string
	}{
		{"should accept a valid drill entry", func(*domain.CreateRecordInput) {}, ""},
		{"should accept fitness free text", func(in *domain.CreateRecordInput) {
			in.Category = domain.Fitness
			in.SubCategory = "20 pushups"
			in.Duration = 0
		}, ""},
		{"should accept a drill with no location", func(in *domain.CreateRecordInput) { in.SubCategory = "Batting drills @ " }, ""},
		{"should accept a long session", func(in *domain.CreateRecordInput) { in.Duration = 700 }, ""},
		{"should accept a date years back", func(in *domain.CreateRecordInput) {
			in.Date = time.Now().AddDate(-11, 0, 0).Format("1/2/2006")
		}, ""},
		{"should accept a date years ahead", func(in *domain.CreateRecordInput) {
			in.Date = time.Now().AddDate(2, 0, 0).Format("1/2/2006")
		}, ""},
		{"should accept a long fitness line", func(in *domain.CreateRecordInput) {
			in.Category = domain.Fitness
			in.SubCategory = strings.Repeat("pushups ", 30)
		}, ""},
		{"should reject missing date", func(in *domain.CreateRecordInput) { in.Date = " " }, "date"},
		{"should reject unknown category", func(in *domain.CreateRecordInput) { in.Category = "Golf" }, "category"},
	}

	rv := NewRecordValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			err := rv.ValidateForCreation(in)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			assertFieldError(t, err, tt.field)
		})
	}
}

func TestRecordValidator_ValidateForUpdateBounds(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.CreateRecordInput)
		field  string
	}{
		{"should reject malformed date", func(in *domain.CreateRecordInput) { in.Date = "2024-03-05" }, "date"},
		{"should reject ancient date", func(in *domain.CreateRecordInput) { in.Date = "1/1/1990" }, "date"},
		{"should reject empty sub-category", func(in *domain.CreateRecordInput) { in.SubCategory = "" }, "subCategory"},
		{"should reject a drill from another category", func(in *domain.CreateRecordInput) { in.SubCategory = "Bowling drills @ Nets" }, "subCategory"},
		{"should reject a drill without separator", func(in *domain.CreateRecordInput) { in.SubCategory = "Batting drills" }, "subCategory"},
		{"should reject negative duration", func(in *domain.CreateRecordInput) { in.Duration = -1 }, "duration"},
		{"should reject excessive duration", func(in *domain.CreateRecordInput) { in.Duration = 601 }, "duration"},
		{"should reject long notes", func(in *domain.CreateRecordInput) { in.Notes = strings.Repeat("n", 1001) }, "notes"},
	}

	rv := NewRecordValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			assertFieldError(t, rv.ValidateForUpdate("abc", domain.CreateRecordInput{}, in), tt.field)
		})
	}
}

func TestRecordValidator_ValidateForUpdateSkipsUnchangedFields(t *testing.T) {
	rv := NewRecordValidator()

	saved := validInput()
	saved.Date = time.Now().AddDate(-11, 0, 0).Format("1/2/2006")
	saved.Duration = 700

	edit := saved
	edit.Notes = "played late"
	assert.NoError(t, rv.ValidateForUpdate("abc", saved, edit))

	edit.Duration = 800
	assertFieldError(t, rv.ValidateForUpdate("abc", saved, edit), "duration")
}

func TestRecordValidator_DateRangeMessage(t *testing.T) {
	rv := NewRecordValidator()
	rv.validator.now = func() time.Time { return time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC) }

	for _, date := range []string{"1/1/2010", "6/1/2026"} {
		in := validInput()
		in.Date = date
		err := rv.ValidateForUpdate("abc", domain.CreateRecordInput{}, in)
		assertFieldError(t, err, "date")
		assert.ErrorContains(t, err, "must be between 3/7/2014 and 3/5/2025")
	}
}

func TestRecordValidator_UsesConfig(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Time.DateFormat = "2006-01-02"
	cfg.Validation.MaxDuration = 30
	rv := NewRecordValidatorWithConfig(cfg)

	in := validInput()
	in.Date = time.Now().Format("2006-01-02")
	in.Duration = 30
	assert.NoError(t, rv.ValidateForUpdate("abc", domain.CreateRecordInput{}, in))

	in.Duration = 31
	assert.Error(t, rv.ValidateForUpdate("abc", domain.CreateRecordInput{}, in))
	assert.NoError(t, rv.ValidateForCreation(in))
}

func TestRecordValidator_ValidateForUpdate(t *testing.T) {
	rv := NewRecordValidator()
	assert.NoError(t, rv.ValidateForUpdate("abc", domain.CreateRecordInput{}, validInput()))

	err := rv.ValidateForUpdate("", domain.CreateRecordInput{}, validInput())
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	_, has := appErr.GetContext("id")
	assert.True(t, has)

	assert.Error(t, rv.ValidateID("  "))
	assert.NoError(t, rv.ValidateID("abc"))
}

func TestValidator_IsWithinLength(t *testing.T) {
	v := NewValidator()
	assert.True(t, v.IsWithinLength("héllo", 5))
	assert.False(t, v.IsWithinLength("héllo!", 5))
}

func TestNewValidatorWithConfig_Limits(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Time.DateFormat = "2006-01-02"
	cfg.Validation.MaxDuration = 90
	cfg.Validation.MaxNotesLength = 0

	v := NewValidatorWithConfig(cfg)
	limits := v.Limits()
	assert.Equal(t, "2006-01-02", limits.DateFormat)
	assert.Equal(t, 90, limits.MaxDuration)
	assert.Equal(t, DefaultLimits().MaxNotesLength, limits.MaxNotesLength)

	assert.True(t, v.IsValidDuration(90))
	assert.False(t, v.IsValidDuration(91))
	_, ok := v.ParseRecordDate("2024-03-05")
	assert.True(t, ok)

	assert.Equal(t, DefaultLimits(), NewValidatorWithConfig(nil).Limits())
}

func TestValidator_IsReasonableDate(t *testing.T) {
	v := NewValidator()
	v.now = func() time.Time { return time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC) }

	assert.True(t, v.IsReasonableDate(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, v.IsReasonableDate(time.Date(2013, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, v.IsReasonableDate(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)))
}
