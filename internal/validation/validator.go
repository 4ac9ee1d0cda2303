package validation

import (
	"strings"
	"time"
	"unicode/utf8"

	"practice-log/internal/config"
)

// Limits are the bounds a practice log must respect.
type Limits struct {
	DateFormat           string
	MaxDuration          int
	MaxSubCategoryLength int
	MaxNotesLength       int
	// Dates are accepted from Past ago up to Future ahead of now.
	Past, Future time.Duration
}

// DefaultLimits match config.NewConfig.
func DefaultLimits() Limits {
	return Limits{
		DateFormat:           "1/2/2006",
		MaxDuration:          600,
		MaxSubCategoryLength: 200,
		MaxNotesLength:       1000,
		Past:                 10 * 365 * 24 * time.Hour,
		Future:               365 * 24 * time.Hour,
	}
}

// Validator holds field-level checks against a set of Limits.
type Validator struct {
	limits Limits
	now    func() time.Time
}

func NewValidator() *Validator {
	return &Validator{limits: DefaultLimits(), now: time.Now}
}

// NewValidatorWithConfig takes limits from cfg; unset values keep their
// defaults.
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	v := NewValidator()
	if cfg == nil {
		return v
	}
	if cfg.Time.DateFormat != "" {
		v.limits.DateFormat = cfg.Time.DateFormat
	}
	if cfg.Validation.MaxDuration > 0 {
		v.limits.MaxDuration = cfg.Validation.MaxDuration
	}
	if cfg.Validation.MaxSubCategoryLength > 0 {
		v.limits.MaxSubCategoryLength = cfg.Validation.MaxSubCategoryLength
	}
	if cfg.Validation.MaxNotesLength > 0 {
		v.limits.MaxNotesLength = cfg.Validation.MaxNotesLength
	}
	return v
}

func (v *Validator) Limits() Limits { return v.limits }

func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsWithinLength counts runes, not bytes.
func (v *Validator) IsWithinLength(s string, max int) bool {
	return utf8.RuneCountInString(s) <= max
}

// ParseRecordDate parses a stored date string with the configured layout.
func (v *Validator) ParseRecordDate(s string) (time.Time, bool) {
	t, err := time.Parse(v.limits.DateFormat, strings.TrimSpace(s))
	return t, err == nil
}

func (v *Validator) IsValidDuration(minutes int) bool {
	return minutes >= 0 && minutes <= v.limits.MaxDuration
}

func (v *Validator) IsReasonableDate(t time.Time) bool {
	from, to := v.DateRange()
	return t.After(from) && t.Before(to)
}

// DateRange is the open interval of accepted dates.
func (v *Validator) DateRange() (from, to time.Time) {
	now := v.now()
	return now.Add(-v.limits.Past), now.Add(v.limits.Future)
}

func (v *Validator) DateFormat() string { return v.limits.DateFormat }

func (v *Validator) maxSubCategoryLength() int { return v.limits.MaxSubCategoryLength }

func (v *Validator) maxNotesLength() int { return v.limits.MaxNotesLength }
