package validation

import (
	stderrors "errors"
	"fmt"
	"strings"

	"practice-log/internal/errors"
)

// Rule names the check a field failed.
type Rule string

const (
	RuleRequired Rule = "required"
	RuleFormat   Rule = "format"
	RuleLength   Rule = "length"
	RuleValue    Rule = "value"
	RuleRange    Rule = "range"
)

// FieldError is one failed rule on one practice log field.
type FieldError struct {
	Field   string
	Rule    Rule
	Message string
	Value   any
}

func (fe FieldError) Error() string {
	return fmt.Sprintf("%s: %s", fe.Field, fe.Message)
}

// ValidationError collects every problem with a record so the user sees
// them all at once instead of one per attempt.
type ValidationError struct {
	Errors []FieldError
}

func NewValidationError() *ValidationError {
	return &ValidationError{}
}

func (ve *ValidationError) Error() string {
	switch len(ve.Errors) {
	case 0:
		return "invalid practice log"
	case 1:
		return "invalid practice log: " + ve.Errors[0].Error()
	}
	parts := make([]string, len(ve.Errors))
	for i, fe := range ve.Errors {
		parts[i] = fe.Error()
	}
	return fmt.Sprintf("invalid practice log (%d problems): %s", len(parts), strings.Join(parts, "; "))
}

// IsValidationError reports whether err wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return stderrors.As(err, &ve)
}

func (ve *ValidationError) HasErrors() bool {
	return len(ve.Errors) > 0
}

func (ve *ValidationError) add(field string, rule Rule, value any, format string, args ...any) {
	ve.Errors = append(ve.Errors, FieldError{
		Field:   field,
		Rule:    rule,
		Message: field + " " + fmt.Sprintf(format, args...),
		Value:   value,
	})
}

func (ve *ValidationError) AddRequiredError(field string) {
	ve.add(field, RuleRequired, nil, "is required")
}

func (ve *ValidationError) AddInvalidFormatError(field string, value any, expected string) {
	ve.add(field, RuleFormat, value, "has invalid format, expected: %s", expected)
}

func (ve *ValidationError) AddTooLongError(field string, value any, max int) {
	ve.add(field, RuleLength, value, "must be at most %d characters long", max)
}

func (ve *ValidationError) AddInvalidValueError(field string, value any, reason string) {
	ve.add(field, RuleValue, value, "has invalid value: %s", reason)
}

func (ve *ValidationError) AddInvalidRangeError(field string, value any, reason string) {
	ve.add(field, RuleRange, value, "is out of range: %s", reason)
}

// For returns the problems recorded against field.
func (ve *ValidationError) For(field string) []FieldError {
	var out []FieldError
	for _, fe := range ve.Errors {
		if fe.Field == field {
			out = append(out, fe)
		}
	}
	return out
}

// GetUserFriendlyMessage is one line for a single problem, otherwise a
// bulleted list.
func (ve *ValidationError) GetUserFriendlyMessage() string {
	switch len(ve.Errors) {
	case 0:
		return "Input validation failed"
	case 1:
		return ve.Errors[0].Message
	}
	var b strings.Builder
	b.WriteString("Multiple validation errors occurred:")
	for _, fe := range ve.Errors {
		b.WriteString("\n- ")
		b.WriteString(fe.Message)
	}
	return b.String()
}

// AsAppError lifts the collected field errors into the application error
// taxonomy, or returns nil when there are none. Each field's failed rule is
// recorded as context for logging.
func (ve *ValidationError) AsAppError() error {
	if !ve.HasErrors() {
		return nil
	}
	appErr := errors.NewValidationError(ve.GetUserFriendlyMessage(), ve)
	for _, fe := range ve.Errors {
		appErr.WithContext(fe.Field, string(fe.Rule))
	}
	return appErr
}
