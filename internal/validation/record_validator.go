package validation

import (
	"strings"

	"practice-log/internal/config"
	"practice-log/internal/domain"
)

// RecordValidator checks practice log payloads before they reach a store.
type RecordValidator struct {
	validator *Validator
}

// NewRecordValidator creates a record validator with default limits
func NewRecordValidator() *RecordValidator {
	return &RecordValidator{validator: NewValidator()}
}

// NewRecordValidatorWithConfig creates a record validator using cfg limits
func NewRecordValidatorWithConfig(cfg *config.Config) *RecordValidator {
	return &RecordValidator{validator: NewValidatorWithConfig(cfg)}
}

// ValidateForCreation checks only what a create request cannot go without:
// a date and a known category. Minutes, dates and text picked in the log
// flow are saved as entered. Field names follow the API's record fields.
func (rv *RecordValidator) ValidateForCreation(in domain.CreateRecordInput) error {
	ve := NewValidationError()
	rv.required(ve, in)
	return ve.AsAppError()
}

// ValidateForUpdate validates an edit of current into in. The configured
// limits apply only to fields the edit changes, so a record saved from the
// log flow stays editable.
func (rv *RecordValidator) ValidateForUpdate(id string, current, in domain.CreateRecordInput) error {
	ve := NewValidationError()
	if !rv.validator.IsNonEmptyString(id) {
		ve.AddRequiredError("id")
	}
	rv.required(ve, in)
	rv.bounds(ve, current, in)
	return ve.AsAppError()
}

// ValidateID validates a record ID given on the command line.
func (rv *RecordValidator) ValidateID(id string) error {
	ve := NewValidationError()
	if !rv.validator.IsNonEmptyString(id) {
		ve.AddRequiredError("id")
	}
	return ve.AsAppError()
}

func (rv *RecordValidator) required(ve *ValidationError, in domain.CreateRecordInput) {
	if !rv.validator.IsNonEmptyString(in.Date) {
		ve.AddRequiredError("date")
	}
	if !in.Category.IsValid() {
		ve.AddInvalidValueError("category", in.Category, "must be one of Batting, Bowling, Fielding, Fitness")
	}
}

// bounds applies the configured limits to the fields of in that differ
// from current.
func (rv *RecordValidator) bounds(ve *ValidationError, current, in domain.CreateRecordInput) {
	v := rv.validator

	if in.Date != current.Date && v.IsNonEmptyString(in.Date) {
		if t, ok := v.ParseRecordDate(in.Date); !ok {
			ve.AddInvalidFormatError("date", in.Date, v.DateFormat())
		} else if !v.IsReasonableDate(t) {
			from, to := v.DateRange()
			ve.AddInvalidRangeError("date", in.Date, "must be between "+from.Format(v.DateFormat())+" and "+to.Format(v.DateFormat()))
		}
	}

	switch {
	case in.SubCategory == current.SubCategory && in.Category == current.Category:
	case !v.IsNonEmptyString(in.SubCategory):
		ve.AddRequiredError("subCategory")
	case !v.IsWithinLength(in.SubCategory, v.maxSubCategoryLength()):
		ve.AddTooLongError("subCategory", in.SubCategory, v.maxSubCategoryLength())
	case in.Category.RequiresDrill():
		drill, _, found := strings.Cut(in.SubCategory, domain.SubCategorySeparator)
		if !found || !domain.HasDrill(in.Category, drill) {
			ve.AddInvalidFormatError("subCategory", in.SubCategory, "<"+in.Category.String()+" drill> @ <location>")
		}
	}

	if in.Duration != current.Duration && !v.IsValidDuration(in.Duration) {
		ve.AddInvalidRangeError("duration", in.Duration, "must be between 0 and the configured maximum minutes")
	}

	if in.Location != current.Location && !v.IsWithinLength(in.Location, v.maxSubCategoryLength()) {
		ve.AddTooLongError("location", in.Location, v.maxSubCategoryLength())
	}
	if in.Notes != current.Notes && !v.IsWithinLength(in.Notes, v.maxNotesLength()) {
		ve.AddTooLongError("notes", in.Notes, v.maxNotesLength())
	}
}
