package errors

import (
	"fmt"
	"sort"
)

// ErrorType classifies an AppError.
type ErrorType int

const (
	ErrorTypeValidation ErrorType = iota
	ErrorTypeNotFound
	ErrorTypeDatabase
	ErrorTypeInvalidInput
	ErrorTypeTimeout
	ErrorTypePermission
	ErrorTypeRemote
	ErrorTypeInvalidState
)

// kind describes how an error type is coded, shown and logged.
type kind struct {
	name string
	code string
	// userFacing types carry a Message that is safe to show as-is and are
	// the user's to fix, so they are not logged.
	userFacing bool
	// shown instead of Message for types that are not user-facing.
	fallback string
}

var kinds = map[ErrorType]kind{
	ErrorTypeValidation:   {name: "validation", code: "VALIDATION_FAILED", userFacing: true},
	ErrorTypeNotFound:     {name: "not_found", code: "NOT_FOUND", userFacing: true},
	ErrorTypeInvalidInput: {name: "invalid_input", code: "INVALID_INPUT", userFacing: true},
	ErrorTypeInvalidState: {name: "invalid_state", code: "INVALID_STATE", userFacing: true},
	ErrorTypePermission:   {name: "permission", code: "PERMISSION_DENIED"},
	ErrorTypeDatabase:     {name: "database", code: "DATABASE_ERROR", fallback: "A database error occurred. Please try again."},
	ErrorTypeTimeout:      {name: "timeout", code: "TIMEOUT", fallback: "The operation timed out. Please try again."},
	ErrorTypeRemote:       {name: "remote", code: "REMOTE_ERROR", fallback: "The practice log service could not be reached. Please try again."},
}

var unknownKind = kind{name: "unknown", code: "UNKNOWN_ERROR", fallback: "An unexpected error occurred. Please try again."}

func (et ErrorType) kind() kind {
	if k, ok := kinds[et]; ok {
		return k
	}
	return unknownKind
}

func (et ErrorType) String() string { return et.kind().name }

// Code is the stable machine-readable code for the type.
func (et ErrorType) Code() string { return et.kind().code }

// AppError is the structured error returned across package boundaries.
// Context carries loggable key/value detail.
type AppError struct {
	Type    ErrorType
	Message string
	Code    string
	Cause   error
	Context map[string]any
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error { return e.Cause }

// Is matches another AppError with the same type and code, so sentinel
// AppErrors work with errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && e.Type == t.Type && e.Code == t.Code
}

func (e *AppError) IsType(errorType ErrorType) bool {
	return e.Type == errorType
}

// WithContext records a key/value pair and returns e for chaining.
func (e *AppError) WithContext(key string, value any) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

func (e *AppError) GetContext(key string) (any, bool) {
	v, ok := e.Context[key]
	return v, ok
}

// UserMessage is Message for user-facing types, otherwise a generic line
// that hides the cause.
func (e *AppError) UserMessage() string {
	k := e.Type.kind()
	if k.userFacing || k.fallback == "" {
		return e.Message
	}
	return k.fallback
}

// KeyVals flattens the error into logger key/value pairs. Context keys are
// emitted in sorted order.
func (e *AppError) KeyVals() []any {
	kv := []any{"type", e.Type.String(), "code", e.Code}
	keys := make([]string, 0, len(e.Context))
	for k := range e.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		kv = append(kv, k, e.Context[k])
	}
	if e.Cause != nil {
		kv = append(kv, "cause", e.Cause.Error())
	}
	return kv
}
