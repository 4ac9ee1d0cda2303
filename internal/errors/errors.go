// Package errors is the error taxonomy shared by every layer of pl. Stores
// and services return *AppError; the CLI turns them into user messages.
package errors

import (
	"errors"
	"fmt"
)

// newAppError builds an AppError of type t; ctx is alternating key/value
// pairs.
func newAppError(t ErrorType, message string, cause error, ctx ...any) *AppError {
	e := &AppError{
		Type:    t,
		Message: message,
		Code:    t.Code(),
		Cause:   cause,
		Context: make(map[string]any, len(ctx)/2),
	}
	for i := 0; i+1 < len(ctx); i += 2 {
		e.Context[fmt.Sprint(ctx[i])] = ctx[i+1]
	}
	return e
}

// NewValidationError reports input rejected before any store call. message
// is shown to the user verbatim.
func NewValidationError(message string, cause error) *AppError {
	return newAppError(ErrorTypeValidation, message, cause)
}

func NewNotFoundError(resource, identifier string) *AppError {
	return newAppError(ErrorTypeNotFound,
		fmt.Sprintf("%s not found: %s", resource, identifier), nil,
		"resource", resource, "identifier", identifier)
}

func NewDatabaseError(operation string, cause error) *AppError {
	return newAppError(ErrorTypeDatabase,
		"database operation failed: "+operation, cause,
		"operation", operation)
}

func NewInvalidInputError(field string, value any, reason string) *AppError {
	return newAppError(ErrorTypeInvalidInput,
		fmt.Sprintf("invalid input for %s: %s", field, reason), nil,
		"field", field, "value", value, "reason", reason)
}

func NewTimeoutError(operation string, timeout any) *AppError {
	return newAppError(ErrorTypeTimeout,
		"operation timed out: "+operation, nil,
		"operation", operation, "timeout", timeout)
}

func NewPermissionError(operation, resource string) *AppError {
	return newAppError(ErrorTypePermission,
		fmt.Sprintf("permission denied for %s on %s", operation, resource), nil,
		"operation", operation, "resource", resource)
}

// NewRemoteError reports a failed call against the practice log store.
func NewRemoteError(operation string, cause error) *AppError {
	return newAppError(ErrorTypeRemote,
		"remote call failed: "+operation, cause,
		"operation", operation)
}

// NewInvalidStateError reports a flow step invoked from the wrong state.
func NewInvalidStateError(action, state string) *AppError {
	return newAppError(ErrorTypeInvalidState,
		fmt.Sprintf("cannot %s while %s", action, state), nil,
		"action", action, "state", state)
}

// WrapError classifies an arbitrary error under errorType.
func WrapError(err error, errorType ErrorType, message string) *AppError {
	return newAppError(errorType, message, err)
}

// AsAppError finds the first AppError in err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func IsErrorType(err error, errorType ErrorType) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.IsType(errorType)
}

// GetUserMessage is the line to print for err. Plain errors are returned
// as-is.
func GetUserMessage(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.UserMessage()
	}
	return err.Error()
}

func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return unknownKind.code
}

// ShouldLogError is false for errors the user caused and can fix.
func ShouldLogError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return !appErr.Type.kind().userFacing
	}
	return true
}
