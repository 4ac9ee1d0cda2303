package cli

import (
	stderrors "errors"
	"fmt"

	"practice-log/internal/errors"
	"practice-log/internal/logging"
	"practice-log/internal/validation"
)

// ErrorHandler turns service errors into the lines a command prints, and
// logs the ones that are not the user's doing.
type ErrorHandler struct{}

func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle logs err and returns "failed to <operation>: <notice>". Plain
// errors stay wrapped so callers can still inspect them.
func (eh *ErrorHandler) Handle(operation string, err error) error {
	eh.log(operation, err)
	if _, ok := errors.AsAppError(err); !ok && !validation.IsValidationError(err) {
		return fmt.Errorf("failed to %s: %w", operation, err)
	}
	return fmt.Errorf("failed to %s: %s", operation, eh.Notice(err))
}

// HandleSimple is Handle without the operation prefix or logging.
func (eh *ErrorHandler) HandleSimple(err error) error {
	return fmt.Errorf("%s", eh.Notice(err))
}

// Notice is the one-line message shown to the user for err. Field
// validation problems are listed in full; backend failures are generic.
func (eh *ErrorHandler) Notice(err error) string {
	if ve := asFieldErrors(err); ve != nil {
		return ve.GetUserFriendlyMessage()
	}
	return errors.GetUserMessage(err)
}

func asFieldErrors(err error) *validation.ValidationError {
	var ve *validation.ValidationError
	if stderrors.As(err, &ve) {
		return ve
	}
	return nil
}

func (eh *ErrorHandler) log(operation string, err error) {
	if eh.IsValidationError(err) || !errors.ShouldLogError(err) {
		logging.Debug("command failed", "op", operation, "err", err)
		return
	}
	keyvals := []any{"op", operation}
	if appErr, ok := errors.AsAppError(err); ok {
		keyvals = append(keyvals, appErr.KeyVals()...)
	} else {
		keyvals = append(keyvals, "err", err)
	}
	logging.Error("command failed", keyvals...)
}

func (eh *ErrorHandler) IsValidationError(err error) bool {
	return validation.IsValidationError(err) || errors.IsErrorType(err, errors.ErrorTypeValidation)
}

func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeNotFound)
}

// IsRemoteError reports whether err came from an unreachable or failing backend
func (eh *ErrorHandler) IsRemoteError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeRemote) ||
		errors.IsErrorType(err, errors.ErrorTypeDatabase) ||
		errors.IsErrorType(err, errors.ErrorTypeTimeout)
}

func (eh *ErrorHandler) GetErrorCode(err error) string {
	return errors.GetErrorCode(err)
}
