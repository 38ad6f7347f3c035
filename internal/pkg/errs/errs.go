package errs

import (
	"fmt"
	"net/http"
	"strings"

	"geopolitik/internal/pkg/logx"
)

// CustomError is the error value passed between services and the HTTP layer.
// It carries a business code, a client-facing message and the HTTP status to reply with.
type CustomError struct {
	Code    int
	Message string
	Status  int
}

// Error implements the error interface.
func (e CustomError) Error() string {
	return fmt.Sprintf("Error Code %d (HTTP %d): %s", e.Code, e.Status, e.Message)
}

// Is reports whether target is a CustomError with the same business code.
func (e *CustomError) Is(target error) bool {
	t, ok := target.(*CustomError)
	if !ok {
		return false
	}
	return e != nil && t != nil && e.Code == t.Code
}

// NewError builds a *CustomError from a registered code.
//
// For ErrUnknown, details[0] may carry the underlying error, which is logged and
// never exposed to the client. For other codes, details are printf arguments for
// message templates containing a verb. An unregistered code yields ErrUnknown.
func NewError(code int, details ...any) *CustomError {
	templateErr, ok := errorMap[code]

	if !ok {
		logx.Error(
			fmt.Errorf("attempted to create an error with an unknown code in errorMap"),
			"Unknown error code requested",
			"requested_code", code,
		)

		unknownErr := errorMap[ErrUnknown]
		return &CustomError{
			Code:    unknownErr.Code,
			Message: unknownErr.Message,
			Status:  unknownErr.Status,
		}
	}

	customErr := templateErr

	if customErr.Status == 0 {
		customErr.Status = http.StatusBadRequest
	}

	switch {
	case code >= ErrUnknown && len(details) > 0:
		if originalErr, ok := details[0].(error); ok {
			logx.Error(originalErr, "Handling internal error with underlying cause", "code", code)
		}
	case len(details) > 0 && strings.Contains(customErr.Message, "%"):
		customErr.Message = fmt.Sprintf(customErr.Message, details...)
	case len(details) > 0:
		logx.Warn("Details provided for error, but message template has no formatting placeholders. Details ignored.", "code", code)
	case strings.Contains(customErr.Message, "%s"):
		customErr.Message = strings.ReplaceAll(customErr.Message, ": %s", "")
	}

	return &customErr
}

// Internal wraps an unexpected failure as ErrUnknown, logging the cause.
func Internal(err error) *CustomError {
	return NewError(ErrUnknown, err)
}
