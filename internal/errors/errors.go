package errors

import (
	stderrors "errors"
	"fmt"

	"oncosense/domain/core"
)

// Error codes reported by the CLI
const (
	CodeConfigInvalid = "CONFIG_INVALID"
	CodeInvalidInput  = "INVALID_INPUT"
	CodeExportFailed  = "EXPORT_FAILED"
	CodeInternalError = "INTERNAL_ERROR"
)

// AppError is an error with a code the CLI can report and map to an exit status
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e *AppError) Unwrap() error { return e.Cause }

// New creates an AppError without a cause
func New(code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func ConfigInvalid(message string) *AppError { return New(CodeConfigInvalid, message) }

func InvalidInput(message string) *AppError { return New(CodeInvalidInput, message) }

// ExportFailed reports an artifact that could not be written
func ExportFailed(artifact string, cause error) *AppError {
	return &AppError{Code: CodeExportFailed, Message: fmt.Sprintf("failed to export %s", artifact), Cause: cause}
}

// Wrap adds context to err. The code of the innermost AppError is kept;
// anything else is classified first.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &AppError{Code: GetCode(Classify(err)), Message: message, Cause: err}
}

// Wrapf is Wrap with a formatted message
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// GetCode returns the code of the first AppError in err's chain, or "UNKNOWN"
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Classify gives a code to errors raised by the domain. Schema, path, parse
// and range errors are the caller's input; the rest are internal.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return err
	}
	code := CodeInternalError
	switch {
	case core.IsSchemaError(err), core.IsPathError(err),
		stderrors.Is(err, core.ErrParse), stderrors.Is(err, core.ErrNegativeNumber):
		code = CodeInvalidInput
	}
	return &AppError{Code: code, Message: "analysis failed", Cause: err}
}

// ExitCode maps an error to a process exit status
func ExitCode(err error) int {
	switch GetCode(err) {
	case "UNKNOWN":
		if err == nil {
			return 0
		}
		return 1
	case CodeConfigInvalid, CodeInvalidInput:
		return 2
	case CodeExportFailed:
		return 3
	}
	return 1
}
