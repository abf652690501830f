package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Schema errors
	ErrInvalidDataSet = errors.New("invalid data set")
	ErrInvalidColumns = errors.New("invalid columns")

	// Path errors
	ErrInvalidPath          = errors.New("invalid path")
	ErrInvalidDirectoryPath = fmt.Errorf("%w: not a directory", ErrInvalidPath)

	// Value errors
	ErrNegativeNumber   = errors.New("negative number")
	ErrParse            = errors.New("parse error")
	ErrInsufficientData = errors.New("insufficient data for analysis")

	// Missing identifiers
	ErrInvalidCellLine = errors.New("invalid cell line")
	ErrInvalidUID      = errors.New("invalid UID")
)

// Error constructors with context
func Wrapf(sentinel error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
}

func NewDataSetError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidDataSet, fmt.Sprintf(format, args...))
}

func NewColumnsError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidColumns, fmt.Sprintf(format, args...))
}

func NewPathError(path string) error {
	return fmt.Errorf("%w: the path '%s' doesn't exist", ErrInvalidPath, path)
}

func NewDirectoryPathError(path string) error {
	return fmt.Errorf("%w: the path '%s' should be to directory", ErrInvalidDirectoryPath, path)
}

func NewNegativeNumberError(field string, value float64) error {
	return fmt.Errorf("%w: %s should be positive, got %v", ErrNegativeNumber, field, value)
}

func NewParseError(kind, input string) error {
	return fmt.Errorf("%w: cannot parse %s from %q", ErrParse, kind, input)
}

// Error checking helpers
func IsSchemaError(err error) bool {
	return errors.Is(err, ErrInvalidDataSet) ||
		errors.Is(err, ErrInvalidColumns) ||
		errors.Is(err, ErrInvalidCellLine) ||
		errors.Is(err, ErrInvalidUID)
}

func IsPathError(err error) bool {
	return errors.Is(err, ErrInvalidPath)
}
