package errors

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	ErrMalformedRecord   = errors.New("malformed record")
	ErrMissingField      = errors.New("missing field")
	ErrTypeMismatch      = errors.New("field type mismatch")
	ErrFileUnavailable   = errors.New("journal file unavailable")
	ErrWatchSetup        = errors.New("directory watch setup failed")
	ErrInvalidDirectory  = errors.New("invalid journal directory")
	ErrConfigNotFound    = errors.New("config not found")
	ErrConfigInvalid     = errors.New("invalid configuration")
	ErrInvalidExpression = errors.New("invalid alert expression")
	ErrTimeout           = errors.New("operation timeout")
)

// Is reports whether any error in err's tree matches target.
// Is 报告 err 链中是否有错误与 target 匹配。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// maxQuotedLine caps how many bytes of a bad line are quoted in an error.
const maxQuotedLine = 64

func NewRecordError(line string, reason error) error {
	if len(line) > maxQuotedLine {
		cut := maxQuotedLine
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}
		line = line[:cut] + "..."
	}
	return fmt.Errorf("%w: %q: %v", ErrMalformedRecord, line, reason)
}

func NewFieldError(event, field string) error {
	return fmt.Errorf("%w: event=%s field=%s", ErrMissingField, event, field)
}

func NewTypeError(event, field, want string, got interface{}) error {
	return fmt.Errorf("%w: event=%s field=%s want=%s got=%T", ErrTypeMismatch, event, field, want, got)
}

func NewFileError(path string, reason error) error {
	return fmt.Errorf("%w: %s: %v", ErrFileUnavailable, path, reason)
}

func NewWatchError(dir string, reason error) error {
	return fmt.Errorf("%w: %s: %v", ErrWatchSetup, dir, reason)
}

func NewDirectoryError(dir string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidDirectory, dir, reason)
}

func NewConfigError(field string, value interface{}) error {
	return fmt.Errorf("%w: field=%s value=%v", ErrConfigInvalid, field, value)
}

func NewExpressionError(id string, reason error) error {
	return fmt.Errorf("%w: rule=%s: %v", ErrInvalidExpression, id, reason)
}
