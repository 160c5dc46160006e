package tagify

import (
	"github.com/muir/commonerrors"
	"github.com/pkg/errors"
)

type invalidPatternError struct {
	cause error
}

// InvalidPatternError annotates an error as coming from compiling the
// prefix or a tag's value pattern. The prefix and custom value patterns
// are caller supplied regular expressions so this is a usage error.
func InvalidPatternError(err error) error {
	if err == nil {
		return nil
	}
	return invalidPatternError{
		cause: commonerrors.UsageError(errors.WithStack(err)),
	}
}

func (e invalidPatternError) Error() string { return e.cause.Error() }
func (e invalidPatternError) Unwrap() error { return e.cause }
func (e invalidPatternError) Cause() error  { return e.cause }
func (e invalidPatternError) Is(err error) bool {
	_, ok := err.(invalidPatternError)
	return ok
}

// IsInvalidPatternError is true when a prefix or value pattern failed
// to compile, however deeply that failure has since been wrapped.
func IsInvalidPatternError(err error) bool {
	var e invalidPatternError
	return errors.Is(err, e)
}
