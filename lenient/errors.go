package lenient

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrSyntax is matched (with errors.Is) by every *SyntaxError.
var ErrSyntax = fmt.Errorf("lenient: syntax error")

// SyntaxError reports where the text could not be read.
type SyntaxError struct {
	Offset int // byte offset into the input
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("lenient: %s at offset %d", e.Msg, e.Offset)
}

func (e *SyntaxError) Is(err error) bool { return err == ErrSyntax }

func syntaxErrorf(offset int, format string, args ...interface{}) error {
	return errors.WithStack(&SyntaxError{
		Offset: offset,
		Msg:    fmt.Sprintf(format, args...),
	})
}
