package driver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/raymyers/cparse/pkg/loc"
	"github.com/raymyers/cparse/pkg/parser"
)

// PreprocessorError reports that the input could not be preprocessed or
// read.
type PreprocessorError struct {
	Path string
	Err  error
}

func (e *PreprocessorError) Error() string {
	return fmt.Sprintf("preprocessor error: %v", e.Err)
}

func (e *PreprocessorError) Unwrap() error { return e.Err }

// SyntaxError reports a parse failure in preprocessed source. Line and
// Column refer to the preprocessed text; Location and Includes map the
// offset back to the original files.
type SyntaxError struct {
	Source   string
	Line     int
	Column   int
	Offset   int
	Expected []string

	Location loc.Location
	Includes []loc.Location

	Err *parser.SyntaxError
}

func newSyntaxError(source string, err error) *SyntaxError {
	var perr *parser.SyntaxError
	if !errors.As(err, &perr) {
		// the parser only returns *parser.SyntaxError
		panic(fmt.Sprintf("driver: unexpected parse error %T: %v", err, err))
	}
	where, includes := loc.Resolve(source, perr.Offset)
	return &SyntaxError{
		Source:   source,
		Line:     perr.Line,
		Column:   perr.Column,
		Offset:   perr.Offset,
		Expected: perr.Expected,
		Location: where,
		Includes: includes,
		Err:      perr,
	}
}

func (e *SyntaxError) Error() string {
	return "syntax error: " + e.Err.Error()
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// Report renders the error with its original location and include stack.
func (e *SyntaxError) Report() string {
	var sb strings.Builder
	sb.WriteString(e.Error())
	if e.Location.File != "" {
		fmt.Fprintf(&sb, "\n  at %s", e.Location)
	}
	for i := len(e.Includes) - 1; i >= 0; i-- {
		fmt.Fprintf(&sb, "\n  included from %s", e.Includes[i])
	}
	return sb.String()
}
