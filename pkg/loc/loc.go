// Package loc maps byte offsets in preprocessed source back to the file
// and line they came from, using the line markers the preprocessor emits.
//
// See https://gcc.gnu.org/onlinedocs/cpp/Preprocessor-Output.html for the
// marker format.
package loc

import (
	"fmt"
	"strconv"
	"strings"
)

// Flags are the trailing numbers of a line marker, as bits.
type Flags uint

const (
	NewFile      Flags = 1 << iota // 1: start of an included file
	ReturnToFile                   // 2: back in the including file
	SystemHeader                   // 3
	ExternC                        // 4
)

// Location is a line in an original source file.
type Location struct {
	File string
	Line int
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// Resolve returns the location of the byte at offset in src, and the
// locations of the #include directives that led to it, outermost first.
// Before the first marker the file name is empty.
func Resolve(src string, offset int) (Location, []Location) {
	cur := Location{Line: 1}
	var includes []Location

	if offset > len(src) {
		offset = len(src)
	}
	for p := 0; p < offset; {
		n := strings.IndexByte(src[p:], '\n')
		if n < 0 {
			n = len(src) - p
		}
		end := p + n
		if offset <= end {
			break
		}

		if file, line, flags, ok := ParseLineMarker(src[p:end]); ok {
			if flags&NewFile != 0 {
				includes = append(includes, cur)
			}
			if flags&ReturnToFile != 0 && len(includes) > 0 {
				includes = includes[:len(includes)-1]
			}
			cur = Location{File: file, Line: line}
		} else {
			cur.Line++
		}
		p = end + 1
	}
	return cur, includes
}

// ParseLineMarker parses `# <line> "<file>" <flags>`. Escapes inside the
// file name are kept as written.
func ParseLineMarker(s string) (file string, line int, flags Flags, ok bool) {
	s, ok = strings.CutPrefix(s, "# ")
	if !ok {
		return "", 0, 0, false
	}
	num, rest, ok := strings.Cut(s, " ")
	if !ok {
		return "", 0, 0, false
	}
	line, err := strconv.Atoi(num)
	if err != nil || line < 0 {
		return "", 0, 0, false
	}
	rest, ok = strings.CutPrefix(rest, "\"")
	if !ok {
		return "", 0, 0, false
	}

	n := 0
	for {
		i := strings.IndexAny(rest[n:], "\"\\")
		if i < 0 {
			return "", 0, 0, false
		}
		n += i
		if rest[n] == '"' {
			break
		}
		// skip the backslash and the escaped byte
		n += 2
		if n > len(rest) {
			return "", 0, 0, false
		}
	}
	file, rest = rest[:n], rest[n+1:]

	for i := 0; i < len(rest); i++ {
		if c := rest[i]; c >= '1' && c <= '4' {
			flags |= 1 << (c - '1')
		}
	}
	return file, line, flags, true
}
