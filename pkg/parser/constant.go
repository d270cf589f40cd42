package parser

import (
	"strconv"
	"strings"

	"github.com/raymyers/cparse/pkg/cabs"
	"github.com/raymyers/cparse/pkg/lexer"
	"github.com/raymyers/cparse/pkg/span"
)

func (p *parser[N]) constant() (cabs.Node[cabs.Constant], bool) {
	tok := p.cur()
	sp := span.New(tok.Pos, tok.End)
	switch tok.Type {
	case lexer.TokenNumber:
		if c, ok := classifyNumber(tok.Literal, p.env.GNU()); ok {
			p.nextToken()
			return span.NewNode(c, sp), true
		}
	case lexer.TokenChar:
		p.nextToken()
		return span.NewNode[cabs.Constant](cabs.Character(tok.Literal), sp), true
	}
	p.fail("<constant>")
	return cabs.Node[cabs.Constant]{}, false
}

// classifyNumber turns a preprocessing number into an integer or floating
// constant. Binary literals and imaginary suffixes need gnu.
func classifyNumber(s string, gnu bool) (cabs.Constant, bool) {
	if f, ok := parseFloat(s, gnu); ok {
		return f, true
	}
	if i, ok := parseInteger(s, gnu); ok {
		return i, true
	}
	return nil, false
}

func parseInteger(s string, gnu bool) (cabs.Integer, bool) {
	var in cabs.Integer
	var rest string
	switch {
	case hasPrefixFold(s, "0x"):
		n := countWhile(s[2:], isHexDigit)
		if n == 0 {
			return in, false
		}
		in.Base, in.Number, rest = cabs.BaseHexadecimal, s[2:2+n], s[2+n:]
	case gnu && hasPrefixFold(s, "0b"):
		n := countWhile(s[2:], func(c byte) bool { return c == '0' || c == '1' })
		if n == 0 {
			return in, false
		}
		in.Base, in.Number, rest = cabs.BaseBinary, s[2:2+n], s[2+n:]
	case strings.HasPrefix(s, "0"):
		n := countWhile(s[1:], func(c byte) bool { return c >= '0' && c <= '7' })
		if n == 0 {
			in.Base, in.Number, rest = cabs.BaseDecimal, "0", s[1:]
		} else {
			in.Base, in.Number, rest = cabs.BaseOctal, s[1:1+n], s[1+n:]
		}
	default:
		n := countWhile(s, isDigit)
		if n == 0 {
			return in, false
		}
		in.Base, in.Number, rest = cabs.BaseDecimal, s[:n], s[n:]
	}
	suffix, ok := integerSuffix(rest, gnu)
	in.Suffix = suffix
	return in, ok
}

// integerSuffix accepts u, l, ll in either order, with l and ll spelled
// in one case.
func integerSuffix(s string, gnu bool) (cabs.IntegerSuffix, bool) {
	var suf cabs.IntegerSuffix
	if gnu {
		s, suf.Imaginary = trimImaginary(s)
	}
	unsigned := func() {
		if !suf.Unsigned && s != "" && (s[0] == 'u' || s[0] == 'U') {
			suf.Unsigned = true
			s = s[1:]
		}
	}
	unsigned()
	switch {
	case strings.HasPrefix(s, "ll") || strings.HasPrefix(s, "LL"):
		suf.Size, s = cabs.SizeLongLong, s[2:]
	case strings.HasPrefix(s, "l") || strings.HasPrefix(s, "L"):
		suf.Size, s = cabs.SizeLong, s[1:]
	}
	unsigned()
	return suf, s == ""
}

func parseFloat(s string, gnu bool) (cabs.Float, bool) {
	var f cabs.Float
	var n int
	if hasPrefixFold(s, "0x") {
		body := s[2:]
		n = mantissa(body, isHexDigit)
		if n == 0 {
			return f, false
		}
		e := exponent(body[n:], "pP")
		if e == 0 {
			return f, false
		}
		n += e
		f.Base, f.Number = cabs.FloatHexadecimal, body[:n]
		s = body[n:]
	} else {
		n = mantissa(s, isDigit)
		if n == 0 {
			return f, false
		}
		hasDot := strings.Contains(s[:n], ".")
		e := exponent(s[n:], "eE")
		if !hasDot && e == 0 {
			return f, false
		}
		n += e
		f.Base, f.Number = cabs.FloatDecimal, s[:n]
		s = s[n:]
	}
	suffix, ok := floatSuffix(s, gnu)
	f.Suffix = suffix
	return f, ok
}

// mantissa returns the length of digits with an optional period, or zero
// when no digit is present.
func mantissa(s string, digit func(byte) bool) int {
	n := countWhile(s, digit)
	digits := n
	if n < len(s) && s[n] == '.' {
		frac := countWhile(s[n+1:], digit)
		n += 1 + frac
		digits += frac
	}
	if digits == 0 {
		return 0
	}
	return n
}

// exponent returns the length of an exponent introduced by one of marks,
// or zero when there is none.
func exponent(s string, marks string) int {
	if s == "" || !strings.ContainsRune(marks, rune(s[0])) {
		return 0
	}
	n := 1
	if n < len(s) && (s[n] == '+' || s[n] == '-') {
		n++
	}
	digits := countWhile(s[n:], isDigit)
	if digits == 0 {
		return 0
	}
	return n + digits
}

func floatSuffix(s string, gnu bool) (cabs.FloatSuffix, bool) {
	var suf cabs.FloatSuffix
	if gnu {
		s, suf.Imaginary = trimImaginary(s)
	}
	if t, ok := ts18661Suffix(s); ok {
		suf.Format = cabs.FloatFormat{Kind: cabs.FormatTS18661, Extended: t}
		return suf, true
	}
	switch s {
	case "":
		suf.Format.Kind = cabs.FormatDouble
	case "f", "F":
		suf.Format.Kind = cabs.FormatFloat
	case "l", "L":
		suf.Format.Kind = cabs.FormatLongDouble
	default:
		return suf, false
	}
	return suf, true
}

var ts18661Widths = map[cabs.TS18661FloatFormat][]int{
	cabs.BinaryInterchange:  {16, 32, 64, 128},
	cabs.BinaryExtended:     {32, 64, 128},
	cabs.DecimalInterchange: {32, 64, 128},
	cabs.DecimalExtended:    {64, 128},
}

// ts18661Suffix parses fN, fNx, dN and dNx.
func ts18661Suffix(s string) (cabs.TS18661FloatType, bool) {
	var t cabs.TS18661FloatType
	if len(s) < 2 {
		return t, false
	}
	decimal := s[0] == 'd' || s[0] == 'D'
	if !decimal && s[0] != 'f' && s[0] != 'F' {
		return t, false
	}
	s = s[1:]
	n := countWhile(s, isDigit)
	if n == 0 {
		return t, false
	}
	extended := false
	switch s[n:] {
	case "":
	case "x", "X":
		extended = true
	default:
		return t, false
	}
	t.Width, _ = strconv.Atoi(s[:n])
	switch {
	case decimal && extended:
		t.Format = cabs.DecimalExtended
	case decimal:
		t.Format = cabs.DecimalInterchange
	case extended:
		t.Format = cabs.BinaryExtended
	default:
		t.Format = cabs.BinaryInterchange
	}
	for _, w := range ts18661Widths[t.Format] {
		if w == t.Width {
			return t, true
		}
	}
	return t, false
}

// trimImaginary strips a GNU i or j suffix from either end of s.
func trimImaginary(s string) (string, bool) {
	isImag := func(c byte) bool { return c == 'i' || c == 'I' || c == 'j' || c == 'J' }
	switch {
	case s != "" && isImag(s[len(s)-1]):
		return s[:len(s)-1], true
	case s != "" && isImag(s[0]):
		return s[1:], true
	}
	return s, false
}

func countWhile(s string, f func(byte) bool) int {
	n := 0
	for n < len(s) && f(s[n]) {
		n++
	}
	return n
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
