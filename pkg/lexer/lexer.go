// Package lexer tokenizes preprocessed C source.
//
// Keywords are returned as TokenIdent: which words are reserved depends on
// the language flavor, so the parser decides. Line markers and other
// directive lines left by the preprocessor are skipped.
package lexer

// Lexer tokenizes C source code
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // next reading position
	ch      byte // current character
	line    int
	column  int
	atBOL   bool // only whitespace seen since the last newline
}

// New creates a new Lexer for the given input
func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, atBOL: true}
	l.readChar()
	return l
}

// Tokenize returns every token of input, ending with TokenEOF.
func Tokenize(input string) []Token {
	l := New(input)
	var toks []Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == TokenEOF {
			return toks
		}
	}
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPos >= len(l.input) {
		l.ch = 0 // EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
	l.column++
}

func (l *Lexer) peekChar() byte {
	return l.peekAt(0)
}

func (l *Lexer) peekAt(n int) byte {
	if l.readPos+n >= len(l.input) {
		return 0
	}
	return l.input[l.readPos+n]
}

func (l *Lexer) eof() bool {
	return l.pos >= len(l.input)
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	l.skipIgnored()

	tok := Token{Pos: l.pos, Line: l.line, Column: l.column}
	if l.eof() {
		tok.Type = TokenEOF
		tok.End = l.pos
		return tok
	}
	l.atBOL = false

	switch {
	case isIdentStart(l.ch):
		word := l.readIdentifier()
		switch {
		case l.ch == '"' && isStringPrefix(word):
			tok.Type = l.readQuoted('"', TokenString)
		case l.ch == '\'' && isCharPrefix(word):
			tok.Type = l.readQuoted('\'', TokenChar)
		default:
			tok.Type = TokenIdent
		}
	case isDigit(l.ch) || (l.ch == '.' && isDigit(l.peekChar())):
		l.readNumber()
		tok.Type = TokenNumber
	case l.ch == '"':
		tok.Type = l.readQuoted('"', TokenString)
	case l.ch == '\'':
		tok.Type = l.readQuoted('\'', TokenChar)
	default:
		tok.Type = l.readPunctuator()
	}

	tok.End = l.pos
	tok.Literal = l.input[tok.Pos:tok.End]
	return tok
}

func (l *Lexer) skipIgnored() {
	for !l.eof() {
		switch {
		case l.ch == '\n':
			l.atBOL = true
			l.readChar()
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\f' || l.ch == '\v':
			l.readChar()
		case l.ch == '\\' && l.peekChar() == '\n':
			l.readChar()
			l.readChar()
		case l.ch == '#' && l.atBOL:
			// line marker or leftover directive
			for !l.eof() && l.ch != '\n' {
				l.readChar()
			}
		case l.ch == '/' && l.peekChar() == '/':
			for !l.eof() && l.ch != '\n' {
				l.readChar()
			}
		case l.ch == '/' && l.peekChar() == '*':
			l.readChar() // consume /
			l.readChar() // consume *
			for !l.eof() && !(l.ch == '*' && l.peekChar() == '/') {
				l.readChar()
			}
			if !l.eof() {
				l.readChar() // consume *
				l.readChar() // consume /
			}
		default:
			return
		}
	}
}

func (l *Lexer) readIdentifier() string {
	pos := l.pos
	for !l.eof() && isIdentContinue(l.ch) {
		l.readChar()
	}
	return l.input[pos:l.pos]
}

// readNumber consumes a preprocessing number: digits, identifier
// characters, periods and signed exponents.
func (l *Lexer) readNumber() {
	for !l.eof() {
		switch {
		case (l.ch == 'e' || l.ch == 'E' || l.ch == 'p' || l.ch == 'P') &&
			(l.peekChar() == '+' || l.peekChar() == '-'):
			l.readChar()
			l.readChar()
		case isIdentContinue(l.ch) || l.ch == '.':
			l.readChar()
		default:
			return
		}
	}
}

// readQuoted consumes a string or character literal starting at the
// opening quote. An unterminated literal is returned as TokenIllegal.
func (l *Lexer) readQuoted(quote byte, typ TokenType) TokenType {
	l.readChar() // consume opening quote
	for !l.eof() {
		switch l.ch {
		case quote:
			l.readChar()
			return typ
		case '\\':
			l.readChar()
			if !l.eof() {
				l.readChar()
			}
		case '\n':
			return TokenIllegal
		default:
			l.readChar()
		}
	}
	return TokenIllegal
}

func (l *Lexer) readPunctuator() TokenType {
	rest := l.input[l.pos:]
	for n := 3; n > 0; n-- {
		if len(rest) < n {
			continue
		}
		if typ, ok := punctuators[rest[:n]]; ok {
			for i := 0; i < n; i++ {
				l.readChar()
			}
			return typ
		}
	}
	l.readChar()
	return TokenIllegal
}

func isStringPrefix(s string) bool {
	return s == "L" || s == "u" || s == "U" || s == "u8"
}

func isCharPrefix(s string) bool {
	return s == "L" || s == "u" || s == "U"
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' || ch == '$' || ch >= 0x80
}

func isIdentContinue(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
