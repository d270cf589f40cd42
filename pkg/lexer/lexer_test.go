package lexer

import "testing"

func TestNextToken(t *testing.T) {
	input := `int main() { return 42; }`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{TokenIdent, "int"},
		{TokenIdent, "main"},
		{TokenLParen, "("},
		{TokenRParen, ")"},
		{TokenLBrace, "{"},
		{TokenIdent, "return"},
		{TokenNumber, "42"},
		{TokenSemicolon, ";"},
		{TokenRBrace, "}"},
		{TokenEOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestOperators(t *testing.T) {
	input := `+ - * / % = == != < <= > >= && || ! & | ^ ~ << >> <<= >>= -> ... ++ -- ? : . ,`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{TokenPlus, "+"},
		{TokenMinus, "-"},
		{TokenStar, "*"},
		{TokenSlash, "/"},
		{TokenPercent, "%"},
		{TokenAssign, "="},
		{TokenEq, "=="},
		{TokenNe, "!="},
		{TokenLt, "<"},
		{TokenLe, "<="},
		{TokenGt, ">"},
		{TokenGe, ">="},
		{TokenAnd, "&&"},
		{TokenOr, "||"},
		{TokenNot, "!"},
		{TokenAmpersand, "&"},
		{TokenPipe, "|"},
		{TokenCaret, "^"},
		{TokenTilde, "~"},
		{TokenShl, "<<"},
		{TokenShr, ">>"},
		{TokenShlAssign, "<<="},
		{TokenShrAssign, ">>="},
		{TokenArrow, "->"},
		{TokenEllipsis, "..."},
		{TokenIncrement, "++"},
		{TokenDecrement, "--"},
		{TokenQuestion, "?"},
		{TokenColon, ":"},
		{TokenDot, "."},
		{TokenComma, ","},
		{TokenEOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType || tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - expected=%q %q, got=%q %q",
				i, tt.expectedType, tt.expectedLiteral, tok.Type, tok.Literal)
		}
	}
}

func TestLiterals(t *testing.T) {
	tests := []struct {
		input        string
		expectedType TokenType
	}{
		{`0x2A.DEp19L`, TokenNumber},
		{`1e+10`, TokenNumber},
		{`.5f`, TokenNumber},
		{`042lu`, TokenNumber},
		{`1.2.3`, TokenNumber},
		{`'a'`, TokenChar},
		{`'\''`, TokenChar},
		{`L'\xde'`, TokenChar},
		{`"a\"b"`, TokenString},
		{`u8"utf"`, TokenString},
		{`L"wide"`, TokenString},
		{`$var`, TokenIdent},
	}

	for i, tt := range tests {
		tok := New(tt.input).NextToken()
		if tok.Type != tt.expectedType {
			t.Errorf("tests[%d] - %q: tokentype wrong. expected=%q, got=%q", i, tt.input, tt.expectedType, tok.Type)
		}
		if tok.Literal != tt.input {
			t.Errorf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.input, tok.Literal)
		}
	}
}

func TestPrefixNotAString(t *testing.T) {
	toks := Tokenize(`u8 L x"`)
	if toks[0].Type != TokenIdent || toks[0].Literal != "u8" {
		t.Fatalf("got %v", toks[0])
	}
	if toks[1].Type != TokenIdent || toks[1].Literal != "L" {
		t.Fatalf("got %v", toks[1])
	}
	if toks[3].Type != TokenIllegal {
		t.Fatalf("unterminated string should be illegal, got %v", toks[3])
	}
}

func TestSkipsLineMarkersAndComments(t *testing.T) {
	input := "# 1 \"foo.c\"\nint /* c */ a; // trailing\n  #pragma once\nb"
	toks := Tokenize(input)

	want := []string{"int", "a", ";", "b", ""}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, w := range want {
		if toks[i].Literal != w {
			t.Errorf("tests[%d] - literal wrong. expected=%q, got=%q", i, w, toks[i].Literal)
		}
	}
}

func TestHashInsideLineIsPunctuation(t *testing.T) {
	toks := Tokenize("a # b")
	if toks[1].Type != TokenIllegal || toks[1].Literal != "#" {
		t.Fatalf("got %v", toks[1])
	}
}

func TestPositions(t *testing.T) {
	input := "int\n  foo;"
	toks := Tokenize(input)

	foo := toks[1]
	if foo.Pos != 6 || foo.End != 9 {
		t.Errorf("foo span wrong. expected=6..9, got=%d..%d", foo.Pos, foo.End)
	}
	if foo.Line != 2 || foo.Column != 3 {
		t.Errorf("foo position wrong. expected=2:3, got=%d:%d", foo.Line, foo.Column)
	}

	eof := toks[len(toks)-1]
	if eof.Type != TokenEOF || eof.Pos != len(input) {
		t.Errorf("eof wrong: %+v", eof)
	}
}
