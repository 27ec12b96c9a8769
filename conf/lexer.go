package conf

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexer splits source text into tokens on demand. It holds only a cursor;
// each call to [Lexer.NextToken] scans exactly one token.
type Lexer struct {
	src    string
	source string // file name for errors
	pos    int    // byte offset of the next unread rune
	line   int
	column int
}

// NewLexer returns a Lexer positioned at the start of src.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1, column: 1}
}

// NextToken scans and returns the next token. Once the input is exhausted it
// returns a [TokenEOF] token at the same position on every call.
//
// The only error is a [*LexError] for a quoted string with no closing quote.
// The Lexer should not be used after an error.
func (l *Lexer) NextToken() (Token, error) {
	l.skipSpace()

	if l.eof() {
		return l.token(TokenEOF, ""), nil
	}

	r, _ := l.peek()

	switch r {
	case '#':
		return l.comment(), nil

	case '{':
		return l.single(TokenOpenBrace), nil

	case '}':
		return l.single(TokenCloseBrace), nil

	case ';':
		return l.single(TokenSemicolon), nil

	case '"', '\'':
		return l.quoted(r)

	default:
		return l.word(), nil
	}
}

func (l *Lexer) eof() bool { return l.pos >= len(l.src) }

func (l *Lexer) peek() (rune, int) {
	return utf8.DecodeRuneInString(l.src[l.pos:])
}

// advance consumes one rune and returns its raw bytes, which may be an
// invalid UTF-8 sequence.
func (l *Lexer) advance() string {
	r, w := l.peek()
	raw := l.src[l.pos : l.pos+w]

	l.pos += w

	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}

	return raw
}

func (l *Lexer) token(kind Kind, value string) Token {
	return Token{Kind: kind, Value: value, Line: l.line, Column: l.column}
}

func (l *Lexer) skipSpace() {
	for !l.eof() {
		if r, _ := l.peek(); !unicode.IsSpace(r) {
			return
		}

		l.advance()
	}
}

func (l *Lexer) single(kind Kind) Token {
	tok := l.token(kind, "")
	tok.Value = l.advance()

	return tok
}

func (l *Lexer) comment() Token {
	tok := l.token(TokenComment, "")

	l.advance() // '#'

	start := l.pos

	for !l.eof() {
		if r, _ := l.peek(); r == '\n' || r == '\r' {
			break
		}

		l.advance()
	}

	tok.Value = l.src[start:l.pos]

	return tok
}

func (l *Lexer) quoted(quote rune) (Token, error) {
	tok := l.token(TokenIdentifier, "")

	l.advance() // opening quote

	var b strings.Builder

	for {
		if l.eof() {
			return Token{}, &LexError{
				Source: l.source,
				Line:   tok.Line,
				Column: tok.Column,
				Msg:    "unterminated quoted string",
				kind:   ErrUnterminatedString,
			}
		}

		r, _ := l.peek()

		switch r {
		case quote:
			l.advance()

			tok.Value = b.String()

			return tok, nil

		case '\\':
			l.advance()

			// A trailing backslash is caught as unterminated on the next pass.
			if !l.eof() {
				b.WriteString(l.advance())
			}

		default:
			b.WriteString(l.advance())
		}
	}
}

func (l *Lexer) word() Token {
	tok := l.token(TokenIdentifier, "")
	start := l.pos

	for !l.eof() {
		r, _ := l.peek()
		if unicode.IsSpace(r) || isDelimiter(r) {
			break
		}

		l.advance()
	}

	tok.Value = l.src[start:l.pos]

	return tok
}

func isDelimiter(r rune) bool {
	switch r {
	case '{', '}', ';', '#':
		return true
	default:
		return false
	}
}
