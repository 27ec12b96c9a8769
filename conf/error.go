package conf

import (
	"errors"
	"log/slog"
	"slices"
	"strconv"
	"strings"
)

// Sentinel errors. Errors returned by this package wrap one or more of these
// so callers can test them with [errors.Is].
var (
	ErrLex                = NewError("lexical error")
	ErrSyntax             = NewError("syntax error")
	ErrUnterminatedString = NewError("unterminated quoted string")
	ErrUnterminatedBlock  = NewError("unterminated block")
	ErrUnexpectedToken    = NewError("unexpected token")
	ErrMaxDepth           = NewError("maximum block depth exceeded")
	ErrReadInput          = NewError("failed to read input")
	ErrNotFound           = NewError("directive not found")
	ErrNotToggleable      = NewError("directive cannot be toggled")
	ErrFilterCompile      = NewError("filter compilation failed")
	ErrFilterEvaluate     = NewError("filter evaluation failed")
)

// Error is an error with optional structured logging attributes. Errors
// derived from a sentinel with [Error.Wrap] or [Error.With] still match that
// sentinel under [errors.Is].
type Error struct {
	base  *Error
	msg   string
	err   error
	attrs []slog.Attr
}

// NewError returns a new sentinel Error.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is e or the sentinel e was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e == t || (e.base != nil && e.base == t)
}

func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap returns a copy of e wrapping err.
func (e *Error) Wrap(err error) *Error {
	return &Error{base: e.root(), msg: e.msg, err: err, attrs: e.attrs}
}

// With returns a copy of e with attrs appended.
func (e *Error) With(attrs ...slog.Attr) *Error {
	return &Error{
		base:  e.root(),
		msg:   e.msg,
		err:   e.err,
		attrs: append(slices.Clip(e.attrs), attrs...),
	}
}

func (e *Error) root() *Error {
	if e.base != nil {
		return e.base
	}

	return e
}

// LexError reports a malformed token.
type LexError struct {
	Source string // file name, if known
	Line   int
	Column int
	Msg    string
	kind   *Error
}

func (e *LexError) Error() string {
	return position(e.Source, e.Line, e.Column) + e.Msg
}

func (e *LexError) Unwrap() []error { return []error{ErrLex, e.kind} }

func (e *LexError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", e.Msg),
		slog.String("source", e.Source),
		slog.Int("line", e.Line),
		slog.Int("column", e.Column),
	)
}

// Snippet renders the offending source line with a caret under the column.
func (e *LexError) Snippet(src string) string {
	return snippet(src, e.Line, e.Column)
}

// SyntaxError reports a token sequence that does not form a statement.
type SyntaxError struct {
	Source   string // file name, if known
	Token    Token  // offending token
	Line     int
	Column   int
	Expected []string // quoted descriptions of acceptable tokens
	Block    string   // innermost open block, if any
	Msg      string
	kind     *Error
}

func (e *SyntaxError) Error() string {
	var b strings.Builder

	b.WriteString(position(e.Source, e.Line, e.Column))
	b.WriteString(e.Msg)

	if len(e.Expected) > 0 {
		b.WriteString(" (expected ")
		b.WriteString(strings.Join(e.Expected, " or "))
		b.WriteByte(')')
	}

	return b.String()
}

func (e *SyntaxError) Unwrap() []error { return []error{ErrSyntax, e.kind} }

func (e *SyntaxError) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("error", e.Msg),
		slog.String("source", e.Source),
		slog.Int("line", e.Line),
		slog.Int("column", e.Column),
		slog.String("token", e.Token.Kind.String()),
	}

	if e.Block != "" {
		attrs = append(attrs, slog.String("block", e.Block))
	}

	if len(e.Expected) > 0 {
		attrs = append(attrs, slog.String("expected", strings.Join(e.Expected, ", ")))
	}

	return slog.GroupValue(attrs...)
}

// Snippet renders the offending source line with a caret under the column.
func (e *SyntaxError) Snippet(src string) string {
	return snippet(src, e.Line, e.Column)
}

func position(source string, line, column int) string {
	var b strings.Builder

	if source != "" {
		b.WriteString(source)
		b.WriteString(": ")
	}

	b.WriteString("line ")
	b.WriteString(strconv.Itoa(line))
	b.WriteString(", column ")
	b.WriteString(strconv.Itoa(column))
	b.WriteString(": ")

	return b.String()
}

// snippet formats line of src as
//
//	  12 | server_name example.com
//	       ^
//
// It returns "" when line is out of range. Column counts runes.
func snippet(src string, line, column int) string {
	lines := strings.Split(src, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}

	text := strings.TrimSuffix(lines[line-1], "\r")
	num := strconv.Itoa(line)

	var b strings.Builder

	b.WriteString("  ")
	b.WriteString(num)
	b.WriteString(" | ")
	b.WriteString(text)
	b.WriteByte('\n')

	// 2 leading spaces + " | "
	pad := len(num) + 5
	if column > 1 {
		pad += column - 1
	}

	b.WriteString(strings.Repeat(" ", pad))
	b.WriteString("^\n")

	return b.String()
}

// IsParseError reports whether err came from lexing or parsing.
func IsParseError(err error) bool {
	return errors.Is(err, ErrLex) || errors.Is(err, ErrSyntax)
}
