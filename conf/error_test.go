package conf

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestError_IsSurvivesWrapAndWith(t *testing.T) {
	cause := errors.New("boom")

	err := ErrReadInput.Wrap(cause).With(slog.String("file", "a.conf"))

	if !errors.Is(err, ErrReadInput) {
		t.Error("derived error does not match its sentinel")
	}

	if errors.Is(err, ErrNotFound) {
		t.Error("derived error matches an unrelated sentinel")
	}

	if !errors.Is(err, cause) {
		t.Error("cause not reachable")
	}

	if err.Error() != "failed to read input: boom" {
		t.Errorf("message %q", err.Error())
	}
}

func TestError_WithDoesNotShareAttrs(t *testing.T) {
	base := ErrNotFound.With(slog.String("a", "1"))

	x := base.With(slog.String("x", "1"))
	y := base.With(slog.String("y", "1"))

	if len(x.attrs) != 2 || len(y.attrs) != 2 || x.attrs[1].Key != "x" || y.attrs[1].Key != "y" {
		t.Errorf("attrs: %v %v", x.attrs, y.attrs)
	}
}

func TestError_LogValue(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(slog.NewTextHandler(&buf, nil))

	err := ErrNotFound.Wrap(errors.New("gone")).With(slog.String("path", "http[0]"))
	logger.Error("query", slog.Any("err", err))

	out := buf.String()
	for _, want := range []string{
		`err.error="directive not found"`,
		"err.cause=gone",
		"err.path=http[0]",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %q", want, out)
		}
	}
}

func TestSyntaxError_Snippet(t *testing.T) {
	src := "a {\n  b\n}\n"

	_, err := Parse(src)

	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("expected *SyntaxError, got %v", err)
	}

	want := "  3 | }\n      ^\n"
	if got := se.Snippet(src); got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	if got := se.Snippet("only one line"); got != "" {
		t.Errorf("snippet for out-of-range line: %q", got)
	}
}

func TestLexError_Snippet(t *testing.T) {
	src := "x;\r\nroot \"/srv;\n"

	_, err := Parse(src)

	var le *LexError
	if !errors.As(err, &le) {
		t.Fatalf("expected *LexError, got %v", err)
	}

	want := "  2 | root \"/srv;\n           ^\n"
	if got := le.Snippet(src); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSyntaxError_LogValue(t *testing.T) {
	_, err := Parse("a {")

	var buf bytes.Buffer

	slog.New(slog.NewTextHandler(&buf, nil)).Error("parse", slog.Any("err", err))

	out := buf.String()
	for _, want := range []string{"err.line=1", "err.block=a", "err.token="} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %q", want, out)
		}
	}
}
