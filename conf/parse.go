package conf

import (
	"context"
	"io"
	"log/slog"
	"strconv"

	"github.com/klauspost/readahead"
)

// Parse parses src with default options.
func Parse(src string) (*Config, error) {
	return ParseString(context.Background(), src)
}

// ParseString parses src into a Config.
//
// Any lexical or syntax error aborts the parse: the result is nil and the
// error is a [*LexError] or [*SyntaxError]. No partial tree is returned.
func ParseString(ctx context.Context, src string, opts ...Option) (*Config, error) {
	o := makeOptions(opts...)

	lex := NewLexer(src)
	lex.source = o.source

	p := &parser{ctx: ctx, lex: lex, opts: o}

	o.logger.TraceContext(ctx, "parse start",
		slog.String("source", o.source),
		slog.Int("bytes", len(src)))

	cfg, err := p.parseConfig()
	if err != nil {
		o.logger.DebugContext(ctx, "parse failed", slog.Any("error", err))

		return nil, err
	}

	o.logger.TraceContext(ctx, "parse complete",
		slog.String("source", o.source),
		slog.Int("nodes", len(cfg.Nodes)))

	return cfg, nil
}

// ParseReader drains r and parses its contents. Input is read ahead
// asynchronously in a separate goroutine.
func ParseReader(ctx context.Context, r io.Reader, opts ...Option) (*Config, error) {
	src, err := readAll(r)
	if err != nil {
		return nil, err
	}

	return ParseString(ctx, src, opts...)
}

func readAll(r io.Reader) (string, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return "", ErrReadInput.Wrap(err)
	}

	return string(data), nil
}

type parser struct {
	ctx   context.Context
	lex   *Lexer
	tok   Token
	opts  options
	stack []*Directive // open blocks, innermost last
}

func (p *parser) next() error {
	tok, err := p.lex.NextToken()
	if err != nil {
		return err
	}

	p.tok = tok

	return nil
}

func (p *parser) parseConfig() (*Config, error) {
	if err := p.next(); err != nil {
		return nil, err
	}

	cfg := &Config{Nodes: []Node{}}

	for p.tok.Kind != TokenEOF {
		if err := p.ctx.Err(); err != nil {
			return nil, err
		}

		n, err := p.parseStatement()
		if err != nil {
			return nil, err
		}

		cfg.Nodes = append(cfg.Nodes, n)
	}

	return cfg, nil
}

// parseStatement parses one comment or directive starting at the current
// token. It is shared by the top level and block bodies.
func (p *parser) parseStatement() (Node, error) {
	switch p.tok.Kind {
	case TokenComment:
		c := &Comment{Text: p.tok.Value}

		return c, p.next()

	case TokenIdentifier:
		return p.parseDirective()

	default:
		return nil, p.unexpected(ErrUnexpectedToken, "directive name")
	}
}

func (p *parser) parseDirective() (*Directive, error) {
	d := &Directive{Name: p.tok.Value, Line: p.tok.Line, Column: p.tok.Column}

	if err := p.next(); err != nil {
		return nil, err
	}

	for p.tok.Kind == TokenIdentifier {
		d.Args = append(d.Args, p.tok.Value)

		if err := p.next(); err != nil {
			return nil, err
		}
	}

	switch p.tok.Kind {
	case TokenSemicolon:
		p.opts.logger.TraceContext(p.ctx, "directive",
			slog.String("name", d.Name),
			slog.Int("args", len(d.Args)),
			slog.Int("line", d.Line))

		return d, p.next()

	case TokenOpenBrace:
		return d, p.parseBlock(d)

	default:
		return nil, p.unexpected(ErrUnexpectedToken, `";"`, `"{"`)
	}
}

// parseBlock parses the body of d; the current token is its '{'.
func (p *parser) parseBlock(d *Directive) error {
	if len(p.stack) >= p.opts.maxDepth {
		err := p.unexpected(ErrMaxDepth)
		err.Msg = "block nesting exceeds " + strconv.Itoa(p.opts.maxDepth) + " levels"

		return err
	}

	d.Block = true
	d.Children = []Node{}

	p.stack = append(p.stack, d)
	defer func() { p.stack = p.stack[:len(p.stack)-1] }()

	p.opts.logger.TraceContext(p.ctx, "enter block",
		slog.String("name", d.Name),
		slog.Int("depth", len(p.stack)),
		slog.Int("line", d.Line))

	if err := p.next(); err != nil {
		return err
	}

	for {
		switch p.tok.Kind {
		case TokenCloseBrace:
			return p.next()

		case TokenEOF:
			return &SyntaxError{
				Source:   p.opts.source,
				Token:    p.tok,
				Line:     d.Line,
				Column:   d.Column,
				Expected: []string{`"}"`},
				Block:    d.Name,
				Msg:      "unterminated block " + strconv.Quote(d.Name),
				kind:     ErrUnterminatedBlock,
			}
		}

		n, err := p.parseStatement()
		if err != nil {
			return err
		}

		d.Children = append(d.Children, n)
	}
}

func (p *parser) unexpected(kind *Error, expected ...string) *SyntaxError {
	e := &SyntaxError{
		Source:   p.opts.source,
		Token:    p.tok,
		Line:     p.tok.Line,
		Column:   p.tok.Column,
		Expected: expected,
		Msg:      "unexpected " + p.tok.describe(),
		kind:     kind,
	}

	if n := len(p.stack); n > 0 {
		e.Block = p.stack[n-1].Name
	}

	return e
}
