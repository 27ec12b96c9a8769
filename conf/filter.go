package conf

import (
	"iter"
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// FilterEnv is the environment a filter expression is evaluated against,
// once per directive. Field names in expressions are the expr tags:
//
//	name == "listen" && "443" in args
//	block && depth == 1
//	path startsWith "http[0]:server" && value contains "ssl"
//	get(args, 1) == "default_server"
type FilterEnv struct {
	Name  string   `expr:"name"`
	Args  []string `expr:"args"`
	Value string   `expr:"value"`
	Path  string   `expr:"path"`
	Depth int      `expr:"depth"`
	Block bool     `expr:"block"`
}

func makeFilterEnv(p Path, d *Directive) FilterEnv {
	return FilterEnv{
		Name:  d.Name,
		Args:  append([]string{}, d.Args...),
		Value: d.Value(),
		Path:  p.String(),
		Depth: len(p) - 1,
		Block: d.Block,
	}
}

// Filter is a compiled boolean expression over directives.
type Filter struct {
	source  string
	program *vm.Program
}

// Compile compiles src into a Filter. The expression must produce a bool.
func Compile(src string) (*Filter, error) {
	program, err := expr.Compile(src, expr.Env(FilterEnv{}), expr.AsBool())
	if err != nil {
		return nil, ErrFilterCompile.Wrap(err).With(slog.String("filter", src))
	}

	return &Filter{source: src, program: program}, nil
}

func (f *Filter) String() string { return f.source }

// Match evaluates f against d found at path p.
func (f *Filter) Match(p Path, d *Directive) (bool, error) {
	out, err := vm.Run(f.program, makeFilterEnv(p, d))
	if err != nil {
		return false, ErrFilterEvaluate.Wrap(err).With(
			slog.String("filter", f.source),
			slog.String("path", p.String()),
		)
	}

	ok, _ := out.(bool)

	return ok, nil
}

// Select yields the directives of c, in [Config.Walk] order, for which f
// is true. Directives on which f fails to evaluate are skipped.
func (c *Config) Select(f *Filter) iter.Seq2[Path, *Directive] {
	return func(yield func(Path, *Directive) bool) {
		for p, d := range c.Walk() {
			if ok, err := f.Match(p, d); err != nil || !ok {
				continue
			}

			if !yield(p, d) {
				return
			}
		}
	}
}
