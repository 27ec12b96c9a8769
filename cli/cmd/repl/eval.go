package repl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ardnew/ngxconf/conf"
)

// commands are the control commands, offered as completions after ":".
var commands = []string{":help", ":paths", ":find", ":tree", ":print", ":edit", ":clear", ":quit"}

// suggestLimit bounds the "did you mean" hints after a miss.
const suggestLimit = 3

func helpMessage() string {
	return `
Enter a directive path to print it, e.g. http:server[1]:listen.
Bare names select the first match; [n] selects the n'th.

Commands:

  :help         Print this help
  :paths        List every directive path
  :find EXPR    List directives matching a filter, e.g. name == "listen"
  :tree         Print the syntax tree
  :print        Print the whole configuration
  :edit         Edit the configuration in $EDITOR
  :clear        Clear screen
  :quit         Exit

Completions appear as you type; Tab / Shift-Tab cycle through them.
Up / Down walk the history. Ctrl+C on an empty line or Ctrl+D exits.
`
}

// evaluate runs input against cfg and returns the text to print. Commands
// that affect the session itself (:edit, :clear, :quit) are handled by the
// model and never reach evaluate.
func evaluate(cfg *conf.Config, input string) (string, error) {
	input = strings.TrimSpace(input)

	if cfg == nil {
		return "", ErrNoConfig
	}

	if !strings.HasPrefix(input, ":") {
		return lookup(cfg, input)
	}

	name, arg, _ := strings.Cut(input, " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case ":h", ":help":
		return helpMessage(), nil

	case ":paths":
		return strings.Join(cfg.Paths(), "\n"), nil

	case ":print":
		return strings.TrimSuffix(conf.Print(cfg), "\n"), nil

	case ":tree":
		var b strings.Builder
		if err := cfg.FormatTree(&b); err != nil {
			return "", err
		}

		return strings.TrimSuffix(b.String(), "\n"), nil

	case ":find":
		return find(cfg, arg)

	default:
		return "", fmt.Errorf("unknown command: %s (try :help)", name)
	}
}

func lookup(cfg *conf.Config, path string) (string, error) {
	d, ok := cfg.ResolvePath(path)
	if ok {
		return strings.TrimSuffix(conf.PrintNode(d), "\n"), nil
	}

	msg := "not found: " + path
	if hints := cfg.Suggest(path, suggestLimit); len(hints) > 0 {
		msg += " (did you mean " + strings.Join(hints, ", ") + "?)"
	}

	return "", errors.New(msg)
}

func find(cfg *conf.Config, expr string) (string, error) {
	if expr == "" {
		return "", errors.New("usage: :find EXPR")
	}

	f, err := conf.Compile(expr)
	if err != nil {
		return "", err
	}

	var lines []string

	for p, d := range cfg.Select(f) {
		lines = append(lines, p.String()+"  "+conf.Inline(d))
	}

	if len(lines) == 0 {
		return "no matches", nil
	}

	return strings.Join(lines, "\n"), nil
}
