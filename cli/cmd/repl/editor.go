package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/ardnew/ngxconf/conf"
	"github.com/ardnew/ngxconf/log"
)

const defaultEditor = "vi"

// editCommand implements [tea.ExecCommand] for the edit-parse-retry loop.
// It writes the configuration to a temp file, opens the user's editor, and
// parses the result. On a parse error the user is asked whether to re-edit;
// declining exits the program.
type editCommand struct {
	cfg     *conf.Config
	ctxFunc func() context.Context
	newCfg  *conf.Config
	logger  log.Logger
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

func (c *editCommand) SetStdin(r io.Reader) { c.stdin = r }
func (c *editCommand) SetStdout(w io.Writer) { c.stdout = w }
func (c *editCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run executes the edit loop. An emptied file cancels the edit.
func (c *editCommand) Run() error {
	ctx := c.ctxFunc()
	content := conf.Print(c.cfg)

	f, err := os.CreateTemp("", "ngxconf-repl-*.conf")
	if err != nil {
		return err
	}

	path := f.Name()
	defer os.Remove(path)

	if err := f.Close(); err != nil {
		return err
	}

	for {
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			return err
		}

		if err := runEditor(ctx, c.stdin, c.stdout, c.stderr, path); err != nil {
			return err
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		if strings.TrimSpace(string(data)) == "" {
			return nil
		}

		cfg, parseErr := conf.ParseString(ctx, string(data),
			conf.WithSource(path),
			conf.WithLogger(c.logger))

		c.logger.TraceContext(ctx, "editor parse attempt",
			slog.Int("content_length", len(data)),
			slog.Bool("success", parseErr == nil))

		if parseErr == nil {
			c.newCfg = cfg

			return nil
		}

		fmt.Fprintf(c.stderr, "\n%s\n%s", parseErr, snippet(parseErr, string(data)))
		fmt.Fprint(c.stdout, "Re-edit? [Y/n] ")

		scanner := bufio.NewScanner(c.stdin)
		if !scanner.Scan() {
			return ErrEditDeclined
		}

		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "n", "no":
			return ErrEditDeclined
		}

		content = string(data)
	}
}

// snippet returns the caret excerpt for a parse error, or "".
func snippet(err error, src string) string {
	switch e := err.(type) {
	case *conf.SyntaxError:
		return e.Snippet(src)
	case *conf.LexError:
		return e.Snippet(src)
	default:
		return ""
	}
}

// runEditor opens $EDITOR (or vi) on path and waits for it to exit.
func runEditor(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer, path string) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = defaultEditor
	}

	args := append(strings.Fields(editor), path)

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	return cmd.Run()
}
