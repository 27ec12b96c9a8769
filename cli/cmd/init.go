package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/ngxconf/conf"
	"github.com/ardnew/ngxconf/log"
	"github.com/ardnew/ngxconf/pkg"
	"github.com/ardnew/ngxconf/profile"
)

// Init writes a configuration file holding the current global flag values.
// The file uses the nginx syntax ngxconf itself parses:
//
//	log-level info;
//	log-pretty true;
type Init struct {
	Force bool `help:"Overwrite an existing configuration file." short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) error {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		panic("internal error: kong context undefined")
	}

	path := varFrom(ctx, ConfigIdentifier)

	if _, err := os.Stat(path); err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", path)).
			Wrap(ErrFileExists)
	}

	file, err := os.Create(path)
	if err != nil {
		return ErrWriteConfig.With(slog.String("file", path)).Wrap(err)
	}
	defer file.Close()

	if err := buildConfig(ktx).Format(ctx, file); err != nil {
		return ErrWriteConfig.With(slog.String("file", path)).Wrap(err)
	}

	log.DebugContext(ctx, "initialized configuration file", slog.String("path", path))

	return nil
}

// buildConfig renders every visible application flag as a directive.
func buildConfig(ktx *kong.Context) *conf.Config {
	cfg := &conf.Config{}
	cfg.Append(&conf.Comment{Text: " " + pkg.Name + " " + pkg.Version})

	ignore := []string{"help", "version", profile.Tag}

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(ignore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		if args := flagArgs(ktx.FlagValue(flag)); len(args) > 0 {
			cfg.Append(conf.NewDirective(flag.Name, args...))
		}
	}

	return cfg
}

// flagArgs converts a flag value to directive arguments. Empty values yield
// no arguments.
func flagArgs(v any) []string {
	switch v := v.(type) {
	case nil:
		return nil

	case bool:
		return []string{strconv.FormatBool(v)}

	case string:
		if v == "" {
			return nil
		}

		return []string{v}

	case []string:
		return slices.DeleteFunc(slices.Clone(v), func(s string) bool { return s == "" })

	case fmt.Stringer:
		return flagArgs(v.String())

	default:
		return []string{fmt.Sprint(v)}
	}
}
