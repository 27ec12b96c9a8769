package cli

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/ngxconf/conf"
	"github.com/ardnew/ngxconf/log"
)

// resolve returns a [kong.ConfigurationLoader] for configuration files
// written in nginx syntax. Each directive names a flag and its arguments
// are the value; blocks prefix the names of the directives they contain:
//
//	log-level debug;
//	log {
//	    format json;
//	    pretty false;
//	}
//
// sets --log-level=debug, --log-format=json and --no-log-pretty. Names may
// use underscores in place of hyphens. A directive without arguments sets a
// boolean flag. Several arguments form a list. A file that fails to parse
// is ignored so a broken configuration cannot lock out the CLI.
// Command-line flags override file values.
func resolve(ctx context.Context) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		cfg, err := conf.ParseReader(ctx, r, conf.WithLogger(log.Default()))
		if err != nil {
			log.WarnContext(ctx, "ignoring configuration file", slog.Any("error", err))

			return config{}, nil
		}

		values := config{}
		flatten(values, "", cfg.Directives())

		return values, nil
	}
}

// config implements [kong.Resolver] over flattened directive arguments.
type config map[string][]string

func flatten(values config, prefix string, ds []*conf.Directive) {
	for _, d := range ds {
		name := prefix + strings.ReplaceAll(d.Name, "_", "-")

		if d.IsBlock() {
			flatten(values, name+"-", d.Directives())

			continue
		}

		values[name] = d.Args
	}
}

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (r config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	args, ok := r[flag.Name]
	if !ok {
		return nil, nil
	}

	switch {
	case flag.IsBool():
		if len(args) == 0 {
			return true, nil
		}

		return strconv.ParseBool(args[0])

	case len(args) == 1:
		return args[0], nil

	default:
		return strings.Join(args, ","), nil
	}
}
