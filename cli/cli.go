package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/ngxconf/cli/cmd"
	"github.com/ardnew/ngxconf/pkg"
)

// CLI is the top-level command-line interface for ngxconf.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit." short:"V"`

	Init    cmd.Init    `cmd:"" help:"Write a configuration file with the current flag values."`
	Fmt     cmd.Fmt     `cmd:"" help:"Format a configuration."`
	Get     cmd.Get     `cmd:"" help:"Print the directive at a path."`
	Set     cmd.Set     `cmd:"" help:"Replace the arguments of the directive at a path."`
	Del     cmd.Del     `cmd:"" help:"Delete the directive at a path."`
	Disable cmd.Disable `cmd:"" help:"Comment out the directive at a path."`
	Enable  cmd.Enable  `cmd:"" help:"Restore a commented-out directive."`
	Find    cmd.Find    `cmd:"" help:"Print directives matching a filter expression."`
	Paths   cmd.Paths   `cmd:"" help:"List the path of every directive."`
	Sites   cmd.Sites   `cmd:"" help:"Manage nginx sites."`
	Repl    cmd.Repl    `cmd:"" help:"Explore a configuration interactively."`
}

// Run executes the ngxconf CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	configFilePath := configPath(baseConfig)

	vars := kong.Vars{
		"version":            pkg.Version,
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  cacheDir(),
		cmd.RootIdentifier:   nginxRoot(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Apply logger flags before kong starts so that errors reported while
	// parsing use the requested format, whatever the flag position.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configFilePath+".json"),
		kong.Configuration(resolve(ctx), configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)

	// Finalize logger configuration with all parsed values, including those
	// taken from the configuration file.
	cli.Log.start(ctx)

	// [pprofConfig.start] is a no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}
