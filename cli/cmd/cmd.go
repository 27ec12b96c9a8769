package cmd

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/ngxconf/site"
)

type (
	contextKey     struct{}
	outputKey      struct{}
	inputKey       struct{}
	siteOptionsKey struct{}
)

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// WithOutput returns a context whose commands write to w.
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, w)
}

func outputFrom(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(outputKey{}).(io.Writer); ok && w != nil {
		return w
	}

	return os.Stdout
}

// WithInput returns a context whose commands read "-" sources from r.
func WithInput(ctx context.Context, r io.Reader) context.Context {
	return context.WithValue(ctx, inputKey{}, r)
}

func inputFrom(ctx context.Context) io.Reader {
	if r, ok := ctx.Value(inputKey{}).(io.Reader); ok && r != nil {
		return r
	}

	return os.Stdin
}

// WithSiteOptions returns a context whose site operations are configured
// with opts in addition to the command's own flags.
func WithSiteOptions(ctx context.Context, opts ...site.Option) context.Context {
	return context.WithValue(ctx, siteOptionsKey{}, opts)
}

func siteOptionsFrom(ctx context.Context) []site.Option {
	opts, _ := ctx.Value(siteOptionsKey{}).([]site.Option)

	return opts
}

// varFrom returns the kong variable name, or "" outside a kong run.
func varFrom(ctx context.Context, name string) string {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return ""
	}

	return ktx.Model.Vars()[name]
}
