package site

import (
	"os"
	"slices"
	"strings"

	"github.com/ardnew/mung"

	"github.com/ardnew/ngxconf/conf"
	"github.com/ardnew/ngxconf/log"
)

// Option configures a Manager.
type Option func(*Manager)

// WithRunner sets how external commands are run.
func WithRunner(r Runner) Option {
	return func(m *Manager) {
		if r != nil {
			m.runner = r
		}
	}
}

func WithLogger(logger log.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// WithCache shares a parse cache between managers.
func WithCache(c *conf.Cache) Option {
	return func(m *Manager) {
		if c != nil {
			m.cache = c
		}
	}
}

// WithValidateCommand replaces "nginx -t". An empty command skips
// validation.
func WithValidateCommand(argv ...string) Option {
	return func(m *Manager) { m.validate = slices.Clone(argv) }
}

// WithReloadCommand replaces "systemctl reload nginx". An empty command
// skips reloading.
func WithReloadCommand(argv ...string) Option {
	return func(m *Manager) { m.reload = slices.Clone(argv) }
}

// SearchPath splits a PATH-like list of configuration roots, with defaults
// placed ahead of list. Empty and repeated entries are dropped.
func SearchPath(list string, defaults ...string) []string {
	delim := string(os.PathListSeparator)

	joined := mung.Make(
		mung.WithSubjectItems(list),
		mung.WithDelim(delim),
		mung.WithPrefixItems(defaults...),
		mung.WithFilter(func(s string) bool { return strings.TrimSpace(s) != "" }),
	).String()

	var out []string

	for _, dir := range strings.Split(joined, delim) {
		if dir != "" && !slices.Contains(out, dir) {
			out = append(out, dir)
		}
	}

	return out
}

// FindLayout returns the layout for the first root in roots that contains
// nginx.conf, or the layout for the first root if none does.
func FindLayout(roots []string) (Layout, bool) {
	for _, root := range roots {
		if exists(root + string(os.PathSeparator) + "nginx.conf") {
			return LayoutAt(root), true
		}
	}

	if len(roots) > 0 {
		return LayoutAt(roots[0]), false
	}

	return DefaultLayout(), false
}
