package cli

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/ardnew/ngxconf/pkg"
	"github.com/ardnew/ngxconf/site"
)

// baseConfig is the base name of the configuration file.
const baseConfig = "config"

var defaultDirMode os.FileMode = 0o700

// rootEnv names a PATH-like list of nginx roots searched before
// defaultRoots.
var rootEnv = strings.ToUpper(pkg.Name) + "_PATH"

var defaultRoots = []string{"/etc/nginx", "/usr/local/etc/nginx", "/usr/local/nginx/conf"}

// basePrefix returns the name of the configuration and cache directories:
// the executable's base name, with "__debug_bin" (the dlv default output)
// replaced by the command name and leading dots removed.
var basePrefix = sync.OnceValue(
	func() string {
		id := os.Args[0]
		if exe, err := os.Executable(); err == nil {
			id = exe
		}

		id = filepath.Base(id)
		id = strings.TrimSuffix(id, filepath.Ext(id))

		for rex, rep := range map[*regexp.Regexp]string{
			regexp.MustCompile(`^__debug_bin\d+$`): pkg.Name,
			regexp.MustCompile(`^\.+`):             "",
		} {
			id = rex.ReplaceAllString(id, rep)
		}

		return id
	},
)

// userDir joins basePrefix to the directory returned by base, falling back
// to home/fallback and then the working directory.
func userDir(base func() (string, error), fallback string) string {
	dir, err := base()
	if err != nil {
		if home, herr := os.UserHomeDir(); herr == nil {
			dir = filepath.Join(home, fallback)
		} else if dir, err = os.Getwd(); err != nil {
			dir = "."
		}
	}

	return filepath.Join(dir, basePrefix())
}

var (
	configDir = sync.OnceValue(func() string { return userDir(os.UserConfigDir, ".config") })
	cacheDir  = sync.OnceValue(func() string { return userDir(os.UserCacheDir, ".cache") })
)

// configPath joins elem to the configuration directory.
func configPath(elem ...string) string {
	return filepath.Join(append([]string{configDir()}, elem...)...)
}

// mkdirAllRequired creates the configuration and cache directories.
func mkdirAllRequired() error {
	for _, dir := range []string{configDir(), cacheDir()} {
		if err := os.MkdirAll(dir, defaultDirMode); err != nil {
			return err
		}
	}

	return nil
}

// nginxRoot returns the first root containing nginx.conf among those in
// $NGXCONF_PATH and then the defaults.
func nginxRoot() string {
	roots := site.SearchPath(
		strings.Join(defaultRoots, string(os.PathListSeparator)),
		filepath.SplitList(os.Getenv(rootEnv))...,
	)

	layout, _ := site.FindLayout(roots)

	return layout.Root
}
