// Package site manages nginx configuration files on disk: listing sites in
// sites-available, toggling their sites-enabled symlinks, and saving edits
// with a backup that is restored if nginx rejects the result.
package site

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ardnew/ngxconf/conf"
	"github.com/ardnew/ngxconf/log"
)

var (
	ErrSiteNotFound = conf.NewError("site not found")
	ErrBackup       = conf.NewError("backup failed")
	ErrWrite        = conf.NewError("write failed")
	ErrValidate     = conf.NewError("nginx rejected configuration")
	ErrReload       = conf.NewError("nginx reload failed")
	ErrLink         = conf.NewError("update sites-enabled failed")
)

// BackupSuffix is appended to a file name to form its backup during Save.
const BackupSuffix = ".bak"

// Layout locates the nginx configuration directories.
type Layout struct {
	Root      string
	Available string
	Enabled   string
}

// DefaultLayout is the Debian-style layout under /etc/nginx.
func DefaultLayout() Layout { return LayoutAt("/etc/nginx") }

// LayoutAt returns the Debian-style layout under root.
func LayoutAt(root string) Layout {
	return Layout{
		Root:      root,
		Available: filepath.Join(root, "sites-available"),
		Enabled:   filepath.Join(root, "sites-enabled"),
	}
}

// Site is a file in sites-available.
type Site struct {
	Name    string
	Path    string
	Enabled bool
}

// Status returns "enabled" or "disabled".
func (s Site) Status() string {
	if s.Enabled {
		return "enabled"
	}

	return "disabled"
}

// File is an nginx configuration file outside sites-available. Name is
// relative to the layout root.
type File struct {
	Name string
	Path string
}

// Manager performs site operations against a Layout. Operations are not
// safe for concurrent use on the same files.
type Manager struct {
	layout   Layout
	runner   Runner
	logger   log.Logger
	cache    *conf.Cache
	validate []string
	reload   []string
}

// New returns a Manager for layout. By default it runs "nginx -t" to
// validate and "systemctl reload nginx" to reload, using [ExecRunner].
func New(layout Layout, opts ...Option) *Manager {
	m := &Manager{
		layout:   layout,
		runner:   ExecRunner{},
		cache:    &conf.Cache{},
		validate: []string{"nginx", "-t"},
		reload:   []string{"systemctl", "reload", "nginx"},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	return m
}

// Layout returns the directories m operates on.
func (m *Manager) Layout() Layout { return m.layout }

// Sites lists the files in sites-available. A site is enabled if an entry
// of the same name in sites-enabled resolves to a file. A missing
// sites-available directory yields no sites.
func (m *Manager) Sites(ctx context.Context) ([]Site, error) {
	entries, err := os.ReadDir(m.layout.Available)
	if errors.Is(err, fs.ErrNotExist) {
		m.logger.DebugContext(ctx, "no sites-available directory",
			slog.String("path", m.layout.Available))

		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	var sites []Site

	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		sites = append(sites, Site{
			Name:    e.Name(),
			Path:    filepath.Join(m.layout.Available, e.Name()),
			Enabled: exists(filepath.Join(m.layout.Enabled, e.Name())),
		})
	}

	return sites, nil
}

// Site returns the named site.
func (m *Manager) Site(ctx context.Context, name string) (Site, error) {
	sites, err := m.Sites(ctx)
	if err != nil {
		return Site{}, err
	}

	i := slices.IndexFunc(sites, func(s Site) bool { return s.Name == name })
	if i < 0 {
		return Site{}, ErrSiteNotFound.With(slog.String("site", name))
	}

	return sites[i], nil
}

// Enable links the named site into sites-enabled and reloads nginx. It does
// nothing if the site is already enabled. A dangling link of the same name
// is replaced.
func (m *Manager) Enable(ctx context.Context, name string) error {
	s, err := m.Site(ctx, name)
	if err != nil {
		return err
	}

	if s.Enabled {
		return nil
	}

	link := filepath.Join(m.layout.Enabled, name)

	if info, err := os.Lstat(link); err == nil && info.Mode()&fs.ModeSymlink != 0 {
		m.logger.DebugContext(ctx, "replacing dangling link", slog.String("path", link))

		if err := os.Remove(link); err != nil {
			return ErrLink.Wrap(err).With(slog.String("site", name))
		}
	}

	if err := os.Symlink(s.Path, link); err != nil {
		return ErrLink.Wrap(err).With(slog.String("site", name))
	}

	m.logger.InfoContext(ctx, "site enabled", slog.String("site", name))

	return m.Reload(ctx)
}

// Disable removes the named site from sites-enabled and reloads nginx. It
// does nothing if the site is not enabled.
func (m *Manager) Disable(ctx context.Context, name string) error {
	link := filepath.Join(m.layout.Enabled, name)

	if _, err := os.Lstat(link); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err := os.Remove(link); err != nil {
		return ErrLink.Wrap(err).With(slog.String("site", name))
	}

	m.logger.InfoContext(ctx, "site disabled", slog.String("site", name))

	return m.Reload(ctx)
}

// Load parses the named site.
func (m *Manager) Load(ctx context.Context, name string) (*conf.Config, error) {
	path := filepath.Join(m.layout.Available, name)
	if !exists(path) {
		return nil, ErrSiteNotFound.With(slog.String("site", name))
	}

	return m.LoadFile(ctx, path)
}

// LoadFile parses the file at path. Unchanged files are parsed once.
func (m *Manager) LoadFile(ctx context.Context, path string) (*conf.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return m.cache.ParseReader(ctx, f,
		conf.WithSource(path),
		conf.WithLogger(m.logger))
}

// SaveSite saves text as the named site. See [Manager.Save].
func (m *Manager) SaveSite(ctx context.Context, name, text string) error {
	return m.Save(ctx, filepath.Join(m.layout.Available, name), text)
}

// SaveConfig saves the canonical form of cfg to path. See [Manager.Save].
func (m *Manager) SaveConfig(ctx context.Context, path string, cfg *conf.Config) error {
	return m.Save(ctx, path, conf.Print(cfg))
}

// Save replaces the file at path with text, then validates and reloads
// nginx. The previous contents are kept in path+[BackupSuffix] until both
// succeed. On any failure the previous contents are restored (or a new file
// removed) and the error returned.
func (m *Manager) Save(ctx context.Context, path, text string) (err error) {
	backup := path + BackupSuffix
	mode := fs.FileMode(0o644)

	info, statErr := os.Stat(path)
	existed := statErr == nil

	if existed {
		mode = info.Mode().Perm()

		if err := copyFile(path, backup, mode); err != nil {
			return ErrBackup.Wrap(err).With(slog.String("path", path))
		}
	}

	defer func() {
		if err == nil {
			return
		}

		if rerr := m.rollback(path, backup, existed); rerr != nil {
			err = errors.Join(err, rerr)
		}

		m.logger.WarnContext(ctx, "save rolled back",
			slog.String("path", path),
			slog.Any("error", err))
	}()

	if err := os.WriteFile(path, []byte(text), mode); err != nil {
		return ErrWrite.Wrap(err).With(slog.String("path", path))
	}

	if err := m.Validate(ctx); err != nil {
		return err
	}

	if err := m.Reload(ctx); err != nil {
		return err
	}

	if existed {
		if err := os.Remove(backup); err != nil {
			m.logger.WarnContext(ctx, "remove backup",
				slog.String("path", backup),
				slog.Any("error", err))
		}
	}

	m.logger.InfoContext(ctx, "saved", slog.String("path", path))

	return nil
}

func (m *Manager) rollback(path, backup string, existed bool) error {
	if existed {
		return os.Rename(backup, path)
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return nil
}

// Validate runs the configured validation command ("nginx -t").
func (m *Manager) Validate(ctx context.Context) error {
	_, stderr, err := m.run(ctx, m.validate)
	if err != nil {
		return ErrValidate.Wrap(commandError(err, stderr))
	}

	return nil
}

// Reload runs the configured reload command ("systemctl reload nginx").
func (m *Manager) Reload(ctx context.Context) error {
	_, stderr, err := m.run(ctx, m.reload)
	if err != nil {
		return ErrReload.Wrap(commandError(err, stderr))
	}

	return nil
}

// commandError appends the command's trimmed stderr to err.
func commandError(err error, stderr []byte) error {
	msg := strings.TrimSpace(string(stderr))
	if msg == "" {
		return err
	}

	return fmt.Errorf("%w: %s", err, msg)
}

func (m *Manager) run(ctx context.Context, argv []string) ([]byte, []byte, error) {
	if len(argv) == 0 {
		return nil, nil, nil
	}

	m.logger.DebugContext(ctx, "run", slog.String("command", strings.Join(argv, " ")))

	return m.runner.Run(ctx, argv[0], argv[1:]...)
}

// ConfigFiles lists the nginx configuration files under the layout root:
// files named *.conf, *.types or *_params, and conf.d/*.conf. Results are
// sorted by name. A missing root yields no files.
func (m *Manager) ConfigFiles(ctx context.Context) ([]File, error) {
	entries, err := os.ReadDir(m.layout.Root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	var files []File

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !isRootConfig(name) {
			continue
		}

		files = append(files, File{Name: name, Path: filepath.Join(m.layout.Root, name)})
	}

	confd := filepath.Join(m.layout.Root, "conf.d")

	matches, err := filepath.Glob(filepath.Join(confd, "*.conf"))
	if err != nil {
		return nil, err
	}

	for _, path := range matches {
		files = append(files, File{Name: "conf.d/" + filepath.Base(path), Path: path})
	}

	slices.SortFunc(files, func(a, b File) int { return strings.Compare(a.Name, b.Name) })

	m.logger.TraceContext(ctx, "config files", slog.Int("count", len(files)))

	return files, nil
}

func isRootConfig(name string) bool {
	return strings.HasSuffix(name, ".conf") ||
		strings.HasSuffix(name, ".types") ||
		strings.HasSuffix(name, "_params")
}

func exists(path string) bool {
	_, err := os.Stat(path)

	return err == nil
}

func copyFile(src, dst string, mode fs.FileMode) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	return os.WriteFile(dst, data, mode)
}
