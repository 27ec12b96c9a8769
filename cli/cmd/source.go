package cmd

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ardnew/ngxconf/conf"
	"github.com/ardnew/ngxconf/log"
	"github.com/ardnew/ngxconf/site"
)

const (
	stdinSource = "-"
	stdinName   = "<stdin>"
)

// document is a parsed source along with the text it was parsed from.
type document struct {
	path string
	text string
	cfg  *conf.Config
}

func (d *document) name() string {
	if d.path == stdinSource {
		return stdinName
	}

	return d.path
}

// load reads and parses the file at path, or the context input for "-".
func load(ctx context.Context, path string) (*document, error) {
	doc := &document{path: path}

	var r io.Reader

	if path == stdinSource {
		r = inputFrom(ctx)
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, ErrReadSource.Wrap(err)
		}
		defer f.Close()

		r = f
	}

	// The text is kept for --diff and the already-canonical check.
	var text strings.Builder

	cfg, err := conf.ParseReader(ctx, io.TeeReader(r, &text),
		conf.WithSource(doc.name()),
		conf.WithLogger(log.Default()))
	if errors.Is(err, conf.ErrReadInput) {
		return nil, ErrReadSource.Wrap(err).With(slog.String("source", doc.name()))
	}

	if err != nil {
		return nil, err
	}

	doc.text, doc.cfg = text.String(), cfg

	return doc, nil
}

// Output selects where an edited configuration goes.
type Output struct {
	Write bool `help:"Write the result back to the source file."                                    short:"w" xor:"dest"`
	Apply bool `help:"Write, validate with nginx -t and reload nginx; restore the file on failure." short:"a" xor:"dest"`
}

func (o Output) emit(ctx context.Context, doc *document) error {
	switch {
	case o.Apply:
		if doc.path == stdinSource {
			return ErrWriteStdin
		}

		text, err := canonical(doc.cfg)
		if err != nil {
			return err.With(slog.String("file", doc.path))
		}

		opts := append([]site.Option{site.WithLogger(log.Default())}, siteOptionsFrom(ctx)...)
		m := site.New(site.LayoutAt(filepath.Dir(doc.path)), opts...)

		return m.Save(ctx, doc.path, text)

	case o.Write:
		return writeBack(ctx, doc.path, doc.cfg)

	default:
		return doc.cfg.Format(ctx, outputFrom(ctx), conf.WithLogger(log.Default()))
	}
}

// canonical returns the printed form of cfg, provided it parses back to an
// equal tree. Some arguments (a '#', a quote or a line break without a
// space) print unquoted and would change meaning when read again.
func canonical(cfg *conf.Config) (string, *conf.Error) {
	text := conf.Print(cfg)

	back, err := conf.Parse(text)
	if err != nil {
		return "", ErrNotCanonical.Wrap(err)
	}

	if !back.Equal(cfg) {
		return "", ErrNotCanonical
	}

	return text, nil
}

// writeBack replaces the file at path with the canonical form of cfg,
// keeping its permissions. The file is left alone if that form would not
// read back as cfg.
func writeBack(ctx context.Context, path string, cfg *conf.Config) error {
	if path == stdinSource {
		return ErrWriteStdin
	}

	text, cerr := canonical(cfg)
	if cerr != nil {
		return cerr.With(slog.String("file", path))
	}

	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	if err := os.WriteFile(path, []byte(text), mode); err != nil {
		return ErrWriteConfig.Wrap(err).With(slog.String("file", path))
	}

	log.DebugContext(ctx, "wrote file", slog.String("path", path))

	return nil
}
