package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles used by prettyHandler. Styles come from a renderer
// bound to the output writer, so color is dropped when it is not a terminal.
type palette struct {
	key, str, num, bool, dur, time, src lipgloss.Style
	level                               map[slog.Level]lipgloss.Style
}

func newPalette(w io.Writer) *palette {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return &palette{
		key:  fg("8"),
		str:  fg("6"),
		num:  fg("3"),
		bool: fg("2"),
		dur:  fg("5"),
		time: fg("4"),
		src:  fg("8").Italic(true),
		level: map[slog.Level]lipgloss.Style{
			slog.Level(LevelTrace): fg("4"),
			slog.Level(LevelDebug): fg("4").Bold(true),
			slog.Level(LevelInfo):  fg("2").Bold(true),
			slog.Level(LevelWarn):  fg("3").Bold(true),
			slog.Level(LevelError): fg("1").Bold(true),
		},
	}
}

func (p *palette) levelStyle(l slog.Level) lipgloss.Style {
	switch {
	case l >= slog.LevelError:
		return p.level[slog.LevelError]
	case l >= slog.LevelWarn:
		return p.level[slog.LevelWarn]
	case l >= slog.LevelInfo:
		return p.level[slog.LevelInfo]
	case l >= slog.LevelDebug:
		return p.level[slog.LevelDebug]
	default:
		return p.level[slog.Level(LevelTrace)]
	}
}

// prettyHandler renders one line per record:
//
//	TIME LEVEL message key=value group.key=value (file:line)
//
// Values are unquoted and colored by kind.
type prettyHandler struct {
	opts       slog.HandlerOptions
	formatTime FormatTime
	pal        *palette
	mu         *sync.Mutex
	w          io.Writer
	prefix     string // group qualifier for attrs added later
	preformat  []byte // attrs added by WithAttrs, already rendered
}

func newPrettyHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	formatTime FormatTime,
) *prettyHandler {
	return &prettyHandler{
		opts:       *opts,
		formatTime: formatTime,
		pal:        newPalette(w),
		mu:         &sync.Mutex{},
		w:          w,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	floor := slog.LevelInfo
	if h.opts.Level != nil {
		floor = h.opts.Level.Level()
	}

	return level >= floor
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	if !r.Time.IsZero() && h.formatTime != nil {
		if ts := h.formatTime(r.Time); ts != "" {
			buf.WriteString(h.pal.time.Render(ts))
			buf.WriteByte(' ')
		}
	}

	name := strings.ToUpper(Level(r.Level).String())
	buf.WriteString(h.pal.levelStyle(r.Level).Render(fmt.Sprintf("%-5s", name)))
	buf.WriteByte(' ')
	buf.WriteString(r.Message)

	buf.Write(h.preformat)

	r.Attrs(func(a slog.Attr) bool {
		h.appendAttr(&buf, h.prefix, a)

		return true
	})

	if h.opts.AddSource && r.PC != 0 {
		if src := r.Source(); src != nil && src.File != "" {
			loc := filepath.Base(src.File) + ":" + strconv.Itoa(src.Line)
			buf.WriteByte(' ')
			buf.WriteString(h.pal.src.Render("(" + loc + ")"))
		}
	}

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	c := *h

	var buf bytes.Buffer

	buf.Write(h.preformat)

	for _, a := range attrs {
		h.appendAttr(&buf, h.prefix, a)
	}

	c.preformat = buf.Bytes()

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.prefix = h.prefix + name + "."

	return &c
}

func (h *prettyHandler) appendAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()

	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		if len(group) == 0 {
			return
		}

		if a.Key != "" {
			prefix += a.Key + "."
		}

		for _, ga := range group {
			h.appendAttr(buf, prefix, ga)
		}

		return
	}

	buf.WriteByte(' ')
	buf.WriteString(h.pal.key.Render(prefix + a.Key + "="))
	buf.WriteString(h.renderValue(a.Value))
}

func (h *prettyHandler) renderValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return h.pal.str.Render(v.String())

	case slog.KindInt64:
		return h.pal.num.Render(strconv.FormatInt(v.Int64(), 10))

	case slog.KindUint64:
		return h.pal.num.Render(strconv.FormatUint(v.Uint64(), 10))

	case slog.KindFloat64:
		return h.pal.num.Render(strconv.FormatFloat(v.Float64(), 'g', -1, 64))

	case slog.KindBool:
		return h.pal.bool.Render(strconv.FormatBool(v.Bool()))

	case slog.KindDuration:
		return h.pal.dur.Render(v.Duration().String())

	case slog.KindTime:
		return h.pal.time.Render(v.Time().Format(time.RFC3339))

	default:
		if err, ok := v.Any().(error); ok {
			return h.pal.levelStyle(slog.LevelError).UnsetBold().Render(err.Error())
		}

		return h.pal.str.Render(v.String())
	}
}
