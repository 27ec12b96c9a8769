package profile

import (
	"context"
	"log/slog"

	"github.com/ardnew/ngxconf/log"
)

// Settings selects what is profiled and where the output is written.
type Settings struct {
	Mode  string // one of [Modes]; empty disables profiling
	Dir   string // output directory; empty means the working directory
	Quiet bool   // silence the profiler's own messages
}

// Option adjusts [Settings].
type Option func(*Settings)

// WithMode selects the profile mode.
func WithMode(mode string) Option { return func(s *Settings) { s.Mode = mode } }

// WithDir sets the output directory.
func WithDir(dir string) Option { return func(s *Settings) { s.Dir = dir } }

// WithQuiet silences the profiler's own messages. Start and stop are still
// logged at debug level through the ngxconf logger.
func WithQuiet(quiet bool) Option { return func(s *Settings) { s.Quiet = quiet } }

// Stopper ends a profiling session and flushes its output.
type Stopper interface{ Stop() }

// Start begins profiling as configured by opts.
//
// Without the pprof build tag, or with an empty or unknown mode, Start
// returns a no-op. Both Start and Stop are always safe to call.
func Start(ctx context.Context, opts ...Option) Stopper {
	var s Settings
	for _, opt := range opts {
		opt(&s)
	}

	if s.Mode == "" {
		return ignore{}
	}

	stop, ok := s.start()
	if !ok {
		log.WarnContext(ctx, "profiling disabled",
			slog.String("mode", s.Mode),
			slog.Any("modes", Modes()),
		)

		return ignore{}
	}

	log.DebugContext(ctx, "profiling started",
		slog.String("mode", s.Mode),
		slog.String("dir", s.Dir),
	)

	return session{ctx: ctx, settings: s, stop: stop}
}

type session struct {
	ctx      context.Context
	settings Settings
	stop     Stopper
}

func (p session) Stop() {
	p.stop.Stop()
	log.DebugContext(p.ctx, "profiling stopped",
		slog.String("mode", p.settings.Mode),
		slog.String("dir", p.settings.Dir),
	)
}

type ignore struct{}

func (ignore) Stop() {}
