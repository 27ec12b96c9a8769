// Package profile provides optional runtime profiling for ngxconf.
//
// Profiling wraps [github.com/pkg/profile] and is compiled in only with the
// "pprof" build tag. Without the tag every operation is a no-op:
//
//	go build -tags pprof -o ngxconf .
//
// # Modes
//
// [Modes] lists the supported modes: allocs, block, clock, cpu, goroutine,
// heap, mem, mutex, thread and trace. It is empty without the build tag.
//
// # Usage
//
// [Start] takes [Option] values and returns a [Stopper]:
//
//	defer profile.Start(ctx,
//		profile.WithMode("cpu"),
//		profile.WithDir("/tmp/profiles"),
//	).Stop()
//
// An unknown mode is logged as a warning and profiling stays off.
//
// The CLI exposes the same settings as --pprof-mode and --pprof-dir, with the
// output directory defaulting to $XDG_CACHE_HOME/ngxconf/pprof.
//
// Analyze results with go tool pprof:
//
//	go tool pprof -http=: ngxconf /tmp/profiles/cpu.pprof
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
