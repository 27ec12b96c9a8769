//go:build pprof

package profile

import (
	"maps"
	"slices"
	"sync"

	"github.com/pkg/profile"
)

// Modes returns the supported profile modes, sorted.
var Modes = sync.OnceValue(func() []string {
	return slices.Sorted(maps.Keys(modes))
})

var modes = map[string]func(*profile.Profile){
	"allocs":    profile.MemProfileAllocs,
	"block":     profile.BlockProfile,
	"clock":     profile.ClockProfile,
	"cpu":       profile.CPUProfile,
	"goroutine": profile.GoroutineProfile,
	"heap":      profile.MemProfileHeap,
	"mem":       profile.MemProfile,
	"mutex":     profile.MutexProfile,
	"thread":    profile.ThreadcreationProfile,
	"trace":     profile.TraceProfile,
}

// start reports false when s.Mode is not one of modes.
func (s Settings) start() (Stopper, bool) {
	mode, ok := modes[s.Mode]
	if !ok {
		return nil, false
	}

	opts := []func(*profile.Profile){mode}

	if s.Dir != "" {
		opts = append(opts, profile.ProfilePath(s.Dir))
	}

	if s.Quiet {
		opts = append(opts, profile.Quiet)
	}

	return profile.Start(opts...), true
}
