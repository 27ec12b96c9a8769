//go:build !pprof

package profile

// Modes is empty when built without the pprof tag.
func Modes() []string { return nil }

func (Settings) start() (Stopper, bool) { return nil, false }
