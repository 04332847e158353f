//go:build pprof

package profile

import (
	"maps"
	_ "net/http/pprof" // register /debug/pprof handlers
	"slices"

	"github.com/pkg/profile"
)

// Enabled reports whether the binary was built with profiling support.
const Enabled = true

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

// Modes returns the supported profile modes in sorted order.
func Modes() []string {
	return slices.Sorted(maps.Keys(modes))
}

func start(o Options) func() {
	mode, ok := modes[o.Mode]
	if !ok {
		return func() {}
	}

	settings := []func(*profile.Profile){mode, profile.NoShutdownHook}

	if o.Path != "" {
		settings = append(settings, profile.ProfilePath(o.Path))
	}

	if o.Quiet {
		settings = append(settings, profile.Quiet)
	}

	return profile.Start(settings...).Stop
}
