// Package flags provides feature flags read from the flags section of the
// config file.
package flags

import (
	"maps"
	"slices"

	"github.com/zjrosen/dealboard/internal/log"
)

const (
	// FlagDealMove lets the dashboard move the deal under the cursor to the
	// next or previous stage with > and <.
	FlagDealMove = "deal-move"

	// FlagMouse enables clicking stage buttons and deal rows.
	FlagMouse = "mouse"
)

// defaults holds every known flag and its value when the config is silent.
var defaults = map[string]bool{
	FlagDealMove: true,
	FlagMouse:    true,
}

// Registry holds resolved flag values. It is read-only after New.
type Registry struct {
	flags map[string]bool
}

// New resolves overrides on top of the defaults. Unknown names are logged
// and ignored.
func New(overrides map[string]bool) *Registry {
	resolved := maps.Clone(defaults)
	for name, v := range overrides {
		if _, ok := defaults[name]; !ok {
			log.Warn(log.CatConfig, "Ignoring unknown feature flag", "flag", name)
			continue
		}
		resolved[name] = v
	}
	r := &Registry{flags: resolved}
	log.Debug(log.CatConfig, "Feature flags resolved", "flags", r.All())
	return r
}

// Enabled reports whether name is on. A nil registry uses the defaults.
func (r *Registry) Enabled(name string) bool {
	if r == nil {
		return defaults[name]
	}
	return r.flags[name]
}

// All returns a copy of the resolved flags.
func (r *Registry) All() map[string]bool {
	if r == nil {
		return maps.Clone(defaults)
	}
	return maps.Clone(r.flags)
}

// Known returns the names of all flags, sorted.
func Known() []string {
	return slices.Sorted(maps.Keys(defaults))
}
