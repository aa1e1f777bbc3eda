// Package flags stores boolean feature flags.
//
// Flags live in an explicit Store that callers pass around, so tests can
// use a MemoryStore while the CLI persists to a TOML file.
package flags

import (
	"fmt"
	"slices"
	"strings"
)

// Flag names a feature toggle.
type Flag int

const (
	// FlagDrawings enables freehand map drawings.
	FlagDrawings Flag = iota
)

type flagInfo struct {
	name     string
	key      string
	fallback bool
}

var flagTable = []flagInfo{
	FlagDrawings: {name: "drawings", key: "flags.features.map_drawings", fallback: false},
}

// AllFlags returns every known flag in declaration order.
func AllFlags() []Flag {
	out := make([]Flag, len(flagTable))
	for i := range flagTable {
		out[i] = Flag(i)
	}
	return out
}

// ParseFlag resolves a flag from its short name.
func ParseFlag(name string) (Flag, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	idx := slices.IndexFunc(flagTable, func(info flagInfo) bool { return info.name == want })
	if idx < 0 {
		return 0, fmt.Errorf("unknown flag %q", name)
	}
	return Flag(idx), nil
}

func (f Flag) String() string { return flagTable[f].name }

// KeyName is the key the flag is persisted under.
func (f Flag) KeyName() string { return flagTable[f].key }

// EnabledByDefault reports the value used when the store has no entry.
func (f Flag) EnabledByDefault() bool { return flagTable[f].fallback }

// Store is a boolean key/value store.
type Store interface {
	Bool(key string) (value bool, ok bool)
	SetBool(key string, value bool) error
}

// Enabled reports whether flag is on in store.
func Enabled(store Store, flag Flag) bool {
	if v, ok := store.Bool(flag.KeyName()); ok {
		return v
	}
	return flag.EnabledByDefault()
}

// Set stores value for flag.
func Set(store Store, flag Flag, value bool) error {
	if err := store.SetBool(flag.KeyName(), value); err != nil {
		return fmt.Errorf("set flag %s: %w", flag, err)
	}
	return nil
}
