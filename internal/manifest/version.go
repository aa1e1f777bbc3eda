package manifest

import (
	"fmt"
	"slices"
)

// Version identifies a manifest schema. The chain is linear: every version
// after VersionPreVersioning has exactly one predecessor.
type Version int

const (
	// VersionPreVersioning is the schema written before manifests carried a
	// manifestVersion field.
	VersionPreVersioning Version = iota
	Version1
	Version2

	// LatestVersion is the schema every resolved manifest is migrated to.
	LatestVersion = Version2
)

// Number returns the manifestVersion discriminator for v, or nil for the
// pre-versioning schema.
func (v Version) Number() *int {
	if v == VersionPreVersioning {
		return nil
	}
	n := int(v)
	return &n
}

func (v Version) String() string {
	if v == VersionPreVersioning {
		return "pre-versioning"
	}
	return fmt.Sprintf("v%d", int(v))
}

// Snapshot is one of the schema shapes: PreVersioning, V1 or V2.
type Snapshot interface {
	SchemaVersion() Version
	snapshot()
}

// PreVersioning is the manifest shape written by the earliest releases.
type PreVersioning struct {
	Seed            int64
	MCVersion       string
	Name            string
	Pins            []Pin
	RecentLocations []Point
}

// V1 adds the manifestVersion discriminator and is otherwise identical to
// PreVersioning.
type V1 struct {
	Seed            int64
	MCVersion       string
	Name            string
	Pins            []Pin
	RecentLocations []Point
}

// V2 nests the game version and seed under a world settings object.
type V2 struct {
	ManifestVersion int
	Name            string
	World           WorldSettings
	Pins            []Pin
	RecentLocations []Point
}

// Manifest is the latest schema.
type Manifest = V2

// WorldSettings describes how the world was generated in-game.
type WorldSettings struct {
	Version string `json:"version"` // game version, e.g. "1.21.3"
	Seed    int64  `json:"seed"`
}

func (PreVersioning) SchemaVersion() Version { return VersionPreVersioning }
func (V1) SchemaVersion() Version            { return Version1 }
func (V2) SchemaVersion() Version            { return Version2 }

func (PreVersioning) snapshot() {}
func (V1) snapshot()            {}
func (V2) snapshot()            {}

// Clone returns a deep copy of m.
func (m Manifest) Clone() Manifest {
	out := m
	out.Pins = clonePins(m.Pins)
	out.RecentLocations = slices.Clone(m.RecentLocations)
	return out
}

// Normalized returns m in canonical form: the latest manifestVersion,
// non-nil pin and recent location lists, and canonical pins.
func (m Manifest) Normalized() Manifest {
	out := m.Clone()
	out.ManifestVersion = int(LatestVersion)
	if out.Pins == nil {
		out.Pins = []Pin{}
	}
	for i := range out.Pins {
		out.Pins[i] = out.Pins[i].normalized()
	}
	if out.RecentLocations == nil {
		out.RecentLocations = []Point{}
	}
	return out
}

func clonePins(pins []Pin) []Pin {
	if pins == nil {
		return nil
	}
	out := make([]Pin, len(pins))
	for i, p := range pins {
		out[i] = p.Clone()
	}
	return out
}
