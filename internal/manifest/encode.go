package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// manifestWire lists keys in sorted order; Pin and WorldSettings do the same.
type manifestWire struct {
	ManifestVersion int           `json:"manifestVersion"`
	Name            string        `json:"name"`
	Pins            []Pin         `json:"pins"`
	RecentLocations []Point       `json:"recentLocations"`
	World           worldSettings `json:"world"`
}

type worldSettings struct {
	Seed    int64  `json:"seed"`
	Version string `json:"version"`
}

// Encode serializes m as pretty-printed JSON with sorted keys. The output
// always declares the latest manifestVersion and is byte-identical across
// calls for an unchanged manifest.
func Encode(m Manifest) ([]byte, error) {
	n := m.Normalized()
	wire := manifestWire{
		ManifestVersion: n.ManifestVersion,
		Name:            n.Name,
		Pins:            n.Pins,
		RecentLocations: n.RecentLocations,
		World:           worldSettings{Seed: n.World.Seed, Version: n.World.Version},
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(wire); err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
