package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/buger/jsonparser"
)

const versionKey = "manifestVersion"

// Decode resolves a manifest payload of any known schema into the latest
// schema. Payloads without a manifestVersion are read as the pre-versioning
// schema.
func Decode(data []byte) (Manifest, error) {
	snap, err := DecodeSnapshot(data)
	if err != nil {
		return Manifest{}, err
	}
	return Migrate(snap)
}

// DetectVersion reads the top-level manifestVersion discriminator without
// decoding the rest of the payload. The key may appear at most once; a
// whole-number float such as 2.0 names the same version as 2.
func DetectVersion(data []byte) (Version, error) {
	var (
		value    []byte
		dataType jsonparser.ValueType
		seen     int
	)
	err := jsonparser.ObjectEach(data, func(key, v []byte, vt jsonparser.ValueType, _ int) error {
		name, err := jsonparser.ParseString(key)
		if err != nil || name != versionKey {
			return err
		}
		seen++
		value, dataType = v, vt
		return nil
	})
	switch {
	case err != nil:
		return 0, malformed(nil, fmt.Errorf("read %s: %w", versionKey, err))
	case seen > 1:
		return 0, malformed(nil, fmt.Errorf("%s appears %d times", versionKey, seen))
	case seen == 0:
		return VersionPreVersioning, nil
	}

	switch dataType {
	case jsonparser.Null:
		return VersionPreVersioning, nil
	case jsonparser.Number:
	default:
		return 0, malformed(nil, fmt.Errorf("%s is a %s, want integer", versionKey, dataType))
	}

	tag, err := parseTag(value)
	if err != nil {
		return 0, malformed(nil, fmt.Errorf("parse %s %q: %w", versionKey, value, err))
	}
	if tag < int(Version1) || tag > int(LatestVersion) {
		return 0, &DecodeError{Kind: ErrUnknownVersion, Version: &tag}
	}
	return Version(tag), nil
}

// parseTag reads an integer discriminator, accepting whole-number floats.
// Values beyond the int32 range are clamped; they are unknown either way.
func parseTag(value []byte) (int, error) {
	if n, err := jsonparser.ParseInt(value); err == nil {
		return int(max(min(n, math.MaxInt32), math.MinInt32)), nil
	}
	f, err := jsonparser.ParseFloat(value)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("not a whole number")
	}
	return int(max(min(f, math.MaxInt32), math.MinInt32)), nil
}

// DecodeSnapshot decodes data into the schema its discriminator names,
// without migrating it.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	version, err := DetectVersion(data)
	if err != nil {
		return nil, err
	}
	snap, err := decoders[version](data)
	if err != nil {
		return nil, malformed(version.Number(), err)
	}
	return snap, nil
}

var decoders = [...]func([]byte) (Snapshot, error){
	VersionPreVersioning: decodePreVersioning,
	Version1:             decodeV1,
	Version2:             decodeV2,
}

// flatWire is the shape shared by the pre-versioning and v1 schemas.
type flatWire struct {
	Seed            *int64  `json:"seed"`
	MCVersion       *string `json:"mcVersion"`
	Name            *string `json:"name"`
	Pins            *[]Pin  `json:"pins"`
	RecentLocations []Point `json:"recentLocations"`
}

func (w flatWire) validate() error {
	return requireFields(
		field{"seed", w.Seed != nil},
		field{"mcVersion", w.MCVersion != nil},
		field{"name", w.Name != nil},
		field{"pins", w.Pins != nil},
	)
}

func decodePreVersioning(data []byte) (Snapshot, error) {
	var w flatWire
	if err := unmarshal(data, &w); err != nil {
		return nil, err
	}
	if err := w.validate(); err != nil {
		return nil, err
	}
	return PreVersioning{
		Seed:            *w.Seed,
		MCVersion:       *w.MCVersion,
		Name:            *w.Name,
		Pins:            *w.Pins,
		RecentLocations: orEmpty(w.RecentLocations),
	}, nil
}

func decodeV1(data []byte) (Snapshot, error) {
	var w flatWire
	if err := unmarshal(data, &w); err != nil {
		return nil, err
	}
	if err := w.validate(); err != nil {
		return nil, err
	}
	return V1{
		Seed:            *w.Seed,
		MCVersion:       *w.MCVersion,
		Name:            *w.Name,
		Pins:            *w.Pins,
		RecentLocations: orEmpty(w.RecentLocations),
	}, nil
}

type worldWire struct {
	Version *string `json:"version"`
	Seed    *int64  `json:"seed"`
}

type v2Wire struct {
	Name            *string    `json:"name"`
	World           *worldWire `json:"world"`
	Pins            *[]Pin     `json:"pins"`
	RecentLocations []Point    `json:"recentLocations"`
}

func decodeV2(data []byte) (Snapshot, error) {
	var w v2Wire
	if err := unmarshal(data, &w); err != nil {
		return nil, err
	}
	if err := requireFields(
		field{"name", w.Name != nil},
		field{"world", w.World != nil},
		field{"pins", w.Pins != nil},
	); err != nil {
		return nil, err
	}
	if err := requireFields(
		field{"world.version", w.World.Version != nil},
		field{"world.seed", w.World.Seed != nil},
	); err != nil {
		return nil, err
	}
	return V2{
		ManifestVersion: int(Version2),
		Name:            *w.Name,
		World:           WorldSettings{Version: *w.World.Version, Seed: *w.World.Seed},
		Pins:            *w.Pins,
		RecentLocations: orEmpty(w.RecentLocations),
	}, nil
}

func unmarshal(data []byte, dest any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(dest); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return fmt.Errorf("unexpected data after manifest object")
	}
	return nil
}

type field struct {
	name    string
	present bool
}

func requireFields(fields ...field) error {
	for _, f := range fields {
		if !f.present {
			return fmt.Errorf("missing required field %q", f.name)
		}
	}
	return nil
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
