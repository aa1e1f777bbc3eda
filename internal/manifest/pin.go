package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/df-mc/dragonfly/server/world"
	"github.com/go-gl/mathgl/mgl64"
)

// PinColor is one of the fixed palette colours a player can give a pin.
type PinColor string

const (
	PinColorRed    PinColor = "red"
	PinColorOrange PinColor = "orange"
	PinColorYellow PinColor = "yellow"
	PinColorGreen  PinColor = "green"
	PinColorBlue   PinColor = "blue"
	PinColorIndigo PinColor = "indigo"
	PinColorBrown  PinColor = "brown"
	PinColorGray   PinColor = "gray"
	PinColorPink   PinColor = "pink"

	DefaultPinColor = PinColorBlue
)

// PinColors lists the palette in display order.
var PinColors = []PinColor{
	PinColorRed, PinColorOrange, PinColorYellow, PinColorGreen, PinColorBlue,
	PinColorIndigo, PinColorBrown, PinColorGray, PinColorPink,
}

// ParsePinColor returns the palette colour named s.
func ParsePinColor(s string) (PinColor, error) {
	c := PinColor(strings.TrimSpace(s))
	if !slices.Contains(PinColors, c) {
		return "", fmt.Errorf("unknown pin color %q", s)
	}
	return c, nil
}

func (c *PinColor) UnmarshalText(text []byte) error {
	parsed, err := ParsePinColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Dimension is the world dimension a pin was placed in.
type Dimension uint8

const (
	DimensionOverworld Dimension = iota
	DimensionNether
	DimensionEnd
)

var dimensionNames = [...]string{
	DimensionOverworld: "overworld",
	DimensionNether:    "nether",
	DimensionEnd:       "end",
}

func (d Dimension) String() string {
	if int(d) < len(dimensionNames) {
		return dimensionNames[d]
	}
	return fmt.Sprintf("Dimension(%d)", uint8(d))
}

// ParseDimension returns the dimension named s.
func ParseDimension(s string) (Dimension, error) {
	for i, name := range dimensionNames {
		if name == strings.TrimSpace(s) {
			return Dimension(i), nil
		}
	}
	return 0, fmt.Errorf("unknown dimension %q", s)
}

func (d Dimension) MarshalText() ([]byte, error) {
	if int(d) >= len(dimensionNames) {
		return nil, fmt.Errorf("unknown dimension %d", uint8(d))
	}
	return []byte(dimensionNames[d]), nil
}

func (d *Dimension) UnmarshalText(text []byte) error {
	parsed, err := ParseDimension(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// World returns the dragonfly dimension matching d.
func (d Dimension) World() world.Dimension {
	switch d {
	case DimensionNether:
		return world.Nether
	case DimensionEnd:
		return world.End
	default:
		return world.Overworld
	}
}

// HeightRange returns the buildable block range of the dimension.
func (d Dimension) HeightRange() cube.Range {
	return d.World().Range()
}

// Pin is a player-placed point of interest.
//
// Position holds block coordinates: X is the world X axis and Y the world Z
// axis.
type Pin struct {
	Position         mgl64.Vec2
	Name             string
	Color            *PinColor
	Images           []string // names into the package image map
	AboutDescription *string
	Tags             []string // sorted set
	Dimension        Dimension
}

// IndexedPin addresses a pin by its position in the manifest pin list.
type IndexedPin struct {
	Index int
	Pin   Pin
}

// ColorOrDefault returns the pin colour, or DefaultPinColor when unset.
func (p Pin) ColorOrDefault() PinColor {
	if p.Color == nil {
		return DefaultPinColor
	}
	return *p.Color
}

// Description returns the about text, or "" when unset.
func (p Pin) Description() string {
	if p.AboutDescription == nil {
		return ""
	}
	return *p.AboutDescription
}

// BlockPos returns the block position of the pin at height y.
func (p Pin) BlockPos(y int) cube.Pos {
	return cube.PosFromVec3(mgl64.Vec3{p.Position.X(), float64(y), p.Position.Y()})
}

// NetherPosition translates the pin position into Nether coordinates, where
// one block covers eight overworld blocks.
func (p Pin) NetherPosition() Point {
	scaled := p.Position.Mul(1.0 / 8)
	return Point{X: int(math.Round(scaled.X())), Z: int(math.Round(scaled.Y()))}
}

// HasTag reports whether the pin carries tag.
func (p Pin) HasTag(tag string) bool {
	_, found := slices.BinarySearch(p.Tags, tag)
	return found
}

// AddTag inserts tag, keeping the tag set sorted and unique.
func (p *Pin) AddTag(tag string) {
	i, found := slices.BinarySearch(p.Tags, tag)
	if found {
		return
	}
	p.Tags = slices.Insert(p.Tags, i, tag)
}

// RemoveTag deletes tag if present.
func (p *Pin) RemoveTag(tag string) {
	i, found := slices.BinarySearch(p.Tags, tag)
	if !found {
		return
	}
	p.Tags = slices.Delete(p.Tags, i, i+1)
	if len(p.Tags) == 0 {
		p.Tags = nil
	}
}

// ReferencesImage reports whether name is one of the pin's images.
func (p Pin) ReferencesImage(name string) bool {
	return slices.Contains(p.Images, name)
}

// Equal reports structural equality.
func (p Pin) Equal(other Pin) bool {
	return p.Position == other.Position &&
		p.Name == other.Name &&
		equalPtr(p.Color, other.Color) &&
		slices.Equal(p.Images, other.Images) &&
		equalPtr(p.AboutDescription, other.AboutDescription) &&
		slices.Equal(p.Tags, other.Tags) &&
		p.Dimension == other.Dimension
}

// Clone returns a deep copy of p.
func (p Pin) Clone() Pin {
	out := p
	if p.Color != nil {
		c := *p.Color
		out.Color = &c
	}
	if p.AboutDescription != nil {
		d := *p.AboutDescription
		out.AboutDescription = &d
	}
	out.Images = slices.Clone(p.Images)
	out.Tags = slices.Clone(p.Tags)
	return out
}

func (p Pin) normalized() Pin {
	out := p.Clone()
	if len(out.Images) == 0 {
		out.Images = nil
	}
	out.Tags = normalizeTags(out.Tags)
	return out
}

func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := slices.Clone(tags)
	slices.Sort(out)
	return slices.Compact(out)
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// pinWire lists fields in key order so encoding is sorted.
type pinWire struct {
	AboutDescription *string    `json:"aboutDescription,omitempty"`
	Color            *PinColor  `json:"color,omitempty"`
	Dimension        *Dimension `json:"dimension,omitempty"`
	Images           []string   `json:"images,omitempty"`
	Name             *string    `json:"name"`
	Position         []float64  `json:"position"`
	Tags             []string   `json:"tags,omitempty"`
}

func (p Pin) MarshalJSON() ([]byte, error) {
	n := p.normalized()
	dim := n.Dimension
	return marshalNoEscape(pinWire{
		AboutDescription: n.AboutDescription,
		Color:            n.Color,
		Dimension:        &dim,
		Images:           n.Images,
		Name:             &n.Name,
		Position:         []float64{n.Position.X(), n.Position.Y()},
		Tags:             n.Tags,
	})
}

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func (p *Pin) UnmarshalJSON(data []byte) error {
	var w pinWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode pin: %w", err)
	}
	if w.Name == nil {
		return fmt.Errorf("decode pin: missing required field %q", "name")
	}
	if w.Position == nil {
		return fmt.Errorf("decode pin %q: missing required field %q", *w.Name, "position")
	}
	if len(w.Position) != 2 {
		return fmt.Errorf("decode pin %q: position has %d components, want 2", *w.Name, len(w.Position))
	}
	out := Pin{
		Position:         mgl64.Vec2{w.Position[0], w.Position[1]},
		Name:             *w.Name,
		Color:            w.Color,
		Images:           w.Images,
		AboutDescription: w.AboutDescription,
		Tags:             w.Tags,
	}
	if w.Dimension != nil {
		out.Dimension = *w.Dimension
	}
	*p = out.normalized()
	return nil
}
