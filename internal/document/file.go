package document

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/google/uuid"

	"github.com/five82/mcmap/internal/manifest"
)

const (
	// MetadataKey names the manifest entry of a package.
	MetadataKey = "Info.json"
	// ImagesKey names the directory holding pin images.
	ImagesKey = "Images"

	// RecentLocationLimit bounds the recent location list.
	RecentLocationLimit = 15

	imageExtension = ".heic"
)

// ErrFeatureUnsupported is returned by edits gated on a feature the
// manifest version does not support.
var ErrFeatureUnsupported = errors.New("feature not supported by manifest version")

// ImageMap maps image names to image data.
type ImageMap map[string][]byte

// File is a map package: the latest manifest and the images its pins
// reference.
//
// Remove pins with RemovePin or RemovePins so unreferenced images are dropped
// with them.
type File struct {
	Manifest manifest.Manifest
	Images   ImageMap
}

// New returns a file holding m and images.
func New(m manifest.Manifest, images ImageMap) File {
	if images == nil {
		images = ImageMap{}
	}
	return File{Manifest: m, Images: images}
}

// Sample returns a new file built from the sample manifest.
func Sample() File {
	return New(manifest.Sample(), nil)
}

// Decode reads a file from manifest bytes alone. The image map is empty.
func Decode(data []byte) (File, error) {
	m, err := manifest.Decode(data)
	if err != nil {
		return File{}, err
	}
	return New(m, nil), nil
}

// DecodeLayout reads a file from a package layout. The metadata entry is
// required; the images directory is optional and only its regular files are
// read.
func DecodeLayout(root Entry) (File, error) {
	if !root.IsDirectory() {
		return File{}, &manifest.DecodeError{
			Kind: manifest.ErrMissingMetadataEntry,
			Err:  fmt.Errorf("package root is a %s, want directory", root.Kind),
		}
	}
	metadata, ok := root.Child(MetadataKey)
	if !ok || !metadata.IsRegular() {
		return File{}, &manifest.DecodeError{
			Kind: manifest.ErrMissingMetadataEntry,
			Err:  fmt.Errorf("no regular %s entry", MetadataKey),
		}
	}

	m, err := manifest.Decode(metadata.Contents)
	if err != nil {
		return File{}, fmt.Errorf("decode %s: %w", MetadataKey, err)
	}

	images := ImageMap{}
	if dir, ok := root.Child(ImagesKey); ok && dir.IsDirectory() {
		for name, entry := range dir.Entries {
			if !entry.IsRegular() {
				continue
			}
			images[name] = entry.Contents
		}
	}
	return New(m, images), nil
}

// EncodeMetadata serializes the manifest with sorted keys.
func (f File) EncodeMetadata() ([]byte, error) {
	return manifest.Encode(f.Manifest)
}

// EncodeLayout builds the package layout: the metadata entry and an images
// directory with one regular entry per image.
func (f File) EncodeLayout() (Entry, error) {
	metadata, err := f.EncodeMetadata()
	if err != nil {
		return Entry{}, err
	}
	images := make(map[string]Entry, len(f.Images))
	for name, data := range f.Images {
		images[name] = RegularFile(data)
	}
	return Directory(map[string]Entry{
		MetadataKey: RegularFile(metadata),
		ImagesKey:   Directory(images),
	}), nil
}

// Features returns the capabilities of the file's manifest version.
func (f File) Features() manifest.FeatureSet {
	return f.Manifest.Features()
}

// Tags returns the sorted union of every pin's tags, or nil when the
// manifest does not support pin tagging.
func (f File) Tags() []string {
	if !f.Features().Has(manifest.FeaturePinTagging) {
		return nil
	}
	set := map[string]struct{}{}
	for _, pin := range f.Manifest.Pins {
		for _, tag := range pin.Tags {
			set[tag] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(set))
}

// IndexedPins returns the pins paired with their index.
func (f File) IndexedPins() []manifest.IndexedPin {
	out := make([]manifest.IndexedPin, len(f.Manifest.Pins))
	for i, pin := range f.Manifest.Pins {
		out[i] = manifest.IndexedPin{Index: i, Pin: pin}
	}
	return out
}

// AddPin appends pin and returns its index.
func (f *File) AddPin(pin manifest.Pin) int {
	f.Manifest.Pins = append(f.Manifest.Pins, pin)
	return len(f.Manifest.Pins) - 1
}

// SetPinTags replaces the tags of the pin at index.
func (f *File) SetPinTags(index int, tags []string) error {
	if !f.Features().Has(manifest.FeaturePinTagging) {
		return fmt.Errorf("set tags on pin %d: %w", index, ErrFeatureUnsupported)
	}
	pin := &f.Manifest.Pins[index]
	pin.Tags = nil
	for _, tag := range tags {
		pin.AddTag(tag)
	}
	return nil
}

// AttachImage stores data under a fresh image name and adds the name to the
// pin at index.
func (f *File) AttachImage(index int, data []byte) string {
	name := uuid.NewString() + imageExtension
	if f.Images == nil {
		f.Images = ImageMap{}
	}
	f.Images[name] = data
	pin := &f.Manifest.Pins[index]
	pin.Images = append(pin.Images, name)
	return name
}

// PinImages returns the image data of the pin at index in reference order.
// Names missing from the image map are skipped.
func (f File) PinImages(index int) [][]byte {
	var out [][]byte
	for _, name := range f.Manifest.Pins[index].Images {
		if data, ok := f.Images[name]; ok {
			out = append(out, data)
		}
	}
	return out
}

// PushRecentLocation records p as the most recent location, dropping the
// oldest entries beyond RecentLocationLimit.
func (f *File) PushRecentLocation(p manifest.Point) {
	f.Manifest.RecentLocations = append(f.Manifest.RecentLocations, p)
	f.TrimRecentLocations(RecentLocationLimit)
}

// TrimRecentLocations keeps only the newest limit recent locations.
func (f *File) TrimRecentLocations(limit int) {
	limit = max(limit, 0)
	if extra := len(f.Manifest.RecentLocations) - limit; extra > 0 {
		f.Manifest.RecentLocations = slices.Clone(f.Manifest.RecentLocations[extra:])
	}
}

// Clone returns a deep copy of f.
func (f File) Clone() File {
	images := make(ImageMap, len(f.Images))
	for name, data := range f.Images {
		images[name] = slices.Clone(data)
	}
	return File{Manifest: f.Manifest.Clone(), Images: images}
}
