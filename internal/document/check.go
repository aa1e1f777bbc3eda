package document

import (
	"fmt"
	"maps"
	"slices"

	"github.com/hashicorp/go-multierror"

	"github.com/five82/mcmap/internal/manifest"
)

// DanglingImageError reports a pin referencing an image missing from the
// image map.
type DanglingImageError struct {
	PinIndex int
	PinName  string
	Image    string
}

func (e *DanglingImageError) Error() string {
	return fmt.Sprintf("pin %d (%s) references missing image %q", e.PinIndex, e.PinName, e.Image)
}

// OrphanImageError reports an image no pin references.
type OrphanImageError struct {
	Image string
}

func (e *OrphanImageError) Error() string {
	return fmt.Sprintf("image %q is not referenced by any pin", e.Image)
}

// Check verifies that pin image references and the image map agree. It
// returns nil for a consistent file, otherwise a *multierror.Error listing
// every DanglingImageError and OrphanImageError.
func (f File) Check() error {
	var result *multierror.Error
	for i, pin := range f.Manifest.Pins {
		for _, name := range pin.Images {
			if _, ok := f.Images[name]; !ok {
				result = multierror.Append(result, &DanglingImageError{PinIndex: i, PinName: pin.Name, Image: name})
			}
		}
	}
	for _, name := range slices.Sorted(maps.Keys(f.Images)) {
		referenced := slices.ContainsFunc(f.Manifest.Pins, func(p manifest.Pin) bool {
			return p.ReferencesImage(name)
		})
		if !referenced {
			result = multierror.Append(result, &OrphanImageError{Image: name})
		}
	}
	return result.ErrorOrNil()
}
