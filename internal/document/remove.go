package document

import (
	"fmt"
	"maps"

	"github.com/five82/mcmap/internal/manifest"
)

// RemovePin removes the pin at index along with every image it references
// that no remaining pin still references. index must be in range.
func (f *File) RemovePin(index int) {
	f.RemovePins([]int{index})
}

// RemovePins removes the pins at indices in one step. Images referenced by
// removed pins are deleted unless a surviving pin still references them.
// Duplicate indices are ignored; every index must be in range.
func (f *File) RemovePins(indices []int) {
	pins := f.Manifest.Pins
	remove := make(map[int]struct{}, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(pins) {
			panic(fmt.Sprintf("document: pin index %d out of range [0, %d)", i, len(pins)))
		}
		remove[i] = struct{}{}
	}
	if len(remove) == 0 {
		return
	}

	survivors := make([]manifest.Pin, 0, len(pins)-len(remove))
	dropped := map[string]struct{}{}
	kept := map[string]struct{}{}
	for i, pin := range pins {
		refs := kept
		if _, ok := remove[i]; ok {
			refs = dropped
		} else {
			survivors = append(survivors, pin)
		}
		for _, name := range pin.Images {
			refs[name] = struct{}{}
		}
	}

	images := maps.Clone(f.Images)
	for name := range dropped {
		if _, stillUsed := kept[name]; !stillUsed {
			delete(images, name)
		}
	}

	// Both halves are built before either is assigned.
	f.Manifest.Pins = survivors
	f.Images = images
}
