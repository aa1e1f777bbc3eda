package manifest

import (
	"math/bits"
	"strings"
)

// Feature is an optional capability gated on the manifest version.
type Feature uint8

const (
	FeatureCoreSearch Feature = iota
	FeatureCorePinning
	FeaturePinTagging
	FeatureLargeBiomes

	featureCount
)

var featureNames = [...]string{
	FeatureCoreSearch:  "coreSearch",
	FeatureCorePinning: "corePinning",
	FeaturePinTagging:  "pinTagging",
	FeatureLargeBiomes: "largeBiomes",
}

// featureMinimumVersion is the first manifest version supporting each
// feature. Entries only ever get added, so capabilities never shrink as the
// version grows.
var featureMinimumVersion = [...]int{
	FeatureCoreSearch:  1,
	FeatureCorePinning: 1,
	FeaturePinTagging:  2,
	FeatureLargeBiomes: 2,
}

func (f Feature) String() string {
	if f < featureCount {
		return featureNames[f]
	}
	return "unknown"
}

// FeatureSet is a bitmask of features.
type FeatureSet uint64

// NewFeatureSet returns a set holding features.
func NewFeatureSet(features ...Feature) FeatureSet {
	var s FeatureSet
	for _, f := range features {
		s.Set(f)
	}
	return s
}

// ComputeFeatures returns the features supported by a manifest declaring
// version. A nil version is treated as version 1.
func ComputeFeatures(version *int) FeatureSet {
	v := int(Version1)
	if version != nil {
		v = *version
	}
	var s FeatureSet
	for f := Feature(0); f < featureCount; f++ {
		if v >= featureMinimumVersion[f] {
			s.Set(f)
		}
	}
	return s
}

// Features returns the capability set of m.
func (m Manifest) Features() FeatureSet {
	v := m.ManifestVersion
	if v == 0 {
		return ComputeFeatures(nil)
	}
	return ComputeFeatures(&v)
}

// Set adds f to the set.
func (s *FeatureSet) Set(f Feature) {
	*s |= 1 << f
}

// Clear removes f from the set.
func (s *FeatureSet) Clear(f Feature) {
	*s &^= 1 << f
}

// Has returns true if f is in the set.
func (s FeatureSet) Has(f Feature) bool {
	return s&(1<<f) != 0
}

// ContainsAll returns true if every feature in other is also in s.
func (s FeatureSet) ContainsAll(other FeatureSet) bool {
	return s&other == other
}

// Or returns the union of s and other.
func (s FeatureSet) Or(other FeatureSet) FeatureSet {
	return s | other
}

// Count returns the number of features in the set.
func (s FeatureSet) Count() int {
	return bits.OnesCount64(uint64(s))
}

// Features lists the members in declaration order.
func (s FeatureSet) Features() []Feature {
	out := make([]Feature, 0, s.Count())
	for f := Feature(0); f < featureCount; f++ {
		if s.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

func (s FeatureSet) String() string {
	names := make([]string, 0, s.Count())
	for _, f := range s.Features() {
		names = append(names, f.String())
	}
	return "{" + strings.Join(names, ", ") + "}"
}
