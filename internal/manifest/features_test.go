package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestComputeFeatures(t *testing.T) {
	core := NewFeatureSet(FeatureCoreSearch, FeatureCorePinning)
	all := core.Or(NewFeatureSet(FeaturePinTagging, FeatureLargeBiomes))

	tests := []struct {
		name    string
		version *int
		want    FeatureSet
	}{
		{"absent", nil, core},
		{"v1", intPtr(1), core},
		{"v2", intPtr(2), all},
		{"future", intPtr(7), all},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeFeatures(tt.version))
		})
	}
}

func TestComputeFeatures_Monotonic(t *testing.T) {
	prev := ComputeFeatures(nil)
	for v := 1; v <= int(LatestVersion)+3; v++ {
		next := ComputeFeatures(intPtr(v))
		assert.True(t, next.ContainsAll(prev), "features of v%d %s lost members of %s", v, next, prev)
		prev = next
	}
}

func TestManifest_Features(t *testing.T) {
	assert.True(t, Sample().Features().Has(FeaturePinTagging))
	assert.False(t, Manifest{}.Features().Has(FeaturePinTagging))
}

func TestFeatureSet_Ops(t *testing.T) {
	var s FeatureSet
	s.Set(FeaturePinTagging)
	s.Set(FeatureCoreSearch)
	assert.True(t, s.Has(FeaturePinTagging))
	assert.Equal(t, 2, s.Count())
	assert.Equal(t, []Feature{FeatureCoreSearch, FeaturePinTagging}, s.Features())
	assert.Equal(t, "{coreSearch, pinTagging}", s.String())

	s.Clear(FeaturePinTagging)
	assert.False(t, s.Has(FeaturePinTagging))
	assert.False(t, s.ContainsAll(NewFeatureSet(FeaturePinTagging)))
}
