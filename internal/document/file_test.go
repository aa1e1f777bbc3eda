package document

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/mcmap/internal/manifest"
)

func TestNew_EmptyImageMap(t *testing.T) {
	f := New(manifest.Sample(), nil)
	assert.NotNil(t, f.Images)
	assert.Empty(t, f.Images)
	assert.Equal(t, manifest.Sample(), f.Manifest)
}

func TestDecode_ManifestOnly(t *testing.T) {
	f, err := Decode([]byte(`{"seed":123,"mcVersion":"1.21.3","name":"My World","pins":[]}`))
	require.NoError(t, err)
	assert.Equal(t, "My World", f.Manifest.Name)
	assert.Empty(t, f.Images)
}

func TestDecode_PropagatesKind(t *testing.T) {
	_, err := Decode([]byte(`{"manifestVersion":999}`))
	assert.ErrorIs(t, err, manifest.ErrUnknownVersion)
}

func TestEncodeMetadata_Deterministic(t *testing.T) {
	f := Sample()
	a, err := f.EncodeMetadata()
	require.NoError(t, err)
	b, err := f.EncodeMetadata()
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestLayout_RoundTrip(t *testing.T) {
	f := Sample()
	f.Manifest.Pins[0].Images = []string{"foo.png"}
	f.Images["foo.png"] = []byte{0x89, 'P', 'N', 'G'}
	f.Images["bar.png"] = []byte("bar")

	layout, err := f.EncodeLayout()
	require.NoError(t, err)
	require.True(t, layout.IsDirectory())
	assert.ElementsMatch(t, []string{MetadataKey, ImagesKey}, layout.Names())

	decoded, err := DecodeLayout(layout)
	require.NoError(t, err)
	assert.Equal(t, f.Manifest, decoded.Manifest)
	assert.Equal(t, f.Images, decoded.Images)
}

func TestDecodeLayout_MissingMetadata(t *testing.T) {
	tests := map[string]Entry{
		"no entry":          Directory(map[string]Entry{ImagesKey: Directory(nil)}),
		"metadata is a dir": Directory(map[string]Entry{MetadataKey: Directory(nil)}),
		"root is a file":    RegularFile([]byte(`{}`)),
	}
	for name, root := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeLayout(root)
			assert.ErrorIs(t, err, manifest.ErrMissingMetadataEntry)
		})
	}
}

func TestDecodeLayout_UnreadableMetadata(t *testing.T) {
	_, err := DecodeLayout(Directory(map[string]Entry{
		MetadataKey: RegularFile([]byte(`{"name":`)),
	}))
	require.Error(t, err)
	assert.ErrorIs(t, err, manifest.ErrMalformed)
	assert.True(t, strings.Contains(err.Error(), MetadataKey))
}

func TestDecodeLayout_ToleratesMissingImagesAndIgnoresNonRegular(t *testing.T) {
	metadata, err := Sample().EncodeMetadata()
	require.NoError(t, err)

	f, err := DecodeLayout(Directory(map[string]Entry{MetadataKey: RegularFile(metadata)}))
	require.NoError(t, err)
	assert.Empty(t, f.Images)

	f, err = DecodeLayout(Directory(map[string]Entry{
		MetadataKey: RegularFile(metadata),
		ImagesKey: Directory(map[string]Entry{
			"a.heic":   RegularFile([]byte("a")),
			"nested":   Directory(map[string]Entry{"b.heic": RegularFile([]byte("b"))}),
			"link.png": Symlink("a.heic"),
		}),
	}))
	require.NoError(t, err)
	assert.Equal(t, ImageMap{"a.heic": []byte("a")}, f.Images)
}

func TestDecodeLayout_ImagesEntryNotDirectory(t *testing.T) {
	metadata, err := Sample().EncodeMetadata()
	require.NoError(t, err)

	f, err := DecodeLayout(Directory(map[string]Entry{
		MetadataKey: RegularFile(metadata),
		ImagesKey:   RegularFile([]byte("oops")),
	}))
	require.NoError(t, err)
	assert.Empty(t, f.Images)
}

func TestTags_GatedOnPinTagging(t *testing.T) {
	f := Sample()
	f.Manifest.Pins[0].Tags = []string{"spawn", "base"}
	f.AddPin(manifest.Pin{Name: "Mine", Tags: []string{"base", "ores"}})
	assert.Equal(t, []string{"base", "ores", "spawn"}, f.Tags())

	f.Manifest.ManifestVersion = 1
	assert.Nil(t, f.Tags())
}

func TestSetPinTags(t *testing.T) {
	f := Sample()
	require.NoError(t, f.SetPinTags(0, []string{"b", "a", "b"}))
	assert.Equal(t, []string{"a", "b"}, f.Manifest.Pins[0].Tags)

	f.Manifest.ManifestVersion = 1
	err := f.SetPinTags(0, []string{"c"})
	assert.ErrorIs(t, err, ErrFeatureUnsupported)
	assert.Equal(t, []string{"a", "b"}, f.Manifest.Pins[0].Tags)
}

func TestAttachImage(t *testing.T) {
	f := Sample()
	name := f.AttachImage(0, []byte("jpeg"))

	assert.True(t, strings.HasSuffix(name, ".heic"))
	assert.Equal(t, []string{name}, f.Manifest.Pins[0].Images)
	assert.Equal(t, [][]byte{[]byte("jpeg")}, f.PinImages(0))

	second := f.AttachImage(0, []byte("png"))
	assert.NotEqual(t, name, second)
	assert.Len(t, f.PinImages(0), 2)
}

func TestPinImages_SkipsDangling(t *testing.T) {
	f := Sample()
	f.Manifest.Pins[0].Images = []string{"gone.heic", "here.heic"}
	f.Images["here.heic"] = []byte("x")
	assert.Equal(t, [][]byte{[]byte("x")}, f.PinImages(0))
}

func TestIndexedPins(t *testing.T) {
	f := Sample()
	f.AddPin(manifest.Pin{Name: "Base", Position: mgl64.Vec2{10, 10}})

	indexed := f.IndexedPins()
	require.Len(t, indexed, 2)
	assert.Equal(t, 1, indexed[1].Index)
	assert.Equal(t, "Base", indexed[1].Pin.Name)
}

func TestPushRecentLocation_Bounded(t *testing.T) {
	f := Sample()
	for i := 0; i < RecentLocationLimit+3; i++ {
		f.PushRecentLocation(manifest.Point{X: i, Z: i})
	}
	require.Len(t, f.Manifest.RecentLocations, RecentLocationLimit)
	assert.Equal(t, manifest.Point{X: 3, Z: 3}, f.Manifest.RecentLocations[0])
	assert.Equal(t, manifest.Point{X: RecentLocationLimit + 2, Z: RecentLocationLimit + 2}, f.Manifest.RecentLocations[RecentLocationLimit-1])
}

func TestTrimRecentLocations(t *testing.T) {
	f := Sample()
	for i := 0; i < 5; i++ {
		f.PushRecentLocation(manifest.Point{X: i})
	}
	f.TrimRecentLocations(2)
	assert.Equal(t, []manifest.Point{{X: 3}, {X: 4}}, f.Manifest.RecentLocations)

	f.TrimRecentLocations(-1)
	assert.Empty(t, f.Manifest.RecentLocations)
}

func TestClone_Independent(t *testing.T) {
	f := Sample()
	f.Images["a"] = []byte("a")
	clone := f.Clone()
	clone.Images["a"][0] = 'b'
	clone.Manifest.Pins[0].Name = "Other"

	assert.Equal(t, []byte("a"), f.Images["a"])
	assert.Equal(t, "Spawn", f.Manifest.Pins[0].Name)
}
