package document

import (
	"errors"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/mcmap/internal/manifest"
)

func TestCheck_Consistent(t *testing.T) {
	f := Sample()
	f.AttachImage(0, []byte("x"))
	assert.NoError(t, f.Check())
}

func TestCheck_ReportsDanglingAndOrphans(t *testing.T) {
	f := Sample()
	f.Manifest.Pins[0].Images = []string{"missing.heic"}
	f.Images["b-orphan.heic"] = []byte("b")
	f.Images["a-orphan.heic"] = []byte("a")

	err := f.Check()
	require.Error(t, err)

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	require.Len(t, merr.Errors, 3)

	var dangling *DanglingImageError
	require.True(t, errors.As(merr.Errors[0], &dangling))
	assert.Equal(t, 0, dangling.PinIndex)
	assert.Equal(t, "missing.heic", dangling.Image)

	var orphan *OrphanImageError
	require.True(t, errors.As(merr.Errors[1], &orphan))
	assert.Equal(t, "a-orphan.heic", orphan.Image)
	require.True(t, errors.As(merr.Errors[2], &orphan))
	assert.Equal(t, "b-orphan.heic", orphan.Image)
}

func TestCheck_ImageReferencedByLaterPinIsNotOrphan(t *testing.T) {
	f := Sample()
	second := f.AddPin(manifest.Pin{Name: "Second"})
	f.AttachImage(second, []byte("x"))
	f.Images["stray.heic"] = []byte("y")

	var merr *multierror.Error
	require.True(t, errors.As(f.Check(), &merr))
	require.Len(t, merr.Errors, 1)
	var orphan *OrphanImageError
	require.True(t, errors.As(merr.Errors[0], &orphan))
	assert.Equal(t, "stray.heic", orphan.Image)
}
