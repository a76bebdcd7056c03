package virtual

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"weatherpaper/pkg/canvas"
	"weatherpaper/pkg/storage"
	"weatherpaper/pkg/tricolor"
)

func TestPNGScales(t *testing.T) {
	c := canvas.New(10, 5)
	c.Set(0, 0, tricolor.Chromatic)

	bs, err := PNG(c, 2)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(bs))
	require.NoError(t, err)
	assert.Equal(t, 20+16, img.Bounds().Dx())
	assert.Equal(t, 10+16, img.Bounds().Dy())

	r, g, _, _ := img.At(9, 9).RGBA()
	assert.Greater(t, r, g)
}

func TestSnapshotWrites(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := Snapshot(storage.NewSpool(fs), 1, zap.NewNop())

	assert.Empty(t, s.Last())
	require.NoError(t, s.Show(canvas.New(4, 4)))
	require.NotEmpty(t, s.Last())

	ok, err := afero.Exists(fs, s.Last())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSnapshotDisabled(t *testing.T) {
	s := Snapshot(&storage.Spool{}, 1, zap.NewNop())
	require.NoError(t, s.Show(canvas.New(4, 4)))
	assert.Empty(t, s.Last())
}

func TestMockCounts(t *testing.T) {
	m := Mock(zap.NewNop())
	require.NoError(t, m.Init())
	require.NoError(t, m.Show(canvas.New(2, 2)))
	assert.Equal(t, 1, m.Shown)
}
