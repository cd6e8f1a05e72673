package texture

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adinfit/sierpinski/gpu/gputest"
)

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	m := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.Set(x, y, color.NRGBA{R: uint8(x * 16), G: uint8(y * 16), B: 0x80, A: 0xff})
		}
	}

	path := filepath.Join(t.TempDir(), "crate.png")
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()
	require.NoError(t, png.Encode(file, m))
	return path
}

func TestDecode(t *testing.T) {
	path := writePNG(t, 8, 4)

	rgba, err := Decode(path, 0)
	require.NoError(t, err)
	assert.Equal(t, 8, rgba.Rect.Dx())
	assert.Equal(t, 4, rgba.Rect.Dy())
	assert.Len(t, rgba.Pix, 8*4*4)
	assert.Equal(t, color.RGBA{R: 16, G: 0, B: 0x80, A: 0xff}, rgba.RGBAAt(1, 0))
}

func TestDecodeScaled(t *testing.T) {
	path := writePNG(t, 8, 4)

	rgba, err := Decode(path, 16)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 16, 16), rgba.Rect)
	assert.Equal(t, uint8(0xff), rgba.RGBAAt(8, 8).A)
}

func TestLoadMissingFile(t *testing.T) {
	device := gputest.New(nil, nil)

	handle, err := Load(device, filepath.Join(t.TempDir(), "missing.png"), 0)
	assert.Equal(t, None, handle)
	assert.True(t, errors.Is(err, ErrNoTexture))
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Empty(t, device.Textures)
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))

	handle, err := Load(gputest.New(nil, nil), path, 0)
	assert.Equal(t, None, handle)
	assert.True(t, errors.Is(err, ErrNoTexture))
}

func TestLibrary(t *testing.T) {
	device := gputest.New(nil, nil)
	library := NewLibrary(device, 32)
	path := writePNG(t, 4, 4)

	first, err := library.Load(path)
	require.NoError(t, err)
	assert.NotEqual(t, None, first)
	assert.Equal(t, [2]int{32, 32}, device.Textures[first])

	second, err := library.Load(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, device.Textures, 1)

	missing, err := library.Load("missing.png")
	assert.Error(t, err)
	assert.Equal(t, None, missing)

	missing, err = library.Load("missing.png")
	assert.NoError(t, err)
	assert.Equal(t, None, missing)
	assert.Equal(t, 2, library.Len())
}
