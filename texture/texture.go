// Package texture decodes image files and uploads them as device textures.
package texture

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/adinfit/sierpinski/gpu"
)

// None is the handle of "no texture"; binding it untextures a draw.
const None gpu.TextureID = 0

// ErrNoTexture is wrapped by every load failure. Callers treat it as
// non-fatal and render with None.
var ErrNoTexture = errors.New("no texture")

// Decode reads an image file into tightly packed RGBA pixels. When size is
// positive the image is rescaled to size×size.
func Decode(path string, size int) (*image.RGBA, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("texture %q not found on disk: %w", path, err)
	}
	defer file.Close()

	m, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("unable to decode texture %q: %w", path, err)
	}

	bounds := m.Bounds()
	if size > 0 {
		bounds = image.Rect(0, 0, size, size)
	}

	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	if rgba.Stride != rgba.Rect.Size().X*4 {
		return nil, fmt.Errorf("unsupported stride")
	}

	if size > 0 {
		draw.BiLinear.Scale(rgba, rgba.Bounds(), m, m.Bounds(), draw.Src, nil)
	} else {
		draw.Draw(rgba, rgba.Bounds(), m, m.Bounds().Min, draw.Src)
	}
	return rgba, nil
}

// Load decodes path and uploads it to device. On failure it returns None
// together with an error wrapping ErrNoTexture.
func Load(device gpu.Device, path string, size int) (gpu.TextureID, error) {
	rgba, err := Decode(path, size)
	if err != nil {
		return None, fmt.Errorf("%w: %w", ErrNoTexture, err)
	}
	return device.CreateTexture(rgba.Rect.Dx(), rgba.Rect.Dy(), rgba.Pix), nil
}

// Library caches loaded textures by path. Paths are only looked up while
// loading; the renderer keeps the returned handles.
type Library struct {
	device  gpu.Device
	size    int
	handles map[string]gpu.TextureID
}

func NewLibrary(device gpu.Device, size int) *Library {
	return &Library{
		device:  device,
		size:    size,
		handles: map[string]gpu.TextureID{},
	}
}

// Load returns the handle for path, uploading it on first use. Failures are
// cached as None so a missing file is reported once.
func (library *Library) Load(path string) (gpu.TextureID, error) {
	if handle, ok := library.handles[path]; ok {
		return handle, nil
	}
	handle, err := Load(library.device, path, library.size)
	library.handles[path] = handle
	return handle, err
}

func (library *Library) Len() int { return len(library.handles) }
