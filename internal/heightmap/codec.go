package heightmap

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/transform"
	"github.com/klauspost/compress/zstd"
)

// Serialization adapters at the heightmap boundary. Level files embed grids as
// zstd-compressed binary blocks; images are an interchange format for importing
// terrain painted in external tools and for thumbnails.

var (
	zstdEncoder, _ = zstd.NewWriter(nil)
	zstdDecoder, _ = zstd.NewReader(nil)
)

// Encode serializes the grid as a zstd-compressed block: uint32 segment count followed
// by the raw little-endian float32 samples.
func Encode(g Grid) []byte {
	g.mustBeWellFormed()
	raw := make([]byte, 4+len(g.Heights)*4)
	binary.LittleEndian.PutUint32(raw, uint32(g.Segments))
	for i, h := range g.Heights {
		binary.LittleEndian.PutUint32(raw[4+i*4:], math.Float32bits(h))
	}
	return zstdEncoder.EncodeAll(raw, nil)
}

// Decode reverses Encode. Unlike in-process grid operations, stored blocks come from
// disk, so malformed data is a recoverable error here rather than a panic.
func Decode(data []byte) (Grid, error) {
	raw, err := zstdDecoder.DecodeAll(data, nil)
	if err != nil {
		return Grid{}, fmt.Errorf("heightmap: decompress: %w", err)
	}
	if len(raw) < 4 {
		return Grid{}, fmt.Errorf("heightmap: block too short (%d bytes)", len(raw))
	}
	segments := int(binary.LittleEndian.Uint32(raw))
	want := segments * segments
	if segments < 2 || len(raw) != 4+want*4 {
		return Grid{}, fmt.Errorf("heightmap: block claims %d segments but holds %d bytes", segments, len(raw))
	}
	g := Grid{Heights: make([]float32, want), Segments: segments}
	for i := range g.Heights {
		g.Heights[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[4+i*4:]))
	}
	return g, nil
}

// ToImage grayscale-encodes the grid into the RGB channels of an image, normalized so
// the lowest sample is black and the highest white. A flat grid renders mid-gray.
func ToImage(g Grid) *image.RGBA {
	g.mustBeWellFormed()
	img := image.NewRGBA(image.Rect(0, 0, g.Segments, g.Segments))
	lo, hi := g.MinMax()
	span := hi - lo
	for z := 0; z < g.Segments; z++ {
		for x := 0; x < g.Segments; x++ {
			v := uint8(127)
			if span > 0 {
				v = uint8((g.at(x, z) - lo) / span * 255)
			}
			img.SetRGBA(x, z, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

// FromImage builds a grid from a grayscale-encoded image, mapping black..white to
// [0, maxHeight]. Images whose size differs from segments are resampled with bilinear
// filtering first so any painted heightmap can be imported at the editor's grid
// resolution.
func FromImage(img image.Image, segments int, maxHeight float32) (Grid, error) {
	if img == nil {
		return Grid{}, fmt.Errorf("heightmap: nil image")
	}
	if segments < 2 {
		return Grid{}, fmt.Errorf("heightmap: %d segments", segments)
	}
	if maxHeight < 0 {
		maxHeight = 0
	}
	b := img.Bounds()
	if b.Dx() != segments || b.Dy() != segments {
		img = transform.Resize(img, segments, segments, transform.Linear)
		b = img.Bounds()
	}
	g := New(segments)
	for z := 0; z < segments; z++ {
		for x := 0; x < segments; x++ {
			r, gc, bc, _ := img.At(b.Min.X+x, b.Min.Y+z).RGBA()
			// Average the 16-bit channels; grayscale sources have them equal anyway.
			lum := float32(r+gc+bc) / 3 / 65535
			g.Heights[z*segments+x] = lum * maxHeight
		}
	}
	return g, nil
}
