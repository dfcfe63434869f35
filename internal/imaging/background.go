package imaging

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/nao1215/kanjikit/internal/model"
)

// DefaultTolerance is the per-channel brightness at or above which a pixel
// is treated as background.
const DefaultTolerance = 240

// IsBackground reports whether a pixel with the given channels is
// background: R, G and B all at or above tolerance. Alpha is ignored.
func IsBackground(r, g, b uint8, tolerance int) bool {
	return int(r) >= tolerance && int(g) >= tolerance && int(b) >= tolerance
}

// ClearBackground returns a new buffer of the same size as img in which every
// background pixel is replaced by transparent white (255,255,255,0). All other
// pixels, including their alpha, are copied unchanged. It also returns the
// number of pixels that were replaced.
//
// Tolerance is not range-checked: values above 255 clear nothing and values
// at or below 0 clear everything.
func ClearBackground(img *image.NRGBA, tolerance int) (*image.NRGBA, int) {
	b := img.Bounds()
	dst := image.NewNRGBA(b)
	cleared := 0

	for y := b.Min.Y; y < b.Max.Y; y++ {
		srcRow := img.Pix[img.PixOffset(b.Min.X, y):]
		dstRow := dst.Pix[dst.PixOffset(b.Min.X, y):]
		for x := 0; x < b.Dx(); x++ {
			i := x * 4
			px := srcRow[i : i+4 : i+4]
			if IsBackground(px[0], px[1], px[2], tolerance) {
				dstRow[i], dstRow[i+1], dstRow[i+2], dstRow[i+3] = 255, 255, 255, 0
				cleared++
				continue
			}
			copy(dstRow[i:i+4], px)
		}
	}

	return dst, cleared
}

// OpaqueBounds returns the smallest rectangle enclosing every pixel of img
// whose alpha is above zero. The boolean is false when all pixels are fully
// transparent, in which case no rectangle exists.
func OpaqueBounds(img *image.NRGBA) (image.Rectangle, bool) {
	b := img.Bounds()
	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X-1, b.Min.Y-1

	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):]
		for x := 0; x < b.Dx(); x++ {
			if row[x*4+3] == 0 {
				continue
			}
			px := b.Min.X + x
			minX = min(minX, px)
			maxX = max(maxX, px)
			minY = min(minY, y)
			maxY = max(maxY, y)
		}
	}

	if maxX < minX {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}

// Crop returns a copy of the region r of img with its origin at (0,0).
// r is clipped to the bounds of img.
func Crop(img *image.NRGBA, r image.Rectangle) *image.NRGBA {
	return ToNRGBA(img.SubImage(r.Intersect(img.Bounds())))
}

// SavePNG encodes img as PNG to path, replacing any existing file.
func SavePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	encoder := png.Encoder{CompressionLevel: png.DefaultCompression}
	if err := encoder.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// RemoveBackground runs the whole background removal: load input, clear
// near-white pixels, crop to the opaque bounding box and write output as PNG.
//
// When every pixel ends up fully transparent there is no bounding box; the
// image is then written uncropped with its original dimensions.
func RemoveBackground(input, output string, tolerance int) (*model.RemovalResult, error) {
	img, meta, err := Load(input)
	if err != nil {
		return nil, err
	}

	cleared, count := ClearBackground(img, tolerance)

	result := &model.RemovalResult{
		Input:          input,
		Output:         output,
		Format:         meta.Format,
		Tolerance:      tolerance,
		OriginalBounds: img.Bounds(),
		Bounds:         img.Bounds(),
		ClearedPixels:  count,
		EXIFTags:       meta.EXIFTags,
	}

	out := cleared
	if box, ok := OpaqueBounds(cleared); ok {
		out = Crop(cleared, box)
		result.Bounds = box
		result.Cropped = true
	}

	if err := SavePNG(output, out); err != nil {
		return nil, err
	}
	return result, nil
}

// OutputPath returns the PNG path used for input inside dir:
// the input's base name with its extension replaced by ".png".
func OutputPath(dir, input string) string {
	base := filepath.Base(input)
	ext := filepath.Ext(base)
	return filepath.Join(dir, base[:len(base)-len(ext)]+".png")
}
