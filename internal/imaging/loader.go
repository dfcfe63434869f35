package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"

	// Decoders registered with image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	exif "github.com/dsoprea/go-exif/v3"
)

// ErrEmptyImage is returned when a decoded image has no pixels.
var ErrEmptyImage = errors.New("image has no pixels")

// Meta describes a decoded input.
type Meta struct {
	// Format is the registered decoder name ("png", "jpeg", "bmp", ...).
	Format string

	// EXIFTags is the number of EXIF tags found in the file.
	EXIFTags int
}

// Load reads and decodes the image at path and normalizes it to NRGBA with
// its origin at (0,0).
func Load(path string) (*image.NRGBA, Meta, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided input path is intentional
	if err != nil {
		return nil, Meta{}, err
	}
	return Decode(data)
}

// Decode decodes an encoded image held in data.
func Decode(data []byte) (*image.NRGBA, Meta, error) {
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, Meta{}, fmt.Errorf("failed to decode image: %w", err)
	}
	if src.Bounds().Empty() {
		return nil, Meta{}, ErrEmptyImage
	}

	return ToNRGBA(src), Meta{Format: format, EXIFTags: countEXIFTags(data)}, nil
}

// ToNRGBA converts img to a non-premultiplied RGBA buffer with its origin at
// (0,0). NRGBA pixels are copied byte for byte; other color models go through
// color.NRGBAModel, which keeps palette entries that are already NRGBA exact.
func ToNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))

	if src, ok := img.(*image.NRGBA); ok {
		rowLen := b.Dx() * 4
		for y := 0; y < b.Dy(); y++ {
			srcOff := src.PixOffset(b.Min.X, b.Min.Y+y)
			copy(dst.Pix[y*dst.Stride:y*dst.Stride+rowLen], src.Pix[srcOff:srcOff+rowLen])
		}
		return dst
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA) //nolint:forcetypeassert // NRGBAModel always returns color.NRGBA
			dst.SetNRGBA(x-b.Min.X, y-b.Min.Y, c)
		}
	}
	return dst
}

// countEXIFTags returns the number of EXIF tags embedded in data, or 0 when
// there is no readable EXIF block.
func countEXIFTags(data []byte) int {
	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil || rawExif == nil {
		return 0
	}

	entries, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return 0
	}
	return len(entries)
}
