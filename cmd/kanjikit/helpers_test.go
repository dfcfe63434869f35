package main

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	exif "github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"
)

// writeConfig writes a config file into a temporary directory and returns its path.
// Tests pass it with --config so that a user's own .kanjikit is never picked up.
func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "kanjikit.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

// runCLI executes the root command with args and returns stdout and stderr.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writeFile writes content to dir/name and returns the path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// whiteWithDot returns a w x h white image with one black pixel at (x, y).
func whiteWithDot(w, h, x, y int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for py := range h {
		for px := range w {
			img.SetNRGBA(px, py, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	img.SetNRGBA(x, y, color.NRGBA{A: 255})
	return img
}

// writePNG encodes img to dir/name and returns the path.
func writePNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode %s: %v", name, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// writeEXIFPNG encodes img to dir/name with an eXIf chunk holding one IFD0
// "Make" tag, and returns the path.
func writeEXIFPNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()

	im, err := exifcommon.NewIfdMappingWithStandard()
	if err != nil {
		t.Fatalf("failed to build IFD mapping: %v", err)
	}
	ib := exif.NewIfdBuilder(im, exif.NewTagIndex(), exifcommon.IfdStandardIfdIdentity, binary.BigEndian)
	if err := ib.AddStandardWithName("Make", "kanjikit"); err != nil {
		t.Fatalf("failed to add EXIF tag: %v", err)
	}
	blob, err := exif.NewIfdByteEncoder().EncodeToExif(ib)
	if err != nil {
		t.Fatalf("failed to encode EXIF: %v", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode %s: %v", name, err)
	}
	data := buf.Bytes()

	const ihdrEnd = 8 + 25
	var chunk []byte
	chunk = binary.BigEndian.AppendUint32(chunk, uint32(len(blob))) //nolint:gosec // Small test fixture
	chunk = append(chunk, "eXIf"...)
	chunk = append(chunk, blob...)
	chunk = binary.BigEndian.AppendUint32(chunk, crc32.ChecksumIEEE(chunk[4:]))

	out := append(append(append([]byte{}, data[:ihdrEnd]...), chunk...), data[ihdrEnd:]...)

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, out, 0600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// readPNGSize decodes the PNG at path and returns its dimensions.
func readPNGSize(t *testing.T, path string) (int, int) {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open %s: %v", path, err)
	}
	defer f.Close()

	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("failed to decode %s: %v", path, err)
	}
	return cfg.Width, cfg.Height
}
