package bmpfile

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

// writeTestBMP writes a fully opaque RGBA image to path, which the encoder
// stores as 24-bit BMP. Widths are kept to multiples of 4 so rows carry no
// padding.
func writeTestBMP(t *testing.T, path string, width, height int) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(x * 7),
				G: uint8(y * 13),
				B: uint8(x + y),
				A: 255,
			})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create test image: %v", err)
	}
	defer f.Close()
	if err := bmp.Encode(f, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
}

func TestReadGeometry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cover.bmp")
	writeTestBMP(t, path, 64, 32)

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	geo, err := ReadGeometry(f)
	if err != nil {
		t.Fatalf("ReadGeometry: %v", err)
	}
	if geo.Width != 64 || geo.Height != 32 {
		t.Errorf("geometry = %dx%d, want 64x32", geo.Width, geo.Height)
	}
	if got := geo.PixelDataSize(); got != 64*32*3 {
		t.Errorf("PixelDataSize = %d, want %d", got, 64*32*3)
	}
}

func TestReadGeometryTruncated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.bmp")
	if err := os.WriteFile(path, []byte("BM tiny"), 0644); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := ReadGeometry(f); !errors.Is(err, ErrNotBMP) {
		t.Errorf("expected ErrNotBMP, got %v", err)
	}
}

func TestCopyHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cover.bmp")
	writeTestBMP(t, path, 16, 16)

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var dst bytes.Buffer
	if err := CopyHeader(bytes.NewReader(raw), &dst); err != nil {
		t.Fatalf("CopyHeader: %v", err)
	}
	if !bytes.Equal(dst.Bytes(), raw[:HeaderSize]) {
		t.Error("copied header differs from source header")
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.bmp")
	writeTestBMP(t, good, 32, 32)
	if err := Validate(good); err != nil {
		t.Errorf("Validate(good) = %v, want nil", err)
	}

	bad := filepath.Join(dir, "bad.bmp")
	if err := os.WriteFile(bad, []byte("this is not a bitmap"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := Validate(bad); !errors.Is(err, ErrNotBMP) {
		t.Errorf("Validate(bad) = %v, want ErrNotBMP", err)
	}

	missing := filepath.Join(dir, "missing.bmp")
	if err := Validate(missing); err == nil {
		t.Error("Validate(missing) should fail")
	}
}
