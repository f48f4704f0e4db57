// Package bmpfile handles the parts of a 24-bit uncompressed BMP file the
// steganography pipelines care about: the opaque 54-byte header, the pixel
// geometry fields inside it, and the pixel data capacity derived from them.
//
// Row padding is not handled; only images whose rows need no padding are
// correctly supported.
package bmpfile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/image/bmp"
)

const (
	// HeaderSize is the size of the BMP file plus info headers, copied
	// verbatim from cover to stego image.
	HeaderSize = 54

	// widthOffset and heightOffset locate the little-endian 32-bit pixel
	// dimensions inside the info header.
	widthOffset  = 18
	heightOffset = 22
)

// ErrNotBMP is returned when a file cannot be parsed as a BMP image, or its
// decoded geometry disagrees with the raw header fields.
var ErrNotBMP = errors.New("not a supported BMP image")

// Geometry holds the pixel dimensions read from a BMP header.
type Geometry struct {
	Width  uint32
	Height uint32
}

// PixelDataSize returns the number of pixel bytes the image carries,
// assuming 3 bytes per pixel and no row padding.
func (g Geometry) PixelDataSize() uint32 {
	return g.Width * g.Height * 3
}

// ReadGeometry reads the pixel width and height from the header of an open
// BMP file. Other header fields are not validated.
func ReadGeometry(r io.ReadSeeker) (Geometry, error) {
	if _, err := r.Seek(widthOffset, io.SeekStart); err != nil {
		return Geometry{}, fmt.Errorf("failed to seek to geometry fields: %w", err)
	}
	var dims [8]byte
	if _, err := io.ReadFull(r, dims[:]); err != nil {
		return Geometry{}, fmt.Errorf("%w: header too short", ErrNotBMP)
	}
	return Geometry{
		Width:  binary.LittleEndian.Uint32(dims[0:4]),
		Height: binary.LittleEndian.Uint32(dims[4:8]),
	}, nil
}

// CopyHeader copies the 54-byte header from src to dst unmodified. Both
// streams must be positioned at the start of the file.
func CopyHeader(src io.Reader, dst io.Writer) error {
	var header [HeaderSize]byte
	if _, err := io.ReadFull(src, header[:]); err != nil {
		return fmt.Errorf("%w: header too short", ErrNotBMP)
	}
	if _, err := dst.Write(header[:]); err != nil {
		return fmt.Errorf("failed to write image header: %w", err)
	}
	return nil
}

// Validate checks that the file at path is a BMP the standard decoder can
// parse and that its decoded dimensions match the raw header fields the
// pipelines rely on. This rejects compressed or otherwise exotic variants
// before any raw byte surgery happens.
func Validate(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	cfg, err := bmp.DecodeConfig(f)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotBMP, err)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to rewind image: %w", err)
	}
	geo, err := ReadGeometry(f)
	if err != nil {
		return err
	}
	if cfg.Width != int(geo.Width) || cfg.Height != int(geo.Height) {
		return fmt.Errorf("%w: header geometry %dx%d disagrees with decoded %dx%d",
			ErrNotBMP, geo.Width, geo.Height, cfg.Width, cfg.Height)
	}
	return nil
}
