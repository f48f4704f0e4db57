// Package bmp implements the embed and extract pipelines for uncompressed
// 24-bit BMP cover images.
//
// Embedding copies the 54-byte header verbatim, drives the container writer
// over the cover's pixel bytes, then copies the untouched remainder, so the
// stego image equals the cover image everywhere outside the encoded LSBs.
// Extraction mirrors that sequence over a single stego stream.
package bmp

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"stegbmp/pkg/bmpfile"
	"stegbmp/pkg/container"
	"stegbmp/pkg/embedder"
	"stegbmp/pkg/filehandler"
	"stegbmp/pkg/models"
)

// BMPEmbedder implements the FileEmbedder interface for LSB steganography
// in raw BMP pixel data.
type BMPEmbedder struct {
	embedder.BaseEmbedder
}

// NewBMPEmbedder creates a new BMP LSB embedder
func NewBMPEmbedder() *BMPEmbedder {
	base := embedder.NewBaseEmbedder(
		"BMP LSB Embedder",
		"Hides a secret file in the pixel LSBs of an uncompressed 24-bit BMP",
		[]string{"bmp"},
	)
	return &BMPEmbedder{BaseEmbedder: base}
}

// Embed hides the file at secretPath inside the cover image at coverPath and
// writes the result to options.StegoPath. On any failure the partially
// written stego file is removed; a failed embed must not leave an image that
// looks complete.
func (e *BMPEmbedder) Embed(coverPath, secretPath string, options embedder.EmbedOptions) (result *models.EmbedResult, err error) {
	start := time.Now()

	if err = bmpfile.Validate(coverPath); err != nil {
		return nil, err
	}

	cover, err := os.Open(coverPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cover image: %w", err)
	}
	defer cover.Close()

	secret, err := os.Open(secretPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open secret file: %w", err)
	}
	defer secret.Close()

	ext := filehandler.FileExtension(secretPath)
	if err = container.ValidExtension(ext); err != nil {
		return nil, err
	}

	secretSize, err := filehandler.GetFileSize(secretPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat secret file: %w", err)
	}
	if secretSize <= 0 {
		return nil, fmt.Errorf("secret file %s is empty", secretPath)
	}
	if secretSize > int64(^uint32(0)) {
		return nil, fmt.Errorf("secret file too large: the size field is 32-bit")
	}

	geo, err := bmpfile.ReadGeometry(cover)
	if err != nil {
		return nil, err
	}
	capacity := geo.PixelDataSize()
	if !container.CheckCapacity(capacity, uint32(secretSize)) {
		return nil, container.ErrInsufficientCapacity
	}

	if options.Verbose {
		fmt.Printf("cover %dx%d: %d pixel bytes, %d usable; embedding %d bytes\n",
			geo.Width, geo.Height, capacity, capacity/8, secretSize)
	}

	stego, err := os.Create(options.StegoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create stego image: %w", err)
	}
	defer func() {
		if err != nil {
			stego.Close()
			os.Remove(options.StegoPath)
		}
	}()

	if _, err = cover.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind cover image: %w", err)
	}
	if err = bmpfile.CopyHeader(cover, stego); err != nil {
		return nil, err
	}

	w := container.NewWriter(cover, stego)
	if err = w.WriteSignature(); err != nil {
		return nil, err
	}
	if err = w.WriteUint32(uint32(len(ext))); err != nil {
		return nil, fmt.Errorf("failed to embed extension length: %w", err)
	}
	if err = w.WriteBytes([]byte(ext)); err != nil {
		return nil, fmt.Errorf("failed to embed extension: %w", err)
	}
	if err = w.WriteUint32(uint32(secretSize)); err != nil {
		return nil, fmt.Errorf("failed to embed secret file size: %w", err)
	}

	embedded, err := w.WriteFrom(secret)
	if err != nil {
		return nil, fmt.Errorf("failed to embed secret data: %w", err)
	}
	if embedded != secretSize {
		err = fmt.Errorf("secret file changed size during embedding: read %d bytes, expected %d",
			embedded, secretSize)
		return nil, err
	}

	if _, err = w.CopyRemainder(); err != nil {
		return nil, err
	}

	if err = stego.Close(); err != nil {
		err = fmt.Errorf("failed to finalize stego image: %w", err)
		return nil, err
	}

	return &models.EmbedResult{
		CoverFile:        coverPath,
		SecretFile:       secretPath,
		StegoFile:        options.StegoPath,
		Extension:        ext,
		SecretSize:       uint32(secretSize),
		CoverCapacity:    capacity,
		CarrierBytesUsed: w.CarrierBytesUsed(),
		Duration:         time.Since(start),
	}, nil
}

// Extract recovers the hidden file from the stego image at stegoPath. The
// output filename combines options.OutputBase (or the default stem) with the
// extension decoded from the container. A partial output file is removed on
// failure.
func (e *BMPEmbedder) Extract(stegoPath string, options embedder.ExtractOptions) (result *models.ExtractResult, err error) {
	start := time.Now()

	stego, err := os.Open(stegoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open stego image: %w", err)
	}
	defer stego.Close()

	if _, err = stego.Seek(bmpfile.HeaderSize, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to skip image header: %w", err)
	}

	r := container.NewReader(stego)
	if err = r.ReadSignature(); err != nil {
		return nil, err
	}

	extLen, err := r.ReadExtensionLen()
	if err != nil {
		return nil, err
	}
	ext, err := r.ReadExtension(extLen)
	if err != nil {
		return nil, err
	}
	if options.Verbose {
		fmt.Printf("decoded extension %q (%d bytes)\n", ext, extLen)
	}

	outName := filehandler.ResolveOutputName(options.OutputBase, ext)
	outPath := filepath.Join(options.OutputDir, outName)

	out, err := os.Create(outPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %s: %w", outPath, err)
	}
	defer func() {
		if err != nil {
			out.Close()
			os.Remove(outPath)
		}
	}()

	payloadLen, err := r.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("failed to decode secret file size: %w", err)
	}
	if options.Verbose {
		fmt.Printf("decoded payload size: %d bytes\n", payloadLen)
	}

	if err = r.ReadPayload(payloadLen, out); err != nil {
		return nil, err
	}

	if err = out.Close(); err != nil {
		err = fmt.Errorf("failed to finalize output file: %w", err)
		return nil, err
	}

	return &models.ExtractResult{
		StegoFile:   stegoPath,
		OutputFile:  outPath,
		Extension:   ext,
		PayloadSize: payloadLen,
		Duration:    time.Since(start),
	}, nil
}
