// Package container defines the self-describing byte layout embedded in the
// LSBs of image pixel data, and the sequential writer/reader that implement
// it.
//
// Wire layout, in carrier bytes (one embedded bit per carrier byte,
// LSB-first within every field):
//
//	signature   8 × len(Signature)   fixed ASCII marker
//	extLen      32                   uint32, length of extension
//	extension   8 × extLen           ASCII, includes leading dot
//	payloadLen  32                   uint32, secret file byte length
//	payload     8 × payloadLen       raw secret file bytes
package container

import (
	"fmt"
	"io"

	"stegbmp/pkg/bitcodec"
)

// Signature marks the start of an embedded container.
const Signature = "#*"

const (
	// MaxExtensionLen is the plausibility bound for a decoded extension
	// length. Anything outside 1..10 is treated as noise.
	MaxExtensionLen = 10

	// suffixBufCap mirrors the fixed suffix buffer of the on-disk format: a
	// stored extension must be strictly shorter than this.
	suffixBufCap = 5

	// OverheadBytes is the capacity planner's fixed allowance for the
	// signature, the two 32-bit length fields, and a nominal 4-byte
	// extension. It deliberately ignores the actual extension length, so it
	// is approximate for unusual extensions; kept for compatibility.
	OverheadBytes = len(Signature) + 4 + 4 + 4
)

// ValidExtension reports whether ext can be stored in the container: it must
// be non-empty and fit the suffix buffer.
func ValidExtension(ext string) error {
	if len(ext) == 0 {
		return fmt.Errorf("extension must be non-empty, including its leading dot")
	}
	if len(ext) >= suffixBufCap {
		return ErrExtensionTooLong
	}
	return nil
}

// CheckCapacity reports whether a cover image with pixelBytes bytes of pixel
// data can carry a secret of secretSize bytes. Each carrier byte holds one
// embedded bit, so the usable byte budget is pixelBytes/8.
func CheckCapacity(pixelBytes, secretSize uint32) bool {
	if secretSize > ^uint32(0)-uint32(OverheadBytes) {
		return false
	}
	usable := pixelBytes / 8
	return usable >= secretSize+uint32(OverheadBytes)
}

// Writer embeds a container into a stream of clean carrier bytes. Carrier
// bytes are consumed from src 8 or 32 at a time, modified in their LSBs, and
// written to dst in the same chunk sizes; they are never reused.
type Writer struct {
	src     io.Reader
	dst     io.Writer
	carried int64
}

// NewWriter returns a Writer that consumes carrier bytes from src and writes
// stego bytes to dst. Both streams must already be positioned at the first
// pixel byte.
func NewWriter(src io.Reader, dst io.Writer) *Writer {
	return &Writer{src: src, dst: dst}
}

// CarrierBytesUsed returns the number of carrier bytes consumed so far.
func (w *Writer) CarrierBytesUsed() int64 {
	return w.carried
}

// WriteSignature embeds the container signature.
func (w *Writer) WriteSignature() error {
	if err := w.WriteBytes([]byte(Signature)); err != nil {
		return fmt.Errorf("failed to write signature: %w", err)
	}
	return nil
}

// WriteUint32 embeds v across 32 carrier bytes.
func (w *Writer) WriteUint32(v uint32) error {
	var carrier [bitcodec.Uint32CarrierLen]byte
	if _, err := io.ReadFull(w.src, carrier[:]); err != nil {
		return w.carrierErr(err)
	}
	bitcodec.PackUint32(v, carrier[:])
	if _, err := w.dst.Write(carrier[:]); err != nil {
		return fmt.Errorf("failed to write stego bytes: %w", err)
	}
	w.carried += bitcodec.Uint32CarrierLen
	return nil
}

// WriteBytes embeds each byte of data across 8 fresh carrier bytes.
func (w *Writer) WriteBytes(data []byte) error {
	var carrier [bitcodec.ByteCarrierLen]byte
	for _, b := range data {
		if _, err := io.ReadFull(w.src, carrier[:]); err != nil {
			return w.carrierErr(err)
		}
		bitcodec.PackByte(b, carrier[:])
		if _, err := w.dst.Write(carrier[:]); err != nil {
			return fmt.Errorf("failed to write stego bytes: %w", err)
		}
		w.carried += bitcodec.ByteCarrierLen
	}
	return nil
}

// WriteFrom embeds every byte readable from r, in 512-byte chunks, and
// returns the number of data bytes embedded.
func (w *Writer) WriteFrom(r io.Reader) (int64, error) {
	buf := make([]byte, 512)
	var total int64
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if werr := w.WriteBytes(buf[:n]); werr != nil {
				return total, werr
			}
			total += int64(n)
		}
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, fmt.Errorf("failed to read secret data: %w", err)
		}
	}
}

// CopyRemainder copies all carrier bytes not consumed by the container from
// src to dst unmodified, so that the stego image equals the cover image
// outside the encoded region.
func (w *Writer) CopyRemainder() (int64, error) {
	n, err := io.Copy(w.dst, w.src)
	if err != nil {
		return n, fmt.Errorf("failed to copy remaining image data: %w", err)
	}
	return n, nil
}

func (w *Writer) carrierErr(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return ErrCarrierExhausted
	}
	return fmt.Errorf("failed to read cover image data: %w", err)
}

// Reader decodes a container from a stream of stego pixel bytes already
// positioned past the image header. It mirrors the Writer step for step.
type Reader struct {
	src io.Reader
}

// NewReader returns a Reader over the stego pixel stream.
func NewReader(src io.Reader) *Reader {
	return &Reader{src: src}
}

// ReadSignature decodes the first signature-length bytes and compares them
// against the expected signature. On mismatch it returns ErrNotStegoImage
// without reading further.
func (r *Reader) ReadSignature() error {
	got := make([]byte, len(Signature))
	if err := r.ReadBytes(got); err != nil {
		return err
	}
	if string(got) != Signature {
		return ErrNotStegoImage
	}
	return nil
}

// ReadUint32 decodes a 32-bit field from 32 carrier bytes.
func (r *Reader) ReadUint32() (uint32, error) {
	var carrier [bitcodec.Uint32CarrierLen]byte
	if _, err := io.ReadFull(r.src, carrier[:]); err != nil {
		return 0, r.stegoErr(err)
	}
	return bitcodec.UnpackUint32(carrier[:])
}

// ReadExtensionLen decodes and validates the extension length field.
func (r *Reader) ReadExtensionLen() (uint32, error) {
	n, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	if n == 0 || n > MaxExtensionLen {
		return 0, fmt.Errorf("%w: extension length %d", ErrCorruptContainer, n)
	}
	return n, nil
}

// ReadExtension decodes an extension of n bytes. The extension must fit the
// suffix buffer or ErrExtensionTooLong is returned.
func (r *Reader) ReadExtension(n uint32) (string, error) {
	if n >= suffixBufCap {
		return "", ErrExtensionTooLong
	}
	ext := make([]byte, n)
	if err := r.ReadBytes(ext); err != nil {
		return "", err
	}
	return string(ext), nil
}

// ReadBytes decodes len(data) bytes, each from 8 carrier bytes.
func (r *Reader) ReadBytes(data []byte) error {
	var carrier [bitcodec.ByteCarrierLen]byte
	for i := range data {
		if _, err := io.ReadFull(r.src, carrier[:]); err != nil {
			return r.stegoErr(err)
		}
		b, err := bitcodec.UnpackByte(carrier[:])
		if err != nil {
			return err
		}
		data[i] = b
	}
	return nil
}

// ReadPayload decodes n payload bytes, writing each to dst as it is
// recovered. Memory use stays constant regardless of payload size.
func (r *Reader) ReadPayload(n uint32, dst io.Writer) error {
	var one [1]byte
	for i := uint32(0); i < n; i++ {
		if err := r.ReadBytes(one[:]); err != nil {
			return err
		}
		if _, err := dst.Write(one[:]); err != nil {
			return fmt.Errorf("failed to write decoded data: %w", err)
		}
	}
	return nil
}

func (r *Reader) stegoErr(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return ErrTruncatedImage
	}
	return fmt.Errorf("failed to read stego image data: %w", err)
}
