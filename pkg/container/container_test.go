package container

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeCarrier builds n pseudo-random carrier bytes with varied high bits.
func fakeCarrier(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i*31 + 7)
	}
	return data
}

func TestContainerRoundTrip(t *testing.T) {
	payload := []byte("the quick brown fox jumps over the lazy dog")
	carrier := fakeCarrier(8*(len(Signature)+4+len(payload)) + 64 + 100)

	var stego bytes.Buffer
	w := NewWriter(bytes.NewReader(carrier), &stego)

	if err := w.WriteSignature(); err != nil {
		t.Fatalf("WriteSignature: %v", err)
	}
	if err := w.WriteUint32(4); err != nil {
		t.Fatalf("WriteUint32(extLen): %v", err)
	}
	if err := w.WriteBytes([]byte(".txt")); err != nil {
		t.Fatalf("WriteBytes(ext): %v", err)
	}
	if err := w.WriteUint32(uint32(len(payload))); err != nil {
		t.Fatalf("WriteUint32(payloadLen): %v", err)
	}
	n, err := w.WriteFrom(bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("WriteFrom: %v", err)
	}
	assert.Equal(t, int64(len(payload)), n)

	wantCarried := int64(8*(len(Signature)+4+len(payload)) + 64)
	assert.Equal(t, wantCarried, w.CarrierBytesUsed())

	if _, err := w.CopyRemainder(); err != nil {
		t.Fatalf("CopyRemainder: %v", err)
	}

	// The tail beyond the encoded region must be byte-identical.
	if !bytes.Equal(stego.Bytes()[wantCarried:], carrier[wantCarried:]) {
		t.Error("carrier tail was modified")
	}

	// Outside the LSBs nothing may change at all.
	for i, b := range stego.Bytes() {
		if b&0xFE != carrier[i]&0xFE {
			t.Fatalf("non-LSB bits modified at offset %d", i)
		}
	}

	r := NewReader(bytes.NewReader(stego.Bytes()))
	if err := r.ReadSignature(); err != nil {
		t.Fatalf("ReadSignature: %v", err)
	}
	extLen, err := r.ReadExtensionLen()
	if err != nil {
		t.Fatalf("ReadExtensionLen: %v", err)
	}
	assert.Equal(t, uint32(4), extLen)

	ext, err := r.ReadExtension(extLen)
	if err != nil {
		t.Fatalf("ReadExtension: %v", err)
	}
	assert.Equal(t, ".txt", ext)

	payloadLen, err := r.ReadUint32()
	if err != nil {
		t.Fatalf("ReadUint32(payloadLen): %v", err)
	}
	assert.Equal(t, uint32(len(payload)), payloadLen)

	var out bytes.Buffer
	if err := r.ReadPayload(payloadLen, &out); err != nil {
		t.Fatalf("ReadPayload: %v", err)
	}
	if !bytes.Equal(out.Bytes(), payload) {
		t.Errorf("payload mismatch: got %q, want %q", out.Bytes(), payload)
	}
}

func TestReadSignatureCleanImage(t *testing.T) {
	// Carrier bytes that were never modified must not look like a container.
	clean := bytes.Repeat([]byte{0xFF}, 256)
	r := NewReader(bytes.NewReader(clean))
	if err := r.ReadSignature(); !errors.Is(err, ErrNotStegoImage) {
		t.Errorf("expected ErrNotStegoImage, got %v", err)
	}
}

func TestReadSignatureTruncated(t *testing.T) {
	r := NewReader(bytes.NewReader(make([]byte, 3)))
	if err := r.ReadSignature(); !errors.Is(err, ErrTruncatedImage) {
		t.Errorf("expected ErrTruncatedImage, got %v", err)
	}
}

func TestReadExtensionLenBounds(t *testing.T) {
	for _, n := range []uint32{0, 11, 5000, 0xFFFFFFFF} {
		carrier := make([]byte, 32)
		// A writer would embed the bogus length the same way.
		var buf bytes.Buffer
		w := NewWriter(bytes.NewReader(carrier), &buf)
		if err := w.WriteUint32(n); err != nil {
			t.Fatalf("WriteUint32: %v", err)
		}
		r := NewReader(bytes.NewReader(buf.Bytes()))
		if _, err := r.ReadExtensionLen(); !errors.Is(err, ErrCorruptContainer) {
			t.Errorf("extLen %d: expected ErrCorruptContainer, got %v", n, err)
		}
	}
}

func TestReadExtensionTooLong(t *testing.T) {
	r := NewReader(bytes.NewReader(make([]byte, 256)))
	if _, err := r.ReadExtension(5); !errors.Is(err, ErrExtensionTooLong) {
		t.Errorf("expected ErrExtensionTooLong, got %v", err)
	}
}

func TestWriterCarrierExhausted(t *testing.T) {
	var stego bytes.Buffer
	w := NewWriter(bytes.NewReader(make([]byte, 10)), &stego)
	err := w.WriteBytes([]byte("ab"))
	if !errors.Is(err, ErrCarrierExhausted) {
		t.Errorf("expected ErrCarrierExhausted, got %v", err)
	}
}

func TestCheckCapacity(t *testing.T) {
	tests := []struct {
		name       string
		pixelBytes uint32
		secretSize uint32
		want       bool
	}{
		{"exact fit", (100 + uint32(OverheadBytes)) * 8, 100, true},
		{"one byte over", (100 + uint32(OverheadBytes)) * 8, 101, false},
		{"empty image", 0, 1, false},
		{"overhead only", uint32(OverheadBytes) * 8, 0, true},
		{"ample", 1024 * 768 * 3, 10000, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckCapacity(tt.pixelBytes, tt.secretSize); got != tt.want {
				t.Errorf("CheckCapacity(%d, %d) = %v, want %v",
					tt.pixelBytes, tt.secretSize, got, tt.want)
			}
		})
	}
}

func TestValidExtension(t *testing.T) {
	if err := ValidExtension(".txt"); err != nil {
		t.Errorf(".txt should be valid: %v", err)
	}
	if err := ValidExtension(".jpeg"); !errors.Is(err, ErrExtensionTooLong) {
		t.Errorf("expected ErrExtensionTooLong for .jpeg, got %v", err)
	}
	if err := ValidExtension(""); err == nil {
		t.Error("empty extension should be rejected")
	}
}

func TestOverheadConstant(t *testing.T) {
	// The planner's allowance is a fixed 14 bytes: signature, two length
	// fields, and a nominal 4-byte extension.
	assert.Equal(t, 14, OverheadBytes)
}

func TestReadPayloadTruncated(t *testing.T) {
	// Enough stego bytes for the signature but not the full payload.
	payload := []byte("abc")
	carrier := fakeCarrier(8 * len(payload))
	var stego bytes.Buffer
	w := NewWriter(bytes.NewReader(carrier), &stego)
	if err := w.WriteBytes(payload); err != nil {
		t.Fatalf("WriteBytes: %v", err)
	}

	r := NewReader(bytes.NewReader(stego.Bytes()))
	var out bytes.Buffer
	err := r.ReadPayload(uint32(len(payload))+1, &out)
	if !errors.Is(err, ErrTruncatedImage) {
		t.Errorf("expected ErrTruncatedImage, got %v", err)
	}
	if out.Len() != len(payload) {
		t.Errorf("expected %d bytes decoded before truncation, got %d", len(payload), out.Len())
	}
}
