// Package bitcodec packs data bits into the least significant bits of
// carrier bytes and unpacks them again.
//
// The bit order is LSB-first and is part of the wire format: bit 0 of a
// value lands in the LSB of the first carrier byte, bit 7 (or 31) in the
// LSB of the last. Encoder and decoder must agree on this exactly; swapping
// the order silently corrupts every multi-bit field.
package bitcodec

import "errors"

const (
	// ByteCarrierLen is the number of carrier bytes one data byte occupies.
	ByteCarrierLen = 8
	// Uint32CarrierLen is the number of carrier bytes a 32-bit value occupies.
	Uint32CarrierLen = 32
)

// ErrShortCarrier is returned when a carrier slice is smaller than the
// number of bits to unpack.
var ErrShortCarrier = errors.New("carrier shorter than required bit count")

// PackByte embeds value into the LSBs of carrier[0..7], one bit per byte,
// LSB-first. Bits 1-7 of each carrier byte are left untouched. The carrier
// must hold at least 8 bytes.
func PackByte(value byte, carrier []byte) {
	for i := 0; i < ByteCarrierLen; i++ {
		carrier[i] = (carrier[i] &^ 1) | ((value >> i) & 1)
	}
}

// UnpackByte reassembles a data byte from the LSBs of carrier[0..7].
func UnpackByte(carrier []byte) (byte, error) {
	if len(carrier) < ByteCarrierLen {
		return 0, ErrShortCarrier
	}
	var value byte
	for i := 0; i < ByteCarrierLen; i++ {
		value |= (carrier[i] & 1) << i
	}
	return value, nil
}

// PackUint32 embeds v into the LSBs of carrier[0..31], LSB-first. The
// carrier must hold at least 32 bytes.
func PackUint32(v uint32, carrier []byte) {
	for i := 0; i < Uint32CarrierLen; i++ {
		carrier[i] = (carrier[i] &^ 1) | byte((v>>i)&1)
	}
}

// UnpackUint32 reassembles a 32-bit value from the LSBs of carrier[0..31].
func UnpackUint32(carrier []byte) (uint32, error) {
	if len(carrier) < Uint32CarrierLen {
		return 0, ErrShortCarrier
	}
	var v uint32
	for i := 0; i < Uint32CarrierLen; i++ {
		v |= uint32(carrier[i]&1) << i
	}
	return v, nil
}
