package container

import "errors"

var (
	// ErrNotStegoImage means the signature did not match: the image holds no
	// embedded container, or was written by a different format.
	ErrNotStegoImage = errors.New("no steganographic signature found")

	// ErrCorruptContainer means a decoded length field is implausible,
	// usually because clean pixel noise was decoded as a length.
	ErrCorruptContainer = errors.New("implausible length field in container")

	// ErrExtensionTooLong means the embedded extension does not fit the
	// fixed suffix limit.
	ErrExtensionTooLong = errors.New("embedded file extension too long")

	// ErrTruncatedImage means the stego stream ended before a container
	// field could be fully read.
	ErrTruncatedImage = errors.New("stego image truncated mid-container")

	// ErrCarrierExhausted means the cover image ran out of pixel bytes while
	// writing the container. The capacity check should prevent this.
	ErrCarrierExhausted = errors.New("cover image pixel data exhausted")

	// ErrInsufficientCapacity means the cover image cannot hold the secret
	// file plus the container overhead.
	ErrInsufficientCapacity = errors.New("cover image too small for secret file")
)
