package models

import (
	"time"
)

// EmbedResult contains the results of hiding a secret file in a cover image
type EmbedResult struct {
	CoverFile        string        `json:"coverFile"`
	SecretFile       string        `json:"secretFile"`
	StegoFile        string        `json:"stegoFile"`
	Extension        string        `json:"extension"`        // stored suffix, includes leading dot
	SecretSize       uint32        `json:"secretSize"`       // payload bytes embedded
	CoverCapacity    uint32        `json:"coverCapacity"`    // pixel bytes available in the cover
	CarrierBytesUsed int64         `json:"carrierBytesUsed"` // pixel bytes whose LSBs were rewritten
	Duration         time.Duration `json:"duration"`
}

// ExtractResult contains the results of recovering a hidden file
type ExtractResult struct {
	StegoFile   string        `json:"stegoFile"`
	OutputFile  string        `json:"outputFile"`
	Extension   string        `json:"extension"`
	PayloadSize uint32        `json:"payloadSize"`
	Duration    time.Duration `json:"duration"`
}
