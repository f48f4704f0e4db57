package embedder

import (
	"stegbmp/pkg/models"
)

// EmbedOptions holds configuration for an embed operation.
type EmbedOptions struct {
	// StegoPath is where the stego image is written.
	StegoPath string
	Verbose   bool
}

// ExtractOptions holds configuration for an extract operation.
type ExtractOptions struct {
	// OutputDir is the directory the recovered file is written into.
	OutputDir string
	// OutputBase is the user-supplied base name for the recovered file; the
	// decoded extension replaces anything after its first period. Empty
	// means the default stem.
	OutputBase string
	Verbose    bool
}

// FileEmbedder is the interface all format-specific embedders implement.
type FileEmbedder interface {
	// CanHandle checks if this embedder can handle the given format
	CanHandle(format string) bool

	// Embed hides the secret file inside the cover image
	Embed(coverPath, secretPath string, options EmbedOptions) (*models.EmbedResult, error)

	// Extract recovers the hidden file from a stego image
	Extract(stegoPath string, options ExtractOptions) (*models.ExtractResult, error)

	// Name returns the name of the embedder
	Name() string

	// Description returns a detailed description of what the embedder does
	Description() string

	// SupportedFormats returns a list of file formats this embedder supports
	SupportedFormats() []string
}

// BaseEmbedder provides common functionality for embedders
type BaseEmbedder struct {
	name        string
	description string
	formats     []string
}

// NewBaseEmbedder creates a new BaseEmbedder
func NewBaseEmbedder(name, description string, formats []string) BaseEmbedder {
	return BaseEmbedder{
		name:        name,
		description: description,
		formats:     formats,
	}
}

// Name returns the embedder name
func (b *BaseEmbedder) Name() string {
	return b.name
}

// Description returns the embedder description
func (b *BaseEmbedder) Description() string {
	return b.description
}

// SupportedFormats returns the supported formats
func (b *BaseEmbedder) SupportedFormats() []string {
	return b.formats
}

// CanHandle checks if the embedder supports the given format
func (b *BaseEmbedder) CanHandle(format string) bool {
	for _, f := range b.formats {
		if f == format {
			return true
		}
	}
	return false
}
