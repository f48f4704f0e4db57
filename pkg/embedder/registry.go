package embedder

import (
	"sync"
)

// Registry is a container for all available embedders
type Registry struct {
	embedders map[string][]FileEmbedder
	mu        sync.RWMutex
}

// NewRegistry creates a new embedder registry
func NewRegistry() *Registry {
	return &Registry{
		embedders: make(map[string][]FileEmbedder),
	}
}

// Register adds an embedder to the registry
func (r *Registry) Register(embedder FileEmbedder) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, format := range embedder.SupportedFormats() {
		r.embedders[format] = append(r.embedders[format], embedder)
	}
}

// GetEmbeddersForFormat returns all embedders that support the given format
func (r *Registry) GetEmbeddersForFormat(format string) []FileEmbedder {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.embedders[format]
}

// GetEmbedderByName finds an embedder with the given name
func (r *Registry) GetEmbedderByName(name string, format string) FileEmbedder {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.embedders[format] {
		if e.Name() == name {
			return e
		}
	}

	return nil
}

// GetSupportedFormats returns a list of all supported formats
func (r *Registry) GetSupportedFormats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var formats []string
	for format := range r.embedders {
		formats = append(formats, format)
	}

	return formats
}
