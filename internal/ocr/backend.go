// Package ocr holds the pluggable backends that turn a raster image into
// recognized text. Backends are looked up by name in an explicit registry;
// an unknown name is a configuration error, reported before any page work
// begins.
package ocr

import (
	"context"
	"fmt"
	"sort"

	"github.com/scandocs/doc2text/internal/domain"
	"github.com/scandocs/doc2text/internal/shell"
)

// Backend converts one raster image into text written to textPath.
type Backend interface {
	// Name is the registry key of the backend.
	Name() string

	// Recognize runs the OCR engine on imagePath and writes the recognized
	// text to textPath. A nonzero exit in the Result is a per-page failure.
	Recognize(ctx context.Context, imagePath, textPath string) (shell.Result, error)
}

// Registry maps backend names to implementations.
type Registry struct {
	backends map[string]Backend
}

// NewRegistry creates a registry holding the given backends.
func NewRegistry(backends ...Backend) *Registry {
	r := &Registry{backends: make(map[string]Backend, len(backends))}
	for _, b := range backends {
		r.backends[b.Name()] = b
	}
	return r
}

// Register adds or replaces a backend.
func (r *Registry) Register(b Backend) {
	r.backends[b.Name()] = b
}

// Resolve returns the backend registered under name, or a config error
// listing the known names.
func (r *Registry) Resolve(name string) (Backend, error) {
	if b, ok := r.backends[name]; ok {
		return b, nil
	}
	return nil, domain.ConfigError(fmt.Sprintf("unknown OCR backend %q (known: %v)", name, r.Names()), nil)
}

// Names returns the registered backend names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.backends))
	for name := range r.backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
