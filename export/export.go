// Package export renders a stored resource as a DataCite document. Each
// output representation is a plugin registered by name; the command layer
// looks exporters up through the registry.
package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/geosamples/curator/model"
)

// Exporter renders one resource into one output representation.
type Exporter interface {
	// Name returns the exporter identifier (e.g. "json", "xml").
	Name() string

	// Extension returns the file extension for the output.
	Extension() string

	// Export renders the resource. Read-only; must not fail on missing
	// optional data.
	Export(r *model.Resource, opts Options) ([]byte, error)
}

// Options contains export configuration shared by all representations.
type Options struct {
	// DefaultPublisher fills the publisher field when the resource has
	// none. When this is also empty a hardcoded fallback is used, since
	// the publisher field is schema-required.
	DefaultPublisher string

	// Pretty enables indented output. On by default from the CLI.
	Pretty bool
}

// fallbackPublisher is the last tier of the publisher fallback chain.
const fallbackPublisher = "GeoSamples Repository"

// Registry holds registered exporters.
type Registry struct {
	exporters map[string]Exporter
}

// DefaultRegistry is the global exporter registry.
var DefaultRegistry = NewRegistry()

// NewRegistry creates an empty exporter registry.
func NewRegistry() *Registry {
	return &Registry{exporters: make(map[string]Exporter)}
}

// Register adds an exporter to the registry.
func (r *Registry) Register(e Exporter) {
	r.exporters[e.Name()] = e
}

// Get retrieves an exporter by name.
func (r *Registry) Get(name string) (Exporter, error) {
	e, ok := r.exporters[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown export format: %s", name)
	}
	return e, nil
}

// List returns all registered exporter names, sorted.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.exporters))
	for name := range r.exporters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Register adds an exporter to the default registry.
func Register(e Exporter) {
	DefaultRegistry.Register(e)
}

// Get retrieves an exporter from the default registry.
func Get(name string) (Exporter, error) {
	return DefaultRegistry.Get(name)
}

// List returns the names in the default registry.
func List() []string {
	return DefaultRegistry.List()
}
