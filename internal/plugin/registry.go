package plugin

import (
	"fmt"
	"sync"
)

// Registry keeps plugins in registration order. The order is the order
// hooks run in.
type Registry struct {
	mu      sync.RWMutex
	plugins []Plugin
	index   map[string]Plugin // name@version
}

// NewRegistry creates a new empty plugin registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]Plugin)}
}

func key(name, version string) string { return name + "@" + version }

// Register adds a plugin to the registry.
// Returns an error if a plugin with the same name and version already exists.
func (r *Registry) Register(p Plugin) error {
	if p == nil {
		return fmt.Errorf("cannot register nil plugin")
	}

	metadata := p.Metadata()
	if err := metadata.Validate(); err != nil {
		return fmt.Errorf("invalid plugin metadata: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	k := key(metadata.Name, metadata.Version)
	if _, exists := r.index[k]; exists {
		return fmt.Errorf("plugin %s already registered", k)
	}
	r.index[k] = p
	r.plugins = append(r.plugins, p)
	return nil
}

// Get retrieves a specific plugin by name and version.
func (r *Registry) Get(name, version string) (Plugin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.index[key(name, version)]
	if !ok {
		return nil, fmt.Errorf("plugin %s@%s not found", name, version)
	}
	return p, nil
}

// Has checks if a plugin with the given name exists (any version).
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.plugins {
		if p.Metadata().Name == name {
			return true
		}
	}
	return false
}

// List returns all registered plugins in registration order.
func (r *Registry) List() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Plugin(nil), r.plugins...)
}

// ListByType returns all plugins of a specific type.
func (r *Registry) ListByType(pluginType PluginType) []Plugin {
	var result []Plugin
	for _, p := range r.List() {
		if p.Metadata().Type == pluginType {
			result = append(result, p)
		}
	}
	return result
}

// NodeCreators returns the plugins implementing NodeCreator.
func (r *Registry) NodeCreators() []NodeCreator {
	var out []NodeCreator
	for _, p := range r.List() {
		if nc, ok := p.(NodeCreator); ok {
			out = append(out, nc)
		}
	}
	return out
}

// PageCreators returns the plugins implementing PageCreator.
func (r *Registry) PageCreators() []PageCreator {
	var out []PageCreator
	for _, p := range r.List() {
		if pc, ok := p.(PageCreator); ok {
			out = append(out, pc)
		}
	}
	return out
}

// PostBuilders returns the plugins implementing PostBuilder.
func (r *Registry) PostBuilders() []PostBuilder {
	var out []PostBuilder
	for _, p := range r.List() {
		if pb, ok := p.(PostBuilder); ok {
			out = append(out, pb)
		}
	}
	return out
}

// Count returns the number of registered plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}
