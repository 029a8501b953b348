// Package content discovers handbook chapters on disk and holds them as
// nodes that plugins annotate with derived fields.
package content

import (
	"fmt"
	"maps"
	"sync"
)

// Node is one markdown chapter.
type Node struct {
	ID          string
	AbsPath     string
	RelPath     string
	Frontmatter map[string]any
	Title       string

	mu     sync.RWMutex
	fields map[string]any
}

// NewNode returns a node with no fields.
func NewNode(id, absPath, relPath string) *Node {
	return &Node{ID: id, AbsPath: absPath, RelPath: relPath, fields: map[string]any{}}
}

// CreateNodeField attaches a derived field. A field can be written once.
func (n *Node) CreateNodeField(name string, value any) error {
	if name == "" {
		return fmt.Errorf("node %s: field name is required", n.RelPath)
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fields == nil {
		n.fields = map[string]any{}
	}
	if _, exists := n.fields[name]; exists {
		return fmt.Errorf("node %s: field %q already set", n.RelPath, name)
	}
	n.fields[name] = value
	return nil
}

// Field returns a previously attached field.
func (n *Node) Field(name string) (any, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	v, ok := n.fields[name]
	return v, ok
}

// Fields returns a copy of all attached fields.
func (n *Node) Fields() map[string]any {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return maps.Clone(n.fields)
}
