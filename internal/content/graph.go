package content

import "sync"

// Graph keeps nodes in insertion order.
type Graph struct {
	mu    sync.RWMutex
	nodes []*Node
	byID  map[string]*Node
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{byID: map[string]*Node{}}
}

// Add inserts n and reports whether it was new. Duplicate IDs are ignored.
func (g *Graph) Add(n *Node) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, exists := g.byID[n.ID]; exists {
		return false
	}
	g.byID[n.ID] = n
	g.nodes = append(g.nodes, n)
	return true
}

// Get looks up a node by ID.
func (g *Graph) Get(id string) (*Node, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, ok := g.byID[id]
	return n, ok
}

// Nodes returns the nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]*Node(nil), g.nodes...)
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}
