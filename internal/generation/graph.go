package generation

import (
	"slices"

	"github.com/zyedidia/generic/mapset"
)

// Edge joins two modules through a pair of connected doors
type Edge struct {
	From, To Handle
	FromDoor int // door index on From
	ToDoor   int // door index on To
}

// Graph is the module adjacency graph of a layout
type Graph struct {
	Nodes []Handle
	Edges []Edge

	// Adjacency list for quick lookups
	Adjacent map[Handle][]Handle
}

// NewGraph creates an empty graph
func NewGraph() *Graph {
	return &Graph{Adjacent: make(map[Handle][]Handle)}
}

// AddNode adds a module to the graph
func (g *Graph) AddNode(h Handle) {
	if _, ok := g.Adjacent[h]; ok {
		return
	}
	g.Nodes = append(g.Nodes, h)
	g.Adjacent[h] = nil
}

// AddEdge connects two modules. Both must already be nodes.
func (g *Graph) AddEdge(e Edge) {
	g.Edges = append(g.Edges, e)
	g.Adjacent[e.From] = append(g.Adjacent[e.From], e.To)
	g.Adjacent[e.To] = append(g.Adjacent[e.To], e.From)
}

// Degree returns the number of connections of a module
func (g *Graph) Degree(h Handle) int {
	return len(g.Adjacent[h])
}

// Reachable returns every module reachable from start using BFS
func (g *Graph) Reachable(start Handle) mapset.Set[Handle] {
	visited := mapset.New[Handle]()
	if _, ok := g.Adjacent[start]; !ok {
		return visited
	}

	queue := []Handle{start}
	visited.Put(start)
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, n := range g.Adjacent[current] {
			if !visited.Has(n) {
				visited.Put(n)
				queue = append(queue, n)
			}
		}
	}
	return visited
}

// Path returns the shortest chain of modules from start to goal, both included,
// or nil when goal is unreachable
func (g *Graph) Path(start, goal Handle) []Handle {
	if _, ok := g.Adjacent[start]; !ok {
		return nil
	}

	cameFrom := map[Handle]Handle{start: start}
	queue := []Handle{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current == goal {
			path := []Handle{goal}
			for current != start {
				current = cameFrom[current]
				path = append(path, current)
			}
			slices.Reverse(path)
			return path
		}
		for _, n := range g.Adjacent[current] {
			if _, seen := cameFrom[n]; !seen {
				cameFrom[n] = current
				queue = append(queue, n)
			}
		}
	}
	return nil
}

// Edge returns the connection between a and b, oriented from a
func (g *Graph) Edge(a, b Handle) (Edge, bool) {
	for _, e := range g.Edges {
		switch {
		case e.From == a && e.To == b:
			return e, true
		case e.From == b && e.To == a:
			return Edge{From: a, To: b, FromDoor: e.ToDoor, ToDoor: e.FromDoor}, true
		}
	}
	return Edge{}, false
}

// IsConnected checks if all nodes are reachable from start
func (g *Graph) IsConnected(start Handle) bool {
	if len(g.Nodes) == 0 {
		return true
	}
	return g.Reachable(start).Size() == len(g.Nodes)
}

// Graph builds the adjacency graph of the result's connections
func (r *Result) Graph() *Graph {
	return NewModuleGraph(r.Modules)
}

// NewModuleGraph builds the adjacency graph of placed modules from their
// connected doors
func NewModuleGraph(modules []*ModuleInstance) *Graph {
	g := NewGraph()
	for _, m := range modules {
		g.AddNode(m.Handle)
	}
	for _, c := range connections(modules) {
		g.AddEdge(Edge{From: c.A.Module, To: c.B.Module, FromDoor: c.A.Index, ToDoor: c.B.Index})
	}
	return g
}
