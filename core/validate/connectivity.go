package validate

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/traverse"

	"github.com/kerguelen/boatgrid/core/model"
)

// circuitGraph is the undirected view of the network used for
// reachability queries. Cable capacity is irrelevant here: a consumer is
// powered as soon as any chain of cables links it to a source.
type circuitGraph struct {
	g       *simple.UndirectedGraph
	ids     map[string]int64
	sources map[int64]bool
}

func newCircuitGraph(nodes []model.Node, conns []model.Connection) *circuitGraph {
	cg := &circuitGraph{
		g:       simple.NewUndirectedGraph(),
		ids:     make(map[string]int64, len(nodes)),
		sources: make(map[int64]bool),
	}
	for i, n := range nodes {
		id := int64(i)
		cg.ids[n.ID] = id
		cg.g.AddNode(simple.Node(id))
		if n.Type.IsSource() {
			cg.sources[id] = true
		}
	}
	for _, c := range conns {
		from, okFrom := cg.ids[c.FromNodeID]
		to, okTo := cg.ids[c.ToNodeID]
		if !okFrom || !okTo || from == to {
			// Dangling or self-referencing cables carry no reachability.
			continue
		}
		cg.g.SetEdge(simple.Edge{F: simple.Node(from), T: simple.Node(to)})
	}
	return cg
}

// reachesSource reports whether any source node is reachable from the
// given node id. The breadth-first walk tracks visited nodes, so cycles
// terminate.
func (cg *circuitGraph) reachesSource(nodeID string) bool {
	start, ok := cg.ids[nodeID]
	if !ok {
		return false
	}
	bfs := traverse.BreadthFirst{}
	found := bfs.Walk(cg.g, cg.g.Node(start), func(n graph.Node, _ int) bool {
		return cg.sources[n.ID()]
	})
	return found != nil
}
