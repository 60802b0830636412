// Package core implements the layered HNSW graph: node storage, the
// greedy-plus-beam layer search, connection pruning, insert/search
// orchestration, and JSON serialization of the full index state.
package core

// SentinelLayerBelow marks a node on the bottom layer: there is no layer
// below it to reference.
const SentinelLayerBelow = -1

// Node is one stored vector together with its same-layer neighbor list and
// a back-reference to the "same" vector's node index in the layer
// immediately below.
type Node struct {
	Vector      []float64
	Connections []uint32
	LayerBelow  int32
}

// Layer is an ordered, append-only sequence of Nodes. A node's identity
// within a layer is its positional index; indices are assigned
// monotonically and never reused.
type Layer []Node

// HasConnection reports whether the node at idx already lists target as a
// neighbor.
func (l Layer) HasConnection(idx, target uint32) bool {
	for _, c := range l[idx].Connections {
		if c == target {
			return true
		}
	}
	return false
}
