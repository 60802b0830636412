package core

import (
	"math"

	"github.com/hupe1980/simplehnsw/distance"
	"github.com/hupe1980/simplehnsw/internal/visited"
)

// Graph is the layered HNSW index: an ordered sequence of L Layers from the
// sparsest, topmost layer down to the densest, bottommost layer, plus the
// scalar parameters controlling construction and search.
type Graph struct {
	Layers         []Layer
	L              int
	ML             float64
	EFC            int
	MaxConnections int

	sampler   *LayerSampler
	dimension int
	vis       *visited.VisitedSet
}

// NewGraph constructs an empty graph with l layers. l must be positive.
func NewGraph(l int, mL float64, efc, maxConnections int, seed int64) (*Graph, error) {
	if l <= 0 {
		return nil, &ErrInvalidArgument{Message: "L must be positive"}
	}

	layers := make([]Layer, l)

	return &Graph{
		Layers:         layers,
		L:              l,
		ML:             mL,
		EFC:            efc,
		MaxConnections: maxConnections,
		sampler:        NewLayerSampler(l, mL, seed),
		dimension:      -1,
		vis:            visited.New(0),
	}, nil
}

// Dimension returns the dimensionality fixed by the first inserted vector,
// or -1 if the graph is still empty.
func (g *Graph) Dimension() int {
	return g.dimension
}

// Size returns the number of vectors stored in the bottom layer, which
// contains every inserted vector exactly once.
func (g *Graph) Size() int {
	return len(g.Layers[0])
}

// Insert adds v to the graph following the sampled target layer: the
// top-down descent refines the entry point through ef=1 searches down to
// the target layer, then attaches the new node at or below that layer via
// efc-width searches and bidirectional linking, pruning every affected
// node's connections back to MaxConnections.
//
// Insert is transactional: a dimension mismatch is detected before any
// layer is mutated, so a failed insert leaves the graph unchanged.
func (g *Graph) Insert(v []float64) error {
	if g.dimension >= 0 && len(v) != g.dimension {
		return &distance.ErrDimensionMismatch{Expected: g.dimension, Actual: len(v)}
	}

	l := g.sampler.Sample()
	entry := uint32(0)

descend:
	for n := g.L - 1; n >= 0; n-- {
		layer := g.Layers[n]

		switch {
		case len(layer) == 0:
			g.Layers[n] = append(layer, Node{
				Vector:     v,
				LayerBelow: g.layerBelowFor(n),
			})

		case n > l:
			res, err := LayerSearch(layer, entry, v, 1, g.vis)
			if err != nil {
				return err
			}
			if len(res) == 0 {
				break
			}
			entry = res[0].Node

			lb := layer[entry].LayerBelow
			if lb == SentinelLayerBelow {
				// Unreachable under the invariants (layerBelow is only a
				// sentinel at layer 0, and this branch only runs above the
				// target layer), but handled defensively for imported data.
				break descend
			}
			entry = uint32(lb)

		default: // n <= l
			candidates, err := LayerSearch(layer, entry, v, g.EFC, g.vis)
			if err != nil {
				return err
			}
			if len(candidates) > g.MaxConnections {
				candidates = candidates[:g.MaxConnections]
			}

			newIndex := uint32(len(layer))
			newNode := Node{Vector: v, LayerBelow: g.layerBelowFor(n)}
			for _, c := range candidates {
				newNode.Connections = append(newNode.Connections, c.Node)
			}

			g.Layers[n] = append(layer, newNode)
			layer = g.Layers[n]

			for _, c := range candidates {
				j := c.Node
				if !layer.HasConnection(j, newIndex) {
					g.Layers[n][j].Connections = append(g.Layers[n][j].Connections, newIndex)
				}
				if err := Prune(g.Layers[n], j, g.MaxConnections); err != nil {
					return err
				}
			}
			if err := Prune(g.Layers[n], newIndex, g.MaxConnections); err != nil {
				return err
			}

			if int(entry) < len(layer) {
				lb := layer[entry].LayerBelow
				if lb != SentinelLayerBelow {
					entry = uint32(lb)
				}
			}
		}
	}

	g.dimension = len(v)

	return nil
}

// layerBelowFor computes the back-reference a node newly created in layer n
// should carry, reading the current (pre-append) size of layer n-1. Layers
// are populated top-down within a single Insert call, so layer n-1 has not
// yet been touched when layer n's node is created.
func (g *Graph) layerBelowFor(n int) int32 {
	if n == 0 {
		return SentinelLayerBelow
	}
	return int32(len(g.Layers[n-1]))
}

// Result is one (distance, node index) pair returned by Search, with
// distance expressed as the true (non-squared) Euclidean distance.
type Result struct {
	Distance float64
	Node     uint32
}

// Search refines an entry point top-down through ef=1 searches, then runs
// an ef-width search on the bottom layer, returning results sorted
// ascending by true Euclidean distance.
func (g *Graph) Search(q []float64, ef int) ([]Result, error) {
	bottom := g.Layers[0]
	if len(bottom) == 0 {
		return nil, nil
	}

	entry := uint32(0)
	// A visited set per call, so concurrent searches never share one.
	vis := visited.New(len(bottom))

	for n := g.L - 1; n >= 1; n-- {
		layer := g.Layers[n]
		if len(layer) == 0 {
			continue
		}

		res, err := LayerSearch(layer, entry, q, 1, vis)
		if err != nil {
			return nil, err
		}
		if len(res) == 0 {
			continue
		}

		best := res[0].Node
		lb := layer[best].LayerBelow
		if lb == SentinelLayerBelow {
			entry = best
			break
		}
		entry = uint32(lb)
	}

	hits, err := LayerSearch(bottom, entry, q, ef, vis)
	if err != nil {
		return nil, err
	}

	results := make([]Result, len(hits))
	for i, h := range hits {
		results[i] = Result{Distance: math.Sqrt(h.Distance), Node: h.Node}
	}

	return results, nil
}
