package core

import (
	"sort"

	"github.com/hupe1980/simplehnsw/distance"
)

// Prune recomputes the connection list of layer[idx] as the m nearest
// neighbors (by squared distance) among its current connections,
// deduplicated, with self-loops and out-of-range indices removed.
func Prune(layer Layer, idx uint32, m int) error {
	node := layer[idx]

	type candidate struct {
		node uint32
		dist float64
	}

	seen := make(map[uint32]struct{}, len(node.Connections))
	candidates := make([]candidate, 0, len(node.Connections))

	for _, c := range node.Connections {
		if c == idx || int(c) >= len(layer) {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}

		d, err := distance.SquaredL2(layer[c].Vector, node.Vector)
		if err != nil {
			return err
		}

		candidates = append(candidates, candidate{node: c, dist: d})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].dist != candidates[j].dist {
			return candidates[i].dist < candidates[j].dist
		}
		return candidates[i].node < candidates[j].node
	})

	if len(candidates) > m {
		candidates = candidates[:m]
	}

	connections := make([]uint32, len(candidates))
	for i, c := range candidates {
		connections[i] = c.node
	}

	layer[idx].Connections = connections

	return nil
}
