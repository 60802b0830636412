package core

import "github.com/hupe1980/simplehnsw/internal/visited"

// CurrentVersion is the only JSON schema version this package can read.
const CurrentVersion = 1

// WireNode is the on-the-wire representation of a single Node.
type WireNode struct {
	Vector      []float64 `json:"vector"`
	Connections []uint32  `json:"connections"`
	LayerBelow  int32     `json:"layerBelow"`
}

// WireIndex is the on-the-wire representation of a full Graph: parameters
// plus the complete layered adjacency, version-tagged.
type WireIndex struct {
	Version        int          `json:"version"`
	L              int          `json:"L"`
	ML             float64      `json:"mL"`
	EFC            int          `json:"efc"`
	MaxConnections int          `json:"maxConnections"`
	Index          [][]WireNode `json:"index"`
}

// ToWire converts a Graph into its wire representation.
func ToWire(g *Graph) WireIndex {
	w := WireIndex{
		Version:        CurrentVersion,
		L:              g.L,
		ML:             g.ML,
		EFC:            g.EFC,
		MaxConnections: g.MaxConnections,
		Index:          make([][]WireNode, g.L),
	}

	for n, layer := range g.Layers {
		nodes := make([]WireNode, len(layer))
		for i, node := range layer {
			connections := make([]uint32, len(node.Connections))
			copy(connections, node.Connections)

			nodes[i] = WireNode{
				Vector:      append([]float64(nil), node.Vector...),
				Connections: connections,
				LayerBelow:  node.LayerBelow,
			}
		}
		w.Index[n] = nodes
	}

	return w
}

// FromWire validates w and reconstructs a Graph from it. A seed of 0 gives
// the reconstructed graph's sampler a non-deterministic source, since the
// wire format carries no RNG state.
//
// Every node is pruned once after loading to enforce the MaxConnections
// bound defensively, which makes FromWire idempotent across repeated
// ToWire -> FromWire round trips even against input that did not itself
// enforce pruning.
func FromWire(w WireIndex, seed int64) (*Graph, error) {
	if w.Version != CurrentVersion {
		return nil, &ErrUnsupportedVersion{Version: w.Version}
	}
	if w.L <= 0 {
		return nil, &ErrInvalidArgument{Message: "L must be positive"}
	}
	if len(w.Index) != w.L {
		return nil, &ErrSchemaViolation{Message: "index array length does not match L"}
	}

	dimension := -1

	for _, nodes := range w.Index {
		for _, node := range nodes {
			if node.Vector == nil {
				return nil, &ErrSchemaViolation{Message: "node missing vector"}
			}
			if dimension == -1 {
				dimension = len(node.Vector)
			} else if len(node.Vector) != dimension {
				return nil, &ErrSchemaViolation{Message: "inconsistent vector dimension"}
			}
		}
	}

	for n, nodes := range w.Index {
		for _, node := range nodes {
			for _, c := range node.Connections {
				if int(c) >= len(nodes) {
					return nil, &ErrSchemaViolation{Message: "connection index out of range"}
				}
			}

			if n == 0 {
				if node.LayerBelow != SentinelLayerBelow {
					return nil, &ErrSchemaViolation{Message: "layer 0 node must carry the sentinel layerBelow"}
				}
				continue
			}

			if node.LayerBelow == SentinelLayerBelow {
				return nil, &ErrSchemaViolation{Message: "non-bottom node must not carry the sentinel layerBelow"}
			}
			if node.LayerBelow < 0 || int(node.LayerBelow) >= len(w.Index[n-1]) {
				return nil, &ErrSchemaViolation{Message: "layerBelow out of range in layer below"}
			}
		}
	}

	layers := make([]Layer, w.L)
	for n, nodes := range w.Index {
		layer := make(Layer, len(nodes))
		for i, node := range nodes {
			connections := make([]uint32, len(node.Connections))
			copy(connections, node.Connections)

			layer[i] = Node{
				Vector:      append([]float64(nil), node.Vector...),
				Connections: connections,
				LayerBelow:  node.LayerBelow,
			}
		}
		layers[n] = layer
	}

	for n, layer := range layers {
		for i := range layer {
			if err := Prune(layer, uint32(i), w.MaxConnections); err != nil {
				return nil, err
			}
		}
		layers[n] = layer
	}

	g := &Graph{
		Layers:         layers,
		L:              w.L,
		ML:             w.ML,
		EFC:            w.EFC,
		MaxConnections: w.MaxConnections,
		sampler:        NewLayerSampler(w.L, w.ML, seed),
		dimension:      dimension,
		vis:            visited.New(0),
	}

	return g, nil
}
