// Package distance computes Euclidean distance between float64 vectors.
//
// There are two functions: SquaredL2, used for every comparison inside the
// graph since it avoids a sqrt per call, and L2, its square root, used only
// when a distance is handed back to a caller through Search. Both return
// an error if the two vectors have different lengths.
//
// # Usage
//
//	d2, err := distance.SquaredL2(a, b)
//	d, err := distance.L2(a, b)
package distance
