// Package testutil provides testing utilities for this module.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random vectors, computing exact
// nearest neighbors, and verifying search recall.
//
// # Random Vector Generation
//
//	rng := testutil.NewRNG(seed)
//	vecs := rng.UniformVectors(100, 128)  // uniform [0, 1)
//	vecs = rng.UnitVectors(100, 128)      // L2-normalized, on the hypersphere
//
// # Exact Search (Ground Truth)
//
//	results := testutil.BruteForceSearch(dataset, query, k)
//
// # Recall Verification
//
//	recall := testutil.ComputeRecall(groundTruth, approximate)
package testutil
