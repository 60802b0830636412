package wal

import (
	"testing"
	"time"
)

// BenchmarkWALInsert benchmarks single-vector insert latency.
func BenchmarkWALInsert(b *testing.B) {
	benchmarkInsert(b, false)
}

// BenchmarkWALInsertCompressed benchmarks insert latency with zstd enabled.
func BenchmarkWALInsertCompressed(b *testing.B) {
	benchmarkInsert(b, true)
}

func benchmarkInsert(b *testing.B, compress bool) {
	dir := b.TempDir()
	w, err := New(func(o *Options) {
		o.Path = dir
		o.Compress = compress
	})
	if err != nil {
		b.Fatalf("failed to create WAL: %v", err)
	}
	defer w.Close()

	vector := make([]float64, 128)
	for i := range vector {
		vector[i] = float64(i)
	}

	b.ResetTimer()
	for b.Loop() {
		if err := w.LogInsert(vector); err != nil {
			b.Fatalf("LogInsert failed: %v", err)
		}
	}
}

// BenchmarkWALBatchInsert benchmarks batch insert throughput.
func BenchmarkWALBatchInsert(b *testing.B) {
	dir := b.TempDir()
	w, err := New(func(o *Options) { o.Path = dir })
	if err != nil {
		b.Fatalf("failed to create WAL: %v", err)
	}
	defer w.Close()

	batch := make([][]float64, 100)
	for i := range batch {
		batch[i] = make([]float64, 128)
	}

	b.ResetTimer()
	for b.Loop() {
		if err := w.LogBatchInsert(batch); err != nil {
			b.Fatalf("LogBatchInsert failed: %v", err)
		}
	}
}

// BenchmarkWALReplay benchmarks replaying a populated log from a cold open.
func BenchmarkWALReplay(b *testing.B) {
	dir := b.TempDir()
	w, err := New(func(o *Options) { o.Path = dir })
	if err != nil {
		b.Fatalf("failed to create WAL: %v", err)
	}

	vector := make([]float64, 128)
	for i := 0; i < 1000; i++ {
		_ = w.LogInsert(vector)
	}
	w.Close()

	b.ResetTimer()
	for b.Loop() {
		w, err := New(func(o *Options) { o.Path = dir })
		if err != nil {
			b.Fatalf("failed to create WAL: %v", err)
		}

		count := 0
		err = w.Replay(func([]float64) error {
			count++
			return nil
		})
		if err != nil {
			b.Fatalf("Replay failed: %v", err)
		}
		w.Close()
	}
}

// BenchmarkDurabilityModes compares write latency across durability modes.
func BenchmarkDurabilityAsync(b *testing.B)       { benchmarkDurability(b, DurabilityAsync) }
func BenchmarkDurabilityGroupCommit(b *testing.B) { benchmarkDurability(b, DurabilityGroupCommit) }
func BenchmarkDurabilitySync(b *testing.B)        { benchmarkDurability(b, DurabilitySync) }

func benchmarkDurability(b *testing.B, mode DurabilityMode) {
	dir := b.TempDir()

	w, err := New(func(o *Options) {
		o.Path = dir
		o.DurabilityMode = mode
		o.GroupCommitInterval = 10 * time.Millisecond
		o.GroupCommitMaxOps = 100
	})
	if err != nil {
		b.Fatal(err)
	}
	defer w.Close()

	vec := []float64{1, 2, 3}

	b.ResetTimer()
	for b.Loop() {
		if err := w.LogInsert(vec); err != nil {
			b.Fatal(err)
		}
	}
}
