// Package wal provides write-ahead logging for durability and crash recovery.
//
// Every inserted vector is appended here right after the in-memory graph
// has accepted it, so the inserts made since the last snapshot can be
// restored by replaying the log against that snapshot. Only inserts are logged:
// update and delete are not part of this index's operation set, so there is
// no prepare/commit protocol to make a multi-step mutation atomic.
//
// Features:
//   - Individual and batch insert logging (LogInsert, LogBatchInsert)
//   - Configurable fsync behavior for performance vs durability tradeoff
//   - Checkpoint support for log truncation after snapshots
//   - Sequential ordering via sequence numbers
package wal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"
)

// WAL provides write-ahead logging for durability.
type WAL struct {
	mu               sync.Mutex
	file             *os.File
	writer           io.Writer // may be compressed or direct
	bufWriter        *bufio.Writer
	compressor       *zstd.Encoder
	decompressor     *zstd.Decoder
	seqNum           uint64
	filePath         string
	compressed       bool
	compressionLevel int
	dataOffset       int64 // start of entry stream, after the header

	// Auto-checkpoint tracking.
	autoCheckpointOps int
	autoCheckpointMB  int
	committedOps      int
	checkpointFunc    func() error

	// Group commit.
	durabilityMode      DurabilityMode
	groupCommitInterval time.Duration
	groupCommitMaxOps   int
	groupCommitTicker   *time.Ticker
	groupCommitStopCh   chan struct{}
	groupCommitPending  int
	groupCommitWg       sync.WaitGroup

	syncCond        *sync.Cond
	persistedSeqNum uint64
}

// FilePath returns the path to the WAL file.
func (w *WAL) FilePath() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.filePath
}

// New creates or opens a WAL, applying the given option functions over
// DefaultOptions.
func New(optFns ...func(o *Options)) (*WAL, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	if err := os.MkdirAll(opts.Path, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create WAL directory: %w", err)
	}

	filePath := filepath.Join(opts.Path, "index.wal")

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_RDWR, 0o600) //nolint:gosec // path is configurable
	if err != nil {
		return nil, fmt.Errorf("failed to open WAL file: %w", err)
	}
	st, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat WAL file: %w", err)
	}

	w := &WAL{
		file:                file,
		filePath:            filePath,
		compressionLevel:    opts.CompressionLevel,
		autoCheckpointOps:   opts.AutoCheckpointOps,
		autoCheckpointMB:    opts.AutoCheckpointMB,
		durabilityMode:      opts.DurabilityMode,
		groupCommitInterval: opts.GroupCommitInterval,
		groupCommitMaxOps:   opts.GroupCommitMaxOps,
	}
	w.syncCond = sync.NewCond(&w.mu)

	if err := w.initializeFile(st, opts); err != nil {
		_ = file.Close()
		return nil, err
	}

	if _, err := w.file.Seek(w.dataOffset, 0); err != nil {
		_ = w.file.Close()
		return nil, fmt.Errorf("failed to seek WAL data offset: %w", err)
	}

	if w.compressed {
		level := zstd.EncoderLevelFromZstd(w.compressionLevel)
		compressor, err := zstd.NewWriter(w.file, zstd.WithEncoderLevel(level))
		if err != nil {
			_ = file.Close()
			return nil, fmt.Errorf("failed to create compressor: %w", err)
		}
		w.compressor = compressor
		w.bufWriter = bufio.NewWriter(compressor)
		w.writer = w.bufWriter

		decompressor, err := zstd.NewReader(nil)
		if err != nil {
			_ = compressor.Close()
			_ = file.Close()
			return nil, fmt.Errorf("failed to create decompressor: %w", err)
		}
		w.decompressor = decompressor
	} else {
		w.bufWriter = bufio.NewWriter(w.file)
		w.writer = w.bufWriter
	}

	if err := w.scanForSeqNum(); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to scan WAL: %w", err)
	}

	if w.durabilityMode == DurabilityGroupCommit && w.groupCommitInterval > 0 {
		w.groupCommitStopCh = make(chan struct{})
		w.groupCommitTicker = time.NewTicker(w.groupCommitInterval)
		w.groupCommitWg.Add(1)
		go w.groupCommitWorker()
	}

	return w, nil
}

func (w *WAL) initializeFile(info os.FileInfo, opts Options) error {
	if info.Size() == 0 {
		return w.writeNewHeader(opts)
	}
	return w.readExistingHeader()
}

func (w *WAL) writeNewHeader(opts Options) error {
	hdrLen, err := writeWALHeader(w.file, walHeaderInfo{
		Compressed:       opts.Compress,
		CompressionLevel: opts.CompressionLevel,
	})
	if err != nil {
		return fmt.Errorf("failed to write WAL header: %w", err)
	}
	w.dataOffset = hdrLen
	w.compressed = opts.Compress
	return nil
}

func (w *WAL) readExistingHeader() error {
	hdrInfo, valid, err := readWALHeader(w.file)
	if err != nil {
		return fmt.Errorf("failed to read WAL header: %w", err)
	}
	if !valid {
		return fmt.Errorf("invalid WAL header")
	}
	w.dataOffset = hdrInfo.HeaderLen
	w.compressed = hdrInfo.Compressed
	w.compressionLevel = hdrInfo.CompressionLevel
	return nil
}

// syncIfNeeded applies the configured durability mode for the entry just
// written. Caller must hold w.mu.
func (w *WAL) syncIfNeeded() error {
	switch w.durabilityMode {
	case DurabilityAsync:
		return nil

	case DurabilitySync:
		return w.file.Sync()

	case DurabilityGroupCommit:
		w.groupCommitPending++
		targetSeq := w.seqNum

		if w.groupCommitPending >= w.groupCommitMaxOps {
			if err := w.doGroupCommit(); err != nil {
				return err
			}
		} else {
			// syncCond.Wait() releases w.mu, letting the background worker (or
			// another writer) perform the sync and wake us.
			for w.persistedSeqNum < targetSeq {
				w.syncCond.Wait()
			}
		}
		return nil

	default:
		return nil
	}
}

// doGroupCommit fsyncs and resets the pending counter. Caller must hold w.mu.
func (w *WAL) doGroupCommit() error {
	if w.groupCommitPending == 0 {
		return nil
	}
	if err := w.file.Sync(); err != nil {
		return err
	}
	w.groupCommitPending = 0
	w.persistedSeqNum = w.seqNum
	w.syncCond.Broadcast()
	return nil
}

func (w *WAL) groupCommitWorker() {
	defer w.groupCommitWg.Done()

	if w.groupCommitTicker == nil {
		return
	}

	for {
		select {
		case <-w.groupCommitStopCh:
			w.mu.Lock()
			_ = w.doGroupCommit()
			w.mu.Unlock()
			return

		case <-w.groupCommitTicker.C:
			w.mu.Lock()
			_ = w.doGroupCommit()
			w.mu.Unlock()
		}
	}
}

// scanForSeqNum scans the WAL to find the highest sequence number.
func (w *WAL) scanForSeqNum() error {
	if _, err := w.file.Seek(w.dataOffset, 0); err != nil {
		return err
	}

	var reader io.Reader
	if w.compressed {
		if err := w.decompressor.Reset(w.file); err != nil {
			return fmt.Errorf("failed to reset decompressor: %w", err)
		}
		reader = w.decompressor
	} else {
		reader = w.file
	}

	var maxSeqNum uint64
	for {
		var entry Entry
		if err := w.decodeEntry(reader, &entry); err != nil {
			break // EOF or corrupt tail: stop here.
		}
		if entry.SeqNum > maxSeqNum {
			maxSeqNum = entry.SeqNum
		}
	}
	w.seqNum = maxSeqNum

	if _, err := w.file.Seek(0, 2); err != nil {
		return err
	}
	return nil
}

// LogInsert logs the insertion of a single vector.
func (w *WAL) LogInsert(vector []float64) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.seqNum++
	entry := Entry{Type: OpInsert, Vector: vector, SeqNum: w.seqNum}
	if err := w.encodeEntry(&entry); err != nil {
		return fmt.Errorf("failed to encode WAL entry: %w", err)
	}
	if err := w.flushLocked(); err != nil {
		return err
	}
	w.committedOps++
	if err := w.syncLocked(); err != nil {
		return err
	}
	return w.maybeCheckpointLocked()
}

// LogBatchInsert logs multiple insertions, fsyncing once at the end.
func (w *WAL) LogBatchInsert(vectors [][]float64) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i, v := range vectors {
		w.seqNum++
		entry := Entry{Type: OpInsert, Vector: v, SeqNum: w.seqNum}
		if err := w.encodeEntry(&entry); err != nil {
			return fmt.Errorf("failed to encode WAL entry %d: %w", i, err)
		}
	}
	if err := w.flushLocked(); err != nil {
		return err
	}
	w.committedOps += len(vectors)
	if err := w.syncLocked(); err != nil {
		return err
	}
	return w.maybeCheckpointLocked()
}

// Checkpoint writes a checkpoint marker and truncates the WAL. Call this
// after a successful snapshot save.
func (w *WAL) Checkpoint() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.seqNum++
	entry := Entry{Type: OpCheckpoint, SeqNum: w.seqNum}
	if err := w.encodeEntry(&entry); err != nil {
		return fmt.Errorf("failed to encode checkpoint: %w", err)
	}
	if err := w.flushLocked(); err != nil {
		return err
	}
	if err := w.file.Sync(); err != nil {
		return err
	}

	return w.truncate()
}

// truncate recreates an empty WAL file with a fresh header. Caller must hold w.mu.
func (w *WAL) truncate() error {
	if w.bufWriter != nil {
		if err := w.bufWriter.Flush(); err != nil {
			return fmt.Errorf("failed to flush buffer: %w", err)
		}
	}
	if w.compressed && w.compressor != nil {
		if err := w.compressor.Close(); err != nil {
			return fmt.Errorf("failed to close compressor: %w", err)
		}
	}
	if err := w.file.Close(); err != nil {
		return err
	}

	file, err := os.OpenFile(w.filePath, os.O_CREATE|os.O_RDWR|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to truncate WAL file: %w", err)
	}
	w.file = file

	hdrLen, err := writeWALHeader(w.file, walHeaderInfo{
		Compressed:       w.compressed,
		CompressionLevel: w.compressionLevel,
	})
	if err != nil {
		_ = w.file.Close()
		return err
	}
	w.dataOffset = hdrLen
	if _, err := w.file.Seek(w.dataOffset, 0); err != nil {
		_ = w.file.Close()
		return fmt.Errorf("failed to seek WAL data offset: %w", err)
	}

	if w.compressed {
		level := zstd.EncoderLevelFromZstd(w.compressionLevel)
		compressor, err := zstd.NewWriter(file, zstd.WithEncoderLevel(level))
		if err != nil {
			_ = file.Close()
			return fmt.Errorf("failed to recreate compressor: %w", err)
		}
		w.compressor = compressor
		w.bufWriter = bufio.NewWriter(compressor)
		w.writer = w.bufWriter
	} else {
		w.bufWriter = bufio.NewWriter(file)
		w.writer = w.bufWriter
	}

	w.seqNum = 0
	w.committedOps = 0
	return nil
}

// Close closes the WAL file gracefully: stops the group-commit worker (if
// any), flushes pending writes, fsyncs, and closes the file. The WAL is not
// usable after Close returns.
func (w *WAL) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return nil
	}

	if w.groupCommitTicker != nil {
		close(w.groupCommitStopCh)
		w.mu.Unlock()
		w.groupCommitWg.Wait()
		w.mu.Lock()
		w.groupCommitTicker.Stop()
		w.groupCommitTicker = nil
	}

	if w.bufWriter != nil {
		if err := w.bufWriter.Flush(); err != nil {
			return fmt.Errorf("failed to flush buffer: %w", err)
		}
	}
	if w.compressed && w.compressor != nil {
		if err := w.compressor.Close(); err != nil {
			return fmt.Errorf("failed to close compressor: %w", err)
		}
	}
	if w.decompressor != nil {
		w.decompressor.Close()
	}

	err := w.file.Close()
	w.file = nil
	return err
}

// Len returns the number of entries in the WAL. Approximate; intended for
// tests and diagnostics, not the hot path.
func (w *WAL) Len() (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	currentPos, err := w.file.Seek(0, 1)
	if err != nil {
		return 0, err
	}
	if _, err := w.file.Seek(w.dataOffset, 0); err != nil {
		return 0, err
	}

	var reader io.Reader
	if w.compressed {
		if err := w.decompressor.Reset(w.file); err != nil {
			return 0, fmt.Errorf("failed to reset decompressor: %w", err)
		}
		reader = w.decompressor
	} else {
		reader = bufio.NewReader(w.file)
	}

	count := 0
	for {
		var entry Entry
		if err := w.decodeEntry(reader, &entry); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			break
		}
		count++
	}

	if _, err := w.file.Seek(currentPos, 0); err != nil {
		return count, err
	}
	return count, nil
}

// SetCheckpointCallback sets the function invoked when an auto-checkpoint
// threshold (AutoCheckpointOps / AutoCheckpointMB) is crossed. The callback
// is typically the owning index's snapshot-save method, followed by a call
// to Checkpoint.
func (w *WAL) SetCheckpointCallback(fn func() error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.checkpointFunc = fn
}

// maybeCheckpointLocked triggers an automatic checkpoint if a threshold has
// been crossed. Caller must hold w.mu.
func (w *WAL) maybeCheckpointLocked() error {
	if w.autoCheckpointOps > 0 && w.committedOps >= w.autoCheckpointOps {
		return w.triggerAutoCheckpointLocked()
	}
	if w.autoCheckpointMB > 0 {
		if stat, err := w.file.Stat(); err == nil {
			if stat.Size()/(1024*1024) >= int64(w.autoCheckpointMB) {
				return w.triggerAutoCheckpointLocked()
			}
		}
	}
	return nil
}

func (w *WAL) triggerAutoCheckpointLocked() error {
	if w.checkpointFunc == nil {
		return nil
	}
	w.committedOps = 0

	w.mu.Unlock()
	err := w.checkpointFunc()
	w.mu.Lock()
	return err
}
