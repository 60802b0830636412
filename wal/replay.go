package wal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// Replay calls callback with each insert vector recorded since the last
// checkpoint, in the order they were written, then stops.
func (w *WAL) Replay(callback func(vector []float64) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()

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
		reader = bufio.NewReader(w.file)
	}

	for {
		var entry Entry
		if err := w.decodeEntry(reader, &entry); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("WAL corrupted at entry: %w", err)
		}

		if entry.Type == OpCheckpoint {
			break
		}

		if err := callback(entry.Vector); err != nil {
			return fmt.Errorf("failed to replay entry %d: %w", entry.SeqNum, err)
		}
	}

	if _, err := w.file.Seek(0, 2); err != nil {
		return err
	}
	return nil
}
