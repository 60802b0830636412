package wal

import (
	"encoding/binary"
	"fmt"
	"io"
	"unsafe"
)

// encodeEntry writes an entry in binary format.
// Format: [Type:1][SeqNum:8][VectorLen:4][Vector:N*8]
func (w *WAL) encodeEntry(entry *Entry) error {
	if err := binary.Write(w.writer, binary.LittleEndian, entry.Type); err != nil {
		return err
	}

	if err := binary.Write(w.writer, binary.LittleEndian, entry.SeqNum); err != nil {
		return err
	}

	vectorLen := uint32(len(entry.Vector)) //nolint:gosec
	if err := binary.Write(w.writer, binary.LittleEndian, vectorLen); err != nil {
		return err
	}

	if vectorLen > 0 {
		// Zero-copy write: reinterpret the float64 slice's backing array as bytes.
		byteSlice := unsafe.Slice((*byte)(unsafe.Pointer(&entry.Vector[0])), vectorLen*8) //nolint:gosec // unsafe is required for performance
		if _, err := w.writer.Write(byteSlice); err != nil {
			return err
		}
	}

	return nil
}

// decodeEntry reads an entry in binary format.
func (w *WAL) decodeEntry(reader io.Reader, entry *Entry) error {
	if err := binary.Read(reader, binary.LittleEndian, &entry.Type); err != nil {
		return err
	}

	if err := binary.Read(reader, binary.LittleEndian, &entry.SeqNum); err != nil {
		return err
	}

	var vectorLen uint32
	if err := binary.Read(reader, binary.LittleEndian, &vectorLen); err != nil {
		return err
	}

	if vectorLen > 0 {
		entry.Vector = make([]float64, vectorLen)
		byteSlice := unsafe.Slice((*byte)(unsafe.Pointer(&entry.Vector[0])), vectorLen*8) //nolint:gosec // unsafe is required for performance
		if _, err := io.ReadFull(reader, byteSlice); err != nil {
			return err
		}
	} else {
		entry.Vector = nil
	}

	return nil
}

func (w *WAL) flushLocked() error {
	if err := w.bufWriter.Flush(); err != nil {
		return fmt.Errorf("failed to flush buffer: %w", err)
	}
	if w.compressed {
		if err := w.compressor.Flush(); err != nil {
			return fmt.Errorf("failed to flush compressor: %w", err)
		}
	}
	return nil
}

func (w *WAL) syncLocked() error {
	return w.syncIfNeeded()
}
