// Package jsonl reads and writes newline-delimited JSON. Writes are atomic:
// records go to a temp file that is synced and renamed over the target.
package jsonl

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Read returns each non-empty, parseable line of r as a json.RawMessage.
// Malformed lines are skipped.
func Read(r io.Reader) ([]json.RawMessage, error) {
	var records []json.RawMessage
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if !json.Valid(line) {
			continue
		}
		cp := make([]byte, len(line))
		copy(cp, line)
		records = append(records, json.RawMessage(cp))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning records: %w", err)
	}
	return records, nil
}

// Decode reads r and unmarshals every record into a T. A record that is
// valid JSON but does not fit T is an error.
func Decode[T any](r io.Reader) ([]T, error) {
	records, err := Read(r)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(records))
	for i, rec := range records {
		var v T
		if err := json.Unmarshal(rec, &v); err != nil {
			return nil, fmt.Errorf("decoding record %d: %w", i+1, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// WriteFile marshals values and atomically writes them to path, one per
// line, using the temp-file, fsync, rename pattern.
func WriteFile[T any](path string, values []T) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	fail := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	w := bufio.NewWriter(tmp)
	for _, v := range values {
		rec, err := json.Marshal(v)
		if err != nil {
			return fail(fmt.Errorf("marshaling record: %w", err))
		}
		if _, err := w.Write(rec); err != nil {
			return fail(fmt.Errorf("writing record: %w", err))
		}
		if err := w.WriteByte('\n'); err != nil {
			return fail(fmt.Errorf("writing newline: %w", err))
		}
	}
	if err := w.Flush(); err != nil {
		return fail(fmt.Errorf("flushing buffer: %w", err))
	}
	if err := tmp.Sync(); err != nil {
		return fail(fmt.Errorf("syncing temp file: %w", err))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
