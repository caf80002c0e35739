// Package snapshot stores run results for later gating.
//
// A snapshot is the msgpack encoding of a result's sides and differences.
// Runs are deterministic, so a fresh run over unchanged inputs encodes to the
// same bytes as the stored snapshot.
package snapshot

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"apicompat/internal/engine"
)

// FormatVersion changes whenever the encoded layout changes.
const FormatVersion = 1

// ErrMismatch is returned by Verify when a result differs from its snapshot.
var ErrMismatch = errors.New("result does not match snapshot")

// Snapshot is the stored form of a result.
type Snapshot struct {
	Version     int                 `msgpack:"version"`
	Sides       []string            `msgpack:"sides"`
	Differences []engine.Difference `msgpack:"differences"`
}

// New captures a result.
func New(res *engine.Result) *Snapshot {
	return &Snapshot{
		Version:     FormatVersion,
		Sides:       res.Sides,
		Differences: res.Differences,
	}
}

// Encode writes s to w.
func (s *Snapshot) Encode(w io.Writer) error {
	return msgpack.NewEncoder(w).Encode(s)
}

// Bytes returns the encoding of s.
func (s *Snapshot) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := s.Encode(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decode reads a snapshot from r.
func Decode(r io.Reader) (*Snapshot, error) {
	var s Snapshot
	if err := msgpack.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	if s.Version != FormatVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", s.Version)
	}

	return &s, nil
}

// Save writes the snapshot of res to path atomically.
func Save(path string, res *engine.Result) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, "snapshot-*")
	if err != nil {
		return err
	}

	defer os.Remove(f.Name())

	if err := New(res).Encode(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if err := f.Close(); err != nil {
		return err
	}

	return os.Rename(f.Name(), path)
}

// Load reads the snapshot stored at path.
func Load(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Verify compares res with the snapshot stored at path.
func Verify(path string, res *engine.Result) error {
	stored, err := Load(path)
	if err != nil {
		return err
	}

	return Compare(stored, New(res))
}

// Compare reports ErrMismatch, naming the first differing entry, when the
// encodings of want and got differ.
func Compare(want, got *Snapshot) error {
	a, err := want.Bytes()
	if err != nil {
		return err
	}

	b, err := got.Bytes()
	if err != nil {
		return err
	}

	if bytes.Equal(a, b) {
		return nil
	}

	n := min(len(want.Differences), len(got.Differences))
	for i := range n {
		w, g := want.Differences[i], got.Differences[i]
		if w.Key != g.Key || w.Rule != g.Rule || w.Type != g.Type || w.Message != g.Message {
			return fmt.Errorf("%w: difference %d is %s %s, snapshot has %s %s",
				ErrMismatch, i, g.Rule, g.Key, w.Rule, w.Key)
		}
	}

	if len(want.Differences) != len(got.Differences) {
		return fmt.Errorf("%w: %d differences, snapshot has %d", ErrMismatch, len(got.Differences), len(want.Differences))
	}

	return ErrMismatch
}
