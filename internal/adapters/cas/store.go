// Package cas implements a file-per-task Cache backend, used by the
// batch CLI and by tests.
package cas

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/zerr"

	"github.com/Hemant2A2/Wizflow/internal/core/domain"
	"github.com/Hemant2A2/Wizflow/internal/core/ports"
)

const (
	dirPerm  = 0o750
	filePerm = 0o644
)

var _ ports.Cache = (*Store)(nil)

// Store implements ports.Cache by writing one JSON file per
// (workflow key, task id) pair, named by the SHA-256 hex of their
// composite key.
type Store struct {
	dir string
}

// NewStore creates a Store backed by the directory at path, creating it
// if necessary.
func NewStore(path string) (*Store, error) {
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(cleanPath, dirPerm); err != nil {
		return nil, zerr.Wrap(err, "cas: create store directory")
	}

	return &Store{dir: cleanPath}, nil
}

// Load retrieves the cache entry for (wfKey, taskID), returning nil, nil
// if no entry has been stored yet.
func (s *Store) Load(_ context.Context, wfKey, taskID string) (*domain.CacheEntry, error) {
	filename := s.filename(wfKey, taskID)
	//nolint:gosec // path is derived from a trusted directory and hashed key
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "cas: read entry"), "wf_key", wfKey, "task_id", taskID)
	}

	var entry domain.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "cas: unmarshal entry"), "wf_key", wfKey, "task_id", taskID)
	}
	return &entry, nil
}

// Store writes the cache entry for (wfKey, taskID).
func (s *Store) Store(_ context.Context, wfKey, taskID string, entry domain.CacheEntry) error {
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return zerr.With(zerr.Wrap(err, "cas: marshal entry"), "wf_key", wfKey, "task_id", taskID)
	}

	filename := s.filename(wfKey, taskID)
	//nolint:gosec // path is derived from a trusted directory and hashed key
	if err := os.WriteFile(filename, data, filePerm); err != nil {
		return zerr.With(zerr.Wrap(err, "cas: write entry"), "wf_key", wfKey, "task_id", taskID)
	}
	return nil
}

func (s *Store) filename(wfKey, taskID string) string {
	key := wfKey + ":cache:" + taskID
	hash := sha256.Sum256([]byte(key))
	return filepath.Join(s.dir, hex.EncodeToString(hash[:])+".json")
}
