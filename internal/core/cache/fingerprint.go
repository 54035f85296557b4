// Package cache computes task fingerprints and plans re-execution when a
// blueprint's tasks have changed since the last run.
package cache

import (
	"crypto/sha256"
	"encoding/hex"

	"go.trai.ch/zerr"

	"github.com/Hemant2A2/Wizflow/internal/core/canon"
	"github.com/Hemant2A2/Wizflow/internal/core/domain"
)

// Fingerprint returns the SHA-256 hex digest of task's canonical JSON
// encoding. Two tasks that are structurally identical — regardless of Go
// map iteration order in Headers/Body/Outputs — fingerprint the same.
func Fingerprint(task domain.Task) (string, error) {
	raw, err := canon.Marshal(task)
	if err != nil {
		return "", zerr.Wrap(err, "cache: fingerprint task")
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}
