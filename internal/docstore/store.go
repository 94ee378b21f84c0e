// Package docstore persists named collections as JSON array documents on disk.
package docstore

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/preston-bernstein/team-ledger/internal/metrics"
)

const backupDir = "backups"

var emptyDocument = []byte("[]")

// Store owns the data directory and serializes file I/O across collections.
type Store struct {
	basePath string
	logger   *slog.Logger
	metrics  *metrics.Recorder
	now      func() time.Time

	mu sync.Mutex
}

// NewStore constructs a store rooted at basePath. Logger and recorder may be nil.
func NewStore(basePath string, logger *slog.Logger, recorder *metrics.Recorder) *Store {
	return &Store{
		basePath: basePath,
		logger:   logger,
		metrics:  recorder,
		now:      time.Now,
	}
}

// BasePath exposes the store root.
func (s *Store) BasePath() string {
	if s == nil {
		return ""
	}
	return s.basePath
}

// Init creates the data directory when missing.
func (s *Store) Init() error {
	if err := os.MkdirAll(s.basePath, 0o755); err != nil {
		return fmt.Errorf("create data dir %s: %w", s.basePath, err)
	}
	return nil
}

// CollectionPath builds the live file path for a collection.
func CollectionPath(basePath, name string) string {
	return filepath.Join(basePath, name+".json")
}

// BackupPath builds the backup path for a corrupt collection captured at ts.
func BackupPath(basePath, name string, ts time.Time) string {
	stamp := ts.UTC().Format("20060102T150405.000000000Z")
	return filepath.Join(basePath, backupDir, fmt.Sprintf("%s-%s.json", name, stamp))
}

// writeAtomic replaces target with data through a temp file in the same directory.
// It reports false when target already holds identical bytes.
func writeAtomic(target string, data []byte) (bool, error) {
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, err
	}
	if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, data) {
		return false, nil
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(target)+".*.tmp")
	if err != nil {
		return false, err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return false, err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return false, err
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return false, err
	}
	return true, nil
}
