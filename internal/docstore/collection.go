package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/preston-bernstein/team-ledger/internal/logging"
	"github.com/preston-bernstein/team-ledger/internal/metrics"
)

// Collection is a typed handle over one {basePath}/{name}.json document.
type Collection[T any] struct {
	store *Store
	name  string
}

// NewCollection binds a collection name to store.
func NewCollection[T any](store *Store, name string) *Collection[T] {
	return &Collection[T]{store: store, name: name}
}

// Name returns the collection name.
func (c *Collection[T]) Name() string {
	return c.name
}

// Path returns the live file path.
func (c *Collection[T]) Path() string {
	return CollectionPath(c.store.basePath, c.name)
}

// Load returns every record in the collection. A missing or blank file is
// initialized to an empty array. A document that is not a JSON array is
// backed up and reset; records that fail to decode are backed up with the
// whole document and dropped from the live file. Errors are returned when a
// backup or the rewritten document cannot be written.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	s := c.store
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	items, err := c.load(ctx)
	s.metrics.RecordStoreOperation(c.name, metrics.OpLoad, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Save replaces the collection with items. Nil encodes as an empty array.
func (c *Collection[T]) Save(ctx context.Context, items []T) error {
	s := c.store
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	err := c.save(items)
	s.metrics.RecordStoreOperation(c.name, metrics.OpSave, time.Since(start), err)
	if err != nil {
		logging.Error(ctx, s.logger, "collection save failed", err, logging.FieldCollection, c.name)
		return err
	}
	return nil
}

func (c *Collection[T]) load(ctx context.Context) ([]T, error) {
	path := c.Path()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return c.reset(path)
	case err != nil:
		return c.quarantine(ctx, path, err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return c.reset(path)
	}
	if trimmed[0] != '[' {
		return c.recover(ctx, path, data, errors.New("document is not a JSON array"))
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(trimmed, &raws); err != nil {
		return c.recover(ctx, path, data, err)
	}

	items := make([]T, 0, len(raws))
	kept := make([]json.RawMessage, 0, len(raws))
	var skipErr error
	for _, raw := range raws {
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			if skipErr == nil {
				skipErr = err
			}
			continue
		}
		items = append(items, item)
		kept = append(kept, raw)
	}
	if len(kept) < len(raws) {
		if err := c.prune(ctx, path, data, kept, len(raws)-len(kept), skipErr); err != nil {
			return nil, err
		}
	}
	return items, nil
}

func (c *Collection[T]) save(items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.name, err)
	}
	if _, err := writeAtomic(c.Path(), data); err != nil {
		return fmt.Errorf("write %s: %w", c.name, err)
	}
	return nil
}

func (c *Collection[T]) reset(path string) ([]T, error) {
	if _, err := writeAtomic(path, emptyDocument); err != nil {
		return nil, fmt.Errorf("initialize %s: %w", c.name, err)
	}
	return []T{}, nil
}

// backup copies data to a timestamped file under the backups directory.
func (c *Collection[T]) backup(data []byte) (string, error) {
	s := c.store
	target := BackupPath(s.basePath, c.name, s.now())
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("backup %s: %w", c.name, err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", fmt.Errorf("backup %s: %w", c.name, err)
	}
	return target, nil
}

// recover backs up an undecodable document and resets the live file.
// When the backup cannot be written the live file is left untouched.
func (c *Collection[T]) recover(ctx context.Context, path string, data []byte, cause error) ([]T, error) {
	s := c.store
	backup, err := c.backup(data)
	if err != nil {
		logging.Error(ctx, s.logger, "collection backup failed", err, logging.FieldCollection, c.name)
		return nil, err
	}
	logging.Warn(ctx, s.logger, "recovered corrupt collection",
		logging.FieldCollection, c.name,
		logging.FieldBackup, backup,
		"error", cause,
	)
	s.metrics.RecordRecovery(c.name)
	return c.reset(path)
}

// quarantine moves an unreadable file into the backups directory before resetting.
func (c *Collection[T]) quarantine(ctx context.Context, path string, cause error) ([]T, error) {
	s := c.store
	backup := BackupPath(s.basePath, c.name, s.now())
	err := os.MkdirAll(filepath.Dir(backup), 0o755)
	if err == nil {
		err = os.Rename(path, backup)
	}
	if err != nil {
		err = fmt.Errorf("move unreadable %s aside: %w", c.name, err)
		logging.Error(ctx, s.logger, "collection backup failed", err, logging.FieldCollection, c.name)
		return nil, err
	}
	logging.Warn(ctx, s.logger, "recovered unreadable collection",
		logging.FieldCollection, c.name,
		logging.FieldBackup, backup,
		"error", cause,
	)
	s.metrics.RecordRecovery(c.name)
	return c.reset(path)
}

// prune backs up the document, then rewrites it with only the records that decoded.
func (c *Collection[T]) prune(ctx context.Context, path string, data []byte, kept []json.RawMessage, skipped int, cause error) error {
	s := c.store
	backup, err := c.backup(data)
	if err != nil {
		logging.Error(ctx, s.logger, "collection backup failed", err, logging.FieldCollection, c.name)
		return err
	}
	pruned, err := json.MarshalIndent(kept, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.name, err)
	}
	if _, err := writeAtomic(path, pruned); err != nil {
		return fmt.Errorf("write %s: %w", c.name, err)
	}
	logging.Warn(ctx, s.logger, "skipped undecodable records",
		logging.FieldCollection, c.name,
		logging.FieldBackup, backup,
		logging.FieldCount, skipped,
		"error", cause,
	)
	s.metrics.RecordRecovery(c.name)
	return nil
}
