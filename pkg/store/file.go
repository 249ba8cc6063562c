package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/matzehuels/gdlkit/pkg/errors"
)

// FileStore is a file-based document store for CLI use.
// Records are stored as JSON files named by ID in a data directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a new file-based store.
// If baseDir is empty, defaults to ~/.config/gdlkit/documents/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "gdlkit", "documents")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create document dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) recordPath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

func (s *FileStore) Save(ctx context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.readAll()
	if err != nil {
		return err
	}
	for _, existing := range all {
		if existing.Hash == rec.Hash {
			*rec = *existing
			return nil
		}
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "marshal document")
	}
	if err := os.WriteFile(s.recordPath(rec.ID), data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write document file")
	}
	return nil
}

func (s *FileStore) Get(ctx context.Context, id string) (*Record, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, err := s.read(s.recordPath(id))
	if os.IsNotExist(err) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "read document %s", id)
	}
	return rec, nil
}

func (s *FileStore) List(ctx context.Context, limit int) ([]*Record, error) {
	s.mu.RLock()
	all, err := s.readAll()
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	recs := make([]*Record, len(all))
	for i, rec := range all {
		recs[i] = rec.Summary()
	}
	return newestFirst(recs, limit), nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the directory holding the document files.
func (s *FileStore) Path() string {
	return s.baseDir
}

func (s *FileStore) read(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return &rec, nil
}

// readAll loads every record, skipping files that cannot be parsed.
func (s *FileStore) readAll() ([]*Record, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "read document dir")
	}

	var recs []*Record
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		rec, err := s.read(filepath.Join(s.baseDir, entry.Name()))
		if err != nil {
			continue
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

var _ Store = (*FileStore)(nil)
