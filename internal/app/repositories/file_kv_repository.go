package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"github.com/yigit/registrar/internal/pkg/apperrors"
)

// FileKVRepository stores every entry in one JSON object on disk, the
// server-side counterpart of browser local storage. The file is read once at
// open and rewritten in full on each write.
type FileKVRepository struct {
	path    string
	entries map[string]string
	mu      sync.RWMutex
}

// NewFileKVRepository opens path, creating parent directories. A missing file
// starts empty. A file that does not parse is moved aside to <path>.corrupt and
// the repository starts empty, so callers fall back to their defaults. Only an
// unreadable file is an error.
func NewFileKVRepository(path string, lgr zerolog.Logger) (*FileKVRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	r := &FileKVRepository{path: path, entries: make(map[string]string)}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return r, nil
	case err != nil:
		return nil, fmt.Errorf("failed to read storage file: %w", err)
	}

	if len(data) == 0 {
		return r, nil
	}

	if err := json.Unmarshal(data, &r.entries); err != nil || r.entries == nil {
		r.entries = make(map[string]string)

		event := lgr.Warn().Err(err).
			Str("event", "storage_fallback").
			Str("path", path)
		if renameErr := os.Rename(path, path+corruptSuffix); renameErr != nil {
			event = event.AnErr("renameError", renameErr)
		} else {
			event = event.Str("movedTo", path+corruptSuffix)
		}
		event.Msg("Storage file is corrupt, starting empty")
	}
	return r, nil
}

// corruptSuffix is appended to a storage file that could not be parsed.
const corruptSuffix = ".corrupt"

func (r *FileKVRepository) Get(ctx context.Context, key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.entries[key]
	if !ok {
		return "", fmt.Errorf("key %q: %w", key, apperrors.ErrResourceNotFound)
	}
	return value, nil
}

// SetMany applies entries and flushes once; on a failed flush the previous
// values are restored so memory and disk agree.
func (r *FileKVRepository) SetMany(ctx context.Context, entries map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	previous := make(map[string]*string, len(entries))
	for k, v := range entries {
		if old, ok := r.entries[k]; ok {
			previous[k] = &old
		} else {
			previous[k] = nil
		}
		r.entries[k] = v
	}

	if err := r.flush(); err != nil {
		for k, old := range previous {
			if old == nil {
				delete(r.entries, k)
			} else {
				r.entries[k] = *old
			}
		}
		return err
	}
	return nil
}

// flush writes to a temp file in the same directory and renames it over the target.
func (r *FileKVRepository) flush() error {
	data, err := json.MarshalIndent(r.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode storage file: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp storage file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write storage file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close storage file: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("failed to replace storage file: %w", err)
	}
	return nil
}

func (r *FileKVRepository) Close() error { return nil }
