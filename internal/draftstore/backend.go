package draftstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/coursecms/coursesite/internal/models"
)

// Backend persists the raw JSON document of each slot.
type Backend interface {
	// Read returns the stored document. found is false when the slot was never written.
	Read(ctx context.Context, slot models.SlotName) (data []byte, found bool, err error)

	// Write replaces the stored document of a slot.
	Write(ctx context.Context, slot models.SlotName, data []byte) error
}

// MemoryBackend keeps slot documents in process memory.
type MemoryBackend struct {
	mu   sync.RWMutex
	data map[models.SlotName][]byte
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[models.SlotName][]byte)}
}

// Read implements Backend.
func (b *MemoryBackend) Read(_ context.Context, slot models.SlotName) ([]byte, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, ok := b.data[slot]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), data...), true, nil
}

// Write implements Backend.
func (b *MemoryBackend) Write(_ context.Context, slot models.SlotName, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.data[slot] = append([]byte(nil), data...)
	return nil
}

// FileBackend stores one JSON file per slot inside a directory.
// Writes go to a temporary file that is synced and renamed over the target,
// so a reader never observes a half-written document.
type FileBackend struct {
	dir string
}

// NewFileBackend creates a file backend rooted at dir. The directory is created on first write.
func NewFileBackend(dir string) *FileBackend {
	return &FileBackend{dir: dir}
}

// Dir returns the directory holding the slot files.
func (b *FileBackend) Dir() string {
	return b.dir
}

func (b *FileBackend) path(slot models.SlotName) string {
	return filepath.Join(b.dir, string(slot)+".json")
}

// Read implements Backend.
func (b *FileBackend) Read(_ context.Context, slot models.SlotName) ([]byte, bool, error) {
	data, err := os.ReadFile(b.path(slot))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read draft %s: %w", slot, err)
	}
	return data, true, nil
}

// Write implements Backend.
func (b *FileBackend) Write(_ context.Context, slot models.SlotName, data []byte) error {
	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return fmt.Errorf("create draft dir: %w", err)
	}

	tmp, err := os.CreateTemp(b.dir, string(slot)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp draft: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write draft %s: %w", slot, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("fsync draft %s: %w", slot, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close draft %s: %w", slot, err)
	}

	if err := os.Rename(tmpPath, b.path(slot)); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename draft %s: %w", slot, err)
	}
	return nil
}
