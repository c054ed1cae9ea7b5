package storage

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Storer is the read/write surface of an asset collection.
type Storer[T ValidatingSpec] interface {
	Save(string, T) error
	Get(string) T
	GetAll() map[string]T
}

// FileStore keeps a directory of *.json assets in memory. The whole directory
// is loaded and validated up front; reads never touch the disk again, and
// saves write through.
type FileStore[T ValidatingSpec] struct {
	dir   string
	items map[string]T

	mu sync.RWMutex
}

func NewFileStore[T ValidatingSpec](dir string) (*FileStore[T], error) {
	s := &FileStore[T]{
		dir:   dir,
		items: map[string]T{},
	}

	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore[T]) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = map[string]T{}

	return filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}

		asset, err := readAsset[T](path)
		if err != nil {
			return fmt.Errorf("loading %s: %w", filepath.Base(path), err)
		}

		if err := asset.Validate(); err != nil {
			return fmt.Errorf("validating %s: %w", filepath.Base(path), err)
		}

		if _, dup := s.items[asset.Id()]; dup {
			return fmt.Errorf("duplicate key detected: %s", asset.Id())
		}

		s.items[asset.Id()] = asset.Spec
		return nil
	})
}

func readAsset[T ValidatingSpec](path string) (*Asset[T], error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	asset := &Asset[T]{}
	if err := json.Unmarshal(raw, asset); err != nil {
		return nil, fmt.Errorf("unmarshalling asset: %w", err)
	}
	return asset, nil
}

// Save stores the item in memory and writes its asset file. The write goes to
// a temp file first so an interrupted save can't leave a truncated asset.
func (s *FileStore[T]) Save(id string, item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[id] = item

	raw, err := json.Marshal(&Asset[T]{
		Version:    1,
		Identifier: id,
		Spec:       item,
	})
	if err != nil {
		return fmt.Errorf("marshalling json: %w", err)
	}

	target := filepath.Join(s.dir, id+".json")
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, raw, 0644); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// Get returns the item, or the type's zero value when the id is unknown.
func (s *FileStore[T]) Get(id string) T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.items[id]
}

// GetAll returns a copy of the collection; mutating it does not affect the
// store.
func (s *FileStore[T]) GetAll() map[string]T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]T, len(s.items))
	for id, item := range s.items {
		out[id] = item
	}
	return out
}
