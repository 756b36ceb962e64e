package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"
)

// FileStore keeps one JSON document per key inside a directory. Writes go
// through a temp file and rename so readers never observe a partial value.
type FileStore struct {
	mu  sync.RWMutex
	fs  afero.Fs
	dir string
}

// NewFileStore creates a file-backed store rooted at dir on the given
// filesystem. Tests typically pass afero.NewMemMapFs().
func NewFileStore(fs afero.Fs, dir string) (*FileStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, ErrDirRequired
	}
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileStore{fs: fs, dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, sanitizeKey(key)+".json")
}

// Get returns the stored value for key, or false when it has never been set.
func (s *FileStore) Get(key string) (string, bool) {
	if strings.TrimSpace(key) == "" {
		return "", false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := afero.ReadFile(s.fs, s.path(key))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Set replaces the value for key atomically.
func (s *FileStore) Set(key, value string) error {
	if strings.TrimSpace(key) == "" {
		return ErrKeyRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(key)
	tmp := path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, []byte(value), 0o644); err != nil {
		return fmt.Errorf("write store temp file: %w", err)
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}

// Clear removes the value for key. Clearing an absent key is a no-op.
func (s *FileStore) Clear(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrKeyRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fs.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear store key: %w", err)
	}
	return nil
}

func sanitizeKey(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
