package countdown

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// StorageKey names the persisted deadline. The value is epoch milliseconds
// as a decimal string.
const StorageKey = "nextStoryTime"

// Store persists the fetch deadline.
type Store interface {
	// Load returns ok=false when no valid deadline is stored.
	Load() (deadline time.Time, ok bool, err error)
	Save(deadline time.Time) error
}

// FileStore keeps client state in a small JSON object on disk.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() (time.Time, bool, error) {
	state, err := s.read()
	if err != nil {
		return time.Time{}, false, err
	}
	raw, ok := state[StorageKey]
	if !ok {
		return time.Time{}, false, nil
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		// Unparseable values count as absent so the next load fetches.
		return time.Time{}, false, nil
	}
	return time.UnixMilli(ms), true, nil
}

func (s *FileStore) Save(deadline time.Time) error {
	state, err := s.read()
	if err != nil {
		state = make(map[string]string)
	}
	state[StorageKey] = strconv.FormatInt(deadline.UnixMilli(), 10)

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return os.Rename(tmp, s.path)
}

func (s *FileStore) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}
	state := make(map[string]string)
	if err := json.Unmarshal(data, &state); err != nil {
		return make(map[string]string), nil
	}
	return state, nil
}
