package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// Store persists achievement unlock flags across process restarts.
type Store interface {
	LoadUnlocked() (map[string]bool, error)
	SetUnlocked(id string, unlocked bool) error
}

// MemoryStore keeps flags in memory. The zero value is ready to use.
type MemoryStore struct {
	flags map[string]bool
}

func (m *MemoryStore) LoadUnlocked() (map[string]bool, error) {
	out := make(map[string]bool, len(m.flags))
	for id, v := range m.flags {
		if v {
			out[id] = true
		}
	}
	return out, nil
}

func (m *MemoryStore) SetUnlocked(id string, unlocked bool) error {
	if m.flags == nil {
		m.flags = map[string]bool{}
	}
	m.flags[id] = unlocked
	return nil
}

// ProgressData is the JSON format of the achievements file.
type ProgressData struct {
	Version  int      `json:"version"`
	Unlocked []string `json:"unlocked"`
}

const progressVersion = 1

// FileStore keeps flags in a JSON file, rewritten on every change.
type FileStore struct {
	Path string
}

// NewFileStore returns a store backed by the file at path. The file is
// created on first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (f *FileStore) LoadUnlocked() (map[string]bool, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]bool{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", f.Path, err)
	}
	var pd ProgressData
	if err := json.Unmarshal(data, &pd); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", f.Path, err)
	}
	out := make(map[string]bool, len(pd.Unlocked))
	for _, id := range pd.Unlocked {
		out[id] = true
	}
	return out, nil
}

func (f *FileStore) SetUnlocked(id string, unlocked bool) error {
	flags, err := f.LoadUnlocked()
	if err != nil {
		return err
	}
	if unlocked {
		flags[id] = true
	} else {
		delete(flags, id)
	}

	pd := ProgressData{Version: progressVersion, Unlocked: make([]string, 0, len(flags))}
	for k := range flags {
		pd.Unlocked = append(pd.Unlocked, k)
	}
	sort.Strings(pd.Unlocked)

	data, err := json.MarshalIndent(pd, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(f.Path), err)
	}
	tmp := f.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	return os.Rename(tmp, f.Path)
}
