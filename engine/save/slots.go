package save

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultSlot is the crusade save slot used when no name is given.
const DefaultSlot = "quicksave"

// SlotPath returns the file backing the named crusade save in dir.
func SlotPath(dir, name string) (string, error) {
	if name == "" {
		name = DefaultSlot
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid save name %q", name)
	}
	return filepath.Join(dir, name+".json"), nil
}

// WriteSlot writes data to the named slot, creating dir if needed.
func WriteSlot(dir, name string, data []byte) error {
	path, err := SlotPath(dir, name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadSlot reads and decodes the named slot.
func ReadSlot(dir, name string) (*SaveData, error) {
	path, err := SlotPath(dir, name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Load(data)
}
