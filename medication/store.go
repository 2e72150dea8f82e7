package medication

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// fileData is the on-disk layout of a data file.
type fileData struct {
	Medications []Record `json:"medications"`
}

// Load reads records from a JSON data file. A missing file returns an error
// wrapping os.ErrNotExist so callers can seed a fresh collection.
func Load(path string) ([]Record, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var data fileData
	if err := json.Unmarshal(b, &data); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return data.Medications, nil
}

// Save writes records to path atomically: the data goes to a temp file in
// the same directory which is then renamed over path.
func Save(path string, records []Record) error {
	if records == nil {
		records = []Record{}
	}
	b, err := json.MarshalIndent(fileData{Medications: records}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding medications: %w", err)
	}
	b = append(b, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".medications-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
