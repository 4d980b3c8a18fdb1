package history

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// FileStore keeps the history in a YAML file.
type FileStore struct {
	Path string
}

type historyFile struct {
	Colors []Entry `yaml:"colors"`
}

// Load reads the file. A missing file is an empty history.
func (s FileStore) Load() ([]Entry, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.Path, err)
	}

	var f historyFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.Path, err)
	}
	return f.Colors, nil
}

// Save writes entries atomically.
func (s FileStore) Save(entries []Entry) error {
	data, err := yaml.Marshal(historyFile{Colors: entries})
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}
	return writeAtomic(s.Path, data)
}

// writeAtomic writes data to a temp file next to path and renames it into place.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	f, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	_, werr := f.Write(data)
	cerr := f.Close()
	if werr != nil {
		_ = os.Remove(tmp)
		return werr
	}
	if cerr != nil {
		_ = os.Remove(tmp)
		return cerr
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Chmod(path, filePerm)
}
