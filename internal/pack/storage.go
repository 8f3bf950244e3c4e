package pack

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

var ErrSourceNotFound = errors.New("pack source not found")

// Storage supplies pack sources to a Store. The Store never decides
// where packs live; that choice belongs to the hosting front-end
// (a local directory for the terminal app, a per-session blob table
// for the browser dashboard).
type Storage interface {
	List() ([]string, error)
	Read(id string) ([]byte, error)
	Write(id string, data []byte) error
}

const packExtension = ".json"

// Dir is the packs-directory storage used by the terminal front-end.
type Dir struct {
	path string
}

func NewDir(path string) (*Dir, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, err
	}
	return &Dir{path: path}, nil
}

func (d *Dir) Path() string {
	return d.path
}

// List returns the pack file names in the directory. Only regular
// files with the pack extension qualify; contents are not read here.
func (d *Dir) List() ([]string, error) {
	dirEntries, err := os.ReadDir(d.path)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(dirEntries))
	for _, dirEntry := range dirEntries {
		if dirEntry.IsDir() {
			continue
		}
		if !strings.HasSuffix(dirEntry.Name(), packExtension) {
			continue
		}
		ids = append(ids, dirEntry.Name())
	}
	return ids, nil
}

func (d *Dir) Read(id string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(d.path, id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrSourceNotFound
		}
		return nil, err
	}
	return data, nil
}

func (d *Dir) Write(id string, data []byte) error {
	return os.WriteFile(filepath.Join(d.path, id), data, 0o644)
}
