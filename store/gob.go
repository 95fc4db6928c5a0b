package store

import (
	"encoding/gob"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// GobFile keeps a value table in a single gob encoded file.
type GobFile struct {
	path string
}

func NewGobFile(path string) *GobFile {
	return &GobFile{path: path}
}

func (g *GobFile) Load() (map[int]float64, error) {
	f, err := os.Open(g.path)
	if os.IsNotExist(err) {
		return map[int]float64{}, nil
	} else if err != nil {
		return nil, errors.Wrap(err, "os.Open")
	}
	defer f.Close()

	values := make(map[int]float64)
	if err := gob.NewDecoder(f).Decode(&values); err != nil {
		return nil, errors.Wrapf(err, "decode %s", g.path)
	}
	return values, nil
}

// Save writes to a temporary file first so a crash never leaves a partial table.
func (g *GobFile) Save(values map[int]float64) error {
	dir := filepath.Dir(g.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "os.MkdirAll")
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(g.path)+".tmp*")
	if err != nil {
		return errors.Wrap(err, "os.CreateTemp")
	}
	defer os.Remove(tmp.Name())

	if err := gob.NewEncoder(tmp).Encode(values); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "encode %s", g.path)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "file.Close")
	}
	return errors.Wrap(os.Rename(tmp.Name(), g.path), "os.Rename")
}

func (g *GobFile) Close() error {
	return nil
}
