package app

import (
	"net/url"
	"os"

	"github.com/pkg/errors"
)

// LocalLoader is a FileLoader that loads files from the local filesystem.
type LocalLoader struct{}

// Load implements FileLoader.Load.
func (l LocalLoader) Load(url *url.URL) ([]byte, error) {
	if url.Path == "" {
		return nil, errors.New("missing path")
	}

	b, err := os.ReadFile(url.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", url.Path)
	}
	return b, nil
}

func init() {
	ctor := func() (FileLoader, error) {
		return &LocalLoader{}, nil
	}

	RegisterFileLoaderCtor("", ctor)
	RegisterFileLoaderCtor("file", ctor)
}
