package app

import (
	"fmt"
	"net/url"
	"sync"

	"github.com/pkg/errors"
)

var (
	ctorMu sync.Mutex
	ctors  = make(map[string]FileLoaderCtor)
)

// FileLoaderCtor constructs a FileLoader.
type FileLoaderCtor func() (FileLoader, error)

// FileLoader loads files at a specified URL.
type FileLoader interface {
	Load(url *url.URL) ([]byte, error)
}

// RegisterFileLoaderCtor registers a FileLoader constructor for the specified
// URL scheme. It panics if the scheme already has a loader.
func RegisterFileLoaderCtor(scheme string, ctor FileLoaderCtor) {
	ctorMu.Lock()
	defer ctorMu.Unlock()

	if _, exists := ctors[scheme]; exists {
		panic(fmt.Sprintf("FileLoader already registered for scheme '%s'", scheme))
	}

	ctors[scheme] = ctor
}

// LoadFile loads the file at fileURL using the loader registered for its
// scheme. Plain paths are loaded from the local filesystem.
//
// It is used for TLS material, which may live on disk or in S3.
func LoadFile(fileURL string) ([]byte, error) {
	u, err := url.Parse(fileURL)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid file url %s", fileURL)
	}

	ctorMu.Lock()
	ctor, exists := ctors[u.Scheme]
	ctorMu.Unlock()
	if !exists {
		return nil, errors.Errorf("no file loader for scheme '%s'", u.Scheme)
	}

	l, err := ctor()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get loader for '%s'", fileURL)
	}

	return l.Load(u)
}
