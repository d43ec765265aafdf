package export

import (
	"context"
	"path/filepath"

	"github.com/BuiltByShivam/smart-inventory/internal/filex"
)

// Sink stores a finished artifact and returns where it went.
type Sink interface {
	Write(ctx context.Context, name string, data []byte) (string, error)
}

// DirSink writes artifacts into a local directory, created on first use.
type DirSink struct {
	dir string
}

func NewDirSink(dir string) *DirSink {
	return &DirSink{dir: dir}
}

func (s *DirSink) Write(_ context.Context, name string, data []byte) (string, error) {
	dir, err := filex.EnsureDir(s.dir)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, filepath.Base(name))
	if err := filex.WriteFileAtomic(path, data, 0o640); err != nil {
		return "", err
	}
	return path, nil
}
