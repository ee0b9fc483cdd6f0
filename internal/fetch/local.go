package fetch

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-formstate/pkg/source"
)

func (f *Fetcher) readFile(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("source: open %s: %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	if info, err := file.Stat(); err == nil && info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", source.ErrInvalidRef, path)
	}
	return readLimited(file, f.maxSize, path)
}

func (f *Fetcher) readFS(name string) ([]byte, error) {
	if f.fsys == nil {
		return nil, source.ErrNoFileSystem
	}
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("%w: %q is not a valid fs path", source.ErrInvalidRef, name)
	}

	file, err := f.fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("source: open %s: %w", name, err)
	}
	defer func() {
		_ = file.Close()
	}()
	return readLimited(file, f.maxSize, name)
}
