package driver

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/minhtribui153/xlang/pkg/source"
)

var (
	ErrNotAFile      = errors.New("must be a file path, not a directory")
	ErrInvalidFormat = errors.New("invalid file format")
)

// ReadSource loads an X source file. The path must name a regular file with
// the .x extension.
func ReadSource(path string) (*source.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	if info.IsDir() {
		return nil, errors.Wrapf(ErrNotAFile, "read %s", path)
	}
	if filepath.Ext(path) != SourceExtension {
		return nil, errors.Wrapf(ErrInvalidFormat, "read %s (expected %s)", path, SourceExtension)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return source.NewFile(path, string(data)), nil
}
