package builder

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Loader reads stylesheet sources. Paths use the host separator.
type Loader interface {
	ReadFile(name string) ([]byte, error)
	Stat(name string) (fs.FileInfo, error)
	Abs(name string) (string, error)
}

// OSLoader reads from the local filesystem.
type OSLoader struct{}

func (OSLoader) ReadFile(name string) ([]byte, error)  { return os.ReadFile(name) }
func (OSLoader) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }
func (OSLoader) Abs(name string) (string, error)       { return filepath.Abs(name) }

// FSLoader reads from an fs.FS, such as an embedded tree or an
// fstest.MapFS. Absolute names are taken relative to the FS root.
type FSLoader struct {
	FS fs.FS
}

func (l FSLoader) ReadFile(name string) ([]byte, error) {
	return fs.ReadFile(l.FS, l.clean(name))
}

func (l FSLoader) Stat(name string) (fs.FileInfo, error) {
	return fs.Stat(l.FS, l.clean(name))
}

// Abs returns the cleaned, rooted form of name.
func (l FSLoader) Abs(name string) (string, error) {
	return "/" + l.clean(name), nil
}

func (FSLoader) clean(name string) string {
	name = path.Clean("/" + filepath.ToSlash(name))
	if name == "/" {
		return "."
	}
	return strings.TrimPrefix(name, "/")
}

// isFile reports whether name exists and is not a directory.
func isFile(l Loader, name string) bool {
	info, err := l.Stat(name)
	return err == nil && !info.IsDir()
}
