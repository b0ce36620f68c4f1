// Package paths provides the Filename/Directory value types the rest
// of gocar builds on: paths are canonicalized once on construction and
// compared as plain strings from then on.
package paths

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/djherbis/times"
)

// Directory is an absolute, cleaned directory path.
type Directory struct {
	path string
}

// Filename is an absolute, cleaned file path.
type Filename struct {
	path string
}

func MakeDirectory(p string) Directory {
	abs, err := filepath.Abs(p)
	if err != nil {
		abs = p
	}
	return Directory{path: filepath.Clean(abs)}
}

func MakeFilename(p string) Filename {
	abs, err := filepath.Abs(p)
	if err != nil {
		abs = p
	}
	return Filename{path: filepath.Clean(abs)}
}

func (d Directory) String() string  { return d.path }
func (f Filename) String() string   { return f.path }
func (d Directory) Valid() bool     { return d.path != "" }
func (f Filename) Valid() bool      { return f.path != "" }
func (d Directory) IsZero() bool    { return d.path == "" }
func (f Filename) IsZero() bool     { return f.path == "" }

func (d Directory) Folder(names ...string) Directory {
	parts := append([]string{d.path}, names...)
	return Directory{path: filepath.Clean(filepath.Join(parts...))}
}

func (d Directory) File(names ...string) Filename {
	parts := append([]string{d.path}, names...)
	return Filename{path: filepath.Clean(filepath.Join(parts...))}
}

func (d Directory) Parent() Directory {
	return Directory{path: filepath.Dir(d.path)}
}

func (d Directory) Basename() string {
	return filepath.Base(d.path)
}

// IsParentOf reports whether d is a path-prefix of o, the same prefix
// test used for detached headers, object path mapping, and dependency
// include staging.
func (d Directory) IsParentOf(o Directory) bool {
	return hasPathPrefix(o.path, d.path)
}

func (f Filename) IsParentOf(d Directory) bool {
	return false
}

func (d Directory) Contains(f Filename) bool {
	return hasPathPrefix(f.path, d.path)
}

// Rel returns f's path relative to base; base must be a parent of f.
func (f Filename) Rel(base Directory) (string, error) {
	return filepath.Rel(base.path, f.path)
}

func hasPathPrefix(path, prefix string) bool {
	if path == prefix {
		return true
	}
	if strings.HasSuffix(prefix, string(filepath.Separator)) {
		return strings.HasPrefix(path, prefix)
	}
	return strings.HasPrefix(path, prefix+string(filepath.Separator))
}

func (f Filename) Dirname() Directory {
	return Directory{path: filepath.Dir(f.path)}
}

func (f Filename) Basename() string {
	return filepath.Base(f.path)
}

func (f Filename) Ext() string {
	return filepath.Ext(f.path)
}

// TrimExt returns the path with its extension removed.
func (f Filename) TrimExt() string {
	return strings.TrimSuffix(f.path, f.Ext())
}

// ReplaceExt returns a new Filename with its extension replaced; ext
// must include the leading dot.
func (f Filename) ReplaceExt(ext string) Filename {
	return Filename{path: f.TrimExt() + ext}
}

// Exists reports whether the path names an existing filesystem entry.
func Exists(path string) bool {
	_, err := times.Stat(path)
	return err == nil
}

func (f Filename) Exists() bool { return Exists(f.path) }
func (d Directory) Exists() bool { return Exists(d.path) }

// MTime returns the modification time of path, using djherbis/times
// for a cross-platform stat instead of a raw os.Stat so the freshness
// oracle's mtime comparisons hold on Darwin/BSD birth-time filesystems
// too.
func MTime(path string) (time.Time, error) {
	t, err := times.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return t.ModTime(), nil
}

func (f Filename) MTime() (time.Time, error) { return MTime(f.path) }

// Equals compares two canonicalized paths.
func (f Filename) Equals(o Filename) bool { return f.path == o.path }
func (d Directory) Equals(o Directory) bool { return d.path == o.path }

// Compare orders paths lexicographically, used to produce
// deterministic command-line argument ordering.
func (f Filename) Compare(o Filename) int { return strings.Compare(f.path, o.path) }
