package engine

import (
	"strconv"

	"github.com/gocar-build/gocar/internal/paths"
)

// ObjectPath deterministically maps a canonicalized source path to a
// unique object path under targetDir. It walks up from projectDir's
// ancestors until one contains source, then prefixes the relative
// path with a "{parents}_" counter: two different (ancestor,
// relative) pairs that produce the same relative tail at different
// ancestor depths still land on distinct outputs. A source that
// shares no ancestor with projectDir falls back to an "x_" sentinel;
// this cannot happen once both are canonicalized absolute POSIX
// paths, since the root "/" is a prefix of everything.
func ObjectPath(targetDir, projectDir paths.Directory, source paths.Filename) paths.Filename {
	ancestor := projectDir
	parents := 0
	for {
		if ancestor.Contains(source) {
			if rel, err := source.Rel(ancestor); err == nil {
				return targetDir.File(strconv.Itoa(parents) + "_" + rel)
			}
		}
		parent := ancestor.Parent()
		if parent.Equals(ancestor) {
			return targetDir.File("x_" + source.String())
		}
		ancestor = parent
		parents++
	}
}
