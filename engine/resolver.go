package engine

import (
	"strings"

	"github.com/gocar-build/gocar/internal/base"
	"github.com/gocar-build/gocar/internal/paths"
	"github.com/gocar-build/gocar/manifest"
)

// ResolveHeader maps an absolute, canonicalized header path to the
// implementation unit that defines it, applying the precedence rules
// for sibling ".c"/".cpp" files and then the project's detached
// mappings in declaration order. The first matching rule wins; no
// other ordering of detached influences the result.
func ResolveHeader(h paths.Filename, detached []manifest.DetachedHeaders) (paths.Filename, base.ResolveStatus) {
	asC := h.ReplaceExt(".c")
	asCpp := h.ReplaceExt(".cpp")
	cExists, cppExists := asC.Exists(), asCpp.Exists()

	switch {
	case cExists && cppExists:
		return paths.Filename{}, base.ResolveAmbiguous
	case cppExists:
		return asCpp, base.ResolveResolved
	case cExists:
		return asC, base.ResolveResolved
	}

	for _, mapping := range detached {
		inc := paths.MakeDirectory(mapping.Includes)
		src := paths.MakeDirectory(mapping.Sources)
		if !inc.Contains(h) {
			continue
		}
		rel, err := h.Rel(inc)
		if err != nil {
			continue
		}
		candidate := src.File(strings.Split(rel, "/")...)
		if cpp := candidate.ReplaceExt(".cpp"); cpp.Exists() {
			return cpp, base.ResolveResolved
		}
		if c := candidate.ReplaceExt(".c"); c.Exists() {
			return c, base.ResolveResolved
		}
	}

	return paths.Filename{}, base.ResolveMissing
}
