package engine

import (
	"github.com/gocar-build/gocar/internal/paths"
	"github.com/gocar-build/gocar/manifest"
)

// BuildEnv is the per-build context threaded through the closure
// scanner, freshness oracle, and compile/link driver: everything they
// need to know about where things live and which profile/OS applies,
// without each carrying its own copy of the project.
type BuildEnv struct {
	ProjectDir  paths.Directory
	SrcDir      paths.Directory // root_files and ignore_files resolve under this; zero means <ProjectDir>/src
	TargetDir   paths.Directory
	IncludeDir  paths.Directory // staging dir of a dependency's headers, <caller target_dir>/deps/include/<dep_name>
	IncludeDirs []string        // -I arguments, staged include dir plus project include_dirs
	LibDirs     []string        // -L arguments contributed by dependencies
	Libs        []string        // -l arguments contributed by dependencies
	StripPrefix string          // prefix stripped from paths for log display

	Os      manifest.OsSpec
	Profile manifest.Profile

	Project *manifest.Project

	// HeadersOnly is the canonicalized set of headers the project
	// declares as interface-only: the resolver is never consulted for
	// them and a "missing" resolution is not an error.
	HeadersOnly map[string]bool
}

// IsHeadersOnly reports whether h was declared (or staged as) a
// header with no implementation unit.
func (e *BuildEnv) IsHeadersOnly(h paths.Filename) bool {
	return e.HeadersOnly[h.String()]
}

// Display shortens p for log output by stripping StripPrefix when
// present.
func (e *BuildEnv) Display(p string) string {
	if e.StripPrefix == "" || len(p) <= len(e.StripPrefix) {
		return p
	}
	if p[:len(e.StripPrefix)] == e.StripPrefix {
		return p[len(e.StripPrefix):]
	}
	return p
}
