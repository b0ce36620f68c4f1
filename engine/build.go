package engine

import (
	"time"

	"github.com/gocar-build/gocar/internal/base"
	"github.com/gocar-build/gocar/internal/paths"
	"github.com/gocar-build/gocar/manifest"
	"golang.org/x/exp/slices"
)

var LogBuild = base.NewLogCategory("Build")

var zeroTime time.Time

func sortStrings(s []string) { slices.Sort(s) }

// srcDir is the directory manifest-relative paths (root_files,
// ignore_files, headers_only, public_headers) are resolved under by
// default. BuildEnv.SrcDir overrides it for callers that synthesize
// targets outside the project's own source tree (the integration-test
// runner).
func srcDir(projectDir paths.Directory) paths.Directory {
	return projectDir.Folder("src")
}

func resolveSrcFiles(env *BuildEnv, rel []string) []paths.Filename {
	dir := env.SrcDir
	if dir.IsZero() {
		dir = srcDir(env.ProjectDir)
	}
	out := make([]paths.Filename, 0, len(rel))
	for _, r := range rel {
		out = append(out, dir.File(r))
	}
	return out
}

func toIgnoreSet(files []paths.Filename) map[string]bool {
	set := make(map[string]bool, len(files))
	for _, f := range files {
		set[f.String()] = true
	}
	return set
}

// anyCpp reports whether any key of closure is a C++ translation
// unit, which decides the link driver regardless of which units were
// actually recompiled this run.
func anyCpp(closure map[string][]paths.Filename) (bool, error) {
	for key := range closure {
		lang, err := LanguageForExt(paths.MakeFilename(key).Ext())
		if err != nil {
			return false, err
		}
		if lang == manifest.LangCpp {
			return true, nil
		}
	}
	return false, nil
}

// compileStale resolves target's root and ignore files and scans its
// closure; it compiles nothing itself. The caller passes the closure
// to compileAgainst, which compiles whatever the freshness oracle
// names, and then links against every key's object file (including
// units that were already fresh).
func compileStale(target *manifest.Target, spec manifest.TargetSpec, env *BuildEnv) (map[string][]paths.Filename, error) {
	roots := resolveSrcFiles(env, target.RootFiles)
	ignore := toIgnoreSet(resolveSrcFiles(env, target.IgnoreFiles))

	closure, err := ScanClosure(roots, ignore, env)
	if err != nil {
		return nil, err
	}
	return closure, nil
}

func compileAgainst(out paths.Filename, closure map[string][]paths.Filename, target *manifest.Target, spec manifest.TargetSpec, env *BuildEnv) error {
	exists := out.Exists()
	var mtime = zeroTime
	if exists {
		var err error
		mtime, err = out.MTime()
		if err != nil {
			return base.WrapFilesystem("stat", out.String(), err)
		}
	}

	stale, err := StaleUnits(mtime, exists, closure)
	if err != nil {
		return err
	}
	sortStrings(stale)
	for _, key := range stale {
		if _, _, err := CompileUnit(paths.MakeFilename(key), spec, target, env); err != nil {
			return err
		}
	}
	return nil
}

// BuildBinary builds and links one binary target.
func BuildBinary(bin *manifest.Binary, env *BuildEnv) (paths.Filename, error) {
	spec := SpecFor(KindBinary, env.Os)
	closure, err := compileStale(&bin.Target, spec, env)
	if err != nil {
		return paths.Filename{}, err
	}

	out := BinaryOutput(env.TargetDir, bin.Name, spec)
	if err := compileAgainst(out, closure, &bin.Target, spec, env); err != nil {
		return paths.Filename{}, err
	}

	hasCpp, err := anyCpp(closure)
	if err != nil {
		return paths.Filename{}, err
	}
	keys := SortedClosureKeys(closure)
	if err := LinkBinary(out, keys, hasCpp, &bin.Target, env); err != nil {
		return paths.Filename{}, err
	}
	return out, nil
}

// BuildLibrary builds and links one library target as kind (static or
// dynamic, already resolved by LibraryKind).
func BuildLibrary(lib *manifest.Library, kind Kind, env *BuildEnv) (paths.Filename, error) {
	spec := SpecFor(kind, env.Os)
	closure, err := compileStale(&lib.Target, spec, env)
	if err != nil {
		return paths.Filename{}, err
	}

	out := LibraryOutput(env.TargetDir, lib.Name, spec)
	if err := compileAgainst(out, closure, &lib.Target, spec, env); err != nil {
		return paths.Filename{}, err
	}

	keys := SortedClosureKeys(closure)
	if kind == KindStaticLib {
		if err := LinkStaticLibrary(out, keys, env); err != nil {
			return paths.Filename{}, err
		}
		return out, nil
	}

	hasCpp, err := anyCpp(closure)
	if err != nil {
		return paths.Filename{}, err
	}
	if err := LinkDynamicLibrary(out, keys, hasCpp, &lib.Target, env); err != nil {
		return paths.Filename{}, err
	}
	return out, nil
}
