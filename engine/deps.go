package engine

import (
	"io"
	"os"
	"path/filepath"

	"github.com/gocar-build/gocar/internal/base"
	"github.com/gocar-build/gocar/internal/paths"
	"github.com/gocar-build/gocar/manifest"
)

var LogDeps = base.NewLogCategory("Deps")

// DepOutputs carries what the dependency orchestrator contributes to
// the parent build's BuildEnv after building every declared
// dependency.
type DepOutputs struct {
	IncludeDirs []string
	LibDirs     []string
	Libs        []string
}

// BuildDependencies walks project.Dependencies sorted by name,
// recursively building each sub-project's own dependencies and then
// its libraries (never its binaries), staging public headers along
// the way, then returns the -I/-L/-l arguments the parent build
// should add. profileName is looked up in each sub-project's own
// Profiles map, not inherited from the caller, since InitDefaultProfiles
// bakes that sub-project's own add-on options and compiler overrides
// into a profile of the same name.
func BuildDependencies(project *manifest.Project, targetDir paths.Directory, profileName string, os_ manifest.OsSpec, callerLinkage manifest.Linkage) (DepOutputs, error) {
	var out DepOutputs

	names := base.SortedKeys(project.Dependencies)
	for _, name := range names {
		dep := project.Dependencies[name]

		includeRoot := targetDir.Folder("deps", "include")
		libDir := targetDir.Folder("deps", "lib", name)
		stagingDir := includeRoot.Folder(name)
		for _, dir := range []paths.Directory{includeRoot, libDir, stagingDir} {
			if err := os.MkdirAll(dir.String(), 0o755); err != nil {
				return out, base.WrapFilesystem("mkdir", dir.String(), err)
			}
		}

		depPath := dep.Path
		if !filepath.IsAbs(depPath) {
			depPath = filepath.Join(project.Dir, depPath)
		}
		subProject, err := manifest.Load(depPath)
		if err != nil {
			return out, err
		}

		profile, ok := subProject.Profiles[profileName]
		if !ok {
			return out, &base.InvalidProfileError{Name: profileName}
		}

		if len(dep.ConfigHeaders) > 0 {
			if subProject.HeadersOnlySet == nil {
				subProject.HeadersOnlySet = map[string]bool{}
			}
			for _, header := range dep.ConfigHeaders {
				src := header
				if !filepath.IsAbs(src) {
					src = filepath.Join(project.Dir, src)
				}
				dst := stagingDir.File(filepath.Base(src))
				if err := copyFile(src, dst.String()); err != nil {
					return out, err
				}
				subProject.HeadersOnlySet[dst.String()] = true
			}
		}

		linkage := callerLinkage
		if dep.Linkage != nil {
			linkage = *dep.Linkage
		}

		grandDeps, err := BuildDependencies(subProject, libDir.Folder("deps"), profileName, os_, linkage)
		if err != nil {
			return out, err
		}

		subEnv := &BuildEnv{
			ProjectDir:  paths.MakeDirectory(subProject.Dir),
			TargetDir:   libDir,
			IncludeDir:  stagingDir,
			IncludeDirs: append(append([]string{"-I" + stagingDir.String()}, asIncludeArgs(subProject.IncludeDirs, subProject.Dir)...), grandDeps.IncludeDirs...),
			LibDirs:     grandDeps.LibDirs,
			Libs:        grandDeps.Libs,
			Os:          os_,
			Profile:     profile,
			Project:     subProject,
			HeadersOnly: canonicalHeadersOnly(subProject),
		}

		for i := range subProject.Lib {
			lib := &subProject.Lib[i]
			kind, err := LibraryKind(lib, linkage)
			if err != nil {
				return out, err
			}
			if _, err := BuildLibrary(lib, kind, subEnv); err != nil {
				return out, err
			}

			for _, header := range lib.PublicHeaders {
				src := srcDir(subEnv.ProjectDir).File(header)
				dst := stagingDir.File(src.Basename())
				if err := copyFile(src.String(), dst.String()); err != nil {
					return out, err
				}
			}

			out.Libs = append(out.Libs, "-l"+lib.Name)
		}

		out.IncludeDirs = append(out.IncludeDirs, "-I"+stagingDir.String())
		out.LibDirs = append(out.LibDirs, "-L"+libDir.String())
		out.LibDirs = append(out.LibDirs, grandDeps.LibDirs...)
		out.Libs = append(out.Libs, grandDeps.Libs...)
	}

	return out, nil
}

func asIncludeArgs(dirs []string, base string) []string {
	out := make([]string, 0, len(dirs))
	for _, d := range dirs {
		if !filepath.IsAbs(d) {
			d = filepath.Join(base, d)
		}
		out = append(out, "-I"+d)
	}
	return out
}

func canonicalHeadersOnly(project *manifest.Project) map[string]bool {
	set := make(map[string]bool, len(project.HeadersOnly)+len(project.HeadersOnlySet))
	for _, h := range project.HeadersOnly {
		set[srcDir(paths.MakeDirectory(project.Dir)).File(h).String()] = true
	}
	for h := range project.HeadersOnlySet {
		set[h] = true
	}
	return set
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return base.WrapFilesystem("copy", src, err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return base.WrapFilesystem("mkdir", filepath.Dir(dst), err)
	}
	out, err := os.Create(dst)
	if err != nil {
		return base.WrapFilesystem("copy", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return base.WrapFilesystem("copy", dst, err)
	}
	return nil
}
