// Package engine walks a loaded manifest and turns it into built
// artifacts: it orchestrates dependency sub-builds, then the
// project's own libraries, then its binaries, driving the closure
// scanner, freshness oracle, and compile/link driver for each.
package engine

import (
	"os"
	"path/filepath"

	"github.com/gocar-build/gocar/internal/base"
	"github.com/gocar-build/gocar/internal/lock"
	"github.com/gocar-build/gocar/internal/paths"
	"github.com/gocar-build/gocar/manifest"
)

// Result is what one invocation of Build produced.
type Result struct {
	Binaries  []paths.Filename
	Libraries []paths.Filename
}

// Build loads the manifest at projectDir, selects profileName (or
// fails with *base.InvalidProfileError), and builds dependencies,
// libraries, and binaries in that order under
// projectDir/target/<profile>/, holding an exclusive lock on that
// target directory for the duration.
func Build(projectDir, profileName string) (Result, error) {
	var result Result

	project, err := manifest.Load(projectDir)
	if err != nil {
		return result, err
	}

	profile, ok := project.Profiles[profileName]
	if !ok {
		return result, &base.InvalidProfileError{Name: profileName}
	}

	targetDir := paths.MakeDirectory(filepath.Join(project.Dir, "target", profileName))
	if err := os.MkdirAll(targetDir.String(), 0o755); err != nil {
		return result, base.WrapFilesystem("mkdir", targetDir.String(), err)
	}

	heldLock, err := lock.Acquire(targetDir.String())
	if err != nil {
		return result, err
	}
	defer heldLock.Release()

	osSpec := manifest.LinuxOsSpec()

	deps, err := BuildDependencies(project, targetDir, profileName, osSpec, manifest.LinkageStatic)
	if err != nil {
		return result, err
	}

	env := &BuildEnv{
		ProjectDir:  paths.MakeDirectory(project.Dir),
		TargetDir:   targetDir,
		IncludeDirs: append(append([]string{}, deps.IncludeDirs...), asIncludeArgs(project.IncludeDirs, project.Dir)...),
		LibDirs:     deps.LibDirs,
		Libs:        deps.Libs,
		StripPrefix: project.Dir + string(filepath.Separator),
		Os:          osSpec,
		Profile:     profile,
		Project:     project,
		HeadersOnly: canonicalHeadersOnly(project),
	}

	for i := range project.Lib {
		lib := &project.Lib[i]
		kind, err := LibraryKind(lib, manifest.LinkageStatic)
		if err != nil {
			return result, err
		}
		out, err := BuildLibrary(lib, kind, env)
		if err != nil {
			return result, err
		}
		result.Libraries = append(result.Libraries, out)
	}

	for i := range project.Bin {
		bin := &project.Bin[i]
		out, err := BuildBinary(bin, env)
		if err != nil {
			return result, err
		}
		result.Binaries = append(result.Binaries, out)
	}

	return result, nil
}
