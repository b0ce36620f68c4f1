package engine

import (
	"os"
	"strings"

	"github.com/gocar-build/gocar/internal/base"
	"github.com/gocar-build/gocar/internal/paths"
	"github.com/gocar-build/gocar/internal/process"
	"github.com/gocar-build/gocar/manifest"
)

var LogCompile = base.NewLogCategory("Compile")
var LogLink = base.NewLogCategory("Link")

// CompileUnit compiles one translation unit to an object file and
// reports whether it was C++, so the caller can pick the link driver.
func CompileUnit(unit paths.Filename, spec manifest.TargetSpec, target *manifest.Target, env *BuildEnv) (obj paths.Filename, isCpp bool, err error) {
	lang, err := LanguageForExt(unit.Ext())
	if err != nil {
		return paths.Filename{}, false, err
	}
	isCpp = lang == manifest.LangCpp

	obj = ObjectPath(env.TargetDir, env.ProjectDir, unit)
	if err := os.MkdirAll(obj.Dirname().String(), 0o755); err != nil {
		return obj, isCpp, base.WrapFilesystem("mkdir", obj.Dirname().String(), err)
	}

	compiler := CompilerForLanguage(&env.Profile, lang)
	options := composeCompileOptions(spec, target, env, lang)

	args := make([]string, 0, len(env.IncludeDirs)+len(options)+4)
	args = append(args, env.IncludeDirs...)
	args = append(args, options...)
	args = append(args, "-c", "-o", obj.String(), unit.String())

	base.LogInfof(LogCompile, "%s", env.Display(unit.String()))
	if _, err := process.Run(compiler, args, process.Options{WorkingDir: env.ProjectDir.String(), CaptureOutput: true}); err != nil {
		return obj, isCpp, err
	}

	if env.Project.PostCompile != "" {
		postArgs := append([]string{obj.String(), unit.String(), compiler}, env.IncludeDirs...)
		postArgs = append(postArgs, options...)
		if _, err := process.Run(env.Project.PostCompile, postArgs, process.Options{WorkingDir: env.ProjectDir.String()}); err != nil {
			return obj, isCpp, err
		}
	}

	return obj, isCpp, nil
}

func composeCompileOptions(spec manifest.TargetSpec, target *manifest.Target, env *BuildEnv, lang manifest.Language) []string {
	options := make([]string, 0, 16)
	options = append(options, spec.RequiredCompileOptions.All(lang)...)
	options = append(options, env.Profile.CompileOptions().All(lang)...)
	options = append(options, target.CompileOptions().All(lang)...)
	return options
}

// LinkBinary links a binary from the object files of every source in
// closureKeys, using the C++ driver if hasCpp is set.
func LinkBinary(out paths.Filename, closureKeys []string, hasCpp bool, target *manifest.Target, env *BuildEnv) error {
	spec := SpecFor(KindBinary, env.Os)
	compiler := linkCompiler(env, hasCpp)

	args := make([]string, 0, 8+len(closureKeys))
	args = append(args, spec.RequiredLinkOptions...)
	args = append(args, target.LinkOptions...)
	args = append(args, "-o", out.String())
	args = append(args, objectArgs(env, closureKeys)...)
	args = append(args, env.LibDirs...)
	args = append(args, env.Libs...)

	base.LogInfof(LogLink, "%s", env.Display(out.String()))
	_, err := process.Run(compiler, args, process.Options{WorkingDir: env.ProjectDir.String(), CaptureOutput: true})
	return err
}

// LinkDynamicLibrary links a shared library the same way as a binary,
// using the dynamic TargetSpec (-shared, and -fPIC at compile time).
func LinkDynamicLibrary(out paths.Filename, closureKeys []string, hasCpp bool, target *manifest.Target, env *BuildEnv) error {
	spec := SpecFor(KindDynamicLib, env.Os)
	compiler := linkCompiler(env, hasCpp)

	args := make([]string, 0, 8+len(closureKeys))
	args = append(args, spec.RequiredLinkOptions...)
	args = append(args, target.LinkOptions...)
	args = append(args, "-o", out.String())
	args = append(args, objectArgs(env, closureKeys)...)
	args = append(args, env.LibDirs...)
	args = append(args, env.Libs...)

	base.LogInfof(LogLink, "%s", env.Display(out.String()))
	_, err := process.Run(compiler, args, process.Options{WorkingDir: env.ProjectDir.String(), CaptureOutput: true})
	return err
}

// LinkStaticLibrary archives the object files of closureKeys with
// `ar crs`. Any additional required-link bytes for the static spec
// (none by default) are appended into the same leading argument, as
// ar's flag syntax requires.
func LinkStaticLibrary(out paths.Filename, closureKeys []string, env *BuildEnv) error {
	spec := SpecFor(KindStaticLib, env.Os)
	flags := "crs" + strings.Join(spec.RequiredLinkOptions, "")

	args := make([]string, 0, 2+len(closureKeys))
	args = append(args, flags, out.String())
	args = append(args, objectArgs(env, closureKeys)...)

	base.LogInfof(LogLink, "%s", env.Display(out.String()))
	_, err := process.Run("ar", args, process.Options{WorkingDir: env.ProjectDir.String(), CaptureOutput: true})
	return err
}

func linkCompiler(env *BuildEnv, hasCpp bool) string {
	if hasCpp {
		return env.Profile.CppCompiler
	}
	return env.Profile.CCompiler
}

func objectArgs(env *BuildEnv, closureKeys []string) []string {
	objs := make([]string, 0, len(closureKeys))
	for _, key := range closureKeys {
		objs = append(objs, ObjectPath(env.TargetDir, env.ProjectDir, paths.MakeFilename(key)).String())
	}
	return objs
}
