package engine

import (
	"github.com/gocar-build/gocar/internal/base"
	"github.com/gocar-build/gocar/internal/paths"
	"github.com/gocar-build/gocar/manifest"
)

// Kind discriminates the three artifact shapes a target can produce:
// a concrete Target plus this enum lets binaries and libraries share
// fields while still dispatching to a per-kind TargetSpec.
type Kind int

const (
	KindBinary Kind = iota
	KindStaticLib
	KindDynamicLib
)

// SpecFor returns the TargetSpec an OsSpec carries for kind.
func SpecFor(kind Kind, os manifest.OsSpec) manifest.TargetSpec {
	switch kind {
	case KindStaticLib:
		return os.StaticLib
	case KindDynamicLib:
		return os.DynamicLib
	default:
		return os.Binary
	}
}

// BinaryOutput names a binary's artifact: target_dir/name[.ext].
func BinaryOutput(targetDir paths.Directory, name string, spec manifest.TargetSpec) paths.Filename {
	if spec.Extension == "" {
		return targetDir.File(name)
	}
	return targetDir.File(name + "." + spec.Extension)
}

// LibraryOutput names a library's artifact: target_dir/lib<name>.ext.
func LibraryOutput(targetDir paths.Directory, name string, spec manifest.TargetSpec) paths.Filename {
	return targetDir.File("lib" + name + "." + spec.Extension)
}

// LibraryKind picks the static or dynamic kind for a library given
// its own disallow flags and the linkage the caller wants. When the
// caller wants the kind this library disallows, it falls back to the
// other kind; it returns an error only when both are disallowed (a
// manifest that manifest.Validate already rejects at load time).
func LibraryKind(lib *manifest.Library, wanted manifest.Linkage) (Kind, error) {
	switch {
	case wanted == manifest.LinkageStatic && !lib.DisallowStatic:
		return KindStaticLib, nil
	case wanted == manifest.LinkageDynamic && !lib.DisallowDynamic:
		return KindDynamicLib, nil
	case !lib.DisallowStatic:
		return KindStaticLib, nil
	case !lib.DisallowDynamic:
		return KindDynamicLib, nil
	default:
		return 0, &base.ManifestError{Reason: "library " + lib.Name + " allows neither static nor dynamic linkage"}
	}
}
