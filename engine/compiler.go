package engine

import (
	"strings"

	"github.com/gocar-build/gocar/internal/base"
	"github.com/gocar-build/gocar/manifest"
)

// LanguageForExt maps a source extension to the Language the compiler
// driver should treat it as. ".C" alone is intentionally rejected:
// it collides with ".c" on case-insensitive filesystems and the
// source convention it signals (C++ using a capital extension) is not
// supported here.
func LanguageForExt(ext string) (manifest.Language, error) {
	switch strings.TrimPrefix(ext, ".") {
	case "c":
		return manifest.LangC, nil
	case "cpp", "cc", "cxx", "CPP", "CC", "CXX":
		return manifest.LangCpp, nil
	default:
		return 0, &base.ManifestError{Reason: "unsupported source extension " + ext}
	}
}

// CompilerForLanguage returns the profile's configured compiler
// executable for lang.
func CompilerForLanguage(profile *manifest.Profile, lang manifest.Language) string {
	if lang == manifest.LangCpp {
		return profile.CppCompiler
	}
	return profile.CCompiler
}
