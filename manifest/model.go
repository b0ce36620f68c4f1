// Package manifest loads and validates Gocar.toml, the declarative
// project file a build walks: binaries, libraries, profiles,
// dependencies, and the option lists layered over them.
package manifest

import "github.com/gocar-build/gocar/internal/base"

// Language discriminates the two translation-unit families a source
// extension can belong to.
type Language int

const (
	LangC Language = iota
	LangCpp
)

// CompileOptions holds the three parallel option lists every
// compile-options-bearing table in the manifest carries: options that
// apply regardless of language, and two language-specific overlays.
type CompileOptions struct {
	Common []string
	C      []string
	Cpp    []string
}

// All returns Common followed by the list specific to lang.
func (c CompileOptions) All(lang Language) []string {
	out := make([]string, 0, len(c.Common)+len(c.C)+len(c.Cpp))
	out = append(out, c.Common...)
	switch lang {
	case LangC:
		out = append(out, c.C...)
	case LangCpp:
		out = append(out, c.Cpp...)
	}
	return out
}

// Linkage selects static or dynamic linking for a dependency or the
// top-level build.
type Linkage int

const (
	LinkageStatic Linkage = iota
	LinkageDynamic
)

func (l Linkage) String() string {
	if l == LinkageDynamic {
		return "dynamic"
	}
	return "static"
}

// UnmarshalText lets BurntSushi/toml decode the `"static"`/`"dynamic"`
// strings used by Gocar.toml directly into a Linkage.
func (l *Linkage) UnmarshalText(text []byte) error {
	switch string(text) {
	case "static":
		*l = LinkageStatic
	case "dynamic":
		*l = LinkageDynamic
	default:
		return &base.ManifestError{Reason: "linkage must be \"static\" or \"dynamic\", got " + string(text)}
	}
	return nil
}

// Target holds the fields shared by Binary and Library entries.
type Target struct {
	Name               string   `toml:"name"`
	RootFiles          []string `toml:"root_files"`
	CompileOptionsList []string `toml:"compile_options"`
	CCompileOptions    []string `toml:"c_compile_options"`
	CppCompileOptions  []string `toml:"cpp_compile_options"`
	LinkOptions        []string `toml:"link_options"`
	IgnoreFiles        []string `toml:"ignore_files"`
}

// CompileOptions assembles this target's flat TOML fields into a
// CompileOptions value for use by the compile driver.
func (t *Target) CompileOptions() CompileOptions {
	return CompileOptions{Common: t.CompileOptionsList, C: t.CCompileOptions, Cpp: t.CppCompileOptions}
}

// Binary is an executable target.
type Binary struct {
	Target
}

// Library is a static/dynamic library target.
type Library struct {
	Target
	DisallowStatic  bool     `toml:"disallow_static"`
	DisallowDynamic bool     `toml:"disallow_dynamic"`
	PublicHeaders   []string `toml:"public_headers"`
}

// Profile is a named compilation flavor selecting compilers and
// default option lists.
type Profile struct {
	CCompiler          string   `toml:"c_compiler"`
	CppCompiler        string   `toml:"cpp_compiler"`
	CompileOptionsList []string `toml:"compile_options"`
	CCompileOptions    []string `toml:"c_compile_options"`
	CppCompileOptions  []string `toml:"cpp_compile_options"`
	LinkOptions        []string `toml:"link_options"`
}

// CompileOptions assembles this profile's flat TOML fields.
func (p *Profile) CompileOptions() CompileOptions {
	return CompileOptions{Common: p.CompileOptionsList, C: p.CCompileOptions, Cpp: p.CppCompileOptions}
}

// DetachedHeaders lets a header tree under Includes resolve to
// implementation files under the parallel Sources tree.
type DetachedHeaders struct {
	Includes string `toml:"includes"`
	Sources  string `toml:"sources"`
}

// Dependency points at another project directory to build and link
// in, with an optional linkage override and headers to stage into its
// include tree before it is built.
type Dependency struct {
	Path          string   `toml:"path"`
	Linkage       *Linkage `toml:"linkage"`
	ConfigHeaders []string `toml:"config_headers"`
}

// Project is the decoded contents of one Gocar.toml, plus the
// directory it was loaded from.
type Project struct {
	Bin                   []Binary              `toml:"bin"`
	Lib                   []Library             `toml:"lib"`
	Profiles              map[string]Profile    `toml:"profiles"`
	AddCompileOptions     []string              `toml:"add_compile_options"`
	AddCCompileOptions    []string              `toml:"add_c_compile_options"`
	AddCppCompileOptions  []string              `toml:"add_cpp_compile_options"`
	AddLinkOptions        []string              `toml:"add_link_options"`
	IgnoreMissingSources  bool                  `toml:"ignore_missing_sources"`
	DetachedHeaders       []DetachedHeaders     `toml:"detached_headers"`
	PostCompile           string                `toml:"post_compile"`
	HeadersOnly           []string              `toml:"headers_only"`
	Dependencies          map[string]Dependency `toml:"dependencies"`
	IncludeDirs           []string              `toml:"include_dirs"`

	// Dir is the absolute directory Gocar.toml was loaded from; it is
	// not part of the TOML schema and is set by Load.
	Dir string `toml:"-"`

	// HeadersOnlySet holds canonicalized paths staged at build time
	// (e.g. a dependency's config_headers) that should be treated like
	// HeadersOnly without being written back to the manifest file.
	HeadersOnlySet map[string]bool `toml:"-"`
}
