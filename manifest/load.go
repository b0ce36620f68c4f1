package manifest

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/gocar-build/gocar/internal/base"
)

var LogManifest = base.NewLogCategory("Manifest")

// ManifestFile is the name Load looks for inside a project directory.
const ManifestFile = "Gocar.toml"

// Load reads and decodes dir/Gocar.toml, then applies
// InitDefaultProfiles and Validate before returning it.
func Load(dir string) (*Project, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, base.WrapFilesystem("load", dir, err)
	}
	path := filepath.Join(abs, ManifestFile)

	var project Project
	if _, err := toml.DecodeFile(path, &project); err != nil {
		if os.IsNotExist(err) {
			return nil, base.WrapFilesystem("read manifest", path, err)
		}
		return nil, &base.ManifestError{Reason: err.Error()}
	}
	project.Dir = abs

	project.InitDefaultProfiles()
	if err := project.Validate(); err != nil {
		return nil, err
	}
	base.LogDebugf(LogManifest, "loaded %q: %d bin, %d lib, %d profiles", path, len(project.Bin), len(project.Lib), len(project.Profiles))
	return &project, nil
}

// InitDefaultProfiles ensures "release" and "debug" profiles exist and
// appends the project's add-on option lists onto every profile,
// including ones the manifest declared explicitly.
func (p *Project) InitDefaultProfiles() {
	if p.Profiles == nil {
		p.Profiles = map[string]Profile{}
	}
	if _, ok := p.Profiles["release"]; !ok {
		p.Profiles["release"] = Profile{CompileOptionsList: []string{"-O2"}}
	}
	if _, ok := p.Profiles["debug"]; !ok {
		p.Profiles["debug"] = Profile{CompileOptionsList: []string{"-g", "-DDEBUG"}}
	}

	for name, profile := range p.Profiles {
		profile.CompileOptionsList = append(profile.CompileOptionsList, p.AddCompileOptions...)
		profile.CCompileOptions = append(profile.CCompileOptions, p.AddCCompileOptions...)
		profile.CppCompileOptions = append(profile.CppCompileOptions, p.AddCppCompileOptions...)
		profile.LinkOptions = append(profile.LinkOptions, p.AddLinkOptions...)
		if profile.CCompiler == "" {
			profile.CCompiler = envOr("CC", "cc")
		}
		if profile.CppCompiler == "" {
			profile.CppCompiler = envOr("CXX", "c++")
		}
		p.Profiles[name] = profile
	}
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

// Validate catches structural mistakes that would otherwise surface
// as confusing failures deep into a build.
func (p *Project) Validate() error {
	seen := base.StringSet{}
	for _, b := range p.Bin {
		if b.Name == "" {
			return &base.ManifestError{Reason: "a [[bin]] entry is missing a name"}
		}
		if base.Contains(seen, b.Name) {
			return &base.ManifestError{Reason: "duplicate target name " + b.Name}
		}
		seen.Append(b.Name)
	}
	for _, l := range p.Lib {
		if l.Name == "" {
			return &base.ManifestError{Reason: "a [[lib]] entry is missing a name"}
		}
		if base.Contains(seen, l.Name) {
			return &base.ManifestError{Reason: "duplicate target name " + l.Name}
		}
		seen.Append(l.Name)
		if l.DisallowStatic && l.DisallowDynamic {
			return &base.ManifestError{Reason: "library " + l.Name + " disallows both static and dynamic linkage"}
		}
	}
	for name, dep := range p.Dependencies {
		if dep.Path == "" {
			return &base.ManifestError{Reason: "dependency " + name + " is missing a path"}
		}
	}
	return nil
}

// ProfileNames returns the manifest's profile names for error
// messages listing valid choices.
func (p *Project) ProfileNames() []string {
	return base.SortedKeys(p.Profiles)
}
