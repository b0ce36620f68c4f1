package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, ManifestFile), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadAppliesDefaultProfiles(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[[bin]]
name = "app"
root_files = ["main.c"]
`)

	project, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"release", "debug"} {
		if _, ok := project.Profiles[name]; !ok {
			t.Errorf("missing default profile %q", name)
		}
	}
	if project.Profiles["release"].CompileOptionsList[0] != "-O2" {
		t.Errorf("release profile missing -O2 default: %v", project.Profiles["release"].CompileOptionsList)
	}
	if project.Profiles["debug"].CCompiler == "" {
		t.Errorf("debug profile CCompiler should default to CC/cc")
	}
}

func TestInitDefaultProfilesAppliesAddOns(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
add_compile_options = ["-Wall"]
add_link_options = ["-lm"]

[[bin]]
name = "app"
root_files = ["main.c"]

[profiles.custom]
compile_options = ["-O1"]
`)

	project, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}

	custom := project.Profiles["custom"]
	if !contains(custom.CompileOptionsList, "-Wall") {
		t.Errorf("custom profile missing add_compile_options: %v", custom.CompileOptionsList)
	}
	if !contains(custom.LinkOptions, "-lm") {
		t.Errorf("custom profile missing add_link_options: %v", custom.LinkOptions)
	}

	release := project.Profiles["release"]
	if !contains(release.CompileOptionsList, "-Wall") || !contains(release.CompileOptionsList, "-O2") {
		t.Errorf("release profile missing default + add-on options: %v", release.CompileOptionsList)
	}
}

func TestValidateRejectsDuplicateTargetNames(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[[bin]]
name = "app"
root_files = ["main.c"]

[[lib]]
name = "app"
root_files = ["lib.c"]
`)

	if _, err := Load(dir); err == nil {
		t.Fatal("expected a duplicate-name validation error")
	}
}

func TestValidateRejectsLibraryDisallowingBothLinkages(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[[lib]]
name = "foo"
root_files = ["foo.c"]
disallow_static = true
disallow_dynamic = true
`)

	if _, err := Load(dir); err == nil {
		t.Fatal("expected a validation error for a library allowing neither linkage")
	}
}

func TestLinkageUnmarshalText(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[[bin]]
name = "app"
root_files = ["main.c"]

[dependencies.foo]
path = "../foo"
linkage = "dynamic"
`)

	project, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	dep := project.Dependencies["foo"]
	if dep.Linkage == nil || *dep.Linkage != LinkageDynamic {
		t.Fatalf("got %v, want LinkageDynamic", dep.Linkage)
	}
}

func contains(values []string, match string) bool {
	for _, v := range values {
		if v == match {
			return true
		}
	}
	return false
}
