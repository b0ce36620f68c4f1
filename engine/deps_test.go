package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gocar-build/gocar/internal/base"
	"github.com/gocar-build/gocar/internal/paths"
	"github.com/gocar-build/gocar/manifest"
)

func writeProjectFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	full := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatal(err)
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

// TestBuildDependenciesRecursesIntoTransitiveDependencies builds a
// three-level project -> a -> b chain and checks that b's library gets
// built and that both a's and b's -L/-l arguments reach the top-level
// DepOutputs, not just a's.
func TestBuildDependenciesRecursesIntoTransitiveDependencies(t *testing.T) {
	root := t.TempDir()
	writeProjectFile(t, root, "Gocar.toml", `
[[bin]]
name = "app"
root_files = ["main.c"]

[dependencies.a]
path = "a"
`)
	writeProjectFile(t, root, "src/main.c", "int main(void) { return 0; }\n")

	writeProjectFile(t, root, "a/Gocar.toml", `
[[lib]]
name = "a"
root_files = ["a.c"]

[dependencies.b]
path = "../b"
`)
	writeProjectFile(t, root, "a/src/a.c", "int a_fn(void) { return 0; }\n")

	writeProjectFile(t, root, "b/Gocar.toml", `
[[lib]]
name = "b"
root_files = ["b.c"]
`)
	writeProjectFile(t, root, "b/src/b.c", "int b_fn(void) { return 0; }\n")

	project, err := manifest.Load(root)
	if err != nil {
		t.Fatal(err)
	}

	targetDir := paths.MakeDirectory(filepath.Join(root, "target", "release"))
	out, err := BuildDependencies(project, targetDir, "release", manifest.LinuxOsSpec(), manifest.LinkageStatic)
	if err != nil {
		t.Fatal(err)
	}

	if !contains(out.Libs, "-la") {
		t.Errorf("missing -la in %v", out.Libs)
	}
	if !contains(out.Libs, "-lb") {
		t.Errorf("b is a's dependency, expected its -lb to reach the top-level DepOutputs: got %v", out.Libs)
	}

	foundADir, foundBDir := false, false
	for _, arg := range out.LibDirs {
		if filepath.Base(arg) == "a" {
			foundADir = true
		}
		if filepath.Base(arg) == "b" {
			foundBDir = true
		}
	}
	if !foundADir || !foundBDir {
		t.Errorf("expected both a's and b's lib dirs in LibDirs, got %v", out.LibDirs)
	}
}

// TestBuildDependenciesUsesEachSubProjectsOwnProfile builds a
// dependency whose own "release" profile points at a compiler that
// does not exist, while the caller's "release" profile uses a normal
// one. If BuildDependencies mistakenly built the dependency with the
// caller's profile the build would succeed; it must fail instead.
func TestBuildDependenciesUsesEachSubProjectsOwnProfile(t *testing.T) {
	root := t.TempDir()
	writeProjectFile(t, root, "Gocar.toml", `
[[bin]]
name = "app"
root_files = ["main.c"]

[dependencies.a]
path = "a"
`)
	writeProjectFile(t, root, "src/main.c", "int main(void) { return 0; }\n")

	writeProjectFile(t, root, "a/Gocar.toml", `
[[lib]]
name = "a"
root_files = ["a.c"]

[profiles.release]
c_compiler = "gocar-test-nonexistent-compiler"
`)
	writeProjectFile(t, root, "a/src/a.c", "int a_fn(void) { return 0; }\n")

	project, err := manifest.Load(root)
	if err != nil {
		t.Fatal(err)
	}

	targetDir := paths.MakeDirectory(filepath.Join(root, "target", "release"))
	if _, err := BuildDependencies(project, targetDir, "release", manifest.LinuxOsSpec(), manifest.LinkageStatic); err == nil {
		t.Fatal("expected a's own release profile (with its bogus compiler) to be used, and the build to fail")
	}
}

// TestBuildDependenciesErrorsWhenSubProjectMissingRequestedProfile
// requests a profile name that only the root manifest declares: the
// dependency falls back to nothing but its own defaults and should
// report InvalidProfileError rather than silently borrowing the
// caller's profile.
func TestBuildDependenciesErrorsWhenSubProjectMissingRequestedProfile(t *testing.T) {
	root := t.TempDir()
	writeProjectFile(t, root, "Gocar.toml", `
[[bin]]
name = "app"
root_files = ["main.c"]

[dependencies.a]
path = "a"

[profiles.custom]
compile_options = ["-O1"]
`)
	writeProjectFile(t, root, "src/main.c", "int main(void) { return 0; }\n")

	writeProjectFile(t, root, "a/Gocar.toml", `
[[lib]]
name = "a"
root_files = ["a.c"]
`)
	writeProjectFile(t, root, "a/src/a.c", "int a_fn(void) { return 0; }\n")

	project, err := manifest.Load(root)
	if err != nil {
		t.Fatal(err)
	}

	targetDir := paths.MakeDirectory(filepath.Join(root, "target", "custom"))
	_, err = BuildDependencies(project, targetDir, "custom", manifest.LinuxOsSpec(), manifest.LinkageStatic)
	if _, ok := err.(*base.InvalidProfileError); !ok {
		t.Fatalf("got %v, want *base.InvalidProfileError", err)
	}
}
