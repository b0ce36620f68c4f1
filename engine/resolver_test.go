package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gocar-build/gocar/internal/base"
	"github.com/gocar-build/gocar/internal/paths"
	"github.com/gocar-build/gocar/manifest"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestResolveHeaderAmbiguous(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "foo.h"))
	touch(t, filepath.Join(dir, "foo.c"))
	touch(t, filepath.Join(dir, "foo.cpp"))

	_, status := ResolveHeader(paths.MakeFilename(filepath.Join(dir, "foo.h")), nil)
	if status != base.ResolveAmbiguous {
		t.Fatalf("status = %v, want Ambiguous", status)
	}
}

func TestResolveHeaderPrefersCpp(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "foo.h"))
	touch(t, filepath.Join(dir, "foo.cpp"))

	unit, status := ResolveHeader(paths.MakeFilename(filepath.Join(dir, "foo.h")), nil)
	if status != base.ResolveResolved || unit.Basename() != "foo.cpp" {
		t.Fatalf("got (%v, %v), want resolved foo.cpp", unit, status)
	}
}

func TestResolveHeaderFallsBackToC(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "foo.h"))
	touch(t, filepath.Join(dir, "foo.c"))

	unit, status := ResolveHeader(paths.MakeFilename(filepath.Join(dir, "foo.h")), nil)
	if status != base.ResolveResolved || unit.Basename() != "foo.c" {
		t.Fatalf("got (%v, %v), want resolved foo.c", unit, status)
	}
}

func TestResolveHeaderDetachedMapping(t *testing.T) {
	dir := t.TempDir()
	includes := filepath.Join(dir, "include")
	sources := filepath.Join(dir, "src")
	if err := os.MkdirAll(includes, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(sources, 0o755); err != nil {
		t.Fatal(err)
	}
	touch(t, filepath.Join(includes, "foo.h"))
	touch(t, filepath.Join(sources, "foo.cpp"))

	mapping := []manifest.DetachedHeaders{{Includes: includes, Sources: sources}}
	unit, status := ResolveHeader(paths.MakeFilename(filepath.Join(includes, "foo.h")), mapping)
	if status != base.ResolveResolved || unit.Basename() != "foo.cpp" {
		t.Fatalf("got (%v, %v), want resolved foo.cpp via detached mapping", unit, status)
	}
}

func TestResolveHeaderMissing(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "foo.h"))

	_, status := ResolveHeader(paths.MakeFilename(filepath.Join(dir, "foo.h")), nil)
	if status != base.ResolveMissing {
		t.Fatalf("status = %v, want Missing", status)
	}
}
