package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocar-build/gocar/engine"
	"github.com/gocar-build/gocar/internal/base"
	"github.com/gocar-build/gocar/internal/paths"
	"github.com/gocar-build/gocar/internal/process"
	"github.com/gocar-build/gocar/manifest"
	"github.com/spf13/cobra"
)

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Compile and run every tests/*.{c,cpp} file as its own binary",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrationTests(".", profileName())
	},
}

// runIntegrationTests builds each source under tests/ as an
// independent binary (no closure sharing between tests) and runs it,
// reporting a total/passed/failed summary.
func runIntegrationTests(projectDir, profile string) error {
	project, err := manifest.Load(projectDir)
	if err != nil {
		return err
	}
	prof, ok := project.Profiles[profile]
	if !ok {
		return &base.InvalidProfileError{Name: profile}
	}

	targetDir := paths.MakeDirectory(filepath.Join(project.Dir, "target", profile, "integration_tests"))
	if err := os.MkdirAll(targetDir.String(), 0o755); err != nil {
		return base.WrapFilesystem("mkdir", targetDir.String(), err)
	}

	entries, err := os.ReadDir(filepath.Join(project.Dir, "tests"))
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("no tests/ directory, nothing to run")
			return nil
		}
		return base.WrapFilesystem("readdir", filepath.Join(project.Dir, "tests"), err)
	}

	env := &BuildEnvFactory{project: project, profile: prof, targetDir: targetDir}

	total, failed := 0, 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".c" && ext != ".cpp" {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ext)
		total++

		bin := &manifest.Binary{Target: manifest.Target{
			Name:               name,
			RootFiles:          []string{entry.Name()},
			CompileOptionsList: []string{"-DGOCAR_INTEGRATION_TEST"},
		}}

		out, err := engine.BuildBinary(bin, env.forTestBinary())
		if err != nil {
			fmt.Printf("      \x1b[31;1mFailed to build\x1b[0m %s: %v\n", name, err)
			failed++
			continue
		}

		fmt.Printf("     \x1b[32;1mRunning\x1b[0m %s\n", out.String())
		if _, err := process.Run(out.String(), nil, process.Options{}); err != nil {
			fmt.Printf("      \x1b[31;1mFailed\x1b[0m %s\n", out.String())
			failed++
		}
	}

	result := "\x1b[32mok\x1b[0m"
	if failed > 0 {
		result = "\x1b[31mFAILED\x1b[0m"
	}
	fmt.Printf("test result: %s. total: %d; passed: %d; failed: %d\n", result, total, total-failed, failed)
	if failed > 0 {
		return fmt.Errorf("%d integration test(s) failed", failed)
	}
	return nil
}

// BuildEnvFactory builds a fresh engine.BuildEnv rooted at the tests/
// directory for each synthetic single-file binary: integration tests
// do not share a root_files/src convention with the project's own
// targets.
type BuildEnvFactory struct {
	project   *manifest.Project
	profile   manifest.Profile
	targetDir paths.Directory
}

func (f *BuildEnvFactory) forTestBinary() *engine.BuildEnv {
	return &engine.BuildEnv{
		ProjectDir:  paths.MakeDirectory(f.project.Dir),
		SrcDir:      paths.MakeDirectory(filepath.Join(f.project.Dir, "tests")),
		TargetDir:   f.targetDir,
		Os:          manifest.LinuxOsSpec(),
		Profile:     f.profile,
		Project:     f.project,
		HeadersOnly: map[string]bool{},
	}
}
