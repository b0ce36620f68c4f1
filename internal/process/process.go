// Package process runs compiler, linker, and archiver child processes
// and captures their stdout, using a single-threaded, synchronous
// execution model: no response files, no file-access detouring, no
// spinners.
package process

import (
	"bytes"
	"os/exec"
	"sync"

	"github.com/gocar-build/gocar/internal/base"
	"golang.org/x/sys/unix"
)

var LogProcess = base.NewLogCategory("Process")

// Options configures one child-process invocation.
type Options struct {
	WorkingDir    string
	Env           []string
	CaptureOutput bool
}

// Result is the outcome of a successfully spawned and awaited
// process; Stdout is only populated when CaptureOutput was set.
type Result struct {
	Stdout   []byte
	Combined []byte
}

var (
	groupsMu sync.Mutex
	groups   = map[int]struct{}{}
)

// KillAllProcessGroups terminates every still-running child spawned by
// this package via its OS process group, so that sending the engine a
// termination signal reaches currently-spawned children transitively.
// The CLI front end calls this from its SIGINT handler.
func KillAllProcessGroups() {
	groupsMu.Lock()
	defer groupsMu.Unlock()
	for pgid := range groups {
		_ = unix.Kill(-pgid, unix.SIGTERM)
	}
}

// Run spawns executable with arguments, waits for it to complete, and
// returns a *base.CommandError for any spawn, wait, or nonzero-exit
// failure, reconstructing the argv for diagnostics.
func Run(executable string, arguments []string, opts Options) (Result, error) {
	argv := append([]string{executable}, arguments...)

	cmd := exec.Command(executable, arguments...)
	if opts.WorkingDir != "" {
		cmd.Dir = opts.WorkingDir
	}
	if len(opts.Env) > 0 {
		cmd.Env = opts.Env
	}
	cmd.SysProcAttr = setpgidAttr()

	var combined bytes.Buffer
	var stdoutOnly bytes.Buffer
	if opts.CaptureOutput {
		cmd.Stdout = &stdoutOnly
		cmd.Stderr = &combined
	} else {
		cmd.Stdout = &combined
		cmd.Stderr = &combined
	}

	base.LogDebugf(LogProcess, "run: %v", argv)

	if err := cmd.Start(); err != nil {
		return Result{}, &base.CommandError{Kind: base.CommandSpawn, Argv: argv, Err: err}
	}

	if pgid, err := unix.Getpgid(cmd.Process.Pid); err == nil {
		groupsMu.Lock()
		groups[pgid] = struct{}{}
		groupsMu.Unlock()
		defer func() {
			groupsMu.Lock()
			delete(groups, pgid)
			groupsMu.Unlock()
		}()
	}

	err := cmd.Wait()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			base.LogErrorf(LogProcess, "command failed (%d): %v\n%s", exitErr.ExitCode(), argv, combined.String())
			return Result{}, &base.CommandError{Kind: base.CommandFailed, Argv: argv, ExitCode: exitErr.ExitCode(), Err: err}
		}
		return Result{}, &base.CommandError{Kind: base.CommandWait, Argv: argv, Err: err}
	}

	return Result{Stdout: stdoutOnly.Bytes(), Combined: combined.Bytes()}, nil
}
