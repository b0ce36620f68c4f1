//go:build linux || darwin

package process

import "syscall"

// setpgidAttr places each spawned child in its own process group so
// KillAllProcessGroups can terminate a compiler/linker invocation and
// everything it forked.
func setpgidAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setpgid: true}
}
