//go:build unix

package sidecar

import (
	"os/exec"
	"syscall"
)

// setSysProcAttr starts the child in a new process group.
func setSysProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
