//go:build !unix

package sidecar

import "os/exec"

// setSysProcAttr is a no-op where process groups are not available.
func setSysProcAttr(cmd *exec.Cmd) {}
