//go:build !windows

package scanner

import (
	"os/exec"
	"syscall"
)

// setProcGroup coloca o processo em um grupo próprio.
func setProcGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// killProcGroup mata o grupo inteiro do processo.
func killProcGroup(cmd *exec.Cmd) error {
	if cmd.Process != nil {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
	return nil
}
