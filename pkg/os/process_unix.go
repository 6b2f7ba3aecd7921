//go:build unix

package os

import (
	"syscall"
)

// DefaultSyscall implements SyscallInterface using real syscalls
type DefaultSyscall struct{}

func (s *DefaultSyscall) Kill(pid int, sig syscall.Signal) error {
	// Direct passthrough to syscall.Kill following Unix convention:
	// - Positive pid: kills the specific process
	// - Negative pid: kills the process group (IMPORTANT: pid must be negative for group)
	return syscall.Kill(pid, sig)
}

func (s *DefaultSyscall) CreateProcessGroup() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		Setpgid: true, // Create new process group
		Pgid:    0,    // Use process PID as group ID
	}
}

var _ SyscallInterface = (*DefaultSyscall)(nil)
