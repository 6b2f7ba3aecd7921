package os

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

import (
	"syscall"
)

//counterfeiter:generate . SyscallInterface
type SyscallInterface interface {
	// Kill sends a signal to a process or process group
	// - Positive pid: kills the specific process
	// - Negative pid: kills the process group (all processes in the group)
	// This follows the standard Unix convention
	Kill(pid int, sig syscall.Signal) error
	CreateProcessGroup() *syscall.SysProcAttr
}
