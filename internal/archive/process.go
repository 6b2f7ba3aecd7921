package archive

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"photoarchive/pkg/logger"
	osinterface "photoarchive/pkg/os"
)

// How an archiver process ended.
const (
	TerminationExited = "exited" // finished on its own
	TerminationClosed = "closed" // exited within the grace period after its output was closed
	TerminationKilled = "killed" // needed SIGKILL
)

const stderrLimit = 4 * 1024

// archiver is one running archiving subprocess. Its standard output is a
// pipe owned by the session rather than by exec.Cmd, so Wait can run in the
// background without racing the reads.
type archiver struct {
	cmd     *exec.Cmd
	stdout  *os.File
	stderr  *limitedBuffer
	sys     osinterface.SyscallInterface
	logger  *logger.Logger
	exited  chan struct{}
	waitErr error

	closeOnce sync.Once
}

func startArchiver(command []string, dir string, grace time.Duration, sys osinterface.SyscallInterface, log *logger.Logger) (*archiver, error) {
	if len(command) == 0 {
		return nil, fmt.Errorf("empty archive command")
	}

	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create output pipe: %w", err)
	}

	stderr := &limitedBuffer{limit: stderrLimit}
	cmd := exec.Command(command[0], command[1:]...)
	cmd.Dir = dir
	cmd.Stdout = pw
	cmd.Stderr = stderr
	cmd.SysProcAttr = sys.CreateProcessGroup()
	// stderr may be inherited by grandchildren outside the group
	cmd.WaitDelay = grace

	if err := cmd.Start(); err != nil {
		_ = pr.Close()
		_ = pw.Close()
		return nil, err
	}
	// the child holds its own copy of the write end
	_ = pw.Close()

	a := &archiver{
		cmd:    cmd,
		stdout: pr,
		stderr: stderr,
		sys:    sys,
		logger: log.WithField("pid", cmd.Process.Pid),
		exited: make(chan struct{}),
	}
	go func() {
		a.waitErr = cmd.Wait()
		close(a.exited)
	}()

	return a, nil
}

func (a *archiver) pid() int {
	return a.cmd.Process.Pid
}

// closeOutput closes the read end of the output pipe. A pending Read returns
// immediately and the archiver gets EPIPE on its next write.
func (a *archiver) closeOutput() {
	a.closeOnce.Do(func() {
		_ = a.stdout.Close()
	})
}

func (a *archiver) hasExited() bool {
	select {
	case <-a.exited:
		return true
	default:
		return false
	}
}

// finish reaps the archiver after its output reached EOF. A process that
// closed stdout but keeps running past the grace period is terminated.
func (a *archiver) finish(grace time.Duration) string {
	timer := time.NewTimer(grace)
	defer timer.Stop()

	select {
	case <-a.exited:
		a.closeOutput()
		return TerminationExited
	case <-timer.C:
	}

	a.logger.Warn("archiver still running after end of output")
	return a.terminate(grace)
}

// terminate stops the archiver and always waits for it to be reaped: close
// the pipe and send SIGTERM to the process group, wait up to grace, then
// SIGKILL the group.
func (a *archiver) terminate(grace time.Duration) string {
	if a.hasExited() {
		a.closeOutput()
		return TerminationExited
	}

	a.closeOutput()
	a.signal(syscall.SIGTERM)

	timer := time.NewTimer(grace)
	defer timer.Stop()

	select {
	case <-a.exited:
		a.logger.Debug("archiver exited after its output was closed")
		return TerminationClosed
	case <-timer.C:
	}

	a.logger.Warn("archiver did not exit within grace period, killing", "gracePeriod", grace)
	a.signal(syscall.SIGKILL)
	<-a.exited
	return TerminationKilled
}

// signal delivers sig to the archiver's process group, falling back to the
// process itself.
func (a *archiver) signal(sig syscall.Signal) {
	pid := a.pid()
	err := a.sys.Kill(-pid, sig)
	if err == nil || errors.Is(err, syscall.ESRCH) {
		return
	}

	a.logger.Debug("failed to signal process group", "signal", sig, "error", err)
	if err := a.sys.Kill(pid, sig); err != nil && !errors.Is(err, syscall.ESRCH) {
		a.logger.Warn("failed to signal archiver", "signal", sig, "error", err)
	}
}

// exitCode returns the exit status once the process has been reaped, -1 when
// it was ended by a signal.
func (a *archiver) exitCode() int {
	if a.cmd.ProcessState == nil {
		return -1
	}
	return a.cmd.ProcessState.ExitCode()
}

// limitedBuffer keeps the first limit bytes written to it and drops the rest.
type limitedBuffer struct {
	mu    sync.Mutex
	limit int
	buf   []byte
}

func (b *limitedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if room := b.limit - len(b.buf); room > 0 {
		if len(p) < room {
			room = len(p)
		}
		b.buf = append(b.buf, p[:room]...)
	}
	return len(p), nil
}

func (b *limitedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.buf)
}
