package launch

import (
	"os/signal"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// WaitForeground blocks until pid exits or is stopped. A child that was
// already reaped, ECHILD, counts as finished.
func WaitForeground(pid int) error {
	var ws unix.WaitStatus
	for {
		_, err := unix.Wait4(pid, &ws, unix.WUNTRACED, nil)
		switch {
		case err == nil, errors.Is(err, unix.ECHILD):
			return nil
		case errors.Is(err, unix.EINTR):
			continue
		default:
			return &SyscallError{Op: "wait4", Err: err}
		}
	}
}

// AutoReap makes the kernel reap every child of this process as it exits so
// background children never become zombies. It's idempotent.
func AutoReap() error {
	signal.Ignore(unix.SIGCHLD)
	return nil
}
