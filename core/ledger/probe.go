package ledger

import "golang.org/x/sys/unix"

// Prober reports whether a process is still running. It's a best-effort
// check: a PID reused by an unrelated process after exit reads as alive.
type Prober func(pid int) bool

// ProcessGroupProber asks for the process group of pid; any failure, usually
// ESRCH, means the process is gone.
func ProcessGroupProber(pid int) bool {
	if pid <= 0 {
		return false
	}
	_, err := unix.Getpgid(pid)
	return err == nil
}

// StaticProber reports the PIDs in alive as running and every other PID as
// done.
func StaticProber(alive ...int) Prober {
	set := make(map[int]bool, len(alive))
	for _, pid := range alive {
		set[pid] = true
	}
	return func(pid int) bool {
		return set[pid]
	}
}
