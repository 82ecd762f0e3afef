package launch

import (
	"os"

	"github.com/pkg/errors"
)

// Spawner creates a child process. In the calling process it yields the
// ParentRole; an in-process Spawner may instead yield the ChildRole.
// snapshot is the encoded ledger, it's nil if the behavior doesn't read it.
type Spawner interface {
	Fork(b Behavior, words []string, snapshot []byte) (Role, error)
}

// ReexecSpawner starts children by re-executing the interpreter binary with
// the ChildCommand.
type ReexecSpawner struct {
	// Executable is the interpreter binary.
	Executable string
	Options    ChildOptions

	// Files are the child's stdin, stdout and stderr.
	Files [3]*os.File
}

var _ Spawner = (*ReexecSpawner)(nil)

// NewReexecSpawner creates a spawner for the running binary whose children
// inherit the process' standard streams.
func NewReexecSpawner(opts ChildOptions) (*ReexecSpawner, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, errors.Wrap(err, "locating interpreter binary")
	}

	return &ReexecSpawner{
		Executable: exe,
		Options:    opts,
		Files:      [3]*os.File{os.Stdin, os.Stdout, os.Stderr},
	}, nil
}

// Fork starts the child and returns as soon as it's running. The child's
// environment is the interpreter's; external programs get an empty one when
// the child replaces itself.
func (s *ReexecSpawner) Fork(b Behavior, words []string, snapshot []byte) (Role, error) {
	argv := append([]string{s.Executable}, s.Options.Args(b, words)...)
	attr := &os.ProcAttr{
		Env:   os.Environ(),
		Files: s.Files[:],
	}

	var snapshotW *os.File
	if snapshot != nil {
		r, w, err := os.Pipe()
		if err != nil {
			return nil, &SyscallError{Op: "pipe", Err: err}
		}
		defer r.Close()

		snapshotW = w
		attr.Files = append(attr.Files, r)
	}

	proc, err := os.StartProcess(s.Executable, argv, attr)
	if err != nil {
		if snapshotW != nil {
			snapshotW.Close()
		}
		return nil, &SyscallError{Op: "fork", Err: err}
	}

	if snapshotW != nil {
		// A failed write shows up as a truncated snapshot in the child,
		// which reports it.
		snapshotW.Write(snapshot)
		snapshotW.Close()
	}

	pid := proc.Pid
	// The child is waited for by PID, not through os.Process.
	proc.Release()
	return ParentRole{PID: pid}, nil
}
