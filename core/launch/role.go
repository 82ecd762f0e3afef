// Package launch spawns the processes behind interpreter commands, waits for
// them or lets them run detached, and records them in the session ledger.
//
// Processes are created by re-executing the interpreter binary with a hidden
// sub-command. The re-executed process takes the child role: it announces its
// PID and then either replaces itself with the external program, keeping the
// same PID, or performs a ledger introspection and exits.
package launch

import (
	"fmt"

	"github.com/pkg/errors"
)

// Behavior is what a child does once it's running. The set is closed:
// RunExternal, RunJobsIntrospection and RunHistoryIntrospection.
type Behavior interface {
	// Name identifies the behavior on a child's command line.
	Name() string

	// needsSnapshot reports whether the child reads the ledger.
	needsSnapshot() bool
}

// RunExternal replaces the child with an external program.
type RunExternal struct{}

var _ Behavior = RunExternal{}

func (RunExternal) Name() string        { return "external" }
func (RunExternal) needsSnapshot() bool { return false }

// RunJobsIntrospection prints the live ledger entries.
type RunJobsIntrospection struct{}

var _ Behavior = RunJobsIntrospection{}

func (RunJobsIntrospection) Name() string        { return "jobs" }
func (RunJobsIntrospection) needsSnapshot() bool { return true }

// RunHistoryIntrospection prints every ledger entry followed by itself.
type RunHistoryIntrospection struct{}

var _ Behavior = RunHistoryIntrospection{}

func (RunHistoryIntrospection) Name() string        { return "history" }
func (RunHistoryIntrospection) needsSnapshot() bool { return true }

// AllBehaviors lists every Behavior by name.
var AllBehaviors = map[string]Behavior{
	RunExternal{}.Name():             RunExternal{},
	RunJobsIntrospection{}.Name():    RunJobsIntrospection{},
	RunHistoryIntrospection{}.Name(): RunHistoryIntrospection{},
}

// ErrUnknownBehavior is returned when a child is asked to do something that
// isn't in AllBehaviors.
var ErrUnknownBehavior = errors.New("unknown child behavior")

// ParseBehavior looks up a Behavior by name.
func ParseBehavior(name string) (Behavior, error) {
	b, ok := AllBehaviors[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownBehavior, "%q", name)
	}
	return b, nil
}

// Role is the outcome of a spawn, it's either a ChildRole or a ParentRole.
type Role interface {
	isRole()
}

// ChildRole is held by the newly created process. Its continuation must end
// the process; it never falls through into the interpreter loop.
type ChildRole struct {
	Behavior Behavior
	Words    []string
}

// ParentRole is held by the interpreter after a successful spawn.
type ParentRole struct {
	// PID of the child.
	PID int
}

func (ChildRole) isRole()  {}
func (ParentRole) isRole() {}

func (r ChildRole) String() string {
	return fmt.Sprintf("child(%s %q)", r.Behavior.Name(), r.Words)
}

func (r ParentRole) String() string {
	return fmt.Sprintf("parent(%d)", r.PID)
}

// WaitMode says whether the interpreter waits for a child.
type WaitMode int

const (
	// Foreground blocks until the child exits or stops.
	Foreground WaitMode = iota
	// Background returns immediately and never blocks on the child.
	Background
)

func (m WaitMode) String() string {
	switch m {
	case Foreground:
		return "foreground"
	case Background:
		return "background"
	default:
		return fmt.Sprintf("WaitMode(%d)", int(m))
	}
}

// SyscallError is a failed operating system call made while launching or
// waiting for a child.
type SyscallError struct {
	Op  string
	Err error
}

func (e *SyscallError) Error() string {
	return fmt.Sprintf("error in system call %s: %v", e.Op, e.Err)
}

func (e *SyscallError) Unwrap() error {
	return e.Err
}
