package launch

import (
	"fmt"

	"github.com/josephlewis42/jobsh/core/ledger"
	"github.com/pkg/errors"
)

// ErrNoChildContinuation is returned if a Spawner yields the ChildRole to a
// Launcher that can't run it.
var ErrNoChildContinuation = errors.New("no child continuation")

// Launcher spawns children for a session and records them in its ledger.
type Launcher struct {
	Spawner Spawner
	Ledger  *ledger.Ledger

	// Child runs the ChildRole when the Spawner yields it in-process.
	Child *Child

	// Wait blocks on a foreground child.
	Wait func(pid int) error
	// Detach arranges for background children to be reaped without waiting.
	Detach func() error
}

// NewLauncher creates a Launcher that waits with WaitForeground and detaches
// with AutoReap.
func NewLauncher(spawner Spawner, l *ledger.Ledger) *Launcher {
	return &Launcher{
		Spawner: spawner,
		Ledger:  l,
		Wait:    WaitForeground,
		Detach:  AutoReap,
	}
}

// Launch creates a child running b on words. Commands the ledger can't
// record are rejected before anything is started.
//
// In Foreground mode the parent waits for the child to exit or stop and then
// appends it to the ledger. A wait failure leaves the ledger unchanged. In
// Background mode the parent appends the child without waiting.
//
// The returned role is valid whenever a child was started, even if waiting
// for it failed.
func (l *Launcher) Launch(b Behavior, words []string, mode WaitMode) (ParentRole, error) {
	if err := l.Ledger.Check(words); err != nil {
		return ParentRole{}, err
	}

	if mode == Background {
		// Reaping has to be in place before the child can exit.
		if err := l.Detach(); err != nil {
			return ParentRole{}, errors.Wrap(err, "detaching background child")
		}
	}

	var snapshot []byte
	if b.needsSnapshot() {
		snapshot = ledger.MarshalSnapshot(l.Ledger.Records())
	}

	role, err := l.Spawner.Fork(b, words, snapshot)
	if err != nil {
		return ParentRole{}, err
	}

	switch role := role.(type) {
	case ChildRole:
		if l.Child == nil {
			return ParentRole{}, ErrNoChildContinuation
		}
		l.Child.Exit(role)
		panic("unreachable")

	case ParentRole:
		return role, l.continueParent(role, words, mode)

	default:
		panic(fmt.Sprintf("unknown role %T", role))
	}
}

func (l *Launcher) continueParent(role ParentRole, words []string, mode WaitMode) error {
	if mode == Foreground {
		if err := l.Wait(role.PID); err != nil {
			return err
		}
	}

	return l.Ledger.Append(role.PID, words)
}
