package launch

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/josephlewis42/jobsh/core/ledger"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// SnapshotFD is the descriptor a child reads the ledger snapshot from.
const SnapshotFD = 3

// ExecFunc replaces the running process image, see unix.Exec.
type ExecFunc func(argv0 string, argv []string, envv []string) error

// Child runs the continuation of a ChildRole.
type Child struct {
	Options ChildOptions

	Stdout io.Writer
	Stderr io.Writer
	// Snapshot holds the ledger records for introspection behaviors.
	Snapshot io.Reader

	Getpid func() int
	Probe  ledger.Prober
	Exec   ExecFunc

	exit func(code int)
}

// NewChild creates the continuation for a re-executed child process.
func NewChild(opts ChildOptions) *Child {
	return &Child{
		Options:  opts,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Snapshot: os.NewFile(SnapshotFD, "snapshot"),
		Getpid:   os.Getpid,
		Probe:    ledger.ProcessGroupProber,
		Exec:     unix.Exec,
		exit:     os.Exit,
	}
}

// Exit runs role and terminates the process with its status. It never
// returns.
func (c *Child) Exit(role ChildRole) {
	code := c.Run(role)
	c.exit(code)
	panic(fmt.Sprintf("child %s outlived exit(%d)", role, code))
}

// Run announces the child's PID then carries out role. It only returns if the
// role couldn't be completed in place, the result is the exit status.
func (c *Child) Run(role ChildRole) int {
	fmt.Fprintf(c.Stdout, "%d\n", c.Getpid())

	switch role.Behavior.(type) {
	case RunExternal:
		return c.runExternal(role.Words)

	case RunJobsIntrospection:
		return c.introspect(func(w io.Writer, entries []ledger.Entry) error {
			return ledger.WriteJobs(w, entries)
		})

	case RunHistoryIntrospection:
		return c.introspect(func(w io.Writer, entries []ledger.Entry) error {
			return ledger.WriteHistory(w, entries, c.Getpid())
		})

	default:
		fmt.Fprintf(c.Stderr, "%v\n", errors.Wrapf(ErrUnknownBehavior, "%T", role.Behavior))
		return 1
	}
}

func (c *Child) runExternal(words []string) int {
	if len(words) == 0 {
		fmt.Fprintln(c.Stderr, ledger.ErrEmptyCommand)
		return 1
	}

	argv := ExternalArgv(words, c.Options)
	err := c.Exec(argv[0], argv, []string{})

	// Only reachable if the program image wasn't replaced.
	fmt.Fprintf(c.Stderr, "%s: %v\n", words[0], &SyscallError{Op: "execve", Err: err})
	return 1
}

func (c *Child) introspect(write func(io.Writer, []ledger.Entry) error) int {
	encoded, err := ioutil.ReadAll(c.Snapshot)
	if err != nil {
		fmt.Fprintf(c.Stderr, "reading snapshot: %v\n", err)
		return 1
	}

	records, err := ledger.UnmarshalSnapshot(encoded)
	if err != nil {
		fmt.Fprintf(c.Stderr, "%v\n", err)
		return 1
	}

	if err := write(c.Stdout, ledger.Probe(records, c.Probe)); err != nil {
		fmt.Fprintf(c.Stderr, "%v\n", err)
		return 1
	}
	return 0
}

// ExternalArgv builds the argument vector for an external command: quotes are
// removed from every word if the command is listed in opts.StripQuotesFor and
// the program path is the command name under opts.BinDir.
func ExternalArgv(words []string, opts ChildOptions) []string {
	argv := make([]string, len(words))
	copy(argv, words)

	if opts.ShouldStripQuotes(argv[0]) {
		for i, word := range argv {
			argv[i] = strings.ReplaceAll(word, `"`, "")
		}
	}

	argv[0] = opts.BinDir + argv[0]
	return argv
}
