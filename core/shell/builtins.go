package shell

import (
	"fmt"
	"strings"

	"github.com/josephlewis42/jobsh/core/launch"
	"github.com/josephlewis42/jobsh/core/ledger"
	"github.com/josephlewis42/jobsh/core/logger"
	getopt "github.com/pborman/getopt/v2"
	"github.com/pkg/errors"
)

const (
	homeMarker     = "~"
	previousMarker = "-"
	backgroundWord = "&"
	envHome        = "HOME"
)

// AllBuiltins holds a list of all registered shell builtins
var AllBuiltins = make(map[string]ShellBuiltin)

type ShellBuiltin interface {
	Main(s *Shell, args []string) int
}

type ShellBuiltinFunc func(s *Shell, args []string) int

func (f ShellBuiltinFunc) Main(s *Shell, args []string) int {
	return f(s, args)
}

var _ ShellBuiltin = (ShellBuiltinFunc)(nil)

// Dispatch runs words as a built-in if the first word names one, otherwise
// as an external program. A trailing "&" word runs the program in the
// background.
func (s *Shell) Dispatch(words []string) int {
	if builtin, ok := AllBuiltins[words[0]]; ok {
		return builtin.Main(s, words)
	}

	mode := launch.Foreground
	if words[len(words)-1] == backgroundWord {
		words = words[:len(words)-1]
		mode = launch.Background
	}

	if len(words) == 0 {
		s.reject([]string{backgroundWord}, ledger.ErrEmptyCommand)
		return 1
	}

	return s.launch(launch.RunExternal{}, words, mode)
}

func (s *Shell) launch(b launch.Behavior, words []string, mode launch.WaitMode) int {
	role, err := s.Launcher.Launch(b, words, mode)
	if err != nil {
		s.reject(words, err)
		return 1
	}

	s.record(&logger.RunCommand{
		PID:      role.PID,
		Command:  words,
		Behavior: b.Name(),
		Mode:     mode.String(),
	})
	return 0
}

// builtinDone logs the outcome of a built-in run in the interpreter and
// reports err if set.
func (s *Shell) builtinDone(args []string, err error) int {
	event := &logger.Builtin{Command: args}
	status := 0
	if err != nil {
		s.printError(args[0], err)
		event.Error = err.Error()
		status = 1
	}
	s.record(event)
	return status
}

func (s *Shell) printPID() {
	fmt.Fprintf(s.VirtualOS.Stdout(), "%d\n", s.VirtualOS.Getpid())
}

// Cd changes the working directory. It's recorded in the ledger under the
// interpreter's PID whether or not the change succeeds.
func Cd(s *Shell, args []string) int {
	s.printPID()

	if err := s.Ledger.Append(s.VirtualOS.Getpid(), args); err != nil {
		return s.builtinDone(args, err)
	}

	return s.builtinDone(args, s.cd(args[1:]))
}

func (s *Shell) cd(args []string) error {
	if len(args) > 1 {
		return ErrTooManyArgs
	}

	var target string
	switch {
	case len(args) == 0 || args[0] == homeMarker:
		target = s.VirtualOS.Getenv(envHome)

	case strings.HasPrefix(args[0], homeMarker+"/"):
		target = s.VirtualOS.Getenv(envHome) + strings.TrimPrefix(args[0], homeMarker)

	case args[0] == previousMarker:
		prev, ok := s.Tracker.Previous()
		if !ok {
			return ErrOldpwdNotSet
		}
		target = prev

	default:
		if stat, err := s.VirtualOS.Stat(args[0]); err != nil || !stat.IsDir() {
			return errors.Wrap(ErrNoSuchDirectory, args[0])
		}
		target = args[0]
	}

	current, err := s.VirtualOS.Getwd()
	if err != nil {
		return &launch.SyscallError{Op: "getcwd", Err: err}
	}

	if err := s.VirtualOS.Chdir(target); err != nil {
		return &launch.SyscallError{Op: "chdir", Err: err}
	}

	return s.Tracker.Remember(current)
}

// Exit ends the session successfully. It isn't recorded in the ledger.
func Exit(s *Shell, args []string) int {
	s.printPID()
	s.Exit(0)
	return s.builtinDone(args, nil)
}

// Jobs lists the live commands of the session from a child process.
func Jobs(s *Shell, args []string) int {
	return s.introspect(args, launch.RunJobsIntrospection{}, "Display the commands of this session that are still running.")
}

// History lists every command of the session from a child process.
func History(s *Shell, args []string) int {
	return s.introspect(args, launch.RunHistoryIntrospection{}, "Display every command of this session and whether it's still running.")
}

func (s *Shell) introspect(args []string, b launch.Behavior, description string) int {
	opts := getopt.New()
	helpOpt := opts.BoolLong("help", 'h', "show help and exit")

	if err := opts.Getopt(args, nil); err != nil || *helpOpt {
		w := s.VirtualOS.Stderr()
		if err != nil {
			fmt.Fprintln(w, err)
		}
		fmt.Fprintf(w, "usage: %s [-h]\n", args[0])
		fmt.Fprintln(w, description)
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Options:")
		opts.PrintOptions(w)
		if err != nil {
			return 1
		}
		return 0
	}

	// Always in the foreground so the listing finishes before the next prompt.
	return s.launch(b, args, launch.Foreground)
}

func init() {
	AllBuiltins["cd"] = ShellBuiltinFunc(Cd)
	AllBuiltins["exit"] = ShellBuiltinFunc(Exit)
	AllBuiltins["jobs"] = ShellBuiltinFunc(Jobs)
	AllBuiltins["history"] = ShellBuiltinFunc(History)
}
