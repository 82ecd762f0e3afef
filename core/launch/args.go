package launch

import (
	getopt "github.com/pborman/getopt/v2"
	"github.com/pkg/errors"
)

// ChildCommand is the hidden sub-command the interpreter binary is
// re-executed with to take the child role.
const ChildCommand = "__child"

const (
	flagBehavior    = "behavior"
	flagBinDir      = "bin-dir"
	flagStripQuotes = "strip-quotes"
)

// ChildOptions is the part of the session configuration a child needs.
type ChildOptions struct {
	// BinDir is prefixed to external command names.
	BinDir string
	// StripQuotesFor lists commands whose words have '"' removed.
	StripQuotesFor []string
}

// Args builds the arguments, after the program name, that make a
// re-executed binary take the child role for b and words.
func (o ChildOptions) Args(b Behavior, words []string) []string {
	args := []string{
		ChildCommand,
		"--" + flagBehavior + "=" + b.Name(),
		"--" + flagBinDir + "=" + o.BinDir,
	}
	for _, name := range o.StripQuotesFor {
		args = append(args, "--"+flagStripQuotes+"="+name)
	}
	args = append(args, "--")
	return append(args, words...)
}

// ShouldStripQuotes reports whether name is one of StripQuotesFor.
func (o ChildOptions) ShouldStripQuotes(name string) bool {
	for _, n := range o.StripQuotesFor {
		if n == name {
			return true
		}
	}
	return false
}

// ParseChildArgs is the inverse of ChildOptions.Args. args starts with the
// ChildCommand.
func ParseChildArgs(args []string) (ChildRole, ChildOptions, error) {
	opts := getopt.New()
	behaviorOpt := opts.StringLong(flagBehavior, 0, "", "what the child does")
	binDirOpt := opts.StringLong(flagBinDir, 0, "/bin/", "directory external commands live in")
	stripOpt := opts.ListLong(flagStripQuotes, 0, "commands that have quotes removed")

	if err := opts.Getopt(args, nil); err != nil {
		return ChildRole{}, ChildOptions{}, errors.Wrap(err, "parsing child arguments")
	}

	behavior, err := ParseBehavior(*behaviorOpt)
	if err != nil {
		return ChildRole{}, ChildOptions{}, err
	}

	role := ChildRole{Behavior: behavior, Words: opts.Args()}
	childOpts := ChildOptions{BinDir: *binDirOpt, StripQuotesFor: *stripOpt}
	return role, childOpts, nil
}
