package shell

import "github.com/pkg/errors"

var (
	// ErrTooManyWords is returned for lines with more words than allowed.
	ErrTooManyWords = errors.New("too many words")
	// ErrSyntax is returned for lines that can't be split.
	ErrSyntax = errors.New("syntax error: unterminated quote")

	// ErrTooManyArgs is returned by built-ins given extra arguments.
	ErrTooManyArgs = errors.New("too many arguments")
	// ErrOldpwdNotSet is returned by `cd -` before any successful cd.
	ErrOldpwdNotSet = errors.New("OLDPWD not set")
	// ErrNoSuchDirectory is returned by cd for targets that aren't
	// directories.
	ErrNoSuchDirectory = errors.New("No such file or directory")
)

// ErrLineTooLong is returned by line sources for lines over the limit.
var ErrLineTooLong = errors.New("line too long")
