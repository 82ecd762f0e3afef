package ledger

import "github.com/pkg/errors"

var (
	// ErrCapacityExceeded is returned when appending to a full ledger.
	ErrCapacityExceeded = errors.New("passed max allowed commands")

	// ErrWordTooLong is returned when a word is longer than the word limit.
	ErrWordTooLong = errors.New("word is too long")

	// ErrCommandTooLong is returned when the rebuilt command line is longer
	// than the command limit.
	ErrCommandTooLong = errors.New("command is too long")

	// ErrEmptyCommand is returned when there are no words to record.
	ErrEmptyCommand = errors.New("empty command")
)
