package ledger

import (
	"fmt"
	"io"
)

// HistoryCommand is the command line of the synthetic last history line.
const HistoryCommand = "history"

// WriteJobs writes "<pid> <command>" for every live entry.
func WriteJobs(w io.Writer, entries []Entry) error {
	for _, e := range entries {
		if !e.Alive {
			continue
		}
		if _, err := fmt.Fprintf(w, "%d %s\n", e.PID, e.Command); err != nil {
			return err
		}
	}
	return nil
}

// WriteHistory writes "<pid> <command> <RUNNING|DONE>" for every entry
// followed by a RUNNING line for the history command itself, attributed to
// selfPID. The ledger doesn't hold that line until the parent records the
// finished child.
func WriteHistory(w io.Writer, entries []Entry, selfPID int) error {
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%d %s %s\n", e.PID, e.Command, e.Status()); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "%d %s %s\n", selfPID, HistoryCommand, Entry{Alive: true}.Status())
	return err
}
