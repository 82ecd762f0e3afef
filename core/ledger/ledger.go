// Package ledger keeps the bounded record of every command a session spawned.
package ledger

import (
	"strings"

	"github.com/pkg/errors"
)

// Separator joins words into a command line.
const Separator = " "

// Limits bounds what a Ledger will accept.
type Limits struct {
	// Capacity is the maximum number of records.
	Capacity int
	// MaxWordLen is the maximum length of a single word.
	MaxWordLen int
	// MaxCommandLen is the maximum length of a rebuilt command line.
	MaxCommandLen int
}

// Record is one spawned command.
type Record struct {
	// PID of the process that executed the command.
	PID int
	// Command is the command line with words separated by single spaces.
	Command string
}

// Entry is a Record with the result of its liveness probe.
type Entry struct {
	Record
	Alive bool
}

// Status is RUNNING or DONE depending on Alive.
func (e Entry) Status() string {
	if e.Alive {
		return "RUNNING"
	}
	return "DONE"
}

// Ledger is an append only list of records in spawn order. It isn't safe for
// concurrent use; the interpreter loop is its only writer.
type Ledger struct {
	limits  Limits
	probe   Prober
	records []Record
}

// New creates an empty ledger. A nil probe uses ProcessGroupProber.
func New(limits Limits, probe Prober) *Ledger {
	if probe == nil {
		probe = ProcessGroupProber
	}

	return &Ledger{
		limits:  limits,
		probe:   probe,
		records: make([]Record, 0, limits.Capacity),
	}
}

// Len returns the number of records.
func (l *Ledger) Len() int {
	return len(l.records)
}

// Cap returns the maximum number of records.
func (l *Ledger) Cap() int {
	return l.limits.Capacity
}

// Check returns the error Append would return for words without changing
// the ledger, so a command that can't be recorded is never started.
func (l *Ledger) Check(words []string) error {
	_, err := l.join(words)
	return err
}

// Append records that pid executed words. The ledger is unchanged on error.
func (l *Ledger) Append(pid int, words []string) error {
	command, err := l.join(words)
	if err != nil {
		return err
	}

	l.records = append(l.records, Record{PID: pid, Command: command})
	return nil
}

func (l *Ledger) join(words []string) (string, error) {
	if len(l.records) >= l.limits.Capacity {
		return "", ErrCapacityExceeded
	}
	return Join(words, l.limits)
}

// Records returns a copy of the records in insertion order.
func (l *Ledger) Records() []Record {
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

// IsAlive reports whether pid still looks like a running process.
func (l *Ledger) IsAlive(pid int) bool {
	return l.probe(pid)
}

// List returns every record with its current liveness.
func (l *Ledger) List() []Entry {
	return Probe(l.records, l.probe)
}

// Probe pairs each record with the result of probing its PID.
func Probe(records []Record, probe Prober) []Entry {
	out := make([]Entry, 0, len(records))
	for _, r := range records {
		out = append(out, Entry{Record: r, Alive: probe(r.PID)})
	}
	return out
}

// Join rebuilds a command line from its words, enforcing the word and command
// limits.
func Join(words []string, limits Limits) (string, error) {
	if len(words) == 0 {
		return "", ErrEmptyCommand
	}

	var sb strings.Builder
	for _, word := range words {
		if len(word) > limits.MaxWordLen {
			return "", errors.Wrapf(ErrWordTooLong, "%.20q", word)
		}

		sb.WriteString(word)
		sb.WriteString(Separator)
	}

	command := strings.TrimSuffix(sb.String(), Separator)
	switch {
	case command == "":
		return "", ErrEmptyCommand
	case len(command) > limits.MaxCommandLen:
		return "", ErrCommandTooLong
	}

	return command, nil
}
