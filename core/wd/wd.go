// Package wd remembers the previous working directory for `cd -`.
package wd

import "github.com/pkg/errors"

// ErrPathTooLong is returned when a directory is longer than the tracker
// can hold.
var ErrPathTooLong = errors.New("directory name is too long")

// Tracker holds the previous working directory of a session.
type Tracker struct {
	max  int
	prev string
}

// NewTracker creates an unset tracker holding paths of up to max bytes.
func NewTracker(max int) *Tracker {
	return &Tracker{max: max}
}

// Previous returns the remembered directory, ok is false if none is set.
func (t *Tracker) Previous() (dir string, ok bool) {
	return t.prev, t.prev != ""
}

// Remember stores dir as the previous directory.
func (t *Tracker) Remember(dir string) error {
	if len(dir) > t.max {
		return errors.Wrapf(ErrPathTooLong, "%d > %d bytes", len(dir), t.max)
	}
	t.prev = dir
	return nil
}
