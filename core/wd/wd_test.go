package wd

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestTracker(t *testing.T) {
	tracker := NewTracker(10)

	_, ok := tracker.Previous()
	assert.False(t, ok)

	assert.Nil(t, tracker.Remember("/tmp"))
	dir, ok := tracker.Previous()
	assert.True(t, ok)
	assert.Equal(t, "/tmp", dir)

	err := tracker.Remember("/" + strings.Repeat("a", 10))
	assert.True(t, errors.Is(err, ErrPathTooLong))

	dir, _ = tracker.Previous()
	assert.Equal(t, "/tmp", dir, "failed Remember must not change state")
}
