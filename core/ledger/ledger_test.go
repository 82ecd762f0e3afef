package ledger

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLimits = Limits{
	Capacity:      100,
	MaxWordLen:    100,
	MaxCommandLen: 100 * 101,
}

func TestAppendRoundTrip(t *testing.T) {
	l := New(testLimits, StaticProber())

	var want []Record
	for i := 0; i < testLimits.Capacity; i++ {
		words := []string{"echo", fmt.Sprintf("%d", i), `"quoted"`}
		require.Nil(t, l.Append(1000+i, words))
		want = append(want, Record{PID: 1000 + i, Command: strings.Join(words, " ")})
	}

	assert.Equal(t, testLimits.Capacity, l.Len())
	assert.Equal(t, want, l.Records())

	entries := l.List()
	require.Len(t, entries, len(want))
	for i, e := range entries {
		assert.Equal(t, want[i], e.Record)
		assert.False(t, e.Alive)
	}
}

func TestAppendCapacity(t *testing.T) {
	limits := testLimits
	limits.Capacity = 3
	l := New(limits, StaticProber())

	for i := 0; i < limits.Capacity; i++ {
		require.Nil(t, l.Append(i+1, []string{"ls"}))
	}

	assert.True(t, errors.Is(l.Check([]string{"ls"}), ErrCapacityExceeded))
	err := l.Append(99, []string{"ls"})
	assert.True(t, errors.Is(err, ErrCapacityExceeded))
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, 3, l.Cap())
	for _, r := range l.Records() {
		assert.NotEqual(t, 99, r.PID)
	}
}

func TestAppendRejects(t *testing.T) {
	cases := map[string]struct {
		words []string
		err   error
	}{
		"no words":     {nil, ErrEmptyCommand},
		"blank word":   {[]string{""}, ErrEmptyCommand},
		"long word":    {[]string{"echo", strings.Repeat("a", 101)}, ErrWordTooLong},
		"long command": {[]string{"echo", strings.Repeat("a", 60), strings.Repeat("b", 60)}, ErrCommandTooLong},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			limits := testLimits
			limits.MaxCommandLen = 100
			l := New(limits, StaticProber())

			assert.True(t, errors.Is(l.Check(tc.words), tc.err))
			err := l.Append(1, tc.words)
			assert.True(t, errors.Is(err, tc.err), "got %v", err)
			assert.Equal(t, 0, l.Len())
		})
	}
}

func TestJoinAtLimits(t *testing.T) {
	limits := Limits{Capacity: 1, MaxWordLen: 3, MaxCommandLen: 7}

	command, err := Join([]string{"abc", "def"}, limits)
	assert.Nil(t, err)
	assert.Equal(t, "abc def", command)

	_, err = Join([]string{"abcd"}, limits)
	assert.True(t, errors.Is(err, ErrWordTooLong))

	_, err = Join([]string{"abc", "de", "f"}, limits)
	assert.True(t, errors.Is(err, ErrCommandTooLong))
}

func TestListProbes(t *testing.T) {
	l := New(testLimits, StaticProber(2))
	require.Nil(t, l.Append(1, []string{"ls"}))
	require.Nil(t, l.Append(2, []string{"sleep", "100"}))

	assert.False(t, l.IsAlive(1))
	assert.True(t, l.IsAlive(2))

	entries := l.List()
	assert.Equal(t, "DONE", entries[0].Status())
	assert.Equal(t, "RUNNING", entries[1].Status())
}

func TestProcessGroupProber(t *testing.T) {
	assert.True(t, ProcessGroupProber(os.Getpid()))
	assert.False(t, ProcessGroupProber(0))
	assert.False(t, ProcessGroupProber(-1))
}

func TestFormat(t *testing.T) {
	g := goldie.New(
		t,
		goldie.WithFixtureDir(filepath.Join("testdata", "golden")),
		goldie.WithDiffEngine(goldie.ColoredDiff),
		goldie.WithTestNameForDir(true),
	)

	entries := []Entry{
		{Record: Record{PID: 101, Command: "cd /tmp"}, Alive: false},
		{Record: Record{PID: 102, Command: "sleep 100"}, Alive: true},
		{Record: Record{PID: 103, Command: "ls -l"}, Alive: false},
		{Record: Record{PID: 104, Command: "jobs"}, Alive: false},
		{Record: Record{PID: 105, Command: "sleep 200"}, Alive: true},
	}

	t.Run("jobs", func(t *testing.T) {
		buf := &bytes.Buffer{}
		require.Nil(t, WriteJobs(buf, entries))
		g.Assert(t, "jobs", buf.Bytes())
	})

	t.Run("history", func(t *testing.T) {
		buf := &bytes.Buffer{}
		require.Nil(t, WriteHistory(buf, entries, 200))
		g.Assert(t, "history", buf.Bytes())
	})

	t.Run("history-empty", func(t *testing.T) {
		buf := &bytes.Buffer{}
		require.Nil(t, WriteHistory(buf, nil, 200))
		g.Assert(t, "history-empty", buf.Bytes())
	})
}

func ExampleWriteHistory() {
	l := New(testLimits, StaticProber(7))
	l.Append(5, []string{"cd", "/tmp"})
	l.Append(7, []string{"sleep", "10"})

	WriteHistory(os.Stdout, l.List(), 9)

	// Output: 5 cd /tmp DONE
	// 7 sleep 10 RUNNING
	// 9 history RUNNING
}

func TestSnapshot(t *testing.T) {
	records := []Record{
		{PID: 1, Command: "cd /tmp"},
		{PID: 65535, Command: "echo \"hi there\""},
		{PID: 3, Command: strings.Repeat("x", 500)},
	}

	got, err := UnmarshalSnapshot(MarshalSnapshot(records))
	require.Nil(t, err)
	assert.Equal(t, records, got)

	t.Run("empty", func(t *testing.T) {
		got, err := UnmarshalSnapshot(MarshalSnapshot(nil))
		assert.Nil(t, err)
		assert.Empty(t, got)
	})

	t.Run("truncated", func(t *testing.T) {
		encoded := MarshalSnapshot(records)
		_, err := UnmarshalSnapshot(encoded[:len(encoded)-3])
		assert.NotNil(t, err)
	})
}
