package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJsonLinesRoundTrip(t *testing.T) {
	buf := &bytes.Buffer{}
	base := NewJsonLinesLogRecorder(buf)
	base.now = func() time.Time {
		return time.Date(2006, 1, 2, 3, 4, 5, 0, time.UTC)
	}
	session := base.NewSession()
	assert.NotEmpty(t, session.SessionID())

	require.Nil(t, session.Record(&SessionStart{PID: 10, BinDir: "/bin/"}))
	require.Nil(t, session.Record(&RunCommand{PID: 11, Command: []string{"ls", "-l"}, Behavior: "external", Mode: "foreground"}))
	require.Nil(t, session.Record(&RunCommand{PID: 12, Command: []string{"sleep", "5"}, Behavior: "external", Mode: "background"}))
	require.Nil(t, session.Record(&Builtin{Command: []string{"cd", "/nope"}, Error: "No such file or directory"}))
	require.Nil(t, session.Record(&Rejected{Command: []string{"cat"}, Error: "too many words"}))
	require.Nil(t, session.Record(&SessionEnd{Reason: "exit"}))

	assert.Equal(t, 6, strings.Count(buf.String(), "\n"))

	var entries []*LogEntry
	require.Nil(t, ReadJSONLinesLog(bytes.NewReader(buf.Bytes()), func(le *LogEntry) {
		entries = append(entries, le)
	}))
	require.Len(t, entries, 6)

	for _, le := range entries {
		assert.Equal(t, session.SessionID(), le.SessionID)
		assert.Equal(t, int64(1136171045000000), le.TimestampMicros)
		assert.NotNil(t, le.GetLogType())
	}

	assert.Equal(t, []string{"ls", "-l"}, entries[1].RunCommand.Command)
	assert.Equal(t, "exit", entries[5].SessionEnd.Reason)
}

func TestReport(t *testing.T) {
	var report Report
	for _, le := range []*LogEntry{
		{SessionStart: &SessionStart{}},
		{RunCommand: &RunCommand{Command: []string{"ls"}, Mode: "foreground", Behavior: "external"}},
		{RunCommand: &RunCommand{Command: []string{"ls"}, Mode: "background", Behavior: "external"}},
		{RunCommand: &RunCommand{Command: []string{"jobs"}, Mode: "foreground", Behavior: "jobs"}},
		{Builtin: &Builtin{Command: []string{"cd"}}},
		{Builtin: &Builtin{Command: []string{"cd", "-"}, Error: "OLDPWD not set"}},
		{Rejected: &Rejected{Command: []string{"ls"}, Error: "capacity exceeded"}},
		{SessionEnd: &SessionEnd{Reason: "eof"}},
		{},
	} {
		report.Update(le)
	}

	assert.Equal(t, 9, report.LogEntries)
	assert.Equal(t, 1, report.InvalidEntries)
	assert.Equal(t, 1, report.Sessions.Started)
	assert.Equal(t, 1, report.Sessions.Ended.Get("eof"))
	assert.Equal(t, 2, report.RunCommand.CommandNames.Get("ls"))
	assert.Equal(t, 2, report.RunCommand.Modes.Get("foreground"))
	assert.Equal(t, 2, report.Builtins.CommandNames.Get("cd"))
	assert.Equal(t, 1, report.Builtins.Failures)

	out, err := json.Marshal(&report)
	require.Nil(t, err)
	assert.Contains(t, string(out), `"event":{"command":"ls","error":"capacity exceeded"}`)
}

func TestNopLogger(t *testing.T) {
	session := NewNopLogger().NewSession()
	assert.Nil(t, session.Record(&SessionEnd{Reason: "exit"}))
}
