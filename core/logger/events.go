package logger

// LogEntry is a single line in the event log. Exactly one of the event fields
// is set.
type LogEntry struct {
	TimestampMicros int64  `json:"timestamp_micros"`
	SessionID       string `json:"session_id,omitempty"`

	SessionStart *SessionStart `json:"session_start,omitempty"`
	RunCommand   *RunCommand   `json:"run_command,omitempty"`
	Builtin      *Builtin      `json:"builtin,omitempty"`
	Rejected     *Rejected     `json:"rejected,omitempty"`
	SessionEnd   *SessionEnd   `json:"session_end,omitempty"`
}

// LogType is implemented by every event that can be recorded.
type LogType interface {
	setOn(le *LogEntry)
}

// GetLogType returns the event held by the entry or nil.
func (le *LogEntry) GetLogType() LogType {
	switch {
	case le.SessionStart != nil:
		return le.SessionStart
	case le.RunCommand != nil:
		return le.RunCommand
	case le.Builtin != nil:
		return le.Builtin
	case le.Rejected != nil:
		return le.Rejected
	case le.SessionEnd != nil:
		return le.SessionEnd
	default:
		return nil
	}
}

// SessionStart is logged once when the interpreter starts reading input.
type SessionStart struct {
	PID         int    `json:"pid"`
	BinDir      string `json:"bin_dir"`
	Interactive bool   `json:"interactive"`
}

func (e *SessionStart) setOn(le *LogEntry) { le.SessionStart = e }

// RunCommand is logged when a child process was spawned and recorded.
type RunCommand struct {
	PID      int      `json:"pid"`
	Command  []string `json:"command"`
	Behavior string   `json:"behavior"`
	Mode     string   `json:"mode"`
}

func (e *RunCommand) setOn(le *LogEntry) { le.RunCommand = e }

// Builtin is logged when a built-in ran inside the interpreter.
type Builtin struct {
	Command []string `json:"command"`
	Error   string   `json:"error,omitempty"`
}

func (e *Builtin) setOn(le *LogEntry) { le.Builtin = e }

// Rejected is logged when a line or command couldn't be run.
type Rejected struct {
	Command []string `json:"command,omitempty"`
	Error   string   `json:"error"`
}

func (e *Rejected) setOn(le *LogEntry) { le.Rejected = e }

// SessionEnd is logged when the interpreter stops.
type SessionEnd struct {
	Reason string `json:"reason"`
	Status int    `json:"status"`
}

func (e *SessionEnd) setOn(le *LogEntry) { le.SessionEnd = e }
