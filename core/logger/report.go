package logger

import (
	"encoding/json"
	"io"
	"sort"
)

// ReadJSONLinesLog parses a newline delimited JSON log.
func ReadJSONLinesLog(r io.Reader, handler func(le *LogEntry)) error {
	decoder := json.NewDecoder(r)
	for decoder.More() {
		var logEntry LogEntry
		if err := decoder.Decode(&logEntry); err != nil {
			return err
		}

		handler(&logEntry)
	}
	return nil
}

// Report holds statistics about the logged events.
type Report struct {
	LogEntries     int `json:"log_entries"`
	InvalidEntries int `json:"unknown_log_entries,omitempty"`

	Sessions   SessionReport    `json:"session_report"`
	RunCommand RunCommandReport `json:"run_command_report"`
	Builtins   BuiltinReport    `json:"builtin_report"`
	Rejected   RejectedReport   `json:"rejected_report"`
}

func (r *Report) Update(le *LogEntry) {
	r.LogEntries++

	switch event := le.GetLogType().(type) {
	case *SessionStart:
		r.Sessions.Started++
	case *SessionEnd:
		r.Sessions.update(event)
	case *RunCommand:
		r.RunCommand.update(event)
	case *Builtin:
		r.Builtins.update(event)
	case *Rejected:
		r.Rejected.update(event)
	default:
		r.InvalidEntries++
	}
}

type SessionReport struct {
	Started int        `json:"started"`
	Ended   StrCounter `json:"ended"`
}

func (r *SessionReport) update(e *SessionEnd) {
	r.Ended.Increment(e.Reason)
}

type RunCommandReport struct {
	// Name of the command
	CommandNames StrCounter `json:"command_names"`
	// Foreground or background.
	Modes     StrCounter `json:"modes"`
	Behaviors StrCounter `json:"behaviors"`
}

func (r *RunCommandReport) update(rc *RunCommand) {
	if len(rc.Command) > 0 {
		r.CommandNames.Increment(rc.Command[0])
	}
	r.Modes.Increment(rc.Mode)
	r.Behaviors.Increment(rc.Behavior)
}

type BuiltinReport struct {
	CommandNames StrCounter `json:"command_names"`
	Failures     int        `json:"failures"`
}

func (r *BuiltinReport) update(b *Builtin) {
	if len(b.Command) > 0 {
		r.CommandNames.Increment(b.Command[0])
	}
	if b.Error != "" {
		r.Failures++
	}
}

type RejectedReport struct {
	Errors *PathCounter `json:"errors"`
}

func (r *RejectedReport) update(rj *Rejected) {
	if r.Errors == nil {
		r.Errors = NewPathCounter("command", "error")
	}

	name := ""
	if len(rj.Command) > 0 {
		name = rj.Command[0]
	}
	r.Errors.Increment(name, rj.Error)
}

// StrCounter counts the number of strings seen.
type StrCounter struct {
	internal map[string]int
}

// Increment adds one to the given key.
func (s *StrCounter) Increment(toAdd string) {
	if s.internal == nil {
		s.internal = make(map[string]int)
	}

	s.internal[toAdd]++
}

// Get returns the count for the key.
func (s *StrCounter) Get(key string) int {
	return s.internal[key]
}

// MarshalJSON implemnts custom JSON marshaler.
func (s StrCounter) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.internal)
}

func NewPathCounter(cols ...string) *PathCounter {
	return &PathCounter{
		cols:     cols,
		internal: make(map[string]int),
	}
}

// PathCounter counts the number of strings seen.
type PathCounter struct {
	cols     []string
	internal map[string]int
}

// Increment adds one to the given key.
func (ctr *PathCounter) Increment(toAdd ...string) {
	if len(toAdd) != len(ctr.cols) {
		panic("wrong number of columns to add")
	}

	ctr.internal[toKey(toAdd...)]++
}

// MarshalJSON implemnts custom JSON marshaler.
func (ctr *PathCounter) MarshalJSON() ([]byte, error) {
	type Count struct {
		Count  int               `json:"count"`
		Fields map[string]string `json:"event"`
		Path   string            `json:"-"`
	}

	out := []Count{}
	for k, v := range ctr.internal {
		count := Count{
			Count:  v,
			Path:   k,
			Fields: make(map[string]string),
		}

		splitPath := fromKey(k)
		for colNum, colVal := range ctr.cols {
			count.Fields[colVal] = splitPath[colNum]
		}

		out = append(out, count)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Path < out[j].Path
		}
		return out[i].Count > out[j].Count
	})

	return json.Marshal(out)
}

func toKey(vals ...string) string {
	key, _ := json.Marshal(vals)
	return string(key)
}

func fromKey(key string) (out []string) {
	json.Unmarshal([]byte(key), &out)
	return
}
