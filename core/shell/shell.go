// Package shell implements the interpreter loop: it reads lines, splits them
// into words and dispatches them to a built-in or the launcher.
package shell

import (
	"fmt"
	"io"
	"log"

	"github.com/abiosoft/readline"
	"github.com/fatih/color"
	"github.com/josephlewis42/jobsh/core/config"
	"github.com/josephlewis42/jobsh/core/launch"
	"github.com/josephlewis42/jobsh/core/ledger"
	"github.com/josephlewis42/jobsh/core/logger"
	"github.com/josephlewis42/jobsh/core/vos"
	"github.com/josephlewis42/jobsh/core/wd"
	"github.com/pkg/errors"
)

// Shell is a single interpreter session.
type Shell struct {
	VirtualOS vos.VOS
	Config    *config.Configuration
	Ledger    *ledger.Ledger
	Launcher  *launch.Launcher
	Tracker   *wd.Tracker
	Tokenizer Tokenizer
	Lines     LineSource
	Events    *logger.SessionLogger

	// Interactive is reported in the session_start event.
	Interactive bool

	promptColor *color.Color
	errColor    *color.Color

	exited     bool
	exitStatus int
}

// New creates a session that reads from lines and starts children with
// spawner.
func New(virtOS vos.VOS, cfg *config.Configuration, spawner launch.Spawner, lines LineSource, events *logger.SessionLogger) *Shell {
	l := ledger.New(ledger.Limits{
		Capacity:      cfg.MaxCommands,
		MaxWordLen:    cfg.MaxWordLen,
		MaxCommandLen: cfg.MaxCommandLen,
	}, nil)

	return &Shell{
		VirtualOS: virtOS,
		Config:    cfg,
		Ledger:    l,
		Launcher:  launch.NewLauncher(spawner, l),
		Tracker:   wd.NewTracker(cfg.MaxDirLen),
		Tokenizer: Tokenizer{
			MaxWords:   cfg.MaxWords,
			MaxWordLen: cfg.MaxWordLen,
		},
		Lines:  lines,
		Events: events,

		promptColor: newColor(cfg.Color, color.FgGreen, color.Bold),
		errColor:    newColor(cfg.Color, color.FgRed),
	}
}

func newColor(mode string, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	switch mode {
	case config.ColorAlways:
		c.EnableColor()
	case config.ColorNever:
		c.DisableColor()
	}
	return c
}

// ChildOptions returns the settings children of this session run with.
func ChildOptions(cfg *config.Configuration) launch.ChildOptions {
	return launch.ChildOptions{
		BinDir:         cfg.BinDir,
		StripQuotesFor: cfg.StripQuotesFor,
	}
}

// Prompt is shown before each line is read.
func (s *Shell) Prompt() string {
	return s.promptColor.Sprint(s.Config.Prompt)
}

// Exit ends the session with the given status once the current command
// returns.
func (s *Shell) Exit(status int) {
	s.exited = true
	s.exitStatus = status
}

// Run reads and executes lines until exit is called or input ends. It returns
// the session's exit status.
func (s *Shell) Run() int {
	s.record(&logger.SessionStart{
		PID:         s.VirtualOS.Getpid(),
		BinDir:      s.Config.BinDir,
		Interactive: s.Interactive,
	})

	for !s.exited {
		s.Lines.SetPrompt(s.Prompt())
		line, err := s.Lines.Readline()

		switch {
		case err == io.EOF:
			s.Exit(0)
			s.record(&logger.SessionEnd{Reason: "eof", Status: s.exitStatus})
			return s.exitStatus

		case err == readline.ErrInterrupt:
			// ^C discards the line being edited.
			continue

		case errors.Is(err, ErrLineTooLong):
			s.reject(nil, err)
			continue

		case err != nil:
			s.printError("read", err)
			s.Exit(1)
			s.record(&logger.SessionEnd{Reason: "input error", Status: s.exitStatus})
			return s.exitStatus

		default:
			s.Interpret(line)
		}
	}

	s.record(&logger.SessionEnd{Reason: "exit", Status: s.exitStatus})
	return s.exitStatus
}

// Interpret runs a single input line. Blank lines do nothing.
func (s *Shell) Interpret(line string) int {
	words, err := s.Tokenizer.Split(line)
	if err != nil {
		s.reject(nil, err)
		return 1
	}

	if len(words) == 0 {
		return 0
	}

	return s.Dispatch(words)
}

func (s *Shell) printError(name string, err error) {
	fmt.Fprintln(s.VirtualOS.Stderr(), s.errColor.Sprintf("%s: %v", name, err))
}

// reject reports a command that couldn't run at all.
func (s *Shell) reject(words []string, err error) {
	name := "jobsh"
	if len(words) > 0 {
		name = words[0]
	}
	s.printError(name, err)
	s.record(&logger.Rejected{Command: words, Error: err.Error()})
}

func (s *Shell) record(event logger.LogType) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Record(event); err != nil {
		log.Printf("recording event: %v", err)
	}
}
