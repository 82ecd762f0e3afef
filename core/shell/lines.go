package shell

import (
	"bytes"
	"fmt"
	"io"

	"github.com/abiosoft/readline"
	"github.com/pkg/errors"
)

// LineSource supplies input lines to the interpreter loop.
type LineSource interface {
	// SetPrompt changes the prompt shown before the next line.
	SetPrompt(prompt string)
	// Readline shows the prompt and reads a line without its terminator.
	// It returns io.EOF once input ends.
	Readline() (string, error)
	Close() error
}

var _ LineSource = (*readline.Instance)(nil)

// NewReadlineSource creates an interactive line editor on the given
// terminal streams.
func NewReadlineSource(stdin io.ReadCloser, stdout, stderr io.Writer, isTerminal bool) (*readline.Instance, error) {
	cfg := &readline.Config{
		Stdin:  readline.NewCancelableStdin(stdin),
		Stdout: stdout,
		Stderr: stderr,
		FuncIsTerminal: func() bool {
			return isTerminal
		},
		// History is the job ledger, not the editor's.
		HistoryLimit: -1,
	}

	if err := cfg.Init(); err != nil {
		return nil, err
	}

	return readline.NewEx(cfg)
}

// ScannerSource reads lines from a non-interactive stream, e.g. a pipe or a
// script. It never reads past the end of the current line so the rest of the
// input is left for children that inherit the stream.
type ScannerSource struct {
	in     io.Reader
	out    io.Writer
	prompt string
	maxLen int
}

var _ LineSource = (*ScannerSource)(nil)

// NewScannerSource creates a ScannerSource that writes its prompt to out and
// accepts lines of up to maxLen bytes.
func NewScannerSource(in io.Reader, out io.Writer, maxLen int) *ScannerSource {
	return &ScannerSource{in: in, out: out, maxLen: maxLen}
}

// SetPrompt implements LineSource.SetPrompt.
func (s *ScannerSource) SetPrompt(prompt string) {
	s.prompt = prompt
}

// Readline implements LineSource.Readline. Lines longer than the limit are
// consumed and rejected with ErrLineTooLong.
func (s *ScannerSource) Readline() (string, error) {
	fmt.Fprint(s.out, s.prompt)

	var line bytes.Buffer
	overflow := false
	var b [1]byte
	for {
		n, err := s.in.Read(b[:])
		if n == 1 {
			switch {
			case b[0] == '\n' && overflow:
				return "", errors.Wrapf(ErrLineTooLong, "over %d bytes", s.maxLen)
			case b[0] == '\n':
				return string(bytes.TrimSuffix(line.Bytes(), []byte{'\r'})), nil
			case line.Len() < s.maxLen:
				line.WriteByte(b[0])
			default:
				overflow = true
			}
		}

		switch {
		case err == io.EOF && overflow:
			return "", errors.Wrapf(ErrLineTooLong, "over %d bytes", s.maxLen)
		case err == io.EOF && line.Len() > 0:
			// Unterminated last line.
			return line.String(), nil
		case err != nil:
			return "", err
		}
	}
}

// Close implements LineSource.Close.
func (s *ScannerSource) Close() error {
	return nil
}
