package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/linuxmatters/wav2mp3/internal/cli"
)

// Sender is the part of *tea.Program the Logger needs
type Sender interface {
	Send(msg tea.Msg)
}

// logLine is shown above the progress box
type logLine string

// Logger shows converter messages above the running progress UI instead
// of writing to the terminal underneath it. Once the program has exited,
// messages are dropped rather than blocking the caller.
type Logger struct {
	s Sender
}

// NewLogger returns a Logger sending through s
func NewLogger(s Sender) *Logger {
	return &Logger{s: s}
}

// Info prints an informational line
func (l *Logger) Info(format string, args ...any) {
	l.s.Send(logLine(cli.KeyStyle.Render("•") + " " + fmt.Sprintf(format, args...)))
}

// Error prints an error line
func (l *Logger) Error(format string, args ...any) {
	l.s.Send(logLine(cli.ErrorStyle.Render("Error:") + " " + fmt.Sprintf(format, args...)))
}
