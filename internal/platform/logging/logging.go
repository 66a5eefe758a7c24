package logging

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// New builds the process logger. Output goes to stderr so command output on stdout stays clean.
func New(level string) *log.Logger {
	return NewWithWriter(os.Stderr, level)
}

func NewWithWriter(w io.Writer, level string) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	l.SetLevel(lvl)
	return l
}

// Discard is a logger for tests and for the TUI, where stderr would corrupt the screen.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
