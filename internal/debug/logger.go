package debug

import (
	"io"
	"log"
	"os"
)

// Logger writes diagnostics to a file when debug mode is on and discards
// them otherwise. The terminal belongs to the UI, so nothing goes to stderr.
type Logger struct {
	enabled bool
	out     *log.Logger
	file    *os.File
}

func NewLogger(enabled bool, path string) *Logger {
	l := &Logger{enabled: enabled, out: log.New(io.Discard, "", log.LstdFlags)}
	if !enabled {
		return l
	}

	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err == nil {
		l.file = logFile
		l.out.SetOutput(logFile)
	}
	l.out.Printf("=== DEBUG MODE ENABLED ===")
	return l
}

// NewWriterLogger logs to w. Used by tests and the headless commands.
func NewWriterLogger(w io.Writer) *Logger {
	return &Logger{enabled: true, out: log.New(w, "", 0)}
}

func (d *Logger) Enabled() bool {
	return d != nil && d.enabled
}

func (d *Logger) Printf(format string, args ...interface{}) {
	if d.Enabled() {
		d.out.Printf(format, args...)
	}
}

func (d *Logger) Println(args ...interface{}) {
	if d.Enabled() {
		d.out.Println(args...)
	}
}

func (d *Logger) Close() error {
	if d == nil || d.file == nil {
		return nil
	}
	return d.file.Close()
}
