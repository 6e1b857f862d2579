// Package mrlog is a minimal leveled wrapper over the standard library
// logger, used by the demo client. The core engine stays silent on its
// happy path and never imports this package.
package mrlog

import (
	"log"
	"os"
)

// Logger wraps a *log.Logger with leveled prefixes.
type Logger struct {
	l *log.Logger
}

// New returns a Logger writing to stderr with file:line annotations.
func New() *Logger {
	return &Logger{l: log.New(os.Stderr, "", log.Lshortfile)}
}

func (lg *Logger) Debugf(format string, args ...any) {
	lg.l.Printf("DEBUG "+format, args...)
}

func (lg *Logger) Infof(format string, args ...any) {
	lg.l.Printf("INFO "+format, args...)
}

func (lg *Logger) Errorf(format string, args ...any) {
	lg.l.Printf("ERROR "+format, args...)
}
