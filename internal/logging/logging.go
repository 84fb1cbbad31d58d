// Package logging provides the console logger used by the command-line tools.
package logging

import (
	"io"
	"log"
	"os"
)

// Logger writes leveled messages to a standard library logger. It satisfies
// suffixtree.Logger.
type Logger struct {
	logger *log.Logger
	debug  bool
	trace  bool
}

// NewStdLogger logs to stderr. time adds a timestamp to every line.
func NewStdLogger(time, debug, trace bool) *Logger {
	return New(os.Stderr, time, debug, trace)
}

// New logs to w.
func New(w io.Writer, time, debug, trace bool) *Logger {
	flags := 0
	if time {
		flags = log.LstdFlags | log.Lmicroseconds
	}
	return &Logger{
		logger: log.New(w, "", flags),
		debug:  debug,
		trace:  trace,
	}
}

func (l *Logger) Noticef(format string, v ...interface{}) {
	l.logger.Printf("[INF] "+format, v...)
}

func (l *Logger) Warnf(format string, v ...interface{}) {
	l.logger.Printf("[WRN] "+format, v...)
}

func (l *Logger) Errorf(format string, v ...interface{}) {
	l.logger.Printf("[ERR] "+format, v...)
}

func (l *Logger) Debugf(format string, v ...interface{}) {
	if l.debug {
		l.logger.Printf("[DBG] "+format, v...)
	}
}

func (l *Logger) Tracef(format string, v ...interface{}) {
	if l.trace {
		l.logger.Printf("[TRC] "+format, v...)
	}
}

// TraceEnabled reports whether Tracef produces output, so callers can skip
// building trace messages altogether.
func (l *Logger) TraceEnabled() bool {
	return l.trace
}
