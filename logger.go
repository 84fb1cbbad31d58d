package suffixtree

// Logger receives diagnostics from tree construction. The method set matches
// the logger used by nats-server, so its loggers can be passed in directly.
//
// If the logger also implements TraceEnabled() bool, per-extension tracing is
// only produced when it returns true.
type Logger interface {
	Noticef(format string, v ...interface{})
	Warnf(format string, v ...interface{})
	Debugf(format string, v ...interface{})
	Tracef(format string, v ...interface{})
}
