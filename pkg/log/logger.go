package log

// Logger is the interface capture sinks implement. Pass nil or NoopLogger
// to disable capture.
type Logger interface {
	// Log records a protocol event. Implementations must be safe for
	// concurrent use and should return quickly; blocking stalls the parse
	// loop.
	Log(event Event)
}

// NoopLogger discards all events. Safe for concurrent use as a zero value.
type NoopLogger struct{}

// Log discards the event.
func (NoopLogger) Log(Event) {}

// Compile-time interface satisfaction check.
var _ Logger = NoopLogger{}
