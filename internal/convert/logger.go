package convert

// Logger receives leveled status messages from the Converter
type Logger interface {
	// Info reports progress and success
	Info(format string, args ...any)

	// Error reports failures
	Error(format string, args ...any)
}

// NopLogger discards all messages
type NopLogger struct{}

func (NopLogger) Info(string, ...any)  {}
func (NopLogger) Error(string, ...any) {}
