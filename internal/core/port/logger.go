package port

// Fields carries structured data into a log entry.
type Fields map[string]interface{}

// LoggerPort is the logging contract of the core. It keeps the use cases
// independent of the concrete logging backend.
type LoggerPort interface {
	Info(msg string, fields Fields)
	Warn(msg string, fields Fields)
	Error(msg string, err error, fields Fields)
	Debug(msg string, fields Fields)

	// WithFields returns a new logger with the fields pre-attached, useful
	// for per-request or per-use-case context.
	WithFields(fields Fields) LoggerPort
}
