// Package ports defines the Logger abstraction used across the pipeline.
package ports

// LogLevel orders log messages by severity.
type LogLevel int

const (
	// LevelDebug is the most verbose level, for component internals.
	LevelDebug LogLevel = iota
	// LevelInfo is for pipeline-level progress updates.
	LevelInfo
	// LevelWarn is for recoverable problems that don't stop the run.
	LevelWarn
	// LevelError is for unrecoverable problems that abort the run.
	LevelError
	// LevelQuiet suppresses all log output.
	LevelQuiet
)

// String returns the lowercase name of the level.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelQuiet:
		return "quiet"
	default:
		return "unknown"
	}
}

// ParseLogLevel maps a level name to its LogLevel.
// Unknown names fall back to LevelInfo.
func ParseLogLevel(s string) LogLevel {
	switch s {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	case "quiet":
		return LevelQuiet
	default:
		return LevelInfo
	}
}

// Logger is the leveled logging interface shared by every component.
// Message strings are translation keys; adapters may localize them
// before output.
type Logger interface {
	// Debug logs component-level internals.
	Debug(msg string, args ...interface{})

	// Info logs pipeline progress.
	Info(msg string, args ...interface{})

	// Warn logs recoverable problems.
	Warn(msg string, args ...interface{})

	// Error logs unrecoverable problems.
	Error(msg string, args ...interface{})

	// WithComponent returns a new Logger that prefixes messages with the
	// component name. Component loggers are typically used at debug level.
	WithComponent(component string) Logger
}
