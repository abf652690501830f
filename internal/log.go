package internal

import (
	"io"
	"log"
	"os"
	"strings"
)

// LogLevel is the verbosity of a Logger; higher levels print more
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
	LogLevelTrace
)

var levelNames = [...]string{"ERROR", "WARN", "INFO", "DEBUG", "TRACE"}

func (l LogLevel) String() string {
	if l < LogLevelError || l > LogLevelTrace {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLogLevel maps a LOG_LEVEL value to a level, defaulting to INFO
func ParseLogLevel(s string) LogLevel {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i, name := range levelNames {
		if s == name {
			return LogLevel(i)
		}
	}
	return LogLevelInfo
}

// Logger writes leveled progress lines. Loggers derived with With share
// the output and the level of their parent.
type Logger struct {
	level  LogLevel
	prefix string
	out    *log.Logger
}

// NewLogger logs to stderr with timestamps
func NewLogger(level LogLevel) *Logger {
	return &Logger{level: level, out: log.New(os.Stderr, "", log.LstdFlags)}
}

// NewLoggerTo logs to w without timestamps, mostly for tests
func NewLoggerTo(w io.Writer, level LogLevel) *Logger {
	return &Logger{level: level, out: log.New(w, "", 0)}
}

// DefaultLogger is used by components constructed without a logger
var DefaultLogger = NewLogger(ParseLogLevel(os.Getenv("LOG_LEVEL")))

// With returns a logger that tags every line with component
func (l *Logger) With(component string) *Logger {
	return &Logger{level: l.level, prefix: l.prefix + "[" + component + "] ", out: l.out}
}

// Level returns the verbosity of the logger
func (l *Logger) Level() LogLevel { return l.level }

func (l *Logger) logf(level LogLevel, format string, args ...interface{}) {
	if level > l.level {
		return
	}
	l.out.Printf("["+level.String()+"] "+l.prefix+format, args...)
}

func (l *Logger) Error(format string, args ...interface{}) { l.logf(LogLevelError, format, args...) }

func (l *Logger) Warn(format string, args ...interface{}) { l.logf(LogLevelWarn, format, args...) }

func (l *Logger) Info(format string, args ...interface{}) { l.logf(LogLevelInfo, format, args...) }

func (l *Logger) Debug(format string, args ...interface{}) { l.logf(LogLevelDebug, format, args...) }

func (l *Logger) Trace(format string, args ...interface{}) { l.logf(LogLevelTrace, format, args...) }
