package logging

import (
	"fmt"
	"log"
	"os"
)

// Logger is a simple console logger shared across the service.
type Logger struct {
	*log.Logger
}

// NewLogger creates a new Logger writing to stdout.
func NewLogger() *Logger {
	return &Logger{
		Logger: log.New(os.Stdout, "", log.LstdFlags),
	}
}

// Info logs an informational message followed by key/value pairs.
func (l *Logger) Info(msg string, args ...interface{}) {
	l.Print("INFO: " + msg + kv(args))
}

// Warn logs a warning message followed by key/value pairs.
func (l *Logger) Warn(msg string, args ...interface{}) {
	l.Print("WARN: " + msg + kv(args))
}

// Error logs an error message followed by key/value pairs.
func (l *Logger) Error(msg string, args ...interface{}) {
	l.Print("ERROR: " + msg + kv(args))
}

// Debug logs a debug message followed by key/value pairs.
func (l *Logger) Debug(msg string, args ...interface{}) {
	l.Print("DEBUG: " + msg + kv(args))
}

func kv(args []interface{}) string {
	if len(args) == 0 {
		return ""
	}
	out := ""
	for i := 0; i+1 < len(args); i += 2 {
		out += fmt.Sprintf(" %v=%v", args[i], args[i+1])
	}
	if len(args)%2 != 0 {
		out += fmt.Sprintf(" %v", args[len(args)-1])
	}
	return out
}
