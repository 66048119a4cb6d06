// Package logger provides the structured logger used by the processor and the CLI.
package logger

// Fields holds the key/value pairs attached to a log entry.
type Fields map[string]interface{}

// Logger provides structured logging with a component name and extra fields.
type Logger interface {
	Info(component, message string, fields Fields)
	Error(component string, err error, fields Fields)
	Warning(component, message string, fields Fields)
	Debug(component, message string, fields Fields)
}

type nop struct{}

func (nop) Info(string, string, Fields)    {}
func (nop) Error(string, error, Fields)    {}
func (nop) Warning(string, string, Fields) {}
func (nop) Debug(string, string, Fields)   {}

// Nop returns a logger discarding every entry.
func Nop() Logger { return nop{} }
