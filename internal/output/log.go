// Package output provides logging and terminal rendering for the uamc CLI.
package output

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// logger is the package-level logger. Use the Debug/Info/Warn/Error helpers
// or a scoped logger from TargetLogger/ToolLogger.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	TimeFormat:      "15:04:05",
})

// detailsWriter receives multi-line error details. It follows the logger.
var detailsWriter io.Writer = os.Stderr

// LogConfig configures the global logger.
type LogConfig struct {
	// Verbose enables debug level, caller reporting and timestamps.
	Verbose bool

	// Timestamps toggles timestamps. Nil means on. Ignored when Verbose.
	Timestamps *bool

	// Writer overrides the destination. Nil means stderr.
	Writer io.Writer
}

// SetupLogging configures the global logger.
func SetupLogging(cfg LogConfig) {
	level := log.InfoLevel
	if cfg.Verbose {
		level = log.DebugLevel
	}

	timestamps := true
	if cfg.Timestamps != nil {
		timestamps = *cfg.Timestamps
	}
	if cfg.Verbose {
		timestamps = true
	}

	w := cfg.Writer
	if w == nil {
		w = os.Stderr
	}

	detailsWriter = w
	logger = log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: timestamps,
		ReportCaller:    cfg.Verbose,
		TimeFormat:      "15:04:05",
	})
}

// Logger returns the global logger.
func Logger() *log.Logger {
	return logger
}

// TargetLogger returns a logger whose lines are prefixed with a compile
// target id.
func TargetLogger(targetID string) *log.Logger {
	return logger.WithPrefix(StyleDim.Render("t:") + StyleNoun.Render(targetID))
}

// ToolLogger returns a logger whose lines are prefixed with a simulated tool
// id.
func ToolLogger(toolID string) *log.Logger {
	return logger.WithPrefix(StyleDim.Render("tool:") + StyleNoun.Render(toolID))
}

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool {
	return &b
}

// Debug logs a debug message.
func Debug(msg string, keyvals ...interface{}) {
	logger.Debug(msg, keyvals...)
}

// Info logs an info message.
func Info(msg string, keyvals ...interface{}) {
	logger.Info(msg, keyvals...)
}

// Warn logs a warning message.
func Warn(msg string, keyvals ...interface{}) {
	logger.Warn(msg, keyvals...)
}

// Error logs an error message.
func Error(msg string, keyvals ...interface{}) {
	logger.Error(msg, keyvals...)
}

// Details prints multi-line error details as plain text below a log line.
func Details(msg string) {
	_, _ = io.WriteString(detailsWriter, strings.TrimRight(msg, "\n")+"\n")
}

// Println prints a message to stdout with a newline.
func Println(msg string) {
	Fprintln(os.Stdout, msg)
}

// Fprintln prints a message to w with a newline.
func Fprintln(w io.Writer, msg string) {
	_, _ = io.WriteString(w, msg+"\n")
}
