// Package action integrates notekv with CI platforms that follow the
// GitHub Actions conventions: named inputs arrive as INPUT_* environment
// variables, and status signals go to the log as workflow commands.
package action

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Input returns the trimmed value of a named action input.
// The platform exposes an input named "values_file" as INPUT_VALUES_FILE.
// Returns "" when the input is unset.
func Input(name string) string {
	key := "INPUT_" + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
	return strings.TrimSpace(os.Getenv(key))
}

// InCI reports whether the process is running under a CI workflow.
func InCI() bool {
	return os.Getenv("GITHUB_ACTIONS") == "true" || os.Getenv("CI") == "true"
}

// Logger emits workflow commands (::notice::, ::warning::, ::error::) that
// the CI platform renders as annotations. It satisfies store.Reporter.
type Logger struct {
	w io.Writer
}

// NewLogger creates a Logger writing workflow commands to w.
func NewLogger(w io.Writer) *Logger {
	return &Logger{w: w}
}

// Info emits a notice workflow command.
func (l *Logger) Info(format string, args ...any) {
	l.command("notice", fmt.Sprintf(format, args...))
}

// Warn emits a warning workflow command.
func (l *Logger) Warn(format string, args ...any) {
	l.command("warning", fmt.Sprintf(format, args...))
}

// Error emits an error workflow command.
func (l *Logger) Error(format string, args ...any) {
	l.command("error", fmt.Sprintf(format, args...))
}

// command writes a single workflow command line.
func (l *Logger) command(kind, msg string) {
	fmt.Fprintf(l.w, "::%s::%s\n", kind, escapeData(msg))
}

// escapeData escapes message data per the workflow command protocol.
// '%' must be escaped first.
func escapeData(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	s = strings.ReplaceAll(s, "\n", "%0A")
	return s
}
