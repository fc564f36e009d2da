package report

import (
	"io"
	"os"
	"sync"

	"github.com/pterm/pterm"
)

// Reporter displays diagnostics and status messages filtered by a log level
// and keeps count of the errors and warnings it has seen.  Files are lexed and
// parsed concurrently, so every access goes through the mutex.
type Reporter struct {
	m *sync.Mutex

	// logLevel is one of the log levels enumerated below.
	logLevel int

	// The writer all messages are displayed to.
	out io.Writer

	// The number of errors and warnings reported so far.
	errorCount, warningCount int
}

// Enumeration of the different possible log levels.
const (
	LogLevelSilent  = iota // Displays no output.
	LogLevelError          // Displays only errors to the user.
	LogLevelWarn           // Displays only warnings and errors to the user.
	LogLevelVerbose        // Displays all messages to the user (default).
)

// logLevelNames maps the command-line names of the log levels to their values.
var logLevelNames = map[string]int{
	"silent":  LogLevelSilent,
	"error":   LogLevelError,
	"warn":    LogLevelWarn,
	"verbose": LogLevelVerbose,
}

// LogLevelFromName converts the name of a log level into its value.
func LogLevelFromName(name string) (int, bool) {
	logLevel, ok := logLevelNames[name]
	return logLevel, ok
}

// rep is the reporter used by all the package-level functions.
var rep = &Reporter{
	m:        &sync.Mutex{},
	logLevel: LogLevelVerbose,
	out:      os.Stdout,
}

// InitReporter (re)initializes the global reporter to the given log level and
// clears all error counts.  Colour output is disabled when the `NO_COLOR`
// environment variable is set.
func InitReporter(logLevel int) {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		pterm.DisableColor()
	}

	rep = &Reporter{
		m:        &sync.Mutex{},
		logLevel: logLevel,
		out:      os.Stdout,
	}
}

// SetOutput sets the writer the global reporter displays messages to.
func SetOutput(w io.Writer) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.out = w
}
