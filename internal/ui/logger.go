package ui

import (
	"io"

	"github.com/charmbracelet/log"
)

// NewLogger returns the diagnostic logger. Debug output, including every git
// invocation, is only shown when verbose is set.
func NewLogger(w io.Writer, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix: "offshoot",
		Level:  log.WarnLevel,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
