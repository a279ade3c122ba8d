package logger

import (
	"io"
	"log"
	"os"
)

// Shared loggers, usable before Init for tests.
var (
	InfoLogger  = log.New(os.Stdout, "INFO: ", log.LstdFlags)
	WarnLogger  = log.New(os.Stdout, "WARN: ", log.LstdFlags)
	ErrorLogger = log.New(os.Stderr, "ERROR: ", log.LstdFlags)
	DebugLogger = log.New(io.Discard, "DEBUG: ", log.LstdFlags)
)

// Init configures the shared loggers. Debug output stays discarded
// unless enabled.
func Init(debug bool) {
	flags := log.Ldate | log.Ltime | log.Lshortfile
	InfoLogger = log.New(os.Stdout, "INFO: ", flags)
	WarnLogger = log.New(os.Stdout, "WARN: ", flags)
	ErrorLogger = log.New(os.Stderr, "ERROR: ", flags)
	if debug {
		DebugLogger = log.New(os.Stdout, "DEBUG: ", flags)
	} else {
		DebugLogger = log.New(io.Discard, "DEBUG: ", flags)
	}
}
