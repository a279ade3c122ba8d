package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrCrashLog marks a submission that is a crash dump rather than
	// a regular OBS log. Crash logs are never analyzed.
	ErrCrashLog = errors.New("log is a crash log")

	// ErrNotAnOBSLog marks text that carries neither the upload
	// timestamp nor the startup-complete marker.
	ErrNotAnOBSLog = errors.New("not a valid OBS log")

	// ErrAnalyzerInvalidResponse marks an analyzer response missing
	// one of the mandatory critical/warning/info categories.
	ErrAnalyzerInvalidResponse = errors.New("analyzer response is invalid")
)

// FetchError reports a non-2xx HTTP response during a download.
type FetchError struct {
	URL        string
	StatusCode int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %q failed with status %d", e.URL, e.StatusCode)
}

// ScoreParseError reports a malformed numeric mark on a matched
// benchmark entry. It only ever suppresses the rating of the affected
// side, never the sibling's.
type ScoreParseError struct {
	Kind HardwareKind
	Name string
	Mark string
	Err  error
}

func (e *ScoreParseError) Error() string {
	return fmt.Sprintf("parsing %s benchmark score %q for %q: %v", e.Kind, e.Mark, e.Name, e.Err)
}

func (e *ScoreParseError) Unwrap() error {
	return e.Err
}
