package logfetch

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/obsbot/logbot/internal/domain/entity"
	"github.com/obsbot/logbot/internal/domain/repository"
	"github.com/obsbot/logbot/pkg/logger"
)

// Marker phrases that identify crash dumps and genuine OBS logs.
const (
	stackTraceMarker  = "Stack"
	registerMarker    = "EIP"
	anonymousIDMarker = "Anonymous UUID"
	faultAddrMarker   = "Fault address:"

	uploadedMarker = "log file uploaded at"
	startupMarker  = "Startup complete"
)

// Fetcher downloads user-submitted logs and validates that they are
// genuine OBS logs before anything else touches them.
type Fetcher struct {
	client *http.Client
}

var _ repository.LogRepository = (*Fetcher)(nil)

func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{client: &http.Client{Timeout: timeout}}
}

// DownloadLog fetches url, resolves the text encoding and classifies
// the content. Crash logs and non-OBS logs come back as errors; the
// caller moves on to the next candidate.
func (f *Fetcher) DownloadLog(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &entity.FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	text := decodeText(body)
	if err := Classify(text); err != nil {
		return "", err
	}
	return text, nil
}

// Classify checks the marker phrases in strict order: crash indicators
// first, then the markers every real OBS log carries.
func Classify(text string) error {
	crash := (strings.Contains(text, stackTraceMarker) && strings.Contains(text, registerMarker)) ||
		strings.Contains(text, anonymousIDMarker) ||
		strings.Contains(text, faultAddrMarker)
	if crash {
		return entity.ErrCrashLog
	}

	if !strings.Contains(text, uploadedMarker) && !strings.Contains(text, startupMarker) {
		return entity.ErrNotAnOBSLog
	}
	return nil
}

// decodeText treats the body as UTF-8 and falls back to ISO-8859-1,
// which covers the odd Windows log with stray high bytes.
func decodeText(body []byte) string {
	if utf8.Valid(body) {
		return string(body)
	}
	logger.WarnLogger.Println("Decoding log as UTF-8 failed, forcing ISO-8859-1...")
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(body)
	if err != nil {
		return string(body)
	}
	return string(decoded)
}
