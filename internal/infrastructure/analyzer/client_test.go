package analyzer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/obsbot/logbot/internal/domain/entity"
)

func serveJSON(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("format"); got != "json" {
			t.Errorf("format param = %q, want %q", got, "json")
		}
		if got := r.URL.Query().Get("url"); got == "" {
			t.Error("url param missing")
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchAnalysis_OK(t *testing.T) {
	srv := serveJSON(t, http.StatusOK, `{"critical": ["a"], "warning": [], "info": ["b", "c"]}`)

	c := NewClient(srv.URL, 5*time.Second)
	report, err := c.FetchAnalysis(context.Background(), "https://obsproject.com/logs/abc")
	if err != nil {
		t.Fatalf("FetchAnalysis() error = %v", err)
	}

	want := &entity.AnalysisReport{Critical: []string{"a"}, Warning: []string{}, Info: []string{"b", "c"}}
	if !reflect.DeepEqual(report, want) {
		t.Fatalf("FetchAnalysis() = %+v, want %+v", report, want)
	}
}

func TestFetchAnalysis_MissingCategoryRejected(t *testing.T) {
	// empty arrays are fine, a missing key is not
	srv := serveJSON(t, http.StatusOK, `{"critical": [], "warning": []}`)

	c := NewClient(srv.URL, 5*time.Second)
	if _, err := c.FetchAnalysis(context.Background(), "https://x/log"); !errors.Is(err, entity.ErrAnalyzerInvalidResponse) {
		t.Fatalf("FetchAnalysis() error = %v, want ErrAnalyzerInvalidResponse", err)
	}
}

func TestFetchAnalysis_MalformedJSONRejected(t *testing.T) {
	srv := serveJSON(t, http.StatusOK, `{"critical": `)

	c := NewClient(srv.URL, 5*time.Second)
	if _, err := c.FetchAnalysis(context.Background(), "https://x/log"); !errors.Is(err, entity.ErrAnalyzerInvalidResponse) {
		t.Fatalf("FetchAnalysis() error = %v, want ErrAnalyzerInvalidResponse", err)
	}
}

func TestFetchAnalysis_NonOKStatus(t *testing.T) {
	srv := serveJSON(t, http.StatusBadGateway, "")

	c := NewClient(srv.URL, 5*time.Second)
	_, err := c.FetchAnalysis(context.Background(), "https://x/log")

	var fetchErr *entity.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("FetchAnalysis() error = %v, want *entity.FetchError", err)
	}
	if fetchErr.StatusCode != http.StatusBadGateway {
		t.Fatalf("StatusCode = %d, want %d", fetchErr.StatusCode, http.StatusBadGateway)
	}
}
