package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/obsbot/logbot/internal/domain/entity"
	"github.com/obsbot/logbot/internal/domain/repository"
)

// Client calls the remote OBS log analyzer API.
type Client struct {
	endpoint string
	client   *http.Client
}

var _ repository.AnalyzerRepository = (*Client)(nil)

func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// FetchAnalysis asks the analyzer for its structured verdict on the
// log at logURL. Responses missing any of the three mandatory
// categories are rejected; pointers distinguish absent from empty.
func (c *Client) FetchAnalysis(ctx context.Context, logURL string) (*entity.AnalysisReport, error) {
	params := url.Values{}
	params.Set("url", logURL)
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &entity.FetchError{URL: logURL, StatusCode: resp.StatusCode}
	}

	var payload struct {
		Critical *[]string `json:"critical"`
		Warning  *[]string `json:"warning"`
		Info     *[]string `json:"info"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrAnalyzerInvalidResponse, err)
	}
	if payload.Critical == nil || payload.Warning == nil || payload.Info == nil {
		return nil, entity.ErrAnalyzerInvalidResponse
	}

	return &entity.AnalysisReport{
		Critical: *payload.Critical,
		Warning:  *payload.Warning,
		Info:     *payload.Info,
	}, nil
}
