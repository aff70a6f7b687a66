package collector

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/goccy/go-json"

	"PriceChart/internal/model"
)

// VsTraderSource loads daily closes from the vstrader REST API.
type VsTraderSource struct {
	BaseURL string
	APIKey  string
	Symbol  string
	Limit   int
	Client  *http.Client
}

// NewVsTraderSource creates a new source with optional proxy support.
func NewVsTraderSource(baseURL, apiKey, symbol string, limit int, proxyURL string) *VsTraderSource {
	return &VsTraderSource{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Symbol:  symbol,
		Limit:   limit,
		Client:  newHTTPClient(proxyURL),
	}
}

func (s *VsTraderSource) Name() string { return "vstrader" }

// vsBar is the expected JSON shape from the vstrader API.
type vsBar struct {
	Timestamp int64   `json:"timestamp"`
	Close     float64 `json:"close"`
}

func (s *VsTraderSource) Load(ctx context.Context) (model.Dataset, error) {
	q := url.Values{}
	q.Set("symbol", s.Symbol)
	if s.Limit > 0 {
		q.Set("limit", fmt.Sprint(s.Limit))
	}
	endpoint := fmt.Sprintf("%s/api/v1/bars/daily?%s", s.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if s.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.APIKey)
	}
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch bars: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetch bars: status %d, body: %s", resp.StatusCode, string(body))
	}

	var bars []vsBar
	if err := json.NewDecoder(resp.Body).Decode(&bars); err != nil {
		return nil, fmt.Errorf("decode bars: %w", err)
	}
	ds := make(model.Dataset, 0, len(bars))
	for _, b := range bars {
		if b.Close < 0 {
			return nil, fmt.Errorf("bar %d: %w", b.Timestamp, errNegativeClose)
		}
		ds = append(ds, model.Record{Date: model.Day(time.Unix(b.Timestamp, 0)), Close: b.Close})
	}
	// Ensure chronological order
	sort.SliceStable(ds, func(i, j int) bool { return ds[i].Date.Before(ds[j].Date) })
	return ds, nil
}
