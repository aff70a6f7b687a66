package collector

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"PriceChart/internal/config"
	"PriceChart/internal/model"
)

// ErrUnknownSource is returned by Open for an unsupported data.source value.
var ErrUnknownSource = errors.New("unknown data source")

// Source loads a closing-price dataset.
type Source interface {
	Load(ctx context.Context) (model.Dataset, error)
	Name() string
}

// Open builds the source selected by the data section of the config.
func Open(cfg config.Data, proxyURL string) (Source, error) {
	switch cfg.Source {
	case "", "csv":
		return &CSVSource{Path: cfg.Path}, nil
	case "sqlite":
		return &SQLiteSource{Path: cfg.Path, Table: cfg.Table}, nil
	case "yahoo":
		return NewYahooSource(cfg.Symbol, cfg.Range, proxyURL), nil
	case "vstrader":
		return NewVsTraderSource(cfg.BaseURL, cfg.APIKey, cfg.Symbol, cfg.Limit, proxyURL), nil
	case "mock":
		return &MockSource{Records: GenerateMockRecords(100, 250)}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, cfg.Source)
	}
}

func newHTTPClient(proxyURL string) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   30 * time.Second,
		Transport: transport,
	}
}
