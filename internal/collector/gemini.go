package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"CycleBand/internal/model"
)

// GeminiFetcher implements QuoteFetcher using the Gemini public ticker API.
type GeminiFetcher struct {
	BaseURL string
	Pair    string
	Client  *http.Client
}

// NewGeminiFetcher creates a quote fetcher with optional proxy support.
func NewGeminiFetcher(baseURL, pair, proxyURL string) *GeminiFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &GeminiFetcher{
		BaseURL: baseURL,
		Pair:    pair,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *GeminiFetcher) Name() string { return "gemini" }

// geminiTicker is the expected JSON shape; all prices arrive as strings.
type geminiTicker struct {
	Bid  string `json:"bid"`
	Ask  string `json:"ask"`
	Last string `json:"last"`
}

// FetchQuote retrieves the current bid/ask/last for the configured pair.
func (f *GeminiFetcher) FetchQuote(ctx context.Context) (model.Quote, error) {
	endpoint := fmt.Sprintf("%s/v1/pubticker/%s", f.BaseURL, f.Pair)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return model.Quote{}, err
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return model.Quote{}, fmt.Errorf("fetch ticker: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return model.Quote{}, fmt.Errorf("fetch ticker: status %d, body: %s", resp.StatusCode, string(body))
	}

	var ticker geminiTicker
	if err := json.NewDecoder(resp.Body).Decode(&ticker); err != nil {
		return model.Quote{}, fmt.Errorf("decode ticker: %w", err)
	}

	var q model.Quote
	if q.Bid, err = strconv.ParseFloat(ticker.Bid, 64); err != nil {
		return model.Quote{}, fmt.Errorf("parse bid %q: %w", ticker.Bid, err)
	}
	if q.Ask, err = strconv.ParseFloat(ticker.Ask, 64); err != nil {
		return model.Quote{}, fmt.Errorf("parse ask %q: %w", ticker.Ask, err)
	}
	if q.Last, err = strconv.ParseFloat(ticker.Last, 64); err != nil {
		return model.Quote{}, fmt.Errorf("parse last %q: %w", ticker.Last, err)
	}
	return q, nil
}
