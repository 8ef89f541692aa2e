package goldprice

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// FallbackPerGram is served whenever the spot feed cannot be reached or
// parsed. The catalog must always render a price, so availability wins over
// accuracy here.
const FallbackPerGram = 75.0

// gramsPerTroyOunce converts the feed's ounce price to a per-gram price.
const gramsPerTroyOunce = 31.1035

type Log interface {
	Warn(string, ...zap.Field)
}

// Quote is the result of a price lookup. PerGram is always a finite positive
// number; when Fallback is set it carries FallbackPerGram and Reason explains
// why the live value was unavailable.
type Quote struct {
	PerGram  float64
	Fallback bool
	Reason   string
}

// Client fetches the gold spot price from an external feed. One request per
// invocation, no retries; the transport timeout is the only bound.
type Client struct {
	url    string
	client *http.Client
	log    Log
}

func NewClient(url string, timeout time.Duration, log Log) *Client {
	return &Client{
		url:    url,
		client: &http.Client{Timeout: timeout},
		log:    log,
	}
}

// PricePerGram returns the current gold price per gram. It never returns an
// error: every failure mode collapses into the fallback quote, with the
// reason recorded for diagnostics.
func (c *Client) PricePerGram(ctx context.Context) Quote {
	perOunce, err := c.fetchPerOunce(ctx)
	if err != nil {
		c.log.Warn("gold price lookup failed, using fallback",
			zap.Float64("fallback", FallbackPerGram), zap.Error(err))
		return Quote{PerGram: FallbackPerGram, Fallback: true, Reason: err.Error()}
	}

	return Quote{PerGram: perOunce / gramsPerTroyOunce}
}

func (c *Client) fetchPerOunce(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create spot request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to call spot feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("spot feed returned status %d", resp.StatusCode)
	}

	// The feed returns a heterogeneous array of objects, one per commodity.
	// The gold entry is located by key, never by position.
	var entries []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return 0, fmt.Errorf("failed to decode spot payload: %w", err)
	}

	for _, entry := range entries {
		raw, ok := entry["gold"]
		if !ok {
			continue
		}
		perOunce, ok := raw.(float64)
		if !ok {
			return 0, fmt.Errorf("gold entry is not numeric: %v", raw)
		}
		if perOunce <= 0 {
			return 0, fmt.Errorf("spot feed returned non-positive gold price %v", perOunce)
		}
		return perOunce, nil
	}

	return 0, fmt.Errorf("spot payload has no gold entry")
}
