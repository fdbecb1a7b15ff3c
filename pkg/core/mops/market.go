package mops

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrMarketCapUnavailable means the quote source answered but carried no
// market capitalization for the symbol.
var ErrMarketCapUnavailable = errors.New("market capitalization unavailable")

type quoteResponse struct {
	QuoteResponse struct {
		Result []struct {
			MarketCap *float64 `json:"marketCap"`
		} `json:"result"`
	} `json:"quoteResponse"`
}

// MarketCap looks up the market capitalization for the client's stock code
// on the TWSE board (Yahoo symbol "<code>.TW"). The value is in the
// currency's base unit; the Z-Score calculator rescales it to thousands.
func (c *Client) MarketCap(ctx context.Context) (float64, error) {
	url := fmt.Sprintf("%s/v7/finance/quote?symbols=%s.TW", c.QuoteBaseURL, c.StockCode)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("market cap request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("quote source returned status %d", resp.StatusCode)
	}

	var decoded quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return 0, fmt.Errorf("decode quote response: %w", err)
	}

	results := decoded.QuoteResponse.Result
	if len(results) == 0 || results[0].MarketCap == nil {
		return 0, fmt.Errorf("%w for %s.TW", ErrMarketCapUnavailable, c.StockCode)
	}
	return *results[0].MarketCap, nil
}
