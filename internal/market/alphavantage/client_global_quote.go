package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
)

// GlobalQuote is the raw GLOBAL_QUOTE payload. Field names mirror the
// numbered keys the API uses; every value arrives as a string.
type GlobalQuote struct {
	Symbol        string `json:"01. symbol"`
	Open          string `json:"02. open"`
	High          string `json:"03. high"`
	Low           string `json:"04. low"`
	Price         string `json:"05. price"`
	Volume        string `json:"06. volume"`
	LatestDay     string `json:"07. latest trading day"`
	PrevClose     string `json:"08. previous close"`
	Change        string `json:"09. change"`
	ChangePercent string `json:"10. change percent"`
}

// GetGlobalQuote retrieves the latest quote for a symbol.
// It returns (nil, nil) when the API responds with a missing or empty
// "Global Quote" object, which is how Alpha Vantage signals an unknown
// or inactive symbol.
func (c *Client) GetGlobalQuote(ctx context.Context, symbol string, opts ...ClientOption) (*GlobalQuote, error) {
	override := c.override(opts)

	query := maps.Clone(override.query)
	query.Add("function", "GLOBAL_QUOTE")
	query.Add("symbol", symbol)

	url := fmt.Sprintf("%s/query?%s", override.baseURL, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header = override.header

	res, err := override.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing request: %w", err)
	}
	defer res.Body.Close()

	if err := checkStatus(res); err != nil {
		return nil, err
	}

	var body struct {
		GlobalQuote *GlobalQuote `json:"Global Quote"`
		Note        string       `json:"Note"`
		Information string       `json:"Information"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding quote response: %w", err)
	}
	if body.Note != "" {
		// The free tier returns 200 with a Note when throttled.
		return nil, fmt.Errorf("rate limited: %s", body.Note)
	}
	if body.GlobalQuote == nil || body.GlobalQuote.Symbol == "" {
		return nil, nil
	}
	return body.GlobalQuote, nil
}
