package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
)

// Overview is the raw OVERVIEW payload, reduced to the fields downstream
// scoring consumes. Numeric fields stay strings: the API substitutes
// "N/A" or "None" for anything it lacks.
type Overview struct {
	Symbol        string `json:"Symbol"`
	Name          string `json:"Name"`
	Description   string `json:"Description"`
	MarketCap     string `json:"MarketCapitalization"`
	PERatio       string `json:"PERatio"`
	Week52High    string `json:"52WeekHigh"`
	Week52Low     string `json:"52WeekLow"`
	DividendYield string `json:"DividendYield"`
	EPS           string `json:"EPS"`
}

// GetOverview retrieves company fundamentals for a symbol.
// It returns (nil, nil) when the payload carries no Symbol field — the
// API answers unknown symbols with an empty JSON object.
func (c *Client) GetOverview(ctx context.Context, symbol string, opts ...ClientOption) (*Overview, error) {
	override := c.override(opts)

	query := maps.Clone(override.query)
	query.Add("function", "OVERVIEW")
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
		Overview
		Note        string `json:"Note"`
		Information string `json:"Information"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding overview response: %w", err)
	}
	if body.Note != "" {
		return nil, fmt.Errorf("rate limited: %s", body.Note)
	}
	if body.Symbol == "" {
		return nil, nil
	}
	overview := body.Overview
	return &overview, nil
}
