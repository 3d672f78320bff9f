package newsapi

import (
    "context"
    "fmt"
    "net/http"
    "strconv"
    "time"

    "github.com/go-resty/resty/v2"
)

// maxPageSize is the provider cap for the plan this client targets.
const maxPageSize = 5

// Config controls the NewsAPI client.
type Config struct {
    APIKey   string
    BaseURL  string        // default https://newsapi.org/v2
    Language string        // default en
    PageSize int           // capped at maxPageSize
    Timeout  time.Duration // default 15s
}

// Article is the raw article shape from /v2/everything.
type Article struct {
    Source struct {
        ID   string `json:"id"`
        Name string `json:"name"`
    } `json:"source"`
    Author      string `json:"author"`
    Title       string `json:"title"`
    Description string `json:"description"`
    URL         string `json:"url"`
    PublishedAt string `json:"publishedAt"`
}

type everythingResponse struct {
    Status       string    `json:"status"`
    TotalResults int       `json:"totalResults"`
    Articles     []Article `json:"articles"`
    // error shape shares the envelope
    Code    string `json:"code"`
    Message string `json:"message"`
}

type Client struct {
    cfg    Config
    client *resty.Client
}

func New(cfg Config) *Client {
    if cfg.BaseURL == "" { cfg.BaseURL = "https://newsapi.org/v2" }
    if cfg.Language == "" { cfg.Language = "en" }
    if cfg.PageSize <= 0 || cfg.PageSize > maxPageSize { cfg.PageSize = maxPageSize }
    if cfg.Timeout <= 0 { cfg.Timeout = 15 * time.Second }

    client := resty.New()
    client.SetBaseURL(cfg.BaseURL)
    client.SetTimeout(cfg.Timeout)
    client.SetHeader("User-Agent", "stockadvisor/1.0")
    return &Client{cfg: cfg, client: client}
}

// Everything searches recent articles for a free-text query, newest first.
// One outbound request per call; paging is never followed.
func (c *Client) Everything(ctx context.Context, query string) ([]Article, error) {
    var body everythingResponse
    resp, err := c.client.R().
        SetContext(ctx).
        SetQueryParams(map[string]string{
            "q":        query,
            "language": c.cfg.Language,
            "sortBy":   "publishedAt",
            "pageSize": strconv.Itoa(c.cfg.PageSize),
            "apiKey":   c.cfg.APIKey,
        }).
        SetResult(&body).
        SetError(&body).
        Get("/everything")
    if err != nil {
        return nil, fmt.Errorf("GET /everything: %w", err)
    }
    if resp.StatusCode() != http.StatusOK {
        return nil, fmt.Errorf("newsapi %d: %s %s", resp.StatusCode(), body.Code, body.Message)
    }
    if body.Status != "ok" {
        return nil, fmt.Errorf("newsapi status %q: %s", body.Status, body.Message)
    }
    return body.Articles, nil
}
