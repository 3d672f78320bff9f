package config

import (
    "encoding/json"
    "errors"
    "fmt"
    "os"

    "github.com/joho/godotenv"
)

type Server struct {
    Port              string `json:"port"`
    RequestTimeoutSec int    `json:"request_timeout_sec"`
    // AnalysisTimeoutSec bounds one whole analysis run. Runs span minutes
    // under the quote provider's free-tier quota, so this is much larger
    // than the per-request timeout.
    AnalysisTimeoutSec int `json:"analysis_timeout_sec"`
}

type AlphaVantage struct {
    APIKey                string `json:"api_key"`
    BaseURL               string `json:"base_url"`
    MaxRequestsPerMinute  int    `json:"max_requests_per_minute"`
    MinRequestIntervalSec int    `json:"min_request_interval_sec"`
    Burst                 int    `json:"burst"`
    OverviewCacheTTLSec   int    `json:"overview_cache_ttl_sec"`
    CacheMaxItems         int    `json:"cache_max_items"`
}

type NewsAPI struct {
    APIKey                string `json:"api_key"`
    BaseURL               string `json:"base_url"`
    Language              string `json:"language"`
    PageSize              int    `json:"page_size"`
    MaxRequestsPerMinute  int    `json:"max_requests_per_minute"`
    MinRequestIntervalSec int    `json:"min_request_interval_sec"`
    Burst                 int    `json:"burst"`
    CacheTTLSec           int    `json:"cache_ttl_sec"`
    CacheMaxItems         int    `json:"cache_max_items"`
}

type Analysis struct {
    // DefaultWeight is the sentiment share of the blended score, percent.
    DefaultWeight int `json:"default_weight"`
    MaxStocks     int `json:"max_stocks"`
}

type Config struct {
    Server       Server       `json:"server"`
    AlphaVantage AlphaVantage `json:"alphavantage"`
    NewsAPI      NewsAPI      `json:"newsapi"`
    Analysis     Analysis     `json:"analysis"`
}

func Default() Config {
    return Config{
        Server: Server{Port: "8080", RequestTimeoutSec: 15, AnalysisTimeoutSec: 600},
        AlphaVantage: AlphaVantage{
            // free tier quota
            MaxRequestsPerMinute: 5,
            Burst:                1,
            OverviewCacheTTLSec:  300,
            CacheMaxItems:        256,
        },
        NewsAPI: NewsAPI{
            Language:             "en",
            PageSize:             5,
            MaxRequestsPerMinute: 60,
            Burst:                5,
            CacheTTLSec:          300,
            CacheMaxItems:        256,
        },
        Analysis: Analysis{DefaultWeight: 50, MaxStocks: 5},
    }
}

// Load reads JSON config from path. If path is empty or file does not exist,
// it returns defaults. A .env file and environment variables override select
// fields so API keys stay out of config files.
func Load(path string) (Config, error) {
    _ = godotenv.Load()
    cfg := Default()
    if path == "" {
        if _, err := os.Stat("config.json"); err == nil {
            path = "config.json"
        }
    }
    if path != "" {
        b, err := os.ReadFile(path)
        if err != nil && !errors.Is(err, os.ErrNotExist) {
            return cfg, fmt.Errorf("read config: %w", err)
        }
        if err == nil {
            if err := json.Unmarshal(b, &cfg); err != nil {
                return cfg, fmt.Errorf("parse config: %w", err)
            }
        }
    }
    applyEnv(&cfg)
    return cfg, nil
}

func applyEnv(cfg *Config) {
    if v := os.Getenv("PORT"); v != "" { cfg.Server.Port = v }
    if v := os.Getenv("REQUEST_TIMEOUT_SEC"); v != "" {
        var x int; fmt.Sscanf(v, "%d", &x); if x > 0 { cfg.Server.RequestTimeoutSec = x }
    }
    if v := os.Getenv("ANALYSIS_TIMEOUT_SEC"); v != "" {
        var x int; fmt.Sscanf(v, "%d", &x); if x > 0 { cfg.Server.AnalysisTimeoutSec = x }
    }

    if v := os.Getenv("ALPHAVANTAGE_API_KEY"); v != "" { cfg.AlphaVantage.APIKey = v }
    if v := os.Getenv("ALPHAVANTAGE_BASE_URL"); v != "" { cfg.AlphaVantage.BaseURL = v }
    if v := os.Getenv("ALPHAVANTAGE_MAX_RPM"); v != "" {
        var x int; fmt.Sscanf(v, "%d", &x); if x >= 0 { cfg.AlphaVantage.MaxRequestsPerMinute = x }
    }
    if v := os.Getenv("ALPHAVANTAGE_MIN_INTERVAL_SEC"); v != "" {
        var x int; fmt.Sscanf(v, "%d", &x); if x >= 0 { cfg.AlphaVantage.MinRequestIntervalSec = x }
    }
    if v := os.Getenv("ALPHAVANTAGE_BURST"); v != "" {
        var x int; fmt.Sscanf(v, "%d", &x); if x > 0 { cfg.AlphaVantage.Burst = x }
    }
    if v := os.Getenv("OVERVIEW_CACHE_TTL_SEC"); v != "" {
        var x int; fmt.Sscanf(v, "%d", &x); if x >= 0 { cfg.AlphaVantage.OverviewCacheTTLSec = x }
    }
    if v := os.Getenv("ALPHAVANTAGE_CACHE_MAX_ITEMS"); v != "" {
        var x int; fmt.Sscanf(v, "%d", &x); if x > 0 { cfg.AlphaVantage.CacheMaxItems = x }
    }

    if v := os.Getenv("NEWSAPI_API_KEY"); v != "" { cfg.NewsAPI.APIKey = v }
    if v := os.Getenv("NEWSAPI_BASE_URL"); v != "" { cfg.NewsAPI.BaseURL = v }
    if v := os.Getenv("NEWSAPI_LANGUAGE"); v != "" { cfg.NewsAPI.Language = v }
    if v := os.Getenv("NEWSAPI_PAGE_SIZE"); v != "" {
        var x int; fmt.Sscanf(v, "%d", &x); if x > 0 { cfg.NewsAPI.PageSize = x }
    }
    if v := os.Getenv("NEWSAPI_MAX_RPM"); v != "" {
        var x int; fmt.Sscanf(v, "%d", &x); if x >= 0 { cfg.NewsAPI.MaxRequestsPerMinute = x }
    }
    if v := os.Getenv("NEWSAPI_MIN_INTERVAL_SEC"); v != "" {
        var x int; fmt.Sscanf(v, "%d", &x); if x >= 0 { cfg.NewsAPI.MinRequestIntervalSec = x }
    }
    if v := os.Getenv("NEWSAPI_BURST"); v != "" {
        var x int; fmt.Sscanf(v, "%d", &x); if x > 0 { cfg.NewsAPI.Burst = x }
    }
    if v := os.Getenv("NEWSAPI_CACHE_TTL_SEC"); v != "" {
        var x int; fmt.Sscanf(v, "%d", &x); if x >= 0 { cfg.NewsAPI.CacheTTLSec = x }
    }
    if v := os.Getenv("NEWSAPI_CACHE_MAX_ITEMS"); v != "" {
        var x int; fmt.Sscanf(v, "%d", &x); if x > 0 { cfg.NewsAPI.CacheMaxItems = x }
    }

    if v := os.Getenv("ANALYSIS_WEIGHT"); v != "" {
        var x int; fmt.Sscanf(v, "%d", &x); if x >= 0 && x <= 100 { cfg.Analysis.DefaultWeight = x }
    }
    if v := os.Getenv("ANALYSIS_MAX_STOCKS"); v != "" {
        var x int; fmt.Sscanf(v, "%d", &x); if x > 0 { cfg.Analysis.MaxStocks = x }
    }
}
