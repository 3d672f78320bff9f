package main

import (
    "context"
    "encoding/json"
    "flag"
    "fmt"
    "log"
    "net/http"
    "os"
    "os/signal"
    "strings"
    "syscall"
    "time"

    "github.com/rs/zerolog"

    "stockadvisor/internal/analysis"
    "stockadvisor/internal/config"
    "stockadvisor/internal/httpx"
    "stockadvisor/internal/market"
    "stockadvisor/internal/market/alphavantage"
    "stockadvisor/internal/market/gateway"
    "stockadvisor/internal/market/newsapi"
    "stockadvisor/internal/market/ratelimit"
)

func main() {
    var sector string
    var weight int
    var count int
    var timeout int
    var configPath string

    flag.StringVar(&sector, "sector", getenv("SECTOR", ""), "sector to analyze (e.g. Technology)")
    flag.IntVar(&weight, "weight", getenvInt("ANALYSIS_WEIGHT", -1), "sentiment weight 0-100 (-1 uses config)")
    flag.IntVar(&count, "count", getenvInt("ANALYSIS_MAX_STOCKS", 0), "max stocks to analyze (0 uses config)")
    flag.IntVar(&timeout, "timeout", getenvInt("ANALYSIS_TIMEOUT_SEC", 0), "analysis timeout seconds (0 uses config)")
    flag.StringVar(&configPath, "config", getenv("CONFIG_FILE", ""), "path to config.json (optional)")
    flag.Parse()

    cfg, err := config.Load(configPath)
    if err != nil { log.Fatalf("config: %v", err) }
    if weight < 0 { weight = cfg.Analysis.DefaultWeight }
    if weight > 100 { weight = 100 }
    if count <= 0 { count = cfg.Analysis.MaxStocks }
    if timeout <= 0 { timeout = cfg.Server.AnalysisTimeoutSec }

    if sector == "" {
        fmt.Fprintln(os.Stderr, "no sector given; available sectors:")
        for _, s := range market.Sectors() { fmt.Fprintln(os.Stderr, "  "+s) }
        os.Exit(2)
    }
    if cfg.AlphaVantage.APIKey == "" {
        log.Fatal("ALPHAVANTAGE_API_KEY not set")
    }

    logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

    httpClient := httpx.New(time.Duration(cfg.Server.RequestTimeoutSec) * time.Second)

    avOpts := []alphavantage.ClientOption{
        alphavantage.WithHTTPClient(httpClient),
        alphavantage.WithHeader(http.Header{"User-Agent": []string{"stockadvisor/1.0"}}),
    }
    if cfg.AlphaVantage.BaseURL != "" {
        avOpts = append(avOpts, alphavantage.WithBaseURL(cfg.AlphaVantage.BaseURL))
    }
    avClient, err := alphavantage.NewClient(cfg.AlphaVantage.APIKey, avOpts...)
    if err != nil { log.Fatalf("alphavantage client: %v", err) }

    newsClient := newsapi.New(newsapi.Config{
        APIKey:   cfg.NewsAPI.APIKey,
        BaseURL:  cfg.NewsAPI.BaseURL,
        Language: cfg.NewsAPI.Language,
        PageSize: cfg.NewsAPI.PageSize,
        Timeout:  time.Duration(cfg.Server.RequestTimeoutSec) * time.Second,
    })

    gw := gateway.New(gateway.Config{
        OverviewTTL: time.Duration(cfg.AlphaVantage.OverviewCacheTTLSec) * time.Second,
        NewsTTL:     time.Duration(cfg.NewsAPI.CacheTTLSec) * time.Second,
        MaxItems:    cfg.AlphaVantage.CacheMaxItems,
    }, avClient, newsClient,
        limiter(cfg.AlphaVantage.MaxRequestsPerMinute, cfg.AlphaVantage.Burst, cfg.AlphaVantage.MinRequestIntervalSec),
        limiter(cfg.NewsAPI.MaxRequestsPerMinute, cfg.NewsAPI.Burst, cfg.NewsAPI.MinRequestIntervalSec),
        logger)

    analyzer := analysis.New(gw, logger)

    // Ctrl-C cancels the run; whatever finished so far is still printed.
    ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
    defer stop()
    ctx, cancel := context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
    defer cancel()

    res, err := analyzer.AnalyzeSector(ctx, sector, count, weight)
    if err != nil {
        log.Printf("analysis interrupted: %v", err)
    }
    if res == nil || len(res.Stocks) == 0 {
        log.Fatal("no stocks analyzed")
    }

    b, _ := json.MarshalIndent(res, "", "  ")
    fmt.Println(string(b))
}

func limiter(rpm, burst, minIntervalSec int) ratelimit.Limiter {
    if rpm > 0 {
        if burst <= 0 { burst = 1 }
        return ratelimit.PerMinute(rpm, burst)
    }
    if minIntervalSec > 0 {
        return &ratelimit.MinInterval{Interval: time.Duration(minIntervalSec) * time.Second}
    }
    return ratelimit.None{}
}

func getenv(key, def string) string { if v := os.Getenv(key); v != "" { return v }; return def }
func getenvInt(key string, def int) int {
    if v := os.Getenv(key); v != "" {
        var x int
        _, _ = fmt.Sscanf(v, "%d", &x)
        if x != 0 { return x }
    }
    return def
}
func getenvBool(key string, def bool) bool {
    if v := os.Getenv(key); v != "" {
        switch strings.ToLower(v) {
        case "1","true","yes","y": return true
        case "0","false","no","n": return false
        }
    }
    return def
}
