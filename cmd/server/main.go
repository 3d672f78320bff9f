package main

import (
    "compress/gzip"
    "context"
    "encoding/json"
    "io"
    "net/http"
    "os"
    "os/signal"
    "strconv"
    "strings"
    "sync"
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

type sectorsResponse struct {
    Sectors []string `json:"sectors"`
}

func main() {
    logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

    cfgPath := os.Getenv("CONFIG_FILE")
    cfg, err := config.Load(cfgPath)
    if err != nil { logger.Fatal().Err(err).Msg("config") }
    port := cfg.Server.Port

    if cfg.AlphaVantage.APIKey == "" {
        logger.Warn().Msg("ALPHAVANTAGE_API_KEY not set; quote and overview lookups will fail")
    }
    if cfg.NewsAPI.APIKey == "" {
        logger.Warn().Msg("NEWSAPI_API_KEY not set; news lookups will fail")
    }

    httpClient := httpx.New(time.Duration(cfg.Server.RequestTimeoutSec) * time.Second)

    avOpts := []alphavantage.ClientOption{
        alphavantage.WithHTTPClient(httpClient),
        alphavantage.WithHeader(http.Header{"User-Agent": []string{"stockadvisor/1.0"}}),
    }
    if cfg.AlphaVantage.BaseURL != "" {
        avOpts = append(avOpts, alphavantage.WithBaseURL(cfg.AlphaVantage.BaseURL))
    }
    avClient, err := alphavantage.NewClient(cfg.AlphaVantage.APIKey, avOpts...)
    if err != nil { logger.Fatal().Err(err).Msg("alphavantage client") }

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
        newLimiter(cfg.AlphaVantage.MaxRequestsPerMinute, cfg.AlphaVantage.Burst, cfg.AlphaVantage.MinRequestIntervalSec),
        newLimiter(cfg.NewsAPI.MaxRequestsPerMinute, cfg.NewsAPI.Burst, cfg.NewsAPI.MinRequestIntervalSec),
        logger)

    analyzer := analysis.New(gw, logger)
    analysisTimeout := time.Duration(cfg.Server.AnalysisTimeoutSec) * time.Second

    mux := http.NewServeMux()
    mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
        w.WriteHeader(http.StatusOK)
        _, _ = w.Write([]byte("ok"))
    })
    mux.HandleFunc("/api/sectors", func(w http.ResponseWriter, r *http.Request) {
        if r.Method != http.MethodGet {
            http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
            return
        }
        writeJSON(w, sectorsResponse{Sectors: market.Sectors()})
    })
    mux.HandleFunc("/api/analyze", func(w http.ResponseWriter, r *http.Request) {
        switch r.Method {
        case http.MethodGet:
            handleGetAnalyze(w, r, analyzer, cfg.Analysis, analysisTimeout)
        case http.MethodPost:
            handlePostAnalyze(w, r, analyzer, cfg.Analysis, analysisTimeout)
        default:
            http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
        }
    })

    srv := &http.Server{
        Addr:              ":" + port,
        Handler:           withJSONHeaders(withGzip(recoverPanic(limitBody(mux)))),
        ReadHeaderTimeout: 5 * time.Second,
        ReadTimeout:       15 * time.Second,
        // An analysis run can take minutes under the quote provider's
        // per-minute quota, so the write timeout stays off; the run itself
        // is bounded by analysisTimeout.
        WriteTimeout: 0,
        IdleTimeout:  60 * time.Second,
    }

    go func() {
        logger.Info().Str("port", port).Msg("server listening")
        if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
            logger.Fatal().Err(err).Msg("server")
        }
    }()

    // graceful shutdown
    ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
    defer stop()
    <-ctx.Done()
    shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()
    _ = srv.Shutdown(shutdownCtx)
}

func newLimiter(rpm, burst, minIntervalSec int) ratelimit.Limiter {
    if rpm > 0 {
        if burst <= 0 { burst = 1 }
        return ratelimit.PerMinute(rpm, burst)
    }
    if minIntervalSec > 0 {
        return &ratelimit.MinInterval{Interval: time.Duration(minIntervalSec) * time.Second}
    }
    return ratelimit.None{}
}

func handleGetAnalyze(w http.ResponseWriter, r *http.Request, analyzer *analysis.Analyzer, defaults config.Analysis, timeout time.Duration) {
    q := r.URL.Query()
    sector := strings.TrimSpace(q.Get("sector"))
    if sector == "" {
        http.Error(w, "missing sector query param", http.StatusBadRequest)
        return
    }
    weight, ok := intParam(q.Get("weight"), defaults.DefaultWeight)
    if !ok || weight < 0 || weight > 100 {
        http.Error(w, "weight must be an integer between 0 and 100", http.StatusBadRequest)
        return
    }
    count, ok := intParam(q.Get("count"), defaults.MaxStocks)
    if !ok || count < 1 {
        http.Error(w, "count must be a positive integer", http.StatusBadRequest)
        return
    }
    writeAnalysis(w, r.Context(), analyzer, sector, count, weight, timeout)
}

type analyzeBody struct {
    Sector string `json:"sector"`
    Weight *int   `json:"weight"`
    Count  *int   `json:"count"`
}

func handlePostAnalyze(w http.ResponseWriter, r *http.Request, analyzer *analysis.Analyzer, defaults config.Analysis, timeout time.Duration) {
    var b analyzeBody
    dec := json.NewDecoder(r.Body)
    dec.DisallowUnknownFields()
    if err := dec.Decode(&b); err != nil {
        http.Error(w, "invalid JSON body", http.StatusBadRequest)
        return
    }
    if strings.TrimSpace(b.Sector) == "" {
        http.Error(w, "sector cannot be empty", http.StatusBadRequest)
        return
    }
    weight := defaults.DefaultWeight
    if b.Weight != nil { weight = *b.Weight }
    if weight < 0 || weight > 100 {
        http.Error(w, "weight must be an integer between 0 and 100", http.StatusBadRequest)
        return
    }
    count := defaults.MaxStocks
    if b.Count != nil { count = *b.Count }
    if count < 1 {
        http.Error(w, "count must be a positive integer", http.StatusBadRequest)
        return
    }
    writeAnalysis(w, r.Context(), analyzer, strings.TrimSpace(b.Sector), count, weight, timeout)
}

func writeAnalysis(w http.ResponseWriter, rctx context.Context, analyzer *analysis.Analyzer, sector string, count, weight int, timeout time.Duration) {
    ctx := rctx
    if timeout > 0 {
        var cancel context.CancelFunc
        ctx, cancel = context.WithTimeout(rctx, timeout)
        defer cancel()
    }
    res, err := analyzer.AnalyzeSector(ctx, sector, count, weight)
    if err != nil {
        http.Error(w, "analysis failed, please retry", http.StatusBadGateway)
        return
    }
    writeJSON(w, res)
}

func writeJSON(w http.ResponseWriter, v any) {
    w.WriteHeader(http.StatusOK)
    enc := json.NewEncoder(w)
    enc.SetEscapeHTML(false)
    _ = enc.Encode(v)
}

func intParam(s string, def int) (int, bool) {
    if strings.TrimSpace(s) == "" { return def, true }
    v, err := strconv.Atoi(s)
    if err != nil { return 0, false }
    return v, true
}

func withJSONHeaders(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.Header().Set("Content-Type", "application/json; charset=utf-8")
        // Basic CORS for browser usage; adjust as needed.
        w.Header().Set("Access-Control-Allow-Origin", "*")
        w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
        w.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
        if r.Method == http.MethodOptions {
            w.WriteHeader(http.StatusNoContent)
            return
        }
        next.ServeHTTP(w, r)
    })
}

// withGzip compresses response when client supports gzip.
func withGzip(next http.Handler) http.Handler {
    var gzPool = sync.Pool{New: func() any {
        // Prefer best speed to reduce CPU usage since payloads are JSON
        w, _ := gzip.NewWriterLevel(io.Discard, gzip.BestSpeed)
        return w
    }}
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
            next.ServeHTTP(w, r)
            return
        }
        gz := gzPool.Get().(*gzip.Writer)
        gz.Reset(w)
        defer func() {
            _ = gz.Close()
            gz.Reset(io.Discard)
            gzPool.Put(gz)
        }()
        w.Header().Set("Content-Encoding", "gzip")
        w.Header().Add("Vary", "Accept-Encoding")
        gw := gzipResponseWriter{ResponseWriter: w, Writer: gz}
        next.ServeHTTP(gw, r)
    })
}

type gzipResponseWriter struct {
    http.ResponseWriter
    Writer io.Writer
}

func (g gzipResponseWriter) Write(b []byte) (int, error) {
    return g.Writer.Write(b)
}

// limitBody caps request body size to avoid memory abuse.
func limitBody(next http.Handler) http.Handler {
    const maxBody = 1 << 20 // 1MB
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        if r.Method == http.MethodPost && r.Body != nil {
            r.Body = http.MaxBytesReader(w, r.Body, maxBody)
        }
        next.ServeHTTP(w, r)
    })
}

// recoverPanic protects handlers from panics.
func recoverPanic(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        defer func() {
            if rec := recover(); rec != nil {
                http.Error(w, "internal server error", http.StatusInternalServerError)
            }
        }()
        next.ServeHTTP(w, r)
    })
}
