package main

import (
    "bytes"
    "context"
    "encoding/json"
    "flag"
    "fmt"
    "io"
    "log"
    "net/http"
    "net/url"
    "os"
    "time"

    "stockadvisor/internal/config"
)

// avdump fetches one raw Alpha Vantage payload and pretty-prints it.
// Handy for checking what the provider actually returns for a symbol
// before blaming the normalization layer.
func main() {
    var (
        symbol     string
        function   string
        cfgPath    string
        timeoutSec int
    )
    flag.StringVar(&symbol, "symbol", "INFY.BSE", "symbol to look up")
    flag.StringVar(&function, "function", "quote", "quote or overview")
    flag.StringVar(&cfgPath, "config", "", "path to config.json (optional)")
    flag.IntVar(&timeoutSec, "timeout", 20, "HTTP timeout seconds")
    flag.Parse()

    cfg, err := config.Load(cfgPath)
    if err != nil {
        log.Fatalf("config: %v", err)
    }
    if cfg.AlphaVantage.APIKey == "" {
        log.Fatal("ALPHAVANTAGE_API_KEY missing (set in config.json or env)")
    }
    base := cfg.AlphaVantage.BaseURL
    if base == "" {
        base = "https://www.alphavantage.co"
    }

    var fn string
    switch function {
    case "quote":
        fn = "GLOBAL_QUOTE"
    case "overview":
        fn = "OVERVIEW"
    default:
        log.Fatalf("unknown function %q (want quote or overview)", function)
    }

    q := url.Values{}
    q.Set("function", fn)
    q.Set("symbol", symbol)
    q.Set("apikey", cfg.AlphaVantage.APIKey)

    ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSec)*time.Second)
    defer cancel()
    req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/query?"+q.Encode(), nil)
    if err != nil {
        log.Fatalf("request: %v", err)
    }
    req.Header.Set("Accept", "application/json")

    hc := &http.Client{Timeout: time.Duration(timeoutSec) * time.Second}
    resp, err := hc.Do(req)
    if err != nil {
        log.Fatalf("fetch: %v", err)
    }
    defer resp.Body.Close()
    body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
    if err != nil {
        log.Fatalf("read: %v", err)
    }
    if resp.StatusCode != http.StatusOK {
        log.Fatalf("http %d: %s", resp.StatusCode, string(body))
    }

    var out bytes.Buffer
    if err := json.Indent(&out, body, "", "  "); err != nil {
        // not JSON, dump as-is
        os.Stdout.Write(body)
        fmt.Println()
        return
    }
    fmt.Println(out.String())
}
