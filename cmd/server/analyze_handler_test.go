package main

import (
    "context"
    "encoding/json"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/rs/zerolog"
    "github.com/shopspring/decimal"

    "stockadvisor/internal/analysis"
    "stockadvisor/internal/market"
)

type fakeFetcher struct {
    quotes    map[string]*market.Quote
    overviews map[string]*market.Overview
    news      map[string][]market.NewsArticle
}

func (f fakeFetcher) FetchQuote(_ context.Context, symbol string) *market.Quote {
    return f.quotes[symbol]
}
func (f fakeFetcher) FetchOverview(_ context.Context, symbol string) *market.Overview {
    return f.overviews[symbol]
}
func (f fakeFetcher) FetchNews(_ context.Context, symbol, _ string) []market.NewsArticle {
    if n, ok := f.news[symbol]; ok { return n }
    return []market.NewsArticle{}
}

func quoteFor(symbol, price string) *market.Quote {
    return &market.Quote{Symbol: symbol, Price: decimal.RequireFromString(price)}
}

func TestAnalyze_SummaryCounts(t *testing.T) {
    // Two symbols with quotes, rest of the sector missing. Strong
    // fundamentals push INFY to BUY, absent data leaves TCS at HOLD.
    f := fakeFetcher{
        quotes: map[string]*market.Quote{
            "INFY.BSE": quoteFor("INFY.BSE", "1456.80"),
            "TCS.BSE":  quoteFor("TCS.BSE", "3890.00"),
        },
        overviews: map[string]*market.Overview{
            "INFY.BSE": {
                Symbol:        "INFY.BSE",
                Name:          "Infosys Limited",
                PERatio:       market.MetricFrom(decimal.NewFromInt(12)),
                EPS:           market.MetricFrom(decimal.NewFromInt(55)),
                DividendYield: market.MetricFrom(decimal.RequireFromString("0.02")),
            },
        },
        news: map[string][]market.NewsArticle{},
    }
    analyzer := analysis.New(f, zerolog.Nop())

    rr := httptest.NewRecorder()
    writeAnalysis(rr, context.Background(), analyzer, "Technology", 5, 30, time.Minute)
    if rr.Code != 200 { t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String()) }

    var res analysis.Result
    if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil { t.Fatalf("decode: %v", err) }
    if res.Sector != "Technology" || res.Weight != 30 {
        t.Fatalf("unexpected header: %+v", res)
    }
    if len(res.Stocks) != 2 {
        t.Fatalf("want 2 stocks, got %d: %+v", len(res.Stocks), res.Stocks)
    }
    if res.Summary.Buy != 1 || res.Summary.Hold != 1 || res.Summary.Sell != 0 {
        t.Fatalf("unexpected summary: %+v", res.Summary)
    }
    if res.Stocks[0].Symbol != "INFY.BSE" || res.Stocks[0].Name != "Infosys Limited" {
        t.Fatalf("unexpected first stock: %+v", res.Stocks[0])
    }
    if res.Stocks[0].Recommendation != analysis.Buy {
        t.Fatalf("want BUY, got %s", res.Stocks[0].Recommendation)
    }
}

func TestAnalyze_UnknownSector_EmptyResult(t *testing.T) {
    analyzer := analysis.New(fakeFetcher{}, zerolog.Nop())

    rr := httptest.NewRecorder()
    writeAnalysis(rr, context.Background(), analyzer, "Aerospace", 5, 50, time.Minute)
    if rr.Code != 200 { t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String()) }

    var res analysis.Result
    if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil { t.Fatalf("decode: %v", err) }
    if len(res.Stocks) != 0 || res.Summary != (analysis.Summary{}) {
        t.Fatalf("want empty result, got %+v", res)
    }
}

func TestAnalyze_CanceledRun_BadGateway(t *testing.T) {
    analyzer := analysis.New(fakeFetcher{}, zerolog.Nop())

    ctx, cancel := context.WithCancel(context.Background())
    cancel()
    rr := httptest.NewRecorder()
    writeAnalysis(rr, ctx, analyzer, "Technology", 5, 50, time.Minute)
    if rr.Code != 502 { t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String()) }
}

func TestIntParam(t *testing.T) {
    if v, ok := intParam("", 50); !ok || v != 50 { t.Fatalf("empty: %d %v", v, ok) }
    if v, ok := intParam("30", 50); !ok || v != 30 { t.Fatalf("valid: %d %v", v, ok) }
    if _, ok := intParam("abc", 50); ok { t.Fatal("junk accepted") }
}
