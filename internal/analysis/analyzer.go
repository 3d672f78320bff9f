package analysis

import (
    "context"

    "github.com/rs/zerolog"
    "github.com/shopspring/decimal"

    "stockadvisor/internal/market"
)

// Fetcher is the gateway surface the analyzer consumes. Fetches degrade
// to absent instead of failing; see the gateway package.
type Fetcher interface {
    FetchQuote(ctx context.Context, symbol string) *market.Quote
    FetchOverview(ctx context.Context, symbol string) *market.Overview
    FetchNews(ctx context.Context, symbol, nameHint string) []market.NewsArticle
}

// StockAnalysis is the per-symbol result. Built once per run and never
// mutated afterwards.
type StockAnalysis struct {
    Symbol           string               `json:"symbol"`
    Name             string               `json:"name"`
    Price            decimal.Decimal      `json:"price"`
    ChangePercent    decimal.Decimal      `json:"change_percent"`
    Recommendation   Recommendation       `json:"recommendation"`
    FundamentalScore int                  `json:"fundamental_score"`
    SentimentScore   int                  `json:"sentiment_score"`
    Overview         *market.Overview     `json:"overview,omitempty"`
    News             []market.NewsArticle `json:"news"`
}

// Summary counts recommendations across a run.
type Summary struct {
    Buy  int `json:"buy"`
    Hold int `json:"hold"`
    Sell int `json:"sell"`
}

// Result is one full sector analysis.
type Result struct {
    Sector  string          `json:"sector"`
    Weight  int             `json:"weight"`
    Summary Summary         `json:"summary"`
    Stocks  []StockAnalysis `json:"stocks"`
}

// Analyzer sequences per-symbol fetches and feeds them to the scoring
// pipeline. Symbols are processed strictly one at a time; the providers'
// free-tier quotas are enforced by the gateway's limiters, not here.
type Analyzer struct {
    fetcher Fetcher
    log     zerolog.Logger
}

func New(f Fetcher, log zerolog.Logger) *Analyzer {
    return &Analyzer{fetcher: f, log: log}
}

// AnalyzeSector runs quote -> overview -> news for up to count symbols
// of the sector. A symbol without a quote is skipped and the run carries
// on; an unknown sector yields an empty result, not an error. The context
// is checked between symbols, so cancellation returns the partial result
// along with ctx.Err().
func (a *Analyzer) AnalyzeSector(ctx context.Context, sector string, count, weight int) (*Result, error) {
    symbols := market.SectorSymbols(sector)
    if count > 0 && len(symbols) > count { symbols = symbols[:count] }

    res := &Result{Sector: sector, Weight: weight, Stocks: make([]StockAnalysis, 0, len(symbols))}
    for _, symbol := range symbols {
        if err := ctx.Err(); err != nil {
            a.log.Info().Str("sector", sector).Int("done", len(res.Stocks)).Msg("analysis canceled")
            return res, err
        }
        sa, ok := a.analyzeOne(ctx, symbol, weight)
        if !ok { continue }
        res.Stocks = append(res.Stocks, sa)
        switch sa.Recommendation {
        case Buy:
            res.Summary.Buy++
        case Hold:
            res.Summary.Hold++
        case Sell:
            res.Summary.Sell++
        }
    }
    return res, nil
}

func (a *Analyzer) analyzeOne(ctx context.Context, symbol string, weight int) (StockAnalysis, bool) {
    quote := a.fetcher.FetchQuote(ctx, symbol)
    if quote == nil {
        a.log.Warn().Str("symbol", symbol).Msg("no quote; skipping symbol")
        return StockAnalysis{}, false
    }

    overview := a.fetcher.FetchOverview(ctx, symbol)

    name := market.TrimExchangeSuffix(symbol)
    nameHint := ""
    if overview != nil && overview.Name != "" {
        name = overview.Name
        nameHint = overview.Name
    }

    news := a.fetcher.FetchNews(ctx, symbol, nameHint)

    fund := ScoreFundamentals(overview)
    sent := ScoreSentiment(news)
    return StockAnalysis{
        Symbol:           quote.Symbol,
        Name:             name,
        Price:            quote.Price,
        ChangePercent:    quote.ChangePercent,
        Recommendation:   Recommend(fund, sent, weight),
        FundamentalScore: fund,
        SentimentScore:   sent,
        Overview:         overview,
        News:             news,
    }, true
}
