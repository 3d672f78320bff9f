package gateway

import (
    "context"
    "strconv"
    "strings"
    "time"

    "github.com/rs/zerolog"
    "github.com/shopspring/decimal"
    "golang.org/x/sync/singleflight"

    "stockadvisor/internal/market"
    "stockadvisor/internal/market/alphavantage"
    "stockadvisor/internal/market/cache"
    "stockadvisor/internal/market/newsapi"
    "stockadvisor/internal/market/ratelimit"
    "stockadvisor/internal/market/sentiment"
)

// StockClient is the slice of the quote/fundamentals provider the
// gateway consumes.
type StockClient interface {
    GetGlobalQuote(ctx context.Context, symbol string, opts ...alphavantage.ClientOption) (*alphavantage.GlobalQuote, error)
    GetOverview(ctx context.Context, symbol string, opts ...alphavantage.ClientOption) (*alphavantage.Overview, error)
}

// NewsClient is the slice of the news provider the gateway consumes.
type NewsClient interface {
    Everything(ctx context.Context, query string) ([]newsapi.Article, error)
}

// Config controls caching inside the gateway. Zero TTLs disable the
// corresponding cache.
type Config struct {
    OverviewTTL time.Duration
    NewsTTL     time.Duration
    MaxItems    int
}

// Gateway normalizes the two upstream providers into market types.
// Every fetch degrades to absent (nil or an empty slice) on transport,
// parse or no-data failures; errors are logged here and never reach the
// caller. Outbound calls are gated by the per-provider limiters.
type Gateway struct {
    cfg    Config
    stocks StockClient
    news   NewsClient

    stockLimit ratelimit.Limiter
    newsLimit  ratelimit.Limiter

    overviews *cache.Store[*market.Overview]
    articles  *cache.Store[[]market.NewsArticle]
    sf        singleflight.Group

    log zerolog.Logger
}

func New(cfg Config, stocks StockClient, news NewsClient, stockLimit, newsLimit ratelimit.Limiter, log zerolog.Logger) *Gateway {
    if stockLimit == nil { stockLimit = ratelimit.None{} }
    if newsLimit == nil { newsLimit = ratelimit.None{} }
    return &Gateway{
        cfg:        cfg,
        stocks:     stocks,
        news:       news,
        stockLimit: stockLimit,
        newsLimit:  newsLimit,
        overviews:  cache.New[*market.Overview](cfg.OverviewTTL, cfg.MaxItems),
        articles:   cache.New[[]market.NewsArticle](cfg.NewsTTL, cfg.MaxItems),
        log:        log,
    }
}

// FetchQuote returns the normalized quote for symbol, or nil when the
// provider has nothing. nil is not an error condition for callers: a
// missing quote must never abort an analysis run.
func (g *Gateway) FetchQuote(ctx context.Context, symbol string) *market.Quote {
    if err := g.stockLimit.Wait(ctx); err != nil {
        g.log.Debug().Err(err).Str("symbol", symbol).Msg("quote wait aborted")
        return nil
    }
    raw, err := g.stocks.GetGlobalQuote(ctx, symbol)
    if err != nil {
        g.log.Warn().Err(err).Str("symbol", symbol).Msg("quote fetch failed")
        return nil
    }
    if raw == nil {
        g.log.Debug().Str("symbol", symbol).Msg("quote: provider had no data")
        return nil
    }
    return &market.Quote{
        Symbol:        raw.Symbol,
        Price:         parseDecimal(raw.Price),
        Change:        parseDecimal(raw.Change),
        ChangePercent: parseDecimal(strings.TrimSuffix(strings.TrimSpace(raw.ChangePercent), "%")),
        High:          parseDecimal(raw.High),
        Low:           parseDecimal(raw.Low),
        Volume:        parseInt(raw.Volume),
    }
}

// FetchOverview returns normalized fundamentals for symbol, or nil when
// absent. Results are cached by TTL; concurrent callers for the same
// symbol share one upstream request.
func (g *Gateway) FetchOverview(ctx context.Context, symbol string) *market.Overview {
    if ov, ok := g.overviews.Get(symbol); ok { return ov }
    v, _, _ := g.sf.Do("overview:"+symbol, func() (any, error) {
        return g.fetchOverview(ctx, symbol), nil
    })
    ov, _ := v.(*market.Overview)
    return ov
}

func (g *Gateway) fetchOverview(ctx context.Context, symbol string) *market.Overview {
    if err := g.stockLimit.Wait(ctx); err != nil {
        g.log.Debug().Err(err).Str("symbol", symbol).Msg("overview wait aborted")
        return nil
    }
    raw, err := g.stocks.GetOverview(ctx, symbol)
    if err != nil {
        g.log.Warn().Err(err).Str("symbol", symbol).Msg("overview fetch failed")
        return nil
    }
    if raw == nil {
        g.log.Debug().Str("symbol", symbol).Msg("overview: provider had no data")
        return nil
    }
    ov := &market.Overview{
        Symbol:        raw.Symbol,
        Name:          raw.Name,
        Description:   raw.Description,
        MarketCap:     market.ParseMetric(raw.MarketCap),
        PERatio:       market.ParseMetric(raw.PERatio),
        Week52High:    market.ParseMetric(raw.Week52High),
        Week52Low:     market.ParseMetric(raw.Week52Low),
        DividendYield: market.ParseMetric(raw.DividendYield),
        EPS:           market.ParseMetric(raw.EPS),
    }
    // absent overviews are not cached; the provider may recover
    g.overviews.Set(symbol, ov)
    return ov
}

// FetchNews returns up to five recent articles for the stock, each
// annotated with a derived sentiment. The company name is a far better
// search term than an exchange-qualified ticker, so it wins when known;
// the fallback is the ticker with its exchange suffix stripped. Failures
// and zero hits both yield an empty slice, never nil-vs-error semantics.
func (g *Gateway) FetchNews(ctx context.Context, symbol, nameHint string) []market.NewsArticle {
    query := strings.TrimSpace(nameHint)
    if query == "" { query = market.TrimExchangeSuffix(symbol) }
    if arts, ok := g.articles.Get(query); ok { return arts }

    v, _, _ := g.sf.Do("news:"+query, func() (any, error) {
        return g.fetchNews(ctx, symbol, query), nil
    })
    arts, _ := v.([]market.NewsArticle)
    if arts == nil { arts = []market.NewsArticle{} }
    return arts
}

func (g *Gateway) fetchNews(ctx context.Context, symbol, query string) []market.NewsArticle {
    if err := g.newsLimit.Wait(ctx); err != nil {
        g.log.Debug().Err(err).Str("symbol", symbol).Msg("news wait aborted")
        return []market.NewsArticle{}
    }
    raw, err := g.news.Everything(ctx, query)
    if err != nil {
        g.log.Warn().Err(err).Str("symbol", symbol).Str("query", query).Msg("news fetch failed")
        return []market.NewsArticle{}
    }
    out := make([]market.NewsArticle, 0, len(raw))
    for _, a := range raw {
        out = append(out, market.NewsArticle{
            Title:       a.Title,
            Description: a.Description,
            URL:         a.URL,
            PublishedAt: a.PublishedAt,
            Source:      a.Source.Name,
            Sentiment:   sentiment.Classify(a.Title + " " + a.Description),
        })
    }
    g.articles.Set(query, out)
    return out
}

func parseDecimal(s string) decimal.Decimal {
    d, err := decimal.NewFromString(strings.TrimSpace(s))
    if err != nil { return decimal.Zero }
    return d
}

func parseInt(s string) int64 {
    v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
    if err != nil { return 0 }
    return v
}
