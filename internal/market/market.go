package market

import (
    "github.com/shopspring/decimal"
)

// Quote is the normalized intraday snapshot for one ticker.
// Decimals keep provider values exact instead of drifting through floats.
type Quote struct {
    Symbol        string          `json:"symbol"`
    Price         decimal.Decimal `json:"price"`
    Change        decimal.Decimal `json:"change"`
    ChangePercent decimal.Decimal `json:"change_percent"`
    High          decimal.Decimal `json:"high"`
    Low           decimal.Decimal `json:"low"`
    Volume        int64           `json:"volume"`
}

// Overview is the normalized fundamentals snapshot. Numeric fields are
// Metric because the provider substitutes "N/A" for anything it lacks.
type Overview struct {
    Symbol        string `json:"symbol"`
    Name          string `json:"name"`
    Description   string `json:"description"`
    MarketCap     Metric `json:"market_cap"`
    PERatio       Metric `json:"pe_ratio"`
    Week52High    Metric `json:"week_52_high"`
    Week52Low     Metric `json:"week_52_low"`
    DividendYield Metric `json:"dividend_yield"`
    EPS           Metric `json:"eps"`
}

// Sentiment is the derived label attached to each news article.
type Sentiment string

const (
    SentimentPositive Sentiment = "positive"
    SentimentNegative Sentiment = "negative"
    SentimentNeutral  Sentiment = "neutral"
)

// NewsArticle is one normalized article from the news provider.
// Sentiment is derived locally; the provider does not supply it.
type NewsArticle struct {
    Title       string    `json:"title"`
    Description string    `json:"description"`
    URL         string    `json:"url"`
    PublishedAt string    `json:"published_at"`
    Source      string    `json:"source"`
    Sentiment   Sentiment `json:"sentiment"`
}
