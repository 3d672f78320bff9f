package analysis

import (
    "math"

    "github.com/shopspring/decimal"

    "stockadvisor/internal/market"
)

// Recommendation is the final categorical call for a stock.
type Recommendation string

const (
    Buy  Recommendation = "BUY"
    Hold Recommendation = "HOLD"
    Sell Recommendation = "SELL"
)

// PE band edges. The bands, the per-band bonuses and the 70/50 thresholds
// below are empirical constants callers depend on; keep them exact.
var (
    pe15 = decimal.NewFromInt(15)
    pe25 = decimal.NewFromInt(25)
    pe35 = decimal.NewFromInt(35)
)

// ScoreFundamentals maps valuation, earnings and dividend metrics to a
// 0-100 heuristic. A missing overview is neutral (50); an unparseable
// metric contributes nothing rather than failing.
func ScoreFundamentals(ov *market.Overview) int {
    if ov == nil { return 50 }
    score := 50

    if ov.PERatio.Valid {
        pe := ov.PERatio.Value
        switch {
        case pe.IsPositive() && pe.LessThan(pe15):
            score += 20
        case pe.GreaterThanOrEqual(pe15) && pe.LessThan(pe25):
            score += 10
        case pe.GreaterThanOrEqual(pe25) && pe.LessThan(pe35):
            score += 5
        }
    }
    if ov.EPS.Valid && ov.EPS.Value.IsPositive() { score += 15 }
    if ov.DividendYield.Valid && ov.DividendYield.Value.IsPositive() { score += 15 }

    return clamp(score)
}

// ScoreSentiment averages per-article sentiment (positive=100, neutral=50,
// negative=0) and rounds halves away from zero. No articles is neutral.
func ScoreSentiment(articles []market.NewsArticle) int {
    if len(articles) == 0 { return 50 }
    total := 0
    for _, a := range articles {
        switch a.Sentiment {
        case market.SentimentPositive:
            total += 100
        case market.SentimentNegative:
            // 0
        default:
            total += 50
        }
    }
    avg := float64(total) / float64(len(articles))
    return clamp(int(math.Round(avg)))
}

// Recommend blends the two scores into a recommendation. weight is the
// sentiment share in percent: 0 decides on fundamentals alone, 100 on
// sentiment alone. Pure step function; no hysteresis.
func Recommend(fundamental, sentimentScore, weight int) Recommendation {
    if weight < 0 { weight = 0 }
    if weight > 100 { weight = 100 }
    w := float64(weight) / 100.0
    blended := float64(fundamental)*(1-w) + float64(sentimentScore)*w
    switch {
    case blended >= 70:
        return Buy
    case blended >= 50:
        return Hold
    default:
        return Sell
    }
}

func clamp(v int) int {
    if v < 0 { return 0 }
    if v > 100 { return 100 }
    return v
}
