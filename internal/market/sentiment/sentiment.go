package sentiment

import (
    "strings"

    "stockadvisor/internal/market"
)

// Cue lists scanned as substrings, so a cue inside a longer word still
// counts ("upbeat" hits both "up" and "beat"). Callers were tuned on
// this behavior; do not switch to tokenized matching.
var positiveCues = []string{
    "growth", "profit", "gain", "rise", "surge", "success", "strong",
    "beat", "high", "boost", "up", "bullish", "record",
}

var negativeCues = []string{
    "loss", "fall", "drop", "decline", "down", "weak", "miss", "low",
    "cut", "bearish", "crash", "slump",
}

// Classify labels text by strict keyword-count majority, case-insensitive.
// Equal counts, including zero hits on both sides, are neutral.
func Classify(text string) market.Sentiment {
    lower := strings.ToLower(text)
    var pos, neg int
    for _, cue := range positiveCues {
        if strings.Contains(lower, cue) { pos++ }
    }
    for _, cue := range negativeCues {
        if strings.Contains(lower, cue) { neg++ }
    }
    if pos > neg { return market.SentimentPositive }
    if neg > pos { return market.SentimentNegative }
    return market.SentimentNeutral
}
