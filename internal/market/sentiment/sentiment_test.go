package sentiment

import (
    "testing"

    "stockadvisor/internal/market"
)

func TestClassify_Positive(t *testing.T) {
    for _, text := range []string{
        "Record profit growth for the quarter",
        "Shares surge after strong earnings beat",
        "GROWTH OUTLOOK REMAINS BULLISH",
    } {
        if got := Classify(text); got != market.SentimentPositive {
            t.Fatalf("Classify(%q) = %s, want positive", text, got)
        }
    }
}

func TestClassify_Negative(t *testing.T) {
    for _, text := range []string{
        "Sharp decline in sales",
        "Stock crashes as margins slump and guidance is cut",
    } {
        if got := Classify(text); got != market.SentimentNegative {
            t.Fatalf("Classify(%q) = %s, want negative", text, got)
        }
    }
}

func TestClassify_TiesAndMisses(t *testing.T) {
    // one positive cue, one negative cue
    if got := Classify("profit and loss statement released"); got != market.SentimentNeutral {
        t.Fatalf("tie should be neutral, got %s", got)
    }
    if got := Classify("quarterly report published on schedule"); got != market.SentimentNeutral {
        t.Fatalf("no cues should be neutral, got %s", got)
    }
    if got := Classify(""); got != market.SentimentNeutral {
        t.Fatalf("empty text should be neutral, got %s", got)
    }
}

func TestClassify_SubstringMatching(t *testing.T) {
    // "up" matches inside "upward"; matching is substring based
    if got := Classify("analysts see upward momentum"); got != market.SentimentPositive {
        t.Fatalf("want positive, got %s", got)
    }
}
