package market

import (
    "encoding/json"
    "strings"

    "github.com/shopspring/decimal"
)

// Metric is an optional numeric field. The fundamentals provider returns
// sentinel strings ("N/A", "None", "-") instead of omitting values, so
// the tolerant parsing lives here rather than in every consumer.
type Metric struct {
    Valid bool
    Value decimal.Decimal
}

// ParseMetric parses a provider numeric string. Anything that is not a
// plain number yields an invalid Metric, never an error.
func ParseMetric(s string) Metric {
    s = strings.TrimSpace(s)
    switch {
    case s == "", s == "-":
        return Metric{}
    case strings.EqualFold(s, "N/A"), strings.EqualFold(s, "None"):
        return Metric{}
    }
    v, err := decimal.NewFromString(s)
    if err != nil { return Metric{} }
    return Metric{Valid: true, Value: v}
}

// MetricFrom builds a valid Metric, mostly for tests.
func MetricFrom(v decimal.Decimal) Metric { return Metric{Valid: true, Value: v} }

func (m Metric) MarshalJSON() ([]byte, error) {
    if !m.Valid { return []byte("null"), nil }
    return json.Marshal(m.Value)
}

func (m *Metric) UnmarshalJSON(b []byte) error {
    if string(b) == "null" {
        *m = Metric{}
        return nil
    }
    var v decimal.Decimal
    if err := json.Unmarshal(b, &v); err != nil {
        // tolerate quoted sentinels round-tripped by older callers
        var s string
        if err2 := json.Unmarshal(b, &s); err2 == nil {
            *m = ParseMetric(s)
            return nil
        }
        return err
    }
    *m = Metric{Valid: true, Value: v}
    return nil
}
