package market

import (
    "sort"
    "strings"
)

// sectorSymbols maps each supported sector to the five tickers analyzed
// for it. Symbols carry the BSE suffix the quote provider expects for
// Indian listings. Static on purpose: there is no runtime extension.
var sectorSymbols = map[string][]string{
    "Technology": {"INFY.BSE", "TCS.BSE", "WIPRO.BSE", "HCLTECH.BSE", "TECHM.BSE"},
    "Banking":    {"HDFCBANK.BSE", "ICICIBANK.BSE", "SBIN.BSE", "AXISBANK.BSE", "KOTAKBANK.BSE"},
    "Energy":     {"RELIANCE.BSE", "ONGC.BSE", "NTPC.BSE", "POWERGRID.BSE", "BPCL.BSE"},
    "Healthcare": {"SUNPHARMA.BSE", "DRREDDY.BSE", "CIPLA.BSE", "DIVISLAB.BSE", "BIOCON.BSE"},
    "Consumer":   {"HINDUNILVR.BSE", "ITC.BSE", "NESTLEIND.BSE", "BRITANNIA.BSE", "DABUR.BSE"},
    "Automotive": {"MARUTI.BSE", "TATAMOTORS.BSE", "M&M.BSE", "BAJAJ-AUTO.BSE", "HEROMOTOCO.BSE"},
}

// SectorSymbols returns the tickers for a sector in their fixed order.
// Unknown sectors yield an empty slice, not an error.
func SectorSymbols(sector string) []string {
    syms, ok := sectorSymbols[sector]
    if !ok { return []string{} }
    out := make([]string, len(syms))
    copy(out, syms)
    return out
}

// Sectors lists the supported sector names, sorted.
func Sectors() []string {
    out := make([]string, 0, len(sectorSymbols))
    for name := range sectorSymbols { out = append(out, name) }
    sort.Strings(out)
    return out
}

// TrimExchangeSuffix strips the exchange qualifier from a ticker for
// display and news search ("INFY.BSE" -> "INFY"). The bare ticker is
// still a poor search term, but better than one with a suffix.
func TrimExchangeSuffix(symbol string) string {
    for _, suffix := range []string{".BSE", ".NSE"} {
        symbol = strings.TrimSuffix(symbol, suffix)
    }
    return symbol
}
