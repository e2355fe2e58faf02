package types

// Bar represents a single OHLCV observation for one trading session.
// Date is kept as an opaque, chronologically ordered label; the core
// never parses it as a calendar type.
type Bar struct {
	Date   string  `csv:"Date"`
	Open   float64 `csv:"Open"`
	High   float64 `csv:"High"`
	Low    float64 `csv:"Low"`
	Close  float64 `csv:"Close"`
	Volume float64 `csv:"Volume"`
}

// ClosePrices extracts the close price series from a bar series,
// preserving positional alignment.
func ClosePrices(bars []Bar) []float64 {
	closes := make([]float64, len(bars))
	for i, bar := range bars {
		closes[i] = bar.Close
	}

	return closes
}
