package types

// IndicatorType identifies a technical indicator variant.
type IndicatorType string

const (
	IndicatorTypeSMA  IndicatorType = "sma"
	IndicatorTypeEMA  IndicatorType = "ema"
	IndicatorTypeRSI  IndicatorType = "rsi"
	IndicatorTypeMACD IndicatorType = "macd"
)
