// Package provider downloads daily bar history from external market
// data vendors.
package provider

import (
	"context"
	"time"

	"github.com/quantlab-oss/tradekit/pkg/errors"
	"github.com/quantlab-oss/tradekit/pkg/marketdata/writer"
)

// Type identifies a market data vendor.
type Type string

const (
	TypePolygon Type = "polygon"
	TypeBinance Type = "binance"
)

// OnDownloadProgress reports download progress to the caller.
type OnDownloadProgress = func(current float64, total float64, message string)

// Provider downloads daily bars for one ticker and persists them
// through a configured writer.
type Provider interface {
	// ConfigWriter sets the destination for downloaded bars. It must
	// be called before Download.
	ConfigWriter(w writer.BarWriter)
	// Download fetches daily bars for the ticker over the date range
	// and returns the path the writer produced. Cancel the context to
	// stop the download.
	Download(ctx context.Context, ticker string, startDate, endDate time.Time, onProgress OnDownloadProgress) (path string, err error)
}

// NewProvider creates a provider of the given type. Polygon requires
// an API key; Binance uses its public endpoints.
func NewProvider(providerType Type, apiKey string) (Provider, error) {
	switch providerType {
	case TypePolygon:
		return NewPolygonClient(apiKey)
	case TypeBinance:
		return NewBinanceClient()
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidProvider, "unsupported market data provider: %s", providerType)
	}
}
