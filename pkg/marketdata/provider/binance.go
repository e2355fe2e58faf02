package provider

import (
	"context"
	"fmt"
	"strconv"
	"time"

	binance "github.com/adshao/go-binance/v2"

	"github.com/quantlab-oss/tradekit/internal/types"
	"github.com/quantlab-oss/tradekit/pkg/errors"
	"github.com/quantlab-oss/tradekit/pkg/marketdata/writer"
)

// binancePageSize is the maximum klines returned per request.
const binancePageSize = 500

type BinanceClient struct {
	client *binance.Client
	writer writer.BarWriter
}

// NewBinanceClient creates a Binance-backed provider using the public
// klines endpoints, so no credentials are needed.
func NewBinanceClient() (Provider, error) {
	return &BinanceClient{
		client: binance.NewClient("", ""),
		writer: nil,
	}, nil
}

// ConfigWriter implements Provider.
func (c *BinanceClient) ConfigWriter(w writer.BarWriter) {
	c.writer = w
}

// Download implements Provider. It pages through daily klines and
// streams them into the configured writer.
func (c *BinanceClient) Download(ctx context.Context, ticker string, startDate, endDate time.Time, onProgress OnDownloadProgress) (path string, err error) {
	if c.writer == nil {
		return "", errors.New(errors.ErrCodeMarketDataFetchFailed, "no writer configured for BinanceClient. Call ConfigWriter first")
	}

	if err = c.writer.Initialize(); err != nil {
		return "", errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to initialize writer", err)
	}

	defer func() {
		if cerr := c.writer.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	startTimeMillis := startDate.UnixMilli()
	endTimeMillis := endDate.UnixMilli()
	currentStartTime := startTimeMillis

	for {
		klines, err := c.client.NewKlinesService().
			Symbol(ticker).
			Interval("1d").
			StartTime(currentStartTime).
			EndTime(endTimeMillis).
			Limit(binancePageSize).
			Do(ctx)
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeMarketDataFetchFailed, "failed to fetch klines from Binance", err)
		}

		if err := c.writeKlines(ticker, klines); err != nil {
			return "", err
		}

		onProgress(
			float64(currentStartTime-startTimeMillis),
			float64(endTimeMillis-startTimeMillis),
			fmt.Sprintf("Downloading %s klines from Binance", ticker),
		)

		// Last page: either empty or shorter than the page size.
		if len(klines) < binancePageSize {
			break
		}

		// Use the close time of the last kline + 1ms to avoid duplicates.
		currentStartTime = klines[len(klines)-1].CloseTime + 1

		if currentStartTime >= endTimeMillis {
			break
		}
	}

	outputPath, err := c.writer.Finalize()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to finalize writer", err)
	}

	return outputPath, nil
}

func (c *BinanceClient) writeKlines(ticker string, klines []*binance.Kline) error {
	for _, k := range klines {
		open, err := strconv.ParseFloat(k.Open, 64)
		if err != nil {
			return errors.Wrapf(errors.ErrCodeDataMalformed, err, "malformed kline open for %s", ticker)
		}

		high, err := strconv.ParseFloat(k.High, 64)
		if err != nil {
			return errors.Wrapf(errors.ErrCodeDataMalformed, err, "malformed kline high for %s", ticker)
		}

		low, err := strconv.ParseFloat(k.Low, 64)
		if err != nil {
			return errors.Wrapf(errors.ErrCodeDataMalformed, err, "malformed kline low for %s", ticker)
		}

		closePrice, err := strconv.ParseFloat(k.Close, 64)
		if err != nil {
			return errors.Wrapf(errors.ErrCodeDataMalformed, err, "malformed kline close for %s", ticker)
		}

		volume, err := strconv.ParseFloat(k.Volume, 64)
		if err != nil {
			return errors.Wrapf(errors.ErrCodeDataMalformed, err, "malformed kline volume for %s", ticker)
		}

		downloaded := types.Bar{
			Date:   time.UnixMilli(k.OpenTime).UTC().Format(dateLayout),
			Open:   open,
			High:   high,
			Low:    low,
			Close:  closePrice,
			Volume: volume,
		}

		if err := c.writer.Write(downloaded); err != nil {
			return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to write bar", err)
		}
	}

	return nil
}
