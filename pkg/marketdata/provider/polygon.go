package provider

import (
	"context"
	"fmt"
	"log"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"
	"github.com/schollz/progressbar/v3"

	"github.com/quantlab-oss/tradekit/internal/types"
	"github.com/quantlab-oss/tradekit/pkg/errors"
	"github.com/quantlab-oss/tradekit/pkg/marketdata/writer"
)

// dateLayout is the bar date label format produced by downloads.
const dateLayout = "2006-01-02"

type PolygonClient struct {
	client *polygon.Client
	writer writer.BarWriter
}

// NewPolygonClient creates a Polygon-backed provider.
func NewPolygonClient(apiKey string) (Provider, error) {
	if apiKey == "" {
		return nil, errors.New(errors.ErrCodeMissingParameter, "apiKey is required")
	}

	return &PolygonClient{
		client: polygon.New(apiKey),
		writer: nil,
	}, nil
}

// ConfigWriter implements Provider.
func (c *PolygonClient) ConfigWriter(w writer.BarWriter) {
	c.writer = w
}

// Download implements Provider. It pulls daily aggregates and streams
// them into the configured writer.
func (c *PolygonClient) Download(ctx context.Context, ticker string, startDate, endDate time.Time, onProgress OnDownloadProgress) (path string, err error) {
	if c.writer == nil {
		return "", errors.New(errors.ErrCodeMarketDataFetchFailed, "no writer configured for PolygonClient. Call ConfigWriter first")
	}

	if err = c.writer.Initialize(); err != nil {
		return "", errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to initialize writer", err)
	}

	defer func() {
		if cerr := c.writer.Close(); cerr != nil {
			if err == nil {
				err = cerr
			} else {
				log.Printf("Error closing writer after another error: %v", cerr)
			}
		}
	}()

	totalDays := int(endDate.Sub(startDate).Hours()/24) + 1

	bar := progressbar.NewOptions(totalDays,
		progressbar.OptionSetDescription(fmt.Sprintf("Downloading %s", ticker)),
		progressbar.OptionShowCount(),
	)

	//nolint:exhaustruct // third-party struct with many optional fields
	params := models.ListAggsParams{
		Ticker:     ticker,
		Multiplier: 1,
		Timespan:   models.Day,
		From:       models.Millis(startDate),
		To:         models.Millis(endDate),
	}.WithLimit(50000)

	iter := c.client.ListAggs(ctx, params)

	processedCount := 0

	for iter.Next() {
		agg := iter.Item()
		timestamp := time.Time(agg.Timestamp)

		downloaded := types.Bar{
			Date:   timestamp.Format(dateLayout),
			Open:   agg.Open,
			High:   agg.High,
			Low:    agg.Low,
			Close:  agg.Close,
			Volume: agg.Volume,
		}

		if err = c.writer.Write(downloaded); err != nil {
			return "", errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to write bar", err)
		}

		processedCount++

		daysElapsed := int(timestamp.Sub(startDate).Hours() / 24)
		bar.Set(daysElapsed)
		onProgress(float64(daysElapsed), float64(totalDays), fmt.Sprintf("Downloading %s", ticker))
	}

	if iter.Err() != nil {
		return "", errors.Wrap(errors.ErrCodeMarketDataFetchFailed, "error iterating polygon aggregates", iter.Err())
	}

	bar.Finish()
	log.Printf("Finished downloading %d bars for %s.", processedCount, ticker)

	outputPath, err := c.writer.Finalize()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to finalize writer", err)
	}

	return outputPath, nil
}
