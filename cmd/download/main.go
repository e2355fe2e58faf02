// Command download fetches daily bar history from a market data vendor
// and writes it as a CSV file the other commands can consume.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/quantlab-oss/tradekit/internal/version"
	"github.com/quantlab-oss/tradekit/pkg/errors"
	"github.com/quantlab-oss/tradekit/pkg/marketdata/provider"
	"github.com/quantlab-oss/tradekit/pkg/marketdata/writer"
	"github.com/urfave/cli/v3"
)

// WriterType selects how downloaded bars are persisted.
type WriterType string

const (
	WriterCSV    WriterType = "csv"
	WriterDuckDB WriterType = "duckdb"
)

func newWriter(writerType WriterType, outputPath string) (writer.BarWriter, error) {
	switch writerType {
	case WriterCSV:
		return writer.NewCSVWriter(outputPath), nil
	case WriterDuckDB:
		return writer.NewDuckDBWriter(outputPath), nil
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidParameter, "unsupported writer: %s", writerType)
	}
}

func downloadAction(ctx context.Context, cmd *cli.Command) error {
	ticker := cmd.String("ticker")
	startDate := cmd.Timestamp("start")
	endDate := cmd.Timestamp("end")
	providerFlag := cmd.String("provider")
	writerFlag := cmd.String("writer")
	outputPath := cmd.String("output")

	client, err := provider.NewProvider(provider.Type(providerFlag), os.Getenv("POLYGON_API_KEY"))
	if err != nil {
		return err
	}

	barWriter, err := newWriter(WriterType(writerFlag), outputPath)
	if err != nil {
		return err
	}

	client.ConfigWriter(barWriter)

	log.Printf("Starting download for %s from %s to %s using %s provider...",
		ticker, startDate.Format("2006-01-02"), endDate.Format("2006-01-02"), providerFlag)

	path, err := client.Download(ctx, ticker, startDate, endDate, func(current, total float64, message string) {})
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}

	log.Printf("Download completed successfully: %s", path)

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:    "download",
		Usage:   "Download historical daily bars",
		Version: version.GetVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "ticker",
				Aliases:  []string{"t"},
				Usage:    "Ticker symbol",
				Required: true,
			},
			&cli.TimestampFlag{
				Name:    "start",
				Aliases: []string{"s"},
				Usage:   "Start date in `YYYY-MM-DD` format",
				Config: cli.TimestampConfig{
					Layouts: []string{"2006-01-02"},
				},
				Required: true,
			},
			&cli.TimestampFlag{
				Name:    "end",
				Aliases: []string{"e"},
				Usage:   "End date in `YYYY-MM-DD` format. Defaults to today.",
				Value:   time.Now(),
				Config: cli.TimestampConfig{
					Layouts: []string{"2006-01-02"},
				},
			},
			&cli.StringFlag{
				Name:    "provider",
				Aliases: []string{"p"},
				Usage:   fmt.Sprintf("Data provider to use (%s, %s)", provider.TypePolygon, provider.TypeBinance),
				Value:   string(provider.TypePolygon),
			},
			&cli.StringFlag{
				Name:    "writer",
				Aliases: []string{"w"},
				Usage:   fmt.Sprintf("Writer to use (%s, %s)", WriterCSV, WriterDuckDB),
				Value:   string(WriterCSV),
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Path for the output CSV file",
				Value:   "bars.csv",
			},
		},
		Action: downloadAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
