package datasource

import (
	"context"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/quantlab-oss/tradekit/internal/logger"
	"github.com/quantlab-oss/tradekit/internal/types"
	"github.com/quantlab-oss/tradekit/pkg/errors"
	"go.uber.org/zap"
)

// CSVSource loads bars from a Date,Open,High,Low,Close,Volume file.
type CSVSource struct {
	path   string
	logger *logger.Logger
}

// NewCSVSource creates a CSV data source for the given file path.
func NewCSVSource(path string, logger *logger.Logger) DataSource {
	return &CSVSource{path: path, logger: logger}
}

// Load implements DataSource.
func (s *CSVSource) Load(ctx context.Context) ([]types.Bar, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeFileOpen, err, "failed to open the file: %s", s.path)
	}

	if len(content) == 0 {
		return []types.Bar{}, nil
	}

	// Light header sanity check: the first line must name the Date
	// column, which guards against loading an unrelated file.
	header, _, _ := strings.Cut(string(content), "\n")
	if !strings.Contains(header, "Date") {
		return nil, errors.Newf(errors.ErrCodeDataMalformed, "CSV header must contain 'Date': %s", s.path)
	}

	bars := []types.Bar{}
	if err := gocsv.UnmarshalBytes(content, &bars); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeDataMalformed, err, "failed to parse CSV file: %s", s.path)
	}

	s.logger.Debug("Loaded bars from CSV",
		zap.String("path", s.path),
		zap.Int("bars", len(bars)),
	)

	return bars, nil
}

// Count implements DataSource.
func (s *CSVSource) Count(ctx context.Context) (int, error) {
	bars, err := s.Load(ctx)
	if err != nil {
		return 0, err
	}

	return len(bars), nil
}

// Close implements DataSource.
func (s *CSVSource) Close() error {
	return nil
}
