package writer

import (
	"os"

	"github.com/gocarina/gocsv"
	"github.com/quantlab-oss/tradekit/internal/types"
	"github.com/quantlab-oss/tradekit/pkg/errors"
)

// CSVWriter buffers bars in memory and writes them as one CSV file in
// the Date,Open,High,Low,Close,Volume layout the loaders expect.
type CSVWriter struct {
	outputPath string
	bars       []types.Bar
}

// NewCSVWriter creates a writer targeting the given file path.
func NewCSVWriter(outputPath string) BarWriter {
	return &CSVWriter{outputPath: outputPath}
}

// Initialize implements BarWriter.
func (w *CSVWriter) Initialize() error {
	w.bars = []types.Bar{}

	return nil
}

// Write implements BarWriter.
func (w *CSVWriter) Write(bar types.Bar) error {
	if w.bars == nil {
		return errors.New(errors.ErrCodeMarketDataWriteFailed, "writer not initialized")
	}

	w.bars = append(w.bars, bar)

	return nil
}

// Finalize implements BarWriter.
func (w *CSVWriter) Finalize() (string, error) {
	file, err := os.Create(w.outputPath)
	if err != nil {
		return "", errors.Wrapf(errors.ErrCodeMarketDataWriteFailed, err, "failed to create output file: %s", w.outputPath)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&w.bars, file); err != nil {
		return "", errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to write CSV", err)
	}

	return w.outputPath, nil
}

// Close implements BarWriter.
func (w *CSVWriter) Close() error {
	w.bars = nil

	return nil
}

// GetOutputPath implements BarWriter.
func (w *CSVWriter) GetOutputPath() string {
	return w.outputPath
}
