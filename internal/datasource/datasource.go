// Package datasource loads OHLCV bar series from local files.
package datasource

import (
	"context"

	"github.com/quantlab-oss/tradekit/internal/types"
)

// DataSource loads a complete bar series in file order.
type DataSource interface {
	// Load reads every bar from the underlying source. A malformed
	// record aborts the load with an error rather than being skipped,
	// so a successful load never hides gaps.
	Load(ctx context.Context) ([]types.Bar, error)

	// Count returns the number of bars the source holds.
	Count(ctx context.Context) (int, error)

	// Close releases any underlying resources.
	Close() error
}
