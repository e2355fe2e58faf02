package datasource

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/moznion/go-optional"
	"github.com/quantlab-oss/tradekit/internal/logger"
	"github.com/quantlab-oss/tradekit/internal/types"
	"github.com/quantlab-oss/tradekit/pkg/errors"
	"go.uber.org/zap"
)

// DuckDBSource loads bars through an in-process DuckDB instance. The
// CSV file is exposed as a view over read_csv_auto, which handles type
// inference and large files without materializing them in Go.
type DuckDBSource struct {
	db     *sql.DB
	logger *logger.Logger

	startDate optional.Option[string]
	endDate   optional.Option[string]
}

// NewDuckDBSource opens an in-memory DuckDB database and registers the
// CSV file at path as the bars view.
func NewDuckDBSource(path string, logger *logger.Logger) (*DuckDBSource, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileOpen, "failed to open DuckDB", err)
	}

	// Dates are normalized to VARCHAR so downstream comparisons stay
	// lexical, matching the rest of the toolkit.
	query := fmt.Sprintf(`
		CREATE VIEW bars AS
		SELECT
			CAST("Date" AS VARCHAR) AS date,
			CAST("Open" AS DOUBLE) AS open,
			CAST("High" AS DOUBLE) AS high,
			CAST("Low" AS DOUBLE) AS low,
			CAST("Close" AS DOUBLE) AS close,
			CAST("Volume" AS DOUBLE) AS volume
		FROM read_csv_auto('%s');
	`, path)

	if _, err := db.Exec(query); err != nil {
		db.Close()
		return nil, errors.Wrapf(errors.ErrCodeFileOpen, err, "failed to register CSV file: %s", path)
	}

	return &DuckDBSource{db: db, logger: logger}, nil
}

// WithDateRange restricts subsequent loads to bars within the given
// bounds. None leaves the corresponding side unbounded.
func (s *DuckDBSource) WithDateRange(start, end optional.Option[string]) *DuckDBSource {
	s.startDate = start
	s.endDate = end

	return s
}

func (s *DuckDBSource) selectBars() sq.SelectBuilder {
	builder := sq.Select("date", "open", "high", "low", "close", "volume").
		From("bars").
		OrderBy("date ASC")

	if s.startDate.IsSome() {
		builder = builder.Where(sq.GtOrEq{"date": s.startDate.Unwrap()})
	}

	if s.endDate.IsSome() {
		builder = builder.Where(sq.LtOrEq{"date": s.endDate.Unwrap()})
	}

	return builder
}

// Load implements DataSource.
func (s *DuckDBSource) Load(ctx context.Context) ([]types.Bar, error) {
	query, args, err := s.selectBars().ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	s.logger.Debug("Loading bars from DuckDB", zap.String("query", query))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query bars", err)
	}
	defer rows.Close()

	bars := []types.Bar{}

	for rows.Next() {
		var bar types.Bar
		if err := rows.Scan(&bar.Date, &bar.Open, &bar.High, &bar.Low, &bar.Close, &bar.Volume); err != nil {
			return nil, errors.Wrap(errors.ErrCodeDataMalformed, "failed to scan bar", err)
		}

		bars = append(bars, bar)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed while reading bars", err)
	}

	return bars, nil
}

// Count implements DataSource.
func (s *DuckDBSource) Count(ctx context.Context) (int, error) {
	query, args, err := sq.Select("COUNT(*)").FromSelect(s.selectBars(), "filtered").ToSql()
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build count query", err)
	}

	var count int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to count bars", err)
	}

	return count, nil
}

// Close implements DataSource.
func (s *DuckDBSource) Close() error {
	return s.db.Close()
}
