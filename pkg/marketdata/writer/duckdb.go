package writer

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/quantlab-oss/tradekit/internal/types"
	"github.com/quantlab-oss/tradekit/pkg/errors"
)

// DuckDBWriter implements BarWriter on top of an in-memory DuckDB
// instance. Bars are inserted inside one transaction and exported as a
// CSV file on Finalize, which keeps very large downloads out of Go
// memory.
type DuckDBWriter struct {
	db         *sql.DB
	tx         *sql.Tx
	stmt       *sql.Stmt
	outputPath string
}

// NewDuckDBWriter creates a writer that exports to the given CSV path.
func NewDuckDBWriter(outputPath string) BarWriter {
	return &DuckDBWriter{outputPath: outputPath}
}

// Initialize implements BarWriter. It opens the database, creates the
// bars table, begins a transaction and prepares the insert statement.
func (w *DuckDBWriter) Initialize() (err error) {
	w.db, err = sql.Open("duckdb", ":memory:")
	if err != nil {
		return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to open DuckDB connection", err)
	}

	_, err = w.db.Exec(`
		CREATE TABLE IF NOT EXISTS bars (
			id TEXT,
			date TEXT,
			open DOUBLE,
			high DOUBLE,
			low DOUBLE,
			close DOUBLE,
			volume DOUBLE
		)
	`)
	if err != nil {
		w.db.Close()

		return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to create table", err)
	}

	w.tx, err = w.db.Begin()
	if err != nil {
		w.db.Close()

		return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to begin transaction", err)
	}

	w.stmt, err = w.tx.Prepare(`
		INSERT INTO bars (id, date, open, high, low, close, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		w.tx.Rollback()
		w.db.Close()

		return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to prepare statement", err)
	}

	return nil
}

// Write implements BarWriter.
func (w *DuckDBWriter) Write(bar types.Bar) error {
	if w.stmt == nil {
		return errors.New(errors.ErrCodeMarketDataWriteFailed, "writer not initialized or statement is nil")
	}

	_, err := w.stmt.Exec(
		uuid.New().String(),
		bar.Date,
		bar.Open,
		bar.High,
		bar.Low,
		bar.Close,
		bar.Volume,
	)
	if err != nil {
		return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to insert bar", err)
	}

	return nil
}

// Finalize implements BarWriter. It commits the transaction and
// exports the bars table to CSV in the layout the loaders expect.
func (w *DuckDBWriter) Finalize() (string, error) {
	if w.tx == nil {
		return "", errors.New(errors.ErrCodeMarketDataWriteFailed, "writer not initialized or transaction is nil")
	}

	if err := w.tx.Commit(); err != nil {
		w.tx.Rollback()

		return "", errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to commit transaction", err)
	}

	w.tx = nil

	query := fmt.Sprintf(`
		COPY (
			SELECT
				date AS "Date",
				open AS "Open",
				high AS "High",
				low AS "Low",
				close AS "Close",
				volume AS "Volume"
			FROM bars
			ORDER BY date ASC
		) TO '%s' (FORMAT CSV, HEADER)
	`, w.outputPath)

	if _, err := w.db.Exec(query); err != nil {
		return "", errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to export to CSV", err)
	}

	return w.outputPath, nil
}

// Close implements BarWriter.
func (w *DuckDBWriter) Close() error {
	var closeErrors []error

	if w.stmt != nil {
		if err := w.stmt.Close(); err != nil {
			closeErrors = append(closeErrors, err)
		}

		w.stmt = nil
	}

	if w.tx != nil {
		if err := w.tx.Rollback(); err != nil {
			log.Printf("Warning: failed to rollback transaction during close: %v", err)
		}

		w.tx = nil
	}

	if w.db != nil {
		if err := w.db.Close(); err != nil {
			closeErrors = append(closeErrors, err)
		}

		w.db = nil
	}

	if len(closeErrors) > 0 {
		errMsg := "errors occurred during close:"
		for _, e := range closeErrors {
			errMsg += fmt.Sprintf("\n- %v", e)
		}

		return errors.New(errors.ErrCodeMarketDataWriteFailed, errMsg)
	}

	return nil
}

// GetOutputPath implements BarWriter.
func (w *DuckDBWriter) GetOutputPath() string {
	return w.outputPath
}
