// Package postgres stores daily quote history in PostgreSQL for
// deployments where the CSV cache is not enough (shared instances,
// persistent volumes).
package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/JoseExp44/StockWebApp/domain/market"
	"github.com/JoseExp44/StockWebApp/internal/errors"
)

// quoteRow mirrors the quotes table
type quoteRow struct {
	Ticker string    `db:"ticker"`
	Date   time.Time `db:"date"`
	Close  float64   `db:"close"`
}

// QuoteRepositoryImpl implements ports.QuoteRepository for PostgreSQL
type QuoteRepositoryImpl struct {
	db *sqlx.DB
}

// NewQuoteRepository creates a PostgreSQL quote repository and ensures
// the schema exists
func NewQuoteRepository(db *sqlx.DB) (*QuoteRepositoryImpl, error) {
	repo := &QuoteRepositoryImpl{db: db}
	if err := repo.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *QuoteRepositoryImpl) ensureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS quotes (
			ticker TEXT NOT NULL,
			date   DATE NOT NULL,
			close  DOUBLE PRECISION NOT NULL,
			PRIMARY KEY (ticker, date)
		)
	`)
	if err != nil {
		return errors.StorageError("failed to create quotes table", err)
	}
	return nil
}

// LoadHistory returns a ticker's history in date order. An unknown
// ticker yields an empty slice.
func (r *QuoteRepositoryImpl) LoadHistory(ctx context.Context, ticker market.Ticker) ([]market.Quote, error) {
	var rows []quoteRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT ticker, date, close
		FROM quotes
		WHERE ticker = $1
		ORDER BY date
	`, ticker.String())
	if err != nil {
		return nil, errors.StorageError("failed to load quote history", err)
	}

	quotes := make([]market.Quote, 0, len(rows))
	for _, row := range rows {
		quotes = append(quotes, market.Quote{Date: row.Date.UTC().Truncate(24 * time.Hour), Close: row.Close})
	}
	return quotes, nil
}

// SaveHistory replaces a ticker's stored history wholesale inside one
// transaction
func (r *QuoteRepositoryImpl) SaveHistory(ctx context.Context, ticker market.Ticker, quotes []market.Quote) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.StorageError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM quotes WHERE ticker = $1`, ticker.String()); err != nil {
		return errors.StorageError("failed to clear quote history", err)
	}

	stmt, err := tx.PreparexContext(ctx, `
		INSERT INTO quotes (ticker, date, close) VALUES ($1, $2, $3)
	`)
	if err != nil {
		return errors.StorageError("failed to prepare quote insert", err)
	}
	defer stmt.Close()

	for _, q := range quotes {
		if _, err := stmt.ExecContext(ctx, ticker.String(), q.Date, q.Close); err != nil {
			return errors.StorageError("failed to insert quote", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.StorageError("failed to commit quote history", err)
	}
	return nil
}

// AvailableTickers lists the tickers that currently have stored quotes
func (r *QuoteRepositoryImpl) AvailableTickers(ctx context.Context) ([]market.Ticker, error) {
	var names []string
	err := r.db.SelectContext(ctx, &names, `
		SELECT DISTINCT ticker FROM quotes ORDER BY ticker
	`)
	if err != nil {
		return nil, errors.StorageError("failed to list tickers", err)
	}

	tickers := make([]market.Ticker, 0, len(names))
	for _, n := range names {
		tickers = append(tickers, market.Ticker(n))
	}
	return tickers, nil
}

// AllDates returns the union of quote dates across every stored ticker
func (r *QuoteRepositoryImpl) AllDates(ctx context.Context) ([]time.Time, error) {
	var raw []time.Time
	err := r.db.SelectContext(ctx, &raw, `
		SELECT DISTINCT date FROM quotes ORDER BY date
	`)
	if err != nil {
		return nil, errors.StorageError("failed to list quote dates", err)
	}

	dates := make([]time.Time, 0, len(raw))
	for _, d := range raw {
		dates = append(dates, d.UTC().Truncate(24*time.Hour))
	}
	return dates, nil
}
