package store

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	"CycleBand/internal/model"

	_ "modernc.org/sqlite"
)

const dateLayout = "2006-01-02"

// Store persists the canonical daily price series in a SQLite database.
// Upserts are keyed by calendar date, so the series can never hold duplicates.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (or creates) the SQLite database and runs migrations.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so a report run can read while a refresh writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite store opened: %s", dbPath)
	return s, nil
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS klines (
			dt1        DATE,
			price      REAL,
			open       REAL,
			high       REAL,
			low        REAL,
			close      REAL,
			volume     REAL,
			num_trades INTEGER,
			UNIQUE (dt1)
		)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// UpsertCandles writes a batch of daily candles in a single transaction.
// On a date conflict every numeric field is overwritten with the new values.
// The stored price is the candle's reference price.
func (s *Store) UpsertCandles(candles []model.Candle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO klines
		(dt1, price, open, high, low, close, volume, num_trades)
		VALUES (?,?,?,?,?,?,?,?)
		ON CONFLICT(dt1) DO UPDATE SET
			price      = excluded.price,
			open       = excluded.open,
			high       = excluded.high,
			low        = excluded.low,
			close      = excluded.close,
			volume     = excluded.volume,
			num_trades = excluded.num_trades`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, c := range candles {
		if _, err := stmt.Exec(
			c.Date.UTC().Format(dateLayout), c.ReferencePrice(),
			c.Open, c.High, c.Low, c.Close, c.Volume, c.Trades,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("upsert %s: %w", c.Date.UTC().Format(dateLayout), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// PromoteLatestClose overwrites the reference price of the most recent date
// with that day's close price, and returns the date that was updated.
func (s *Store) PromoteLatestClose() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(
		`UPDATE klines SET price = close WHERE dt1 = (SELECT MAX(dt1) FROM klines)`,
	); err != nil {
		return "", fmt.Errorf("promote latest close: %w", err)
	}

	var latest sql.NullString
	if err := s.db.QueryRow(`SELECT MAX(dt1) FROM klines`).Scan(&latest); err != nil {
		return "", fmt.Errorf("select latest date: %w", err)
	}
	if !latest.Valid {
		return "", nil
	}
	return latest.String, nil
}

// ReadSeries returns the full price series ordered ascending by date.
// An empty store yields an empty series, not an error.
func (s *Store) ReadSeries() ([]model.PricePoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT dt1, price FROM klines ORDER BY dt1 ASC`)
	if err != nil {
		return nil, fmt.Errorf("select series: %w", err)
	}
	defer rows.Close()

	var series []model.PricePoint
	for rows.Next() {
		var dt string
		var price float64
		if err := rows.Scan(&dt, &price); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		date, err := time.ParseInLocation(dateLayout, dt, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("parse date %q: %w", dt, err)
		}
		series = append(series, model.PricePoint{Date: date, Price: price})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return series, nil
}

// AvgDailyIncrease returns the average day-over-day price change across the
// trailing number of calendar days, rounded to 4 decimals. Zero when there is
// not enough history.
func (s *Store) AvgDailyIncrease(days int) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var avg sql.NullFloat64
	err := s.db.QueryRow(`SELECT ROUND(AVG(daily_increase), 4)
		FROM (
			SELECT dt1, (price - LAG(price) OVER (ORDER BY dt1)) AS daily_increase
			FROM klines
			WHERE dt1 >= date('now', '-' || ? || ' days')
		)
		WHERE daily_increase IS NOT NULL`, days).Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("avg daily increase: %w", err)
	}
	if !avg.Valid {
		return 0, nil
	}
	return avg.Float64, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	log.Println("[INFO] closing sqlite store")
	return s.db.Close()
}
