// SPDX-License-Identifier: MIT

package source

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/katalvlaran/routesolver/legrepo"
	"github.com/katalvlaran/routesolver/trip"
)

//go:embed schema.sql
var schemaSQL string

// SQLite is a Source backed by a SQLite leg table. Times are stored as
// Unix milliseconds (UTC), prices in minor units.
type SQLite struct {
	conn    *sql.DB
	writeMu sync.Mutex // serializes writers
}

// OpenSQLite opens (creating if needed) the database at path and ensures
// the schema. Use ":memory:" for a throwaway store.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	dsn := path
	if path != ":memory:" {
		dsn += "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("source: open sqlite %s: %w", path, err)
	}

	// One connection: SQLite has a single writer, and ":memory:" databases
	// are per connection.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(time.Hour)

	if err = conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("source: ping sqlite %s: %w", path, err)
	}
	db := &SQLite{conn: conn}
	if err = db.EnsureSchema(ctx); err != nil {
		conn.Close()
		return nil, err
	}

	return db, nil
}

// Close closes the database.
func (db *SQLite) Close() error { return db.conn.Close() }

// EnsureSchema creates the legs table if it does not exist.
func (db *SQLite) EnsureSchema(ctx context.Context) error {
	db.writeMu.Lock()
	defer db.writeMu.Unlock()
	if _, err := db.conn.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("source: create schema: %w", err)
	}

	return nil
}

// SaveLegs stores legs in one transaction, ignoring duplicates. Invalid
// legs abort the whole batch. It returns the number of rows inserted.
func (db *SQLite) SaveLegs(ctx context.Context, legs []trip.Leg) (int, error) {
	for i, l := range legs {
		if err := l.Validate(); err != nil {
			return 0, fmt.Errorf("source: leg %d: %w", i, err)
		}
	}

	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("source: begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO legs
			(origin, destination, departure_day, departure, arrival, price,
			 currency, carrier, flight_number, fare_class)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("source: prepare insert: %w", err)
	}
	defer stmt.Close()

	var inserted int
	for _, l := range legs {
		k := legrepo.KeyOf(l)
		res, err := stmt.ExecContext(ctx,
			k.Origin, k.Destination, int64(k.Day),
			l.Departure.UnixMilli(), l.Arrival.UnixMilli(), int64(l.Price),
			l.Currency, l.Carrier, l.FlightNumber, l.FareClass)
		if err != nil {
			return 0, fmt.Errorf("source: insert %s: %w", l, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}
	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("source: commit: %w", err)
	}

	return inserted, nil
}

// FetchLegs implements legrepo.Source.
func (db *SQLite) FetchLegs(ctx context.Context, origin, destination string, dr trip.DateRange) ([]trip.Leg, error) {
	k := legrepo.NewKey(origin, destination, dr.From)
	rows, err := db.conn.QueryContext(ctx, `
		SELECT origin, destination, departure, arrival, price,
		       currency, carrier, flight_number, fare_class
		FROM legs
		WHERE origin = ? AND destination = ? AND departure_day BETWEEN ? AND ?
		ORDER BY departure, arrival`,
		k.Origin, k.Destination, int64(dr.From), int64(dr.To))
	if err != nil {
		return nil, fmt.Errorf("%w: query %s: %v", legrepo.ErrFetchFailed, k, err)
	}
	defer rows.Close()

	var out []trip.Leg
	for rows.Next() {
		var (
			l        trip.Leg
			dep, arr int64
			price    int64
		)
		if err = rows.Scan(&l.Origin, &l.Destination, &dep, &arr, &price,
			&l.Currency, &l.Carrier, &l.FlightNumber, &l.FareClass); err != nil {
			return nil, fmt.Errorf("%w: scan %s: %v", legrepo.ErrFetchFailed, k, err)
		}
		l.Departure = time.UnixMilli(dep).UTC()
		l.Arrival = time.UnixMilli(arr).UTC()
		l.Price = trip.Money(price)
		out = append(out, l)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows %s: %v", legrepo.ErrFetchFailed, k, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s→%s %s", legrepo.ErrDataUnavailable, k.Origin, k.Destination, dr)
	}

	return out, nil
}
