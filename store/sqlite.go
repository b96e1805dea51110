package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/carmesh/carmesh/core"
)

const schema = `
CREATE TABLE IF NOT EXISTS listings (
    id TEXT PRIMARY KEY,
    make TEXT NOT NULL,
    model TEXT NOT NULL,
    year INTEGER NOT NULL,
    price INTEGER NOT NULL,
    fuel_type TEXT NOT NULL,
    location TEXT NOT NULL,
    rating REAL NOT NULL,
    features_json TEXT
);
CREATE INDEX IF NOT EXISTS idx_listings_price ON listings(price);
CREATE INDEX IF NOT EXISTS idx_listings_location ON listings(location);
`

// SQLiteStore is a core.ListingStore backed by a SQLite catalog.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) a SQLite catalog at path. An
// empty catalog is seeded with the built-in inventory so a fresh install
// has something to search.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.seedIfEmpty(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Add inserts or replaces a listing.
func (s *SQLiteStore) Add(ctx context.Context, car core.Car) error {
	features, err := json.Marshal(car.Features)
	if err != nil {
		return fmt.Errorf("encode features: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO listings (id, make, model, year, price, fuel_type, location, rating, features_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		car.ID, car.Make, car.Model, car.Year, car.Price, car.FuelType, car.Location, car.Rating, string(features),
	)
	if err != nil {
		return fmt.Errorf("insert listing: %w", err)
	}
	return nil
}

// Search implements core.ListingStore. Ordering matches the in-memory
// store: rating descending, then price ascending.
func (s *SQLiteStore) Search(ctx context.Context, criteria core.SearchCriteria, limit int) ([]core.Car, error) {
	if limit <= 0 {
		limit = 3
	}

	var (
		where []string
		args  []any
	)
	if criteria.MaxPrice > 0 {
		where = append(where, "price <= ?")
		args = append(args, criteria.MaxPrice)
	}
	if criteria.FuelType != "" {
		where = append(where, "fuel_type = ? COLLATE NOCASE")
		args = append(args, criteria.FuelType)
	}
	if criteria.Location != "" {
		where = append(where, "location = ? COLLATE NOCASE")
		args = append(args, criteria.Location)
	}
	if criteria.Make != "" {
		where = append(where, "make = ? COLLATE NOCASE")
		args = append(args, criteria.Make)
	}
	if criteria.MinYear > 0 {
		where = append(where, "year >= ?")
		args = append(args, criteria.MinYear)
	}

	query := `SELECT id, make, model, year, price, fuel_type, location, rating, features_json FROM listings`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY rating DESC, price ASC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query listings: %w", err)
	}
	defer rows.Close()

	var cars []core.Car
	for rows.Next() {
		var (
			car      core.Car
			features string
		)
		if err := rows.Scan(&car.ID, &car.Make, &car.Model, &car.Year, &car.Price,
			&car.FuelType, &car.Location, &car.Rating, &features); err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		if features != "" {
			if err := json.Unmarshal([]byte(features), &car.Features); err != nil {
				return nil, fmt.Errorf("decode features for %s: %w", car.ID, err)
			}
		}
		cars = append(cars, car)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate listings: %w", err)
	}
	return cars, nil
}

func (s *SQLiteStore) seedIfEmpty() error {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM listings`).Scan(&count); err != nil {
		return fmt.Errorf("count listings: %w", err)
	}
	if count > 0 {
		return nil
	}
	for _, car := range seedInventory {
		if err := s.Add(context.Background(), car); err != nil {
			return err
		}
	}
	return nil
}
