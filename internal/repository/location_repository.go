// Package repository provides data access implementations
package repository

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/openpaddle/paddle-planner/internal/entities"
	_ "github.com/mattn/go-sqlite3"
)

// LocationRepository defines the interface for geocoded location persistence
type LocationRepository interface {
	Lookup(zip string) (lat, lon float64, ok bool, err error)
	Save(zip string, lat, lon float64) error
	SaveLocations(locations []entities.Location) error
	Count() (int, error)
	Close() error
}

// SQLiteLocationRepository implements LocationRepository using SQLite
type SQLiteLocationRepository struct {
	db     *sql.DB
	DBPath string
}

// NewSQLiteLocationRepository creates and initializes a new SQLite repository
func NewSQLiteLocationRepository(dbPath string) (*SQLiteLocationRepository, error) {
	if dbPath == "" {
		// Set default path if not specified
		dbDir := "data"
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %v", err)
		}
		dbPath = filepath.Join(dbDir, "paddle.db")
	}

	log.Printf("Opening database at %s", dbPath)
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	// Create places table if it doesn't exist
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS places (
		zip TEXT PRIMARY KEY,
		name TEXT,
		state TEXT,
		latitude REAL NOT NULL,
		longitude REAL NOT NULL
	);`

	_, err = db.Exec(createTableSQL)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %v", err)
	}

	return &SQLiteLocationRepository{
		db:     db,
		DBPath: dbPath,
	}, nil
}

// Close closes the database connection
func (r *SQLiteLocationRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Lookup returns the cached coordinates for a zip code. The boolean reports
// whether the zip was present.
func (r *SQLiteLocationRepository) Lookup(zip string) (float64, float64, bool, error) {
	var lat, lon float64
	err := r.db.QueryRow("SELECT latitude, longitude FROM places WHERE zip = ?", zip).Scan(&lat, &lon)
	if err == sql.ErrNoRows {
		return 0, 0, false, nil
	}
	if err != nil {
		return 0, 0, false, fmt.Errorf("failed to look up zip %s: %v", zip, err)
	}
	return lat, lon, true, nil
}

// Save stores or refreshes the coordinates for a single zip code
func (r *SQLiteLocationRepository) Save(zip string, lat, lon float64) error {
	_, err := r.db.Exec(`
		INSERT INTO places(zip, latitude, longitude)
		VALUES(?, ?, ?)
		ON CONFLICT(zip) DO UPDATE SET
		latitude=excluded.latitude,
		longitude=excluded.longitude
	`, zip, lat, lon)
	if err != nil {
		return fmt.Errorf("failed to save zip %s: %v", zip, err)
	}
	return nil
}

// SaveLocations stores a batch of locations in a single transaction
func (r *SQLiteLocationRepository) SaveLocations(locations []entities.Location) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO places(zip, name, state, latitude, longitude)
		VALUES(?, ?, ?, ?, ?)
		ON CONFLICT(zip) DO UPDATE SET
		name=excluded.name,
		state=excluded.state,
		latitude=excluded.latitude,
		longitude=excluded.longitude
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare statement: %v", err)
	}
	defer stmt.Close()

	for _, loc := range locations {
		_, err := stmt.Exec(
			loc.Zip,
			loc.Name,
			loc.State,
			loc.Latitude,
			loc.Longitude,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert location %s: %v", loc.Zip, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}

	log.Printf("Successfully saved %d locations", len(locations))
	return nil
}

// Count returns the number of cached places
func (r *SQLiteLocationRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM places").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count places: %v", err)
	}
	return count, nil
}
