// Package store persists the pre-trained cycle-profile artifacts and the
// report history in SQLite.
//
// Artifacts are written once by an import and read once at startup; the
// request path only ever appends to the report history.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// DBFile is the database file name inside the data directory.
const DBFile = "cyclesense.db"

// ErrNoArtifacts is returned by LoadSpec and LoadBundle when nothing has
// been imported yet.
var ErrNoArtifacts = errors.New("store: no artifacts imported")

// ErrReportNotFound is returned by GetReport for an unknown id.
var ErrReportNotFound = errors.New("store: report not found")

// ─── Config ──────────────────────────────────────────────────────────────────

// Config holds store configuration.
type Config struct {
	DataDir string
}

// DefaultConfig returns the default configuration for the store.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{
		DataDir: filepath.Join(home, ".cyclesense"),
	}
}

// ─── Store ───────────────────────────────────────────────────────────────────

// Store is the SQLite-backed artifact and history store.
type Store struct {
	db  *sql.DB
	cfg Config
}

// New creates a Store with the given configuration.
// It creates the data directory if needed, opens SQLite with WAL mode,
// and runs migrations.
func New(cfg Config) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return nil, fmt.Errorf("store: create data dir: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, DBFile)
	db, err := openDB("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("store: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, cfg: cfg}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: migration: %w", err)
	}

	return s, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return filepath.Join(s.cfg.DataDir, DBFile)
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ─── Migrations ──────────────────────────────────────────────────────────────

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS models (
			name              TEXT PRIMARY KEY,
			features          TEXT NOT NULL,
			scaler_mean       TEXT,
			scaler_scale      TEXT,
			silhouette        REAL NOT NULL DEFAULT 0,
			calinski_harabasz REAL NOT NULL DEFAULT 0,
			davies_bouldin    REAL NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS clusters (
			model        TEXT    NOT NULL,
			cluster_id   INTEGER NOT NULL,
			name         TEXT,
			centroid     TEXT,
			size_percent REAL,
			PRIMARY KEY (model, cluster_id),
			FOREIGN KEY (model) REFERENCES models(name) ON DELETE CASCADE
		);

		CREATE TABLE IF NOT EXISTS logical_map (
			combined TEXT PRIMARY KEY,
			logical  TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS cluster_stats (
			logical           TEXT PRIMARY KEY,
			age_mean          REAL,
			bmi_mean          REAL,
			pregnancy_mean    REAL,
			complication_rate REAL
		);

		CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS reports (
			id         TEXT PRIMARY KEY,
			kind       TEXT NOT NULL,
			name       TEXT NOT NULL DEFAULT '',
			logical    TEXT NOT NULL DEFAULT '',
			combined   TEXT NOT NULL DEFAULT '',
			body       TEXT NOT NULL,
			created_at TEXT NOT NULL DEFAULT (datetime('now'))
		);

		CREATE INDEX IF NOT EXISTS idx_reports_created ON reports(created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Now returns the current time formatted for SQLite.
func Now() string {
	return time.Now().UTC().Format("2006-01-02 15:04:05")
}

// ParseTime parses a timestamp written by Now or by SQLite's datetime().
func ParseTime(v string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04:05", v, time.UTC)
}
