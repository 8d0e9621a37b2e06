package config

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteProvider implements ConfigProvider for SQLite database configuration
type SQLiteProvider struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteProvider creates a new SQLite configuration provider
func NewSQLiteProvider(dbPath string) (*SQLiteProvider, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	return &SQLiteProvider{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// LoadConfig loads the complete configuration from SQLite database
func (s *SQLiteProvider) LoadConfig() (*ConfigData, error) {
	config := &ConfigData{}

	err := s.db.QueryRow(`SELECT connection_string FROM database_config LIMIT 1`).
		Scan(&config.Database.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	ingest := &IngestData{}
	err = s.db.QueryRow(`SELECT data_dir, store_status_file, business_hours_file, timezones_file FROM ingest_config LIMIT 1`).
		Scan(&ingest.DataDir, &ingest.StoreStatusFile, &ingest.BusinessHoursFile, &ingest.TimezonesFile)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// No ingest section configured; serve from existing data
	case err != nil:
		return nil, fmt.Errorf("failed to load ingest config: %w", err)
	default:
		config.Ingest = ingest
	}

	err = s.db.QueryRow(`SELECT directory, default_timezone FROM reports_config LIMIT 1`).
		Scan(&config.Reports.Directory, &config.Reports.DefaultTimezone)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to load reports config: %w", err)
	}

	err = s.db.QueryRow(`SELECT listen_addr, http_port FROM http_config LIMIT 1`).
		Scan(&config.HTTP.ListenAddr, &config.HTTP.Port)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to load http config: %w", err)
	}

	return config, nil
}

// IsReadOnly returns false since SQLite configuration can be modified
func (s *SQLiteProvider) IsReadOnly() bool {
	return false
}

// Close closes the underlying database handle
func (s *SQLiteProvider) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
