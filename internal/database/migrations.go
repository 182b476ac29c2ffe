package database

import (
	"database/sql"
	"fmt"
	"log"
	"sort"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations holds the schema in apply order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_media_items",
		SQL: `
			CREATE TABLE IF NOT EXISTS media_items (
				id INTEGER PRIMARY KEY,
				path TEXT NOT NULL,
				taken_at INTEGER,
				latitude REAL,
				longitude REAL,
				tz_offset_minutes INTEGER,
				geo_cell TEXT,
				country_code TEXT,
				has_poi INTEGER NOT NULL DEFAULT 0,
				tourism_poi INTEGER NOT NULL DEFAULT 0,
				airport_poi INTEGER NOT NULL DEFAULT 0,
				has_faces INTEGER NOT NULL DEFAULT 0,
				quality REAL,
				person_ids TEXT,
				device_model TEXT,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			);
			CREATE INDEX IF NOT EXISTS idx_media_taken_at ON media_items(taken_at);
			CREATE INDEX IF NOT EXISTS idx_media_geo ON media_items(latitude, longitude);
		`,
	},
	{
		Version: 2,
		Name:    "create_cluster_drafts",
		SQL: `
			CREATE TABLE IF NOT EXISTS cluster_drafts (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				algorithm TEXT NOT NULL,
				centroid_lat REAL NOT NULL DEFAULT 0,
				centroid_lon REAL NOT NULL DEFAULT 0,
				params_json TEXT NOT NULL DEFAULT '{}',
				members_json TEXT NOT NULL DEFAULT '[]',
				member_count INTEGER NOT NULL DEFAULT 0,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			);
			CREATE INDEX IF NOT EXISTS idx_drafts_algorithm ON cluster_drafts(algorithm);
		`,
	},
}

// MigrationManager manages database migrations
type MigrationManager struct {
	db *sql.DB
}

// NewMigrationManager creates a new migration manager
func NewMigrationManager(db *sql.DB) *MigrationManager {
	return &MigrationManager{db: db}
}

// InitMigrationsTable creates the migrations tracking table
func (m *MigrationManager) InitMigrationsTable() error {
	query := `
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	_, err := m.db.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

// GetAppliedMigrations returns the applied migration versions
func (m *MigrationManager) GetAppliedMigrations() (map[int]bool, error) {
	rows, err := m.db.Query("SELECT version FROM migrations ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}

	return applied, nil
}

// Migrate applies all pending migrations in version order
func (m *MigrationManager) Migrate() error {
	if err := m.InitMigrationsTable(); err != nil {
		return err
	}

	applied, err := m.GetAppliedMigrations()
	if err != nil {
		return err
	}

	pending := make([]Migration, 0, len(migrations))
	for _, mig := range migrations {
		if !applied[mig.Version] {
			pending = append(pending, mig)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].Version < pending[j].Version
	})

	for _, mig := range pending {
		log.Printf("[Migrations] Applying %d_%s", mig.Version, mig.Name)

		tx, err := m.db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}

		if _, err := tx.Exec(mig.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to apply migration %d_%s: %w", mig.Version, mig.Name, err)
		}

		if _, err := tx.Exec("INSERT INTO migrations (version, name) VALUES (?, ?)", mig.Version, mig.Name); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d_%s: %w", mig.Version, mig.Name, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d_%s: %w", mig.Version, mig.Name, err)
		}
	}

	if len(pending) > 0 {
		log.Printf("[Migrations] Applied %d migrations", len(pending))
	}
	return nil
}
