package migrations

import (
	"database/sql"
	"fmt"
)

// Migration represents a single database migration
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

// AllMigrations contains all database migrations in order
var AllMigrations = []Migration{
	{
		Version: 1,
		Name:    "Add environment_name indices",
		Up: `
			CREATE INDEX IF NOT EXISTS idx_analytics_environment ON analytics(environment_name);
		`,
		Down: `
			DROP INDEX IF EXISTS idx_analytics_environment;
		`,
	},
	{
		Version: 2,
		Name:    "Add composite indexes for stats queries",
		Up: `
			-- Environment filtering + timestamp ordering
			CREATE INDEX IF NOT EXISTS idx_analytics_environment_timestamp ON analytics(environment_name, timestamp DESC);

			-- GROUP BY normalized_path, method
			CREATE INDEX IF NOT EXISTS idx_analytics_grouping ON analytics(normalized_path, method);
		`,
		Down: `
			DROP INDEX IF EXISTS idx_analytics_environment_timestamp;
			DROP INDEX IF EXISTS idx_analytics_grouping;
		`,
	},
	{
		Version: 3,
		Name:    "Add host column",
		Up: `
			ALTER TABLE analytics ADD COLUMN host TEXT NOT NULL DEFAULT '';
			CREATE INDEX IF NOT EXISTS idx_analytics_host ON analytics(host);
		`,
		Down: `
			-- SQLite does not support DROP COLUMN easily
			DROP INDEX IF EXISTS idx_analytics_host;
		`,
	},
}

// InitSchema creates the base tables. It must run before migrations.
func InitSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS analytics (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		method TEXT NOT NULL,
		url TEXT NOT NULL,
		normalized_path TEXT NOT NULL,
		status_code INTEGER NOT NULL,
		request_size INTEGER NOT NULL DEFAULT 0,
		response_size INTEGER NOT NULL DEFAULT 0,
		duration_ms INTEGER NOT NULL,
		error_message TEXT,
		timestamp DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		environment_name TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_normalized_path ON analytics(normalized_path);
	CREATE INDEX IF NOT EXISTS idx_method ON analytics(method);
	CREATE INDEX IF NOT EXISTS idx_timestamp ON analytics(timestamp);
	CREATE INDEX IF NOT EXISTS idx_status_code ON analytics(status_code);
	`

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	return nil
}

// Run executes all pending migrations on the database
func Run(db *sql.DB) error {
	if err := InitSchema(db); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	currentVersion, err := GetCurrentVersion(db)
	if err != nil {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}

	for _, migration := range AllMigrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", migration.Version, err)
		}

		if _, err := tx.Exec(migration.Up); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to apply migration %d (%s): %w", migration.Version, migration.Name, err)
		}

		if _, err := tx.Exec(
			"INSERT INTO schema_migrations (version, name) VALUES (?, ?)",
			migration.Version,
			migration.Name,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// GetCurrentVersion returns the current database schema version
func GetCurrentVersion(db *sql.DB) (int, error) {
	var version int
	err := db.QueryRow(`
		SELECT COALESCE(MAX(version), 0)
		FROM schema_migrations
	`).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return 0, err
	}
	return version, nil
}
