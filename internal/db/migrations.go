package db

import (
	"database/sql"
	"fmt"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.DB) error
}

// migrations is the list of all migrations in order. Fresh installs get
// the full schema from SchemaSQL; migrations only matter for databases
// created before a schema change, so each one guards against already
// up-to-date tables.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "add_channel_to_help_requests",
		Up:      migrationV1,
	},
}

// InitSchema applies the base schema and any pending migrations.
func InitSchema() error {
	if db == nil {
		return fmt.Errorf("database not initialized")
	}

	if _, err := db.Exec(SchemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	return runMigrations(db)
}

func runMigrations(database *sql.DB) error {
	for _, m := range migrations {
		applied, err := migrationApplied(database, m.Version)
		if err != nil {
			return err
		}
		if applied {
			continue
		}

		if err := m.Up(database); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
		}

		if _, err := database.Exec(
			"INSERT INTO schema_migrations (version, name) VALUES (?, ?)",
			m.Version, m.Name,
		); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
	}
	return nil
}

func migrationApplied(database *sql.DB, version int) (bool, error) {
	var count int
	err := database.QueryRow(
		"SELECT COUNT(*) FROM schema_migrations WHERE version = ?", version,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	return count > 0, nil
}

// migrationV1 adds the channel column for installs that predate per-channel
// escalations. No-op when the column already exists (fresh installs).
func migrationV1(database *sql.DB) error {
	exists, err := columnExists(database, "help_requests", "channel")
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	_, err = database.Exec("ALTER TABLE help_requests ADD COLUMN channel TEXT")
	return err
}

func columnExists(database *sql.DB, table, column string) (bool, error) {
	rows, err := database.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, fmt.Errorf("failed to inspect table %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid        int
			name       string
			colType    string
			notNull    int
			defaultVal sql.NullString
			pk         int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &defaultVal, &pk); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}
