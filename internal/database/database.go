package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	_ "modernc.org/sqlite" // SQLite driver, registered as "sqlite"

	"shift_manager_backend/internal/config"
	"shift_manager_backend/pkg/utils"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// tables in dependency order, children last.
var tables = []string{"users", "tasks", "shifts", "shift_tasks", "activity_log"}

// Open connects to the configured store and verifies the connection.
func Open(cfg config.DatabaseConfig) (*sql.DB, error) {
	driverName := cfg.Driver
	if driverName == "" {
		driverName = config.DriverSQLite
	}

	db, err := sql.Open(driverName, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", driverName, err)
	}

	if driverName == config.DriverSQLite {
		// SQLite allows one writer; an in-memory database also only exists on its own connection.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(time.Hour)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to %s database: %w", driverName, err)
	}

	utils.LogInfo("Database connection established", map[string]interface{}{"driver": driverName})
	return db, nil
}

// ApplySchema creates all tables and indexes that do not exist yet.
func ApplySchema(ctx context.Context, db *sql.DB, driver string) error {
	if driver == "" {
		driver = config.DriverSQLite
	}
	content, err := schemaFS.ReadFile("schema/" + driver + ".sql")
	if err != nil {
		return fmt.Errorf("no schema for driver %q: %w", driver, err)
	}

	for _, stmt := range splitStatements(string(content)) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("could not execute schema statement: %w", err)
		}
	}
	utils.LogInfo("Database schema applied", map[string]interface{}{"driver": driver})
	return nil
}

// Reset drops every application table. Used by the setup tool before re-seeding.
func Reset(ctx context.Context, db *sql.DB) error {
	for i := len(tables) - 1; i >= 0; i-- {
		if _, err := db.ExecContext(ctx, "DROP TABLE IF EXISTS "+tables[i]); err != nil {
			return fmt.Errorf("dropping table %s: %w", tables[i], err)
		}
	}
	utils.LogInfo("Database tables dropped")
	return nil
}

func splitStatements(script string) []string {
	var out []string
	for _, part := range strings.Split(script, ";") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}
