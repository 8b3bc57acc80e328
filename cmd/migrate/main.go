package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"art-contest/internal/config"
	"art-contest/internal/logger"

	_ "github.com/lib/pq"
)

const migrationsDir = "migrations"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)

	if cfg.Database.Driver != "postgres" {
		logger.Fatalf("SQL migrations target postgres; %s databases use auto-migration", cfg.Database.Driver)
	}

	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		logger.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	applied, err := apply(db, migrationsDir)
	if err != nil {
		logger.Fatalf("Migration failed: %v", err)
	}
	logger.Infof("Applied %d migration(s)", applied)
}

// apply runs every migration file not yet recorded in schema_migrations, in name order
func apply(db *sql.DB, dir string) (int, error) {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`); err != nil {
		return 0, fmt.Errorf("create schema_migrations: %w", err)
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return 0, err
	}
	sort.Strings(files)

	applied := 0
	for _, file := range files {
		version := filepath.Base(file)

		var exists bool
		if err := db.QueryRow(`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, version).Scan(&exists); err != nil {
			return applied, fmt.Errorf("check %s: %w", version, err)
		}
		if exists {
			continue
		}

		body, err := os.ReadFile(file)
		if err != nil {
			return applied, fmt.Errorf("read %s: %w", version, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return applied, err
		}
		if _, err := tx.Exec(string(body)); err != nil {
			tx.Rollback()
			return applied, fmt.Errorf("apply %s: %w", version, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
			tx.Rollback()
			return applied, fmt.Errorf("record %s: %w", version, err)
		}
		if err := tx.Commit(); err != nil {
			return applied, err
		}

		logger.Infof("Applied migration: %s", version)
		applied++
	}
	return applied, nil
}
