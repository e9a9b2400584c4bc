package database

import (
	"colormeow/pkg/logger"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	_ "github.com/mattn/go-sqlite3"
)

var appLogger = logger.InitLogger()

// DefaultPath is the database file used when no path is configured.
func DefaultPath() string {
	return fmt.Sprintf("./colormeow-%s.db", runtime.GOOS)
}

// Open connects to the sqlite file at path, creating it and the schema when missing.
func Open(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("error creating database dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_timeout=10000&_busy_timeout=10000&_foreign_keys=on", path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(2)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := setupTables(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Init opens the database for the application and exits when it cannot.
func Init(path string) *sql.DB {
	db, err := Open(path)
	if err != nil {
		appLogger.Fatal("Failed to open database: ", err)
	}
	appLogger.Println("DB connection success!")
	return db
}

func setupTables(db *sql.DB) error {
	tables := []string{
		// seq keeps insertion order, id is the string id palettes are addressed by
		"CREATE TABLE IF NOT EXISTS `Palette`(`seq` INTEGER PRIMARY KEY AUTOINCREMENT, `id` VARCHAR(64) NOT NULL UNIQUE, `name` VARCHAR(255) NOT NULL, `description` TEXT NOT NULL DEFAULT '', `colors` TEXT NOT NULL DEFAULT '[]', `createdAt` VARCHAR(64) NOT NULL DEFAULT '', `updatedAt` VARCHAR(64) NOT NULL DEFAULT '', `importedAt` VARCHAR(64) NOT NULL DEFAULT '');",
		"CREATE INDEX IF NOT EXISTS idx_palette_name ON Palette(name);",
		"CREATE TABLE IF NOT EXISTS `Options`(`id` INTEGER PRIMARY KEY NOT NULL, `DatabasePath` VARCHAR(1024) NOT NULL, `WheelSize` INTEGER NOT NULL DEFAULT 200, `TriangleSteps` INTEGER NOT NULL DEFAULT 50, `SwatchFormat` VARCHAR(16) NOT NULL DEFAULT 'PNG', `SwatchCell` INTEGER NOT NULL DEFAULT 64, `UseRGB` BOOLEAN DEFAULT false, `Profiling` BOOLEAN DEFAULT false, `RecentColors` VARCHAR(1024) NOT NULL DEFAULT '[]', `FirstBoot` BOOLEAN DEFAULT false);",
		"PRAGMA journal_mode=WAL;",
	}
	for _, table := range tables {
		if _, err := db.Exec(table); err != nil {
			appLogger.Println("Failed to create table: ", err)
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}

func VacuumDb(db *sql.DB) error {
	_, err := db.Exec("VACUUM")
	if err != nil {
		appLogger.Println("Failed to vacuum database: ", err)
		return err
	}

	return nil
}
