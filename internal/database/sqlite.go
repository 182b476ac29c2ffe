package database

import (
	"database/sql"
	"fmt"
	"log"
	"sync"

	_ "modernc.org/sqlite"
)

var (
	db   *sql.DB
	once sync.Once
)

// Init opens the shared sqlite handle backing the media library and the
// generated memory drafts. Only the first call opens the database;
// later calls are no-ops.
func Init(path string) error {
	var err error
	once.Do(func() {
		db, err = open(path)
		if err == nil {
			log.Printf("[Database] Media store ready at %s", path)
		}
	})
	return err
}

// open configures a handle for this workload: rebuilds stream the whole
// media library through a few readers while ingest writes in batches, so
// the pool stays small and writers wait out short lock windows.
func open(path string) (*sql.DB, error) {
	handle, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open media store at %s: %w", path, err)
	}

	handle.SetMaxOpenConns(4)
	handle.SetMaxIdleConns(2)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := handle.Exec(pragma); err != nil {
			handle.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	if err := handle.Ping(); err != nil {
		handle.Close()
		return nil, fmt.Errorf("failed to reach media store at %s: %w", path, err)
	}

	return handle, nil
}

// GetDB returns the shared handle
func GetDB() *sql.DB {
	if db == nil {
		log.Fatal("[Database] Init must be called before GetDB")
	}
	return db
}

// Close closes the shared handle
func Close() error {
	if db != nil {
		return db.Close()
	}
	return nil
}

// Transaction runs fn inside a transaction on the given handle, rolling
// back on error or panic
func Transaction(db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction error: %v, rollback error: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
