package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sync"

	_ "modernc.org/sqlite"
)

var (
	mu sync.RWMutex
	db *sql.DB
)

var ErrNotInitialized = errors.New("storage: database not initialized")

// InitDB opens the sqlite database at path and creates the tables.
// ":memory:" is supported for tests.
func InitDB(path string) error {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("InitDB(): failed to open database: %w", err)
	}
	// sqlite는 단일 writer, :memory: DB는 연결마다 분리되므로 연결 1개로 고정
	conn.SetMaxOpenConns(1)
	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("InitDB(): failed to connect to database: %w", err)
	}

	createAttemptsTable := `
	CREATE TABLE IF NOT EXISTS attempts (
			"id" INTEGER PRIMARY KEY AUTOINCREMENT,
			"participant" TEXT NOT NULL,
			"scenario_key" TEXT NOT NULL,
			"step_id" INTEGER NOT NULL DEFAULT 0,
			"kind" TEXT NOT NULL,
			"result" TEXT NOT NULL,
			"score" INTEGER NOT NULL DEFAULT 0,
			"attempts" INTEGER NOT NULL DEFAULT 1,
			"transcript_path" TEXT,
			"created_at" TEXT NOT NULL
	);`
	createProgressTable := `
	CREATE TABLE IF NOT EXISTS step_progress (
			"participant" TEXT NOT NULL,
			"step_id" INTEGER NOT NULL,
			"is_completed" INTEGER NOT NULL DEFAULT 0,
			"score_earned" INTEGER NOT NULL DEFAULT 0,
			"completed_at" TEXT NOT NULL,
			PRIMARY KEY (participant, step_id)
	);`

	if _, err := conn.Exec(createAttemptsTable); err != nil {
		conn.Close()
		return fmt.Errorf("InitDB(): failed to create attempts table: %w", err)
	}
	if _, err := conn.Exec(createProgressTable); err != nil {
		conn.Close()
		return fmt.Errorf("InitDB(): failed to create step_progress table: %w", err)
	}

	mu.Lock()
	db = conn
	mu.Unlock()
	log.Println("InitDB(): Init and create table successfully!")
	return nil
}

func CloseDB() error {
	mu.Lock()
	defer mu.Unlock()
	if db == nil {
		return nil
	}
	err := db.Close()
	db = nil
	return err
}

func conn() (*sql.DB, error) {
	mu.RLock()
	defer mu.RUnlock()
	if db == nil {
		return nil, ErrNotInitialized
	}
	return db, nil
}
