package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// createdAtLayout is fixed width so that text ordering matches time ordering.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) SaveReport(ctx context.Context, record Record) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	payload, err := EncodeRecord(record)
	if err != nil {
		return err
	}

	summary := record.Summarize()
	_, err = db.ExecContext(ctx, `
		INSERT INTO reports (id, created_at, best_mutation_rate, best_crossover_rate, best_score, cells_evaluated, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			created_at = excluded.created_at,
			best_mutation_rate = excluded.best_mutation_rate,
			best_crossover_rate = excluded.best_crossover_rate,
			best_score = excluded.best_score,
			cells_evaluated = excluded.cells_evaluated,
			payload = excluded.payload
	`, record.ID, record.CreatedAt.UTC().Format(createdAtLayout),
		summary.BestPoint.MutationRate, summary.BestPoint.CrossoverRate,
		summary.BestScore, summary.CellsEvaluated, payload)
	if err != nil {
		return fmt.Errorf("save report %s: %w", record.ID, err)
	}
	return nil
}

func (s *SQLiteStore) GetReport(ctx context.Context, id string) (Record, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return Record{}, false, err
	}

	var payload []byte
	err = db.QueryRowContext(ctx, `SELECT payload FROM reports WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, err
	}

	record, err := DecodeRecord(payload)
	if err != nil {
		return Record{}, false, err
	}
	return record, true, nil
}

// ListReports reads only the summary columns, oldest first.
func (s *SQLiteStore) ListReports(ctx context.Context) ([]Summary, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, created_at, best_mutation_rate, best_crossover_rate, best_score, cells_evaluated
		FROM reports
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []Summary
	for rows.Next() {
		var (
			sum       Summary
			createdAt string
		)
		if err := rows.Scan(&sum.ID, &createdAt, &sum.BestPoint.MutationRate,
			&sum.BestPoint.CrossoverRate, &sum.BestScore, &sum.CellsEvaluated); err != nil {
			return nil, err
		}
		sum.CreatedAt, err = time.Parse(createdAtLayout, createdAt)
		if err != nil {
			return nil, fmt.Errorf("report %s: %w", sum.ID, err)
		}
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errors.New("store is not initialized")
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS reports (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			best_mutation_rate REAL NOT NULL,
			best_crossover_rate REAL NOT NULL,
			best_score REAL NOT NULL,
			cells_evaluated INTEGER NOT NULL,
			payload BLOB NOT NULL
		);
	`)
	return err
}
