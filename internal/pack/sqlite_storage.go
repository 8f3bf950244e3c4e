package pack

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStorage keeps pack blobs in SQLite, partitioned by scope. The
// browser dashboard uses one scope per cookie session so a visitor's
// uploaded packs never leak into the shared packs directory or into
// another visitor's catalog.
type SQLiteStorage struct {
	db *sql.DB
}

func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	if strings.TrimSpace(path) == "" {
		path = "flashcards.db"
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	storage := &SQLiteStorage{db: db}
	if err := storage.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return storage, nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

func (s *SQLiteStorage) initSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS pack_sources (
		scope TEXT NOT NULL,
		source_id TEXT NOT NULL,
		payload BLOB NOT NULL,
		updated_at_unix INTEGER NOT NULL,
		PRIMARY KEY (scope, source_id)
	);`)
	return err
}

// Scope returns a Storage view bound to one partition. All Storage
// calls on the view read and write rows for that scope only.
func (s *SQLiteStorage) Scope(scope string) Storage {
	return &scopedStorage{backend: s, scope: scope}
}

// DropScope removes every source in a scope, used when a browser
// session is abandoned.
func (s *SQLiteStorage) DropScope(ctx context.Context, scope string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM pack_sources WHERE scope = ?`, scope)
	return err
}

type scopedStorage struct {
	backend *SQLiteStorage
	scope   string
}

func (s *scopedStorage) List() ([]string, error) {
	rows, err := s.backend.db.Query(
		`SELECT source_id FROM pack_sources WHERE scope = ? ORDER BY updated_at_unix ASC, source_id ASC`,
		s.scope,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *scopedStorage) Read(id string) ([]byte, error) {
	var payload []byte
	err := s.backend.db.QueryRow(
		`SELECT payload FROM pack_sources WHERE scope = ? AND source_id = ?`,
		s.scope,
		id,
	).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSourceNotFound
		}
		return nil, err
	}
	return payload, nil
}

func (s *scopedStorage) Write(id string, data []byte) error {
	_, err := s.backend.db.Exec(
		`INSERT OR REPLACE INTO pack_sources (scope, source_id, payload, updated_at_unix) VALUES (?, ?, ?, ?)`,
		s.scope,
		id,
		data,
		time.Now().UTC().UnixNano(),
	)
	return err
}
