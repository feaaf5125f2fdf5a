package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/xavierca1/leadtrack/internal/entity"
)

const blobKey = "crm-leads"

// NewDBConnection opens the pool and proves it with a ping.
func NewDBConnection(connString string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	return db, nil
}

// PostgresBlobStore keeps the whole collection as one JSON document in
// a single-row key/value table. Leads are deliberately not modelled
// relationally; postgres is just another blob medium here.
type PostgresBlobStore struct {
	DB *sql.DB
}

func NewPostgresBlobStore(db *sql.DB) *PostgresBlobStore {
	return &PostgresBlobStore{DB: db}
}

// EnsureSchema creates the blob table when missing.
func (s *PostgresBlobStore) EnsureSchema(ctx context.Context) error {
	_, err := s.DB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS lead_blobs (
			key        TEXT PRIMARY KEY,
			data       JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	return err
}

func (s *PostgresBlobStore) Load(ctx context.Context) ([]entity.Lead, bool, error) {
	var data []byte
	err := s.DB.QueryRowContext(ctx,
		`SELECT data FROM lead_blobs WHERE key = $1`, blobKey,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("querying lead blob: %w", err)
	}

	var leads []entity.Lead
	if err := json.Unmarshal(data, &leads); err != nil {
		return nil, false, fmt.Errorf("parsing lead blob: %w", err)
	}
	return leads, true, nil
}

func (s *PostgresBlobStore) Save(ctx context.Context, leads []entity.Lead) error {
	data, err := json.Marshal(leads)
	if err != nil {
		return err
	}

	_, err = s.DB.ExecContext(ctx, `
		INSERT INTO lead_blobs (key, data, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key)
		DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()
	`, blobKey, data)
	if err != nil {
		return fmt.Errorf("writing lead blob: %w", err)
	}
	return nil
}
