package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

const schema = `
CREATE TABLE IF NOT EXISTS cv_files (
    id          BIGSERIAL PRIMARY KEY,
    job_id      TEXT NOT NULL UNIQUE,
    filename    TEXT NOT NULL,
    file_type   TEXT NOT NULL,
    file_size   BIGINT NOT NULL,
    parser_used TEXT NOT NULL,
    page_count  INTEGER,
    word_count  INTEGER NOT NULL,
    parsed_text TEXT NOT NULL,
    html        TEXT NOT NULL DEFAULT '',
    warnings    JSONB NOT NULL DEFAULT '[]',
    uploaded_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS cv_entities (
    id           BIGSERIAL PRIMARY KEY,
    cv_file_id   BIGINT NOT NULL REFERENCES cv_files(id) ON DELETE CASCADE,
    entity_type  TEXT NOT NULL,
    entity_value TEXT NOT NULL,
    confidence   DOUBLE PRECISION NOT NULL
);
CREATE INDEX IF NOT EXISTS cv_entities_type_value ON cv_entities (entity_type, entity_value);
`

type DB struct {
	connection *sql.DB
}

func NewDB(dataSourceName string) (*DB, error) {
	db, err := sql.Open("postgres", dataSourceName)
	if err != nil {
		return nil, err
	}

	// Connection pool tuning
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return &DB{connection: db}, nil
}

func (db *DB) Close() error {
	return db.connection.Close()
}

// Migrate creates the tables if they do not exist.
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.connection.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// SaveCV stores a parsed document and its entities in one transaction and
// returns the new cv_files id.
func (db *DB) SaveCV(ctx context.Context, file *CVFile, entities []CVEntity) (int64, error) {
	tx, err := db.connection.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	id, err := saveCVFile(ctx, tx, file)
	if err != nil {
		return 0, fmt.Errorf("save cv file: %w", err)
	}
	for _, e := range entities {
		if err := saveCVEntity(ctx, tx, id, e); err != nil {
			return 0, fmt.Errorf("save cv entity %s: %w", e.Type, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

func saveCVFile(ctx context.Context, tx *sql.Tx, f *CVFile) (int64, error) {
	warnings, err := json.Marshal(f.Warnings)
	if err != nil {
		return 0, err
	}
	var pages sql.NullInt64
	if f.PageCount != nil {
		pages = sql.NullInt64{Int64: int64(*f.PageCount), Valid: true}
	}

	var id int64
	query := `
        INSERT INTO cv_files (job_id, filename, file_type, file_size, parser_used, page_count, word_count, parsed_text, html, warnings, uploaded_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
        RETURNING id
    `
	err = tx.QueryRowContext(ctx, query,
		f.JobID, f.Filename, f.FileType, f.FileSize, f.ParserUsed, pages, f.WordCount, f.ParsedText, f.HTML, string(warnings),
	).Scan(&id)
	return id, err
}

func saveCVEntity(ctx context.Context, tx *sql.Tx, cvFileID int64, e CVEntity) error {
	query := `
        INSERT INTO cv_entities (cv_file_id, entity_type, entity_value, confidence)
        VALUES ($1, $2, $3, $4)
    `
	_, err := tx.ExecContext(ctx, query, cvFileID, e.Type, e.Value, e.Confidence)
	return err
}

// PopularEntities returns the most frequent values of one entity type,
// counted once per CV.
func (db *DB) PopularEntities(ctx context.Context, entityType string, limit int) ([]EntityCount, error) {
	rows, err := db.connection.QueryContext(ctx, `
        SELECT entity_value, COUNT(DISTINCT cv_file_id) AS cv_count
        FROM cv_entities
        WHERE entity_type = $1
        GROUP BY entity_value
        ORDER BY cv_count DESC, entity_value
        LIMIT $2
    `, entityType, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []EntityCount{}
	for rows.Next() {
		var c EntityCount
		if err := rows.Scan(&c.Value, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
