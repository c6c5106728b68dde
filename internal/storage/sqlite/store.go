// Package sqlite provides SQLite-backed persistence for table rulings.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/emberfall/lorekeeper/internal/storage"
	_ "modernc.org/sqlite"
)

const defaultListLimit = 20

const schema = `
CREATE TABLE IF NOT EXISTS rulings (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	campaign_id TEXT NOT NULL,
	session INTEGER NOT NULL,
	situation TEXT NOT NULL,
	ruling TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS rulings_campaign_created
	ON rulings (campaign_id, created_at DESC, id DESC);
`

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Store provides SQLite-backed persistence for ruling records.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a ruling store at the provided path. The schema is applied on
// open; a single table needs no migration ladder.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// PutRuling persists a ruling and returns it with its assigned ID and
// creation time filled in.
func (s *Store) PutRuling(ctx context.Context, record storage.RulingRecord) (storage.RulingRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.RulingRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.RulingRecord{}, fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(record.CampaignID) == "" {
		return storage.RulingRecord{}, fmt.Errorf("campaign id is required")
	}
	if strings.TrimSpace(record.Ruling) == "" {
		return storage.RulingRecord{}, fmt.Errorf("ruling text is required")
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	result, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO rulings (campaign_id, session, situation, ruling, created_at)
VALUES (?, ?, ?, ?, ?)
`,
		record.CampaignID,
		record.Session,
		record.Situation,
		record.Ruling,
		toMillis(record.CreatedAt),
	)
	if err != nil {
		return storage.RulingRecord{}, fmt.Errorf("put ruling: %w", err)
	}
	record.ID, err = result.LastInsertId()
	if err != nil {
		return storage.RulingRecord{}, fmt.Errorf("put ruling id: %w", err)
	}
	return record, nil
}

// ListRulings returns a campaign's rulings, newest first.
func (s *Store) ListRulings(ctx context.Context, campaignID string, limit int) ([]storage.RulingRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(campaignID) == "" {
		return nil, fmt.Errorf("campaign id is required")
	}
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, campaign_id, session, situation, ruling, created_at
FROM rulings
WHERE campaign_id = ?
ORDER BY created_at DESC, id DESC
LIMIT ?
`, campaignID, limit)
	if err != nil {
		return nil, fmt.Errorf("list rulings: %w", err)
	}
	defer rows.Close()

	var records []storage.RulingRecord
	for rows.Next() {
		var (
			record    storage.RulingRecord
			createdAt int64
		)
		if err := rows.Scan(&record.ID, &record.CampaignID, &record.Session,
			&record.Situation, &record.Ruling, &createdAt); err != nil {
			return nil, fmt.Errorf("scan ruling: %w", err)
		}
		record.CreatedAt = fromMillis(createdAt)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list rulings: %w", err)
	}
	return records, nil
}
