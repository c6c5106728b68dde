// Package storage defines the persistence contract for table rulings.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates a requested ruling is missing.
var ErrNotFound = errors.New("ruling not found")

// RulingRecord stores one GM ruling made at the table. Rulings outlive the
// index rebuild cycle: recurring situations are candidates for promotion to
// house rules.
type RulingRecord struct {
	ID         int64
	CampaignID string
	Session    int
	Situation  string
	Ruling     string
	CreatedAt  time.Time
}

// RulingStore persists and recalls rulings per campaign.
type RulingStore interface {
	PutRuling(ctx context.Context, record RulingRecord) (RulingRecord, error)
	ListRulings(ctx context.Context, campaignID string, limit int) ([]RulingRecord, error)
	Close() error
}
