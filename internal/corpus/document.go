// Package corpus loads campaign markdown documents and splits them into
// heading-delimited sections for extraction.
package corpus

import (
	"time"

	"github.com/emberfall/lorekeeper/internal/campaign"
)

// Document is one loaded markdown file. It is immutable once handed to the
// extractor; the raw text is the sole source of truth for everything derived
// from it.
type Document struct {
	CampaignID string
	Role       campaign.Role
	Path       string
	Text       string
	// ModTime records the file's last modification time for future
	// incremental refresh. Rebuilds currently discard it.
	ModTime time.Time
}
