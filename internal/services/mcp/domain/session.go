package domain

import (
	"context"
	"sync"

	"github.com/emberfall/lorekeeper/internal/campaign"
	"github.com/emberfall/lorekeeper/internal/engine"
	"github.com/emberfall/lorekeeper/internal/knowledge"
)

// Session owns the process-wide active campaign and its built index. The
// slot is swapped wholesale under the lock on switch or refresh; readers
// always observe a fully built index, never a partial one. Deep engine
// components take the index as an explicit argument and never reach back
// into this slot.
type Session struct {
	registry *campaign.Registry

	mu     sync.RWMutex
	active campaign.Campaign
	index  *knowledge.Index
	report engine.BuildReport
}

// NewSession creates a session over a loaded registry with no campaign
// active yet.
func NewSession(registry *campaign.Registry) *Session {
	return &Session{registry: registry}
}

// Registry returns the read-only campaign registry.
func (s *Session) Registry() *campaign.Registry {
	return s.registry
}

// Activate resolves a campaign, builds its index, and swaps it in. The
// previous index stays active when the build fails.
func (s *Session) Activate(ctx context.Context, id string) (campaign.Campaign, engine.BuildReport, error) {
	resolved, err := s.registry.Resolve(id)
	if err != nil {
		return campaign.Campaign{}, engine.BuildReport{}, err
	}
	index, report, err := engine.Build(ctx, resolved)
	if err != nil {
		return campaign.Campaign{}, report, err
	}

	s.mu.Lock()
	s.active = resolved
	s.index = index
	s.report = report
	s.mu.Unlock()
	return resolved, report, nil
}

// Refresh rebuilds the active campaign's index from its corpus.
func (s *Session) Refresh(ctx context.Context) (campaign.Campaign, engine.BuildReport, error) {
	s.mu.RLock()
	id := s.active.ID
	s.mu.RUnlock()
	return s.Activate(ctx, id)
}

// Snapshot returns the active campaign, index, and build report. The index
// is nil when no campaign has been activated.
func (s *Session) Snapshot() (campaign.Campaign, *knowledge.Index, engine.BuildReport) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active, s.index, s.report
}
