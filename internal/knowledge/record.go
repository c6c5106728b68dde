// Package knowledge holds the per-campaign entity index extracted from a
// campaign's markdown corpus.
package knowledge

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Type discriminates record variants.
type Type string

const (
	TypeNPC          Type = "npc"
	TypeLocation     Type = "location"
	TypeRule         Type = "rule"
	TypePlotThread   Type = "plot_thread"
	TypeSessionNote  Type = "session_note"
	TypeCharacterArc Type = "character_arc"
)

// Types lists every record type in deterministic order.
var Types = []Type{
	TypeNPC,
	TypeLocation,
	TypeRule,
	TypePlotThread,
	TypeSessionNote,
	TypeCharacterArc,
}

// RuleScope distinguishes table-wide core rules from campaign house rules.
type RuleScope string

const (
	RuleScopeCore  RuleScope = "core"
	RuleScopeHouse RuleScope = "house"
)

// Source cites where a record was extracted from.
type Source struct {
	Path      string
	Heading   string
	StartLine int
	EndLine   int
}

func (s Source) String() string {
	if s.Heading == "" {
		return fmt.Sprintf("%s:%d-%d", s.Path, s.StartLine, s.EndLine)
	}
	return fmt.Sprintf("%s (§ %s, lines %d-%d)", s.Path, s.Heading, s.StartLine, s.EndLine)
}

// Relationship links an NPC to another named entity.
type Relationship struct {
	Name string
	Kind string
}

// Milestone is one step of a character arc.
type Milestone struct {
	Session     int
	Description string
}

// EntityRef names an entity by type for cross-references.
type EntityRef struct {
	Type Type
	Name string
}

// NPCFields carries the NPC-specific payload.
type NPCFields struct {
	Status          string
	Relationships   []Relationship
	LastSeenSession int
}

// LocationFields carries the location-specific payload.
type LocationFields struct {
	Parent   string
	Features []string
}

// RuleFields carries the rule-specific payload.
type RuleFields struct {
	Scope     RuleScope
	Text      string
	Overrides string
}

// PlotFields carries the plot-thread payload.
type PlotFields struct {
	Status               string
	LastMentionedSession int
	Participants         []string
}

// SessionFields carries the session-note payload.
type SessionFields struct {
	Number   int
	Summary  string
	Mentions []EntityRef
}

// ArcFields carries the character-arc payload.
type ArcFields struct {
	Character  string
	Milestones []Milestone
}

// Record is the unit stored in the index: a tagged union with shared fields
// plus exactly one variant payload selected by Type. The extractor and the
// consistency checker dispatch on the tag, never on the payload pointers
// directly.
type Record struct {
	ID         string
	CampaignID string
	Type       Type
	// Name keeps the original heading casing for display; lookups go through
	// the folded form.
	Name    string
	Aliases []string
	Source  Source
	// RawBody is the section prose kept verbatim for citation and text
	// comparison, even when no structured field was recognized.
	RawBody string

	NPC      *NPCFields
	Location *LocationFields
	Rule     *RuleFields
	Plot     *PlotFields
	Session  *SessionFields
	Arc      *ArcFields
}

// Fold normalizes a name for lookup with Unicode case folding.
func Fold(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// NewRecord creates a record with its identifier derived from campaign, type
// and folded canonical name.
func NewRecord(campaignID string, kind Type, name string) Record {
	return Record{
		ID:         fmt.Sprintf("%s/%s/%s", campaignID, kind, Fold(name)),
		CampaignID: campaignID,
		Type:       kind,
		Name:       name,
	}
}

// Merge folds a later extraction of the same logical entity into an earlier
// one. Scalars take the later value when set, list and set fields union with
// the earlier elements first, so merge order decides conflicts and rebuilds
// from an unchanged corpus are byte-identical.
func Merge(earlier, later Record) Record {
	merged := earlier
	merged.Source = later.Source
	if strings.TrimSpace(later.RawBody) != "" {
		merged.RawBody = later.RawBody
	}
	if later.Name != "" {
		merged.Name = later.Name
	}
	merged.Aliases = unionStrings(earlier.Aliases, later.Aliases)

	merged.NPC = mergeNPC(earlier.NPC, later.NPC)
	merged.Location = mergeLocation(earlier.Location, later.Location)
	merged.Rule = mergeRule(earlier.Rule, later.Rule)
	merged.Plot = mergePlot(earlier.Plot, later.Plot)
	merged.Session = mergeSession(earlier.Session, later.Session)
	merged.Arc = mergeArc(earlier.Arc, later.Arc)
	return merged
}

func mergeNPC(a, b *NPCFields) *NPCFields {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	merged := *a
	if b.Status != "" {
		merged.Status = b.Status
	}
	if b.LastSeenSession != 0 {
		merged.LastSeenSession = b.LastSeenSession
	}
	merged.Relationships = unionRelationships(a.Relationships, b.Relationships)
	return &merged
}

func mergeLocation(a, b *LocationFields) *LocationFields {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	merged := *a
	if b.Parent != "" {
		merged.Parent = b.Parent
	}
	merged.Features = unionStrings(a.Features, b.Features)
	return &merged
}

func mergeRule(a, b *RuleFields) *RuleFields {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	merged := *a
	if b.Scope != "" {
		merged.Scope = b.Scope
	}
	if strings.TrimSpace(b.Text) != "" {
		merged.Text = b.Text
	}
	if b.Overrides != "" {
		merged.Overrides = b.Overrides
	}
	return &merged
}

func mergePlot(a, b *PlotFields) *PlotFields {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	merged := *a
	if b.Status != "" {
		merged.Status = b.Status
	}
	if b.LastMentionedSession != 0 {
		merged.LastMentionedSession = b.LastMentionedSession
	}
	merged.Participants = unionStrings(a.Participants, b.Participants)
	return &merged
}

func mergeSession(a, b *SessionFields) *SessionFields {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	merged := *a
	if b.Number != 0 {
		merged.Number = b.Number
	}
	if strings.TrimSpace(b.Summary) != "" {
		merged.Summary = b.Summary
	}
	merged.Mentions = unionRefs(a.Mentions, b.Mentions)
	return &merged
}

func mergeArc(a, b *ArcFields) *ArcFields {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	merged := *a
	if b.Character != "" {
		merged.Character = b.Character
	}
	merged.Milestones = unionMilestones(a.Milestones, b.Milestones)
	return &merged
}

// unionStrings unions two string sets preserving first-seen order with
// fold-insensitive identity.
func unionStrings(a, b []string) []string {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(a)+len(b))
	var out []string
	for _, value := range append(append([]string{}, a...), b...) {
		folded := Fold(value)
		if folded == "" || seen[folded] {
			continue
		}
		seen[folded] = true
		out = append(out, value)
	}
	return out
}

func unionRelationships(a, b []Relationship) []Relationship {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(a)+len(b))
	var out []Relationship
	for _, rel := range append(append([]Relationship{}, a...), b...) {
		key := Fold(rel.Name) + "\x00" + Fold(rel.Kind)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, rel)
	}
	return out
}

func unionRefs(a, b []EntityRef) []EntityRef {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(a)+len(b))
	var out []EntityRef
	for _, ref := range append(append([]EntityRef{}, a...), b...) {
		key := string(ref.Type) + "\x00" + Fold(ref.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, ref)
	}
	return out
}

func unionMilestones(a, b []Milestone) []Milestone {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(a)+len(b))
	var out []Milestone
	for _, m := range append(append([]Milestone{}, a...), b...) {
		key := fmt.Sprintf("%d\x00%s", m.Session, Fold(m.Description))
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, m)
	}
	return out
}

// Recency returns the newest session number the record references, used by
// the context builder's fallback ordering. Zero means never referenced.
func (r Record) Recency() int {
	switch r.Type {
	case TypeNPC:
		if r.NPC != nil {
			return r.NPC.LastSeenSession
		}
	case TypePlotThread:
		if r.Plot != nil {
			return r.Plot.LastMentionedSession
		}
	case TypeSessionNote:
		if r.Session != nil {
			return r.Session.Number
		}
	case TypeCharacterArc:
		if r.Arc != nil {
			latest := 0
			for _, m := range r.Arc.Milestones {
				if m.Session > latest {
					latest = m.Session
				}
			}
			return latest
		}
	}
	return 0
}
