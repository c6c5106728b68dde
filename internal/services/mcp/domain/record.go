package domain

import (
	"time"

	"github.com/emberfall/lorekeeper/internal/knowledge"
	"github.com/emberfall/lorekeeper/internal/knowledge/consistency"
	"github.com/emberfall/lorekeeper/internal/storage"
)

// RecordPayload represents an indexed record in MCP responses. Exactly one
// variant payload is populated, matching Type.
type RecordPayload struct {
	ID       string   `json:"id" jsonschema:"record identifier"`
	Type     string   `json:"type" jsonschema:"record type"`
	Name     string   `json:"name" jsonschema:"canonical name with original casing"`
	Aliases  []string `json:"aliases,omitempty" jsonschema:"known aliases"`
	Citation string   `json:"citation" jsonschema:"source document location"`
	Body     string   `json:"body,omitempty" jsonschema:"section prose kept verbatim"`

	NPC      *NPCPayload      `json:"npc,omitempty" jsonschema:"NPC fields"`
	Location *LocationPayload `json:"location,omitempty" jsonschema:"location fields"`
	Rule     *RulePayload     `json:"rule,omitempty" jsonschema:"rule fields"`
	Plot     *PlotPayload     `json:"plot,omitempty" jsonschema:"plot thread fields"`
	Session  *SessionPayload  `json:"session,omitempty" jsonschema:"session note fields"`
	Arc      *ArcPayload      `json:"arc,omitempty" jsonschema:"character arc fields"`
}

// NPCPayload represents NPC-specific record fields.
type NPCPayload struct {
	Status          string                `json:"status,omitempty" jsonschema:"npc status"`
	Relationships   []RelationshipPayload `json:"relationships,omitempty" jsonschema:"named relationships"`
	LastSeenSession int                   `json:"last_seen_session,omitempty" jsonschema:"newest session the npc appeared in"`
}

// RelationshipPayload represents one NPC relationship.
type RelationshipPayload struct {
	Name string `json:"name" jsonschema:"related entity name"`
	Kind string `json:"kind,omitempty" jsonschema:"relationship kind"`
}

// LocationPayload represents location-specific record fields.
type LocationPayload struct {
	Parent   string   `json:"parent,omitempty" jsonschema:"enclosing location"`
	Features []string `json:"features,omitempty" jsonschema:"notable features"`
}

// PlotPayload represents plot-thread-specific record fields.
type PlotPayload struct {
	Status               string   `json:"status,omitempty" jsonschema:"thread status"`
	LastMentionedSession int      `json:"last_mentioned_session,omitempty" jsonschema:"newest session mentioning the thread"`
	Participants         []string `json:"participants,omitempty" jsonschema:"involved entities"`
}

// SessionPayload represents session-note-specific record fields.
type SessionPayload struct {
	Number   int              `json:"number,omitempty" jsonschema:"session number"`
	Summary  string           `json:"summary,omitempty" jsonschema:"session summary"`
	Mentions []MentionPayload `json:"mentions,omitempty" jsonschema:"typed entity references"`
}

// MentionPayload represents one typed entity reference.
type MentionPayload struct {
	Type string `json:"type" jsonschema:"referenced record type"`
	Name string `json:"name" jsonschema:"referenced entity name"`
}

// ArcPayload represents character-arc-specific record fields.
type ArcPayload struct {
	Character  string             `json:"character,omitempty" jsonschema:"character name"`
	Milestones []MilestonePayload `json:"milestones,omitempty" jsonschema:"ordered arc milestones"`
}

// MilestonePayload represents one arc milestone.
type MilestonePayload struct {
	Session     int    `json:"session,omitempty" jsonschema:"session number"`
	Description string `json:"description" jsonschema:"what happened"`
}

func recordPayloadFrom(record knowledge.Record) RecordPayload {
	payload := RecordPayload{
		ID:       record.ID,
		Type:     string(record.Type),
		Name:     record.Name,
		Aliases:  record.Aliases,
		Citation: record.Source.String(),
		Body:     record.RawBody,
	}
	if record.NPC != nil {
		npc := &NPCPayload{
			Status:          record.NPC.Status,
			LastSeenSession: record.NPC.LastSeenSession,
		}
		for _, rel := range record.NPC.Relationships {
			npc.Relationships = append(npc.Relationships, RelationshipPayload{Name: rel.Name, Kind: rel.Kind})
		}
		payload.NPC = npc
	}
	if record.Location != nil {
		payload.Location = &LocationPayload{
			Parent:   record.Location.Parent,
			Features: record.Location.Features,
		}
	}
	if record.Rule != nil {
		rule := rulePayloadFrom(record)
		payload.Rule = &rule
	}
	if record.Plot != nil {
		payload.Plot = &PlotPayload{
			Status:               record.Plot.Status,
			LastMentionedSession: record.Plot.LastMentionedSession,
			Participants:         record.Plot.Participants,
		}
	}
	if record.Session != nil {
		session := &SessionPayload{
			Number:  record.Session.Number,
			Summary: record.Session.Summary,
		}
		for _, ref := range record.Session.Mentions {
			session.Mentions = append(session.Mentions, MentionPayload{Type: string(ref.Type), Name: ref.Name})
		}
		payload.Session = session
	}
	if record.Arc != nil {
		arc := &ArcPayload{Character: record.Arc.Character}
		for _, milestone := range record.Arc.Milestones {
			arc.Milestones = append(arc.Milestones, MilestonePayload{
				Session:     milestone.Session,
				Description: milestone.Description,
			})
		}
		payload.Arc = arc
	}
	return payload
}

func rulePayloadFrom(record knowledge.Record) RulePayload {
	payload := RulePayload{
		Name:     record.Name,
		Citation: record.Source.String(),
	}
	if record.Rule != nil {
		payload.Scope = string(record.Rule.Scope)
		payload.Text = record.Rule.Text
		payload.Overrides = record.Rule.Overrides
	}
	return payload
}

func findingPayloadFrom(finding consistency.Finding) FindingPayload {
	payload := FindingPayload{
		Severity:    string(finding.Severity),
		Explanation: finding.Explanation,
		Citation:    finding.Citation,
	}
	if finding.Subject != nil {
		payload.SubjectType = string(finding.Subject.Type)
		payload.SubjectName = finding.Subject.Name
	}
	return payload
}

func rulingPayloadFrom(record storage.RulingRecord) RulingPayload {
	return RulingPayload{
		ID:            record.ID,
		SessionNumber: record.Session,
		Situation:     record.Situation,
		Ruling:        record.Ruling,
		RecordedAt:    record.CreatedAt.Format(time.RFC3339),
	}
}
