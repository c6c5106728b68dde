// Package extract turns loaded markdown documents into typed knowledge
// records using heading structure and lightweight line-pattern rules.
package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/emberfall/lorekeeper/internal/campaign"
	"github.com/emberfall/lorekeeper/internal/corpus"
	"github.com/emberfall/lorekeeper/internal/knowledge"
)

// Warning records a soft extraction problem. Warnings never abort a
// document; they are collected onto the build report for inspection.
type Warning struct {
	Path    string
	Line    int
	Message string
}

// Result carries the records extracted from one document plus any warnings.
type Result struct {
	Records  []knowledge.Record
	Warnings []Warning
}

// roleTypes maps a document role to the record type its sections default to.
// Universe documents have no default: their sections only produce records
// when a heading cue names a type, everything else is lore prose.
var roleTypes = map[campaign.Role]knowledge.Type{
	campaign.RoleNPCs:     knowledge.TypeNPC,
	campaign.RoleSessions: knowledge.TypeSessionNote,
	campaign.RoleStory:    knowledge.TypePlotThread,
	campaign.RolePlayers:  knowledge.TypeCharacterArc,
}

// headingCues maps a folded heading prefix ("location: emberfall") or a
// folded container heading ("locations") to a record type. Container cues
// apply to all nested sections until a heading of the same or higher level
// closes the container.
var headingCues = map[string]knowledge.Type{
	"npc":        knowledge.TypeNPC,
	"npcs":       knowledge.TypeNPC,
	"character":  knowledge.TypeNPC,
	"characters": knowledge.TypeNPC,
	"people":     knowledge.TypeNPC,
	"location":   knowledge.TypeLocation,
	"locations":  knowledge.TypeLocation,
	"place":      knowledge.TypeLocation,
	"places":     knowledge.TypeLocation,
	"region":     knowledge.TypeLocation,
	"regions":    knowledge.TypeLocation,
	"rule":       knowledge.TypeRule,
	"rules":      knowledge.TypeRule,
	"plot":       knowledge.TypePlotThread,
	"plots":      knowledge.TypePlotThread,
	"thread":     knowledge.TypePlotThread,
	"threads":    knowledge.TypePlotThread,
}

// Document extracts typed records from one loaded document.
func Document(doc corpus.Document) Result {
	var result Result

	sections := corpus.SplitSections(doc.Text)
	defaultType, hasDefault := roleTypes[doc.Role]

	// containers tracks the nearest enclosing cue heading by level, so a
	// universe file with "## Locations" turns its "### Emberfall" children
	// into location records.
	var containers []cueContainer

	for _, section := range sections {
		for len(containers) > 0 && containers[len(containers)-1].level >= section.Level {
			containers = containers[:len(containers)-1]
		}

		if section.Heading == "" {
			if strings.TrimSpace(section.Body) != "" && hasDefault {
				result.Warnings = append(result.Warnings, Warning{
					Path:    doc.Path,
					Line:    section.StartLine,
					Message: "section without heading skipped",
				})
			}
			continue
		}

		kind, name, isContainer := classify(doc, section, containers, defaultType, hasDefault)
		if isContainer {
			containers = append(containers, cueContainer{level: section.Level, kind: kind})
			// A container heading with body prose of its own is lore, not an
			// entity; only its children become records.
			continue
		}
		if kind == "" {
			// No cue and no role default: lore-only prose, silently kept out
			// of the index.
			continue
		}
		if name == "" {
			result.Warnings = append(result.Warnings, Warning{
				Path:    doc.Path,
				Line:    section.StartLine,
				Message: "section heading has no usable name",
			})
			continue
		}

		record := buildRecord(doc, section, kind, name, &result)
		result.Records = append(result.Records, record)
	}
	return result
}

// cueContainer marks an enclosing cue heading open at a given level.
type cueContainer struct {
	level int
	kind  knowledge.Type
}

// classify decides the record type and canonical name for a section.
// Priority: explicit "Type: Name" heading prefix, then an enclosing cue
// container, then the document role default. A bare cue heading ("Locations")
// opens a container instead of producing a record.
func classify(doc corpus.Document, section corpus.Section, containers []cueContainer, defaultType knowledge.Type, hasDefault bool) (knowledge.Type, string, bool) {
	heading := strings.TrimSpace(section.Heading)

	if prefix, rest, ok := strings.Cut(heading, ":"); ok {
		if kind, cued := headingCues[knowledge.Fold(prefix)]; cued {
			return kind, strings.TrimSpace(rest), false
		}
	}

	if kind, cued := headingCues[knowledge.Fold(heading)]; cued {
		return kind, "", true
	}

	if len(containers) > 0 {
		return containers[len(containers)-1].kind, heading, false
	}

	switch doc.Role {
	case campaign.RoleHouseRules:
		return knowledge.TypeRule, heading, false
	case campaign.RoleCoreRules:
		return knowledge.TypeRule, heading, false
	}

	if hasDefault {
		return defaultType, heading, false
	}
	return "", "", false
}

// buildRecord assembles one record from a section, applying the type's field
// vocabulary to the body.
func buildRecord(doc corpus.Document, section corpus.Section, kind knowledge.Type, name string, result *Result) knowledge.Record {
	record := knowledge.NewRecord(doc.CampaignID, kind, name)
	record.Source = knowledge.Source{
		Path:      doc.Path,
		Heading:   section.Heading,
		StartLine: section.StartLine,
		EndLine:   section.EndLine,
	}
	record.RawBody = section.Body

	fields := parseBody(section.Body)
	record.Aliases = fields.list("also known as", "aka", "aliases")

	switch kind {
	case knowledge.TypeNPC:
		record.NPC = npcFields(fields)
	case knowledge.TypeLocation:
		record.Location = locationFields(fields)
	case knowledge.TypeRule:
		record.Rule = ruleFields(doc, section, fields)
	case knowledge.TypePlotThread:
		record.Plot = plotFields(fields)
	case knowledge.TypeSessionNote:
		record.Session = sessionFields(doc, section, fields, result)
	case knowledge.TypeCharacterArc:
		record.Arc = arcFields(name, fields)
	}
	return record
}

func npcFields(fields bodyFields) *knowledge.NPCFields {
	npc := &knowledge.NPCFields{
		Status: fields.scalar("status"),
	}
	npc.LastSeenSession = sessionNumber(fields.scalar("last seen", "last seen session"))
	for _, item := range fields.list("relationships", "relations") {
		if rel, ok := parseRelationship(item); ok {
			npc.Relationships = append(npc.Relationships, rel)
		}
	}
	return npc
}

func locationFields(fields bodyFields) *knowledge.LocationFields {
	return &knowledge.LocationFields{
		Parent:   fields.scalar("parent", "parent location"),
		Features: fields.list("notable features", "features"),
	}
}

func ruleFields(doc corpus.Document, section corpus.Section, fields bodyFields) *knowledge.RuleFields {
	rule := &knowledge.RuleFields{
		Scope:     knowledge.RuleScopeHouse,
		Text:      strings.TrimSpace(fields.prose),
		Overrides: fields.scalar("overrides"),
	}
	if doc.Role == campaign.RoleCoreRules {
		rule.Scope = knowledge.RuleScopeCore
	}
	if scope := knowledge.Fold(fields.scalar("scope")); scope != "" {
		switch scope {
		case "core":
			rule.Scope = knowledge.RuleScopeCore
		case "house":
			rule.Scope = knowledge.RuleScopeHouse
		}
	}
	if rule.Text == "" {
		rule.Text = strings.TrimSpace(section.Body)
	}
	return rule
}

func plotFields(fields bodyFields) *knowledge.PlotFields {
	plot := &knowledge.PlotFields{
		Status: fields.scalar("status"),
	}
	plot.LastMentionedSession = sessionNumber(fields.scalar("last mentioned", "last mentioned session"))
	plot.Participants = fields.list("participants")
	return plot
}

func sessionFields(doc corpus.Document, section corpus.Section, fields bodyFields, result *Result) *knowledge.SessionFields {
	session := &knowledge.SessionFields{
		Summary: strings.TrimSpace(fields.prose),
	}
	if number := sessionNumber(fields.scalar("session", "session number")); number > 0 {
		session.Number = number
	} else {
		session.Number = sessionNumber(section.Heading)
	}
	for _, item := range fields.list("mentions", "mentioned") {
		ref, ok := parseEntityRef(item)
		if !ok {
			result.Warnings = append(result.Warnings, Warning{
				Path:    doc.Path,
				Line:    section.StartLine,
				Message: fmt.Sprintf("unparsable mention %q kept as prose", item),
			})
			continue
		}
		session.Mentions = append(session.Mentions, ref)
	}
	if session.Summary == "" {
		session.Summary = strings.TrimSpace(section.Body)
	}
	return session
}

func arcFields(name string, fields bodyFields) *knowledge.ArcFields {
	arc := &knowledge.ArcFields{
		Character: fields.scalar("character"),
	}
	if arc.Character == "" {
		arc.Character = name
	}
	for _, item := range fields.list("milestones") {
		if milestone, ok := parseMilestone(item); ok {
			arc.Milestones = append(arc.Milestones, milestone)
		}
	}
	return arc
}

// ScanFields reads the recognized Key: value assertions out of free text,
// keyed by folded vocabulary key. The consistency checker uses this to
// compare asserted values against stored record fields.
func ScanFields(text string) map[string]string {
	return parseBody(text).scalars
}

// bodyFields holds the recognized Key: value fields of a section body plus
// the remaining prose.
type bodyFields struct {
	scalars map[string]string
	lists   map[string][]string
	prose   string
}

func (f bodyFields) scalar(keys ...string) string {
	for _, key := range keys {
		if value, ok := f.scalars[key]; ok {
			return value
		}
	}
	return ""
}

func (f bodyFields) list(keys ...string) []string {
	for _, key := range keys {
		if values, ok := f.lists[key]; ok {
			return values
		}
		// An inline scalar for a list key splits on commas and semicolons.
		if value, ok := f.scalars[key]; ok && value != "" {
			return splitInlineList(value)
		}
	}
	return nil
}

// fieldKeys is the fixed vocabulary of recognized Key: value keys, folded.
// A colon line whose key is not listed here is plain prose, not a field.
var fieldKeys = map[string]bool{
	"status":                 true,
	"relationships":          true,
	"relations":              true,
	"last seen":              true,
	"last seen session":      true,
	"also known as":          true,
	"aka":                    true,
	"aliases":                true,
	"parent":                 true,
	"parent location":        true,
	"notable features":       true,
	"features":               true,
	"scope":                  true,
	"overrides":              true,
	"last mentioned":         true,
	"last mentioned session": true,
	"participants":           true,
	"session":                true,
	"session number":         true,
	"summary":                true,
	"mentions":               true,
	"mentioned":              true,
	"character":              true,
	"milestones":             true,
}

var keyLine = regexp.MustCompile(`^([A-Za-z][A-Za-z ]{0,30}):\s*(.*)$`)

// parseBody scans a section body for vocabulary fields. Bullet lines that
// follow a list key with no inline value attach to that key; everything
// unrecognized stays prose.
func parseBody(body string) bodyFields {
	fields := bodyFields{
		scalars: make(map[string]string),
		lists:   make(map[string][]string),
	}
	var prose []string
	pendingList := ""

	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)

		if bullet, ok := bulletItem(trimmed); ok && pendingList != "" {
			fields.lists[pendingList] = append(fields.lists[pendingList], bullet)
			continue
		}

		if match := keyLine.FindStringSubmatch(trimmed); match != nil {
			key := knowledge.Fold(strings.TrimSpace(match[1]))
			if fieldKeys[key] {
				value := strings.TrimSpace(match[2])
				if value == "" {
					pendingList = key
				} else {
					pendingList = ""
					fields.scalars[key] = value
				}
				continue
			}
		}

		pendingList = ""
		prose = append(prose, line)
	}

	fields.prose = strings.Join(prose, "\n")
	return fields
}

func bulletItem(line string) (string, bool) {
	for _, marker := range []string{"- ", "* ", "+ "} {
		if strings.HasPrefix(line, marker) {
			return strings.TrimSpace(line[len(marker):]), true
		}
	}
	return "", false
}

func splitInlineList(value string) []string {
	parts := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ';'
	})
	var out []string
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// parseRelationship reads "Mira Vale (apprentice)" or "Mira Vale - apprentice".
func parseRelationship(item string) (knowledge.Relationship, bool) {
	if open := strings.LastIndex(item, "("); open > 0 && strings.HasSuffix(item, ")") {
		name := strings.TrimSpace(item[:open])
		kind := strings.TrimSpace(item[open+1 : len(item)-1])
		if name != "" {
			return knowledge.Relationship{Name: name, Kind: kind}, true
		}
	}
	if name, kind, ok := strings.Cut(item, " - "); ok {
		name, kind = strings.TrimSpace(name), strings.TrimSpace(kind)
		if name != "" {
			return knowledge.Relationship{Name: name, Kind: kind}, true
		}
	}
	if trimmed := strings.TrimSpace(item); trimmed != "" {
		return knowledge.Relationship{Name: trimmed}, true
	}
	return knowledge.Relationship{}, false
}

// parseEntityRef reads "npc: Thornwood" or "location: Emberfall".
func parseEntityRef(item string) (knowledge.EntityRef, bool) {
	kindPart, namePart, ok := strings.Cut(item, ":")
	if !ok {
		return knowledge.EntityRef{}, false
	}
	name := strings.TrimSpace(namePart)
	if name == "" {
		return knowledge.EntityRef{}, false
	}
	switch knowledge.Fold(strings.TrimSpace(kindPart)) {
	case "npc":
		return knowledge.EntityRef{Type: knowledge.TypeNPC, Name: name}, true
	case "location":
		return knowledge.EntityRef{Type: knowledge.TypeLocation, Name: name}, true
	case "rule":
		return knowledge.EntityRef{Type: knowledge.TypeRule, Name: name}, true
	case "plot", "thread":
		return knowledge.EntityRef{Type: knowledge.TypePlotThread, Name: name}, true
	}
	return knowledge.EntityRef{}, false
}

// parseMilestone reads "Session 3: found the blade" or "3 - found the blade".
func parseMilestone(item string) (knowledge.Milestone, bool) {
	if numberPart, rest, ok := strings.Cut(item, ":"); ok {
		if number := sessionNumber(numberPart); number > 0 {
			return knowledge.Milestone{Session: number, Description: strings.TrimSpace(rest)}, true
		}
	}
	if numberPart, rest, ok := strings.Cut(item, " - "); ok {
		if number := sessionNumber(numberPart); number > 0 {
			return knowledge.Milestone{Session: number, Description: strings.TrimSpace(rest)}, true
		}
	}
	if trimmed := strings.TrimSpace(item); trimmed != "" {
		return knowledge.Milestone{Description: trimmed}, true
	}
	return knowledge.Milestone{}, false
}

var sessionNumberPattern = regexp.MustCompile(`(?i)(?:session\s*)?#?(\d+)`)

// sessionNumber pulls a session number out of strings like "Session 12",
// "12" or "Session 12 - The Fall". Zero means no number was found.
func sessionNumber(text string) int {
	match := sessionNumberPattern.FindStringSubmatch(text)
	if match == nil {
		return 0
	}
	number, err := strconv.Atoi(match[1])
	if err != nil {
		return 0
	}
	return number
}
