// Package consistency compares new campaign text against the knowledge index
// and flags detectable contradictions. The check is a heuristic single pass
// over recognized structured fields plus unknown-name mentions; it never
// claims logical completeness, and ambiguous judgments surface as findings
// for the caller to resolve rather than being settled silently.
package consistency

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/emberfall/lorekeeper/internal/knowledge"
	"github.com/emberfall/lorekeeper/internal/knowledge/contextbuild"
	"github.com/emberfall/lorekeeper/internal/knowledge/extract"
	apperrors "github.com/emberfall/lorekeeper/internal/platform/errors"
)

// Severity grades how sure the checker is about a finding.
type Severity string

const (
	// SeverityContradiction marks a direct conflict with a stored field.
	SeverityContradiction Severity = "contradiction"
	// SeverityPossibleConflict marks a softer signal, such as a name the
	// index has never seen.
	SeverityPossibleConflict Severity = "possible_conflict"
	// SeverityNoIssue reports that the pass found nothing to flag.
	SeverityNoIssue Severity = "no_issue"
)

// Finding is one result of checking new text against the index. Findings are
// response values only; they are never persisted.
type Finding struct {
	Severity Severity
	// Subject names the record the finding is about; nil when the referenced
	// entity is unknown to the index.
	Subject     *knowledge.EntityRef
	Explanation string
	// Citation points at the stored record's source location, empty for
	// findings without a stored counterpart.
	Citation string
}

// fieldRule pairs an asserted vocabulary key with the stored record field it
// must agree with. Contradiction detection is this table, not scattered
// conditionals, so new rules are added by appending a row.
type fieldRule struct {
	kind   knowledge.Type
	field  string
	label  string
	stored func(knowledge.Record) string
}

var fieldRules = []fieldRule{
	{knowledge.TypeNPC, "status", "status", func(r knowledge.Record) string {
		if r.NPC == nil {
			return ""
		}
		return r.NPC.Status
	}},
	{knowledge.TypePlotThread, "status", "status", func(r knowledge.Record) string {
		if r.Plot == nil {
			return ""
		}
		return r.Plot.Status
	}},
	{knowledge.TypeLocation, "parent", "parent location", func(r knowledge.Record) string {
		if r.Location == nil {
			return ""
		}
		return r.Location.Parent
	}},
	{knowledge.TypeRule, "overrides", "overridden rule", func(r knowledge.Record) string {
		if r.Rule == nil {
			return ""
		}
		return r.Rule.Overrides
	}},
}

// deadStatuses lists folded NPC status values that rule out the NPC acting.
var deadStatuses = map[string]bool{
	"dead": true, "deceased": true, "slain": true, "killed": true,
}

// activityVerbs lists folded verbs that, directly after a name, read as that
// entity acting or speaking in the present narrative.
var activityVerbs = map[string]bool{
	"walks": true, "walked": true, "speaks": true, "spoke": true,
	"says": true, "said": true, "orders": true, "ordered": true,
	"enters": true, "entered": true, "arrives": true, "arrived": true,
	"attacks": true, "attacked": true, "fights": true, "fought": true,
	"drinks": true, "drank": true, "laughs": true, "laughed": true,
	"shouts": true, "shouted": true, "greets": true, "greeted": true,
	"leaves": true, "returns": true, "returned": true, "asks": true,
	"asked": true, "offers": true, "offered": true,
}

// Check compares newText against the index records of the domain's types.
//
// Three detectors run in one pass: table-driven field assertions against
// stored scalar fields, the dead-NPC-acting heuristic, and unknown
// capitalized-name references. When nothing fires, a single no_issue finding
// is returned so the caller always gets an answer, not an empty list.
func Check(index *knowledge.Index, domain contextbuild.Domain, newText string) ([]Finding, error) {
	if index == nil {
		return nil, apperrors.New(apperrors.CodeIndexMissing,
			"no index built; activate or refresh a campaign first")
	}

	assertions := extract.ScanFields(newText)
	tokens := tokenize(newText)

	var findings []Finding
	for _, mention := range index.FindMentions(newText, domain.Types()...) {
		record := mention.Record
		subject := &knowledge.EntityRef{Type: record.Type, Name: record.Name}

		for _, rule := range fieldRules {
			if rule.kind != record.Type {
				continue
			}
			asserted, stored := assertions[rule.field], rule.stored(record)
			if asserted == "" || stored == "" {
				continue
			}
			// Overlapping field with no disagreement is not a finding;
			// absence of evidence is not evidence of contradiction.
			if knowledge.Fold(asserted) == knowledge.Fold(stored) {
				continue
			}
			findings = append(findings, Finding{
				Severity: SeverityContradiction,
				Subject:  subject,
				Explanation: fmt.Sprintf("text asserts %s %q but %q is recorded with %s %q",
					rule.label, asserted, record.Name, rule.label, stored),
				Citation: record.Source.String(),
			})
		}

		if record.Type == knowledge.TypeNPC && record.NPC != nil && deadStatuses[knowledge.Fold(record.NPC.Status)] {
			matched := record.Name
			if mention.Alias != "" {
				matched = mention.Alias
			}
			if verb, ok := actingVerb(tokens, matched); ok {
				findings = append(findings, Finding{
					Severity: SeverityContradiction,
					Subject:  subject,
					Explanation: fmt.Sprintf("%q is recorded as %s but the text has them %q",
						record.Name, record.NPC.Status, verb),
					Citation: record.Source.String(),
				})
			}
		}
	}

	findings = append(findings, unknownNames(index, tokens)...)

	if len(findings) == 0 {
		findings = append(findings, Finding{
			Severity:    SeverityNoIssue,
			Explanation: "no contradictions detected against the indexed records",
		})
	}
	return findings, nil
}

// token is one word of the scanned text with original casing and a marker
// for whether it opens a sentence.
type token struct {
	text          string
	sentenceStart bool
}

// tokenize splits text the way the index's mention scanner does, additionally
// tracking sentence boundaries (start of text, or after '.', '!', '?' or a
// newline).
func tokenize(text string) []token {
	var tokens []token
	var current strings.Builder
	pending := true
	startsSentence := false

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, token{text: current.String(), sentenceStart: startsSentence})
			current.Reset()
			pending = false
		}
	}
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' || r == '-' {
			if current.Len() == 0 {
				startsSentence = pending
			}
			current.WriteRune(r)
			continue
		}
		flush()
		if r == '.' || r == '!' || r == '?' || r == '\n' {
			pending = true
		}
	}
	flush()
	return tokens
}

// actingVerb reports the activity verb directly following an occurrence of
// name in the token stream, if any.
func actingVerb(tokens []token, name string) (string, bool) {
	parts := tokenize(name)
	if len(parts) == 0 {
		return "", false
	}
	for i := 0; i+len(parts) < len(tokens); i++ {
		matched := true
		for j, part := range parts {
			if knowledge.Fold(tokens[i+j].text) != knowledge.Fold(part.text) {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}
		next := tokens[i+len(parts)].text
		if activityVerbs[knowledge.Fold(next)] {
			return next, true
		}
	}
	return "", false
}

// articles are leading tokens stripped from a capitalized run before lookup.
var articles = map[string]bool{"the": true, "a": true, "an": true}

// singleTokenStops are lone capitalized words never treated as entity names.
var singleTokenStops = map[string]bool{
	"i": true, "the": true, "a": true, "an": true,
	"gm": true, "dm": true, "session": true, "status": true,
}

// unknownNames flags capitalized name runs that resolve to nothing in the
// index, not even through an alias. Single capitalized words opening a
// sentence are skipped; ordinary English capitalization would otherwise
// drown the signal in false positives.
func unknownNames(index *knowledge.Index, tokens []token) []Finding {
	var findings []Finding
	seen := make(map[string]bool)

	for i := 0; i < len(tokens); {
		if !startsUpper(tokens[i].text) {
			i++
			continue
		}
		run := []token{tokens[i]}
		j := i + 1
		for j < len(tokens) && startsUpper(tokens[j].text) && !tokens[j].sentenceStart {
			run = append(run, tokens[j])
			j++
		}
		i = j

		// The full run is tried before article stripping so aliases like
		// "The Old Smith" resolve intact.
		if known(index, joinRun(run)) {
			continue
		}
		for len(run) > 1 && articles[knowledge.Fold(run[0].text)] {
			run = run[1:]
		}
		if len(run) == 1 {
			if run[0].sentenceStart || singleTokenStops[knowledge.Fold(run[0].text)] {
				continue
			}
		}

		candidate := joinRun(run)
		folded := knowledge.Fold(candidate)
		if seen[folded] {
			continue
		}
		if known(index, candidate) {
			continue
		}
		seen[folded] = true
		findings = append(findings, Finding{
			Severity:    SeverityPossibleConflict,
			Explanation: fmt.Sprintf("%q is not in the index under any record or alias", candidate),
		})
	}
	return findings
}

func joinRun(run []token) string {
	parts := make([]string, len(run))
	for i, t := range run {
		parts[i] = t.text
	}
	return strings.Join(parts, " ")
}

// known reports whether a candidate resolves to any record, directly, via
// alias, or by containing a known name ("Old Thornwood" is a styling of a
// known entity, not an unknown reference).
func known(index *knowledge.Index, candidate string) bool {
	if _, ok := index.GetAny(candidate); ok {
		return true
	}
	return len(index.FindMentions(candidate)) > 0
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}
