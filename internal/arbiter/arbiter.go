// Package arbiter answers rules questions over a built knowledge index:
// house rule vs core rule lookups, override comparison, and keyword-driven
// edge case suggestions. Every answer is advisory; the table's GM has final
// authority.
package arbiter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/emberfall/lorekeeper/internal/knowledge"
	apperrors "github.com/emberfall/lorekeeper/internal/platform/errors"
)

// snippetRunes bounds quoted rule text in recommendations.
const snippetRunes = 200

// RuleAnswer is the result of a rule lookup across both scopes.
type RuleAnswer struct {
	RuleName       string
	Core           *knowledge.Record
	House          *knowledge.Record
	Recommendation string
	Sources        []string
}

// QueryRule looks ruleName up in house and core scope and recommends which
// text governs. House rules win when both scopes match.
func QueryRule(index *knowledge.Index, ruleName string) (RuleAnswer, error) {
	if index == nil {
		return RuleAnswer{}, errIndexMissing()
	}
	answer := RuleAnswer{RuleName: ruleName}

	if core, ok := findRule(index, ruleName, knowledge.RuleScopeCore); ok {
		answer.Core = &core
		answer.Sources = append(answer.Sources, "core rules")
	}
	if house, ok := findRule(index, ruleName, knowledge.RuleScopeHouse); ok {
		answer.House = &house
		answer.Sources = append(answer.Sources, "house rules")
	}

	switch {
	case answer.House != nil:
		answer.Recommendation = fmt.Sprintf("use the campaign house rule: %s", snippet(answer.House.Rule.Text))
	case answer.Core != nil:
		answer.Recommendation = fmt.Sprintf("use the core rule: %s", snippet(answer.Core.Rule.Text))
	default:
		answer.Recommendation = fmt.Sprintf("no indexed rule matches %q; fall back to the base game or make a ruling", ruleName)
	}
	return answer, nil
}

// HouseRules is the campaign's house-scope rule set, optionally narrowed to
// one category.
type HouseRules struct {
	Campaign   string
	Category   string
	Rules      []knowledge.Record
	Categories []string
}

// CheckHouseRules returns the house-scope rules, filtered to names matching
// category when it is non-empty. Categories always lists every house rule
// name so a caller can discover what is available.
func CheckHouseRules(index *knowledge.Index, category string) (HouseRules, error) {
	if index == nil {
		return HouseRules{}, errIndexMissing()
	}
	result := HouseRules{Campaign: index.CampaignID(), Category: category}

	folded := knowledge.Fold(category)
	for _, record := range index.Records(knowledge.TypeRule) {
		if record.Rule == nil || record.Rule.Scope != knowledge.RuleScopeHouse {
			continue
		}
		result.Categories = append(result.Categories, record.Name)
		if folded != "" && !strings.Contains(knowledge.Fold(record.Name), folded) {
			continue
		}
		result.Rules = append(result.Rules, record)
	}
	return result, nil
}

// Comparison pits the core version of a rule against its campaign override.
type Comparison struct {
	RuleName       string
	CoreDefined    bool
	HouseOverride  bool
	Core           *knowledge.Record
	House          *knowledge.Record
	Recommendation string
}

// CompareRules finds both scoped versions of a rule. A house rule whose
// Overrides field names the core rule counts as an override even when the
// two names differ.
func CompareRules(index *knowledge.Index, ruleName string) (Comparison, error) {
	if index == nil {
		return Comparison{}, errIndexMissing()
	}
	comparison := Comparison{RuleName: ruleName}

	if core, ok := findRule(index, ruleName, knowledge.RuleScopeCore); ok {
		comparison.Core = &core
		comparison.CoreDefined = true
	}
	if house, ok := findRule(index, ruleName, knowledge.RuleScopeHouse); ok {
		comparison.House = &house
		comparison.HouseOverride = true
	} else if comparison.Core != nil {
		if house, ok := findOverride(index, comparison.Core.Name); ok {
			comparison.House = &house
			comparison.HouseOverride = true
		}
	}

	switch {
	case comparison.HouseOverride:
		comparison.Recommendation = "use the campaign rule"
	case comparison.CoreDefined:
		comparison.Recommendation = "use the core rule"
	default:
		comparison.Recommendation = "no indexed rule; use the base game"
	}
	return comparison, nil
}

// RelatedRule is one rule pulled in by edge case keyword search.
type RelatedRule struct {
	Scope   knowledge.RuleScope
	Keyword string
	Record  knowledge.Record
}

// EdgeCaseRuling is a suggested ruling for an unusual situation.
type EdgeCaseRuling struct {
	Situation  string
	Related    []RelatedRule
	Suggestion string
	Note       string
}

// ResolveEdgeCase extracts game keywords from the situation, gathers rules
// matching them, and composes a suggested ruling from the closest matches.
func ResolveEdgeCase(index *knowledge.Index, situation string) (EdgeCaseRuling, error) {
	if index == nil {
		return EdgeCaseRuling{}, errIndexMissing()
	}
	ruling := EdgeCaseRuling{
		Situation: situation,
		Note:      "suggested ruling only; the GM has final authority",
	}

	seen := make(map[string]bool)
	for _, keyword := range extractKeywords(situation) {
		for _, scope := range []knowledge.RuleScope{knowledge.RuleScopeHouse, knowledge.RuleScopeCore} {
			record, ok := findRule(index, keyword, scope)
			if !ok || seen[record.ID] {
				continue
			}
			seen[record.ID] = true
			ruling.Related = append(ruling.Related, RelatedRule{Scope: scope, Keyword: keyword, Record: record})
		}
	}

	ruling.Suggestion = suggest(ruling.Related)
	return ruling, nil
}

func suggest(related []RelatedRule) string {
	if len(related) == 0 {
		return "no related rules indexed; make a balanced ruling that favors the narrative and keeps the game moving"
	}
	var b strings.Builder
	b.WriteString("based on related rules:\n")
	for i, rel := range related {
		if i == 2 {
			break
		}
		fmt.Fprintf(&b, "- %s (%s scope): %s\n", rel.Record.Name, rel.Scope, snippet(rel.Record.Rule.Text))
	}
	b.WriteString("apply these principles to the situation, fairly and consistently")
	return b.String()
}

// findRule scans the index's rule records for the first one in scope whose
// name or text contains term. Index order is deterministic, so repeated
// queries return the same rule.
func findRule(index *knowledge.Index, term string, scope knowledge.RuleScope) (knowledge.Record, bool) {
	folded := knowledge.Fold(term)
	if folded == "" {
		return knowledge.Record{}, false
	}
	for _, record := range index.Records(knowledge.TypeRule) {
		if record.Rule == nil || record.Rule.Scope != scope {
			continue
		}
		if strings.Contains(knowledge.Fold(record.Name), folded) ||
			strings.Contains(knowledge.Fold(record.Rule.Text), folded) {
			return record, true
		}
	}
	return knowledge.Record{}, false
}

// findOverride scans house rules for one that declares it overrides coreName.
func findOverride(index *knowledge.Index, coreName string) (knowledge.Record, bool) {
	folded := knowledge.Fold(coreName)
	for _, record := range index.Records(knowledge.TypeRule) {
		if record.Rule == nil || record.Rule.Scope != knowledge.RuleScopeHouse {
			continue
		}
		if knowledge.Fold(record.Rule.Overrides) == folded {
			return record, true
		}
	}
	return knowledge.Record{}, false
}

// gameTerms are mechanics keywords worth searching rules for when they show
// up in an edge case description.
var gameTerms = []string{
	"advantage", "disadvantage", "attack", "damage", "spell", "casting",
	"initiative", "combat", "action", "bonus action", "reaction",
	"saving throw", "ability check", "skill check", "critical", "rest",
	"concentration", "death save", "hit points", "armor class",
}

var quotedTerm = regexp.MustCompile(`"([^"]+)"`)

// extractKeywords pulls recognized mechanics terms plus up to three quoted
// phrases out of a situation description, capped at five keywords.
func extractKeywords(situation string) []string {
	folded := knowledge.Fold(situation)
	var keywords []string
	for _, term := range gameTerms {
		if strings.Contains(folded, term) {
			keywords = append(keywords, term)
		}
	}
	quoted := quotedTerm.FindAllStringSubmatch(situation, 3)
	for _, match := range quoted {
		keywords = append(keywords, match[1])
	}
	if len(keywords) > 5 {
		keywords = keywords[:5]
	}
	return keywords
}

func snippet(text string) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= snippetRunes {
		return text
	}
	return string(runes[:snippetRunes]) + "..."
}

func errIndexMissing() error {
	return apperrors.New(apperrors.CodeIndexMissing,
		"no index built; activate or refresh a campaign first")
}
