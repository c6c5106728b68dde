// Package contextbuild selects a bounded, relevant slice of a knowledge
// index for a query domain and free-text focus.
package contextbuild

import (
	"sort"

	"github.com/emberfall/lorekeeper/internal/knowledge"
)

// Domain narrows which record types a query is interested in.
type Domain string

const (
	DomainNPCs     Domain = "npcs"
	DomainLore     Domain = "lore"
	DomainRules    Domain = "rules"
	DomainStory    Domain = "story"
	DomainSessions Domain = "sessions"
	DomainAll      Domain = "all"
)

// domainTypes maps each domain to its eligible record types.
var domainTypes = map[Domain][]knowledge.Type{
	DomainNPCs:     {knowledge.TypeNPC, knowledge.TypeCharacterArc},
	DomainLore:     {knowledge.TypeLocation, knowledge.TypePlotThread, knowledge.TypeNPC},
	DomainRules:    {knowledge.TypeRule},
	DomainStory:    {knowledge.TypePlotThread, knowledge.TypeSessionNote},
	DomainSessions: {knowledge.TypeSessionNote},
	DomainAll:      nil, // all types
}

// Types returns the record types eligible for a domain. Unknown domains fall
// back to every type rather than failing: the caller is an AI client and a
// misspelled domain should degrade, not error.
func (d Domain) Types() []knowledge.Type {
	kinds, ok := domainTypes[d]
	if !ok {
		return nil
	}
	return kinds
}

// Match explains why a record was selected.
type Match string

const (
	// MatchExact means the focus text mentioned the record's canonical name.
	MatchExact Match = "exact"
	// MatchAlias means the focus text mentioned one of the record's aliases.
	MatchAlias Match = "alias"
	// MatchRecency means the record was pulled in by the recency fallback.
	MatchRecency Match = "recency"
)

// Entry is one selected record with its selection reason.
type Entry struct {
	Record knowledge.Record
	Match  Match
}

// Bundle is the bounded context handed to a checker or caller. Truncated is
// set when more relevant records existed than MaxItems allowed, so the
// caller knows the result is partial.
type Bundle struct {
	Domain    Domain
	Entries   []Entry
	Total     int
	Truncated bool
}

// DefaultMaxItems bounds bundles when the caller does not say otherwise.
const DefaultMaxItems = 8

// Build selects up to maxItems records from the index for the domain.
//
// Focus text drives relevance through mention scanning; when the focus
// mentions nothing in the index the most recently referenced records of the
// domain's types fill in, so "what happened lately" still returns something
// useful. When the pool exceeds the bound, exact name matches outrank alias
// matches, which outrank recency-only picks.
func Build(index *knowledge.Index, domain Domain, focus string, maxItems int) Bundle {
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}
	bundle := Bundle{Domain: domain}
	if index == nil {
		return bundle
	}
	kinds := domain.Types()

	var entries []Entry
	for _, mention := range index.FindMentions(focus, kinds...) {
		match := MatchAlias
		if mention.Exact {
			match = MatchExact
		}
		entries = append(entries, Entry{Record: mention.Record, Match: match})
	}

	// Recency fallback applies only when the focus found nothing; a focused
	// query that matched should stay focused.
	if len(entries) == 0 {
		fallback := index.Records(kinds...)
		sort.SliceStable(fallback, func(i, j int) bool {
			return fallback[i].Recency() > fallback[j].Recency()
		})
		for _, record := range fallback {
			entries = append(entries, Entry{Record: record, Match: MatchRecency})
			if len(entries) >= maxItems {
				break
			}
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return matchRank(entries[i].Match) < matchRank(entries[j].Match)
	})

	bundle.Total = len(entries)
	if len(entries) > maxItems {
		entries = entries[:maxItems]
		bundle.Truncated = true
	}
	bundle.Entries = entries
	return bundle
}

func matchRank(match Match) int {
	switch match {
	case MatchExact:
		return 0
	case MatchAlias:
		return 1
	default:
		return 2
	}
}
