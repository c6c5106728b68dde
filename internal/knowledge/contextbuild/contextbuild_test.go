package contextbuild

import (
	"testing"

	"github.com/emberfall/lorekeeper/internal/knowledge"
)

func npc(name string, lastSeen int, aliases ...string) knowledge.Record {
	record := knowledge.NewRecord("embers", knowledge.TypeNPC, name)
	record.Aliases = aliases
	record.NPC = &knowledge.NPCFields{LastSeenSession: lastSeen}
	return record
}

func testIndex() *knowledge.Index {
	rule := knowledge.NewRecord("embers", knowledge.TypeRule, "Flanking")
	rule.Rule = &knowledge.RuleFields{Scope: knowledge.RuleScopeHouse, Text: "+2 instead of advantage"}

	return knowledge.Build("embers", []knowledge.Record{
		npc("Thornwood", 4, "The Old Smith"),
		npc("Mira Vale", 9),
		npc("Baron Hask", 2),
		rule,
	})
}

// TestBuildPrefersExactOverAliasOverRecency ensures truncation keeps the
// most specific matches: exact name, then alias, then recency fill.
func TestBuildPrefersExactOverAliasOverRecency(t *testing.T) {
	bundle := Build(testIndex(), DomainNPCs, "Mira Vale argued with the old smith", 2)

	if len(bundle.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(bundle.Entries))
	}
	if bundle.Entries[0].Record.Name != "Mira Vale" || bundle.Entries[0].Match != MatchExact {
		t.Fatalf("unexpected first entry: %+v", bundle.Entries[0])
	}
	if bundle.Entries[1].Record.Name != "Thornwood" || bundle.Entries[1].Match != MatchAlias {
		t.Fatalf("unexpected second entry: %+v", bundle.Entries[1])
	}
}

// TestBuildTruncatesAndMarksBundle ensures max_items bounds output and the
// bundle records that results are partial.
func TestBuildTruncatesAndMarksBundle(t *testing.T) {
	bundle := Build(testIndex(), DomainNPCs, "Thornwood met Mira Vale and Baron Hask", 2)

	if len(bundle.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(bundle.Entries))
	}
	if !bundle.Truncated {
		t.Fatal("expected truncated bundle")
	}
	if bundle.Total != 3 {
		t.Fatalf("expected total 3, got %d", bundle.Total)
	}
}

// TestBuildFallsBackToRecency ensures an unfocused query returns the most
// recently referenced records of the domain.
func TestBuildFallsBackToRecency(t *testing.T) {
	bundle := Build(testIndex(), DomainNPCs, "what happened lately", 2)

	if len(bundle.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(bundle.Entries))
	}
	if bundle.Entries[0].Record.Name != "Mira Vale" || bundle.Entries[0].Match != MatchRecency {
		t.Fatalf("unexpected first entry: %+v", bundle.Entries[0])
	}
	if bundle.Entries[1].Record.Name != "Thornwood" {
		t.Fatalf("unexpected second entry: %+v", bundle.Entries[1])
	}
}

// TestBuildRestrictsDomainTypes ensures a rules query never pulls NPCs.
func TestBuildRestrictsDomainTypes(t *testing.T) {
	bundle := Build(testIndex(), DomainRules, "Thornwood ignores Flanking", 5)

	if len(bundle.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(bundle.Entries))
	}
	if bundle.Entries[0].Record.Type != knowledge.TypeRule {
		t.Fatalf("unexpected type %q", bundle.Entries[0].Record.Type)
	}
}

// TestBuildNilIndexYieldsEmptyBundle ensures a missing index degrades to an
// empty bundle rather than panicking.
func TestBuildNilIndexYieldsEmptyBundle(t *testing.T) {
	bundle := Build(nil, DomainAll, "anything", 3)
	if len(bundle.Entries) != 0 || bundle.Truncated {
		t.Fatalf("unexpected bundle: %+v", bundle)
	}
}
