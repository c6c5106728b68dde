package knowledge

import (
	"reflect"
	"testing"
)

func npcRecord(campaignID, name string, fields *NPCFields) Record {
	record := NewRecord(campaignID, TypeNPC, name)
	record.NPC = fields
	return record
}

// TestBuildRoundTripsRecords ensures every built record is retrievable by
// canonical name with identical content.
func TestBuildRoundTripsRecords(t *testing.T) {
	records := []Record{
		npcRecord("embers", "Thornwood", &NPCFields{Status: "alive"}),
		npcRecord("embers", "Mira Vale", &NPCFields{Status: "unknown"}),
	}

	ix := Build("embers", records)
	if ix.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", ix.Len())
	}
	for _, want := range records {
		got, ok := ix.Get(TypeNPC, want.Name)
		if !ok {
			t.Fatalf("record %q not found", want.Name)
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("round trip mismatch for %q:\n got %+v\nwant %+v", want.Name, got, want)
		}
	}
}

// TestBuildMergesDuplicatesInLoadOrder ensures duplicate extraction merges
// into one record with later scalars overriding and lists unioning.
func TestBuildMergesDuplicatesInLoadOrder(t *testing.T) {
	first := npcRecord("embers", "Thornwood", &NPCFields{
		Relationships: []Relationship{{Name: "Mira Vale", Kind: "apprentice"}},
	})
	second := npcRecord("embers", "thornwood", &NPCFields{Status: "dead"})
	second.Aliases = []string{"The Old Smith"}

	ix := Build("embers", []Record{first, second})
	if ix.Len() != 1 {
		t.Fatalf("expected 1 merged record, got %d", ix.Len())
	}

	merged, ok := ix.Get(TypeNPC, "Thornwood")
	if !ok {
		t.Fatal("merged record not found")
	}
	if merged.NPC.Status != "dead" {
		t.Fatalf("expected later status to win, got %q", merged.NPC.Status)
	}
	if len(merged.NPC.Relationships) != 1 || merged.NPC.Relationships[0].Name != "Mira Vale" {
		t.Fatalf("expected relationships preserved, got %+v", merged.NPC.Relationships)
	}
	if _, ok := ix.Get(TypeNPC, "The Old Smith"); !ok {
		t.Fatal("alias lookup failed after merge")
	}
}

// TestBuildIsDeterministic ensures rebuilding from the same records yields
// identical merged output.
func TestBuildIsDeterministic(t *testing.T) {
	records := []Record{
		npcRecord("embers", "Thornwood", &NPCFields{Status: "alive"}),
		npcRecord("embers", "Thornwood", &NPCFields{LastSeenSession: 4}),
		npcRecord("embers", "Mira Vale", nil),
	}

	first := Build("embers", records)
	second := Build("embers", records)
	if !reflect.DeepEqual(first.Records(), second.Records()) {
		t.Fatalf("rebuild diverged:\n%+v\n%+v", first.Records(), second.Records())
	}
}

// TestGetByAliasAndCaseFolding ensures lookup works by alias and ignores
// casing, while unknown names return a negative result.
func TestGetByAliasAndCaseFolding(t *testing.T) {
	record := npcRecord("embers", "Thornwood", nil)
	record.Aliases = []string{"The Old Smith"}

	ix := Build("embers", []Record{record})
	if _, ok := ix.Get(TypeNPC, "THORNWOOD"); !ok {
		t.Fatal("case-folded canonical lookup failed")
	}
	if _, ok := ix.Get(TypeNPC, "the old smith"); !ok {
		t.Fatal("case-folded alias lookup failed")
	}
	if _, ok := ix.Get(TypeNPC, "Baroness Velk"); ok {
		t.Fatal("expected unknown name to miss")
	}
	if _, ok := ix.Get(TypeLocation, "Thornwood"); ok {
		t.Fatal("expected lookup to be scoped by type")
	}
}

// TestFindMentionsWordBoundary ensures mentions respect word boundaries:
// "Thornwood" matches but "Thorn" does not match inside "Thornwood".
func TestFindMentionsWordBoundary(t *testing.T) {
	ix := Build("embers", []Record{
		npcRecord("embers", "Thornwood", nil),
		npcRecord("embers", "Thorn", nil),
		npcRecord("embers", "Tor", nil),
	})

	mentions := ix.FindMentions("Thornwood the blacksmith visits the doctor")
	if len(mentions) != 1 {
		t.Fatalf("expected 1 mention, got %d: %+v", len(mentions), mentions)
	}
	if mentions[0].Record.Name != "Thornwood" || !mentions[0].Exact {
		t.Fatalf("unexpected mention: %+v", mentions[0])
	}
}

// TestFindMentionsMatchesAliases ensures alias hits are reported with the
// matched alias and multi-word names match across token boundaries.
func TestFindMentionsMatchesAliases(t *testing.T) {
	record := npcRecord("embers", "Thornwood", nil)
	record.Aliases = []string{"The Old Smith"}

	ix := Build("embers", []Record{record})
	mentions := ix.FindMentions("they asked the old smith for a blade")
	if len(mentions) != 1 {
		t.Fatalf("expected 1 mention, got %d", len(mentions))
	}
	if mentions[0].Exact || mentions[0].Alias != "The Old Smith" {
		t.Fatalf("unexpected mention: %+v", mentions[0])
	}
}

// TestFindMentionsCommonWordNeedsCapital ensures single-word names that are
// also common English words only match capitalized occurrences.
func TestFindMentionsCommonWordNeedsCapital(t *testing.T) {
	location := NewRecord("embers", TypeLocation, "Home")
	ix := Build("embers", []Record{location})

	if mentions := ix.FindMentions("the party went home to rest"); len(mentions) != 0 {
		t.Fatalf("lowercase common word should not match, got %+v", mentions)
	}
	if mentions := ix.FindMentions("the party reached Home at dusk"); len(mentions) != 1 {
		t.Fatalf("capitalized occurrence should match, got %+v", mentions)
	}
}

// TestFindMentionsFiltersByType ensures the type filter restricts the scan.
func TestFindMentionsFiltersByType(t *testing.T) {
	ix := Build("embers", []Record{
		npcRecord("embers", "Thornwood", nil),
		NewRecord("embers", TypeLocation, "Emberfall"),
	})

	mentions := ix.FindMentions("Thornwood left Emberfall", TypeLocation)
	if len(mentions) != 1 || mentions[0].Record.Type != TypeLocation {
		t.Fatalf("expected only location mentions, got %+v", mentions)
	}
}

// TestMergeUnionAndOverride ensures the documented merge rule: later scalars
// override, lists union, and a later record that only sets one field does
// not erase the rest.
func TestMergeUnionAndOverride(t *testing.T) {
	earlier := npcRecord("embers", "Thornwood", &NPCFields{
		Relationships: []Relationship{{Name: "Mira Vale", Kind: "apprentice"}},
	})
	later := npcRecord("embers", "Thornwood", &NPCFields{Status: "dead"})

	merged := Merge(earlier, later)
	if merged.NPC.Status != "dead" {
		t.Fatalf("expected status dead, got %q", merged.NPC.Status)
	}
	if len(merged.NPC.Relationships) != 1 {
		t.Fatalf("expected relationships kept, got %+v", merged.NPC.Relationships)
	}
}

// TestRecencyPerVariant ensures recency reads the variant's session marker.
func TestRecencyPerVariant(t *testing.T) {
	npc := npcRecord("embers", "Thornwood", &NPCFields{LastSeenSession: 7})
	if npc.Recency() != 7 {
		t.Fatalf("npc recency = %d, want 7", npc.Recency())
	}

	arc := NewRecord("embers", TypeCharacterArc, "Mira's Fall")
	arc.Arc = &ArcFields{Milestones: []Milestone{{Session: 2}, {Session: 9}}}
	if arc.Recency() != 9 {
		t.Fatalf("arc recency = %d, want 9", arc.Recency())
	}

	location := NewRecord("embers", TypeLocation, "Emberfall")
	if location.Recency() != 0 {
		t.Fatalf("location recency = %d, want 0", location.Recency())
	}
}
