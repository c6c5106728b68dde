package knowledge

import (
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

type recordKey struct {
	kind Type
	name string // folded
}

// Index is the per-campaign in-memory store of merged records. It is built
// wholesale and never mutated afterwards, so concurrent readers need no
// locking.
type Index struct {
	campaignID string
	records    map[recordKey]Record
	aliases    map[Type]map[string]string // folded alias -> folded canonical
	order      []recordKey
	builtAt    time.Time
}

// Build merges records in slice order into an index. Records sharing
// (type, folded name) merge per the union/override rule; the caller is
// responsible for handing records over in the loader's deterministic order.
func Build(campaignID string, records []Record) *Index {
	ix := &Index{
		campaignID: campaignID,
		records:    make(map[recordKey]Record, len(records)),
		aliases:    make(map[Type]map[string]string),
		builtAt:    time.Now().UTC(),
	}

	for _, record := range records {
		key := recordKey{kind: record.Type, name: Fold(record.Name)}
		if key.name == "" {
			continue
		}
		if existing, ok := ix.records[key]; ok {
			ix.records[key] = Merge(existing, record)
		} else {
			ix.records[key] = record
			ix.order = append(ix.order, key)
		}
	}

	sort.Slice(ix.order, func(i, j int) bool {
		if ix.order[i].kind != ix.order[j].kind {
			return ix.order[i].kind < ix.order[j].kind
		}
		return ix.order[i].name < ix.order[j].name
	})

	for _, key := range ix.order {
		record := ix.records[key]
		byAlias, ok := ix.aliases[record.Type]
		if !ok {
			byAlias = make(map[string]string)
			ix.aliases[record.Type] = byAlias
		}
		for _, alias := range record.Aliases {
			folded := Fold(alias)
			if folded == "" || folded == key.name {
				continue
			}
			// First record wins a contested alias; later claims are dropped
			// rather than silently rebinding the alias.
			if _, taken := byAlias[folded]; !taken {
				byAlias[folded] = key.name
			}
		}
	}
	return ix
}

// CampaignID returns the campaign the index was built for.
func (ix *Index) CampaignID() string {
	return ix.campaignID
}

// BuiltAt returns when the index was built.
func (ix *Index) BuiltAt() time.Time {
	return ix.builtAt
}

// Len returns the number of merged records.
func (ix *Index) Len() int {
	return len(ix.order)
}

// Get looks a record up by canonical name or alias. The boolean is false
// when the entity is not known; that is an ordinary negative result, not an
// error.
func (ix *Index) Get(kind Type, nameOrAlias string) (Record, bool) {
	folded := Fold(nameOrAlias)
	if folded == "" {
		return Record{}, false
	}
	if record, ok := ix.records[recordKey{kind: kind, name: folded}]; ok {
		return record, true
	}
	if canonical, ok := ix.aliases[kind][folded]; ok {
		record, found := ix.records[recordKey{kind: kind, name: canonical}]
		return record, found
	}
	return Record{}, false
}

// GetAny looks a name up across every record type in deterministic type
// order, returning the first match.
func (ix *Index) GetAny(nameOrAlias string) (Record, bool) {
	for _, kind := range Types {
		if record, ok := ix.Get(kind, nameOrAlias); ok {
			return record, true
		}
	}
	return Record{}, false
}

// Records returns the merged records for the given types (all types when
// none are named) sorted by type then folded name.
func (ix *Index) Records(kinds ...Type) []Record {
	var filter map[Type]bool
	if len(kinds) > 0 {
		filter = make(map[Type]bool, len(kinds))
		for _, kind := range kinds {
			filter[kind] = true
		}
	}
	var out []Record
	for _, key := range ix.order {
		if filter != nil && !filter[key.kind] {
			continue
		}
		out = append(out, ix.records[key])
	}
	return out
}

// Mention is one occurrence of an indexed entity's name in free text.
type Mention struct {
	Record Record
	// Alias holds the matched alias when the hit was not the canonical name.
	Alias string
	// Exact is true when the canonical name itself matched.
	Exact bool
}

// FindMentions scans text for canonical names and aliases of the given
// record types (all types when none are named). Matching is fold-insensitive
// and word-boundary disciplined: "Thornwood" never matches inside
// "Thornwoodshire", and "Tor" never matches inside "Doctor".
//
// Single-word names that collide with common English words ("Home", "Inn")
// additionally require a capitalized occurrence. This deliberately trades
// false negatives in all-lowercase prose for far fewer false positives; see
// DESIGN.md.
func (ix *Index) FindMentions(text string, kinds ...Type) []Mention {
	words := splitWords(text)
	if len(words) == 0 {
		return nil
	}

	var mentions []Mention
	seen := make(map[recordKey]bool)
	for _, record := range ix.Records(kinds...) {
		key := recordKey{kind: record.Type, name: Fold(record.Name)}
		if seen[key] {
			continue
		}
		if matchesName(words, record.Name) {
			seen[key] = true
			mentions = append(mentions, Mention{Record: record, Exact: true})
			continue
		}
		for _, alias := range record.Aliases {
			if matchesName(words, alias) {
				seen[key] = true
				mentions = append(mentions, Mention{Record: record, Alias: alias})
				break
			}
		}
	}
	return mentions
}

// word is one boundary-delimited token of scanned text with original casing.
type word struct {
	text string
}

// splitWords tokenizes text on non-name runes. Apostrophes and hyphens bind
// into words so "D'Arcy" and "Wyrm-Queen" survive as single tokens.
func splitWords(text string) []word {
	var words []word
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			words = append(words, word{text: current.String()})
			current.Reset()
		}
	}
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' || r == '-' {
			current.WriteRune(r)
			continue
		}
		flush()
	}
	flush()
	return words
}

// matchesName reports whether the token sequence of name occurs in words.
func matchesName(words []word, name string) bool {
	tokens := splitWords(name)
	if len(tokens) == 0 {
		return false
	}
	needsCapital := len(tokens) == 1 && commonWords[Fold(tokens[0].text)]

	for i := 0; i+len(tokens) <= len(words); i++ {
		matched := true
		for j, token := range tokens {
			if Fold(words[i+j].text) != Fold(token.text) {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}
		if needsCapital && !startsUpper(words[i].text) {
			continue
		}
		return true
	}
	return false
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}

// commonWords lists folded English words that double as plausible entity
// names. A single-word name on this list only matches capitalized
// occurrences.
var commonWords = map[string]bool{
	"home": true, "inn": true, "keep": true, "well": true, "gate": true,
	"hall": true, "fall": true, "rest": true, "watch": true, "forge": true,
	"cross": true, "bridge": true, "port": true, "march": true, "spring": true,
	"hollow": true, "shade": true, "ash": true, "ember": true, "crown": true,
}
