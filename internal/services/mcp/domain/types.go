package domain

// CampaignListInput represents the MCP tool input for listing campaigns.
type CampaignListInput struct{}

// CampaignListEntry represents one configured campaign.
type CampaignListEntry struct {
	ID          string `json:"id" jsonschema:"campaign identifier"`
	Name        string `json:"name" jsonschema:"display name"`
	Description string `json:"description,omitempty" jsonschema:"campaign description"`
	Layout      string `json:"layout" jsonschema:"source layout (legacy, standard)"`
	Active      bool   `json:"active" jsonschema:"whether this campaign is currently active"`
}

// CampaignListResult represents the MCP tool output for listing campaigns.
type CampaignListResult struct {
	Campaigns []CampaignListEntry `json:"campaigns" jsonschema:"configured campaigns"`
}

// CampaignSwitchInput represents the MCP tool input for switching campaigns.
type CampaignSwitchInput struct {
	CampaignID string `json:"campaign_id" jsonschema:"campaign identifier to activate"`
}

// CampaignInfoInput represents the MCP tool input for campaign info.
type CampaignInfoInput struct{}

// CampaignRefreshInput represents the MCP tool input for refreshing the
// active campaign's index.
type CampaignRefreshInput struct{}

// CampaignInfoResult represents the MCP tool output describing the active
// campaign and its index build.
type CampaignInfoResult struct {
	ID          string   `json:"id" jsonschema:"campaign identifier"`
	Name        string   `json:"name" jsonschema:"display name"`
	Description string   `json:"description,omitempty" jsonschema:"campaign description"`
	Layout      string   `json:"layout" jsonschema:"source layout (legacy, standard)"`
	Documents   int      `json:"documents" jsonschema:"number of loaded documents"`
	Records     int      `json:"records" jsonschema:"number of indexed records"`
	Missing     []string `json:"missing,omitempty" jsonschema:"configured paths that were absent"`
	Warnings    int      `json:"warnings" jsonschema:"number of soft extraction warnings"`
	Partial     bool     `json:"partial" jsonschema:"whether any expected input was skipped"`
	BuiltAt     string   `json:"built_at" jsonschema:"RFC3339 timestamp of the index build"`
}

// LoreLookupInput represents the MCP tool input for entity lookup.
type LoreLookupInput struct {
	Name string `json:"name" jsonschema:"entity name or alias to look up"`
	Type string `json:"type,omitempty" jsonschema:"record type to restrict to (npc, location, rule, plot_thread, session_note, character_arc)"`
}

// LoreLookupResult represents the MCP tool output for entity lookup. A miss
// is an ordinary negative result, not an error.
type LoreLookupResult struct {
	Found  bool           `json:"found" jsonschema:"whether the entity is indexed"`
	Record *RecordPayload `json:"record,omitempty" jsonschema:"the indexed record when found"`
}

// ContextBuildInput represents the MCP tool input for context building.
type ContextBuildInput struct {
	Domain   string `json:"domain,omitempty" jsonschema:"query domain (npcs, lore, rules, story, sessions, all)"`
	Focus    string `json:"focus,omitempty" jsonschema:"free text naming what the query is about"`
	MaxItems int    `json:"max_items,omitempty" jsonschema:"maximum records to return (default 8)"`
}

// ContextEntryPayload represents one selected context record.
type ContextEntryPayload struct {
	Match  string        `json:"match" jsonschema:"why the record was selected (exact, alias, recency)"`
	Record RecordPayload `json:"record" jsonschema:"the selected record"`
}

// ContextBuildResult represents the MCP tool output for context building.
type ContextBuildResult struct {
	Domain    string                `json:"domain" jsonschema:"query domain"`
	Entries   []ContextEntryPayload `json:"entries" jsonschema:"selected records in priority order"`
	Total     int                   `json:"total" jsonschema:"relevant records before truncation"`
	Truncated bool                  `json:"truncated" jsonschema:"whether max_items cut the result"`
}

// ConsistencyCheckInput represents the MCP tool input for consistency checks.
type ConsistencyCheckInput struct {
	Text   string `json:"text" jsonschema:"new campaign text to check against the index"`
	Domain string `json:"domain,omitempty" jsonschema:"query domain to restrict mentions to (default all)"`
}

// FindingPayload represents one consistency finding.
type FindingPayload struct {
	Severity    string `json:"severity" jsonschema:"finding severity (contradiction, possible_conflict, no_issue)"`
	SubjectType string `json:"subject_type,omitempty" jsonschema:"record type of the subject when known"`
	SubjectName string `json:"subject_name,omitempty" jsonschema:"record name of the subject when known"`
	Explanation string `json:"explanation" jsonschema:"what was detected"`
	Citation    string `json:"citation,omitempty" jsonschema:"stored record source backing the finding"`
}

// ConsistencyCheckResult represents the MCP tool output for consistency checks.
type ConsistencyCheckResult struct {
	Findings []FindingPayload `json:"findings" jsonschema:"findings in detection order"`
}

// RuleQueryInput represents the MCP tool input for rule lookup.
type RuleQueryInput struct {
	RuleName string `json:"rule_name" jsonschema:"the rule or mechanic to look up"`
}

// RulePayload represents one indexed rule.
type RulePayload struct {
	Name      string `json:"name" jsonschema:"rule name"`
	Scope     string `json:"scope" jsonschema:"rule scope (core, house)"`
	Text      string `json:"text" jsonschema:"rule text"`
	Overrides string `json:"overrides,omitempty" jsonschema:"core rule this house rule overrides"`
	Citation  string `json:"citation" jsonschema:"source document location"`
}

// RuleQueryResult represents the MCP tool output for rule lookup.
type RuleQueryResult struct {
	RuleName       string       `json:"rule_name" jsonschema:"queried rule name"`
	Core           *RulePayload `json:"core_rule,omitempty" jsonschema:"matching core rule"`
	House          *RulePayload `json:"house_rule,omitempty" jsonschema:"matching house rule"`
	Recommendation string       `json:"recommendation" jsonschema:"which rule text governs"`
	Sources        []string     `json:"sources,omitempty" jsonschema:"scopes that matched"`
}

// HouseRulesInput represents the MCP tool input for listing house rules.
type HouseRulesInput struct {
	Category string `json:"category,omitempty" jsonschema:"optional rule name filter"`
}

// HouseRulesResult represents the MCP tool output for listing house rules.
type HouseRulesResult struct {
	Campaign   string        `json:"campaign" jsonschema:"campaign identifier"`
	Category   string        `json:"category,omitempty" jsonschema:"applied filter"`
	Rules      []RulePayload `json:"rules" jsonschema:"matching house rules"`
	Categories []string      `json:"categories" jsonschema:"every house rule name"`
}

// RuleCompareInput represents the MCP tool input for rule comparison.
type RuleCompareInput struct {
	RuleName string `json:"rule_name" jsonschema:"the rule to compare across scopes"`
}

// RuleCompareResult represents the MCP tool output for rule comparison.
type RuleCompareResult struct {
	RuleName       string       `json:"rule_name" jsonschema:"compared rule name"`
	CoreDefined    bool         `json:"core_defined" jsonschema:"whether a core rule matched"`
	HouseOverride  bool         `json:"house_override" jsonschema:"whether a house rule overrides it"`
	Core           *RulePayload `json:"core_rule,omitempty" jsonschema:"matching core rule"`
	House          *RulePayload `json:"house_rule,omitempty" jsonschema:"overriding house rule"`
	Recommendation string       `json:"recommendation" jsonschema:"which rule governs"`
}

// EdgeCaseInput represents the MCP tool input for edge case resolution.
type EdgeCaseInput struct {
	Situation string `json:"situation" jsonschema:"description of the unusual situation"`
}

// RelatedRulePayload represents one rule related to an edge case.
type RelatedRulePayload struct {
	Scope   string      `json:"scope" jsonschema:"rule scope (core, house)"`
	Keyword string      `json:"keyword" jsonschema:"keyword that matched the rule"`
	Rule    RulePayload `json:"rule" jsonschema:"the related rule"`
}

// EdgeCaseResult represents the MCP tool output for edge case resolution.
type EdgeCaseResult struct {
	Situation  string               `json:"situation" jsonschema:"the described situation"`
	Related    []RelatedRulePayload `json:"related_rules" jsonschema:"rules matching extracted keywords"`
	Suggestion string               `json:"suggestion" jsonschema:"suggested ruling"`
	Note       string               `json:"note" jsonschema:"authority disclaimer"`
}

// RulingTrackInput represents the MCP tool input for recording a ruling.
type RulingTrackInput struct {
	SessionNumber int    `json:"session_number,omitempty" jsonschema:"session the ruling was made in"`
	Situation     string `json:"situation,omitempty" jsonschema:"the situation that was ruled on"`
	Ruling        string `json:"ruling" jsonschema:"the ruling text"`
}

// RulingPayload represents one persisted ruling.
type RulingPayload struct {
	ID            int64  `json:"id" jsonschema:"ruling identifier"`
	SessionNumber int    `json:"session_number" jsonschema:"session the ruling was made in"`
	Situation     string `json:"situation" jsonschema:"the situation that was ruled on"`
	Ruling        string `json:"ruling" jsonschema:"the ruling text"`
	RecordedAt    string `json:"recorded_at" jsonschema:"RFC3339 timestamp of recording"`
}

// RulingTrackResult represents the MCP tool output for recording a ruling.
type RulingTrackResult struct {
	Recorded RulingPayload   `json:"recorded" jsonschema:"the persisted ruling"`
	Recent   []RulingPayload `json:"recent,omitempty" jsonschema:"recent prior rulings for the campaign"`
	Note     string          `json:"note" jsonschema:"promotion hint"`
}

// DiceRollInput represents the MCP tool input for rolling dice.
type DiceRollInput struct {
	Expression   string `json:"dice_expression" jsonschema:"dice to roll, like 1d20+5 or 2d6"`
	Advantage    bool   `json:"advantage,omitempty" jsonschema:"roll twice and keep the higher total"`
	Disadvantage bool   `json:"disadvantage,omitempty" jsonschema:"roll twice and keep the lower total"`
	Description  string `json:"description,omitempty" jsonschema:"what the roll is for"`
	Seed         int64  `json:"seed,omitempty" jsonschema:"optional seed for a reproducible roll"`
}

// DiceRollPayload represents one evaluation of the dice expression.
type DiceRollPayload struct {
	Results []int `json:"results" jsonschema:"individual die results"`
	Total   int   `json:"total" jsonschema:"modifier-adjusted total"`
}

// DiceRollResult represents the MCP tool output for rolling dice.
type DiceRollResult struct {
	Expression  string            `json:"expression" jsonschema:"canonical parsed expression"`
	Mode        string            `json:"mode" jsonschema:"how the roll resolved (straight, advantage, disadvantage)"`
	Rolls       []DiceRollPayload `json:"rolls" jsonschema:"each evaluation of the expression"`
	Kept        int               `json:"kept" jsonschema:"index of the roll that produced the total"`
	Total       int               `json:"total" jsonschema:"final total"`
	Description string            `json:"description,omitempty" jsonschema:"what the roll was for"`
}
