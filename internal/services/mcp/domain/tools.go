package domain

import "github.com/modelcontextprotocol/go-sdk/mcp"

// CampaignListTool defines the MCP tool schema for listing campaigns.
func CampaignListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_campaigns",
		Description: "Lists the configured campaigns and which one is active",
	}
}

// CampaignSwitchTool defines the MCP tool schema for switching campaigns.
func CampaignSwitchTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "switch_campaign",
		Description: "Activates a campaign and rebuilds its knowledge index",
	}
}

// CampaignInfoTool defines the MCP tool schema for campaign info.
func CampaignInfoTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_campaign_info",
		Description: "Describes the active campaign and its index build",
	}
}

// CampaignRefreshTool defines the MCP tool schema for index refresh.
func CampaignRefreshTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "refresh_campaign",
		Description: "Rebuilds the active campaign's index from its documents",
	}
}

// LoreLookupTool defines the MCP tool schema for entity lookup.
func LoreLookupTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "lore_lookup",
		Description: "Looks an entity up by name or alias in the knowledge index",
	}
}

// ContextBuildTool defines the MCP tool schema for context building.
func ContextBuildTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "build_context",
		Description: "Selects a bounded, relevant slice of the index for a query",
	}
}

// ConsistencyCheckTool defines the MCP tool schema for consistency checks.
func ConsistencyCheckTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "check_consistency",
		Description: "Flags contradictions between new text and the indexed records",
	}
}

// RuleQueryTool defines the MCP tool schema for rule lookup.
func RuleQueryTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "query_rule",
		Description: "Looks a rule up in both core rules and campaign house rules",
	}
}

// HouseRulesTool defines the MCP tool schema for listing house rules.
func HouseRulesTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "check_house_rules",
		Description: "Lists the campaign's house rules, optionally by category",
	}
}

// RuleCompareTool defines the MCP tool schema for rule comparison.
func RuleCompareTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "compare_rules",
		Description: "Compares the core version of a rule against its campaign override",
	}
}

// EdgeCaseTool defines the MCP tool schema for edge case resolution.
func EdgeCaseTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "resolve_edge_case",
		Description: "Suggests a ruling for an unusual situation from related rules",
	}
}

// RulingTrackTool defines the MCP tool schema for recording rulings.
func RulingTrackTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "track_ruling",
		Description: "Records a table ruling so recurring cases can become house rules",
	}
}

// DiceRollTool defines the MCP tool schema for rolling dice.
func DiceRollTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "roll_dice",
		Description: "Rolls dice expressions like 1d20+5, with advantage or disadvantage",
	}
}
