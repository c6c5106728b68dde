package service

import (
	"github.com/emberfall/lorekeeper/internal/services/mcp/domain"
	"github.com/emberfall/lorekeeper/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// registerTools binds every tool handler to the MCP server. Input and
// output schemas are inferred from the handler types.
func registerTools(server *mcp.Server, session *domain.Session, rulings storage.RulingStore) {
	mcp.AddTool(server, domain.CampaignListTool(), domain.CampaignListHandler(session))
	mcp.AddTool(server, domain.CampaignSwitchTool(), domain.CampaignSwitchHandler(session))
	mcp.AddTool(server, domain.CampaignInfoTool(), domain.CampaignInfoHandler(session))
	mcp.AddTool(server, domain.CampaignRefreshTool(), domain.CampaignRefreshHandler(session))

	mcp.AddTool(server, domain.LoreLookupTool(), domain.LoreLookupHandler(session))
	mcp.AddTool(server, domain.ContextBuildTool(), domain.ContextBuildHandler(session))
	mcp.AddTool(server, domain.ConsistencyCheckTool(), domain.ConsistencyCheckHandler(session))

	mcp.AddTool(server, domain.RuleQueryTool(), domain.RuleQueryHandler(session))
	mcp.AddTool(server, domain.HouseRulesTool(), domain.HouseRulesHandler(session))
	mcp.AddTool(server, domain.RuleCompareTool(), domain.RuleCompareHandler(session))
	mcp.AddTool(server, domain.EdgeCaseTool(), domain.EdgeCaseHandler(session))

	mcp.AddTool(server, domain.RulingTrackTool(), domain.RulingTrackHandler(session, rulings))
	mcp.AddTool(server, domain.DiceRollTool(), domain.DiceRollHandler(seedFromClock))
}
