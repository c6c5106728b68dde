package domain

import (
	"context"
	"time"

	"github.com/emberfall/lorekeeper/internal/campaign"
	"github.com/emberfall/lorekeeper/internal/engine"
	apperrors "github.com/emberfall/lorekeeper/internal/platform/errors"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// CampaignListHandler lists every configured campaign.
func CampaignListHandler(session *Session) mcp.ToolHandlerFor[CampaignListInput, CampaignListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ CampaignListInput) (*mcp.CallToolResult, CampaignListResult, error) {
		active, _, _ := session.Snapshot()

		var result CampaignListResult
		for _, entry := range session.Registry().List() {
			result.Campaigns = append(result.Campaigns, CampaignListEntry{
				ID:          entry.ID,
				Name:        entry.Name,
				Description: entry.Description,
				Layout:      string(entry.Layout),
				Active:      entry.ID == active.ID,
			})
		}
		return nil, result, nil
	}
}

// CampaignSwitchHandler activates a campaign and rebuilds its index.
func CampaignSwitchHandler(session *Session) mcp.ToolHandlerFor[CampaignSwitchInput, CampaignInfoResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CampaignSwitchInput) (*mcp.CallToolResult, CampaignInfoResult, error) {
		resolved, report, err := session.Activate(ctx, input.CampaignID)
		if err != nil {
			return nil, CampaignInfoResult{}, err
		}
		return nil, campaignInfoResultFrom(resolved, report), nil
	}
}

// CampaignInfoHandler describes the active campaign and its index build.
func CampaignInfoHandler(session *Session) mcp.ToolHandlerFor[CampaignInfoInput, CampaignInfoResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ CampaignInfoInput) (*mcp.CallToolResult, CampaignInfoResult, error) {
		active, index, report := session.Snapshot()
		if index == nil {
			return nil, CampaignInfoResult{}, apperrors.New(apperrors.CodeIndexMissing,
				"no campaign active; switch to one first")
		}
		return nil, campaignInfoResultFrom(active, report), nil
	}
}

// CampaignRefreshHandler rebuilds the active campaign's index wholesale.
func CampaignRefreshHandler(session *Session) mcp.ToolHandlerFor[CampaignRefreshInput, CampaignInfoResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ CampaignRefreshInput) (*mcp.CallToolResult, CampaignInfoResult, error) {
		resolved, report, err := session.Refresh(ctx)
		if err != nil {
			return nil, CampaignInfoResult{}, err
		}
		return nil, campaignInfoResultFrom(resolved, report), nil
	}
}

func campaignInfoResultFrom(resolved campaign.Campaign, report engine.BuildReport) CampaignInfoResult {
	return CampaignInfoResult{
		ID:          resolved.ID,
		Name:        resolved.Name,
		Description: resolved.Description,
		Layout:      string(resolved.Layout),
		Documents:   report.Documents,
		Records:     report.Records,
		Missing:     report.Missing,
		Warnings:    len(report.Warnings) + len(report.FileErrors),
		Partial:     report.Partial(),
		BuiltAt:     report.BuiltAt.Format(time.RFC3339),
	}
}
