package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/emberfall/lorekeeper/internal/arbiter"
	"github.com/emberfall/lorekeeper/internal/knowledge"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RuleQueryHandler looks a rule up across core and house scope.
func RuleQueryHandler(session *Session) mcp.ToolHandlerFor[RuleQueryInput, RuleQueryResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RuleQueryInput) (*mcp.CallToolResult, RuleQueryResult, error) {
		if strings.TrimSpace(input.RuleName) == "" {
			return nil, RuleQueryResult{}, fmt.Errorf("rule_name is required")
		}
		_, index, _ := session.Snapshot()

		answer, err := arbiter.QueryRule(index, input.RuleName)
		if err != nil {
			return nil, RuleQueryResult{}, err
		}
		return nil, RuleQueryResult{
			RuleName:       answer.RuleName,
			Core:           optionalRulePayload(answer.Core),
			House:          optionalRulePayload(answer.House),
			Recommendation: answer.Recommendation,
			Sources:        answer.Sources,
		}, nil
	}
}

// HouseRulesHandler lists the campaign's house rules.
func HouseRulesHandler(session *Session) mcp.ToolHandlerFor[HouseRulesInput, HouseRulesResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input HouseRulesInput) (*mcp.CallToolResult, HouseRulesResult, error) {
		_, index, _ := session.Snapshot()

		houseRules, err := arbiter.CheckHouseRules(index, input.Category)
		if err != nil {
			return nil, HouseRulesResult{}, err
		}
		result := HouseRulesResult{
			Campaign:   houseRules.Campaign,
			Category:   houseRules.Category,
			Categories: houseRules.Categories,
		}
		for _, rule := range houseRules.Rules {
			result.Rules = append(result.Rules, rulePayloadFrom(rule))
		}
		return nil, result, nil
	}
}

// RuleCompareHandler compares a core rule against its campaign override.
func RuleCompareHandler(session *Session) mcp.ToolHandlerFor[RuleCompareInput, RuleCompareResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RuleCompareInput) (*mcp.CallToolResult, RuleCompareResult, error) {
		if strings.TrimSpace(input.RuleName) == "" {
			return nil, RuleCompareResult{}, fmt.Errorf("rule_name is required")
		}
		_, index, _ := session.Snapshot()

		comparison, err := arbiter.CompareRules(index, input.RuleName)
		if err != nil {
			return nil, RuleCompareResult{}, err
		}
		return nil, RuleCompareResult{
			RuleName:       comparison.RuleName,
			CoreDefined:    comparison.CoreDefined,
			HouseOverride:  comparison.HouseOverride,
			Core:           optionalRulePayload(comparison.Core),
			House:          optionalRulePayload(comparison.House),
			Recommendation: comparison.Recommendation,
		}, nil
	}
}

// EdgeCaseHandler suggests a ruling for an unusual situation.
func EdgeCaseHandler(session *Session) mcp.ToolHandlerFor[EdgeCaseInput, EdgeCaseResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input EdgeCaseInput) (*mcp.CallToolResult, EdgeCaseResult, error) {
		if strings.TrimSpace(input.Situation) == "" {
			return nil, EdgeCaseResult{}, fmt.Errorf("situation is required")
		}
		_, index, _ := session.Snapshot()

		ruling, err := arbiter.ResolveEdgeCase(index, input.Situation)
		if err != nil {
			return nil, EdgeCaseResult{}, err
		}
		result := EdgeCaseResult{
			Situation:  ruling.Situation,
			Suggestion: ruling.Suggestion,
			Note:       ruling.Note,
		}
		for _, related := range ruling.Related {
			result.Related = append(result.Related, RelatedRulePayload{
				Scope:   string(related.Scope),
				Keyword: related.Keyword,
				Rule:    rulePayloadFrom(related.Record),
			})
		}
		return nil, result, nil
	}
}

func optionalRulePayload(record *knowledge.Record) *RulePayload {
	if record == nil {
		return nil
	}
	payload := rulePayloadFrom(*record)
	return &payload
}
