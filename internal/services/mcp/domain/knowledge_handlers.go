package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/emberfall/lorekeeper/internal/knowledge"
	"github.com/emberfall/lorekeeper/internal/knowledge/consistency"
	"github.com/emberfall/lorekeeper/internal/knowledge/contextbuild"
	apperrors "github.com/emberfall/lorekeeper/internal/platform/errors"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// LoreLookupHandler looks an entity up by name or alias. A miss is reported
// in the result, not as an error.
func LoreLookupHandler(session *Session) mcp.ToolHandlerFor[LoreLookupInput, LoreLookupResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input LoreLookupInput) (*mcp.CallToolResult, LoreLookupResult, error) {
		if strings.TrimSpace(input.Name) == "" {
			return nil, LoreLookupResult{}, fmt.Errorf("name is required")
		}
		_, index, _ := session.Snapshot()
		if index == nil {
			return nil, LoreLookupResult{}, errNoIndex()
		}

		var (
			record knowledge.Record
			found  bool
		)
		if input.Type != "" {
			record, found = index.Get(knowledge.Type(input.Type), input.Name)
		} else {
			record, found = index.GetAny(input.Name)
		}
		if !found {
			return nil, LoreLookupResult{}, nil
		}
		payload := recordPayloadFrom(record)
		return nil, LoreLookupResult{Found: true, Record: &payload}, nil
	}
}

// ContextBuildHandler selects a bounded slice of the index for a query.
func ContextBuildHandler(session *Session) mcp.ToolHandlerFor[ContextBuildInput, ContextBuildResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ContextBuildInput) (*mcp.CallToolResult, ContextBuildResult, error) {
		_, index, _ := session.Snapshot()
		if index == nil {
			return nil, ContextBuildResult{}, errNoIndex()
		}

		domain := contextbuild.Domain(input.Domain)
		if input.Domain == "" {
			domain = contextbuild.DomainAll
		}
		bundle := contextbuild.Build(index, domain, input.Focus, input.MaxItems)

		result := ContextBuildResult{
			Domain:    string(bundle.Domain),
			Total:     bundle.Total,
			Truncated: bundle.Truncated,
		}
		for _, entry := range bundle.Entries {
			result.Entries = append(result.Entries, ContextEntryPayload{
				Match:  string(entry.Match),
				Record: recordPayloadFrom(entry.Record),
			})
		}
		return nil, result, nil
	}
}

// ConsistencyCheckHandler flags contradictions between new text and the
// indexed records.
func ConsistencyCheckHandler(session *Session) mcp.ToolHandlerFor[ConsistencyCheckInput, ConsistencyCheckResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ConsistencyCheckInput) (*mcp.CallToolResult, ConsistencyCheckResult, error) {
		if strings.TrimSpace(input.Text) == "" {
			return nil, ConsistencyCheckResult{}, fmt.Errorf("text is required")
		}
		_, index, _ := session.Snapshot()

		domain := contextbuild.Domain(input.Domain)
		if input.Domain == "" {
			domain = contextbuild.DomainAll
		}
		findings, err := consistency.Check(index, domain, input.Text)
		if err != nil {
			return nil, ConsistencyCheckResult{}, err
		}

		var result ConsistencyCheckResult
		for _, finding := range findings {
			result.Findings = append(result.Findings, findingPayloadFrom(finding))
		}
		return nil, result, nil
	}
}

func errNoIndex() error {
	return apperrors.New(apperrors.CodeIndexMissing, "no campaign active; switch to one first")
}
