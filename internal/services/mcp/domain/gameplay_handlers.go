package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/emberfall/lorekeeper/internal/platform/errors"
	"github.com/emberfall/lorekeeper/internal/server/dice"
	"github.com/emberfall/lorekeeper/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const recentRulings = 5

// RulingTrackHandler records a table ruling against the active campaign.
func RulingTrackHandler(session *Session, store storage.RulingStore) mcp.ToolHandlerFor[RulingTrackInput, RulingTrackResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RulingTrackInput) (*mcp.CallToolResult, RulingTrackResult, error) {
		if strings.TrimSpace(input.Ruling) == "" {
			return nil, RulingTrackResult{}, fmt.Errorf("ruling is required")
		}
		if store == nil {
			return nil, RulingTrackResult{}, apperrors.New(apperrors.CodeStorageUnavailable,
				"ruling storage is not configured")
		}
		active, _, _ := session.Snapshot()
		if active.ID == "" {
			return nil, RulingTrackResult{}, errNoIndex()
		}

		recorded, err := store.PutRuling(ctx, storage.RulingRecord{
			CampaignID: active.ID,
			Session:    input.SessionNumber,
			Situation:  input.Situation,
			Ruling:     input.Ruling,
		})
		if err != nil {
			return nil, RulingTrackResult{}, apperrors.Wrap(apperrors.CodeStorageUnavailable,
				"record ruling", err)
		}

		result := RulingTrackResult{
			Recorded: rulingPayloadFrom(recorded),
			Note:     "ruling recorded; consider promoting recurring rulings to house rules",
		}
		prior, err := store.ListRulings(ctx, active.ID, recentRulings+1)
		if err != nil {
			return nil, RulingTrackResult{}, apperrors.Wrap(apperrors.CodeStorageUnavailable,
				"list rulings", err)
		}
		for _, record := range prior {
			if record.ID == recorded.ID {
				continue
			}
			result.Recent = append(result.Recent, rulingPayloadFrom(record))
		}
		return nil, result, nil
	}
}

// DiceRollHandler rolls a dice expression. The seed function supplies
// entropy when the caller does not pin a seed.
func DiceRollHandler(seed func() int64) mcp.ToolHandlerFor[DiceRollInput, DiceRollResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DiceRollInput) (*mcp.CallToolResult, DiceRollResult, error) {
		request := dice.Request{
			Expression:   input.Expression,
			Advantage:    input.Advantage,
			Disadvantage: input.Disadvantage,
			Seed:         input.Seed,
		}
		if request.Seed == 0 {
			request.Seed = seed()
		}

		result, err := dice.RollDice(request)
		if err != nil {
			if errors.Is(err, dice.ErrInvalidExpression) || errors.Is(err, dice.ErrDiceLimit) {
				return nil, DiceRollResult{}, apperrors.Wrap(apperrors.CodeDiceInvalidExpression,
					fmt.Sprintf("roll %q", input.Expression), err)
			}
			return nil, DiceRollResult{}, err
		}

		payload := DiceRollResult{
			Expression:  result.Expression.String(),
			Mode:        string(result.Mode),
			Kept:        result.Kept,
			Total:       result.Total,
			Description: input.Description,
		}
		for _, roll := range result.Rolls {
			payload.Rolls = append(payload.Rolls, DiceRollPayload{Results: roll.Results, Total: roll.Total})
		}
		return nil, payload, nil
	}
}
