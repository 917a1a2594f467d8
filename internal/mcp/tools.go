package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Kartagia/diceodel/internal/dice"
	"github.com/Kartagia/diceodel/internal/random"
	"github.com/Kartagia/diceodel/internal/services/roller/domain"
	"github.com/Kartagia/diceodel/internal/services/roller/service"
)

// RollDiceInput represents the MCP tool input for rolling a dice pool.
type RollDiceInput struct {
	Sides int   `json:"sides" jsonschema:"number of sides per die"`
	Count int   `json:"count" jsonschema:"number of dice to roll"`
	Seed  int64 `json:"seed,omitempty" jsonschema:"seed to replay a roll; omit to draw a random seed"`
}

// RollDiceResult represents the MCP tool output for rolling a dice pool.
type RollDiceResult struct {
	Results []int `json:"results" jsonschema:"individual die results in roll order"`
	Total   int   `json:"total" jsonschema:"sum of all die results"`
	Seed    int64 `json:"seed" jsonschema:"seed the pool was rolled with; pass it back to replay the roll"`
}

// RollDiceTool defines the MCP tool schema for rolling a dice pool.
func RollDiceTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "roll_dice",
		Description: "Rolls a pool of dice. Replayable via the returned seed.",
	}
}

// RollDiceHandler executes a dice roll request. An absent seed is resolved
// to a fresh random one so repeated calls vary.
func RollDiceHandler() mcp.ToolHandlerFor[RollDiceInput, RollDiceResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RollDiceInput) (*mcp.CallToolResult, RollDiceResult, error) {
		seed, err := random.Resolve(input.Seed)
		if err != nil {
			return nil, RollDiceResult{}, fmt.Errorf("roll dice failed: %w", err)
		}

		result, err := dice.RollDice(dice.Request{
			Dice: []dice.Spec{{Sides: input.Sides, Count: input.Count}},
			Seed: seed,
		})
		if err != nil {
			return nil, RollDiceResult{}, fmt.Errorf("roll dice failed: %w", err)
		}
		return nil, RollDiceResult{
			Results: result.Values(),
			Total:   result.Total,
			Seed:    seed,
		}, nil
	}
}

// RollKeepInput represents the MCP tool input for a roll-and-keep
// evaluation.
type RollKeepInput struct {
	Sides  int    `json:"sides" jsonschema:"number of sides per die"`
	Count  int    `json:"count" jsonschema:"number of dice to roll"`
	Policy string `json:"policy" jsonschema:"keep policy: best, worst, or last"`
	Keep   int    `json:"keep" jsonschema:"number of values to keep"`
	Seed   int64  `json:"seed,omitempty" jsonschema:"seed to replay a roll; omit to draw a random seed"`
}

// RollKeepResult represents the MCP tool output for a roll-and-keep
// evaluation.
type RollKeepResult struct {
	ID     string `json:"id,omitempty" jsonschema:"history record identifier, empty when history is disabled"`
	Rolled []int  `json:"rolled" jsonschema:"full rolled pool in roll order"`
	Kept   []int  `json:"kept" jsonschema:"kept values in policy order"`
	Seed   int64  `json:"seed" jsonschema:"seed the pool was rolled with; pass it back to replay the roll"`
}

// RollKeepTool defines the MCP tool schema for roll-and-keep.
func RollKeepTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "roll_keep",
		Description: "Rolls a pool of dice and keeps a subsequence under a policy (best, worst, or last).",
	}
}

// RollKeepHandler executes a roll-and-keep request against the roller
// service. An absent seed is resolved to a fresh random one, and the
// resolved seed is echoed and persisted so the roll stays replayable.
func RollKeepHandler(svc *service.Service) mcp.ToolHandlerFor[RollKeepInput, RollKeepResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RollKeepInput) (*mcp.CallToolResult, RollKeepResult, error) {
		policy, err := domain.ParseKeepPolicy(input.Policy)
		if err != nil {
			return nil, RollKeepResult{}, fmt.Errorf("roll keep failed: %w", err)
		}

		seed, err := random.Resolve(input.Seed)
		if err != nil {
			return nil, RollKeepResult{}, fmt.Errorf("roll keep failed: %w", err)
		}

		record, err := svc.RollAndKeep(ctx, domain.KeepRequest{
			Sides:  input.Sides,
			Count:  input.Count,
			Policy: policy,
			Keep:   input.Keep,
			Seed:   seed,
		})
		if err != nil {
			return nil, RollKeepResult{}, fmt.Errorf("roll keep failed: %w", err)
		}
		return nil, RollKeepResult{
			ID:     record.ID,
			Rolled: record.Rolled,
			Kept:   record.Kept,
			Seed:   record.Seed,
		}, nil
	}
}

// RollHistoryInput represents the MCP tool input for listing roll history.
type RollHistoryInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of records to return"`
}

// KeptRollSummary is one persisted roll-and-keep record.
type KeptRollSummary struct {
	ID        string `json:"id" jsonschema:"history record identifier"`
	Policy    string `json:"policy" jsonschema:"keep policy used"`
	Rolled    []int  `json:"rolled" jsonschema:"full rolled pool"`
	Kept      []int  `json:"kept" jsonschema:"kept values"`
	CreatedAt string `json:"created_at" jsonschema:"RFC3339 timestamp of the evaluation"`
}

// RollHistoryResult represents the MCP tool output for listing roll history.
type RollHistoryResult struct {
	Rolls []KeptRollSummary `json:"rolls" jsonschema:"persisted roll-and-keep records, newest first"`
}

// RollHistoryTool defines the MCP tool schema for listing roll history.
func RollHistoryTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "roll_history",
		Description: "Lists persisted roll-and-keep evaluations, newest first.",
	}
}

// RollHistoryHandler lists persisted roll-and-keep records.
func RollHistoryHandler(svc *service.Service) mcp.ToolHandlerFor[RollHistoryInput, RollHistoryResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RollHistoryInput) (*mcp.CallToolResult, RollHistoryResult, error) {
		rolls, err := svc.History(ctx, input.Limit)
		if err != nil {
			return nil, RollHistoryResult{}, fmt.Errorf("roll history failed: %w", err)
		}

		summaries := make([]KeptRollSummary, 0, len(rolls))
		for _, roll := range rolls {
			summaries = append(summaries, KeptRollSummary{
				ID:        roll.ID,
				Policy:    roll.Policy,
				Rolled:    roll.Rolled,
				Kept:      roll.Kept,
				CreatedAt: roll.CreatedAt.UTC().Format(time.RFC3339),
			})
		}
		return nil, RollHistoryResult{Rolls: summaries}, nil
	}
}
