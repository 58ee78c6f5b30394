package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"aspects/internal/game"
)

const (
	ToolGetState           = "get_state"
	ToolListRules          = "list_rules"
	ToolSelectSocket       = "select_socket"
	ToolConfirmCombination = "confirm_combination"
	ToolHint               = "hint"
)

// EmptyInput is the argument object for tools that take none.
type EmptyInput struct{}

// SelectSocketInput toggles one socket in or out of the combiner.
type SelectSocketInput struct {
	SocketID string `json:"socket_id" jsonschema:"socket identifier, for example top-1"`
}

// StateResult wraps the garden snapshot returned by every tool that acts.
type StateResult struct {
	Snapshot game.Snapshot `json:"snapshot" jsonschema:"garden state after the call"`
}

// Rule is one combination rule as seen over MCP.
type Rule struct {
	Left   string `json:"left" jsonschema:"first aspect"`
	Right  string `json:"right" jsonschema:"second aspect"`
	Result string `json:"result" jsonschema:"aspect the pair discovers"`
	Weight int    `json:"weight" jsonschema:"emotional weight of the result"`
}

type RulesResult struct {
	Rules []Rule `json:"rules" jsonschema:"every combination rule in authoring order"`
}

// HintResult is the next suggested combination. Available is false once
// nothing can be combined.
type HintResult struct {
	Available   bool   `json:"available" jsonschema:"whether a combination is possible"`
	LeftSocket  string `json:"left_socket,omitempty" jsonschema:"top socket to select"`
	RightSocket string `json:"right_socket,omitempty" jsonschema:"bottom socket to select"`
	Left        string `json:"left,omitempty" jsonschema:"aspect in the top socket"`
	Right       string `json:"right,omitempty" jsonschema:"aspect in the bottom socket"`
	Result      string `json:"result,omitempty" jsonschema:"aspect the combination discovers"`
}

func getStateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        ToolGetState,
		Description: "Returns the garden: sockets, staged aspects, preview, game state and ending once reached.",
	}
}

func listRulesTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        ToolListRules,
		Description: "Lists every aspect combination rule. Operand order does not matter.",
	}
}

func selectSocketTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        ToolSelectSocket,
		Description: "Stages the aspect in a socket on its side of the combiner, or unstages it if it is already staged.",
	}
}

func confirmCombinationTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        ToolConfirmCombination,
		Description: "Combines the two staged aspects. Fails when the pair has no rule or its result is already in the garden.",
	}
}

func hintTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        ToolHint,
		Description: "Suggests the next pair of sockets to combine, steering toward a balanced garden.",
	}
}
