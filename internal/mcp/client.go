package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"aspects/internal/debug"
	"aspects/internal/game"
)

// GardenClient talks to an aspects MCP server.
type GardenClient struct {
	client      *mcp.Client
	session     *mcp.ClientSession
	debugLogger *debug.Logger
}

func NewGardenClient(debugLogger *debug.Logger) *GardenClient {
	client := mcp.NewClient(&mcp.Implementation{
		Name:    "aspects-client",
		Version: serverVersion,
	}, nil)

	return &GardenClient{client: client, debugLogger: debugLogger}
}

// Connect opens a session over transport.
func (c *GardenClient) Connect(ctx context.Context, transport mcp.Transport) error {
	session, err := c.client.Connect(ctx, transport, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to MCP server: %w", err)
	}
	c.session = session
	c.debugLogger.Println("Connected to MCP garden server")
	return nil
}

// ConnectCommand starts cmd and speaks MCP over its stdin and stdout.
func (c *GardenClient) ConnectCommand(ctx context.Context, cmd *exec.Cmd) error {
	return c.Connect(ctx, &mcp.CommandTransport{Command: cmd})
}

func (c *GardenClient) Close() error {
	if c.session == nil {
		return nil
	}
	return c.session.Close()
}

func (c *GardenClient) call(ctx context.Context, name string, args any, out any) error {
	if c.session == nil {
		return errors.New("MCP client is not connected")
	}

	result, err := c.session.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		return fmt.Errorf("failed to call %s: %w", name, err)
	}
	if result.IsError {
		return errors.New(resultText(result))
	}

	raw, err := json.Marshal(result.StructuredContent)
	if err != nil {
		return fmt.Errorf("failed to read %s result: %w", name, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to parse %s result: %w", name, err)
	}
	return nil
}

func resultText(result *mcp.CallToolResult) string {
	var parts []string
	for _, content := range result.Content {
		if text, ok := content.(*mcp.TextContent); ok {
			parts = append(parts, text.Text)
		}
	}
	if len(parts) == 0 {
		return "tool call failed"
	}
	return strings.Join(parts, "\n")
}

func (c *GardenClient) GetState(ctx context.Context) (game.Snapshot, error) {
	var out StateResult
	if err := c.call(ctx, ToolGetState, map[string]any{}, &out); err != nil {
		return game.Snapshot{}, err
	}
	c.debugLogger.Printf("Retrieved garden state: %d empty sockets", out.Snapshot.EmptySockets())
	return out.Snapshot, nil
}

func (c *GardenClient) ListRules(ctx context.Context) ([]Rule, error) {
	var out RulesResult
	if err := c.call(ctx, ToolListRules, map[string]any{}, &out); err != nil {
		return nil, err
	}
	return out.Rules, nil
}

func (c *GardenClient) SelectSocket(ctx context.Context, socketID string) (game.Snapshot, error) {
	var out StateResult
	if err := c.call(ctx, ToolSelectSocket, SelectSocketInput{SocketID: socketID}, &out); err != nil {
		return game.Snapshot{}, err
	}
	c.debugLogger.Printf("Select %s: left=%q right=%q", socketID, out.Snapshot.Left, out.Snapshot.Right)
	return out.Snapshot, nil
}

func (c *GardenClient) Confirm(ctx context.Context) (game.Snapshot, error) {
	var out StateResult
	if err := c.call(ctx, ToolConfirmCombination, map[string]any{}, &out); err != nil {
		return game.Snapshot{}, err
	}
	c.debugLogger.Printf("Combined %s", out.Snapshot.LastCombined)
	return out.Snapshot, nil
}

func (c *GardenClient) Hint(ctx context.Context) (HintResult, error) {
	var out HintResult
	err := c.call(ctx, ToolHint, map[string]any{}, &out)
	return out, err
}

// ListTools describes the server's tools, one per line.
func (c *GardenClient) ListTools(ctx context.Context) (string, error) {
	if c.session == nil {
		return "", errors.New("MCP client is not connected")
	}
	result, err := c.session.ListTools(ctx, &mcp.ListToolsParams{})
	if err != nil {
		return "", fmt.Errorf("failed to list tools: %w", err)
	}

	descriptions := make([]string, 0, len(result.Tools))
	for _, tool := range result.Tools {
		descriptions = append(descriptions, fmt.Sprintf("- %s: %s", tool.Name, tool.Description))
	}
	return strings.Join(descriptions, "\n"), nil
}
