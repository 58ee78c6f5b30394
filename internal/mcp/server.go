package mcp

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"aspects/internal/debug"
	"aspects/internal/game"
	"aspects/internal/game/aspect"
	"aspects/internal/game/combiner"
	"aspects/internal/game/director"
	"aspects/internal/observability"
)

const (
	serverName    = "aspects"
	serverVersion = "v1.0.0"

	// stepLength is the simulated frame each tool call advances.
	stepLength = 50 * time.Millisecond
)

// Server exposes one headless session over MCP. Tool calls are serialised
// because the session is single-writer.
type Server struct {
	mu          sync.Mutex
	session     *game.Session
	threshold   int
	debugLogger *debug.Logger
	mcpServer   *mcp.Server
}

// NewServer wraps session and steps it once so it leaves the loading state.
func NewServer(session *game.Session, threshold int, debugLogger *debug.Logger) *Server {
	s := &Server{
		session:     session,
		threshold:   threshold,
		debugLogger: debugLogger,
		mcpServer:   mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil),
	}
	session.Step(context.Background(), stepLength, game.Input{DialogueDone: true})

	mcp.AddTool(s.mcpServer, getStateTool(), s.handleGetState)
	mcp.AddTool(s.mcpServer, listRulesTool(), s.handleListRules)
	mcp.AddTool(s.mcpServer, selectSocketTool(), s.handleSelectSocket)
	mcp.AddTool(s.mcpServer, confirmCombinationTool(), s.handleConfirm)
	mcp.AddTool(s.mcpServer, hintTool(), s.handleHint)
	return s
}

// Run serves over stdin/stdout until ctx is done or the client hangs up.
func (s *Server) Run(ctx context.Context) error {
	return s.serve(ctx, &mcp.StdioTransport{})
}

func (s *Server) serve(ctx context.Context, transport mcp.Transport) error {
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

// act steps the session with a confirm on target. Any open dialogue is
// dismissed first since a tool caller cannot read it.
func (s *Server) act(ctx context.Context, tool string, target combiner.Target) (game.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx = observability.WithSessionID(ctx, s.session.ID())
	ctx, span := otel.Tracer("mcp").Start(ctx, "mcp."+tool)
	defer span.End()
	span.SetAttributes(attribute.String("target", target.String()))

	f := s.session.Step(ctx, stepLength, game.Input{DialogueDone: true, Confirm: true, Target: &target})
	if f.Err != nil {
		span.RecordError(f.Err)
		s.debugLogger.Printf("mcp %s on %s failed: %v", tool, target, f.Err)
		return f.Snapshot, f.Err
	}
	s.debugLogger.Printf("mcp %s on %s: %d events", tool, target, len(f.Events))
	return f.Snapshot, nil
}

func (s *Server) snapshot() game.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Snapshot()
}

func (s *Server) handleGetState(_ context.Context, _ *mcp.CallToolRequest, _ EmptyInput) (*mcp.CallToolResult, StateResult, error) {
	return nil, StateResult{Snapshot: s.snapshot()}, nil
}

func (s *Server) handleListRules(_ context.Context, _ *mcp.CallToolRequest, _ EmptyInput) (*mcp.CallToolResult, RulesResult, error) {
	var out RulesResult
	for _, r := range aspect.Rules() {
		out.Rules = append(out.Rules, Rule{
			Left:   r.Left.String(),
			Right:  r.Right.String(),
			Result: r.Result.String(),
			Weight: aspect.Weight(r.Result),
		})
	}
	return nil, out, nil
}

func (s *Server) handleSelectSocket(ctx context.Context, _ *mcp.CallToolRequest, in SelectSocketInput) (*mcp.CallToolResult, StateResult, error) {
	if in.SocketID == "" {
		return nil, StateResult{}, fmt.Errorf("socket_id is required")
	}
	if _, ok := s.snapshot().Socket(in.SocketID); !ok {
		return nil, StateResult{}, fmt.Errorf("unknown socket %q", in.SocketID)
	}
	snap, err := s.act(ctx, ToolSelectSocket, combiner.Socket(in.SocketID))
	if err != nil {
		return nil, StateResult{}, err
	}
	return nil, StateResult{Snapshot: snap}, nil
}

func (s *Server) handleConfirm(ctx context.Context, _ *mcp.CallToolRequest, _ EmptyInput) (*mcp.CallToolResult, StateResult, error) {
	snap, err := s.act(ctx, ToolConfirmCombination, combiner.Station())
	if err != nil {
		return nil, StateResult{}, err
	}
	return nil, StateResult{Snapshot: snap}, nil
}

func (s *Server) handleHint(_ context.Context, _ *mcp.CallToolRequest, _ EmptyInput) (*mcp.CallToolResult, HintResult, error) {
	step, ok := director.Next(s.snapshot(), s.threshold)
	if !ok {
		return nil, HintResult{}, nil
	}
	return nil, HintResult{
		Available:   true,
		LeftSocket:  step.LeftSocket,
		RightSocket: step.RightSocket,
		Left:        step.Left.String(),
		Right:       step.Right.String(),
		Result:      step.Result.String(),
	}, nil
}
