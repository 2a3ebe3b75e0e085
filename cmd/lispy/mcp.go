package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	lispy "github.com/masahitojp/lispy3"
	"github.com/masahitojp/lispy3/internal/transcript"
)

// mcpTools serves one interpreter to MCP clients. The interpreter serializes
// evaluations, so tool calls arriving on different goroutines are safe.
type mcpTools struct {
	ip      *lispy.Interpreter
	store   *transcript.Store
	timeout time.Duration
}

func (t *mcpTools) handleEval(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	expr, err := request.RequireString("expr")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var out []string
	err = evalTopLevel(ctx, t.ip, expr, t.timeout, func(x, v lispy.Value) {
		record(ctx, t.store, lispy.Print(x), v, nil)
		if !v.IsVoid() {
			out = append(out, lispy.Print(v))
		}
	})
	if err != nil {
		record(ctx, t.store, strings.TrimSpace(expr), lispy.Void, err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(out) == 0 {
		return mcp.NewToolResultText("ok"), nil
	}
	return mcp.NewToolResultText(strings.Join(out, "\n")), nil
}

func (t *mcpTools) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.ip.Reset()
	log.Printf("global environment reset")
	return mcp.NewToolResultText("global environment reset"), nil
}

func (t *mcpTools) handleGlobals(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prefix := request.GetString("prefix", "")
	var names []string
	for _, n := range t.ip.Names() {
		if strings.HasPrefix(n, prefix) {
			names = append(names, n)
		}
	}
	return mcp.NewToolResultText(strings.Join(names, "\n")), nil
}

func (t *mcpTools) handleHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := request.GetInt("limit", 20)
	entries, err := t.store.Recent(ctx, limit)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "> %s\n", e.Input)
		if e.Kind == transcript.KindError {
			fmt.Fprintf(&b, "! %s\n", e.Output)
		} else {
			fmt.Fprintf(&b, "%s\n", e.Output)
		}
	}
	return mcp.NewToolResultText(b.String()), nil
}

func newMCPServer(t *mcpTools) *server.MCPServer {
	s := server.NewMCPServer(
		appName,
		lispy.Version,
		server.WithToolCapabilities(false),
	)

	s.AddTool(
		mcp.NewTool("lispy_eval",
			mcp.WithDescription("Evaluate Lisp source in the persistent global environment. Returns the printed value of each top-level expression that has one."),
			mcp.WithString("expr",
				mcp.Required(),
				mcp.Description("Source text, e.g. (define sq (lambda (x) (* x x))) (sq 7)"),
			),
		),
		t.handleEval,
	)

	s.AddTool(
		mcp.NewTool("lispy_reset",
			mcp.WithDescription("Discard every definition and start from a fresh global environment."),
		),
		t.handleReset,
	)

	s.AddTool(
		mcp.NewTool("lispy_globals",
			mcp.WithDescription("List the names bound in the global environment."),
			mcp.WithString("prefix",
				mcp.Description("Only list names starting with this prefix"),
			),
		),
		t.handleGlobals,
	)

	s.AddTool(
		mcp.NewTool("lispy_history",
			mcp.WithDescription("Show the most recent evaluations of this session, oldest first."),
			mcp.WithNumber("limit",
				mcp.Description("Maximum number of entries (default 20, 0 for all)"),
			),
		),
		t.handleHistory,
	)

	return s
}

func cmdMCP(args []string) int {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg := bindFlags(fs, 5*time.Second)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	// lispy_history always has a transcript to read from.
	if cfg.transcript == "" {
		cfg.transcript = ":memory:"
	}
	store, err := cfg.openTranscript()
	if err != nil {
		log.Printf("%v", err)
		return 1
	}
	defer store.Close()

	tools := &mcpTools{ip: cfg.interpreter(), store: store, timeout: cfg.timeout}
	log.Printf("serving %s %s on stdio (timeout %s)", appName, lispy.Version, cfg.timeout)
	if err := server.ServeStdio(newMCPServer(tools)); err != nil {
		log.Printf("server error: %v", err)
		return 1
	}
	return 0
}
