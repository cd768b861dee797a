package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/emmett/aivoice/internal/server/mcp"
	"github.com/emmett/aivoice/internal/session"
)

// MCPHandler handles MCP server operations
type MCPHandler struct {
	session   *session.Session
	version   string
	gitCommit string
	stderr    io.Writer
}

// NewMCPHandler creates a new MCP handler
func NewMCPHandler(sess *session.Session, version, gitCommit string) *MCPHandler {
	return &MCPHandler{
		session:   sess,
		version:   version,
		gitCommit: gitCommit,
		stderr:    os.Stderr,
	}
}

// clientConfig is the snippet MCP clients put in their server list.
type clientConfig struct {
	MCPServers map[string]serverEntry `json:"mcpServers"`
}

type serverEntry struct {
	Type    string   `json:"type,omitempty"`
	Command string   `json:"command"`
	Args    []string `json:"args"`
}

// PrintClientConfig writes the client configuration for this binary.
func (h *MCPHandler) PrintClientConfig(args []string) {
	execPath, err := os.Executable()
	if err != nil {
		execPath = "aivoice-mcp"
	}
	if args == nil {
		args = []string{}
	}

	cfg := clientConfig{MCPServers: map[string]serverEntry{
		"aivoice": {Command: execPath, Args: args},
	}}
	if data, err := json.MarshalIndent(cfg, "", "  "); err == nil {
		fmt.Fprintf(h.stderr, "MCP Client Configuration:\n%s\n\n", data)
	}

	if data, err := json.Marshal(serverEntry{Type: "stdio", Command: execPath, Args: args}); err == nil {
		fmt.Fprintf(h.stderr, "Add to Claude Code:\nclaude mcp add-json aivoice '%s'\n\n", data)
	}
}

// Run serves MCP on stdin/stdout until ctx is done or the client hangs up
func (h *MCPHandler) Run(ctx context.Context) error {
	fmt.Fprintf(h.stderr, "Starting MCP server (stdio transport)\n")
	fmt.Fprintf(h.stderr, "Version: %s (commit: %s)\n\n", h.version, h.gitCommit)

	server := mcp.NewServer(mcp.Config{
		ServerName:    "aivoice-mcp",
		ServerVersion: h.version,
	}, h.session)

	if err := server.Start(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
