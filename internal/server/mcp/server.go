// Package mcp exposes the A.I.VOICE Editor as Model Context Protocol tools.
package mcp

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/emmett/aivoice/internal/logging"
	"github.com/emmett/aivoice/internal/session"
)

type Config struct {
	ServerName    string
	ServerVersion string
}

type Server struct {
	config    Config
	mcpServer *sdk.Server
	session   *session.Session
	log       *logrus.Entry
}

// NewServer creates an MCP server driving the host through sess.
func NewServer(cfg Config, sess *session.Session) *Server {
	s := &Server{
		config:  cfg,
		session: sess,
		log:     logging.Component("mcp"),
	}

	s.mcpServer = sdk.NewServer(&sdk.Implementation{
		Name:    cfg.ServerName,
		Version: cfg.ServerVersion,
	}, nil)

	s.registerTools()

	return s
}

// Start serves on stdin/stdout until ctx is done or the client hangs up.
func (s *Server) Start(ctx context.Context) error {
	return s.Run(ctx, &sdk.StdioTransport{})
}

// Run serves on the given transport.
func (s *Server) Run(ctx context.Context, t sdk.Transport) error {
	return s.mcpServer.Run(ctx, t)
}

// MCPServer returns the underlying SDK server.
func (s *Server) MCPServer() *sdk.Server {
	return s.mcpServer
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcpServer, &sdk.Tool{
		Name:        "get_status",
		Description: "Report the A.I.VOICE Editor host status, version, current preset and input mode",
	}, s.handleGetStatus)

	sdk.AddTool(s.mcpServer, &sdk.Tool{
		Name:        "list_voices",
		Description: "List the voice names installed in the editor",
	}, s.handleListVoices)

	sdk.AddTool(s.mcpServer, &sdk.Tool{
		Name:        "list_presets",
		Description: "List the voice preset names; the current preset is marked with *",
	}, s.handleListPresets)

	sdk.AddTool(s.mcpServer, &sdk.Tool{
		Name:        "get_preset",
		Description: "Return a voice preset as JSON",
	}, s.handleGetPreset)

	sdk.AddTool(s.mcpServer, &sdk.Tool{
		Name:        "set_preset",
		Description: "Overwrite an existing voice preset from JSON",
	}, s.handleSetPreset)

	sdk.AddTool(s.mcpServer, &sdk.Tool{
		Name:        "add_preset",
		Description: "Create a new voice preset from JSON",
	}, s.handleAddPreset)

	sdk.AddTool(s.mcpServer, &sdk.Tool{
		Name:        "set_text",
		Description: "Replace the text of the text-mode editor",
	}, s.handleSetText)

	sdk.AddTool(s.mcpServer, &sdk.Tool{
		Name:        "speak",
		Description: "Speak text through the editor, optionally with a preset, optionally waiting for playback to end",
	}, s.handleSpeak)

	sdk.AddTool(s.mcpServer, &sdk.Tool{
		Name:        "stop",
		Description: "Stop playback",
	}, s.handleStop)

	sdk.AddTool(s.mcpServer, &sdk.Tool{
		Name:        "save_audio",
		Description: "Synthesize text and save the audio to a file on the editor's machine",
	}, s.handleSaveAudio)

	sdk.AddTool(s.mcpServer, &sdk.Tool{
		Name:        "get_play_time",
		Description: "Return the playback length of the current text in milliseconds",
	}, s.handleGetPlayTime)

	sdk.AddTool(s.mcpServer, &sdk.Tool{
		Name:        "reload_dictionaries",
		Description: "Reload phrase, symbol and word dictionaries and voice presets from disk",
	}, s.handleReload)
}
