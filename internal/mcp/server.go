// Package mcp exposes the creative loop over the Model Context Protocol
// via stdio, so agent clients can log inputs and read progress directly.
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/dsgnrg/looptrack/internal/config"
	"github.com/dsgnrg/looptrack/internal/store"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"loop_log_sketch": {
		def:     logSketchToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleLogSketch },
	},
	"loop_log_moodboard": {
		def:     logMoodboardToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleLogMoodboard },
	},
	"loop_log_lore": {
		def:     logLoreToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleLogLore },
	},
	"loop_log_process": {
		def:     logProcessToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleLogProcess },
	},
	"loop_log_output": {
		def:     logOutputToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleLogOutput },
	},
	"loop_update_plugin": {
		def:     updatePluginToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleUpdatePlugin },
	},
	"loop_list_plugins": {
		def:     listPluginsToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleListPlugins },
	},
	"loop_daily_status": {
		def:     dailyStatusToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleDailyStatus },
	},
	"loop_weekly_progress": {
		def:     weeklyProgressToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleWeeklyProgress },
	},
	"loop_monthly_progress": {
		def:     monthlyProgressToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleMonthlyProgress },
	},
	"loop_stats": {
		def:     statsToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleStats },
	},
	"loop_report": {
		def:     reportToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleReport },
	},
}

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the
// given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates a new MCP server with the loop tools registered.
// Tools listed in cfg.DisabledTools are excluded from registration.
func NewServer(s *store.Store, cfg *config.Config, version string) *server.MCPServer {
	srv := server.NewMCPServer(
		"looptrack",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(s, cfg)

	disabled := make(map[string]bool, len(cfg.DisabledTools))
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}

	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		srv.AddTool(entry.def, entry.handler(h))
	}

	return srv
}

// Run starts the MCP server using stdio transport.
func Run(s *store.Store, cfg *config.Config, version string) error {
	return server.ServeStdio(NewServer(s, cfg, version))
}
