package lsp

import (
	"fmt"

	"github.com/jsvensson/huescan/internal/history"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const (
	CommandClearHistory = "huescan.clearHistory"
	CommandListHistory  = "huescan.listHistory"
	CommandReloadConfig = "huescan.reloadConfig"
	CommandToggle       = "huescan.toggle"
)

var commands = []string{CommandClearHistory, CommandListHistory, CommandReloadConfig, CommandToggle}

func (s *Server) workspaceExecuteCommand(_ *glsp.Context, params *protocol.ExecuteCommandParams) (any, error) {
	switch params.Command {
	case CommandClearHistory:
		h := s.historyManager()
		if h == nil {
			return nil, nil
		}
		if err := h.Clear(); err != nil {
			return nil, fmt.Errorf("clearing history: %w", err)
		}
		return nil, nil

	case CommandListHistory:
		h := s.historyManager()
		if h == nil {
			return []history.Entry{}, nil
		}
		return h.All(), nil

	case CommandReloadConfig:
		return nil, s.reloadConfig()

	case CommandToggle:
		return s.toggle(), nil
	}
	return nil, fmt.Errorf("unknown command %q", params.Command)
}

// toggle flips decoration on or off for the session and reports the new state.
// The config file is not written, so a reload restores its setting.
func (s *Server) toggle() bool {
	next := *s.config()
	next.Enabled = !next.Enabled
	s.applyConfig(&next)
	return next.Enabled
}

// workspaceDidChangeConfiguration reloads the config file. The pushed
// settings are not used: huescan.hcl is the only source of settings. A
// failed reload is logged and the previous config stays in effect.
func (s *Server) workspaceDidChangeConfiguration(_ *glsp.Context, _ *protocol.DidChangeConfigurationParams) error {
	_ = s.reloadConfig()
	return nil
}
