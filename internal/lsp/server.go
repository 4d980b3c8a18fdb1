package lsp

import (
	"context"
	"sync"

	"github.com/jsvensson/huescan/internal/config"
	"github.com/jsvensson/huescan/internal/engine"
	"github.com/jsvensson/huescan/internal/history"
	"github.com/jsvensson/huescan/internal/scanner"
	"github.com/jsvensson/huescan/internal/scheduler"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

const serverName = "huescan-lsp"

var log = commonlog.GetLogger("huescan.lsp")

// scanResult is the last published scan of a document.
type scanResult struct {
	version      int
	lines        *lineIndex
	annotations  []engine.Annotation
	truncated    bool
	scannedChars int
}

type Server struct {
	handler    protocol.Handler
	docs       *DocumentStore
	sched      *scheduler.Scheduler
	version    string
	configPath string

	mu      sync.RWMutex
	cfg     *config.Config
	history *history.Manager
	results map[string]*scanResult
	notify  glsp.NotifyFunc
}

// NewServer returns a server using cfg. When configPath is set, the file is
// reloaded on change and by the huescan.reloadConfig command.
func NewServer(version string, cfg *config.Config, configPath string) *Server {
	s := &Server{
		docs:       NewDocumentStore(),
		version:    version,
		configPath: configPath,
		results:    make(map[string]*scanResult),
	}
	s.sched = scheduler.New(s.docs, s.publish, scheduler.Options{})

	s.handler = protocol.Handler{
		Initialize:                      s.initialize,
		Initialized:                     s.initialized,
		Shutdown:                        s.shutdown,
		SetTrace:                        s.setTrace,
		TextDocumentDidOpen:             s.textDocumentDidOpen,
		TextDocumentDidChange:           s.textDocumentDidChange,
		TextDocumentDidClose:            s.textDocumentDidClose,
		TextDocumentColor:               s.textDocumentDocumentColor,
		TextDocumentColorPresentation:   s.textDocumentColorPresentation,
		TextDocumentHover:               s.textDocumentHover,
		TextDocumentCompletion:          s.textDocumentCompletion,
		TextDocumentSemanticTokensFull:  s.textDocumentSemanticTokensFull,
		WorkspaceExecuteCommand:         s.workspaceExecuteCommand,
		WorkspaceDidChangeConfiguration: s.workspaceDidChangeConfiguration,
	}

	s.applyConfig(cfg)
	return s
}

// Run serves LSP over stdio until the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	configureLogging(s.config().Log)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if s.configPath != "" {
		if err := config.Watch(ctx, s.configPath, s.applyConfig); err != nil {
			log.Warningf("config changes will not be picked up: %s", err)
		}
	}
	defer s.sched.Stop()

	srv := server.NewServer(&s.handler, serverName, false)
	return srv.RunStdio()
}

func configureLogging(l *config.Log) {
	var path *string
	if l.Path != "" {
		p := config.ExpandHome(l.Path)
		path = &p
	}
	commonlog.Configure(l.Verbosity, path)
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	s.setNotify(ctx)
	capabilities := s.handler.CreateServerCapabilities()

	syncKind := protocol.TextDocumentSyncKindFull
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: &protocol.True,
		Change:    &syncKind,
	}
	capabilities.CompletionProvider = &protocol.CompletionOptions{
		TriggerCharacters: []string{"#"},
	}
	capabilities.ExecuteCommandProvider = &protocol.ExecuteCommandOptions{
		Commands: commands,
	}
	if opts, ok := capabilities.SemanticTokensProvider.(*protocol.SemanticTokensOptions); ok {
		opts.Legend = protocol.SemanticTokensLegend{
			TokenTypes:     semanticTokenTypes,
			TokenModifiers: []string{},
		}
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    serverName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, _ *protocol.InitializedParams) error {
	s.setNotify(ctx)
	return nil
}

func (s *Server) shutdown(_ *glsp.Context) error {
	s.sched.Stop()
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (s *Server) setTrace(_ *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) setNotify(ctx *glsp.Context) {
	if ctx == nil || ctx.Notify == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notify = ctx.Notify
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.setNotify(ctx)
	uri := string(params.TextDocument.URI)
	version := int(params.TextDocument.Version)
	s.docs.Open(uri, params.TextDocument.Text, version)

	if s.decorates(uri) {
		s.sched.Open(uri)
		s.sched.Schedule(uri, version)
	}
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	s.setNotify(ctx)
	uri := string(params.TextDocument.URI)
	version := int(params.TextDocument.Version)
	for _, change := range params.ContentChanges {
		if c, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			s.docs.Update(uri, c.Text, version)
		}
	}
	s.sched.Schedule(uri, version)
	return nil
}

func (s *Server) textDocumentDidClose(_ *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	s.docs.Close(uri)
	s.sched.Close(uri)

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.results, uri)
	return nil
}

// decorates reports whether uri gets colors under the current config.
func (s *Server) decorates(uri string) bool {
	cfg := s.config()
	return cfg.Enabled && cfg.Supported(uri)
}

func (s *Server) config() *config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

func (s *Server) historyManager() *history.Manager {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history
}

// applyConfig switches to cfg: it rebuilds the pattern, reconfigures the
// scheduler, swaps the history file and rescans every open document.
func (s *Server) applyConfig(cfg *config.Config) {
	p := scanner.New(cfg.Formats)

	var hist *history.Manager
	if cfg.History.Enabled {
		hist = history.NewManager(history.FileStore{Path: cfg.HistoryPath()}, cfg.History.MaxItems)
		if err := hist.Load(); err != nil {
			log.Warningf("loading history: %s", err)
		}
	}

	s.mu.Lock()
	old := s.cfg
	s.cfg = cfg
	s.history = hist
	clear(s.results)
	notify := s.notify
	s.mu.Unlock()

	if old != nil {
		configureLogging(cfg.Log)
	}

	s.sched.Reconfigure(scheduler.Options{
		Engine:             engine.New(p),
		Debounce:           cfg.Scan.Debounce(),
		MaxDebounce:        cfg.Scan.MaxDebounce(),
		LargeFileThreshold: cfg.Scan.LargeFileThreshold,
		Truncate:           cfg.Scan.TruncateLargeFiles,
	})
	if hist != nil {
		s.sched.SetRecorder(hist)
	} else {
		s.sched.SetRecorder(nil)
	}

	if p.Fallback() && notify != nil {
		notify(protocol.ServerWindowShowMessage, protocol.ShowMessageParams{
			Type:    protocol.MessageTypeWarning,
			Message: "huescan: invalid formats setting, only hex colors are highlighted",
		})
	}

	for _, uri := range s.docs.URIs() {
		if !s.decorates(uri) {
			s.sched.Close(uri)
			s.clearDecorations(uri)
			continue
		}
		_, version, ok := s.docs.Snapshot(uri)
		if !ok {
			continue
		}
		s.sched.Open(uri)
		s.sched.Schedule(uri, version)
	}
}

// reloadConfig reads the config file again. On error the current config is
// kept.
func (s *Server) reloadConfig() error {
	if s.configPath == "" {
		s.applyConfig(config.Default())
		return nil
	}
	cfg, err := config.LoadOrDefault(s.configPath)
	if err != nil {
		log.Errorf("reloading config: %s", err)
		return err
	}
	s.applyConfig(cfg)
	return nil
}

// result returns the annotations of uri for its current version. A document
// whose scheduled scan has not run yet is scanned on the spot.
func (s *Server) result(uri string) *scanResult {
	_, version, ok := s.docs.Snapshot(uri)
	if !ok || !s.decorates(uri) {
		return nil
	}

	s.mu.RLock()
	r := s.results[uri]
	s.mu.RUnlock()
	if r != nil && r.version == version {
		return r
	}

	res, ok := s.sched.ScanNow(uri)
	if !ok {
		return nil
	}
	return newScanResult(res)
}

func newScanResult(res scheduler.Result) *scanResult {
	return &scanResult{
		version:      res.Version,
		lines:        newLineIndex(res.Text),
		annotations:  res.Annotations,
		truncated:    res.Truncated,
		scannedChars: res.ScannedChars,
	}
}
