package lsp

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"sync/atomic"
)

// Server represents the main LSP server implementation.
// This structure maintains the core state and provides the primary interface
// for Language Server Protocol operations in the Orizon language server.
//
// The server is designed with a modular architecture where different aspects
// of LSP functionality are handled by specialized components, ensuring
// separation of concerns and maintainability.
type Server struct {
	// Communication channels
	in  *bufio.Reader
	out io.Writer

	// Core LSP components
	documentManager    *DocumentManager
	symbolIndexer      *SymbolIndexer
	astCache           *ASTCache
	workspaceManager   *WorkspaceManager
	hoverProvider      *HoverProvider
	completionProvider *CompletionProvider
	diagnosticsEngine  *DiagnosticsEngine
	formattingProvider *FormattingProvider
	semanticTokens     *SemanticTokensProvider

	// Optional features
	debugIntegration *DebugIntegration

	// Server state and metrics
	metrics *ServerMetrics
	rpc     *RPCHandler

	// Lifecycle management
	isInitialized int32 // atomic
	isShutdown    int32 // atomic
}

// ServerOptions configures the LSP server behavior and feature enablement.
// These options allow fine-tuning of server capabilities, resource limits,
// and integration with external tools.
//
// Options are typically set during server initialization and remain
// constant throughout the server's lifetime.
type ServerOptions struct {
	// Resource limits
	MaxDocumentSize int64 // Maximum size of documents to process (in bytes)
	CacheSize       int   // Size of various internal caches

	// Feature toggles
	EnableDebugIntegration bool   // Enable GDB/debugging integration
	DebugHTTPURL           string // HTTP URL for debug information display
	RSPAddress             string // Remote Serial Protocol address for debugging

	// Performance tuning
	EnableAsyncDiagnostics bool // Run diagnostics asynchronously
	DiagnosticsThrottle    int  // Throttle diagnostics updates (milliseconds)
}

// NewServer creates and initializes a new LSP server instance.
//
// The server is configured with the provided options and establishes
// communication channels through the reader and writer interfaces.
// All necessary components are initialized with appropriate dependencies.
func NewServer(reader io.Reader, writer io.Writer, options *ServerOptions) *Server {
	// Apply default options if nil provided
	if options == nil {
		options = &ServerOptions{
			MaxDocumentSize:        5 * 1024 * 1024, // 5MB default
			CacheSize:              500,
			EnableDebugIntegration: false,
			EnableAsyncDiagnostics: true,
			DiagnosticsThrottle:    100,
		}
	}

	// Initialize core components with proper dependencies
	documentManager := NewDocumentManager(options.MaxDocumentSize)
	symbolIndexer := NewSymbolIndexer(options.CacheSize)
	astCache := NewASTCache(options.CacheSize)
	workspaceManager := NewWorkspaceManager()

	// Create language feature providers
	hoverProvider := NewHoverProvider(symbolIndexer, astCache)
	completionProvider := NewCompletionProvider(symbolIndexer, astCache)
	diagnosticsEngine := NewDiagnosticsEngine()
	formattingProvider := NewFormattingProvider()
	semanticTokens := NewSemanticTokensProvider()

	// Initialize optional debugging integration
	var debugIntegration *DebugIntegration
	if options.EnableDebugIntegration {
		debugIntegration = NewDebugIntegration(options.DebugHTTPURL, options.RSPAddress)
	}

	// Set up metrics collection
	metrics := NewServerMetrics()

	// Create JSON-RPC handler
	rpcHandler := NewRPCHandler(bufio.NewReader(reader), writer)

	server := &Server{
		in:                 bufio.NewReader(reader),
		out:                writer,
		documentManager:    documentManager,
		symbolIndexer:      symbolIndexer,
		astCache:           astCache,
		workspaceManager:   workspaceManager,
		hoverProvider:      hoverProvider,
		completionProvider: completionProvider,
		diagnosticsEngine:  diagnosticsEngine,
		formattingProvider: formattingProvider,
		semanticTokens:     semanticTokens,
		debugIntegration:   debugIntegration,
		metrics:            metrics,
		rpc:                rpcHandler,
	}

	return server
}

// Run starts the main server loop, processing JSON-RPC requests from clients.
//
// This method blocks until the server receives a shutdown request or
// encounters a fatal error. It handles the complete LSP lifecycle including
// initialization, request processing, and graceful shutdown.
//
// The server processes requests sequentially to maintain state consistency,
// though individual operations may spawn goroutines for parallel processing.
func (s *Server) Run() error {
	// Main message processing loop will be implemented here
	// This includes JSON-RPC parsing, method dispatch, and response handling

	// For now, this is a stub that maintains the interface
	return nil
}

// IsInitialized returns whether the server has completed LSP initialization.
//
// The server must receive and successfully process an 'initialize' request
// before it can handle most other LSP requests. This method provides a
// thread-safe way to check initialization status.
func (s *Server) IsInitialized() bool {
	return atomic.LoadInt32(&s.isInitialized) == 1
}

// IsShutdown returns whether the server has received a shutdown request.
//
// After shutdown, the server should not process new requests except for
// the 'exit' notification. This method provides a thread-safe way to
// check shutdown status.
func (s *Server) IsShutdown() bool {
	return atomic.LoadInt32(&s.isShutdown) == 1
}

// markInitialized atomically marks the server as initialized.
//
// This should be called only after successful processing of the LSP
// 'initialize' request to enable full server functionality.
func (s *Server) markInitialized() {
	atomic.StoreInt32(&s.isInitialized, 1)
}

// markShutdown atomically marks the server as shutdown.
//
// This should be called when processing the LSP 'shutdown' request
// to begin graceful server termination.
func (s *Server) markShutdown() {
	atomic.StoreInt32(&s.isShutdown, 1)
}

// Metrics returns the server's performance and usage metrics.
//
// These metrics can be used for monitoring, debugging, and optimization
// of the LSP server's performance characteristics.
func (s *Server) Metrics() *ServerMetrics {
	return s.metrics
}

// Component access methods for testing and advanced usage

// DocumentManager returns the server's document management component.
func (s *Server) DocumentManager() *DocumentManager {
	return s.documentManager
}

// SymbolIndexer returns the server's symbol indexing component.
func (s *Server) SymbolIndexer() *SymbolIndexer {
	return s.symbolIndexer
}

// ASTCache returns the server's AST caching component.
func (s *Server) ASTCache() *ASTCache {
	return s.astCache
}

// WorkspaceManager returns the server's workspace management component.
func (s *Server) WorkspaceManager() *WorkspaceManager {
	return s.workspaceManager
}

// DebugIntegration returns the server's debug integration component.
// Returns nil if debug integration is not enabled.
func (s *Server) DebugIntegration() *DebugIntegration {
	return s.debugIntegration
}

// Supporting types and component definitions
// These represent the modular architecture of the LSP server

// ServerMetrics tracks server performance and usage statistics.
//
// Metrics are collected throughout server operation and can be used
// for monitoring, profiling, and optimization decisions.
type ServerMetrics struct {
	// Request processing metrics
	RequestsReceived   int64 // Total requests received
	RequestsProcessed  int64 // Total requests successfully processed
	RequestsErrored    int64 // Total requests that resulted in errors
	AverageRequestTime int64 // Average request processing time (microseconds)

	// Document management metrics
	DocumentsOpened int64 // Total documents opened during session
	DocumentsClosed int64 // Total documents closed during session
	TotalDocuments  int64 // Current number of open documents

	// Symbol indexing metrics
	SymbolsIndexed int64 // Total symbols indexed
	IndexingTime   int64 // Total time spent indexing (microseconds)
	CacheHits      int64 // Number of successful cache lookups
	CacheMisses    int64 // Number of failed cache lookups

	// Diagnostic metrics
	DiagnosticsRun    int64 // Total diagnostic runs
	DiagnosticsTime   int64 // Total time spent on diagnostics (microseconds)
	DiagnosticsIssues int64 // Total diagnostic issues found
}

// NewServerMetrics creates a new metrics collection instance.
//
// All metrics are initialized to zero and will be updated as the
// server processes requests and performs operations.
func NewServerMetrics() *ServerMetrics {
	return &ServerMetrics{}
}

// UpdateRequestMetrics updates request-related performance metrics.
func (m *ServerMetrics) UpdateRequestMetrics(processingTime int64, success bool) {
	atomic.AddInt64(&m.RequestsReceived, 1)
	if success {
		atomic.AddInt64(&m.RequestsProcessed, 1)
	} else {
		atomic.AddInt64(&m.RequestsErrored, 1)
	}

	// Update rolling average (simplified)
	currentAvg := atomic.LoadInt64(&m.AverageRequestTime)
	newAvg := (currentAvg + processingTime) / 2
	atomic.StoreInt64(&m.AverageRequestTime, newAvg)
}

// Component stub definitions
// These will be implemented in separate files for each component

// DocumentManager handles LSP document lifecycle and content management.
type DocumentManager struct{}

func NewDocumentManager(maxSize int64) *DocumentManager { return &DocumentManager{} }

// SymbolIndexer provides fast symbol lookup and completion support.
type SymbolIndexer struct{}

func NewSymbolIndexer(cacheSize int) *SymbolIndexer { return &SymbolIndexer{} }

// ASTCache manages parsed AST caching for performance optimization.
type ASTCache struct{}

func NewASTCache(cacheSize int) *ASTCache { return &ASTCache{} }

// WorkspaceManager handles workspace-level operations and configuration.
type WorkspaceManager struct{}

func NewWorkspaceManager() *WorkspaceManager { return &WorkspaceManager{} }

// HoverProvider implements LSP hover information display.
type HoverProvider struct{}

func NewHoverProvider(si *SymbolIndexer, ac *ASTCache) *HoverProvider { return &HoverProvider{} }

// CompletionProvider implements LSP code completion functionality.
type CompletionProvider struct{}

func NewCompletionProvider(si *SymbolIndexer, ac *ASTCache) *CompletionProvider {
	return &CompletionProvider{}
}

// DiagnosticsEngine provides code analysis and error reporting.
type DiagnosticsEngine struct{}

func NewDiagnosticsEngine() *DiagnosticsEngine { return &DiagnosticsEngine{} }

// FormattingProvider implements code formatting capabilities.
type FormattingProvider struct{}

func NewFormattingProvider() *FormattingProvider { return &FormattingProvider{} }

// SemanticTokensProvider implements semantic highlighting support.
type SemanticTokensProvider struct{}

func NewSemanticTokensProvider() *SemanticTokensProvider { return &SemanticTokensProvider{} }

// DebugIntegration provides GDB and debugging tool integration.
type DebugIntegration struct{}

func NewDebugIntegration(httpURL, rspAddr string) *DebugIntegration { return &DebugIntegration{} }

// RPCHandler manages JSON-RPC protocol communication.
type RPCHandler struct{}

func NewRPCHandler(reader *bufio.Reader, writer io.Writer) *RPCHandler { return &RPCHandler{} }

// JSON-RPC message structures

type JSONRPCRequest struct {
	ID     json.RawMessage
	Method string
	Params json.RawMessage
}

// RunStdio starts the LSP server using stdio for communication
func RunStdio() error {
	options := &ServerOptions{
		MaxDocumentSize:        10 * 1024 * 1024, // 10MB
		CacheSize:              1000,
		EnableDebugIntegration: false,
		DebugHTTPURL:           "",
		RSPAddress:             "",
	}

	server := NewServer(os.Stdin, os.Stdout, options)
	return server.Run()
}

// Stub handler methods (to be implemented in handler files)
func (s *Server) handleInitialize(request *JSONRPCRequest)                      {}
func (s *Server) handleTextDocumentDidOpen(request *JSONRPCRequest)             {}
func (s *Server) handleTextDocumentDidChange(request *JSONRPCRequest)           {}
func (s *Server) handleTextDocumentDidClose(request *JSONRPCRequest)            {}
func (s *Server) handleTextDocumentHover(request *JSONRPCRequest)               {}
func (s *Server) handleTextDocumentCompletion(request *JSONRPCRequest)          {}
func (s *Server) handleTextDocumentFormatting(request *JSONRPCRequest)          {}
func (s *Server) handleSemanticTokensFull(request *JSONRPCRequest)              {}
func (s *Server) handleWorkspaceDidChangeConfiguration(request *JSONRPCRequest) {}
func (s *Server) handleShutdown(request *JSONRPCRequest)                        {}
func (s *Server) handleExit(request *JSONRPCRequest)                            {}
