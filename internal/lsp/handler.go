package lsp

import (
	"fmt"
	"log"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"stave/internal/ast"
	"stave/internal/parser"
	"stave/internal/semantic"
)

// Define the set of supported semantic token types (as required by the LSP spec)
var SemanticTokenTypes = []string{
	"namespace",
	"type",
	"function",
	"variable",
	"parameter",
	"keyword",
	"number",
	"operator",
}

// Define the set of supported semantic token modifiers (for extra tagging like declaration, readonly, etc.)
var SemanticTokenModifiers = []string{
	"declaration",
	"definition",
	"readonly",
}

// StaveHandler implements the LSP server handlers for the Stave language
type StaveHandler struct {
	mu      sync.RWMutex
	content map[string]string
	modules map[string]*ast.Module
}

// NewStaveHandler creates and returns a new StaveHandler instance
func NewStaveHandler() *StaveHandler {
	return &StaveHandler{
		content: make(map[string]string),
		modules: make(map[string]*ast.Module),
	}
}

// Initialize responds to the LSP client's initialize request and advertises the server's capabilities
func (h *StaveHandler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Println("LSP Initialize called")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			CompletionProvider: &protocol.CompletionOptions{
				ResolveProvider: ptrBool(false),
			},
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
	}, nil
}

// Initialized is called after the client receives the server's capabilities and completes initialization
func (h *StaveHandler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Println("Stave LSP Initialized")
	return nil
}

// Shutdown handles the LSP shutdown request
func (h *StaveHandler) Shutdown(ctx *glsp.Context) error {
	log.Println("Stave LSP Shutdown")
	return nil
}

// SetTrace handles trace level changes requested by the client
func (h *StaveHandler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

// TextDocumentDidOpen handles file open notifications from the editor
func (h *StaveHandler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Printf("Opened file: %s\n", params.TextDocument.URI)

	diagnostics, err := h.update(params.TextDocument.URI, params.TextDocument.Text)
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}

	sendDiagnosticNotification(ctx, params.TextDocument.URI, diagnostics)
	return nil
}

// TextDocumentDidClose handles file close notifications from the editor
func (h *StaveHandler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Printf("Closed file: %s\n", params.TextDocument.URI)

	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return fmt.Errorf("failed to convert URI %s: %w", params.TextDocument.URI, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.content, path)
	delete(h.modules, path)

	return nil
}

// TextDocumentDidChange handles file change notifications from the editor.
// Sync is full-document, so the last change carries the whole new text.
func (h *StaveHandler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	log.Printf("Changed file: %s\n", params.TextDocument.URI)

	var text string
	for _, change := range params.ContentChanges {
		if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			text = whole.Text
		}
	}

	diagnostics, err := h.update(params.TextDocument.URI, text)
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}

	sendDiagnosticNotification(ctx, params.TextDocument.URI, diagnostics)
	return nil
}

// TextDocumentCompletion suggests the builtin vocabulary plus every word the
// current module defines
func (h *StaveHandler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (interface{}, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, fmt.Errorf("failed to convert URI %s: %w", params.TextDocument.URI, err)
	}

	var items []protocol.CompletionItem
	for _, name := range semantic.BuiltinNames() {
		items = append(items, protocol.CompletionItem{
			Label: name,
			Kind:  ptrCompletionKind(protocol.CompletionItemKindOperator),
		})
	}

	h.mu.RLock()
	if module, ok := h.modules[path]; ok {
		for _, def := range module.Defs {
			items = append(items, protocol.CompletionItem{
				Label: def.Name,
				Kind:  ptrCompletionKind(protocol.CompletionItemKindFunction),
			})
		}
	}
	h.mu.RUnlock()

	return &protocol.CompletionList{
		IsIncomplete: false,
		Items:        items,
	}, nil
}

// TextDocumentSemanticTokensFull handles semantic token requests for the entire document
func (h *StaveHandler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	log.Println("TextDocumentSemanticTokensFull called for:", params.TextDocument.URI)

	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, fmt.Errorf("failed to convert URI %s: %w", params.TextDocument.URI, err)
	}

	h.mu.RLock()
	module := h.modules[path]
	h.mu.RUnlock()

	tokens := collectSemanticTokens(module)

	var data []uint32
	var prevLine, prevStart uint32

	// Encode tokens into LSP wire format (using delta-line, delta-start compression)
	for _, token := range tokens {
		deltaLine := token.Line - prevLine
		var deltaStart uint32
		if deltaLine == 0 {
			deltaStart = token.StartChar - prevStart
		} else {
			deltaStart = token.StartChar
		}

		data = append(data, deltaLine, deltaStart, token.Length, uint32(token.TokenType), uint32(token.TokenModifiers))

		prevLine = token.Line
		prevStart = token.StartChar
	}

	return &protocol.SemanticTokens{
		Data: data,
	}, nil
}

// update reparses a document and recomputes its diagnostics. The parsed
// module is cached only when the source parses, so semantic tokens and
// completions keep serving the last good version while the user is mid-edit.
func (h *StaveHandler) update(rawURI protocol.DocumentUri, text string) ([]protocol.Diagnostic, error) {
	path, err := uriToPath(rawURI)
	if err != nil {
		return nil, fmt.Errorf("failed to convert URI %s: %w", rawURI, err)
	}

	module, parseErr := parser.ParseSource(path, text)
	if parseErr != nil {
		return convertParseError(parseErr), nil
	}

	h.mu.Lock()
	h.content[path] = text
	h.modules[path] = module
	h.mu.Unlock()

	return collectDiagnostics(module), nil
}

// Convert URI to platform-local file path
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path

	// On Windows, remove leading slash (e.g., /C:/...) -> C:/...
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	// Normalize to platform-specific separators
	return filepath.FromSlash(path), nil
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.URI, diagnostics []protocol.Diagnostic) {
	if ctx == nil || ctx.Notify == nil {
		return
	}
	if diagnostics == nil {
		// Publishing an empty list clears stale diagnostics in the editor
		diagnostics = []protocol.Diagnostic{}
	}

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}

func ptrCompletionKind(k protocol.CompletionItemKind) *protocol.CompletionItemKind {
	return &k
}
