// SPDX-License-Identifier: Apache-2.0
package main

import (
	"log"
	"os"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"stave/internal/lsp"
)

const lsName = "stave" // Name identifier for the language server

var (
	version = "0.0.1"        // Server version
	handler protocol.Handler // Protocol handler instance (wired up below)
)

func main() {
	// Configure debug logging (1 = debug level, nil = default logger)
	commonlog.Configure(1, nil)

	staveHandler := lsp.NewStaveHandler()

	// Wire up the handler with specific LSP method implementations
	handler = protocol.Handler{
		Initialize:                     staveHandler.Initialize,
		Initialized:                    staveHandler.Initialized,
		Shutdown:                       staveHandler.Shutdown,
		SetTrace:                       staveHandler.SetTrace,
		TextDocumentDidOpen:            staveHandler.TextDocumentDidOpen,
		TextDocumentDidClose:           staveHandler.TextDocumentDidClose,
		TextDocumentDidChange:          staveHandler.TextDocumentDidChange,
		TextDocumentCompletion:         staveHandler.TextDocumentCompletion,
		TextDocumentSemanticTokensFull: staveHandler.TextDocumentSemanticTokensFull,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Println("Starting Stave LSP server", version)

	// Serve over standard input/output (used by most editors for LSP)
	if err := s.RunStdio(); err != nil {
		log.Println("Error starting Stave LSP server:", err)
		os.Exit(1)
	}
}
