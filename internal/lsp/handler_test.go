package lsp_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"stave/internal/lsp"
)

const testURI = "file:///tmp/square.stv"

func openDocument(t *testing.T, handler *lsp.StaveHandler, text string) {
	t.Helper()
	err := handler.TextDocumentDidOpen(&glsp.Context{}, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:  testURI,
			Text: text,
		},
	})
	require.NoError(t, err)
}

func TestTextDocumentSemanticTokensFull(t *testing.T) {
	handler := lsp.NewStaveHandler()
	openDocument(t, handler, ": square ( n -- r ) dup * ;")

	tokens, err := handler.TextDocumentSemanticTokensFull(&glsp.Context{}, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	})
	require.NoError(t, err)
	require.NotNil(t, tokens)

	decoded, err := decodeSemanticTokens(tokens.Data)
	require.NoError(t, err)
	require.Len(t, decoded, 3)

	assertToken(t, &decoded[0], 1, 3, 6, "function", []string{"declaration"})
	assertToken(t, &decoded[1], 1, 21, 3, "keyword", nil)
	assertToken(t, &decoded[2], 1, 25, 1, "operator", nil)
}

func TestCompletionListsBuiltinsAndDefinitions(t *testing.T) {
	handler := lsp.NewStaveHandler()
	openDocument(t, handler, ": square ( n -- r ) dup * ;")

	result, err := handler.TextDocumentCompletion(&glsp.Context{}, &protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
		},
	})
	require.NoError(t, err)

	list, ok := result.(*protocol.CompletionList)
	require.True(t, ok)

	labels := make([]string, len(list.Items))
	for i, item := range list.Items {
		labels[i] = item.Label
	}
	assert.Contains(t, labels, "dup")
	assert.Contains(t, labels, "+")
	assert.Contains(t, labels, "square")
}

func TestSemanticTokensForUnknownDocument(t *testing.T) {
	handler := lsp.NewStaveHandler()

	tokens, err := handler.TextDocumentSemanticTokensFull(&glsp.Context{}, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///tmp/missing.stv"},
	})
	require.NoError(t, err)
	require.NotNil(t, tokens)
	assert.Empty(t, tokens.Data)
}

type DecodedToken struct {
	Index     int
	Line      uint32
	Char      uint32
	Length    uint32
	Type      string
	Modifiers []string
}

func decodeSemanticTokens(raw []uint32) ([]DecodedToken, error) {
	if len(raw)%5 != 0 {
		return nil, fmt.Errorf("raw token data length %d is not a multiple of 5", len(raw))
	}

	var (
		decoded []DecodedToken
		line    uint32
		char    uint32
	)

	for i := 0; i < len(raw); i += 5 {
		deltaLine := raw[i]
		deltaStart := raw[i+1]
		length := raw[i+2]
		tokenTypeIdx := raw[i+3]
		tokenModMask := raw[i+4]

		if deltaLine == 0 {
			char += deltaStart
		} else {
			line += deltaLine
			char = deltaStart
		}

		var modifiers []string
		for j, name := range lsp.SemanticTokenModifiers {
			if tokenModMask&(1<<j) != 0 {
				modifiers = append(modifiers, name)
			}
		}

		decoded = append(decoded, DecodedToken{
			Index:     i / 5,
			Line:      line + 1, // LSP uses 0-based indexing
			Char:      char + 1, // LSP uses 0-based indexing
			Length:    length,
			Type:      lsp.SemanticTokenTypes[tokenTypeIdx],
			Modifiers: modifiers,
		})
	}

	return decoded, nil
}

func assertToken(t *testing.T, token *DecodedToken, expectedLine, expectedChar, expectedLength uint32, expectedType string, expectedModifiers []string) {
	t.Helper()
	require.Equal(t, expectedLine, token.Line, "line mismatch")
	require.Equal(t, expectedChar, token.Char, "char mismatch")
	require.Equal(t, expectedLength, token.Length, "length mismatch")
	require.Equal(t, expectedType, token.Type, "type mismatch")
	require.ElementsMatch(t, expectedModifiers, token.Modifiers, "modifiers mismatch")
}
