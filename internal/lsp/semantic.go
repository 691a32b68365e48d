package lsp

import (
	"fmt"

	"stave/internal/ast"
)

// SemanticToken represents a single LSP semantic token entry
// Line and StartChar are 0-based positions
// TokenType is an index into SemanticTokenTypes
// TokenModifiers is a bitmask based on SemanticTokenModifiers
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int
	TokenModifiers int
}

// collectSemanticTokens walks the module in source order, which is exactly
// the order the LSP delta encoding wants.
func collectSemanticTokens(module *ast.Module) []SemanticToken {
	var tokens []SemanticToken

	if module == nil {
		return tokens
	}

	for _, def := range module.Defs {
		tokens = append(tokens, walkDefinition(def)...)
	}

	return tokens
}

func walkDefinition(def *ast.Definition) []SemanticToken {
	var tokens []SemanticToken

	if def == nil {
		return tokens
	}

	// def.Pos points at the leading colon; the name follows ": ".
	namePos := def.Pos
	namePos.Column += 2
	tokens = append(tokens, makeToken(namePos, def.Name, "function", 1)...)

	tokens = append(tokens, walkBody(def.Body)...)
	return tokens
}

func walkBody(body []ast.Node) []SemanticToken {
	var tokens []SemanticToken

	for _, node := range body {
		switch v := node.(type) {
		case *ast.Literal:
			tokens = append(tokens, makeToken(v.Pos, fmt.Sprintf("%d", v.Value), "number", 0)...)

		case *ast.Word:
			tokens = append(tokens, makeToken(v.Pos, v.Name, wordTokenType(v.Kind), 0)...)

		case *ast.Conditional:
			tokens = append(tokens, makeToken(v.Pos, "if", "keyword", 0)...)
			tokens = append(tokens, walkBody(v.Then)...)
			tokens = append(tokens, walkBody(v.Else)...)

		case *ast.WhileLoop:
			tokens = append(tokens, makeToken(v.Pos, "begin", "keyword", 0)...)
			tokens = append(tokens, walkBody(v.Cond)...)
			tokens = append(tokens, walkBody(v.Body)...)

		case *ast.UntilLoop:
			tokens = append(tokens, makeToken(v.Pos, "begin", "keyword", 0)...)
			tokens = append(tokens, walkBody(v.Body)...)

		case *ast.CountedLoop:
			tokens = append(tokens, makeToken(v.Pos, "do", "keyword", 0)...)
			tokens = append(tokens, walkBody(v.Body)...)
		}
	}

	return tokens
}

func wordTokenType(kind ast.WordKind) string {
	switch kind {
	case ast.WordCall:
		return "function"
	case ast.WordShuffle:
		return "keyword"
	case ast.WordIndex:
		return "variable"
	case ast.WordBinary, ast.WordUnary:
		return "operator"
	default:
		// Unannotated words (the analyzer has not run, or failed)
		return "variable"
	}
}

// makeToken creates a semantic token for a given position and text
func makeToken(pos ast.Position, value, tokenType string, declModifier int) []SemanticToken {
	if value == "" || pos.Line < 1 || pos.Column < 1 {
		return nil
	}

	return []SemanticToken{{
		Line:           uint32(pos.Line - 1),   // LSP uses 0-based line numbers
		StartChar:      uint32(pos.Column - 1), // LSP uses 0-based column numbers
		Length:         uint32(len(value)),
		TokenType:      indexOf(tokenType, SemanticTokenTypes),
		TokenModifiers: declModifier << indexOf("declaration", SemanticTokenModifiers),
	}}
}

// indexOf returns the index of a string in a slice, or 0 if not found
func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return 0
}
