package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alecthomas/participle/v2"
	"stave/grammar"
	"stave/internal/ast"
)

var parser = buildParser()

func buildParser() *participle.Parser[grammar.Program] {
	p, err := participle.Build[grammar.Program](
		participle.Lexer(grammar.StaveLexer),
		participle.Elide("Whitespace", "Comment"),
		participle.UseLookahead(2),
	)
	if err != nil {
		panic(fmt.Errorf("failed to build parser: %w", err))
	}

	return p
}

// ParseSource parses Stave source text into the typed AST. The module name
// is derived from the source name with its extension stripped.
func ParseSource(sourceName string, source string) (*ast.Module, error) {
	program, err := parser.ParseString(sourceName, source)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSuffix(filepath.Base(sourceName), filepath.Ext(sourceName))
	return convertProgram(name, program), nil
}
