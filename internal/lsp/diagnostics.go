package lsp

import (
	goerrors "errors"

	"github.com/alecthomas/participle/v2"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"stave/internal/ast"
	"stave/internal/ir"
	"stave/internal/semantic"
)

// convertParseError transforms a parse failure into LSP diagnostics for IDE
// display. Parsing stops at the first syntax error, so there is at most one.
func convertParseError(err error) []protocol.Diagnostic {
	line, column := 1, 1
	var perr participle.Error
	if goerrors.As(err, &perr) {
		line = perr.Position().Line
		column = perr.Position().Column
	}

	return []protocol.Diagnostic{positionedDiagnostic(
		ast.Position{Line: line, Column: column}, err.Error(), "stave-parser")}
}

// collectDiagnostics runs annotation and IR construction over a freshly
// parsed module and converts every diagnostic to the LSP shape. Annotation
// errors suppress the IR stage: the converter requires an annotated AST.
func collectDiagnostics(module *ast.Module) []protocol.Diagnostic {
	var diagnostics []protocol.Diagnostic

	analyzer := semantic.NewAnalyzer()
	semanticErrors := analyzer.Annotate(module)
	for _, semErr := range semanticErrors {
		diagnostics = append(diagnostics,
			positionedDiagnostic(semErr.Position, semErr.Message, "stave-semantic"))
	}
	if len(semanticErrors) > 0 {
		return diagnostics
	}

	_, irErrors := ir.BuildModule(module)
	for _, irErr := range irErrors {
		if convErr, ok := irErr.(*ir.ConvertError); ok {
			diagnostics = append(diagnostics,
				positionedDiagnostic(convErr.Pos, convErr.Message, "stave-ir"))
			continue
		}
		// Validator violations have no source position; anchor them at the
		// top of the file.
		diagnostics = append(diagnostics,
			positionedDiagnostic(ast.Position{Line: 1, Column: 1}, irErr.Error(), "stave-ir"))
	}

	return diagnostics
}

func positionedDiagnostic(pos ast.Position, message, source string) protocol.Diagnostic {
	line := pos.Line
	if line < 1 {
		line = 1
	}
	column := pos.Column
	if column < 1 {
		column = 1
	}

	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{
				Line:      uint32(line - 1), // Convert to 0-based indexing
				Character: uint32(column - 1),
			},
			End: protocol.Position{
				Line:      uint32(line - 1),
				Character: uint32(column + 4), // Rough span for visibility
			},
		},
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Source:   ptrString(source),
		Message:  message,
	}
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
