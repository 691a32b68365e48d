package parser

import (
	"github.com/alecthomas/participle/v2/lexer"
	"stave/grammar"
	"stave/internal/ast"
)

// convertProgram maps the participle parse tree onto the typed AST consumed
// by the annotation and IR stages.
func convertProgram(name string, program *grammar.Program) *ast.Module {
	mod := &ast.Module{Name: name}
	for _, def := range program.Defs {
		mod.Defs = append(mod.Defs, convertDefinition(def))
	}
	return mod
}

func convertDefinition(def *grammar.Definition) *ast.Definition {
	out := &ast.Definition{
		Pos:    convertPos(def.Pos),
		Name:   def.Name,
		Params: append([]string(nil), def.Effect.Params...),
	}
	out.Results = len(def.Effect.Results)
	out.Body = convertTerms(def.Body)
	return out
}

func convertTerms(terms []*grammar.Term) []ast.Node {
	var nodes []ast.Node
	for _, term := range terms {
		nodes = append(nodes, convertTerm(term))
	}
	return nodes
}

func convertTerm(term *grammar.Term) ast.Node {
	pos := convertPos(term.Pos)

	switch {
	case term.Number != nil:
		return &ast.Literal{Pos: pos, Value: *term.Number}

	case term.If != nil:
		cond := &ast.Conditional{
			Pos:  convertPos(term.If.Pos),
			Then: convertTerms(term.If.Then),
		}
		if term.If.Else != nil {
			cond.Else = convertTerms(term.If.Else.Body)
		}
		return cond

	case term.Begin != nil:
		if term.Begin.While != nil {
			return &ast.WhileLoop{
				Pos:  convertPos(term.Begin.Pos),
				Cond: convertTerms(term.Begin.Head),
				Body: convertTerms(term.Begin.While.Body),
			}
		}
		return &ast.UntilLoop{
			Pos:  convertPos(term.Begin.Pos),
			Body: convertTerms(term.Begin.Head),
		}

	case term.Do != nil:
		return &ast.CountedLoop{
			Pos:  convertPos(term.Do.Pos),
			Body: convertTerms(term.Do.Body),
		}

	default:
		return &ast.Word{Pos: pos, Name: term.Word}
	}
}

func convertPos(pos lexer.Position) ast.Position {
	return ast.Position{
		Filename: pos.Filename,
		Line:     pos.Line,
		Column:   pos.Column,
	}
}
