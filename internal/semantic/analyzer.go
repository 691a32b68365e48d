package semantic

import (
	"fmt"

	"stave/internal/ast"
	"stave/internal/errors"
)

// Error is a diagnostic produced by the annotation pass.
type Error struct {
	Code     string
	Message  string
	Position ast.Position
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Position, e.Message)
}

// Analyzer resolves every word occurrence in a module against the builtin
// table and the module's own definitions, and annotates its stack effect.
// The IR stage consumes the annotated AST and never re-derives effects.
type Analyzer struct {
	defs      map[string]*ast.Definition
	errors    []Error
	loopDepth int
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{
		defs: make(map[string]*ast.Definition),
	}
}

// Annotate checks and annotates a module in place. Definitions may refer to
// each other in any order, so signatures are collected up front.
func (a *Analyzer) Annotate(mod *ast.Module) []Error {
	for _, def := range mod.Defs {
		if prev, exists := a.defs[def.Name]; exists {
			a.errorf(def.Pos, errors.ErrorDuplicateDefinition,
				"word %q already defined at %s", def.Name, prev.Pos)
			continue
		}
		a.defs[def.Name] = def
	}

	for _, def := range mod.Defs {
		if def.Results > 1 {
			a.errorf(def.Pos, errors.ErrorMultipleResults,
				"word %q declares %d results; a word may produce at most one value",
				def.Name, def.Results)
		}
		a.loopDepth = 0
		a.annotateBody(def.Body)
	}

	return a.errors
}

func (a *Analyzer) annotateBody(body []ast.Node) {
	for _, node := range body {
		switch n := node.(type) {
		case *ast.Literal:
			// Nothing to resolve

		case *ast.Word:
			a.annotateWord(n)

		case *ast.Conditional:
			a.annotateBody(n.Then)
			a.annotateBody(n.Else)

		case *ast.WhileLoop:
			a.annotateBody(n.Cond)
			a.annotateBody(n.Body)

		case *ast.UntilLoop:
			a.annotateBody(n.Body)

		case *ast.CountedLoop:
			a.loopDepth++
			a.annotateBody(n.Body)
			a.loopDepth--
		}
	}
}

func (a *Analyzer) annotateWord(word *ast.Word) {
	if builtin, ok := LookupBuiltin(word.Name); ok {
		if builtin.Kind == ast.WordIndex && a.loopDepth == 0 {
			a.errorf(word.Pos, errors.ErrorIndexOutsideLoop,
				"%q is only meaningful inside a counted loop", word.Name)
			return
		}
		word.Kind = builtin.Kind
		word.Op = builtin.Op
		word.Pops = builtin.Pops
		word.Pushes = builtin.Pushes
		return
	}

	if def, ok := a.defs[word.Name]; ok {
		word.Kind = ast.WordCall
		word.Pops = len(def.Params)
		word.Pushes = def.Results
		return
	}

	a.errorf(word.Pos, errors.ErrorUndefinedWord, "undefined word %q", word.Name)
}

func (a *Analyzer) errorf(pos ast.Position, code, format string, args ...interface{}) {
	a.errors = append(a.errors, Error{
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Position: pos,
	})
}
