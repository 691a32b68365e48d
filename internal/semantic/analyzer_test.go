package semantic

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stave/internal/ast"
	"stave/internal/errors"
	"stave/internal/parser"
)

func annotate(t *testing.T, source string) (*ast.Module, []Error) {
	t.Helper()
	mod, err := parser.ParseSource("test.stv", source)
	require.NoError(t, err)
	return mod, NewAnalyzer().Annotate(mod)
}

func TestAnnotateBuiltins(t *testing.T) {
	mod, errs := annotate(t, ": f ( a b -- r ) + negate dup drop ;")
	require.Empty(t, errs)

	body := mod.Defs[0].Body
	plus := body[0].(*ast.Word)
	assert.Equal(t, ast.WordBinary, plus.Kind)
	assert.Equal(t, "ADD", plus.Op)
	assert.Equal(t, 2, plus.Pops)
	assert.Equal(t, 1, plus.Pushes)

	neg := body[1].(*ast.Word)
	assert.Equal(t, ast.WordUnary, neg.Kind)
	assert.Equal(t, "NEG", neg.Op)

	dup := body[2].(*ast.Word)
	assert.Equal(t, ast.WordShuffle, dup.Kind)
	assert.Equal(t, 1, dup.Pops)
	assert.Equal(t, 2, dup.Pushes)
}

func TestAnnotateCalls(t *testing.T) {
	mod, errs := annotate(t, `
: helper ( a b -- r ) + ;
: f ( a b -- r ) helper ;
`)
	require.Empty(t, errs)

	call := mod.Defs[1].Body[0].(*ast.Word)
	assert.Equal(t, ast.WordCall, call.Kind)
	assert.Equal(t, 2, call.Pops)
	assert.Equal(t, 1, call.Pushes)
}

func TestAnnotateForwardReference(t *testing.T) {
	_, errs := annotate(t, `
: f ( n -- r ) helper ;
: helper ( n -- r ) 1 + ;
`)
	assert.Empty(t, errs, "definitions may refer to later definitions")
}

func TestUndefinedWord(t *testing.T) {
	_, errs := annotate(t, ": f ( -- r ) frobnicate ;")
	require.Len(t, errs, 1)
	assert.Equal(t, errors.ErrorUndefinedWord, errs[0].Code)
}

func TestDuplicateDefinition(t *testing.T) {
	_, errs := annotate(t, `
: f ( -- r ) 1 ;
: f ( -- r ) 2 ;
`)
	require.Len(t, errs, 1)
	assert.Equal(t, errors.ErrorDuplicateDefinition, errs[0].Code)
}

func TestMultipleResultsRejected(t *testing.T) {
	_, errs := annotate(t, ": f ( a -- x y ) dup ;")
	require.Len(t, errs, 1)
	assert.Equal(t, errors.ErrorMultipleResults, errs[0].Code)
}

func TestIndexInsideCountedLoop(t *testing.T) {
	mod, errs := annotate(t, ": f ( -- r ) 0 3 0 do i + loop ;")
	require.Empty(t, errs)

	loop := mod.Defs[0].Body[3].(*ast.CountedLoop)
	idx := loop.Body[0].(*ast.Word)
	assert.Equal(t, ast.WordIndex, idx.Kind)
}

func TestIndexOutsideLoop(t *testing.T) {
	_, errs := annotate(t, ": f ( -- r ) i ;")
	require.Len(t, errs, 1)
	assert.Equal(t, errors.ErrorIndexOutsideLoop, errs[0].Code)
}

func TestIndexOutsideCountedLoopInWhile(t *testing.T) {
	// Pre-test loops carry no index; only do-loops do.
	_, errs := annotate(t, ": f ( n -- r ) begin dup 0 > while i - repeat ;")
	require.Len(t, errs, 1)
	assert.Equal(t, errors.ErrorIndexOutsideLoop, errs[0].Code)
}

func TestBuiltinNamesSorted(t *testing.T) {
	names := BuiltinNames()
	assert.Contains(t, names, "dup")
	assert.Contains(t, names, "+")
	assert.True(t, sort.StringsAreSorted(names))
}
