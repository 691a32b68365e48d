package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stave/internal/ast"
)

func parse(t *testing.T, source string) *ast.Module {
	t.Helper()
	mod, err := ParseSource("test.stv", source)
	require.NoError(t, err)
	return mod
}

func TestModuleNameFromSourceName(t *testing.T) {
	mod, err := ParseSource("lib/math.stv", ": one ( -- r ) 1 ;")
	require.NoError(t, err)
	assert.Equal(t, "math", mod.Name)
}

func TestDefinitionShape(t *testing.T) {
	mod := parse(t, ": add3 ( a b c -- r ) + + ;")

	require.Len(t, mod.Defs, 1)
	def := mod.Defs[0]
	assert.Equal(t, "add3", def.Name)
	assert.Equal(t, []string{"a", "b", "c"}, def.Params)
	assert.Equal(t, 1, def.Results)
	assert.Len(t, def.Body, 2)
}

func TestZeroResults(t *testing.T) {
	mod := parse(t, ": sink ( a -- ) drop ;")
	assert.Equal(t, 0, mod.Defs[0].Results)
}

func TestLiteralsAndWords(t *testing.T) {
	mod := parse(t, ": f ( -- r ) 42 -7 negate ;")

	body := mod.Defs[0].Body
	require.Len(t, body, 3)

	lit, ok := body[0].(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, int64(42), lit.Value)

	neg, ok := body[1].(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, int64(-7), neg.Value)

	word, ok := body[2].(*ast.Word)
	require.True(t, ok)
	assert.Equal(t, "negate", word.Name)
}

func TestConditional(t *testing.T) {
	mod := parse(t, ": f ( a f -- r ) if 1 + else 1 - then ;")

	cond, ok := mod.Defs[0].Body[0].(*ast.Conditional)
	require.True(t, ok)
	assert.Len(t, cond.Then, 2)
	assert.Len(t, cond.Else, 2)
}

func TestConditionalWithoutElse(t *testing.T) {
	mod := parse(t, ": f ( a f -- r ) if drop 0 then ;")

	cond, ok := mod.Defs[0].Body[0].(*ast.Conditional)
	require.True(t, ok)
	assert.Len(t, cond.Then, 2)
	assert.Empty(t, cond.Else)
}

func TestWhileLoop(t *testing.T) {
	mod := parse(t, ": f ( n -- r ) begin dup 0 > while 1 - repeat ;")

	loop, ok := mod.Defs[0].Body[0].(*ast.WhileLoop)
	require.True(t, ok)
	assert.Len(t, loop.Cond, 3)
	assert.Len(t, loop.Body, 2)
}

func TestUntilLoop(t *testing.T) {
	mod := parse(t, ": f ( n -- r ) begin 1 - dup 0 = until ;")

	loop, ok := mod.Defs[0].Body[0].(*ast.UntilLoop)
	require.True(t, ok)
	assert.Len(t, loop.Body, 5)
}

func TestCountedLoop(t *testing.T) {
	mod := parse(t, ": f ( -- r ) 0 10 0 do i + loop ;")

	body := mod.Defs[0].Body
	require.Len(t, body, 4)
	loop, ok := body[3].(*ast.CountedLoop)
	require.True(t, ok)
	assert.Len(t, loop.Body, 2)
}

func TestNestedConstructs(t *testing.T) {
	mod := parse(t, ": f ( a f g -- r ) if if drop else nip then else drop nip then ;")

	outer, ok := mod.Defs[0].Body[0].(*ast.Conditional)
	require.True(t, ok)
	require.Len(t, outer.Then, 1)
	_, ok = outer.Then[0].(*ast.Conditional)
	assert.True(t, ok, "inner conditional nests inside the then arm")
}

func TestCommentsAreElided(t *testing.T) {
	mod := parse(t, "\\ leading comment\n: f ( -- r ) 1 ; \\ trailing\n")
	require.Len(t, mod.Defs, 1)
	assert.Len(t, mod.Defs[0].Body, 1)
}

func TestPositions(t *testing.T) {
	mod := parse(t, "\n: f ( -- r ) 1 ;")

	def := mod.Defs[0]
	assert.Equal(t, 2, def.Pos.Line)
	assert.Equal(t, 1, def.Pos.Column)

	lit := def.Body[0].(*ast.Literal)
	assert.Equal(t, 2, lit.Pos.Line)
	assert.Equal(t, 14, lit.Pos.Column)
}

func TestMissingSemicolonFails(t *testing.T) {
	_, err := ParseSource("test.stv", ": f ( -- r ) 1")
	assert.Error(t, err)
}

func TestUnterminatedLoopFails(t *testing.T) {
	_, err := ParseSource("test.stv", ": f ( n -- r ) begin dup while 1 - ;")
	assert.Error(t, err)
}

func TestMultipleDefinitions(t *testing.T) {
	mod := parse(t, `
: double ( n -- r ) 2 * ;
: quad ( n -- r ) double double ;
`)
	require.Len(t, mod.Defs, 2)
	assert.Equal(t, "double", mod.Defs[0].Name)
	assert.Equal(t, "quad", mod.Defs[1].Name)
}
