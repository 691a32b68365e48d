package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stave/internal/parser"
)

func TestCollectDiagnosticsSemantic(t *testing.T) {
	mod, err := parser.ParseSource("d.stv", ": f ( -- r ) frobnicate ;")
	require.NoError(t, err)

	diags := collectDiagnostics(mod)
	require.Len(t, diags, 1)
	assert.Equal(t, "stave-semantic", *diags[0].Source)
	assert.Equal(t, uint32(0), diags[0].Range.Start.Line)
	assert.Equal(t, uint32(13), diags[0].Range.Start.Character)
}

func TestCollectDiagnosticsConverter(t *testing.T) {
	mod, err := parser.ParseSource("d.stv", ": f ( f -- r ) if 1 then ;")
	require.NoError(t, err)

	diags := collectDiagnostics(mod)
	require.Len(t, diags, 1)
	assert.Equal(t, "stave-ir", *diags[0].Source)
	assert.Contains(t, diags[0].Message, "unbalanced stack effect")
}

func TestCollectDiagnosticsClean(t *testing.T) {
	mod, err := parser.ParseSource("d.stv", ": f ( n -- r ) 1 + ;")
	require.NoError(t, err)

	assert.Empty(t, collectDiagnostics(mod))
}

func TestConvertParseError(t *testing.T) {
	_, err := parser.ParseSource("d.stv", ": f ( -- r ) 1")
	require.Error(t, err)

	diags := convertParseError(err)
	require.Len(t, diags, 1)
	assert.Equal(t, "stave-parser", *diags[0].Source)
}
