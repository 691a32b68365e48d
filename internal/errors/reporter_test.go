package errors

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"stave/internal/ast"
)

func TestFormatError(t *testing.T) {
	color.NoColor = true

	source := ": f ( -- r ) frobnicate ;\n"
	reporter := NewErrorReporter("test.stv", source)

	out := reporter.FormatError(CompilerError{
		Level:    Error,
		Code:     ErrorUndefinedWord,
		Message:  `undefined word "frobnicate"`,
		Position: ast.Position{Line: 1, Column: 14},
		Length:   10,
	})

	assert.Contains(t, out, "error[E0001]: undefined word")
	assert.Contains(t, out, "--> test.stv:1:14")
	assert.Contains(t, out, ": f ( -- r ) frobnicate ;")
	assert.Contains(t, out, "^^^^^^^^^^")
}

func TestFormatErrorWithNotes(t *testing.T) {
	color.NoColor = true

	reporter := NewErrorReporter("test.stv", ": f ( f -- r ) if 1 then ;\n")
	out := reporter.FormatError(CompilerError{
		Level:    Error,
		Code:     ErrorUnbalancedBranches,
		Message:  "unbalanced stack effect between branches",
		Position: ast.Position{Line: 1, Column: 16},
		Length:   2,
		Notes:    []string{"the else arm leaves 0 values"},
	})

	assert.Contains(t, out, "error[E0701]")
	assert.Contains(t, out, "note: the else arm leaves 0 values")
}

func TestErrorDescriptions(t *testing.T) {
	assert.NotEqual(t, "Unknown error code", GetErrorDescription(ErrorUndefinedWord))
	assert.NotEqual(t, "Unknown error code", GetErrorDescription(ErrorEffectMismatch))
	assert.NotEqual(t, "Unknown error code", GetErrorDescription(ErrorEdgeMismatch))
	assert.Equal(t, "Unknown error code", GetErrorDescription("E9999"))
}

func TestIsValidatorCode(t *testing.T) {
	assert.True(t, IsValidatorCode(ErrorMultipleDefinition))
	assert.True(t, IsValidatorCode(ErrorEdgeMismatch))
	assert.False(t, IsValidatorCode(ErrorUnbalancedBranches))
	assert.False(t, IsValidatorCode(ErrorUndefinedWord))
}
