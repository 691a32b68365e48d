package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintFunction(t *testing.T) {
	fn := buildSingle(t, ": square ( n -- r ) dup * ;")
	out := PrintFunction(fn)

	assert.Contains(t, out, "FUNCTION square(%r0) -> 1")
	assert.Contains(t, out, "b0 (entry_0):")
	assert.Contains(t, out, "%r1 = mul %r0, %r0")
	assert.Contains(t, out, "ret %r1")
}

func TestPrintMergeBlock(t *testing.T) {
	fn := buildSingle(t, ": choose ( a b f -- r ) if drop else nip then ;")
	out := PrintFunction(fn)

	assert.Contains(t, out, "br %r2, b1, b2")
	assert.Contains(t, out, "; preds: b1, b2")
	assert.Contains(t, out, "= phi [b1: %r0], [b2: %r1]")
}

func TestPrintModule(t *testing.T) {
	mod := annotate(t, ": double ( n -- r ) 2 * ;")
	irMod, errs := BuildModule(mod)
	assert.Empty(t, errs)

	out := Print(irMod)
	assert.Contains(t, out, "MODULE test (IR)")
	assert.Contains(t, out, "FUNCTION double")
}
