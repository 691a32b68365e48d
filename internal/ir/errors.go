package ir

import (
	"fmt"

	"stave/internal/ast"
)

// ConvertError is a structured conversion failure: an unbalanced stack
// effect at a merge point or an operand requested from an empty stack. It
// aborts the function being converted but not the module build.
type ConvertError struct {
	Code     string
	Function string
	Block    BlockID
	Slot     int // stack slot index, -1 when not slot-specific
	Pos      ast.Position
	Message  string
}

func (e *ConvertError) Error() string {
	return fmt.Sprintf("%s: in %s, block %s: %s", e.Pos, e.Function, e.Block, e.Message)
}

func (b *Builder) errorf(code string, block *BasicBlock, slot int, pos ast.Position, format string, args ...interface{}) *ConvertError {
	return &ConvertError{
		Code:     code,
		Function: b.fn.Name,
		Block:    block.ID,
		Slot:     slot,
		Pos:      pos,
		Message:  fmt.Sprintf(format, args...),
	}
}
