package ir

import "fmt"

// CFG construction: block allocation and edge recording. This layer only
// creates the block ids and static edges each structured construct needs;
// it never simulates values.

// newBlock allocates a fresh basic block and registers it on the function.
func (b *Builder) newBlock(label string) *BasicBlock {
	block := &BasicBlock{
		ID:    BlockID(len(b.fn.Blocks)),
		Label: fmt.Sprintf("%s_%d", label, len(b.fn.Blocks)),
	}
	b.fn.Blocks = append(b.fn.Blocks, block)
	return block
}

// addEdge records a control-flow edge. It runs exactly when the jump or
// branch is emitted, so the recorded predecessor is always the block that
// was current at that moment.
func (b *Builder) addEdge(from, to *BasicBlock) {
	from.Succs = append(from.Succs, to.ID)
	to.Preds = append(to.Preds, from.ID)
}

// emitJump terminates from with an unconditional jump to to.
func (b *Builder) emitJump(from, to *BasicBlock) {
	from.Term = &JumpTerm{Target: to.ID}
	b.addEdge(from, to)
}

// emitBranch terminates from with a conditional branch.
func (b *Builder) emitBranch(from *BasicBlock, cond Register, trueBlock, falseBlock *BasicBlock) {
	from.Term = &BranchTerm{Cond: cond, True: trueBlock.ID, False: falseBlock.ID}
	b.addEdge(from, trueBlock)
	b.addEdge(from, falseBlock)
}

// branchShape holds the blocks an if/else needs.
type branchShape struct {
	then  *BasicBlock
	els   *BasicBlock
	merge *BasicBlock
}

func (b *Builder) allocBranch() branchShape {
	return branchShape{
		then:  b.newBlock("then"),
		els:   b.newBlock("else"),
		merge: b.newBlock("merge"),
	}
}

// whileShape holds the blocks a pre-test loop needs. The condition is
// converted inside header; the branch out of the condition targets body and
// exit, and the body's final block closes the back edge to header.
type whileShape struct {
	header *BasicBlock
	body   *BasicBlock
	exit   *BasicBlock
}

func (b *Builder) allocWhileLoop() whileShape {
	return whileShape{
		header: b.newBlock("loop_header"),
		body:   b.newBlock("loop_body"),
		exit:   b.newBlock("loop_exit"),
	}
}

// loopShape holds the blocks a post-test or counted loop needs: the header
// doubles as the body entry.
type loopShape struct {
	header *BasicBlock
	exit   *BasicBlock
}

func (b *Builder) allocPostTestLoop() loopShape {
	return loopShape{
		header: b.newBlock("loop_header"),
		exit:   b.newBlock("loop_exit"),
	}
}

func (b *Builder) allocCountedLoop() loopShape {
	return loopShape{
		header: b.newBlock("loop_header"),
		exit:   b.newBlock("loop_exit"),
	}
}
