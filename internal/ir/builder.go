package ir

import (
	"stave/internal/ast"
	"stave/internal/errors"
)

// Builder converts one annotated definition to SSA form. The current block
// is threaded explicitly through the conversion: every convert method
// returns the block that is current after it, and that block - never the
// syntactically entered one - is what merge reconciliation records as a
// predecessor. Register and block counters are owned by the builder, so
// independent definitions can be converted concurrently.
type Builder struct {
	fn          *Function
	loopIndices []Register
}

// BuildFunction converts a single annotated definition to SSA form. The
// produced Function has not been validated; run Validate before handing it
// to a downstream consumer.
func BuildFunction(def *ast.Definition) (*Function, *ConvertError) {
	b := &Builder{fn: &Function{Name: def.Name, Results: def.Results}}

	entry := b.newBlock("entry")
	b.fn.Entry = entry.ID

	// Parameters are pre-defined in the entry block before any
	// instruction runs; they seed the symbolic stack bottom-first.
	params := make([]Register, len(def.Params))
	for i := range def.Params {
		params[i] = b.newRegister()
	}
	b.fn.Params = params
	st := NewSymbolicStack(params...)

	end, st, err := b.convertSeq(def.Body, entry, st)
	if err != nil {
		return nil, err
	}

	if st.Depth() != def.Results {
		return nil, b.errorf(errors.ErrorEffectMismatch, end, -1, def.Pos,
			"definition %q leaves %d values on the stack, its effect declares %d",
			def.Name, st.Depth(), def.Results)
	}

	end.Term = &ReturnTerm{Values: append([]Register(nil), st.regs...)}
	return b.fn, nil
}

func (b *Builder) newRegister() Register {
	r := Register(b.fn.NumRegisters)
	b.fn.NumRegisters++
	return r
}

func (b *Builder) emit(block *BasicBlock, instr Instr) {
	block.Instrs = append(block.Instrs, instr)
}

// convertSeq converts a node sequence starting in cur and returns the block
// that is current after the last node, together with the evolved stack.
func (b *Builder) convertSeq(items []ast.Node, cur *BasicBlock, st SymbolicStack) (*BasicBlock, SymbolicStack, *ConvertError) {
	for _, item := range items {
		var err *ConvertError
		switch n := item.(type) {
		case *ast.Literal:
			dest := b.newRegister()
			b.emit(cur, &ConstInstr{Dest: dest, Value: n.Value})
			st.Push(dest)

		case *ast.Word:
			err = b.convertWord(n, cur, &st)

		case *ast.Conditional:
			cur, st, err = b.convertConditional(n, cur, st)

		case *ast.WhileLoop:
			cur, st, err = b.convertWhileLoop(n, cur, st)

		case *ast.UntilLoop:
			cur, st, err = b.convertUntilLoop(n, cur, st)

		case *ast.CountedLoop:
			cur, st, err = b.convertCountedLoop(n, cur, st)
		}
		if err != nil {
			return nil, st, err
		}
	}
	return cur, st, nil
}

// convertWord emits the instruction for one annotated word occurrence.
// Shuffles permute the symbolic stack without emitting anything.
func (b *Builder) convertWord(word *ast.Word, cur *BasicBlock, st *SymbolicStack) *ConvertError {
	if st.Depth() < word.Pops {
		return b.errorf(errors.ErrorStackUnderflow, cur, -1, word.Pos,
			"stack underflow: %q needs %d values, have %d", word.Name, word.Pops, st.Depth())
	}

	switch word.Kind {
	case ast.WordBinary:
		right, _ := st.Pop()
		left, _ := st.Pop()
		dest := b.newRegister()
		b.emit(cur, &BinaryInstr{Dest: dest, Op: word.Op, Left: left, Right: right})
		st.Push(dest)

	case ast.WordUnary:
		operand, _ := st.Pop()
		dest := b.newRegister()
		b.emit(cur, &UnaryInstr{Dest: dest, Op: word.Op, Operand: operand})
		st.Push(dest)

	case ast.WordShuffle:
		b.shuffle(word.Name, st)

	case ast.WordCall:
		args := make([]Register, word.Pops)
		for i := word.Pops - 1; i >= 0; i-- {
			args[i], _ = st.Pop()
		}
		dest := NoRegister
		if word.Pushes == 1 {
			dest = b.newRegister()
		}
		b.emit(cur, &CallInstr{Dest: dest, Callee: word.Name, Args: args})
		if dest != NoRegister {
			st.Push(dest)
		}

	case ast.WordIndex:
		st.Push(b.loopIndices[len(b.loopIndices)-1])
	}

	return nil
}

// shuffle applies a pure stack permutation. Depth has already been checked.
func (b *Builder) shuffle(name string, st *SymbolicStack) {
	switch name {
	case "dup":
		top, _ := st.Pop()
		st.Push(top)
		st.Push(top)
	case "drop":
		st.Pop()
	case "swap":
		x2, _ := st.Pop()
		x1, _ := st.Pop()
		st.Push(x2)
		st.Push(x1)
	case "over":
		x2, _ := st.Pop()
		x1, _ := st.Pop()
		st.Push(x1)
		st.Push(x2)
		st.Push(x1)
	case "rot":
		x3, _ := st.Pop()
		x2, _ := st.Pop()
		x1, _ := st.Pop()
		st.Push(x2)
		st.Push(x3)
		st.Push(x1)
	case "nip":
		x2, _ := st.Pop()
		st.Pop()
		st.Push(x2)
	}
}

// convertConditional converts "if ... [else ...] then". Each arm starts
// from its own clone of the stack; the arms' final blocks jump to the merge
// block and differing slots are reconciled with phis there.
func (b *Builder) convertConditional(cond *ast.Conditional, cur *BasicBlock, st SymbolicStack) (*BasicBlock, SymbolicStack, *ConvertError) {
	flag, ok := st.Pop()
	if !ok {
		return nil, st, b.errorf(errors.ErrorStackUnderflow, cur, -1, cond.Pos,
			"stack underflow: %q needs a flag", "if")
	}

	shape := b.allocBranch()
	b.emitBranch(cur, flag, shape.then, shape.els)

	thenEnd, thenSt, err := b.convertSeq(cond.Then, shape.then, st.Clone())
	if err != nil {
		return nil, st, err
	}
	elseEnd, elseSt, err := b.convertSeq(cond.Else, shape.els, st.Clone())
	if err != nil {
		return nil, st, err
	}

	// The merge predecessors are the blocks current after each arm. A
	// nested construct leaves its arm in a block allocated during its own
	// conversion, not in the arm's syntactic entry block.
	b.emitJump(thenEnd, shape.merge)
	b.emitJump(elseEnd, shape.merge)

	if thenSt.Depth() != elseSt.Depth() {
		return nil, st, b.errorf(errors.ErrorUnbalancedBranches, shape.merge, -1, cond.Pos,
			"unbalanced stack effect between branches: then arm leaves %d values, else arm leaves %d",
			thenSt.Depth(), elseSt.Depth())
	}

	merged := thenSt.Clone()
	for slot := 0; slot < thenSt.Depth(); slot++ {
		thenReg, elseReg := thenSt.At(slot), elseSt.At(slot)
		if thenReg == elseReg {
			// Same register on both paths: live across the merge,
			// no phi needed.
			continue
		}
		dest := b.newRegister()
		b.emit(shape.merge, &PhiInstr{Dest: dest, Incoming: []PhiEdge{
			{Pred: thenEnd.ID, Value: thenReg},
			{Pred: elseEnd.ID, Value: elseReg},
		}})
		merged.Set(slot, dest)
	}

	return shape.merge, merged, nil
}

// convertWhileLoop converts "begin cond while body repeat". The condition
// runs in the header so both the entry edge and the back edge re-evaluate
// it; the flag branches between body and exit.
func (b *Builder) convertWhileLoop(loop *ast.WhileLoop, cur *BasicBlock, st SymbolicStack) (*BasicBlock, SymbolicStack, *ConvertError) {
	entryDepth := st.Depth()
	shape := b.allocWhileLoop()
	b.emitJump(cur, shape.header)
	headerSt, phis := b.headerPhis(shape.header, cur, st)

	condEnd, condSt, err := b.convertSeq(loop.Cond, shape.header, headerSt.Clone())
	if err != nil {
		return nil, st, err
	}
	flag, ok := condSt.Pop()
	if !ok {
		return nil, st, b.errorf(errors.ErrorStackUnderflow, condEnd, -1, loop.Pos,
			"stack underflow: %q needs a flag", "while")
	}
	if condSt.Depth() != entryDepth {
		return nil, st, b.errorf(errors.ErrorUnbalancedLoop, condEnd, -1, loop.Pos,
			"loop condition must net exactly one flag: loop entered with %d values, condition leaves %d plus the flag",
			entryDepth, condSt.Depth())
	}
	b.emitBranch(condEnd, flag, shape.body, shape.exit)

	bodyEnd, bodySt, err := b.convertSeq(loop.Body, shape.body, condSt.Clone())
	if err != nil {
		return nil, st, err
	}
	if bodySt.Depth() != entryDepth {
		return nil, st, b.errorf(errors.ErrorUnbalancedLoop, bodyEnd, -1, loop.Pos,
			"unbalanced stack effect across loop body: loop entered with %d values, back edge carries %d",
			entryDepth, bodySt.Depth())
	}
	b.emitJump(bodyEnd, shape.header)

	backVals := make([]Register, entryDepth)
	for slot := range backVals {
		backVals[slot] = bodySt.At(slot)
	}
	exitSt := condSt.Clone()
	b.sealLoop(shape.header, bodyEnd, phis, backVals, &exitSt)

	return shape.exit, exitSt, nil
}

// convertUntilLoop converts "begin body until": the header is the body
// entry, and the flag left on top decides between exit and the back edge.
func (b *Builder) convertUntilLoop(loop *ast.UntilLoop, cur *BasicBlock, st SymbolicStack) (*BasicBlock, SymbolicStack, *ConvertError) {
	entryDepth := st.Depth()
	shape := b.allocPostTestLoop()
	b.emitJump(cur, shape.header)
	headerSt, phis := b.headerPhis(shape.header, cur, st)

	bodyEnd, bodySt, err := b.convertSeq(loop.Body, shape.header, headerSt.Clone())
	if err != nil {
		return nil, st, err
	}
	flag, ok := bodySt.Pop()
	if !ok {
		return nil, st, b.errorf(errors.ErrorStackUnderflow, bodyEnd, -1, loop.Pos,
			"stack underflow: %q needs a flag", "until")
	}
	if bodySt.Depth() != entryDepth {
		return nil, st, b.errorf(errors.ErrorUnbalancedLoop, bodyEnd, -1, loop.Pos,
			"unbalanced stack effect across loop body: loop entered with %d values, back edge carries %d",
			entryDepth, bodySt.Depth())
	}
	// until repeats while the flag is zero
	b.emitBranch(bodyEnd, flag, shape.exit, shape.header)

	backVals := make([]Register, entryDepth)
	for slot := range backVals {
		backVals[slot] = bodySt.At(slot)
	}
	exitSt := bodySt.Clone()
	b.sealLoop(shape.header, bodyEnd, phis, backVals, &exitSt)

	return shape.exit, exitSt, nil
}

// convertCountedLoop converts "limit start do body loop". The index lives
// in its own header phi; the block ending the body increments it and
// branches back while index+1 < limit.
func (b *Builder) convertCountedLoop(loop *ast.CountedLoop, cur *BasicBlock, st SymbolicStack) (*BasicBlock, SymbolicStack, *ConvertError) {
	start, ok := st.Pop()
	if !ok {
		return nil, st, b.errorf(errors.ErrorStackUnderflow, cur, -1, loop.Pos,
			"stack underflow: %q needs a limit and a start index", "do")
	}
	limit, ok := st.Pop()
	if !ok {
		return nil, st, b.errorf(errors.ErrorStackUnderflow, cur, -1, loop.Pos,
			"stack underflow: %q needs a limit and a start index", "do")
	}

	entryDepth := st.Depth()
	shape := b.allocCountedLoop()
	b.emitJump(cur, shape.header)
	headerSt, phis := b.headerPhis(shape.header, cur, st)

	index := b.newRegister()
	indexPhi := &PhiInstr{Dest: index, Incoming: []PhiEdge{{Pred: cur.ID, Value: start}}}
	b.emit(shape.header, indexPhi)
	phis = append(phis, indexPhi)

	b.loopIndices = append(b.loopIndices, index)
	bodyEnd, bodySt, err := b.convertSeq(loop.Body, shape.header, headerSt.Clone())
	b.loopIndices = b.loopIndices[:len(b.loopIndices)-1]
	if err != nil {
		return nil, st, err
	}
	if bodySt.Depth() != entryDepth {
		return nil, st, b.errorf(errors.ErrorUnbalancedLoop, bodyEnd, -1, loop.Pos,
			"unbalanced stack effect across loop body: loop entered with %d values, back edge carries %d",
			entryDepth, bodySt.Depth())
	}

	one := b.newRegister()
	b.emit(bodyEnd, &ConstInstr{Dest: one, Value: 1})
	next := b.newRegister()
	b.emit(bodyEnd, &BinaryInstr{Dest: next, Op: "ADD", Left: index, Right: one})
	again := b.newRegister()
	b.emit(bodyEnd, &BinaryInstr{Dest: again, Op: "LT", Left: next, Right: limit})
	b.emitBranch(bodyEnd, again, shape.header, shape.exit)

	backVals := make([]Register, entryDepth+1)
	for slot := 0; slot < entryDepth; slot++ {
		backVals[slot] = bodySt.At(slot)
	}
	backVals[entryDepth] = next
	exitSt := bodySt.Clone()
	b.sealLoop(shape.header, bodyEnd, phis, backVals, &exitSt)

	return shape.exit, exitSt, nil
}
