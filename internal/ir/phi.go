package ir

// Loop phi handling. A loop header gets one eager phi per stack slot before
// the body is converted, because the back-edge values are unknowable until
// afterwards. sealLoop then completes the phis and prunes the trivial ones,
// so only slots whose register actually differs across the back edge keep a
// phi.

// headerPhis inserts one phi per stack slot at a loop header. Only the
// entry-edge operand is known here; sealLoop appends the back-edge operand
// once the body has been converted.
func (b *Builder) headerPhis(header, pre *BasicBlock, st SymbolicStack) (SymbolicStack, []*PhiInstr) {
	headerSt := st.Clone()
	phis := make([]*PhiInstr, st.Depth())
	for slot := 0; slot < st.Depth(); slot++ {
		dest := b.newRegister()
		phi := &PhiInstr{Dest: dest, Incoming: []PhiEdge{{Pred: pre.ID, Value: st.At(slot)}}}
		b.emit(header, phi)
		phis[slot] = phi
		headerSt.Set(slot, dest)
	}
	return headerSt, phis
}

// sealLoop completes the header phis with their back-edge operands and then
// prunes the trivial ones. A phi is trivial when its incoming values, the
// phi itself excluded, collapse to a single register: it merges nothing, so
// it is removed and its uses are rewritten to that register. Pruning one phi
// can make another trivial, hence the fixpoint. exitSt is the stack the code
// after the loop continues from; it is rewritten alongside the IR.
func (b *Builder) sealLoop(header, back *BasicBlock, phis []*PhiInstr, backVals []Register, exitSt *SymbolicStack) {
	for i, phi := range phis {
		phi.Incoming = append(phi.Incoming, PhiEdge{Pred: back.ID, Value: backVals[i]})
	}

	for pruned := true; pruned; {
		pruned = false
		for i, phi := range phis {
			if phi == nil {
				continue
			}
			replacement := NoRegister
			trivial := true
			for _, edge := range phi.Incoming {
				if edge.Value == phi.Dest {
					continue
				}
				if replacement == NoRegister {
					replacement = edge.Value
				} else if replacement != edge.Value {
					trivial = false
					break
				}
			}
			if !trivial || replacement == NoRegister {
				continue
			}
			removePhi(header, phi)
			b.replaceRegister(phi.Dest, replacement)
			exitSt.Replace(phi.Dest, replacement)
			phis[i] = nil
			pruned = true
		}
	}
}

func removePhi(block *BasicBlock, phi *PhiInstr) {
	for i, instr := range block.Instrs {
		if instr == phi {
			block.Instrs = append(block.Instrs[:i], block.Instrs[i+1:]...)
			return
		}
	}
}

// replaceRegister rewrites every use of old to new across the function.
// Definitions are untouched; the only caller removes old's defining phi
// first.
func (b *Builder) replaceRegister(old, new Register) {
	for _, block := range b.fn.Blocks {
		for _, instr := range block.Instrs {
			replaceUses(instr, old, new)
		}
		if block.Term != nil {
			replaceUses(block.Term, old, new)
		}
	}
}

func replaceUses(instr Instr, old, new Register) {
	switch t := instr.(type) {
	case *UnaryInstr:
		if t.Operand == old {
			t.Operand = new
		}
	case *BinaryInstr:
		if t.Left == old {
			t.Left = new
		}
		if t.Right == old {
			t.Right = new
		}
	case *CallInstr:
		for i, arg := range t.Args {
			if arg == old {
				t.Args[i] = new
			}
		}
	case *PhiInstr:
		for i, edge := range t.Incoming {
			if edge.Value == old {
				t.Incoming[i].Value = new
			}
		}
	case *BranchTerm:
		if t.Cond == old {
			t.Cond = new
		}
	case *ReturnTerm:
		for i, v := range t.Values {
			if v == old {
				t.Values[i] = new
			}
		}
	}
}
