package ir

import (
	"fmt"
	"sort"

	"stave/internal/errors"
)

// The validator re-checks a converted function from first principles. It
// derives the CFG edges from the terminators itself instead of trusting the
// recorded Preds and Succs, so a bookkeeping bug in the converter cannot
// hide from it. Any violation against a type-correct program is a converter
// defect, never a user error.

// Violation is one structural SSA violation found by Validate.
type Violation struct {
	Code     string
	Function string
	Block    BlockID
	Register Register // NoRegister when not register-specific
	Message  string
}

func (v *Violation) Error() string {
	return fmt.Sprintf("%s: in %s, block %s: %s", v.Code, v.Function, v.Block, v.Message)
}

type validator struct {
	fn         *Function
	preds      [][]BlockID
	succs      [][]BlockID
	violations []*Violation
}

// Validate checks fn for structural SSA integrity: every block terminated,
// recorded edges matching the terminators, single assignment, definitions
// dominating uses, complete and well-placed phis, and reachability of every
// block from the entry. It reports all violations it finds, not just the
// first.
func Validate(fn *Function) []*Violation {
	v := &validator{fn: fn}
	v.deriveEdges()
	v.checkRecordedEdges()
	reachable := v.checkReachability()
	v.checkPhiPlacement()
	v.checkPhiCompleteness(reachable)
	defs := v.checkSingleAssignment()
	v.checkDominance(reachable, defs)
	return v.violations
}

func (v *validator) report(code string, block BlockID, reg Register, format string, args ...interface{}) {
	v.violations = append(v.violations, &Violation{
		Code:     code,
		Function: v.fn.Name,
		Block:    block,
		Register: reg,
		Message:  fmt.Sprintf(format, args...),
	})
}

// deriveEdges rebuilds successor and predecessor lists from the terminators
// alone.
func (v *validator) deriveEdges() {
	n := len(v.fn.Blocks)
	v.preds = make([][]BlockID, n)
	v.succs = make([][]BlockID, n)
	for _, block := range v.fn.Blocks {
		if block.Term == nil {
			v.report(errors.ErrorEdgeMismatch, block.ID, NoRegister, "block has no terminator")
			continue
		}
		for _, target := range TermTargets(block.Term) {
			if int(target) < 0 || int(target) >= n {
				v.report(errors.ErrorEdgeMismatch, block.ID, NoRegister,
					"terminator targets nonexistent block %s", target)
				continue
			}
			v.succs[block.ID] = append(v.succs[block.ID], target)
			v.preds[target] = append(v.preds[target], block.ID)
		}
	}
}

// checkRecordedEdges compares the converter's recorded Preds and Succs
// against the derived ones.
func (v *validator) checkRecordedEdges() {
	for _, block := range v.fn.Blocks {
		if !sameEdgeSet(block.Succs, v.succs[block.ID]) {
			v.report(errors.ErrorEdgeMismatch, block.ID, NoRegister,
				"recorded successors %v disagree with terminator targets %v",
				block.Succs, v.succs[block.ID])
		}
		if !sameEdgeSet(block.Preds, v.preds[block.ID]) {
			v.report(errors.ErrorEdgeMismatch, block.ID, NoRegister,
				"recorded predecessors %v disagree with incoming terminators %v",
				block.Preds, v.preds[block.ID])
		}
	}
}

// checkReachability walks the derived successor edges from the entry and
// reports every block the walk never visits.
func (v *validator) checkReachability() []bool {
	reachable := make([]bool, len(v.fn.Blocks))
	worklist := []BlockID{v.fn.Entry}
	reachable[v.fn.Entry] = true
	for len(worklist) > 0 {
		id := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		for _, succ := range v.succs[id] {
			if !reachable[succ] {
				reachable[succ] = true
				worklist = append(worklist, succ)
			}
		}
	}
	for _, block := range v.fn.Blocks {
		if !reachable[block.ID] {
			v.report(errors.ErrorUnreachableBlock, block.ID, NoRegister,
				"block %q is unreachable from the entry block", block.Label)
		}
	}
	return reachable
}

// checkPhiPlacement enforces that phis form a contiguous prefix of each
// block's instruction list.
func (v *validator) checkPhiPlacement() {
	for _, block := range v.fn.Blocks {
		seenNonPhi := false
		for _, instr := range block.Instrs {
			if phi, ok := instr.(*PhiInstr); ok {
				if seenNonPhi {
					v.report(errors.ErrorPhiMisplaced, block.ID, phi.Dest,
						"phi %s appears after an ordinary instruction", phi.Dest)
				}
			} else {
				seenNonPhi = true
			}
		}
	}
}

// checkPhiCompleteness verifies each phi's incoming blocks against the
// derived predecessor set: one operand per predecessor, no duplicates, no
// strangers. Unreachable blocks are skipped; reachability reports them.
func (v *validator) checkPhiCompleteness(reachable []bool) {
	for _, block := range v.fn.Blocks {
		if !reachable[block.ID] {
			continue
		}
		predSet := make(map[BlockID]bool, len(v.preds[block.ID]))
		for _, pred := range v.preds[block.ID] {
			predSet[pred] = true
		}
		for _, phi := range block.Phis() {
			seen := make(map[BlockID]bool, len(phi.Incoming))
			for _, edge := range phi.Incoming {
				if seen[edge.Pred] {
					v.report(errors.ErrorPhiIncomplete, block.ID, phi.Dest,
						"phi %s has duplicate operand for predecessor %s", phi.Dest, edge.Pred)
				}
				seen[edge.Pred] = true
				if !predSet[edge.Pred] {
					v.report(errors.ErrorPhiIncomplete, block.ID, phi.Dest,
						"phi %s has operand for %s, which is not a predecessor", phi.Dest, edge.Pred)
				}
			}
			for pred := range predSet {
				if !seen[pred] {
					v.report(errors.ErrorPhiIncomplete, block.ID, phi.Dest,
						"phi %s is missing an operand for predecessor %s", phi.Dest, pred)
				}
			}
		}
	}
}

// defSite locates a register's single definition.
type defSite struct {
	block BlockID
	index int // instruction index; -1 for function parameters
}

// checkSingleAssignment verifies that every register is defined exactly once
// and returns the definition sites for the dominance check. Parameters count
// as definitions in the entry block, before any instruction.
func (v *validator) checkSingleAssignment() map[Register]defSite {
	defs := make(map[Register]defSite, v.fn.NumRegisters)
	for _, param := range v.fn.Params {
		defs[param] = defSite{block: v.fn.Entry, index: -1}
	}
	for _, block := range v.fn.Blocks {
		for i, instr := range block.Instrs {
			dest, ok := instr.Defines()
			if !ok {
				continue
			}
			if prev, dup := defs[dest]; dup {
				v.report(errors.ErrorMultipleDefinition, block.ID, dest,
					"register %s redefined; first definition in block %s", dest, prev.block)
				continue
			}
			defs[dest] = defSite{block: block.ID, index: i}
		}
	}
	return defs
}

// checkDominance verifies that every use is dominated by its definition.
// Ordinary uses inside a block need the definition in a dominating block, or
// earlier in the same block. A phi operand is not a use in the phi's block:
// it is evaluated at the end of the incoming predecessor, so the definition
// must dominate that predecessor instead. Unreachable blocks are skipped;
// their dominator sets are vacuous.
func (v *validator) checkDominance(reachable []bool, defs map[Register]defSite) {
	dom := ComputeDominance(v.fn, v.preds)

	for _, block := range v.fn.Blocks {
		if !reachable[block.ID] {
			continue
		}
		for i, instr := range block.Instrs {
			if phi, ok := instr.(*PhiInstr); ok {
				for _, edge := range phi.Incoming {
					v.checkPhiOperand(dom, defs, block, phi, edge)
				}
				continue
			}
			for _, use := range instr.Uses() {
				v.checkUse(dom, defs, block, i, use)
			}
		}
		if block.Term != nil {
			for _, use := range block.Term.Uses() {
				v.checkUse(dom, defs, block, len(block.Instrs), use)
			}
		}
	}
}

func (v *validator) checkUse(dom *Dominance, defs map[Register]defSite, block *BasicBlock, index int, use Register) {
	def, ok := defs[use]
	if !ok {
		v.report(errors.ErrorDominance, block.ID, use,
			"register %s is used but never defined", use)
		return
	}
	if def.block == block.ID {
		if def.index >= index {
			v.report(errors.ErrorDominance, block.ID, use,
				"register %s is used before its definition in the same block", use)
		}
		return
	}
	if !dom.Dominates(def.block, block.ID) {
		v.report(errors.ErrorDominance, block.ID, use,
			"definition of %s in block %s does not dominate its use", use, def.block)
	}
}

func (v *validator) checkPhiOperand(dom *Dominance, defs map[Register]defSite, block *BasicBlock, phi *PhiInstr, edge PhiEdge) {
	def, ok := defs[edge.Value]
	if !ok {
		v.report(errors.ErrorDominance, block.ID, edge.Value,
			"phi %s reads register %s, which is never defined", phi.Dest, edge.Value)
		return
	}
	if def.block == edge.Pred {
		return
	}
	if !dom.Dominates(def.block, edge.Pred) {
		v.report(errors.ErrorDominance, block.ID, edge.Value,
			"definition of %s in block %s does not dominate phi predecessor %s",
			edge.Value, def.block, edge.Pred)
	}
}

// sameEdgeSet compares two edge lists as multisets.
func sameEdgeSet(a, b []BlockID) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]BlockID(nil), a...)
	bs := append([]BlockID(nil), b...)
	sort.Slice(as, func(i, j int) bool { return as[i] < as[j] })
	sort.Slice(bs, func(i, j int) bool { return bs[i] < bs[j] })
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}
