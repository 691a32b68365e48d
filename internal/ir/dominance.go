package ir

// Dominance computes, for each block, the set of blocks that dominate it. A
// block d dominates b when every path from the entry to b passes through d;
// every block dominates itself. The computation is the classic iterative
// data-flow fixpoint over the predecessor sets: precise, and fast enough for
// the block counts structured control flow produces.
type Dominance struct {
	doms []map[BlockID]bool
}

// ComputeDominance derives the dominator sets for fn. Predecessors are taken
// from preds rather than the recorded BasicBlock.Preds so the validator can
// run it on independently derived edges. A block with no predecessors that
// is not the entry is unreachable: its set stays the full block set, the
// identity of the intersection, so an edge out of it never narrows a
// reachable successor's dominators. The reachability check reports such
// blocks separately.
func ComputeDominance(fn *Function, preds [][]BlockID) *Dominance {
	n := len(fn.Blocks)
	doms := make([]map[BlockID]bool, n)

	all := make(map[BlockID]bool, n)
	for _, block := range fn.Blocks {
		all[block.ID] = true
	}
	for _, block := range fn.Blocks {
		if block.ID == fn.Entry {
			doms[block.ID] = map[BlockID]bool{block.ID: true}
		} else {
			doms[block.ID] = copySet(all)
		}
	}

	for changed := true; changed; {
		changed = false
		for _, block := range fn.Blocks {
			if block.ID == fn.Entry || len(preds[block.ID]) == 0 {
				continue
			}
			next := intersectPreds(preds[block.ID], doms)
			next[block.ID] = true
			if !sameSet(next, doms[block.ID]) {
				doms[block.ID] = next
				changed = true
			}
		}
	}

	return &Dominance{doms: doms}
}

// Dominates reports whether block a dominates block b.
func (d *Dominance) Dominates(a, b BlockID) bool {
	return d.doms[b][a]
}

// Dominators returns the set of blocks dominating b.
func (d *Dominance) Dominators(b BlockID) map[BlockID]bool {
	return d.doms[b]
}

func intersectPreds(preds []BlockID, doms []map[BlockID]bool) map[BlockID]bool {
	out := copySet(doms[preds[0]])
	for _, pred := range preds[1:] {
		for id := range out {
			if !doms[pred][id] {
				delete(out, id)
			}
		}
	}
	return out
}

func copySet(s map[BlockID]bool) map[BlockID]bool {
	out := make(map[BlockID]bool, len(s))
	for id := range s {
		out[id] = true
	}
	return out
}

func sameSet(a, b map[BlockID]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for id := range a {
		if !b[id] {
			return false
		}
	}
	return true
}
