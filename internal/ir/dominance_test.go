package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func skeleton(entry BlockID, n int) *Function {
	fn := &Function{Entry: entry}
	for i := 0; i < n; i++ {
		fn.Blocks = append(fn.Blocks, &BasicBlock{ID: BlockID(i)})
	}
	return fn
}

func TestDominanceDiamond(t *testing.T) {
	// b0 -> b1, b2; b1 -> b3; b2 -> b3
	fn := skeleton(0, 4)
	preds := [][]BlockID{nil, {0}, {0}, {1, 2}}

	dom := ComputeDominance(fn, preds)

	for id := BlockID(0); id < 4; id++ {
		assert.True(t, dom.Dominates(0, id), "entry dominates %s", id)
		assert.True(t, dom.Dominates(id, id), "%s dominates itself", id)
	}
	assert.False(t, dom.Dominates(1, 3), "neither arm dominates the merge")
	assert.False(t, dom.Dominates(2, 3))
	assert.False(t, dom.Dominates(3, 1))

	assert.Equal(t, map[BlockID]bool{0: true, 3: true}, dom.Dominators(3))
}

func TestDominanceLoop(t *testing.T) {
	// b0 -> b1; b1 -> b2, b3; b2 -> b1 (back edge)
	fn := skeleton(0, 4)
	preds := [][]BlockID{nil, {0, 2}, {1}, {1}}

	dom := ComputeDominance(fn, preds)

	assert.Equal(t, map[BlockID]bool{0: true, 1: true}, dom.Dominators(1),
		"the back edge must not add the body to the header's dominators")
	assert.True(t, dom.Dominates(1, 2))
	assert.True(t, dom.Dominates(1, 3))
	assert.False(t, dom.Dominates(2, 3))
}

func TestDominanceUnreachable(t *testing.T) {
	// b2 has no predecessors and is not the entry: its set stays the full
	// block set, the intersection identity. The validator never queries
	// dominance for unreachable blocks; reachability reports them first.
	fn := skeleton(0, 3)
	preds := [][]BlockID{nil, {0}, nil}

	dom := ComputeDominance(fn, preds)

	assert.True(t, dom.Dominates(2, 2))
	assert.Equal(t, map[BlockID]bool{0: true, 1: true, 2: true}, dom.Dominators(2))
}

func TestDominanceUnreachableEdgeIntoReachable(t *testing.T) {
	// b0 -> b1; b2 -> b1, with b2 unreachable. The dead edge must not
	// narrow b1's dominators: every real path to b1 still runs through
	// the entry.
	fn := skeleton(0, 3)
	preds := [][]BlockID{nil, {0, 2}, nil}

	dom := ComputeDominance(fn, preds)

	assert.True(t, dom.Dominates(0, 1), "entry still dominates the target of the dead edge")
	assert.Equal(t, map[BlockID]bool{0: true, 1: true}, dom.Dominators(1))
}
