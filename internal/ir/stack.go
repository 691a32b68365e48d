package ir

// SymbolicStack models the operand stack as a sequence of SSA registers,
// bottom first. It is a value: the converter clones it when entering each
// arm of a conditional or a loop and reconciles the independently evolved
// copies at the merge point. It never aliases IR state.
type SymbolicStack struct {
	regs []Register
}

// NewSymbolicStack returns a stack holding the given registers, bottom
// first.
func NewSymbolicStack(regs ...Register) SymbolicStack {
	return SymbolicStack{regs: append([]Register(nil), regs...)}
}

// Clone returns an independent copy. The copies share nothing; pushes and
// pops on one are invisible to the other.
func (s SymbolicStack) Clone() SymbolicStack {
	return SymbolicStack{regs: append([]Register(nil), s.regs...)}
}

func (s *SymbolicStack) Push(r Register) {
	s.regs = append(s.regs, r)
}

// Pop removes and returns the top register. The second result is false on
// underflow.
func (s *SymbolicStack) Pop() (Register, bool) {
	if len(s.regs) == 0 {
		return NoRegister, false
	}
	r := s.regs[len(s.regs)-1]
	s.regs = s.regs[:len(s.regs)-1]
	return r, true
}

func (s SymbolicStack) Depth() int {
	return len(s.regs)
}

// At returns the register in slot i, counting from the bottom.
func (s SymbolicStack) At(i int) Register {
	return s.regs[i]
}

// Set overwrites slot i, counting from the bottom.
func (s *SymbolicStack) Set(i int, r Register) {
	s.regs[i] = r
}

// Replace substitutes every occurrence of old with new. Used when a pruned
// trivial phi renames its destination.
func (s *SymbolicStack) Replace(old, new Register) {
	for i, r := range s.regs {
		if r == old {
			s.regs[i] = new
		}
	}
}
