package ir

import (
	"fmt"
	"strings"
)

// Register names one SSA value. Registers are allocated monotonically per
// function and are defined by exactly one instruction (or arrive as a
// function parameter, pre-defined in the entry block).
type Register int

// NoRegister marks the absence of a destination, e.g. a call to a word that
// produces no value.
const NoRegister Register = -1

func (r Register) String() string {
	if r == NoRegister {
		return "%none"
	}
	return fmt.Sprintf("%%r%d", int(r))
}

// BlockID identifies a basic block within one function. Block ids index the
// function's Blocks slice; blocks are never deleted during this stage.
type BlockID int

func (id BlockID) String() string {
	return fmt.Sprintf("b%d", int(id))
}

// Instr is one SSA instruction. The set of implementations is closed:
// ConstInstr, UnaryInstr, BinaryInstr, CallInstr, PhiInstr and the
// terminators BranchTerm, JumpTerm and ReturnTerm. Consumers type-switch
// exhaustively, so a new instruction kind is a compile-time-checked,
// whole-program change.
type Instr interface {
	// Defines returns the register this instruction defines, if any.
	Defines() (Register, bool)
	// Uses returns the registers this instruction reads. For a phi the
	// uses are attributed to the incoming edges, not the phi's own block.
	Uses() []Register
	String() string
	isInstr()
}

// ConstInstr loads an integer literal.
type ConstInstr struct {
	Dest  Register
	Value int64
}

// UnaryInstr applies a one-operand builtin.
type UnaryInstr struct {
	Dest    Register
	Op      string
	Operand Register
}

// BinaryInstr applies a two-operand builtin.
type BinaryInstr struct {
	Dest  Register
	Op    string
	Left  Register
	Right Register
}

// CallInstr invokes another definition. Dest is NoRegister when the callee
// produces no value.
type CallInstr struct {
	Dest   Register
	Callee string
	Args   []Register
}

// PhiEdge pairs an incoming predecessor block with the register that holds
// the merged value on that path.
type PhiEdge struct {
	Pred  BlockID
	Value Register
}

// PhiInstr selects a value depending on the predecessor control arrived
// from. Phis occupy a contiguous prefix of their block's instruction list.
type PhiInstr struct {
	Dest     Register
	Incoming []PhiEdge
}

// BranchTerm transfers control to True or False depending on Cond.
type BranchTerm struct {
	Cond  Register
	True  BlockID
	False BlockID
}

// JumpTerm transfers control unconditionally.
type JumpTerm struct {
	Target BlockID
}

// ReturnTerm leaves the function with the listed result registers.
type ReturnTerm struct {
	Values []Register
}

func (c *ConstInstr) Defines() (Register, bool)  { return c.Dest, true }
func (u *UnaryInstr) Defines() (Register, bool)  { return u.Dest, true }
func (b *BinaryInstr) Defines() (Register, bool) { return b.Dest, true }
func (c *CallInstr) Defines() (Register, bool)   { return c.Dest, c.Dest != NoRegister }
func (p *PhiInstr) Defines() (Register, bool)    { return p.Dest, true }
func (*BranchTerm) Defines() (Register, bool)    { return NoRegister, false }
func (*JumpTerm) Defines() (Register, bool)      { return NoRegister, false }
func (*ReturnTerm) Defines() (Register, bool)    { return NoRegister, false }

func (*ConstInstr) Uses() []Register      { return nil }
func (u *UnaryInstr) Uses() []Register    { return []Register{u.Operand} }
func (b *BinaryInstr) Uses() []Register   { return []Register{b.Left, b.Right} }
func (c *CallInstr) Uses() []Register     { return c.Args }
func (b *BranchTerm) Uses() []Register    { return []Register{b.Cond} }
func (*JumpTerm) Uses() []Register        { return nil }
func (r *ReturnTerm) Uses() []Register    { return r.Values }
func (p *PhiInstr) Uses() []Register {
	uses := make([]Register, len(p.Incoming))
	for i, edge := range p.Incoming {
		uses[i] = edge.Value
	}
	return uses
}

func (*ConstInstr) isInstr()  {}
func (*UnaryInstr) isInstr()  {}
func (*BinaryInstr) isInstr() {}
func (*CallInstr) isInstr()   {}
func (*PhiInstr) isInstr()    {}
func (*BranchTerm) isInstr()  {}
func (*JumpTerm) isInstr()    {}
func (*ReturnTerm) isInstr()  {}

func (c *ConstInstr) String() string {
	return fmt.Sprintf("%s = const %d", c.Dest, c.Value)
}

func (u *UnaryInstr) String() string {
	return fmt.Sprintf("%s = %s %s", u.Dest, strings.ToLower(u.Op), u.Operand)
}

func (b *BinaryInstr) String() string {
	return fmt.Sprintf("%s = %s %s, %s", b.Dest, strings.ToLower(b.Op), b.Left, b.Right)
}

func (c *CallInstr) String() string {
	args := make([]string, len(c.Args))
	for i, arg := range c.Args {
		args[i] = arg.String()
	}
	call := fmt.Sprintf("call %s(%s)", c.Callee, strings.Join(args, ", "))
	if c.Dest == NoRegister {
		return call
	}
	return fmt.Sprintf("%s = %s", c.Dest, call)
}

func (p *PhiInstr) String() string {
	edges := make([]string, len(p.Incoming))
	for i, edge := range p.Incoming {
		edges[i] = fmt.Sprintf("[%s: %s]", edge.Pred, edge.Value)
	}
	return fmt.Sprintf("%s = phi %s", p.Dest, strings.Join(edges, ", "))
}

func (b *BranchTerm) String() string {
	return fmt.Sprintf("br %s, %s, %s", b.Cond, b.True, b.False)
}

func (j *JumpTerm) String() string {
	return fmt.Sprintf("jmp %s", j.Target)
}

func (r *ReturnTerm) String() string {
	if len(r.Values) == 0 {
		return "ret"
	}
	vals := make([]string, len(r.Values))
	for i, v := range r.Values {
		vals[i] = v.String()
	}
	return fmt.Sprintf("ret %s", strings.Join(vals, ", "))
}

// TermTargets returns the successor block ids implied by a terminator.
func TermTargets(term Instr) []BlockID {
	switch t := term.(type) {
	case *BranchTerm:
		return []BlockID{t.True, t.False}
	case *JumpTerm:
		return []BlockID{t.Target}
	default:
		return nil
	}
}

// BasicBlock is a straight-line instruction sequence. Preds and Succs are
// maintained by addEdge at the moment a branch or jump is emitted and must
// stay the transpose of the terminator targets across the whole function.
type BasicBlock struct {
	ID     BlockID
	Label  string
	Instrs []Instr
	Term   Instr
	Preds  []BlockID
	Succs  []BlockID
}

// Phis returns the block's leading phi instructions.
func (b *BasicBlock) Phis() []*PhiInstr {
	var phis []*PhiInstr
	for _, instr := range b.Instrs {
		phi, ok := instr.(*PhiInstr)
		if !ok {
			break
		}
		phis = append(phis, phi)
	}
	return phis
}

// Function is one converted definition. Params are pre-defined in the entry
// block before any instruction runs; Blocks is indexed by BlockID.
type Function struct {
	Name         string
	Params       []Register
	Results      int
	Entry        BlockID
	Blocks       []*BasicBlock
	NumRegisters int
}

// Block returns the block with the given id.
func (f *Function) Block(id BlockID) *BasicBlock {
	return f.Blocks[id]
}

// Module is the IR for one source module.
type Module struct {
	Name      string
	Functions []*Function
}
