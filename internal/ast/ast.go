package ast

import "fmt"

// Position locates a node in its source file.
type Position struct {
	Filename string
	Line     int
	Column   int
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// Module is one parsed source unit: an ordered list of word definitions.
type Module struct {
	Name string
	Defs []*Definition
}

// Definition is a colon definition. Params holds the names declared on the
// left of the stack-effect signature; Results is the declared result count.
// The annotation pass restricts Results to at most one so that a call can
// define at most one register.
type Definition struct {
	Pos     Position
	Name    string
	Params  []string
	Results int
	Body    []Node
}

// Node is a body item of a definition. The set of implementations is closed;
// consumers type-switch exhaustively.
type Node interface {
	NodePos() Position
	isNode()
}

// Literal pushes an integer constant.
type Literal struct {
	Pos   Position
	Value int64
}

// WordKind classifies a word occurrence after annotation.
type WordKind int

const (
	// WordUnknown is the kind before annotation has run.
	WordUnknown WordKind = iota
	// WordBinary is a builtin consuming two values and producing one.
	WordBinary
	// WordUnary is a builtin consuming one value and producing one.
	WordUnary
	// WordShuffle is a pure stack permutation (dup, drop, swap, ...).
	WordShuffle
	// WordCall invokes another definition in the module.
	WordCall
	// WordIndex pushes the innermost counted-loop index.
	WordIndex
)

// Word is a use of a builtin or of another definition. Kind, Op, Pops and
// Pushes are filled in by the semantic annotation pass; the converter
// consumes them without re-deriving effects.
type Word struct {
	Pos    Position
	Name   string
	Kind   WordKind
	Op     string // IR opcode for binary/unary builtins
	Pops   int
	Pushes int
}

// Conditional is "if ... [else ...] then". The flag is consumed from the
// stack before either arm runs.
type Conditional struct {
	Pos  Position
	Then []Node
	Else []Node
}

// WhileLoop is "begin cond while body repeat", a pre-test loop. Cond must
// net exactly one extra slot (the flag), which "while" consumes.
type WhileLoop struct {
	Pos  Position
	Cond []Node
	Body []Node
}

// UntilLoop is "begin body until", a post-test loop. The body nets one extra
// slot, the flag consumed by "until"; the loop repeats while it is zero.
type UntilLoop struct {
	Pos  Position
	Body []Node
}

// CountedLoop is "limit start do body loop". The two bounds are consumed on
// entry; "i" inside the body pushes the current index.
type CountedLoop struct {
	Pos  Position
	Body []Node
}

func (l *Literal) NodePos() Position     { return l.Pos }
func (w *Word) NodePos() Position        { return w.Pos }
func (c *Conditional) NodePos() Position { return c.Pos }
func (w *WhileLoop) NodePos() Position   { return w.Pos }
func (u *UntilLoop) NodePos() Position   { return u.Pos }
func (c *CountedLoop) NodePos() Position { return c.Pos }

func (*Literal) isNode()     {}
func (*Word) isNode()        {}
func (*Conditional) isNode() {}
func (*WhileLoop) isNode()   {}
func (*UntilLoop) isNode()   {}
func (*CountedLoop) isNode() {}
