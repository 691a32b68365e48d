package semantic

import (
	"sort"

	"stave/internal/ast"
)

// Builtin describes the stack effect of one builtin word. Shuffles carry no
// opcode: they permute the symbolic stack without emitting IR.
type Builtin struct {
	Kind   ast.WordKind
	Op     string
	Pops   int
	Pushes int
}

var builtins = map[string]Builtin{
	// Binary arithmetic
	"+":   {Kind: ast.WordBinary, Op: "ADD", Pops: 2, Pushes: 1},
	"-":   {Kind: ast.WordBinary, Op: "SUB", Pops: 2, Pushes: 1},
	"*":   {Kind: ast.WordBinary, Op: "MUL", Pops: 2, Pushes: 1},
	"/":   {Kind: ast.WordBinary, Op: "DIV", Pops: 2, Pushes: 1},
	"mod": {Kind: ast.WordBinary, Op: "MOD", Pops: 2, Pushes: 1},
	"min": {Kind: ast.WordBinary, Op: "MIN", Pops: 2, Pushes: 1},
	"max": {Kind: ast.WordBinary, Op: "MAX", Pops: 2, Pushes: 1},

	// Binary logic and comparison
	"and": {Kind: ast.WordBinary, Op: "AND", Pops: 2, Pushes: 1},
	"or":  {Kind: ast.WordBinary, Op: "OR", Pops: 2, Pushes: 1},
	"xor": {Kind: ast.WordBinary, Op: "XOR", Pops: 2, Pushes: 1},
	"=":   {Kind: ast.WordBinary, Op: "EQ", Pops: 2, Pushes: 1},
	"<>":  {Kind: ast.WordBinary, Op: "NE", Pops: 2, Pushes: 1},
	"<":   {Kind: ast.WordBinary, Op: "LT", Pops: 2, Pushes: 1},
	">":   {Kind: ast.WordBinary, Op: "GT", Pops: 2, Pushes: 1},
	"<=":  {Kind: ast.WordBinary, Op: "LE", Pops: 2, Pushes: 1},
	">=":  {Kind: ast.WordBinary, Op: "GE", Pops: 2, Pushes: 1},

	// Unary
	"not":    {Kind: ast.WordUnary, Op: "NOT", Pops: 1, Pushes: 1},
	"negate": {Kind: ast.WordUnary, Op: "NEG", Pops: 1, Pushes: 1},
	"abs":    {Kind: ast.WordUnary, Op: "ABS", Pops: 1, Pushes: 1},

	// Stack shuffles
	"dup":  {Kind: ast.WordShuffle, Pops: 1, Pushes: 2},
	"drop": {Kind: ast.WordShuffle, Pops: 1, Pushes: 0},
	"swap": {Kind: ast.WordShuffle, Pops: 2, Pushes: 2},
	"over": {Kind: ast.WordShuffle, Pops: 2, Pushes: 3},
	"rot":  {Kind: ast.WordShuffle, Pops: 3, Pushes: 3},
	"nip":  {Kind: ast.WordShuffle, Pops: 2, Pushes: 1},

	// Counted-loop index
	"i": {Kind: ast.WordIndex, Pops: 0, Pushes: 1},
}

// LookupBuiltin reports the effect of a builtin word, if it is one.
func LookupBuiltin(name string) (Builtin, bool) {
	b, ok := builtins[name]
	return b, ok
}

// BuiltinNames returns the builtin vocabulary in sorted order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
